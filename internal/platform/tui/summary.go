package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/harvest/internal/submit"
)

// submitResultMsg reports the outcome of an asynchronous submission.
type submitResultMsg struct {
	entry submit.Entry
	err   error
}

// submitCmd delivers e to sink off the UI goroutine.
func submitCmd(sink submit.Sink, e submit.Entry) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submit.DefaultTimeout)
		defer cancel()
		return submitResultMsg{entry: e, err: sink.Submit(ctx, e)}
	}
}

// summaryForm is the end-of-game dialog: final score plus name and email
// fields for a high-score submission.
type summaryForm struct {
	mode   string
	score  int
	moves  int
	inputs []textinput.Model
	focus  int
	errMsg string
}

const (
	fieldName = iota
	fieldEmail
)

func newSummaryForm(mode string, score, moves int) summaryForm {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 32
	name.Width = 24
	name.Prompt = "Name:  "
	name.Focus()

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 64
	email.Width = 24
	email.Prompt = "Email: "

	return summaryForm{
		mode:   mode,
		score:  score,
		moves:  moves,
		inputs: []textinput.Model{name, email},
	}
}

// summaryAction is what the form wants the game model to do next.
type summaryAction int

const (
	summaryNone summaryAction = iota
	summarySubmit
	summaryClose
)

// update handles a key press. Enter on the last field submits; Esc closes
// the form without submitting.
func (f summaryForm) update(msg tea.Msg) (summaryForm, summaryAction, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			return f, summaryClose, nil
		case "tab", "down":
			return f.setFocus(f.focus + 1), summaryNone, nil
		case "shift+tab", "up":
			return f.setFocus(f.focus - 1), summaryNone, nil
		case "enter":
			if f.focus < len(f.inputs)-1 {
				return f.setFocus(f.focus + 1), summaryNone, nil
			}
			if f.name() == "" {
				f.errMsg = "Name is required"
				return f.setFocus(fieldName), summaryNone, nil
			}
			return f, summarySubmit, nil
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, summaryNone, cmd
}

func (f summaryForm) setFocus(i int) summaryForm {
	n := len(f.inputs)
	f.focus = ((i % n) + n) % n
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return f
}

func (f summaryForm) name() string {
	return strings.TrimSpace(f.inputs[fieldName].Value())
}

// entry builds the submission from the form fields.
func (f summaryForm) entry() submit.Entry {
	return submit.NewEntry(f.mode, f.name(), strings.TrimSpace(f.inputs[fieldEmail].Value()), f.score)
}

var (
	summaryBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3)
	summaryTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	summaryHint  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	summaryError = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// view renders the dialog centred in a width×height area.
func (f summaryForm) view(width, height int, submitting bool) string {
	var b strings.Builder
	b.WriteString(summaryTitle.Render("GAME OVER"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Final score: %d\nMoves: %d\n\n", f.score, f.moves)
	for _, in := range f.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	switch {
	case submitting:
		b.WriteString(summaryHint.Render("Submitting..."))
	case f.errMsg != "":
		b.WriteString(summaryError.Render(f.errMsg))
	default:
		b.WriteString(summaryHint.Render("Enter: next/submit  Tab: switch field  Esc: skip"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, summaryBox.Render(b.String()))
}
