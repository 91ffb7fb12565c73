// Package submit delivers end-of-game high-score entries to one or more
// sinks: the local score database, a remote HTTP endpoint, or both.
// Entries are forwarded as given; name and email are not validated.
package submit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/harvest/internal/storage"
)

// Entry is one high-score submission.
type Entry struct {
	ID          string
	Mode        string
	Name        string
	Email       string
	Score       int
	SubmittedAt time.Time
}

// NewEntry creates an entry with a fresh ID and the current time.
func NewEntry(mode, name, email string, score int) Entry {
	return Entry{
		ID:          uuid.NewString(),
		Mode:        mode,
		Name:        name,
		Email:       email,
		Score:       score,
		SubmittedAt: time.Now().UTC(),
	}
}

// Sink accepts submissions.
type Sink interface {
	Submit(ctx context.Context, e Entry) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, e Entry) error

// Submit calls f.
func (f SinkFunc) Submit(ctx context.Context, e Entry) error {
	return f(ctx, e)
}

// StoreSink records submissions in the local score database.
type StoreSink struct {
	store *storage.Store
}

// NewStoreSink creates a sink backed by store.
func NewStoreSink(store *storage.Store) *StoreSink {
	return &StoreSink{store: store}
}

// Submit saves the entry.
func (s *StoreSink) Submit(ctx context.Context, e Entry) error {
	if s.store == nil {
		return errors.New("submit: no score database")
	}
	err := s.store.SaveSubmission(ctx, storage.Submission{
		ID:    e.ID,
		Mode:  e.Mode,
		Name:  e.Name,
		Email: e.Email,
		Score: e.Score,
	})
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	return nil
}

// Multi fans a submission out to every sink. All sinks are tried; the
// returned error joins every failure.
type Multi []Sink

// Submit delivers e to each sink in order.
func (m Multi) Submit(ctx context.Context, e Entry) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Submit(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
