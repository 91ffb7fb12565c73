package submit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// DefaultTimeout bounds one HTTP submission.
const DefaultTimeout = 10 * time.Second

// payload is the JSON body posted to the remote endpoint.
type payload struct {
	ID          string    `json:"id"`
	Mode        string    `json:"mode"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Score       int       `json:"score"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// StatusError reports a non-2xx response from the endpoint.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("submit: server returned %d", e.Code)
	}
	return fmt.Sprintf("submit: server returned %d: %s", e.Code, e.Body)
}

// HTTPSink posts submissions as JSON to a remote endpoint.
type HTTPSink struct {
	url    string
	client *http.Client
}

// HTTPOption configures an HTTPSink.
type HTTPOption func(*HTTPSink)

// WithClient replaces the HTTP client.
func WithClient(c *http.Client) HTTPOption {
	return func(s *HTTPSink) {
		if c != nil {
			s.client = c
		}
	}
}

// NewHTTPSink creates a sink posting to url.
func NewHTTPSink(url string, opts ...HTTPOption) *HTTPSink {
	s := &HTTPSink{
		url:    url,
		client: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit posts e and succeeds on any 2xx status.
func (s *HTTPSink) Submit(ctx context.Context, e Entry) error {
	body, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(payload{
		ID:          e.ID,
		Mode:        e.Mode,
		Name:        e.Name,
		Email:       e.Email,
		Score:       e.Score,
		SubmittedAt: e.SubmittedAt,
	})
	if err != nil {
		return fmt.Errorf("submit: encode entry: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("submit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("submit: post %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(msg))}
	}
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
