package generator

import "context"

// Stream is a forward-only sequence of events. After Next returns false, Err
// reports why: nil on exhaustion, the context error on cancellation, or the
// failure that stopped the run. A stream cannot be restarted.
type Stream interface {
	Next() bool
	Current() StreamEvent
	Err() error
	Close() error
}

// Generator is the seam between the studio and a content backend.
type Generator interface {
	Generate(ctx context.Context, req Request) (Stream, error)
}

// Settings configures a concrete backend.
type Settings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Pacing   Pacing
}

// Collect drains s into a slice. It closes s.
func Collect(s Stream) ([]StreamEvent, error) {
	defer s.Close()
	var out []StreamEvent
	for s.Next() {
		out = append(out, s.Current())
	}
	return out, s.Err()
}
