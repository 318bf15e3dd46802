package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// sseWriter defers the 200 and event-stream headers until the first event, so
// a run rejected before streaming can still answer with a JSON error.
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	started bool
	err     error
}

func newSSEWriter(w http.ResponseWriter) *sseWriter {
	f, _ := w.(http.Flusher)
	return &sseWriter{w: w, flusher: f}
}

func (s *sseWriter) start() {
	if s.started {
		return
	}
	s.started = true
	h := s.w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	s.w.WriteHeader(http.StatusOK)
}

// send writes one JSON event. The first write error sticks and later sends are dropped.
func (s *sseWriter) send(event string, v any) {
	if s.err != nil {
		return
	}
	s.start()
	data, err := json.Marshal(v)
	if err != nil {
		s.err = err
		return
	}
	if s.err = writeSSE(s.w, event, string(data)); s.err != nil {
		return
	}
	if s.flusher != nil {
		s.flusher.Flush()
	}
}

func writeSSE(w http.ResponseWriter, event string, data string) error {
	if strings.TrimSpace(event) != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", strings.TrimSpace(event)); err != nil {
			return err
		}
	}
	for _, line := range strings.Split(data, "\n") {
		if _, err := fmt.Fprintf(w, "data: %s\n", line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "\n")
	return err
}
