// Package studio drives generation runs and owns the resulting content map.
package studio

import (
	"context"
	"errors"
	"sync"
	"time"

	"product_copy_studio/form"
	"product_copy_studio/generator"
	"product_copy_studio/logging"
)

var (
	// ErrBusy rejects a run while another run or regeneration is in flight.
	ErrBusy = errors.New("a generation is already in progress")
	// ErrReservationUsed is returned when a reservation is run twice or after Release.
	ErrReservationUsed = errors.New("reservation already used")
)

// Update is what observers receive after each applied event.
type Update struct {
	Event   generator.StreamEvent `json:"event"`
	Content ContentMap            `json:"content"`
}

// Observer receives a private copy of the map after every applied event.
type Observer func(Update)

// Orchestrator consumes generator streams into a ContentMap. Runs never overlap:
// a call made while busy returns ErrBusy.
type Orchestrator struct {
	gen    generator.Generator
	logger *logging.Logger

	mu      sync.Mutex
	content ContentMap
	busy    bool
}

func New(gen generator.Generator, logger *logging.Logger) (*Orchestrator, error) {
	if gen == nil {
		return nil, errors.New("generator required")
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Orchestrator{gen: gen, logger: logger, content: ContentMap{}}, nil
}

// Snapshot returns a copy of the content map and the busy flag.
func (o *Orchestrator) Snapshot() (ContentMap, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.content.Clone(), o.busy
}

func (o *Orchestrator) Busy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.busy
}

// Reservation holds the busy slot between Reserve and the run that uses it.
// Exactly one of Run, Regenerate or Release should be called.
type Reservation struct {
	o    *Orchestrator
	used bool
}

// Reserve claims the busy slot without starting a run.
func (o *Orchestrator) Reserve() (*Reservation, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.busy {
		return nil, ErrBusy
	}
	o.busy = true
	return &Reservation{o: o}, nil
}

// Release gives the slot back unused. It is a no-op after Run or Regenerate.
func (r *Reservation) Release() {
	if r.used {
		return
	}
	r.used = true
	r.o.end()
}

// Run generates every section for snap's languages into a fresh map. On error
// the partial map stays as it is and the error is returned; nothing is retried.
func (o *Orchestrator) Run(ctx context.Context, snap form.Snapshot, observe Observer) error {
	r, err := o.Reserve()
	if err != nil {
		return err
	}
	return r.Run(ctx, snap, observe)
}

// Regenerate rewrites one section in every language of snap, merging into the
// existing entries. Events for other sections are dropped.
func (o *Orchestrator) Regenerate(ctx context.Context, snap form.Snapshot, sec generator.Section, feedback string, observe Observer) error {
	r, err := o.Reserve()
	if err != nil {
		return err
	}
	return r.Regenerate(ctx, snap, sec, feedback, observe)
}

func (r *Reservation) Run(ctx context.Context, snap form.Snapshot, observe Observer) error {
	if r.used {
		return ErrReservationUsed
	}
	r.used = true
	r.o.mu.Lock()
	r.o.content = ContentMap{}
	r.o.mu.Unlock()
	return r.o.consume(ctx, generator.Request{Snapshot: snap}, observe)
}

func (r *Reservation) Regenerate(ctx context.Context, snap form.Snapshot, sec generator.Section, feedback string, observe Observer) error {
	if r.used {
		return ErrReservationUsed
	}
	r.used = true
	r.o.mu.Lock()
	prev := make(map[string]string, len(r.o.content))
	for lang, c := range r.o.content {
		prev[lang] = c.Get(sec)
	}
	r.o.mu.Unlock()

	req := generator.Request{Snapshot: snap, Section: &sec, Feedback: feedback, Previous: prev}
	return r.o.consume(ctx, req, observe)
}

// consume runs with the busy slot already claimed and frees it when done.
func (o *Orchestrator) consume(ctx context.Context, req generator.Request, observe Observer) error {
	defer o.end()

	start := time.Now()
	log := o.logger.With("languages", req.Languages(), "scoped", req.Section != nil)
	if req.Section != nil {
		log = log.With("section", *req.Section)
	}

	stream, err := o.gen.Generate(ctx, req)
	if err != nil {
		log.Error("generation failed to start", "error", err)
		return err
	}
	defer stream.Close()

	applied := 0
	for stream.Next() {
		ev := stream.Current()
		if !req.Covers(ev.Section) {
			continue
		}
		update := o.apply(ev)
		applied++
		if observe != nil {
			observe(update)
		}
	}
	if err := stream.Err(); err != nil {
		log.Error("generation stopped", "error", err, "applied", applied)
		return err
	}
	log.Info("generation finished", "applied", applied, "elapsed", time.Since(start))
	return nil
}

func (o *Orchestrator) end() {
	o.mu.Lock()
	o.busy = false
	o.mu.Unlock()
}

func (o *Orchestrator) apply(ev generator.StreamEvent) Update {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.content.apply(ev)
	return Update{Event: ev, Content: o.content.Clone()}
}
