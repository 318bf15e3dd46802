package generator

import (
	"context"
	"strings"
	"time"
)

// Pacing is the pause after each partial event, per section.
type Pacing struct {
	Word      time.Duration // description, per word
	Line      time.Duration // technical spec, per line
	Highlight time.Duration // marketing highlights, per line
}

// DefaultPacing matches the cadence the UI was designed around.
var DefaultPacing = Pacing{
	Word:      100 * time.Millisecond,
	Line:      150 * time.Millisecond,
	Highlight: 200 * time.Millisecond,
}

func (p Pacing) delay(sec Section) time.Duration {
	switch sec {
	case SectionDescription:
		return p.Word
	case SectionTechnicalSpec:
		return p.Line
	default:
		return p.Highlight
	}
}

// Simulator streams canned copy instead of calling a model. It fills every
// section even for scoped requests; the caller filters.
type Simulator struct {
	Pacing Pacing
}

func NewSimulator(p Pacing) *Simulator {
	return &Simulator{Pacing: p}
}

// Generate fails with a *LookupError if any language has no template. No event
// is produced in that case.
func (s *Simulator) Generate(ctx context.Context, req Request) (Stream, error) {
	langs := req.Languages()
	if len(langs) == 0 {
		return nil, ErrNoLanguages
	}
	for _, code := range langs {
		if _, ok := templates[code]; !ok {
			return nil, &LookupError{Code: code}
		}
	}
	return &simStream{
		ctx:       ctx,
		pacing:    s.Pacing,
		languages: append([]string(nil), langs...),
	}, nil
}

type simStream struct {
	ctx       context.Context
	pacing    Pacing
	languages []string

	lang, sec int
	pieces    []string
	sep       string
	step      int
	acc       strings.Builder
	finalSent bool

	wait time.Duration
	cur  StreamEvent
	err  error
	done bool
}

func (s *simStream) Next() bool {
	if s.done {
		return false
	}
	if err := s.ctx.Err(); err != nil {
		return s.fail(err)
	}
	if s.wait > 0 {
		if err := sleep(s.ctx, s.wait); err != nil {
			return s.fail(err)
		}
		s.wait = 0
	}

	for s.lang < len(s.languages) {
		code := s.languages[s.lang]
		section := sections[s.sec]
		if s.pieces == nil {
			s.load(templates[code].text(section), section)
		}
		if s.step < len(s.pieces) {
			s.acc.WriteString(s.pieces[s.step])
			s.acc.WriteString(s.sep)
			s.step++
			s.cur = StreamEvent{Section: section, Content: strings.TrimSpace(s.acc.String()), Language: code}
			s.wait = s.pacing.delay(section)
			return true
		}
		if !s.finalSent {
			s.finalSent = true
			s.cur = StreamEvent{Section: section, Content: strings.TrimSpace(s.acc.String()), Language: code, IsComplete: true}
			return true
		}
		s.advance()
	}
	s.done = true
	return false
}

// load splits a section's text: words for the description, lines otherwise.
func (s *simStream) load(text string, sec Section) {
	s.acc.Reset()
	s.step = 0
	s.finalSent = false
	if sec == SectionDescription {
		s.sep = " "
	} else {
		s.sep = "\n"
	}
	s.pieces = strings.Split(text, s.sep)
}

func (s *simStream) advance() {
	s.pieces = nil
	s.sec++
	if s.sec == len(sections) {
		s.sec = 0
		s.lang++
	}
}

func (s *simStream) fail(err error) bool {
	s.err = err
	s.done = true
	return false
}

func (s *simStream) Current() StreamEvent { return s.cur }

func (s *simStream) Err() error { return s.err }

func (s *simStream) Close() error {
	s.done = true
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
