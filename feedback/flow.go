// Package feedback holds the per-section feedback modal and its transitions.
package feedback

import (
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"product_copy_studio/generator"
)

// MinLength is the number of characters feedback must exceed.
const MinLength = 5

var (
	ErrFeedbackTooShort  = errors.New("feedback too short")
	ErrInvalidTransition = errors.New("invalid feedback transition")
)

// TooShortMessage is shown inline when feedback is rejected.
var TooShortMessage = fmt.Sprintf("Feedback must be longer than %d characters", MinLength)

type State string

const (
	Idle         State = "idle"
	Open         State = "open"
	Regenerating State = "regenerating"
)

// Ticket is what a successful submit hands to the regeneration step.
type Ticket struct {
	Section  generator.Section `json:"section"`
	Language string            `json:"language"`
	Feedback string            `json:"feedback"`
}

// View is the render model of the modal.
type View struct {
	State    State             `json:"state"`
	Section  generator.Section `json:"section,omitempty"`
	Language string            `json:"language,omitempty"`
	Text     string            `json:"text"`
	Error    string            `json:"error,omitempty"`
}

type Flow struct {
	mu       sync.Mutex
	state    State
	section  generator.Section
	language string
	text     string
	err      string
}

func NewFlow() *Flow {
	return &Flow{state: Idle}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return View{State: f.state, Section: f.section, Language: f.language, Text: f.text, Error: f.err}
}

// Open targets the modal at one section and language. Reopening while already
// open re-targets it and keeps the typed text.
func (f *Flow) Open(sec generator.Section, language string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == Regenerating {
		return fmt.Errorf("%w: open while regenerating", ErrInvalidTransition)
	}
	f.state = Open
	f.section = sec
	f.language = language
	return nil
}

func (f *Flow) SetText(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Open {
		return fmt.Errorf("%w: edit while %s", ErrInvalidTransition, f.state)
	}
	f.text = text
	return nil
}

// Cancel closes the modal and drops any text and error.
func (f *Flow) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == Regenerating {
		return fmt.Errorf("%w: cancel while regenerating", ErrInvalidTransition)
	}
	f.reset()
	return nil
}

// Submit validates the typed text. Rejected text leaves the modal open with an
// inline message; accepted text moves the flow to Regenerating.
func (f *Flow) Submit() (Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Open {
		return Ticket{}, fmt.Errorf("%w: submit while %s", ErrInvalidTransition, f.state)
	}
	if utf8.RuneCountInString(f.text) <= MinLength {
		f.err = TooShortMessage
		return Ticket{}, ErrFeedbackTooShort
	}
	t := Ticket{Section: f.section, Language: f.language, Feedback: f.text}
	f.state = Regenerating
	f.text = ""
	f.err = ""
	return t, nil
}

// Finish returns to Idle once the regeneration has completed or failed.
func (f *Flow) Finish() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

func (f *Flow) reset() {
	f.state = Idle
	f.section = ""
	f.language = ""
	f.text = ""
	f.err = ""
}
