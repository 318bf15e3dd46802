// Package widget holds the dropdown selection controls. They own only their
// open/closed state and report selection changes to a callback.
package widget

import (
	"errors"
	"fmt"

	"product_copy_studio/catalog"
)

var ErrUnknownOption = errors.New("unknown option")

// SingleSelect is a one-of-many dropdown.
type SingleSelect struct {
	Options     []catalog.Option `json:"options"`
	Value       string           `json:"value"`
	Placeholder string           `json:"placeholder"`
	Compact     bool             `json:"compact,omitempty"`
	Open        bool             `json:"open"`

	OnChange func(value string) `json:"-"`
}

func NewSingleSelect(options []catalog.Option, value, placeholder string) *SingleSelect {
	return &SingleSelect{Options: options, Value: value, Placeholder: placeholder}
}

func (s *SingleSelect) Toggle() { s.Open = !s.Open }

// Close handles a click outside the control.
func (s *SingleSelect) Close() { s.Open = false }

// Choose selects value and closes the dropdown. OnChange fires only when the value differs.
func (s *SingleSelect) Choose(value string) (bool, error) {
	if !containsOption(s.Options, value) {
		return false, fmt.Errorf("%w: %q", ErrUnknownOption, value)
	}
	s.Open = false
	if s.Value == value {
		return false, nil
	}
	s.Value = value
	if s.OnChange != nil {
		s.OnChange(value)
	}
	return true, nil
}

// Selected returns the option for the current value.
func (s *SingleSelect) Selected() (catalog.Option, bool) {
	for _, o := range s.Options {
		if o.Value == s.Value {
			return o, true
		}
	}
	return catalog.Option{}, false
}

// Label is what the closed button shows.
func (s *SingleSelect) Label() string {
	if o, ok := s.Selected(); ok {
		return o.Label
	}
	return s.Placeholder
}

// MultiSelect is a many-of-many dropdown with removable tags.
type MultiSelect struct {
	Options     []catalog.Option `json:"options"`
	Values      []string         `json:"values"`
	Placeholder string           `json:"placeholder"`
	Open        bool             `json:"open"`

	OnChange func(values []string) `json:"-"`
}

func NewMultiSelect(options []catalog.Option, placeholder string) *MultiSelect {
	return &MultiSelect{Options: options, Values: []string{}, Placeholder: placeholder}
}

func (m *MultiSelect) Toggle() { m.Open = !m.Open }

func (m *MultiSelect) Close() { m.Open = false }

func (m *MultiSelect) Has(value string) bool {
	for _, v := range m.Values {
		if v == value {
			return true
		}
	}
	return false
}

// ToggleOption flips membership of value. The dropdown stays as it is.
func (m *MultiSelect) ToggleOption(value string) error {
	if !containsOption(m.Options, value) {
		return fmt.Errorf("%w: %q", ErrUnknownOption, value)
	}
	if m.Has(value) {
		m.Values = without(m.Values, value)
	} else {
		m.Values = append(m.Values, value)
	}
	m.changed()
	return nil
}

// Remove drops a tag. Removing an unselected value is a no-op.
func (m *MultiSelect) Remove(value string) {
	if !m.Has(value) {
		return
	}
	m.Values = without(m.Values, value)
	m.changed()
}

// Set replaces the selection, dropping duplicates and unknown values.
func (m *MultiSelect) Set(values []string) {
	seen := make(map[string]bool, len(values))
	next := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] || !containsOption(m.Options, v) {
			continue
		}
		seen[v] = true
		next = append(next, v)
	}
	m.Values = next
}

func (m *MultiSelect) changed() {
	if m.OnChange != nil {
		out := make([]string, len(m.Values))
		copy(out, m.Values)
		m.OnChange(out)
	}
}

func containsOption(options []catalog.Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}

func without(values []string, drop string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != drop {
			out = append(out, v)
		}
	}
	return out
}
