package generator

import (
	"fmt"

	"product_copy_studio/form"
)

// Section is one of the generated content kinds.
type Section string

const (
	SectionDescription         Section = "description"
	SectionTechnicalSpec       Section = "technicalSpec"
	SectionMarketingHighlights Section = "marketingHighlights"
)

var sections = []Section{SectionDescription, SectionTechnicalSpec, SectionMarketingHighlights}

// Sections returns the sections in emission order.
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

func ParseSection(s string) (Section, error) {
	for _, sec := range sections {
		if string(sec) == s {
			return sec, nil
		}
	}
	return "", fmt.Errorf("unknown section %q", s)
}

// Title is the heading shown above a section.
func (s Section) Title() string {
	switch s {
	case SectionDescription:
		return "Product Description"
	case SectionTechnicalSpec:
		return "Technical Specifications"
	case SectionMarketingHighlights:
		return "Marketing Highlights"
	}
	return string(s)
}

// StreamEvent carries the full accumulated text of one section for one language.
// Content never shrinks across events for the same (Section, Language) in one run.
type StreamEvent struct {
	Section    Section `json:"sectionKind"`
	Content    string  `json:"content"`
	Language   string  `json:"language"`
	IsComplete bool    `json:"isComplete"`
}

// Request is the input of one generation run.
type Request struct {
	Snapshot form.Snapshot
	// Section scopes a regeneration. Nil means all sections.
	Section *Section
	// Feedback is the user's improvement text for a scoped regeneration.
	Feedback string
	// Previous holds the current text of the scoped section, keyed by language.
	Previous map[string]string
}

// Languages is the ordered list of target languages of the request.
func (r Request) Languages() []string {
	return r.Snapshot.SelectedLanguages
}

// Covers reports whether sec is part of the request's scope.
func (r Request) Covers(sec Section) bool {
	return r.Section == nil || *r.Section == sec
}
