package studio

import (
	"sort"

	"product_copy_studio/catalog"
	"product_copy_studio/generator"
)

// Content is the generated copy for one language.
type Content struct {
	Description         string `json:"description"`
	TechnicalSpec       string `json:"technicalSpec"`
	MarketingHighlights string `json:"marketingHighlights"`
}

func (c Content) Get(sec generator.Section) string {
	switch sec {
	case generator.SectionDescription:
		return c.Description
	case generator.SectionTechnicalSpec:
		return c.TechnicalSpec
	case generator.SectionMarketingHighlights:
		return c.MarketingHighlights
	}
	return ""
}

func (c *Content) Set(sec generator.Section, text string) {
	switch sec {
	case generator.SectionDescription:
		c.Description = text
	case generator.SectionTechnicalSpec:
		c.TechnicalSpec = text
	case generator.SectionMarketingHighlights:
		c.MarketingHighlights = text
	}
}

// ContentMap is keyed by language code.
type ContentMap map[string]Content

func (m ContentMap) Clone() ContentMap {
	out := make(ContentMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Languages lists the keys in registry order; unknown codes sort last by name.
func (m ContentMap) Languages() []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := catalog.Rank(out[i]), catalog.Rank(out[j])
		if ri < 0 {
			ri = len(out) + 1000
		}
		if rj < 0 {
			rj = len(out) + 1000
		}
		if ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}

// apply writes ev by full replacement of the section's text.
func (m ContentMap) apply(ev generator.StreamEvent) {
	c := m[ev.Language]
	c.Set(ev.Section, ev.Content)
	m[ev.Language] = c
}
