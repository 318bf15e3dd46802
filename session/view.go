package session

import (
	"time"

	"product_copy_studio/feedback"
	"product_copy_studio/form"
	"product_copy_studio/generator"
	"product_copy_studio/studio"
	"product_copy_studio/widget"
)

type ChangedField struct {
	Field string `json:"field"`
	Label string `json:"label"`
}

type Widgets struct {
	ContentType     widget.SingleSelect `json:"contentType"`
	Languages       widget.MultiSelect  `json:"languages"`
	DisplayLanguage widget.SingleSelect `json:"displayLanguage"`
}

// View is everything the rendering surface needs to draw the page.
type View struct {
	SessionID       string                     `json:"session_id"`
	Values          form.Snapshot              `json:"values"`
	Errors          map[string]string          `json:"errors"`
	Widgets         Widgets                    `json:"widgets"`
	Content         studio.ContentMap          `json:"content"`
	Busy            bool                       `json:"busy"`
	Changed         []ChangedField             `json:"changedFields"`
	Feedback        feedback.View              `json:"feedback"`
	DisplayLanguage string                     `json:"displayLanguage"`
	Display         studio.Content             `json:"display"`
	SectionActions  map[generator.Section]bool `json:"sectionActions"`
	LastGeneratedAt *time.Time                 `json:"lastGeneratedAt,omitempty"`
	History         []Turn                     `json:"history"`
}

func (w *Workspace) View() View {
	content, busy := w.orch.Snapshot()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.refreshDisplayOptions()

	values := w.form.Values()
	changed := []ChangedField{}
	for _, f := range form.ChangedFields(values, w.last) {
		changed = append(changed, ChangedField{Field: f, Label: form.FieldLabel(f)})
	}

	v := View{
		SessionID: w.ID,
		Values:    values,
		Errors:    w.form.Errors(),
		Widgets: Widgets{
			ContentType:     *w.contentType,
			Languages:       *w.languages,
			DisplayLanguage: *w.display,
		},
		Content:         content,
		Busy:            busy,
		Changed:         changed,
		Feedback:        w.flow.View(),
		DisplayLanguage: w.display.Value,
		Display:         content[w.display.Value],
		History:         append([]Turn{}, w.history...),
	}
	v.Widgets.Languages.Values = append([]string{}, w.languages.Values...)
	v.SectionActions = make(map[generator.Section]bool, len(generator.Sections()))
	for _, sec := range generator.Sections() {
		v.SectionActions[sec] = !busy && v.Display.Get(sec) != ""
	}
	if w.last != nil {
		at := w.last.CreatedAt
		v.LastGeneratedAt = &at
	}
	return v
}
