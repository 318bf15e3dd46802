// Package session keeps one user's studio state and turns rendering-surface
// intents into calls on the form, widgets, orchestrator and feedback flow.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"product_copy_studio/catalog"
	"product_copy_studio/feedback"
	"product_copy_studio/form"
	"product_copy_studio/generator"
	"product_copy_studio/logging"
	"product_copy_studio/studio"
	"product_copy_studio/widget"
)

var (
	ErrNotFound      = errors.New("session not found")
	ErrNoGeneration  = errors.New("nothing has been generated yet")
	ErrNoContent     = errors.New("no generated content for that section")
	ErrUnknownWidget = errors.New("unknown widget")
)

// Widget names accepted by ToggleWidget and SelectOption.
const (
	WidgetContentType     = "contentType"
	WidgetLanguages       = "languages"
	WidgetDisplayLanguage = "displayLanguage"
)

type TurnKind string

const (
	TurnDraft    TurnKind = "draft"
	TurnRevision TurnKind = "revision"
)

// Turn is one generation request in the workspace history.
type Turn struct {
	ID        string            `json:"id"`
	Kind      TurnKind          `json:"kind"`
	Languages []string          `json:"languages"`
	Section   generator.Section `json:"section,omitempty"`
	Language  string            `json:"language,omitempty"`
	Feedback  string            `json:"feedback,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	Err       string            `json:"error,omitempty"`
}

// FieldPatch carries the form edits of one request. Nil fields stay as they are.
type FieldPatch struct {
	ProductName       *string  `json:"productName,omitempty"`
	AdditionalInfo    *string  `json:"additionalInfo,omitempty"`
	BrandVoice        *string  `json:"brandVoice,omitempty"`
	TargetAudience    *string  `json:"targetAudience,omitempty"`
	ContentType       *string  `json:"contentType,omitempty"`
	SelectedLanguages []string `json:"selectedLanguages,omitempty"`
}

type Workspace struct {
	ID string

	logger *logging.Logger
	orch   *studio.Orchestrator
	flow   *feedback.Flow
	now    func() time.Time

	mu          sync.Mutex
	form        *form.Form
	contentType *widget.SingleSelect
	languages   *widget.MultiSelect
	display     *widget.SingleSelect
	last        *form.Record
	history     []Turn
}

func NewWorkspace(id string, gen generator.Generator, logger *logging.Logger) (*Workspace, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	logger = logger.With("session", id)
	orch, err := studio.New(gen, logger)
	if err != nil {
		return nil, err
	}
	w := &Workspace{
		ID:     id,
		logger: logger,
		orch:   orch,
		flow:   feedback.NewFlow(),
		now:    time.Now,
		form:   form.New(),
	}
	w.contentType = widget.NewSingleSelect(catalog.ContentTypeOptions(), string(catalog.DefaultContentType), "Select content type")
	w.contentType.OnChange = func(v string) {
		w.form.SetContentType(catalog.ContentType(v))
	}
	w.languages = widget.NewMultiSelect(catalog.LanguageOptions(), "Select languages")
	w.languages.OnChange = w.languagesChanged
	w.display = widget.NewSingleSelect(nil, catalog.DefaultLanguage, "Select language")
	w.display.Compact = true
	return w, nil
}

// languagesChanged runs with mu held.
func (w *Workspace) languagesChanged(values []string) {
	w.form.SetLanguages(values)
	for _, v := range values {
		if v == w.display.Value {
			return
		}
	}
	if len(values) > 0 {
		w.display.Value = values[0]
	} else {
		w.display.Value = catalog.DefaultLanguage
	}
}

func (w *Workspace) AddFiles(kind form.Kind, files ...form.FileRef) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form.AddFiles(kind, files...)
}

func (w *Workspace) DeleteFile(kind form.Kind, index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form.RemoveFile(kind, index)
}

// UpdateFields applies a patch. Unknown content types and languages are
// rejected before anything is changed.
func (w *Workspace) UpdateFields(p FieldPatch) error {
	if p.ContentType != nil {
		if _, err := catalog.ParseContentType(*p.ContentType); err != nil {
			return fmt.Errorf("%w: %v", widget.ErrUnknownOption, err)
		}
	}
	for _, code := range p.SelectedLanguages {
		if !catalog.Supported(code) {
			return fmt.Errorf("%w: %q", widget.ErrUnknownOption, code)
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	texts := []struct {
		field string
		value *string
	}{
		{form.FieldProductName, p.ProductName},
		{form.FieldAdditionalInfo, p.AdditionalInfo},
		{form.FieldBrandVoice, p.BrandVoice},
		{form.FieldTargetAudience, p.TargetAudience},
	}
	for _, t := range texts {
		if t.value == nil {
			continue
		}
		if err := w.form.SetText(t.field, *t.value); err != nil {
			return err
		}
	}
	if p.ContentType != nil {
		if _, err := w.contentType.Choose(*p.ContentType); err != nil {
			return err
		}
	}
	if p.SelectedLanguages != nil {
		w.languages.Set(p.SelectedLanguages)
		w.languagesChanged(append([]string{}, w.languages.Values...))
	}
	return nil
}

func (w *Workspace) ToggleWidget(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch name {
	case WidgetContentType:
		w.contentType.Toggle()
	case WidgetLanguages:
		w.languages.Toggle()
	case WidgetDisplayLanguage:
		w.display.Toggle()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownWidget, name)
	}
	return nil
}

// SelectOption is a click on a dropdown entry. For the language selector it
// toggles membership; the single selects choose and close.
func (w *Workspace) SelectOption(name, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch name {
	case WidgetContentType:
		_, err := w.contentType.Choose(value)
		return err
	case WidgetLanguages:
		return w.languages.ToggleOption(value)
	case WidgetDisplayLanguage:
		w.refreshDisplayOptions()
		_, err := w.display.Choose(value)
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownWidget, name)
}

// RemoveLanguage drops one language tag.
func (w *Workspace) RemoveLanguage(code string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.languages.Remove(code)
}

// CloseWidgets is a click outside every dropdown.
func (w *Workspace) CloseWidgets() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closeWidgets()
}

func (w *Workspace) closeWidgets() {
	w.contentType.Close()
	w.languages.Close()
	w.display.Close()
}

func (w *Workspace) SelectDisplayLanguage(code string) error {
	return w.SelectOption(WidgetDisplayLanguage, code)
}

// refreshDisplayOptions limits the display selector to languages with content.
func (w *Workspace) refreshDisplayOptions() {
	content, _ := w.orch.Snapshot()
	w.display.Options = catalog.FilterLanguages(content.Languages())
}

// Submit validates the form, records the snapshot and runs a full generation.
// It blocks until the run ends; observe sees every applied event. The busy
// slot is claimed before the record changes, so a rejected submit leaves the
// record of the running generation in place.
func (w *Workspace) Submit(ctx context.Context, observe studio.Observer) error {
	res, err := w.orch.Reserve()
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.closeWidgets()
	snap, err := w.form.Submit()
	if err != nil {
		w.mu.Unlock()
		res.Release()
		return err
	}
	w.last = form.NewRecord(snap, w.now())
	w.mu.Unlock()

	w.logger.Info("form submitted", "product", snap.ProductName, "languages", snap.SelectedLanguages, "content_type", snap.ContentType)
	err = res.Run(ctx, snap, observe)
	w.appendTurn(Turn{Kind: TurnDraft, Languages: snap.SelectedLanguages}, err)
	return err
}

// OpenFeedback opens the modal on one section that has content. An empty
// language means the current display language.
func (w *Workspace) OpenFeedback(sec generator.Section, language string) error {
	res, err := w.orch.Reserve()
	if err != nil {
		return err
	}
	defer res.Release()

	w.mu.Lock()
	if language == "" {
		language = w.display.Value
	}
	hasRecord := w.last != nil
	w.mu.Unlock()
	if !hasRecord {
		return ErrNoGeneration
	}
	content, _ := w.orch.Snapshot()
	if content[language].Get(sec) == "" {
		return fmt.Errorf("%w: %s/%s", ErrNoContent, language, sec)
	}
	return w.flow.Open(sec, language)
}

func (w *Workspace) CancelFeedback() error {
	return w.flow.Cancel()
}

// SubmitFeedback validates text and, when accepted, regenerates the open
// section in every language of the last record.
func (w *Workspace) SubmitFeedback(ctx context.Context, text string, observe studio.Observer) error {
	res, err := w.orch.Reserve()
	if err != nil {
		return err
	}
	w.mu.Lock()
	last := w.last
	w.mu.Unlock()
	if last == nil {
		res.Release()
		return ErrNoGeneration
	}
	if err := w.flow.SetText(text); err != nil {
		res.Release()
		return err
	}
	ticket, err := w.flow.Submit()
	if err != nil {
		res.Release()
		return err
	}
	defer w.flow.Finish()

	w.logger.Info("feedback submitted", "section", ticket.Section, "language", ticket.Language, "feedback", ticket.Feedback)
	err = res.Regenerate(ctx, last.Snapshot, ticket.Section, ticket.Feedback, observe)
	w.appendTurn(Turn{
		Kind:      TurnRevision,
		Languages: last.Snapshot.SelectedLanguages,
		Section:   ticket.Section,
		Language:  ticket.Language,
		Feedback:  ticket.Feedback,
	}, err)
	return err
}

func (w *Workspace) appendTurn(t Turn, err error) {
	t.ID = uuid.NewString()
	t.CreatedAt = w.now()
	if err != nil {
		t.Err = err.Error()
	}
	w.mu.Lock()
	w.history = append(w.history, t)
	w.mu.Unlock()
}

// SectionText returns one generated section and the product name it was
// generated for.
func (w *Workspace) SectionText(language string, sec generator.Section) (string, string, error) {
	w.mu.Lock()
	last := w.last
	w.mu.Unlock()
	if last == nil {
		return "", "", ErrNoGeneration
	}
	content, _ := w.orch.Snapshot()
	text := content[language].Get(sec)
	if text == "" {
		return "", "", fmt.Errorf("%w: %s/%s", ErrNoContent, language, sec)
	}
	return text, last.Snapshot.ProductName, nil
}

// Record returns the last generation record, or nil.
func (w *Workspace) Record() *form.Record {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.last == nil {
		return nil
	}
	r := *w.last
	r.Snapshot = r.Snapshot.Clone()
	return &r
}
