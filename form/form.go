// Package form holds the user-entered product fields, their validation, and the
// record of what was last sent for generation.
package form

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"product_copy_studio/catalog"
)

// Field names as the rendering surface knows them.
const (
	FieldProductImages     = "productImages"
	FieldProductName       = "productName"
	FieldTechnicalDocs     = "technicalDocs"
	FieldAdditionalInfo    = "additionalInfo"
	FieldContentType       = "contentType"
	FieldBrandVoice        = "brandVoice"
	FieldTargetAudience    = "targetAudience"
	FieldSelectedLanguages = "selectedLanguages"
)

var (
	ErrIndexOutOfRange = errors.New("file index out of range")
	ErrUnknownField    = errors.New("unknown field")
	ErrUnknownKind     = errors.New("unknown file kind")
)

// Kind names one of the two file lists.
type Kind string

const (
	KindImages Kind = FieldProductImages
	KindDocs   Kind = FieldTechnicalDocs
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindImages, KindDocs:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// FileRef describes an uploaded file. Only the descriptor is kept.
type FileRef struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType,omitempty"`
}

// Snapshot is an immutable capture of the form values.
type Snapshot struct {
	ProductImages     []FileRef           `json:"productImages"`
	ProductName       string              `json:"productName"`
	TechnicalDocs     []FileRef           `json:"technicalDocs"`
	AdditionalInfo    string              `json:"additionalInfo"`
	ContentType       catalog.ContentType `json:"contentType"`
	BrandVoice        string              `json:"brandVoice"`
	TargetAudience    string              `json:"targetAudience"`
	SelectedLanguages []string            `json:"selectedLanguages"`
}

// Clone deep-copies the slices so the copy shares nothing with s.
func (s Snapshot) Clone() Snapshot {
	s.ProductImages = cloneFiles(s.ProductImages)
	s.TechnicalDocs = cloneFiles(s.TechnicalDocs)
	langs := make([]string, len(s.SelectedLanguages))
	copy(langs, s.SelectedLanguages)
	s.SelectedLanguages = langs
	return s
}

func cloneFiles(in []FileRef) []FileRef {
	out := make([]FileRef, len(in))
	copy(out, in)
	return out
}

// Record is the snapshot used for the last generation request.
type Record struct {
	Snapshot  Snapshot  `json:"snapshot"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewRecord(s Snapshot, at time.Time) *Record {
	return &Record{Snapshot: s.Clone(), CreatedAt: at}
}

// ValidationError maps field names to inline messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Form is the mutable form state. Not safe for concurrent use.
type Form struct {
	values    Snapshot
	errors    map[string]string
	submitted bool
}

func New() *Form {
	return &Form{
		values: Snapshot{
			ProductImages:     []FileRef{},
			TechnicalDocs:     []FileRef{},
			ContentType:       catalog.DefaultContentType,
			SelectedLanguages: []string{},
		},
		errors: map[string]string{},
	}
}

// Values returns a copy of the current values.
func (f *Form) Values() Snapshot { return f.values.Clone() }

// Errors returns a copy of the current inline errors.
func (f *Form) Errors() map[string]string {
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// AddFiles appends to a file list. Picker and drop zone both end up here.
func (f *Form) AddFiles(kind Kind, files ...FileRef) error {
	switch kind {
	case KindImages:
		f.values.ProductImages = append(f.values.ProductImages, files...)
	case KindDocs:
		f.values.TechnicalDocs = append(f.values.TechnicalDocs, files...)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	f.revalidate(string(kind))
	return nil
}

// RemoveFile deletes one entry by position.
func (f *Form) RemoveFile(kind Kind, index int) error {
	var list *[]FileRef
	switch kind {
	case KindImages:
		list = &f.values.ProductImages
	case KindDocs:
		list = &f.values.TechnicalDocs
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if index < 0 || index >= len(*list) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	next := make([]FileRef, 0, len(*list)-1)
	next = append(next, (*list)[:index]...)
	next = append(next, (*list)[index+1:]...)
	*list = next
	f.revalidate(string(kind))
	return nil
}

// SetText sets one of the free-text fields.
func (f *Form) SetText(field, value string) error {
	switch field {
	case FieldProductName:
		f.values.ProductName = value
	case FieldAdditionalInfo:
		f.values.AdditionalInfo = value
	case FieldBrandVoice:
		f.values.BrandVoice = value
	case FieldTargetAudience:
		f.values.TargetAudience = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	f.revalidate(field)
	return nil
}

func (f *Form) SetContentType(ct catalog.ContentType) {
	f.values.ContentType = ct
}

func (f *Form) SetLanguages(codes []string) {
	f.values.SelectedLanguages = append([]string{}, codes...)
	f.revalidate(FieldSelectedLanguages)
}

// Validate recomputes the error set for every field and returns it as an error
// when non-empty.
func (f *Form) Validate() error {
	f.errors = validate(f.values)
	if len(f.errors) == 0 {
		return nil
	}
	return &ValidationError{Fields: f.Errors()}
}

// Submit validates and returns a detached snapshot.
func (f *Form) Submit() (Snapshot, error) {
	f.submitted = true
	if err := f.Validate(); err != nil {
		return Snapshot{}, err
	}
	return f.values.Clone(), nil
}

// revalidate refreshes one field's error after the first submit attempt, so
// corrections clear their inline message as the user makes them.
func (f *Form) revalidate(field string) {
	if !f.submitted {
		return
	}
	all := validate(f.values)
	if msg, ok := all[field]; ok {
		f.errors[field] = msg
	} else {
		delete(f.errors, field)
	}
}

func validate(s Snapshot) map[string]string {
	errs := map[string]string{}
	if len(s.ProductImages) == 0 {
		errs[FieldProductImages] = "At least one product image is required"
	}
	if strings.TrimSpace(s.ProductName) == "" {
		errs[FieldProductName] = "Product name is required"
	}
	if len(s.TechnicalDocs) == 0 {
		errs[FieldTechnicalDocs] = "At least one technical document is required"
	}
	if len(s.SelectedLanguages) == 0 {
		errs[FieldSelectedLanguages] = "At least one language must be selected"
	} else {
		for _, code := range s.SelectedLanguages {
			if !catalog.Supported(code) {
				errs[FieldSelectedLanguages] = "Unsupported language: " + code
				break
			}
		}
	}
	return errs
}
