package generator

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrNoLanguages         = errors.New("at least one language is required")
	ErrEmptyOutput         = errors.New("model returned empty content")
)

// LookupError is returned when a requested language has no content source.
type LookupError struct {
	Code string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedLanguage, e.Code)
}

func (e *LookupError) Is(target error) bool { return target == ErrUnsupportedLanguage }

// GenerationError wraps a failure while consuming a stream.
type GenerationError struct {
	Language string
	Section  Section
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s/%s: %v", e.Language, e.Section, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
