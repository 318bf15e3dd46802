package generator

import "strings"

// PostProcess finalises accumulated model output. Trimming only, so the final
// event is never shorter than the partial events that preceded it.
func PostProcess(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", ErrEmptyOutput
	}
	return text, nil
}
