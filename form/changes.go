package form

import (
	"regexp"
	"strings"
)

// ChangedFields reports which fields of current differ from the last generation
// record. Scalars compare exactly, file lists by count and positional name, the
// language selection as a set. A nil record means nothing has been generated yet.
func ChangedFields(current Snapshot, last *Record) []string {
	changed := []string{}
	if last == nil {
		return changed
	}
	prev := last.Snapshot

	scalars := []struct {
		name     string
		cur, old string
	}{
		{FieldProductName, current.ProductName, prev.ProductName},
		{FieldAdditionalInfo, current.AdditionalInfo, prev.AdditionalInfo},
		{FieldContentType, string(current.ContentType), string(prev.ContentType)},
		{FieldBrandVoice, current.BrandVoice, prev.BrandVoice},
		{FieldTargetAudience, current.TargetAudience, prev.TargetAudience},
	}
	for _, s := range scalars {
		if s.cur != s.old {
			changed = append(changed, s.name)
		}
	}

	if !sameFileNames(current.ProductImages, prev.ProductImages) {
		changed = append(changed, FieldProductImages)
	}
	if !sameFileNames(current.TechnicalDocs, prev.TechnicalDocs) {
		changed = append(changed, FieldTechnicalDocs)
	}
	if !sameSet(current.SelectedLanguages, prev.SelectedLanguages) {
		changed = append(changed, FieldSelectedLanguages)
	}
	return changed
}

// sameFileNames ignores content: a same-named replacement is not a change.
func sameFileNames(a, b []FileRef) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			return false
		}
	}
	return true
}

func sameSet(a, b []string) bool {
	as := make(map[string]struct{}, len(a))
	for _, v := range a {
		as[v] = struct{}{}
	}
	bs := make(map[string]struct{}, len(b))
	for _, v := range b {
		bs[v] = struct{}{}
	}
	if len(as) != len(bs) {
		return false
	}
	for v := range as {
		if _, ok := bs[v]; !ok {
			return false
		}
	}
	return true
}

var upperRe = regexp.MustCompile(`([A-Z])`)

// FieldLabel turns a field name into banner text, e.g. technicalDocs -> "Technical Documents".
func FieldLabel(field string) string {
	if field == "" {
		return ""
	}
	s := upperRe.ReplaceAllString(field, " $1")
	s = strings.ToUpper(s[:1]) + s[1:]
	return strings.Replace(s, "Docs", "Documents", 1)
}
