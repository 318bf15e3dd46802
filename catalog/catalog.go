// Package catalog is the static registry of content tones and target languages
// offered by the form's selection widgets.
package catalog

import "fmt"

// ContentType is the tone of the generated copy.
type ContentType string

const (
	Professional ContentType = "Professional"
	Casual       ContentType = "Casual"
	Technical    ContentType = "Technical"

	DefaultContentType = Professional
)

var contentTypes = []ContentType{Professional, Casual, Technical}

// ParseContentType accepts the exact registry value.
func ParseContentType(s string) (ContentType, error) {
	for _, ct := range contentTypes {
		if string(ct) == s {
			return ct, nil
		}
	}
	return "", fmt.Errorf("unknown content type %q", s)
}

// Flag is the display icon of a language.
type Flag struct {
	Country string `json:"country"`
	Emoji   string `json:"emoji"`
}

type Language struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Flag  Flag   `json:"flag"`
}

// Option is what the dropdown widgets render.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  *Flag  `json:"icon,omitempty"`
}

const DefaultLanguage = "English"

var languages = []Language{
	{Code: "English", Label: "English", Flag: Flag{Country: "GB", Emoji: "🇬🇧"}},
	{Code: "MandarinChinese", Label: "Mandarin Chinese", Flag: Flag{Country: "CN", Emoji: "🇨🇳"}},
	{Code: "Hindi", Label: "Hindi", Flag: Flag{Country: "IN", Emoji: "🇮🇳"}},
	{Code: "Spanish", Label: "Spanish", Flag: Flag{Country: "ES", Emoji: "🇪🇸"}},
	{Code: "French", Label: "French", Flag: Flag{Country: "FR", Emoji: "🇫🇷"}},
	{Code: "Arabic", Label: "Arabic", Flag: Flag{Country: "SA", Emoji: "🇸🇦"}},
	{Code: "Bengali", Label: "Bengali", Flag: Flag{Country: "BD", Emoji: "🇧🇩"}},
	{Code: "Portuguese", Label: "Portuguese", Flag: Flag{Country: "PT", Emoji: "🇵🇹"}},
	{Code: "Russian", Label: "Russian", Flag: Flag{Country: "RU", Emoji: "🇷🇺"}},
	{Code: "Japanese", Label: "Japanese", Flag: Flag{Country: "JP", Emoji: "🇯🇵"}},
}

// Languages returns the registry in display order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

func LookupLanguage(code string) (Language, bool) {
	for _, l := range languages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

func Supported(code string) bool {
	_, ok := LookupLanguage(code)
	return ok
}

// Rank is the registry position of code, or -1.
func Rank(code string) int {
	for i, l := range languages {
		if l.Code == code {
			return i
		}
	}
	return -1
}

func LanguageOptions() []Option {
	out := make([]Option, 0, len(languages))
	for _, l := range languages {
		out = append(out, languageOption(l))
	}
	return out
}

// FilterLanguages returns the options for codes, in registry order. Unknown codes are skipped.
func FilterLanguages(codes []string) []Option {
	want := make(map[string]bool, len(codes))
	for _, c := range codes {
		want[c] = true
	}
	var out []Option
	for _, l := range languages {
		if want[l.Code] {
			out = append(out, languageOption(l))
		}
	}
	return out
}

func ContentTypeOptions() []Option {
	out := make([]Option, 0, len(contentTypes))
	for _, ct := range contentTypes {
		out = append(out, Option{Value: string(ct), Label: string(ct)})
	}
	return out
}

func languageOption(l Language) Option {
	flag := l.Flag
	return Option{Value: l.Code, Label: l.Label, Icon: &flag}
}
