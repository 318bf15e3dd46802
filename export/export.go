// Package export renders one generated section as a downloadable document.
package export

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"

	"product_copy_studio/catalog"
	"product_copy_studio/generator"
)

type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatMarkdown:
		return FormatMarkdown, nil
	case FormatHTML:
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// ContentType is the MIME type of a rendered document.
func (f Format) ContentType() string {
	if f == FormatHTML {
		return "text/html; charset=utf-8"
	}
	return "text/markdown; charset=utf-8"
}

// Document holds one section ready to be written out.
type Document struct {
	Product  string
	Language string
	Section  generator.Section
	Text     string
}

func (d Document) title() string {
	label := d.Language
	if l, ok := catalog.LookupLanguage(d.Language); ok {
		label = l.Label
	}
	product := strings.TrimSpace(d.Product)
	if product == "" {
		return fmt.Sprintf("%s (%s)", d.Section.Title(), label)
	}
	return fmt.Sprintf("%s: %s (%s)", product, d.Section.Title(), label)
}

// Markdown renders d under a level-one heading. Line-oriented sections become
// bullet lists.
func Markdown(d Document) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(d.title())
	b.WriteString("\n\n")
	if d.Section == generator.SectionDescription {
		b.WriteString(strings.TrimSpace(d.Text))
		b.WriteString("\n")
		return b.String()
	}
	for _, line := range strings.Split(d.Text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "- "))
		b.WriteString("- ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// HTML converts the Markdown rendering into a standalone page.
func HTML(d Document) (string, error) {
	body, err := mdToHTML(Markdown(d))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	b.WriteString(html.EscapeString(d.title()))
	b.WriteString("</title>\n</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

// Render dispatches on f.
func Render(d Document, f Format) (string, error) {
	if f == FormatHTML {
		return HTML(d)
	}
	return Markdown(d), nil
}

func mdToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var unsafeName = regexp.MustCompile(`[^a-z0-9]+`)

// Filename is a download name such as "aurora-hub-english-technicalspec.md".
func Filename(d Document, f Format) string {
	parts := []string{}
	for _, p := range []string{d.Product, d.Language, string(d.Section)} {
		slug := strings.Trim(unsafeName.ReplaceAllString(strings.ToLower(p), "-"), "-")
		if slug != "" {
			parts = append(parts, slug)
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "content")
	}
	return strings.Join(parts, "-") + "." + string(f)
}
