package generator

import (
	"fmt"
	"strings"

	"product_copy_studio/catalog"
	"product_copy_studio/form"
)

// Prompt is the message set sent to a model for one section in one language.
type Prompt struct {
	System  string
	User    string
	History []Message
}

// Message is an optional prior turn.
type Message struct {
	Role    string
	Content string
}

var sectionBriefs = map[Section]string{
	SectionDescription:         "Write a product description of two to four sentences as a single paragraph.",
	SectionTechnicalSpec:       "Write the technical specifications as a list, one item per line, each line starting with \"- \".",
	SectionMarketingHighlights: "Write three to five marketing highlights, one per line, each line starting with an emoji.",
}

// BuildSectionPrompt builds the first-draft prompt for (language, section).
func BuildSectionPrompt(snap form.Snapshot, language string, sec Section) Prompt {
	return Prompt{
		System: systemPrompt(snap, language, sec),
		User:   productBrief(snap) + "\nReply with the content only.",
	}
}

// BuildRevisionPrompt asks for a rewrite of prev following the user's feedback.
func BuildRevisionPrompt(snap form.Snapshot, language string, sec Section, prev, feedback string) Prompt {
	var sb strings.Builder
	sb.WriteString(systemPrompt(snap, language, sec))
	sb.WriteString("You are revising existing copy. Apply the feedback, keep the format of the section.\n")

	var history []Message
	if strings.TrimSpace(prev) != "" {
		history = append(history,
			Message{Role: "user", Content: productBrief(snap)},
			Message{Role: "assistant", Content: prev},
		)
	}
	user := fmt.Sprintf("Feedback: %s\nReply with the revised content only.", strings.TrimSpace(feedback))
	if len(history) == 0 {
		user = productBrief(snap) + "\n" + user
	}
	return Prompt{System: sb.String(), User: user, History: history}
}

func systemPrompt(snap form.Snapshot, language string, sec Section) string {
	label := language
	if l, ok := catalog.LookupLanguage(language); ok {
		label = l.Label
	}
	var sb strings.Builder
	sb.WriteString("You are a product copywriter. Output plain text, no Markdown headings, no code fences.\n")
	sb.WriteString(fmt.Sprintf("- Language: %s.\n", label))
	sb.WriteString(fmt.Sprintf("- Section: %s. %s\n", sec.Title(), sectionBriefs[sec]))
	if snap.ContentType != "" {
		sb.WriteString(fmt.Sprintf("- Tone: %s.\n", snap.ContentType))
	}
	if v := strings.TrimSpace(snap.BrandVoice); v != "" {
		sb.WriteString(fmt.Sprintf("- Brand voice: %s\n", v))
	}
	if v := strings.TrimSpace(snap.TargetAudience); v != "" {
		sb.WriteString(fmt.Sprintf("- Target audience: %s\n", v))
	}
	return sb.String()
}

func productBrief(snap form.Snapshot) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Product: %s\n", strings.TrimSpace(snap.ProductName)))
	if v := strings.TrimSpace(snap.AdditionalInfo); v != "" {
		sb.WriteString(fmt.Sprintf("Details: %s\n", v))
	}
	if names := fileNames(snap.ProductImages); names != "" {
		sb.WriteString(fmt.Sprintf("Images: %s\n", names))
	}
	if names := fileNames(snap.TechnicalDocs); names != "" {
		sb.WriteString(fmt.Sprintf("Documents: %s\n", names))
	}
	return sb.String()
}

func fileNames(files []form.FileRef) string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	return strings.Join(names, ", ")
}
