package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"product_copy_studio/catalog"
	"product_copy_studio/form"
)

func snapshot() form.Snapshot {
	return form.Snapshot{
		ProductName:    "Aurora Hub",
		ProductImages:  []form.FileRef{{Name: "front.png"}},
		TechnicalDocs:  []form.FileRef{{Name: "spec.pdf"}, {Name: "manual.docx"}},
		AdditionalInfo: "ships in Q3",
		ContentType:    catalog.Technical,
		BrandVoice:     "calm, precise",
		TargetAudience: "system integrators",
	}
}

func TestBuildSectionPrompt(t *testing.T) {
	p := BuildSectionPrompt(snapshot(), "MandarinChinese", SectionMarketingHighlights)

	assert.Contains(t, p.System, "Language: Mandarin Chinese.")
	assert.Contains(t, p.System, "Marketing Highlights")
	assert.Contains(t, p.System, "Tone: Technical.")
	assert.Contains(t, p.System, "Brand voice: calm, precise")
	assert.Contains(t, p.User, "Product: Aurora Hub")
	assert.Contains(t, p.User, "Documents: spec.pdf, manual.docx")
	assert.Empty(t, p.History)
}

func TestBuildRevisionPromptWithPrevious(t *testing.T) {
	p := BuildRevisionPrompt(snapshot(), "English", SectionDescription, "Old copy.", "  shorter please ")

	assert.Contains(t, p.System, "revising")
	assert.Equal(t, "Feedback: shorter please\nReply with the revised content only.", p.User)
	if assert.Len(t, p.History, 2) {
		assert.Equal(t, "assistant", p.History[1].Role)
		assert.Equal(t, "Old copy.", p.History[1].Content)
	}
}

func TestBuildRevisionPromptWithoutPrevious(t *testing.T) {
	p := BuildRevisionPrompt(snapshot(), "English", SectionDescription, "", "shorter please")
	assert.Empty(t, p.History)
	assert.Contains(t, p.User, "Product: Aurora Hub")
	assert.Contains(t, p.User, "Feedback: shorter please")
}

func TestPostProcess(t *testing.T) {
	out, err := PostProcess("\n  - A\n- B \n")
	assert.NoError(t, err)
	assert.Equal(t, "- A\n- B", out)

	_, err = PostProcess(" \n\t")
	assert.ErrorIs(t, err, ErrEmptyOutput)
}
