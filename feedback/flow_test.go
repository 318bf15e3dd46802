package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product_copy_studio/generator"
)

func TestSubmitShortTextKeepsModalOpen(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.Open(generator.SectionDescription, "English"))
	require.NoError(t, f.SetText("short"))

	_, err := f.Submit()
	assert.ErrorIs(t, err, ErrFeedbackTooShort)

	v := f.View()
	assert.Equal(t, Open, v.State)
	assert.Equal(t, "Feedback must be longer than 5 characters", v.Error)
	assert.Equal(t, "short", v.Text)
}

func TestSubmitCountsCharactersNotBytes(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.Open(generator.SectionDescription, "Japanese"))
	require.NoError(t, f.SetText("もっと短く"))
	_, err := f.Submit()
	assert.ErrorIs(t, err, ErrFeedbackTooShort)

	require.NoError(t, f.SetText("もっと短くして"))
	_, err = f.Submit()
	assert.NoError(t, err)
}

func TestSubmitAcceptedMovesToRegenerating(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.Open(generator.SectionMarketingHighlights, "French"))
	require.NoError(t, f.SetText("short"))
	_, _ = f.Submit()
	require.NoError(t, f.SetText("more energy please"))

	ticket, err := f.Submit()
	require.NoError(t, err)
	assert.Equal(t, Ticket{Section: generator.SectionMarketingHighlights, Language: "French", Feedback: "more energy please"}, ticket)

	v := f.View()
	assert.Equal(t, Regenerating, v.State)
	assert.Empty(t, v.Text)
	assert.Empty(t, v.Error)

	assert.ErrorIs(t, f.Open(generator.SectionDescription, "French"), ErrInvalidTransition)
	assert.ErrorIs(t, f.Cancel(), ErrInvalidTransition)

	f.Finish()
	assert.Equal(t, Idle, f.State())
}

func TestCancelClearsState(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.Open(generator.SectionTechnicalSpec, "German"))
	require.NoError(t, f.SetText("abc"))
	_, _ = f.Submit()

	require.NoError(t, f.Cancel())
	assert.Equal(t, View{State: Idle}, f.View())
}

func TestReopenRetargetsAndKeepsText(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.Open(generator.SectionTechnicalSpec, "German"))
	require.NoError(t, f.SetText("add the weight"))
	require.NoError(t, f.Open(generator.SectionDescription, "German"))

	v := f.View()
	assert.Equal(t, generator.SectionDescription, v.Section)
	assert.Equal(t, "add the weight", v.Text)
}

func TestTransitionsFromIdle(t *testing.T) {
	f := NewFlow()
	assert.ErrorIs(t, f.SetText("x"), ErrInvalidTransition)
	_, err := f.Submit()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NoError(t, f.Cancel())
}
