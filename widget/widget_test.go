package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product_copy_studio/catalog"
)

func TestSingleSelectChooseClosesAndNotifiesOnce(t *testing.T) {
	s := NewSingleSelect(catalog.ContentTypeOptions(), "Professional", "Select content tone")
	var got []string
	s.OnChange = func(v string) { got = append(got, v) }

	s.Toggle()
	require.True(t, s.Open)

	changed, err := s.Choose("Casual")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, s.Open)
	assert.Equal(t, "Casual", s.Label())

	s.Toggle()
	changed, err = s.Choose("Casual")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.False(t, s.Open)
	assert.Equal(t, []string{"Casual"}, got)
}

func TestSingleSelectRejectsUnknown(t *testing.T) {
	s := NewSingleSelect(catalog.ContentTypeOptions(), "", "Select content tone")
	_, err := s.Choose("Poetic")
	assert.ErrorIs(t, err, ErrUnknownOption)
	assert.Equal(t, "Select content tone", s.Label())
}

func TestMultiSelectToggleKeepsOpen(t *testing.T) {
	m := NewMultiSelect(catalog.LanguageOptions(), "Select languages")
	var last []string
	m.OnChange = func(v []string) { last = v }

	m.Toggle()
	require.NoError(t, m.ToggleOption("French"))
	require.NoError(t, m.ToggleOption("English"))
	assert.True(t, m.Open)
	assert.Equal(t, []string{"French", "English"}, m.Values)
	assert.Equal(t, []string{"French", "English"}, last)

	require.NoError(t, m.ToggleOption("French"))
	assert.Equal(t, []string{"English"}, m.Values)
	assert.True(t, m.Has("English"))
	assert.False(t, m.Has("French"))
}

func TestMultiSelectRemoveAndSet(t *testing.T) {
	m := NewMultiSelect(catalog.LanguageOptions(), "")
	calls := 0
	m.OnChange = func([]string) { calls++ }

	m.Set([]string{"Hindi", "Hindi", "Elvish", "Arabic"})
	assert.Equal(t, []string{"Hindi", "Arabic"}, m.Values)

	m.Remove("Hindi")
	m.Remove("Hindi")
	assert.Equal(t, []string{"Arabic"}, m.Values)
	assert.Equal(t, 1, calls)
	assert.False(t, m.Open)

	assert.ErrorIs(t, m.ToggleOption("Elvish"), ErrUnknownOption)
}
