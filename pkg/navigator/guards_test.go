package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAge(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "0", wantErr: true},
		{input: "121", wantErr: true},
		{input: "1", want: 1},
		{input: "120", want: 120},
		{input: "29 years", want: 29},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
		{input: "1000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAge(tt.input)
			if tt.wantErr {
				g, ok := AsGateError(err)
				require.True(t, ok)
				assert.Equal(t, "Invalid Age", g.Title)
				assert.Equal(t, "Please enter a valid age.", g.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInterests(t *testing.T) {
	_, err := ParseInterests("cooking, tennis")
	g, ok := AsGateError(err)
	require.True(t, ok)
	assert.Equal(t, "More Interests Needed", g.Title)
	assert.Contains(t, g.Message, "at least 3")

	got, err := ParseInterests("cooking, tennis, writing")
	require.NoError(t, err)
	assert.Equal(t, []string{"cooking", "tennis", "writing"}, got)

	got, err = ParseInterests("cooking\n tennis,,\nwriting , ")
	require.NoError(t, err)
	assert.Equal(t, []string{"cooking", "tennis", "writing"}, got)
}

func TestSimpleGuards(t *testing.T) {
	tests := []struct {
		name      string
		run       func() error
		wantTitle string
	}{
		{"blank name", func() error { _, err := ValidateName("   "); return err }, "Name Required"},
		{"no orientation", func() error { _, _, err := ValidateGenderOrientation("Female", nil); return err }, "Selection Required"},
		{"no gender", func() error { _, _, err := ValidateGenderOrientation("", []string{"Male"}); return err }, "Selection Required"},
		{"unknown gender", func() error { _, _, err := ValidateGenderOrientation("Woman", []string{"Male"}); return err }, "Selection Required"},
		{"unknown orientation", func() error { _, _, err := ValidateGenderOrientation("Female", []string{"Male", "Men"}); return err }, "Selection Required"},
		{"no vibes", func() error { _, err := ValidateVibes([]string{" "}); return err }, "Selection Required"},
		{"blank trait", func() error { _, err := ValidateUniqueTrait("\t"); return err }, "One More Thing!"},
		{"no prompt", func() error { _, _, err := ValidateRating("", "x"); return err }, "Prompt Required"},
		{"no response", func() error { _, _, err := ValidateRating("My simple pleasures", " "); return err }, "Response Required"},
		{"no email", func() error { _, err := ValidateEmail(""); return err }, "Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, ok := AsGateError(tt.run())
			require.True(t, ok)
			assert.Equal(t, tt.wantTitle, g.Title)
		})
	}
}

func TestSearchPrompts(t *testing.T) {
	assert.Len(t, SearchPrompts(""), len(PromptCatalogue))
	assert.Equal(t, []string{"My simple pleasures"}, SearchPrompts("SIMPLE"))
	assert.Empty(t, SearchPrompts("zebra"))
}
