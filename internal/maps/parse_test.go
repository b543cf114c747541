package maps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStarsLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		ok       bool
	}{
		{
			name:     "English stars label",
			input:    "4.5 stars",
			expected: 4.5,
			ok:       true,
		},
		{
			name:     "Comma decimal",
			input:    "4,5 sterren",
			expected: 4.5,
			ok:       true,
		},
		{
			name:  "Empty label",
			input: "",
			ok:    false,
		},
		{
			name:  "No leading numeral",
			input: "stars 4.5",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseStarsLabel(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.expected, got, 0.001)
			}
		})
	}
}

func TestParseCountLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		ok       bool
	}{
		{
			name:     "Aria label with comma separator",
			input:    "1,234 reviews",
			expected: 1234,
			ok:       true,
		},
		{
			name:     "Non-breaking space separator",
			input:    "1 222 reviews",
			expected: 1222,
			ok:       true,
		},
		{
			name:     "Parenthesized form",
			input:    "(1,222)",
			expected: 1222,
			ok:       true,
		},
		{
			name:  "No digits",
			input: "reviews",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCountLabel(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestParseScoreText(t *testing.T) {
	got, ok := ParseScoreText(" 4,3 ")
	assert.True(t, ok)
	assert.InDelta(t, 4.3, got, 0.001)

	_, ok = ParseScoreText("n/a")
	assert.False(t, ok)
}
