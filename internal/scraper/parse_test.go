package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Euro sign and label",
			input:    "€ 1,234.50",
			expected: "1,234.50",
		},
		{
			name:     "Currency code prefix",
			input:    "US$1,234",
			expected: "1,234",
		},
		{
			name:     "Plain number",
			input:    "189",
			expected: "189",
		},
		{
			name:     "Nothing numeric",
			input:    "price on request",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePrice(tt.input))
		})
	}
}

func TestParseReviewCount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		ok       bool
	}{
		{
			name:     "Plain label",
			input:    "Very good 29 reviews",
			expected: 29,
			ok:       true,
		},
		{
			name:     "Singular form",
			input:    "1 review",
			expected: 1,
			ok:       true,
		},
		{
			name:     "Non-breaking space thousands separator",
			input:    "1 222 reviews",
			expected: 1222,
			ok:       true,
		},
		{
			name:     "Dutch label",
			input:    "Fantastisch 1.222 beoordelingen",
			expected: 1222,
			ok:       true,
		},
		{
			name:     "Parenthesized fallback",
			input:    "(1,222)",
			expected: 1222,
			ok:       true,
		},
		{
			name:  "No numeric token",
			input: "Exceptional",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseReviewCount(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		ok       bool
	}{
		{
			name:     "Plain score",
			input:    "8.7",
			expected: 8.7,
			ok:       true,
		},
		{
			name:     "Comma decimal",
			input:    "8,7",
			expected: 8.7,
			ok:       true,
		},
		{
			name:     "Score inside a label",
			input:    "Scored 9.2",
			expected: 9.2,
			ok:       true,
		},
		{
			name:  "No numeral",
			input: "Superb",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseScore(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.expected, got, 0.001)
			}
		})
	}
}

func TestCanonicalLink(t *testing.T) {
	assert.Equal(t,
		"https://www.booking.com/hotel/nl/zeezicht.html",
		CanonicalLink("https://www.booking.com/hotel/nl/zeezicht.html?aid=304142&label=gen173nr"))
	assert.Equal(t,
		"https://www.booking.com/hotel/nl/zeezicht.html",
		CanonicalLink("https://www.booking.com/hotel/nl/zeezicht.html"))
}

func TestStayDates(t *testing.T) {
	checkin, checkout := StayDates(
		"https://www.booking.com/searchresults.html?ss=Zandvoort&checkin=2025-07-04&checkout=2025-07-07&group_adults=2")
	assert.Equal(t, "2025-07-04", checkin)
	assert.Equal(t, "2025-07-07", checkout)

	checkin, checkout = StayDates("https://www.booking.com/searchresults.html?ss=Zandvoort")
	assert.Empty(t, checkin)
	assert.Empty(t, checkout)
}
