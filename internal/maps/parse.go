package maps

import (
	"regexp"
	"strconv"
	"strings"
)

var countTokenRe = regexp.MustCompile(`(\d[\d,.\x{00a0} ]*)`)
var parenTokenRe = regexp.MustCompile(`\((\d[\d,.\x{00a0} ]*)\)`)

// ParseStarsLabel reads the score from a label like "4.5 stars" or
// "4,5 sterren" (the numeral leads, comma decimals allowed).
func ParseStarsLabel(label string) (float64, bool) {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(fields[0], ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseScoreText reads a bare widget numeral such as "4.5" or "4,5".
func ParseScoreText(text string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(text), ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseCountLabel extracts a review count from a candidate label:
// "1,234 reviews", "1 222 reviews" (non-breaking space) or "(1,222)".
func ParseCountLabel(label string) (int, bool) {
	m := parenTokenRe.FindStringSubmatch(label)
	if m == nil {
		m = countTokenRe.FindStringSubmatch(label)
	}
	if m == nil {
		return 0, false
	}

	token := strings.NewReplacer(",", "", ".", "", " ", "", " ", "").Replace(strings.TrimSpace(m[1]))
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return n, true
}
