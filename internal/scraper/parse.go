package scraper

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Words that flag an adjacent numeric token as a review count. Booking
// localizes the label, so a handful of common variants are matched.
var reviewCountRe = regexp.MustCompile(
	`(?i)(\d[\d,.\x{00a0} ]*)\s*(?:reviews?|beoordelingen|bewertungen|avis|recensioni|opiniones)`)

// Fallback: a parenthesized numeral, e.g. "(1,222)".
var parenCountRe = regexp.MustCompile(`\((\d[\d,.\x{00a0} ]*)\)`)

// NormalizePrice strips a raw price string down to digits and
// decimal/group separators ("€ 1,234.50 total" -> "1,234.50").
func NormalizePrice(raw string) string {
	var b strings.Builder
	for _, ch := range raw {
		if (ch >= '0' && ch <= '9') || ch == ',' || ch == '.' {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// ParseReviewCount extracts a review count from a label like
// "Very good 29 reviews" or "1 222 beoordelingen" (non-breaking space as
// thousands separator) or the parenthesized form "(1,222)".
func ParseReviewCount(text string) (int, bool) {
	m := reviewCountRe.FindStringSubmatch(text)
	if m == nil {
		m = parenCountRe.FindStringSubmatch(text)
	}
	if m == nil {
		return 0, false
	}

	token := strings.NewReplacer(",", "", ".", "", " ", "", " ", "").Replace(m[1])
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseScore reads a review score, tolerating a comma decimal ("8,7").
func ParseScore(text string) (float64, bool) {
	t := strings.TrimSpace(strings.ReplaceAll(text, ",", "."))
	// Labels such as "Scored 8.7" keep the numeral last
	if i := strings.LastIndexByte(t, ' '); i >= 0 {
		if v, err := strconv.ParseFloat(t[i+1:], 64); err == nil {
			return v, true
		}
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// CanonicalLink strips the tracking query from a listing link so the same
// hotel always maps to the same identity.
func CanonicalLink(href string) string {
	if i := strings.IndexByte(href, '?'); i >= 0 {
		return href[:i]
	}
	return href
}

// StayDates reads the checkin/checkout parameters a Booking share URL
// carries. Missing parameters come back empty; they stay display strings
// and are never parsed into dates.
func StayDates(rawURL string) (checkin, checkout string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", ""
	}
	q := u.Query()
	return q.Get("checkin"), q.Get("checkout")
}
