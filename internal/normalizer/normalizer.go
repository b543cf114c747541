// Package normalizer merges extractor output with the maps rating lookup
// and computes the derived fields. Everything here is deterministic and
// does no I/O.
package normalizer

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"bookingsaver/internal/models"
)

const (
	// Review counts at which a score reaches full weight
	primarySaturationCount   = 100
	secondarySaturationCount = 200

	// Penalty applied when only the primary score is available
	primaryOnlyPenalty = 0.9

	// Flat bonus for a free-cancellation listing
	freeCancellationBonus = 0.5
)

var nightsRe = regexp.MustCompile(`(\d+)\s+night`)

// Normalize produces the finished record: the maps rating is merged in
// and the derived fields are computed. The input listing is returned with
// its derived fields populated.
func Normalize(l *models.Listing, rating models.MapsRating) *models.Listing {
	l.GoogleReviewScore = rating.Score
	l.GoogleReviewsCount = rating.Count
	if rating.URL != "" {
		url := rating.URL
		l.GoogleMapsURL = &url
	}

	l.PricePerNight = PricePerNight(l.NightsAdults, l.Price)
	l.OverallScore = OverallScore(
		l.ReviewScore, l.ReviewsCount,
		l.GoogleReviewScore, l.GoogleReviewsCount,
		l.Cancellation.IsFree(),
	)
	return l
}

// PricePerNight divides the total price by the night count parsed from
// the "3 nights, 2 adults" display string. An unparseable night count
// defaults to 1; an unparseable price yields nil.
func PricePerNight(nightsAdults, price string) *float64 {
	nights := 1
	if m := nightsRe.FindStringSubmatch(nightsAdults); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			nights = n
		}
	}

	value, err := strconv.ParseFloat(stripSeparators(price), 64)
	if err != nil {
		return nil
	}

	ppn := math.Round(value/float64(nights)*100) / 100
	return &ppn
}

// OverallScore blends the primary (0-10) and secondary (0-5) review
// scores into a single 1-10 rating. The secondary score is doubled onto
// the 10-point scale. Each score is weighted by its review count,
// saturating at 1.0 once the count reaches the source's threshold. With
// only the primary score available the result takes a 10% penalty; a
// lone secondary score is used unpenalized. A free-cancellation listing
// gains a flat 0.5 bonus. The result is clamped to [1, 10] and rounded
// to one decimal; a non-positive result before clamping means no score.
func OverallScore(reviewScore *float64, reviewsCount *int, googleScore *float64, googleCount *int, freeCancellation bool) *float64 {
	var score float64

	switch {
	case reviewScore != nil && googleScore != nil:
		normalized := *googleScore * 2
		wp := saturatingWeight(reviewsCount, primarySaturationCount)
		ws := saturatingWeight(googleCount, secondarySaturationCount)
		if wp+ws == 0 {
			// Neither source has any reviews; fall back to a plain mean.
			score = (*reviewScore + normalized) / 2
		} else {
			score = (wp**reviewScore + ws*normalized) / (wp + ws)
		}
	case reviewScore != nil:
		score = *reviewScore * primaryOnlyPenalty
	case googleScore != nil:
		score = *googleScore * 2
	default:
		return nil
	}

	if freeCancellation {
		score += freeCancellationBonus
	}

	if score <= 0 {
		return nil
	}

	score = math.Min(10, math.Max(1, score))
	score = math.Round(score*10) / 10
	return &score
}

func saturatingWeight(count *int, saturation int) float64 {
	if count == nil || *count <= 0 {
		return 0
	}
	if *count >= saturation {
		return 1
	}
	return float64(*count) / float64(saturation)
}

// stripSeparators removes thousands separators (comma, regular and
// non-breaking spaces) from a price string, keeping the decimal point.
func stripSeparators(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}
