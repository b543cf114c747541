package models

import (
	"strings"
	"time"
)

// CancellationPolicy is a tri-state: the source pages represent free
// cancellation inconsistently ("Free cancellation" badge text, "Yes"/"No",
// or nothing at all), so the model keeps unknown distinct from none.
type CancellationPolicy string

const (
	CancellationUnknown CancellationPolicy = ""
	CancellationNone    CancellationPolicy = "none"
	CancellationFree    CancellationPolicy = "free"
)

// ParseCancellation maps the raw page text onto the tri-state.
func ParseCancellation(text string) CancellationPolicy {
	switch t := strings.ToLower(strings.TrimSpace(text)); {
	case t == "":
		return CancellationUnknown
	case strings.Contains(t, "free cancellation"), t == "yes":
		return CancellationFree
	case t == "no":
		return CancellationNone
	default:
		return CancellationUnknown
	}
}

// IsFree reports whether the listing carries a free-cancellation indicator.
func (c CancellationPolicy) IsFree() bool {
	return c == CancellationFree
}

// Listing is the canonical record produced by one scrape. A listing is
// constructed once, enriched once, checked once for duplication and then
// either persisted or discarded. Fields that the page may not yield are
// pointers so null survives the round trip to the database.
type Listing struct {
	ID                 int64              `json:"id"`
	HotelID            *int64             `json:"hotel_id"`
	Name               string             `json:"name"`
	Link               string             `json:"link"`
	Address            string             `json:"address"`
	Distance           string             `json:"distance"`
	Checkin            string             `json:"checkin"`
	Checkout           string             `json:"checkout"`
	ReviewScore        *float64           `json:"review_score"`
	ReviewsCount       *int               `json:"reviews_count"`
	Unit               string             `json:"unit"`
	BedInfo            string             `json:"bed_info"`
	Cancellation       CancellationPolicy `json:"cancellation"`
	NightsAdults       string             `json:"nights_adults"`
	Price              string             `json:"price"`
	PricePerNight      *float64           `json:"price_per_night"`
	GoogleReviewScore  *float64           `json:"google_review_score"`
	GoogleReviewsCount *int               `json:"google_reviews_count"`
	GoogleMapsURL      *string            `json:"google_maps_url"`
	OverallScore       *float64           `json:"overall_score"`
	ScrapedAt          time.Time          `json:"scraped_at"`
	SourceURL          string             `json:"source_url"`
}

// City derives the city portion of the address, used as the search
// context for the maps lookup. Booking addresses lead with the city.
func (l *Listing) City() string {
	if i := strings.Index(l.Address, ","); i >= 0 {
		return strings.TrimSpace(l.Address[:i])
	}
	return strings.TrimSpace(l.Address)
}

// MapsRating is the best-effort result of the secondary rating lookup.
// A no-match result has nil Score and Count but always carries a URL
// (the match URL or, failing that, the search URL itself).
type MapsRating struct {
	Score *float64 `json:"google_review_score"`
	Count *int     `json:"google_reviews_count"`
	URL   string   `json:"google_maps_url"`
}

// NoMatch reports whether the lookup found a rating widget.
func (r MapsRating) NoMatch() bool {
	return r.Score == nil && r.Count == nil
}

// ListingStats summarizes the persisted store for the HTTP API.
type ListingStats struct {
	TotalListings     int     `json:"total_listings"`
	AvgReviewScore    float64 `json:"avg_review_score"`
	AvgOverallScore   float64 `json:"avg_overall_score"`
	AvgPricePerNight  float64 `json:"avg_price_per_night"`
	FreeCancellations int     `json:"free_cancellations"`
}
