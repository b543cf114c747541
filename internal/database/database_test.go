package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookingsaver/internal/models"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })
	return db
}

func testListing() *models.Listing {
	score := 8.7
	count := 142
	ppn := 411.50
	return &models.Listing{
		Name:          "Hotel Zeezicht",
		Link:          "https://www.booking.com/hotel/nl/zeezicht.html",
		Address:       "Zandvoort, Netherlands",
		Distance:      "250 m from centre",
		Checkin:       "2025-07-04",
		Checkout:      "2025-07-07",
		ReviewScore:   &score,
		ReviewsCount:  &count,
		Unit:          "Double Room with Sea View",
		Cancellation:  models.CancellationFree,
		NightsAdults:  "3 nights, 2 adults",
		Price:         "1234.50",
		PricePerNight: &ppn,
		ScrapedAt:     time.Now().UTC(),
		SourceURL:     "https://www.booking.com/searchresults.html",
	}
}

func TestInsertListing_DuplicateKeyIsNoOp(t *testing.T) {
	db := newTestDatabase(t)
	l := testListing()

	require.NoError(t, db.InsertListing(l))
	// Second insert with an identical (link, checkin, checkout) key must
	// not error and must not add a row.
	require.NoError(t, db.InsertListing(l))

	listings, err := db.GetAllListings()
	require.NoError(t, err)
	assert.Len(t, listings, 1)
}

func TestInsertListing_DifferentDatesAreSeparateRows(t *testing.T) {
	db := newTestDatabase(t)

	first := testListing()
	require.NoError(t, db.InsertListing(first))

	second := testListing()
	second.Checkin = "2025-08-01"
	second.Checkout = "2025-08-05"
	require.NoError(t, db.InsertListing(second))

	listings, err := db.GetAllListings()
	require.NoError(t, err)
	assert.Len(t, listings, 2)
}

func TestExists(t *testing.T) {
	db := newTestDatabase(t)
	l := testListing()

	exists, err := db.Exists(l.Link, l.Checkin, l.Checkout)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, db.InsertListing(l))

	exists, err = db.Exists(l.Link, l.Checkin, l.Checkout)
	require.NoError(t, err)
	assert.True(t, exists)

	// Same hotel, different stay: a traveler may check the same property
	// for other dates, so this is not a duplicate.
	exists, err = db.Exists(l.Link, "2025-09-01", "2025-09-03")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetAllListings_NullFieldsRoundTrip(t *testing.T) {
	db := newTestDatabase(t)

	l := testListing()
	l.ReviewScore = nil
	l.ReviewsCount = nil
	l.PricePerNight = nil
	l.GoogleReviewScore = nil
	l.GoogleReviewsCount = nil
	l.GoogleMapsURL = nil
	l.OverallScore = nil
	l.Cancellation = models.CancellationUnknown
	require.NoError(t, db.InsertListing(l))

	listings, err := db.GetAllListings()
	require.NoError(t, err)
	require.Len(t, listings, 1)

	got := listings[0]
	assert.Nil(t, got.ReviewScore)
	assert.Nil(t, got.ReviewsCount)
	assert.Nil(t, got.PricePerNight)
	assert.Nil(t, got.GoogleReviewScore)
	assert.Nil(t, got.GoogleReviewsCount)
	assert.Nil(t, got.GoogleMapsURL)
	assert.Nil(t, got.OverallScore)
	assert.Equal(t, models.CancellationUnknown, got.Cancellation)
	assert.Equal(t, l.Name, got.Name)
}

func TestGetStats(t *testing.T) {
	db := newTestDatabase(t)

	first := testListing()
	require.NoError(t, db.InsertListing(first))

	second := testListing()
	second.Checkin = "2025-08-01"
	second.Checkout = "2025-08-05"
	second.Cancellation = models.CancellationNone
	require.NoError(t, db.InsertListing(second))

	stats, err := db.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalListings)
	assert.Equal(t, 1, stats.FreeCancellations)
	assert.InDelta(t, 8.7, stats.AvgReviewScore, 0.001)
	assert.InDelta(t, 411.50, stats.AvgPricePerNight, 0.001)
}
