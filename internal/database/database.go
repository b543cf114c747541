package database

import (
	"database/sql"
	"time"

	"bookingsaver/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

type Database struct {
	db *sql.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys
	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

// InsertListing appends one accepted listing. The insert is silently a
// no-op when the uniqueness key (hotel reference, link, checkin, checkout)
// already exists; the duplicate filter above this layer normally catches
// that first, this is the storage-level guard.
func (d *Database) InsertListing(l *models.Listing) error {
	var cancellation interface{}
	if l.Cancellation != models.CancellationUnknown {
		cancellation = string(l.Cancellation)
	}

	_, err := d.db.Exec(`
		INSERT OR IGNORE INTO listings
		(hotel_id, name, link, address, distance, checkin, checkout,
		 review_score, reviews_count, unit, bed_info, cancellation,
		 nights_adults, price, price_per_night,
		 google_review_score, google_reviews_count, google_maps_url,
		 overall_score, scraped_at, source_url)
		VALUES (COALESCE(?, 0), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		l.HotelID,
		l.Name,
		l.Link,
		l.Address,
		l.Distance,
		l.Checkin,
		l.Checkout,
		l.ReviewScore,
		l.ReviewsCount,
		l.Unit,
		l.BedInfo,
		cancellation,
		l.NightsAdults,
		l.Price,
		l.PricePerNight,
		l.GoogleReviewScore,
		l.GoogleReviewsCount,
		l.GoogleMapsURL,
		l.OverallScore,
		l.ScrapedAt.Format(time.RFC3339),
		l.SourceURL,
	)
	return err
}

// Exists reports whether a listing with the same link and stay dates has
// been persisted. Same link with different dates is not a duplicate.
func (d *Database) Exists(link, checkin, checkout string) (bool, error) {
	var exists bool
	err := d.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM listings
			WHERE link = ? AND checkin = ? AND checkout = ?
			LIMIT 1
		)
	`, link, checkin, checkout).Scan(&exists)
	return exists, err
}

// GetAllListings returns every persisted listing, newest first.
func (d *Database) GetAllListings() ([]models.Listing, error) {
	rows, err := d.db.Query(`
		SELECT rowid, hotel_id, name, link, address, distance, checkin, checkout,
		       review_score, reviews_count, unit, bed_info, cancellation,
		       nights_adults, price, price_per_night,
		       google_review_score, google_reviews_count, google_maps_url,
		       overall_score, COALESCE(scraped_at, ''), source_url
		FROM listings
		ORDER BY scraped_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		var l models.Listing
		var hotelID sql.NullInt64
		var name, link, address, distance, checkin, checkout sql.NullString
		var unit, bedInfo, cancellation, nightsAdults, price sql.NullString
		var mapsURL, sourceURL, scrapedAt sql.NullString
		var reviewScore, pricePerNight, googleScore, overallScore sql.NullFloat64
		var reviewsCount, googleCount sql.NullInt64

		err := rows.Scan(
			&l.ID,
			&hotelID,
			&name,
			&link,
			&address,
			&distance,
			&checkin,
			&checkout,
			&reviewScore,
			&reviewsCount,
			&unit,
			&bedInfo,
			&cancellation,
			&nightsAdults,
			&price,
			&pricePerNight,
			&googleScore,
			&googleCount,
			&mapsURL,
			&overallScore,
			&scrapedAt,
			&sourceURL,
		)
		if err != nil {
			return nil, err
		}

		if hotelID.Valid && hotelID.Int64 != 0 {
			id := hotelID.Int64
			l.HotelID = &id
		}
		l.Name = name.String
		l.Link = link.String
		l.Address = address.String
		l.Distance = distance.String
		l.Checkin = checkin.String
		l.Checkout = checkout.String
		l.Unit = unit.String
		l.BedInfo = bedInfo.String
		l.Cancellation = models.CancellationPolicy(cancellation.String)
		l.NightsAdults = nightsAdults.String
		l.Price = price.String
		l.SourceURL = sourceURL.String

		if reviewScore.Valid {
			v := reviewScore.Float64
			l.ReviewScore = &v
		}
		if reviewsCount.Valid {
			v := int(reviewsCount.Int64)
			l.ReviewsCount = &v
		}
		if pricePerNight.Valid {
			v := pricePerNight.Float64
			l.PricePerNight = &v
		}
		if googleScore.Valid {
			v := googleScore.Float64
			l.GoogleReviewScore = &v
		}
		if googleCount.Valid {
			v := int(googleCount.Int64)
			l.GoogleReviewsCount = &v
		}
		if mapsURL.Valid && mapsURL.String != "" {
			v := mapsURL.String
			l.GoogleMapsURL = &v
		}
		if overallScore.Valid {
			v := overallScore.Float64
			l.OverallScore = &v
		}
		if scrapedAt.Valid && scrapedAt.String != "" {
			if t, err := time.Parse(time.RFC3339, scrapedAt.String); err == nil {
				l.ScrapedAt = t
			}
		}

		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// GetStats aggregates the persisted store for the HTTP API.
func (d *Database) GetStats() (models.ListingStats, error) {
	var stats models.ListingStats
	err := d.db.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(AVG(review_score), 0),
			COALESCE(AVG(overall_score), 0),
			COALESCE(AVG(price_per_night), 0),
			COALESCE(SUM(CASE WHEN cancellation = 'free' THEN 1 ELSE 0 END), 0)
		FROM listings
	`).Scan(
		&stats.TotalListings,
		&stats.AvgReviewScore,
		&stats.AvgOverallScore,
		&stats.AvgPricePerNight,
		&stats.FreeCancellations,
	)
	return stats, err
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) GetDB() *sql.DB {
	return d.db
}
