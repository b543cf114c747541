package database

import "fmt"

// RunMigrations creates the base schema and applies additive migrations.
// The record shape has grown field by field over time, so every change is
// an ALTER TABLE ADD COLUMN with a null default; rows written by older
// versions keep nulls in the new columns.
func (d *Database) RunMigrations() error {
	// Base schema. hotel_id defaults to 0 because the source rarely yields
	// a stable hotel reference and NULL primary-key columns do not
	// deduplicate in SQLite; the effective uniqueness key is
	// (link, checkin, checkout).
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS listings (
			hotel_id       INTEGER NOT NULL DEFAULT 0,
			name           TEXT,
			link           TEXT,
			address        TEXT,
			distance       TEXT,
			checkin        TEXT,
			checkout       TEXT,
			review_score   REAL,
			reviews_count  INTEGER,
			unit           TEXT,
			cancellation   TEXT,
			nights_adults  TEXT,
			price          TEXT,
			price_per_night REAL,
			scraped_at     TEXT,
			source_url     TEXT,
			PRIMARY KEY (hotel_id, link, checkin, checkout)
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create listings table: %v", err)
	}

	// Secondary-rating columns
	_, err = d.db.Exec(`
		ALTER TABLE listings
		ADD COLUMN google_review_score REAL;
	`)
	if err != nil && err.Error() != "duplicate column name: google_review_score" {
		return err
	}

	_, err = d.db.Exec(`
		ALTER TABLE listings
		ADD COLUMN google_reviews_count INTEGER;
	`)
	if err != nil && err.Error() != "duplicate column name: google_reviews_count" {
		return err
	}

	_, err = d.db.Exec(`
		ALTER TABLE listings
		ADD COLUMN google_maps_url TEXT;
	`)
	if err != nil && err.Error() != "duplicate column name: google_maps_url" {
		return err
	}

	// Derived overall score
	_, err = d.db.Exec(`
		ALTER TABLE listings
		ADD COLUMN overall_score REAL;
	`)
	if err != nil && err.Error() != "duplicate column name: overall_score" {
		return err
	}

	// Bed/unit detail line from the property card
	_, err = d.db.Exec(`
		ALTER TABLE listings
		ADD COLUMN bed_info TEXT;
	`)
	if err != nil && err.Error() != "duplicate column name: bed_info" {
		return err
	}

	// Index backing the duplicate filter
	_, err = d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_listings_stay
		ON listings(link, checkin, checkout);
	`)
	if err != nil {
		return err
	}

	return nil
}
