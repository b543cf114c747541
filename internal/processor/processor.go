// Package processor runs the per-message pipeline: URL detection,
// extraction, rating enrichment, normalization, deduplication,
// persistence and the user-facing reply.
package processor

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"bookingsaver/internal/models"
	"bookingsaver/internal/normalizer"
	"bookingsaver/internal/telegram"
)

// ListingFetcher extracts a structured listing from a Booking.com URL.
type ListingFetcher interface {
	FetchListing(ctx context.Context, url string) (*models.Listing, error)
}

// RatingFetcher is the best-effort secondary rating lookup.
type RatingFetcher interface {
	FetchRating(ctx context.Context, name, city string) models.MapsRating
}

// ListingStore is the persisted store plus its duplicate filter.
type ListingStore interface {
	Exists(link, checkin, checkout string) (bool, error)
	InsertListing(l *models.Listing) error
}

// RowAppender appends an accepted listing to the spreadsheet.
type RowAppender interface {
	AppendRow(ctx context.Context, l *models.Listing) error
}

// Replier sends the outcome back to the chat.
type Replier interface {
	SendMessage(chatID int64, message string) error
}

type Processor struct {
	logger  *logrus.Logger
	scraper ListingFetcher
	ratings RatingFetcher
	store   ListingStore
	sheet   RowAppender // nil disables the spreadsheet appender
	replier Replier
}

func NewProcessor(logger *logrus.Logger, scraper ListingFetcher, ratings RatingFetcher, store ListingStore, sheet RowAppender, replier Replier) *Processor {
	return &Processor{
		logger:  logger,
		scraper: scraper,
		ratings: ratings,
		store:   store,
		sheet:   sheet,
		replier: replier,
	}
}

// HandleMessage processes one inbound chat message. Every Booking.com
// URL it contains is handled independently, in order, each producing its
// own reply. All failures become a reply; nothing propagates.
func (p *Processor) HandleMessage(msg models.TelegramMessage) {
	urls := telegram.ExtractBookingURLs(msg.Text)
	if len(urls) == 0 {
		return
	}

	for _, url := range urls {
		p.processURL(context.Background(), msg.Chat.ID, url)
	}
}

func (p *Processor) processURL(ctx context.Context, chatID int64, url string) {
	p.logger.WithFields(logrus.Fields{
		"chat_id": chatID,
		"url":     url,
	}).Info("Processing listing URL")

	listing, err := p.scraper.FetchListing(ctx, url)
	if err != nil {
		p.logger.WithError(err).WithField("url", url).Error("Extraction failed")
		p.reply(chatID, fmt.Sprintf("⚠️ Error: %v", err))
		return
	}

	rating := p.ratings.FetchRating(ctx, listing.Name, listing.City())
	listing = normalizer.Normalize(listing, rating)

	exists, err := p.store.Exists(listing.Link, listing.Checkin, listing.Checkout)
	if err != nil {
		p.logger.WithError(err).Error("Duplicate check failed")
		p.reply(chatID, fmt.Sprintf("⚠️ Error: %v", err))
		return
	}
	if exists {
		p.logger.WithFields(logrus.Fields{
			"name":     listing.Name,
			"checkin":  listing.Checkin,
			"checkout": listing.Checkout,
		}).Info("Duplicate listing, skipping")
		p.reply(chatID, fmt.Sprintf(
			"⚠️ Duplicate: %s with these dates (%s - %s) already exists in your saved listings.",
			listing.Name, listing.Checkin, listing.Checkout))
		return
	}

	if err := p.store.InsertListing(listing); err != nil {
		p.logger.WithError(err).Error("Failed to persist listing")
		p.reply(chatID, fmt.Sprintf("⚠️ Error: %v", err))
		return
	}

	if p.sheet != nil {
		// The record is already persisted; a sheet failure is logged but
		// does not turn the outcome into an error.
		if err := p.sheet.AppendRow(ctx, listing); err != nil {
			p.logger.WithError(err).WithField("name", listing.Name).Error("Failed to append to sheet")
		}
	}

	p.reply(chatID, fmt.Sprintf("Saved ✅ %s", listing.Name))
}

func (p *Processor) reply(chatID int64, message string) {
	if err := p.replier.SendMessage(chatID, message); err != nil {
		p.logger.WithError(err).Error("Failed to send reply")
	}
}
