// Package scraper drives a headless Chrome session against a Booking.com
// search-results page and extracts one structured listing record.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"

	"bookingsaver/internal/browser"
	"bookingsaver/internal/models"
)

// How long a fallback strategy may wait before the next one is tried.
// The primary card wait uses the configured scrape timeout instead.
const fallbackWait = 3 * time.Second

var errAttrMissing = errors.New("attribute missing")

// ExtractionError reports which required field could not be located
// within the bounded wait. It is surfaced to the user verbatim.
type ExtractionError struct {
	Field string
	Err   error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not extract %s from listing page: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("could not extract %s from listing page", e.Field)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Scraper extracts listing records from Booking.com pages. Each call owns
// an exclusive browser session for its duration.
type Scraper struct {
	logger   *logrus.Logger
	timeout  time.Duration
	headless bool
}

func NewScraper(logger *logrus.Logger, timeout time.Duration, headless bool) *Scraper {
	return &Scraper{
		logger:   logger,
		timeout:  timeout,
		headless: headless,
	}
}

// FetchListing loads the share URL (following the redirect to the search
// results), waits for the first property card and extracts its fields.
// Required fields (name, link, price) abort with an ExtractionError when
// every selector strategy misses; optional fields stay null.
func (s *Scraper) FetchListing(ctx context.Context, pageURL string) (*models.Listing, error) {
	s.logger.WithField("url", pageURL).Info("Scraping listing page")

	browserCtx, cancel := browser.NewSession(ctx, s.headless)
	defer cancel()

	navCtx, cancelNav := context.WithTimeout(browserCtx, s.timeout)
	defer cancelNav()
	err := chromedp.Run(navCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitVisible(propertyCardSelector, chromedp.ByQuery),
	)
	if err != nil {
		return nil, &ExtractionError{Field: "property card", Err: err}
	}

	listing := &models.Listing{ScrapedAt: time.Now().UTC()}

	name, err := s.lookupField(browserCtx, nameField)
	if err != nil {
		return nil, err
	}
	listing.Name = name

	link, err := s.lookupField(browserCtx, linkField)
	if err != nil {
		return nil, err
	}
	listing.Link = CanonicalLink(link)

	rawPrice, err := s.lookupField(browserCtx, priceField)
	if err != nil {
		return nil, err
	}
	listing.Price = NormalizePrice(rawPrice)
	if listing.Price == "" {
		return nil, &ExtractionError{Field: "price"}
	}

	// Optional fields: a miss leaves the field null.
	listing.Address, _ = s.lookupField(browserCtx, addressField)
	listing.Distance, _ = s.lookupField(browserCtx, distanceField)
	listing.Unit, _ = s.lookupField(browserCtx, unitField)
	listing.BedInfo, _ = s.lookupField(browserCtx, bedInfoField)
	listing.NightsAdults, _ = s.lookupField(browserCtx, nightsAdultsField)

	if raw, err := s.lookupField(browserCtx, reviewScoreField); err == nil {
		if score, ok := ParseScore(raw); ok && score >= 0 && score <= 10 {
			listing.ReviewScore = &score
		}
	}
	if raw, err := s.lookupField(browserCtx, reviewCountField); err == nil {
		if count, ok := ParseReviewCount(raw); ok && count >= 0 {
			listing.ReviewsCount = &count
		}
	}

	listing.Cancellation = s.lookupCancellation(browserCtx)

	var finalURL string
	if err := chromedp.Run(browserCtx, chromedp.Location(&finalURL)); err == nil {
		listing.SourceURL = finalURL
	} else {
		listing.SourceURL = pageURL
	}

	// Stay dates ride along in the search URL's query parameters.
	listing.Checkin, listing.Checkout = StayDates(listing.SourceURL)
	if listing.Checkin == "" && listing.Checkout == "" {
		listing.Checkin, listing.Checkout = StayDates(pageURL)
	}

	s.logger.WithFields(logrus.Fields{
		"name":     listing.Name,
		"link":     listing.Link,
		"price":    listing.Price,
		"checkin":  listing.Checkin,
		"checkout": listing.Checkout,
	}).Info("Extracted listing")

	return listing, nil
}

// lookupField tries each strategy in order, each bounded by its own wait,
// and returns the first non-empty result.
func (s *Scraper) lookupField(ctx context.Context, spec fieldSpec) (string, error) {
	var lastErr error
	for _, strat := range spec.Strategies {
		out, err := s.tryStrategy(ctx, strat)
		if err != nil {
			lastErr = err
			continue
		}
		if out = strings.TrimSpace(out); out != "" {
			return out, nil
		}
	}

	if spec.Required {
		return "", &ExtractionError{Field: spec.Name, Err: lastErr}
	}
	return "", fmt.Errorf("field %s not found", spec.Name)
}

func (s *Scraper) tryStrategy(ctx context.Context, strat fieldStrategy) (string, error) {
	sctx, cancel := context.WithTimeout(ctx, fallbackWait)
	defer cancel()

	var out string
	if strat.Attr == "" {
		err := chromedp.Run(sctx, chromedp.Text(strat.Selector, &out, chromedp.ByQuery))
		return out, err
	}

	var ok bool
	err := chromedp.Run(sctx, chromedp.AttributeValue(strat.Selector, strat.Attr, &out, &ok, chromedp.ByQuery))
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errAttrMissing
	}
	return out, nil
}

// lookupCancellation probes for the free-cancellation badge. The icon's
// presence alone marks the policy as free even when the label text is
// missing; no badge at all stays unknown rather than none, since absence
// of the badge does not prove a paid policy.
func (s *Scraper) lookupCancellation(ctx context.Context) models.CancellationPolicy {
	if text, err := s.lookupField(ctx, cancellationField); err == nil {
		if policy := models.ParseCancellation(text); policy != models.CancellationUnknown {
			return policy
		}
		return models.CancellationFree
	}

	sctx, cancel := context.WithTimeout(ctx, fallbackWait)
	defer cancel()
	var present bool
	err := chromedp.Run(sctx, chromedp.Evaluate(
		`document.querySelector('[data-testid="cancellation-policy-icon"]') !== null`, &present))
	if err == nil && present {
		return models.CancellationFree
	}
	return models.CancellationUnknown
}
