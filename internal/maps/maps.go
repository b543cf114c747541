// Package maps enriches a listing with a best-effort Google Maps rating.
// The lookup never fails past its own boundary: every internal error
// degrades to a no-match result carrying the search URL.
package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"

	"bookingsaver/internal/browser"
	"bookingsaver/internal/models"
)

const searchBaseURL = "https://www.google.com/maps/search/"

// How long each consent or widget strategy may wait before the next one
// is tried.
const strategyWait = 5 * time.Second

type Lookup struct {
	logger    *logrus.Logger
	timeout   time.Duration
	headless  bool
	cacheDir  string
	cache     map[string]models.MapsRating
	cacheLock sync.RWMutex
}

func NewLookup(logger *logrus.Logger, cacheDir string, timeout time.Duration, headless bool) *Lookup {
	os.MkdirAll(cacheDir, 0755)

	l := &Lookup{
		logger:   logger,
		timeout:  timeout,
		headless: headless,
		cacheDir: cacheDir,
		cache:    make(map[string]models.MapsRating),
	}
	l.loadCache()
	return l
}

// FetchRating searches Google Maps for "<name> <city>" and scrapes the
// review widget. It always returns a result, never an error: a failed or
// unmatched lookup yields nil score and count with the search URL.
func (g *Lookup) FetchRating(ctx context.Context, name, city string) models.MapsRating {
	query := strings.TrimSpace(name + " " + city)
	searchURL := searchBaseURL + url.QueryEscape(query)
	noMatch := models.MapsRating{URL: searchURL}

	cacheKey := fmt.Sprintf("%s|%s", name, city)
	g.cacheLock.RLock()
	if cached, ok := g.cache[cacheKey]; ok {
		g.cacheLock.RUnlock()
		g.logger.WithFields(logrus.Fields{
			"query":  query,
			"source": "cache",
		}).Info("Found maps rating in cache")
		return cached
	}
	g.cacheLock.RUnlock()

	g.logger.WithField("query", query).Info("Searching Google Maps")

	browserCtx, cancel := browser.NewSession(ctx, g.headless)
	defer cancel()

	navCtx, cancelNav := context.WithTimeout(browserCtx, g.timeout)
	err := chromedp.Run(navCtx, chromedp.Navigate(searchURL))
	cancelNav()
	if err != nil {
		g.logger.WithError(err).WithField("query", query).Warn("Maps navigation failed")
		return noMatch
	}

	g.dismissConsent(browserCtx)

	if !g.waitForWidget(browserCtx) {
		g.logger.WithField("query", query).Info("No rating widget found")
		return noMatch
	}

	rating := models.MapsRating{URL: searchURL}
	if current := g.currentURL(browserCtx); current != "" {
		rating.URL = current
	}

	if score, ok := g.extractScore(browserCtx); ok {
		rating.Score = &score
	}
	if count, ok := g.extractCount(browserCtx); ok {
		rating.Count = &count
	}

	if rating.NoMatch() {
		return noMatch
	}

	g.logger.WithFields(logrus.Fields{
		"query": query,
		"score": rating.Score,
		"count": rating.Count,
	}).Info("Extracted maps rating")

	g.cacheLock.Lock()
	g.cache[cacheKey] = rating
	g.cacheLock.Unlock()
	go g.saveCache()

	return rating
}

// dismissConsent handles the consent interstitial if the search was
// redirected there, trying each selector with its own bounded wait and
// moving on after exhausting them.
func (g *Lookup) dismissConsent(ctx context.Context) {
	if !strings.Contains(g.currentURL(ctx), "consent.google.com") {
		return
	}
	g.logger.Info("Detected consent page, accepting cookies")

	for _, sel := range consentSelectors {
		sctx, cancel := context.WithTimeout(ctx, strategyWait)
		var err error
		if strings.HasPrefix(sel, "//") {
			err = chromedp.Run(sctx, chromedp.Click(sel, chromedp.BySearch))
		} else {
			err = chromedp.Run(sctx, chromedp.Click(sel, chromedp.ByQuery))
		}
		cancel()
		if err != nil {
			g.logger.WithField("selector", sel).Debug("Consent selector failed")
			continue
		}

		// Give the redirect back to the map time to land
		wctx, cancelWait := context.WithTimeout(ctx, strategyWait)
		_ = chromedp.Run(wctx, chromedp.Sleep(3*time.Second))
		cancelWait()
		if !strings.Contains(g.currentURL(ctx), "consent.google.com") {
			return
		}
	}
}

func (g *Lookup) waitForWidget(ctx context.Context) bool {
	for _, sel := range ratingWidgetSelectors {
		sctx, cancel := context.WithTimeout(ctx, strategyWait)
		err := chromedp.Run(sctx, chromedp.WaitVisible(sel, chromedp.ByQuery))
		cancel()
		if err == nil {
			return true
		}
	}
	return false
}

// extractScore reads the widget numeral, falling back to the star-image
// aria-label ("4.5 stars").
func (g *Lookup) extractScore(ctx context.Context) (float64, bool) {
	sctx, cancel := context.WithTimeout(ctx, strategyWait)
	defer cancel()

	var text string
	if err := chromedp.Run(sctx, chromedp.Text(scoreTextSelector, &text, chromedp.ByQuery)); err == nil {
		if score, ok := ParseScoreText(text); ok && score >= 0 && score <= 5 {
			return score, true
		}
	}

	lctx, cancelLabel := context.WithTimeout(ctx, strategyWait)
	defer cancelLabel()
	var label string
	var present bool
	err := chromedp.Run(lctx, chromedp.AttributeValue(scoreLabelSelector, "aria-label", &label, &present, chromedp.ByQuery))
	if err != nil || !present {
		return 0, false
	}
	if score, ok := ParseStarsLabel(label); ok && score >= 0 && score <= 5 {
		return score, true
	}
	return 0, false
}

// extractCount scans the candidate labels the page offers for a numeric
// token adjacent to a review cue, falling back to parenthesized numerals.
func (g *Lookup) extractCount(ctx context.Context) (int, bool) {
	sctx, cancel := context.WithTimeout(ctx, strategyWait)
	defer cancel()

	var labels []string
	if err := chromedp.Run(sctx, chromedp.Evaluate(reviewCountScript, &labels)); err != nil {
		return 0, false
	}
	for _, label := range labels {
		if count, ok := ParseCountLabel(label); ok {
			return count, true
		}
	}
	return 0, false
}

func (g *Lookup) currentURL(ctx context.Context) string {
	sctx, cancel := context.WithTimeout(ctx, strategyWait)
	defer cancel()
	var current string
	if err := chromedp.Run(sctx, chromedp.Location(&current)); err != nil {
		return ""
	}
	return current
}

func (g *Lookup) loadCache() {
	cacheFile := filepath.Join(g.cacheDir, "maps_rating_cache.json")
	data, err := os.ReadFile(cacheFile)
	if err != nil {
		return
	}

	if err := json.Unmarshal(data, &g.cache); err != nil {
		g.logger.Errorf("Failed to parse maps rating cache: %v", err)
		return
	}
	g.logger.Infof("Loaded %d cached maps ratings", len(g.cache))
}

func (g *Lookup) saveCache() {
	g.cacheLock.RLock()
	defer g.cacheLock.RUnlock()

	cacheFile := filepath.Join(g.cacheDir, "maps_rating_cache.json")
	data, err := json.Marshal(g.cache)
	if err != nil {
		g.logger.Errorf("Failed to marshal maps rating cache: %v", err)
		return
	}

	if err := os.WriteFile(cacheFile, data, 0644); err != nil {
		g.logger.Errorf("Failed to save maps rating cache: %v", err)
	}
}
