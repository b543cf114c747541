package scraper

// Selector strategies for the Booking.com search-results property card.
// Each field tries its strategies in order with a bounded wait; the first
// hit wins. Booking rotates its hashed utility classes, so data-testid
// attributes lead and class-based selectors trail as fallbacks.

const propertyCardSelector = `div[data-testid="property-card"]`

// fieldStrategy is one way of locating a field. An empty Attr reads the
// element text, otherwise the named attribute.
type fieldStrategy struct {
	Selector string
	Attr     string
}

// fieldSpec is an ordered list of strategies for one field. Required
// fields abort the whole extraction when every strategy misses.
type fieldSpec struct {
	Name       string
	Required   bool
	Strategies []fieldStrategy
}

var (
	nameField = fieldSpec{
		Name:     "name",
		Required: true,
		Strategies: []fieldStrategy{
			{Selector: propertyCardSelector + ` [data-testid="title"]`},
			{Selector: propertyCardSelector + ` [data-testid="title-link"] div`},
			{Selector: propertyCardSelector + ` h3`},
		},
	}

	linkField = fieldSpec{
		Name:     "link",
		Required: true,
		Strategies: []fieldStrategy{
			{Selector: propertyCardSelector + ` [data-testid="title-link"]`, Attr: "href"},
			{Selector: propertyCardSelector + ` a[href*="/hotel/"]`, Attr: "href"},
		},
	}

	addressField = fieldSpec{
		Name: "address",
		Strategies: []fieldStrategy{
			{Selector: propertyCardSelector + ` [data-testid="address"]`},
			{Selector: propertyCardSelector + ` [data-testid="location"]`},
		},
	}

	distanceField = fieldSpec{
		Name: "distance",
		Strategies: []fieldStrategy{
			{Selector: propertyCardSelector + ` [data-testid="distance"]`},
		},
	}

	reviewScoreField = fieldSpec{
		Name: "review_score",
		Strategies: []fieldStrategy{
			{Selector: propertyCardSelector + ` [data-testid="review-score-link"] div[aria-hidden="true"]`},
			{Selector: propertyCardSelector + ` [data-testid="review-score"] div[aria-hidden="true"]`},
		},
	}

	reviewCountField = fieldSpec{
		Name: "reviews_count",
		Strategies: []fieldStrategy{
			{Selector: propertyCardSelector + ` [data-testid="review-score-link"] .aa225776f2`},
			{Selector: propertyCardSelector + ` [data-testid="review-score"] .abf093bdfe`},
			{Selector: propertyCardSelector + ` [data-testid="review-score-link"]`},
		},
	}

	unitField = fieldSpec{
		Name: "unit",
		Strategies: []fieldStrategy{
			{Selector: propertyCardSelector + ` [data-testid="recommended-units"] h4`},
			{Selector: propertyCardSelector + ` [data-testid="recommended-units"] [role="link"]`},
		},
	}

	bedInfoField = fieldSpec{
		Name: "bed_info",
		Strategies: []fieldStrategy{
			{Selector: propertyCardSelector + ` ul li .fff1944c52`},
			{Selector: propertyCardSelector + ` [data-testid="recommended-units"] ul li`},
		},
	}

	cancellationField = fieldSpec{
		Name: "cancellation",
		Strategies: []fieldStrategy{
			{Selector: propertyCardSelector + ` [data-testid="cancellation-policy-icon"] + div`},
			{Selector: propertyCardSelector + ` [data-testid="cancellation-policy"]`},
		},
	}

	nightsAdultsField = fieldSpec{
		Name: "nights_adults",
		Strategies: []fieldStrategy{
			{Selector: propertyCardSelector + ` [data-testid="price-for-x-nights"]`},
		},
	}

	priceField = fieldSpec{
		Name:     "price",
		Required: true,
		Strategies: []fieldStrategy{
			{Selector: propertyCardSelector + ` [data-testid="price-and-discounted-price"]`},
			{Selector: propertyCardSelector + ` [data-testid="price"]`},
			{Selector: propertyCardSelector + ` [data-testid="availability-rate-information"] span[aria-hidden="true"]`},
		},
	}
)
