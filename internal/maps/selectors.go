package maps

// Ordered selector strategies for the Google Maps surface. Each gets its
// own bounded wait; the next strategy is tried on failure.

// consentSelectors locate the "Accept all" control on the consent
// interstitial Google sometimes redirects to. XPath entries start with
// a slash and are matched by text.
var consentSelectors = []string{
	`button[aria-label="Accept all"]`,
	`button.UywwFc-LgbsSe[jsname="b3VHJd"]`,
	`button.XWZjwc`,
	`//button[contains(., 'Accept all')]`,
}

// ratingWidgetSelectors locate the review widget on a place result.
var ratingWidgetSelectors = []string{
	`div.F7nice`,
	`div[jslog*="76333"]`,
	`span[role="img"][aria-label*="stars"]`,
}

const (
	// Primary score read: the aria-hidden numeral inside the widget
	scoreTextSelector = `div.F7nice span span[aria-hidden="true"]`

	// Fallback score read: the star-rating image label
	scoreLabelSelector = `span[role="img"][aria-label*="stars"]`
)

// reviewCountScript collects candidate labels for the count extraction:
// aria-labels mentioning reviews first, then any parenthesized span text.
const reviewCountScript = `
	(function() {
		var labels = [];
		document.querySelectorAll('span[aria-label*="review"]').forEach(function(el) {
			labels.push(el.getAttribute('aria-label'));
		});
		if (labels.length === 0) {
			document.querySelectorAll('div.F7nice span').forEach(function(el) {
				var t = el.innerText || '';
				if (t.indexOf('(') !== -1) labels.push(t);
			});
		}
		return labels;
	})()
`
