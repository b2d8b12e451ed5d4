// Package htmlprice pulls the base fare and taxes/fees figures out of a
// cruise itinerary page. The markup is unstable, so extraction is layered:
// structured data first, rendered price elements second, a raw regex sweep
// as the last resort.
package htmlprice

import (
	"errors"
	"strings"

	"golang.org/x/net/html"

	"cruisewatch/pkg/price"
)

// ErrNoMatch means every extraction strategy came up empty.
var ErrNoMatch = errors.New("could not locate price block using any extraction strategy")

// A strategy inspects one fetched document and either produces the full
// (base fare, taxes/fees) pair or reports failure. Strategies are
// self-contained: a partial find never carries over to the next one.
type strategy func(doc *html.Node, raw string) (price.Quote, bool)

// Ordered by reliability; the first full success wins.
var strategies = []strategy{
	fromStructuredData,
	fromPriceElements,
	fromRawPatterns,
}

// Extract parses the page once and runs the strategies in order.
func Extract(raw string) (price.Quote, error) {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		// html.Parse recovers from almost any markup; if it truly fails,
		// the raw regex sweep can still run.
		doc = nil
	}

	for _, s := range strategies {
		if q, ok := s(doc, raw); ok {
			return q, nil
		}
	}
	return price.Quote{}, ErrNoMatch
}
