package htmlprice

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/net/html"

	"cruisewatch/pkg/price"
)

// dollarAmountRe picks the first $-prefixed amount out of a text fragment.
var dollarAmountRe = regexp.MustCompile(`\$([0-9,]+\.?[0-9]*)`)

// fromStructuredData reads the page's ld+json Offer block for the base fare
// and the booking disclaimer list for the taxes/fees line. Finding the fare
// without the disclaimer fails the whole strategy; the partially found fare
// is not reused by later strategies.
func fromStructuredData(doc *html.Node, _ string) (price.Quote, bool) {
	if doc == nil {
		return price.Quote{}, false
	}
	base, ok := offerPrice(doc)
	if !ok {
		return price.Quote{}, false
	}
	taxes, ok := disclaimerTaxes(doc)
	if !ok {
		return price.Quote{}, false
	}
	return price.Quote{BaseFare: base, TaxesFees: taxes}, true
}

// offerPrice scans <script type="application/ld+json"> blocks for an Offer
// with a price member and commits to the first one found.
func offerPrice(doc *html.Node) (decimal.Decimal, bool) {
	ldScript := func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "script" &&
			attrVal(n, "type") == "application/ld+json"
	}

	for _, script := range findAll(doc, ldScript) {
		var offer struct {
			Type  string          `json:"@type"`
			Price json.RawMessage `json:"price"`
		}
		if err := json.Unmarshal([]byte(collectText(script)), &offer); err != nil {
			continue
		}
		if offer.Type != "Offer" || len(offer.Price) == 0 {
			continue
		}
		// The price member shows up both quoted and bare.
		d, err := price.ParseAmount(strings.Trim(string(offer.Price), `"`))
		if err != nil {
			continue
		}
		return d, true
	}
	return decimal.Decimal{}, false
}

// disclaimerTaxes walks the disclaimer list items looking for the first
// span mentioning a dollar amount, e.g.
// "+ Taxes, fees and port expenses $493.55 USD".
func disclaimerTaxes(doc *html.Node) (decimal.Decimal, bool) {
	disclaimer := findFirst(doc, elementWithClass("div", "c544_disclaimer"))
	if disclaimer == nil {
		return decimal.Decimal{}, false
	}
	list := findFirst(disclaimer, elementWithClass("ul", "c544_disclaimer_list"))
	if list == nil {
		return decimal.Decimal{}, false
	}

	for _, item := range findAll(list, elementWithClass("li", "c544_disclaimer_list_item")) {
		span := findFirst(item, element("span"))
		if span == nil {
			continue
		}
		m := dollarAmountRe.FindStringSubmatch(collectText(span))
		if m == nil {
			continue
		}
		if d, err := price.ParseAmount(m[1]); err == nil {
			return d, true
		}
	}
	return decimal.Decimal{}, false
}
