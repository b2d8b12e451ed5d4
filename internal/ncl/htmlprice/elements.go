package htmlprice

import (
	"regexp"

	"github.com/shopspring/decimal"
	"golang.org/x/net/html"

	"cruisewatch/pkg/price"
)

var (
	priceClassRe = regexp.MustCompile(`(?i)price|cost|fare`)
	ppUSDRe      = regexp.MustCompile(`(?i)\$([0-9,]+)\s*PP\s*/\s*USD`)
	taxesLabelRe = regexp.MustCompile(`(?i)Taxes,\s*fees\s*and\s*port\s*expenses\s*\$([0-9,]+\.?[0-9]*)`)
)

// fromPriceElements scans rendered price-looking nodes for the
// "$1,899 PP / USD" form and, independently, the disclaimer section for
// the labeled taxes line. Both must be present.
func fromPriceElements(doc *html.Node, _ string) (price.Quote, bool) {
	if doc == nil {
		return price.Quote{}, false
	}

	base, ok := elementBaseFare(doc)
	if !ok {
		return price.Quote{}, false
	}

	disclaimer := findFirst(doc, elementWithClass("div", "c544_disclaimer"))
	if disclaimer == nil {
		return price.Quote{}, false
	}
	m := taxesLabelRe.FindStringSubmatch(collectText(disclaimer))
	if m == nil {
		return price.Quote{}, false
	}
	taxes, err := price.ParseAmount(m[1])
	if err != nil {
		return price.Quote{}, false
	}

	return price.Quote{BaseFare: base, TaxesFees: taxes}, true
}

func elementBaseFare(doc *html.Node) (decimal.Decimal, bool) {
	for _, n := range findAll(doc, priceLikeElement) {
		m := ppUSDRe.FindStringSubmatch(collectText(n))
		if m == nil {
			continue
		}
		if d, err := price.ParseAmount(m[1]); err == nil {
			return d, true
		}
	}
	return decimal.Decimal{}, false
}

// priceLikeElement matches span/div/p nodes whose class hints at a price
// display ("price", "cost" or "fare" anywhere in the class list).
func priceLikeElement(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.Data {
	case "span", "div", "p":
	default:
		return false
	}
	return priceClassRe.MatchString(attrVal(n, "class"))
}
