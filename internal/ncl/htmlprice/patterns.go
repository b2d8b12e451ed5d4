package htmlprice

import (
	"regexp"

	"github.com/shopspring/decimal"
	"golang.org/x/net/html"

	"cruisewatch/pkg/price"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Each list is tried in order; the first match per list wins.
var farePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\$([0-9,]+)\s*PP\s*/\s*USD`),
	regexp.MustCompile(`(?i)"price":\s*"([0-9,]+)"`),
	regexp.MustCompile(`(?i)priceFrom["']?\s*:\s*["']?([0-9,]+)`),
}

var taxPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Taxes,\s*fees\s*and\s*port\s*expenses\s*\$([0-9,]+\.?[0-9]*)`),
	regexp.MustCompile(`(?i)\+\s*Taxes,\s*fees\s*and\s*port\s*expenses\s*\$([0-9,]+\.?[0-9]*)`),
	regexp.MustCompile(`(?i)taxesAndFees["']?\s*:\s*["']?([0-9,]+\.?[0-9]*)`),
}

// fromRawPatterns is the last resort: flatten all whitespace to single
// spaces and sweep the raw markup with the ordered pattern lists. Both
// figures must match or the strategy fails.
func fromRawPatterns(_ *html.Node, raw string) (price.Quote, bool) {
	text := whitespaceRe.ReplaceAllString(raw, " ")

	base, ok := firstMatch(farePatterns, text)
	if !ok {
		return price.Quote{}, false
	}
	taxes, ok := firstMatch(taxPatterns, text)
	if !ok {
		return price.Quote{}, false
	}
	return price.Quote{BaseFare: base, TaxesFees: taxes}, true
}

func firstMatch(patterns []*regexp.Regexp, text string) (decimal.Decimal, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if d, err := price.ParseAmount(m[1]); err == nil {
			return d, true
		}
	}
	return decimal.Decimal{}, false
}
