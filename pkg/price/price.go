package price

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Quote is one observed pair of figures for an itinerary: the per-person
// base fare and the taxes/fees/port-expenses add-on, both USD.
type Quote struct {
	BaseFare  decimal.Decimal
	TaxesFees decimal.Decimal
}

func (q Quote) Total() decimal.Decimal {
	return q.BaseFare.Add(q.TaxesFees)
}

// Equal compares both figures by exact value. No tolerance: a one-cent
// move counts as a change.
func (q Quote) Equal(other Quote) bool {
	return q.BaseFare.Equal(other.BaseFare) && q.TaxesFees.Equal(other.TaxesFees)
}

// Changed reports whether current should trigger an alert against previous.
// A nil previous means no prior observation, which always counts as changed.
func Changed(current Quote, previous *Quote) bool {
	return previous == nil || !current.Equal(*previous)
}

// MarshalJSON encodes the quote as the two-element array [base, taxes]
// with plain JSON numbers.
func (q Quote) MarshalJSON() ([]byte, error) {
	return []byte("[" + q.BaseFare.String() + "," + q.TaxesFees.String() + "]"), nil
}

func (q *Quote) UnmarshalJSON(data []byte) error {
	var pair []json.Number
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("decode quote: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("expected [base, taxes], got %d elements", len(pair))
	}
	base, err := decimal.NewFromString(pair[0].String())
	if err != nil {
		return fmt.Errorf("decode base fare: %w", err)
	}
	taxes, err := decimal.NewFromString(pair[1].String())
	if err != nil {
		return fmt.Errorf("decode taxes/fees: %w", err)
	}
	q.BaseFare = base
	q.TaxesFees = taxes
	return nil
}

// ParseAmount parses a currency amount as scraped from the page,
// tolerating thousands separators ("1,899" or "493.55").
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return d, nil
}

// FormatUSD renders d as "$1,899" (places 0) or "$493.55" (places 2),
// grouping thousands the way the alert text shows them.
func FormatUSD(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)

	var b strings.Builder
	if strings.HasPrefix(s, "-") {
		b.WriteByte('-')
		s = s[1:]
	}
	b.WriteByte('$')

	intPart, frac, hasFrac := strings.Cut(s, ".")
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
