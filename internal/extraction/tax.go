package extraction

import (
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
)

var (
	vatLabelPattern   = regexp.MustCompile(`(?i)KDV\s*(?:TOPLAM)?\s*%?\s*(\d{1,2})`)
	vatPercentPattern = regexp.MustCompile(`%(\d{1,2})`)
)

var hundred = decimal.NewFromInt(100)

// ExtractVATRate finds the VAT percentage printed on the receipt. A KDV
// label is preferred over a bare percent token.
func ExtractVATRate(raw string) (int, bool) {
	for _, pattern := range []*regexp.Regexp{vatLabelPattern, vatPercentPattern} {
		m := pattern.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		rate, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return rate, true
	}
	return 0, false
}

// VATAmount returns amount * rate / 100 rounded to two decimal places.
func VATAmount(amount decimal.Decimal, rate int) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(rate))).Div(hundred).Round(2)
}
