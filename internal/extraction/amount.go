package extraction

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// A money figure is digits, a comma or dot, and exactly two more digits.
// The trailing group rejects a third fractional digit.
var (
	labeledTotalPattern = regexp.MustCompile(`(?i)(?:TOPLAM|TOTAL|GENEL)\s*[:=]?\s*(\d+[,.]\d{2})(?:\D|$)`)
	moneyPattern        = regexp.MustCompile(`(\d+[,.]\d{2})(?:\D|$)`)
)

// ExtractAmount finds the receipt total in raw text.
//
// A figure following a total label wins outright, first occurrence only.
// Without a label the largest figure on the receipt is taken. The boolean
// is false when the text holds no money figure at all.
func ExtractAmount(raw string) (decimal.Decimal, bool) {
	if m := labeledTotalPattern.FindStringSubmatch(raw); m != nil {
		if amount, err := parseMoney(m[1]); err == nil {
			return amount, true
		}
	}

	var (
		largest decimal.Decimal
		found   bool
	)
	for _, m := range moneyPattern.FindAllStringSubmatch(raw, -1) {
		amount, err := parseMoney(m[1])
		if err != nil {
			continue
		}
		if !found || amount.GreaterThan(largest) {
			largest = amount
			found = true
		}
	}
	return largest, found
}

// parseMoney reads a figure that uses a comma as the decimal separator.
func parseMoney(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.Replace(s, ",", ".", 1))
}
