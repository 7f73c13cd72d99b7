package extraction

import (
	"iter"
	"unicode/utf8"
)

const (
	// MaxNameLength is the longest merchant name kept, in characters.
	MaxNameLength = 20

	minNameLength = 4
)

// ResolveMerchant picks the first line long enough to be a business name.
// Lines of three characters or fewer are scanner noise at the top of the slip.
func ResolveMerchant(lines iter.Seq[string]) (string, bool) {
	for line := range lines {
		if utf8.RuneCountInString(line) >= minNameLength {
			return truncateName(line), true
		}
	}
	return "", false
}

func truncateName(name string) string {
	if utf8.RuneCountInString(name) <= MaxNameLength {
		return name
	}
	return string([]rune(name)[:MaxNameLength])
}
