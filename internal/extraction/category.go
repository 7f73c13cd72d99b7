package extraction

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CategoryRule pairs a category with the predicate that selects it.
type CategoryRule struct {
	Category Category
	Match    func(haystack string) bool
}

// CategoryRules is evaluated top to bottom and the first match wins, so a
// receipt mentioning both a supermarket and a pharmacy is filed as Market.
var CategoryRules = []CategoryRule{
	{
		Category: CategoryMarket,
		Match:    keywords(`migros|bim|a101|sok|şok|carrefour|market|gida|gıda|manav|kasap|firin|fırın`),
	},
	{
		Category: CategoryAutomotive,
		Match:    keywords(`akaryakit|akaryakıt|benzin|mazot|motorin|shell|opet|bp|petrol|oto|lastik|tamir|servis`),
	},
	{
		Category: CategoryFood,
		Match:    keywords(`restoran|lokanta|kafe|cafe|yemek|doner|döner|pizz|burger|kahve`),
	},
	{
		Category: CategoryClothing,
		Match:    keywords(`lcw|h&m|zara|koton|mavi|boyner|giyim|ayakkabi|ayakkabı|tekstil`),
	},
	{
		Category: CategoryHealth,
		Match:    keywords(`eczane|hastane|doktor|klinik|saglik|sağlık|ilac|ilaç`),
	},
	{
		Category: CategoryOther,
		Match:    func(string) bool { return true },
	},
}

// keywords builds a predicate over lower-cased text. Every keyword matches
// anywhere in the text, inside longer words too ("sok" in "sokak").
func keywords(pattern string) func(string) bool {
	return regexp.MustCompile(pattern).MatchString
}

// Classify returns the category of the first rule matching text, or
// fallback when none does.
func Classify(rules []CategoryRule, text string, fallback Category) Category {
	haystack := foldCase(text)
	for _, rule := range rules {
		if rule.Match(haystack) {
			return rule.Category
		}
	}
	return fallback
}

// foldCase lower-cases text twice, once with the generic Unicode mapping
// and once with Turkish rules, and joins both. OCR output mixes dotted and
// dotless I freely, so "BIM" and "İLAÇ" must both reach their keywords.
func foldCase(text string) string {
	turkish := cases.Lower(language.Turkish).String(text)
	return strings.ToLower(text) + "\n" + turkish
}
