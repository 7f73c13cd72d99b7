package extraction

import "github.com/shopspring/decimal"

// Defaults is the value each field takes when the text carries no usable
// evidence for it.
type Defaults struct {
	Amount   decimal.Decimal
	VATRate  int
	Name     string
	Category Category
}

// DefaultPolicy applies the standard Turkish VAT rate and files
// unrecognised receipts under Other.
var DefaultPolicy = Defaults{
	Amount:   decimal.Zero,
	VATRate:  20,
	Name:     "Bilinmeyen Fiş",
	Category: CategoryOther,
}

// Extractor runs every field extractor over one piece of receipt text.
type Extractor struct {
	defaults Defaults
	rules    []CategoryRule
}

// NewExtractor returns an Extractor using DefaultPolicy and CategoryRules.
func NewExtractor() *Extractor {
	return NewExtractorWithRules(DefaultPolicy, CategoryRules)
}

// NewExtractorWithRules returns an Extractor with a custom policy and rule table.
func NewExtractorWithRules(defaults Defaults, rules []CategoryRule) *Extractor {
	return &Extractor{
		defaults: defaults,
		rules:    rules,
	}
}

// Extract never fails: anything it cannot find comes from the default policy.
func (e *Extractor) Extract(raw string) Fields {
	text := Normalize(raw)

	amount, ok := ExtractAmount(text.Raw())
	if !ok {
		amount = e.defaults.Amount
	}

	rate, ok := ExtractVATRate(text.Raw())
	if !ok {
		rate = e.defaults.VATRate
	}

	name, ok := ResolveMerchant(text.Lines())
	if !ok {
		name = truncateName(e.defaults.Name)
	}

	return Fields{
		Name:      name,
		Amount:    amount,
		VATRate:   rate,
		VATAmount: VATAmount(amount, rate),
		Category:  Classify(e.rules, text.Raw()+" "+name, e.defaults.Category),
	}
}
