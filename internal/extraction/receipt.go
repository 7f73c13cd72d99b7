package extraction

import "github.com/shopspring/decimal"

// Category is one of the fixed spending categories a receipt is filed under.
type Category string

const (
	CategoryMarket     Category = "Market"
	CategoryAutomotive Category = "Automotive/Industrial"
	CategoryFood       Category = "Food/Café"
	CategoryClothing   Category = "Clothing/Accessories"
	CategoryHealth     Category = "Health"
	CategoryOther      Category = "Other"
)

// Categories lists every category in classification priority order.
var Categories = []Category{
	CategoryMarket,
	CategoryAutomotive,
	CategoryFood,
	CategoryClothing,
	CategoryHealth,
	CategoryOther,
}

// Receipt is the structured record produced from one scanned receipt.
// It is built once by an Assembler and never modified afterwards.
type Receipt struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Date      string          `json:"date"`
	FullDate  string          `json:"full_date"`
	Amount    decimal.Decimal `json:"amount"`
	VATRate   int             `json:"vat_rate"`
	VATAmount decimal.Decimal `json:"vat_amount"`
	Category  Category        `json:"category"`
}

// Fields holds the values pulled out of receipt text before an id and
// dates are attached.
type Fields struct {
	Name      string
	Amount    decimal.Decimal
	VATRate   int
	VATAmount decimal.Decimal
	Category  Category
}
