// Package scanning recognizes the text printed on a photographed receipt.
package scanning

import "context"

// DefaultLanguages is the hint used when none is configured: Turkish first,
// English for brand names and card slips.
const DefaultLanguages = "tur+eng"

// Scanner defines the interface for receipt text recognition
type Scanner interface {
	// Recognize returns the text printed on a receipt image or PDF.
	// languages is a plus-separated list of ISO 639-2 codes, e.g. "tur+eng".
	Recognize(ctx context.Context, imageData []byte, contentType string, languages string) (string, error)
	// Close closes the scanner and releases resources
	Close() error
}
