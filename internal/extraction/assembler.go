// Package extraction turns raw OCR text from a photographed receipt into a
// structured record: merchant name, total, VAT rate and amount, and a
// spending category. It is deterministic and keeps no state beyond the id
// sequence, so one Assembler can serve any number of goroutines.
package extraction

import "time"

// Assembler combines extracted fields with a fresh id and the assembly date.
type Assembler struct {
	extractor *Extractor
	ids       IDGenerator
	clock     TimeSource
	dates     DateFormatter
}

// NewAssembler returns an Assembler with the default extractor, a wall-clock
// id sequence and Turkish dates in location.
func NewAssembler(location *time.Location) *Assembler {
	return NewAssemblerWithDeps(NewExtractor(), NewSequence(), SystemClock, NewDateFormatter(location))
}

// NewAssemblerWithDeps creates an Assembler with custom dependencies for testing
func NewAssemblerWithDeps(extractor *Extractor, ids IDGenerator, clock TimeSource, dates DateFormatter) *Assembler {
	return &Assembler{
		extractor: extractor,
		ids:       ids,
		clock:     clock,
		dates:     dates,
	}
}

// Assemble builds the record for one scan. It always succeeds; empty or
// unreadable text yields a record made of defaults.
func (a *Assembler) Assemble(raw string) Receipt {
	fields := a.extractor.Extract(raw)
	now := a.clock.Now()

	return Receipt{
		ID:        a.ids.Next(),
		Name:      fields.Name,
		Date:      a.dates.Short(now),
		FullDate:  a.dates.Long(now),
		Amount:    fields.Amount,
		VATRate:   fields.VATRate,
		VATAmount: fields.VATAmount,
		Category:  fields.Category,
	}
}
