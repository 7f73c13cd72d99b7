package extraction

import (
	"time"

	"github.com/goodsign/monday"
)

const (
	shortDateLayout = "2 Jan"
	longDateLayout  = "2 January 2006"
)

// DateFormatter renders assembly timestamps the way the receipt's locale
// writes them, e.g. "17 Eki" and "17 Ekim 2026" for Turkish.
type DateFormatter struct {
	location *time.Location
	locale   monday.Locale
}

// NewDateFormatter returns a Turkish formatter for the given zone. A nil
// location means UTC.
func NewDateFormatter(location *time.Location) DateFormatter {
	return NewDateFormatterWithLocale(location, monday.LocaleTrTR)
}

// NewDateFormatterWithLocale returns a formatter for any locale monday knows.
func NewDateFormatterWithLocale(location *time.Location, locale monday.Locale) DateFormatter {
	if location == nil {
		location = time.UTC
	}
	return DateFormatter{location: location, locale: locale}
}

// Short renders day and abbreviated month.
func (f DateFormatter) Short(t time.Time) string {
	return monday.Format(t.In(f.location), shortDateLayout, f.locale)
}

// Long renders day, full month name and year.
func (f DateFormatter) Long(t time.Time) string {
	return monday.Format(t.In(f.location), longDateLayout, f.locale)
}
