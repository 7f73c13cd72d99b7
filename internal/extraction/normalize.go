package extraction

import (
	"iter"
	"strings"
)

// Text is raw OCR output together with a line view of it.
type Text struct {
	raw string
}

// Normalize wraps raw OCR output. The raw string is kept untouched for
// whole-text pattern search.
func Normalize(raw string) Text {
	return Text{raw: raw}
}

// Raw returns the unsplit text.
func (t Text) Raw() string {
	return t.raw
}

// Lines yields every trimmed, non-empty line in order. Nothing is split
// until the sequence is ranged over, and it can be ranged over again.
func (t Text) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := t.raw
		for rest != "" {
			line := rest
			if i := strings.IndexByte(rest, '\n'); i >= 0 {
				line, rest = rest[:i], rest[i+1:]
			} else {
				rest = ""
			}

			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}
}
