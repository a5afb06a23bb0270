// Package normalize turns raw scanner or keyboard input into a clean query
// string. Scanner wedges inject control characters and stray whitespace that
// must never reach the lookup service.
package normalize

import (
	"strings"
	"unicode"
)

type options struct {
	removeSpaces      bool
	stripNonPrintable bool
}

// Option adjusts normalization behavior. Defaults remove all whitespace and
// strip non-printable characters.
type Option func(*options)

// WithKeepSpaces preserves internal whitespace. Leading and trailing
// whitespace is still trimmed.
func WithKeepSpaces() Option {
	return func(o *options) { o.removeSpaces = false }
}

// WithKeepNonPrintable skips control character stripping.
func WithKeepNonPrintable() Option {
	return func(o *options) { o.stripNonPrintable = false }
}

// Normalize cleans raw input in a fixed order: strip C0/C1 control characters,
// trim the ends, then remove internal whitespace. Total; always returns a
// string, possibly empty.
func Normalize(raw string, opts ...Option) string {
	o := options{removeSpaces: true, stripNonPrintable: true}
	for _, opt := range opts {
		opt(&o)
	}

	s := raw
	if o.stripNonPrintable {
		s = strings.Map(func(r rune) rune {
			if isControl(r) {
				return -1
			}
			return r
		}, s)
	}

	s = strings.TrimSpace(s)

	if o.removeSpaces {
		s = strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, s)
	}

	return s
}

// isControl covers the C0 range (0x00-0x1F) and the C1/Latin-1 control range
// (0x7F-0x9F). Whitespace control characters are left to the whitespace pass
// so the keep-spaces option governs them alone.
func isControl(r rune) bool {
	if unicode.IsSpace(r) {
		return false
	}
	return r <= 0x1F || (r >= 0x7F && r <= 0x9F)
}
