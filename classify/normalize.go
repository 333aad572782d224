package classify

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold decomposes compatibility characters and drops everything that is
// not ASCII afterwards, so "JOÃO" becomes "JOAO" and "ﬁ" becomes "fi".
var asciiFold = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
)

// Fold strips accents and upper-cases s. Whitespace is kept.
func Fold(s string) string {
	out, _, err := transform.String(asciiFold, s)
	if err != nil {
		// transform only fails on invalid input states; fall back to plain upper-casing
		return strings.ToUpper(s)
	}
	return strings.ToUpper(out)
}

// Normalize returns the lookup key for a full name: the first
// whitespace-delimited token of the folded name. It is empty when the name
// has no ASCII letters left after folding.
func Normalize(name string) string {
	fields := strings.Fields(Fold(name))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
