// Package fold canonicalizes words for indexing. A key is the word with
// diacritics stripped and case lowered, so "Résumé", "RESUME" and "resume"
// all land on the same key while their spellings stay distinct.
package fold

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes, drops combining marks and recomposes what is left.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Key returns the canonical lookup form of s. It is idempotent and total:
// ill-formed UTF-8 bytes are carried through untouched instead of being
// swapped for U+FFFD, and the well-formed spans around them still fold.
func Key(s string) string {
	if utf8.ValidString(s) {
		return keyValid(s)
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			b.WriteByte(s[i])
			i++
			continue
		}
		// Extend to the end of this well-formed span before folding it.
		j := i + size
		for j < len(s) {
			r, size = utf8.DecodeRuneInString(s[j:])
			if r == utf8.RuneError && size <= 1 {
				break
			}
			j += size
		}
		b.WriteString(keyValid(s[i:j]))
		i = j
	}
	return b.String()
}

func keyValid(s string) string {
	out, _, err := transform.String(stripMarks, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}
