package utils

import "unicode"

// isSeparator reports the characters allowed to join compound queries.
func isSeparator(r rune) bool {
	return r == ' ' || r == '_' || r == '-' || r == '.' || r == '/'
}

// isOnlyNumbers reports whether s is entirely digits.
func isOnlyNumbers(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// hasSpecialChars reports any character that is not a letter, digit,
// separator or apostrophe. Apostrophes pass because contractions like
// "it's" are legitimate dictionary entries.
func hasSpecialChars(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !isSeparator(r) && r != '\'' {
			return true
		}
	}
	return false
}

// IsValidInput decides whether a query is worth running against the
// dictionary. Pure numbers, symbol noise and keyboard mashes like "dddd"
// produce nothing useful, so they are rejected before any lookup.
func IsValidInput(s string) bool {
	if len(s) == 0 {
		return false
	}
	if isOnlyNumbers(s) {
		return false
	}
	if hasSpecialChars(s) {
		return false
	}
	return !IsRepetitive(s)
}

// IsRepetitive reports whether s is a single character repeated three or
// more times. Counted over runes, so "ééé" is as repetitive as "eee".
func IsRepetitive(s string) bool {
	var first rune
	n := 0
	for _, r := range s {
		if n == 0 {
			first = r
		} else if r != first {
			return false
		}
		n++
	}
	return n > 2
}
