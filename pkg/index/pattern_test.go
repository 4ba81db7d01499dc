package index

import (
	"reflect"
	"testing"
)

func TestWordsMatchingPattern(t *testing.T) {
	ix := Build([]string{"cat", "cats", "car", "care", "bar"})

	testCases := []struct {
		pattern     string
		expected    []string
		description string
	}{
		{"c?t", []string{"cat"}, "single wildcard in the middle"},
		{"c?ts", []string{"cats"}, "wildcard with longer literal tail"},
		{"?a?", []string{"bar", "car", "cat"}, "wildcards around a literal"},
		{"???", []string{"bar", "car", "cat"}, "all wildcards, length three"},
		{"????", []string{"care", "cats"}, "all wildcards, length four"},
		{"care", []string{"care"}, "no wildcard degenerates to exact key"},
		{"c?t?", []string{"cats"}, "trailing wildcard must be consumed"},
		{"?", nil, "no one-letter words indexed"},
		{"x??", nil, "literal with no matching edge"},
		{"", nil, "empty pattern matches nothing here"},
		{"c?too-long", nil, "pattern longer than every key"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got := ix.WordsMatchingPattern(tc.pattern)
			if len(got) == 0 && len(tc.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("WordsMatchingPattern(%q) = %v, want %v", tc.pattern, got, tc.expected)
			}
		})
	}
}

func TestWordsMatchingPatternFoldsLiterals(t *testing.T) {
	ix := Build([]string{"fiance", "fiancé", "fiancee", "finance"})

	testCases := []struct {
		pattern     string
		expected    []string
		description string
	}{
		{"fianc?", []string{"fiance", "fiancé"}, "both spellings share the six-rune key"},
		{"fiancé", []string{"fiance", "fiancé"}, "accented literal folds onto the key"},
		{"FIANC?", []string{"fiance", "fiancé"}, "case folds too"},
		{"fiance?", []string{"fiancee"}, "seven-rune keys only"},
		{"f?nance", []string{"finance"}, "wildcard over the differing rune"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got := ix.WordsMatchingPattern(tc.pattern)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("WordsMatchingPattern(%q) = %v, want %v", tc.pattern, got, tc.expected)
			}
		})
	}
}
