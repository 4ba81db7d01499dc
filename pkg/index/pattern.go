package index

import "github.com/bastiangx/wordlex/pkg/fold"

// Wildcard stands for exactly one arbitrary character in
// WordsMatchingPattern. It folds to itself, so patterns can be folded
// whole.
const Wildcard = '?'

// WordsMatchingPattern returns every entry whose folded key is exactly as
// long as the folded pattern and matches it position by position, with
// Wildcard runes matching any single character. No partial-length matches:
// "c?t" finds "cat" but never "cats". The empty pattern matches only an
// indexed empty string.
func (ix *Index) WordsMatchingPattern(pattern string) []string {
	var out []string
	matchPattern(ix.root, []rune(fold.Key(pattern)), &out)
	return out
}

func matchPattern(n *node, pat []rune, out *[]string) {
	if len(pat) == 0 {
		*out = append(*out, n.words...)
		return
	}
	if pat[0] == Wildcard {
		for _, r := range n.order {
			matchPattern(n.children[r], pat[1:], out)
		}
		return
	}
	if c := n.walk(pat[0]); c != nil {
		matchPattern(c, pat[1:], out)
	}
}
