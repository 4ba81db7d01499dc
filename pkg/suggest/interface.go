// Package suggest provides ranked prefix completion over a radix trie,
// grouping stored spellings under their accent and case folded form.
package suggest

// ICompleter defines the interface for word completion engines
type ICompleter interface {
	// Complete returns suggestions for a given prefix with a limit
	Complete(prefix string, limit int) []Suggestion

	// AddWord adds a word with its frequency to the completer
	AddWord(word string, frequency int)

	// Stats returns statistics about the loaded dictionary
	Stats() map[string]int
}
