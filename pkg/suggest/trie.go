package suggest

import (
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// spelling is one stored surface form with its corpus frequency.
type spelling struct {
	word  string
	count int
}

// spellingGroup collects every spelling that folds to the same trie key,
// in first-seen order.
type spellingGroup struct {
	spellings []spelling
}

// add records a spelling, overwriting the count when the exact surface
// form is already present. Returns true when the spelling is new.
func (g *spellingGroup) add(word string, count int) bool {
	for i := range g.spellings {
		if g.spellings[i].word == word {
			g.spellings[i].count = count
			return false
		}
	}
	g.spellings = append(g.spellings, spelling{word: word, count: count})
	return true
}

// collectSuggestions walks the subtree under key and emits every stored
// spelling at or above minThreshold. The group sitting exactly at key is
// skipped so the typed word never suggests itself.
func collectSuggestions(trie *patricia.Trie, key string, minThreshold int) []Suggestion {
	if trie == nil {
		return nil
	}

	var suggestions []Suggestion

	err := trie.VisitSubtree(patricia.Prefix(key), func(p patricia.Prefix, item patricia.Item) error {
		if string(p) == key {
			return nil
		}

		group, ok := item.(*spellingGroup)
		if !ok {
			log.Errorf("Unknown item type: %T for key %s", item, p)
			return nil
		}

		for _, sp := range group.spellings {
			if sp.count < minThreshold {
				continue
			}
			suggestions = append(suggestions, Suggestion{
				Word:      sp.word,
				Frequency: sp.count,
			})
		}
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
	}

	return suggestions
}
