package suggest

import (
	"sort"
	"sync"

	"github.com/bastiangx/wordlex/internal/utils"
	"github.com/bastiangx/wordlex/pkg/fold"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Suggestion is a single ranked completion candidate. Word is the
// spelling exactly as it was added, never a folded form.
type Suggestion struct {
	Word      string
	Frequency int
}

// Default frequency floors for suggestions. Short and keyboard-mash
// prefixes match huge subtrees, so they get the stricter floor.
const (
	defaultMinFrequency      = 20
	defaultMinFrequencyShort = 24
	shortPrefixFoldedLen     = 2
)

// Completer ranks stored words under a typed prefix. Lookup is
// accent and case insensitive: the radix trie is keyed by folded
// forms while the original spellings ride along in group items.
type Completer struct {
	trie         *patricia.Trie
	cache        *resultCache
	totalWords   int
	maxFrequency int
	minFreq      int
	minFreqShort int
	mu           sync.RWMutex
}

func NewCompleter() *Completer {
	return NewCompleterWithCache(defaultCacheSize)
}

// NewCompleterWithCache sizes the result cache explicitly. A size of
// zero or less disables caching entirely.
func NewCompleterWithCache(cacheSize int) *Completer {
	return &Completer{
		trie:         patricia.NewTrie(),
		cache:        newResultCache(cacheSize),
		minFreq:      defaultMinFrequency,
		minFreqShort: defaultMinFrequencyShort,
	}
}

// SetFrequencyThresholds overrides the frequency floors. Values of
// zero or less keep the current floor. Memoized results are dropped.
func (c *Completer) SetFrequencyThresholds(standard, shortPrefix int) {
	c.mu.Lock()
	if standard > 0 {
		c.minFreq = standard
	}
	if shortPrefix > 0 {
		c.minFreqShort = shortPrefix
	}
	c.mu.Unlock()

	if c.cache != nil {
		c.cache.purge()
	}
}

// AddWord registers a spelling with its frequency, overwriting the
// count when the same spelling was added before. Any memoized results
// are dropped since they may now be stale.
func (c *Completer) AddWord(word string, frequency int) {
	key := patricia.Prefix(fold.Key(word))

	c.mu.Lock()
	group, _ := c.trie.Get(key).(*spellingGroup)
	if group == nil {
		group = &spellingGroup{}
		c.trie.Insert(key, group)
	}
	if group.add(word, frequency) {
		c.totalWords++
	}
	if frequency > c.maxFrequency {
		c.maxFrequency = frequency
	}
	c.mu.Unlock()

	if c.cache != nil {
		c.cache.purge()
	}
}

// Complete returns suggestions whose folded form extends the folded
// prefix, ordered by descending frequency. Ties keep trie order. A
// limit of zero or less returns every qualifying suggestion.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	key := fold.Key(prefix)

	cacheKey := resultKey(key, limit)
	if c.cache != nil {
		if cached, ok := c.cache.get(cacheKey); ok {
			return cached
		}
	}

	c.mu.RLock()
	minFrequencyThreshold := c.minFreq
	if len(key) <= shortPrefixFoldedLen || utils.IsRepetitive(key) {
		minFrequencyThreshold = c.minFreqShort
	}
	suggestions := collectSuggestions(c.trie, key, minFrequencyThreshold)
	c.mu.RUnlock()

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Frequency > suggestions[j].Frequency
	})

	if len(suggestions) > limit && limit > 0 {
		suggestions = suggestions[:limit]
	}

	if c.cache != nil {
		c.cache.put(cacheKey, suggestions)
	}
	return suggestions
}

// Stats returns counters about the loaded vocabulary and the result
// cache, keyed for the stats op on the wire.
func (c *Completer) Stats() map[string]int {
	c.mu.RLock()
	stats := map[string]int{
		"totalWords":   c.totalWords,
		"maxFrequency": c.maxFrequency,
	}
	c.mu.RUnlock()

	if c.cache != nil {
		for k, v := range c.cache.stats() {
			stats[k] = v
		}
	}
	return stats
}
