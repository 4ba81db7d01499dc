package suggest

import (
	"strconv"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultCacheSize bounds the completion result cache. Entries are a
// prefix/limit pair mapped to a ready slice of suggestions, so a few
// hundred covers the hot prefixes of an interactive session.
const defaultCacheSize = 512

// resultCache memoizes Complete calls keyed by "<folded prefix>|<limit>".
type resultCache struct {
	entries *lru.Cache[string, []Suggestion]
	hits    atomic.Int64
	misses  atomic.Int64
}

func newResultCache(size int) *resultCache {
	if size <= 0 {
		return nil
	}
	entries, _ := lru.New[string, []Suggestion](size)
	return &resultCache{entries: entries}
}

func resultKey(key string, limit int) string {
	return key + "|" + strconv.Itoa(limit)
}

func (rc *resultCache) get(key string) ([]Suggestion, bool) {
	cached, ok := rc.entries.Get(key)
	if ok {
		rc.hits.Add(1)
	} else {
		rc.misses.Add(1)
	}
	return cached, ok
}

func (rc *resultCache) put(key string, suggestions []Suggestion) {
	rc.entries.Add(key, suggestions)
}

func (rc *resultCache) purge() {
	rc.entries.Purge()
}

func (rc *resultCache) stats() map[string]int {
	return map[string]int{
		"cachedResults": rc.entries.Len(),
		"cacheHits":     int(rc.hits.Load()),
		"cacheMisses":   int(rc.misses.Load()),
	}
}
