// Package dictionary reads word lists into the engines: plain text lists
// ranked by position, word-count CSV files, and msgpack snapshots. It also
// hosts the frequency-list filter that turns raw corpus exports into
// loadable CSV dictionaries.
package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/bastiangx/wordlex/internal/utils"
	"github.com/bastiangx/wordlex/pkg/index"
	"github.com/bastiangx/wordlex/pkg/suggest"
	"github.com/charmbracelet/log"
)

// Entry is one dictionary word with its accumulated corpus count.
type Entry struct {
	Word  string
	Count int
}

// Loader accumulates entries from any number of dictionary files, merging
// duplicate spellings by summing their counts.
type Loader struct {
	entries  []Entry
	byWord   map[string]int // position of a spelling in entries
	files    int
	maxCount int
	mu       sync.RWMutex
}

// LoaderStats provides statistics about the loading process
type LoaderStats struct {
	TotalWords  int
	FilesLoaded int
	MaxCount    int
}

// NewLoader creates an empty loader
func NewLoader() *Loader {
	return &Loader{byWord: make(map[string]int)}
}

// Add merges one word into the loader. A spelling seen before has the
// counts summed; entry order is first-seen order.
func (l *Loader) Add(word string, count int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.add(word, count)
}

func (l *Loader) add(word string, count int) {
	if i, ok := l.byWord[word]; ok {
		l.entries[i].Count += count
		if l.entries[i].Count > l.maxCount {
			l.maxCount = l.entries[i].Count
		}
		return
	}
	l.byWord[word] = len(l.entries)
	l.entries = append(l.entries, Entry{Word: word, Count: count})
	if count > l.maxCount {
		l.maxCount = count
	}
}

// LoadFile detects the format of filename and loads it. Returns the number
// of lines or records consumed.
func (l *Loader) LoadFile(filename string) (int, error) {
	format, err := DetectFileFormat(filename)
	if err != nil {
		return 0, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to open dictionary file %s: %w", filename, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Errorf("closing dictionary file: %v", err)
		}
	}()

	var loaded int
	switch format {
	case FormatText:
		loaded, err = l.LoadText(file)
	case FormatCSV:
		loaded, err = l.LoadCSV(file)
	case FormatSnapshot:
		loaded, err = l.LoadSnapshot(file)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, filename)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load %s: %w", filename, err)
	}

	l.mu.Lock()
	l.files++
	l.mu.Unlock()

	log.Debugf("Loaded %d entries from %s (%v)", loaded, filename, format)
	return loaded, nil
}

// LoadDirectory loads every recognizable dictionary file in dir, in
// lexical filename order. Files with unknown formats are skipped, not
// fatal. Returns the total number of records consumed.
func (l *Loader) LoadDirectory(dir string) (int, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read dictionary dir %s: %w", dir, err)
	}

	total := 0
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		path := filepath.Join(dir, de.Name())
		loaded, err := l.LoadFile(path)
		if err != nil {
			if errors.Is(err, ErrUnknownFormat) {
				log.Debugf("Skipping non-dictionary file: %s", path)
				continue
			}
			log.Warnf("Skipping unreadable dictionary file %s: %v", path, err)
			continue
		}
		total += loaded
	}
	return total, nil
}

// LoadText reads one word per line; blank lines and '#' comments are
// skipped. Earlier lines rank higher, and the rank is converted to a count
// so positional lists merge cleanly with counted ones.
func (l *Loader) LoadText(r io.Reader) (int, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("failed to read word list: %w", err)
	}

	ranks := utils.CreateRankList(len(words))
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, w := range words {
		l.add(w, rankScore(ranks[i]))
	}
	return len(words), nil
}

// rankScore inverts a position rank so rank 1 scores highest.
func rankScore(rank uint16) int {
	return int(65535 - rank + 1)
}

// LoadCSV reads word,count lines, the format the frequency filter emits.
// Malformed lines are skipped with a warning, not fatal.
func (l *Loader) LoadCSV(r io.Reader) (int, error) {
	loaded := 0
	lineNo := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		word, countStr, ok := strings.Cut(line, ",")
		if !ok {
			log.Warnf("Skipping malformed dictionary line %d: %q", lineNo, line)
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(countStr))
		if err != nil || count < 1 {
			log.Warnf("Skipping dictionary line %d with bad count: %q", lineNo, line)
			continue
		}

		l.Add(strings.TrimSpace(word), count)
		loaded++
	}
	if err := scanner.Err(); err != nil {
		return loaded, fmt.Errorf("failed to read CSV dictionary: %w", err)
	}
	return loaded, nil
}

// LoadSnapshot reads a msgpack snapshot stream.
func (l *Loader) LoadSnapshot(r io.Reader) (int, error) {
	entries, err := ReadSnapshot(r)
	if err != nil {
		return 0, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range entries {
		l.add(e.Word, e.Count)
	}
	return len(entries), nil
}

// Populate feeds every accumulated entry into the core index builder and
// the ranked completer. Either side may be nil to skip it.
func (l *Loader) Populate(b *index.Builder, c *suggest.Completer) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, e := range l.entries {
		if b != nil {
			b.Insert(e.Word)
		}
		if c != nil {
			c.AddWord(e.Word, e.Count)
		}
	}
}

// Truncate keeps only the n highest-count entries, breaking count ties in
// first-seen order. The survivors stay in first-seen order. n <= 0 or
// n >= Len is a no-op.
func (l *Loader) Truncate(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n <= 0 || n >= len(l.entries) {
		return
	}

	order := make([]int, len(l.entries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return l.entries[order[a]].Count > l.entries[order[b]].Count
	})

	keep := make([]bool, len(l.entries))
	for _, i := range order[:n] {
		keep[i] = true
	}

	kept := make([]Entry, 0, n)
	l.byWord = make(map[string]int, n)
	l.maxCount = 0
	for i, e := range l.entries {
		if !keep[i] {
			continue
		}
		l.byWord[e.Word] = len(kept)
		kept = append(kept, e)
		if e.Count > l.maxCount {
			l.maxCount = e.Count
		}
	}
	l.entries = kept
}

// Entries returns a copy of the accumulated entries in first-seen order.
func (l *Loader) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Stats returns current loading statistics
func (l *Loader) Stats() LoaderStats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return LoaderStats{
		TotalWords:  len(l.entries),
		FilesLoaded: l.files,
		MaxCount:    l.maxCount,
	}
}
