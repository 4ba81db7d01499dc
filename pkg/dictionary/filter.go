package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Frequency-list preprocessing. Corpus exports arrive as tab-separated
// rows of (id, count, word, type, lemma, extra); only clean word rows make
// it into a dictionary.

// ignoreTypes drops rows tagged as punctuation, numbers, particles or
// symbols.
var ignoreTypes = map[string]bool{
	"PUNCT": true,
	"NUM":   true,
	"PART":  true,
	"SYM":   true,
}

// junkWord matches tokens carrying stray punctuation, and URLs.
var junkWord = regexp.MustCompile(`[,@"()+_\[:#*%$<>]|www`)

// ParseFrequencyList consumes a raw corpus frequency list, accumulating
// counts per surviving word. Rows without six columns or a numeric count
// are skipped with a warning. Entries come back sorted by word.
func ParseFrequencyList(r io.Reader) ([]Entry, error) {
	counts := make(map[string]int)
	lineNo := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 6 {
			log.Warnf("Skipping frequency row %d: want 6 columns, got %d", lineNo, len(fields))
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			log.Warnf("Skipping frequency row %d with bad count %q", lineNo, fields[1])
			continue
		}
		word := fields[2]
		if ignoreTypes[fields[3]] || junkWord.MatchString(word) {
			continue
		}
		counts[word] += count
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read frequency list: %w", err)
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Strings(words)

	entries := make([]Entry, 0, len(words))
	for _, w := range words {
		entries = append(entries, Entry{Word: w, Count: counts[w]})
	}
	return entries, nil
}

// WriteCSV emits entries as word,count lines in the order given.
func WriteCSV(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%s,%d\n", e.Word, e.Count); err != nil {
			return fmt.Errorf("failed to write entry %q: %w", e.Word, err)
		}
	}
	return bw.Flush()
}

// ConvertFrequencyList filters a raw corpus frequency list into a loadable
// CSV dictionary.
func ConvertFrequencyList(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("failed to open frequency list %s: %w", inPath, err)
	}
	defer func() {
		if err := in.Close(); err != nil {
			log.Errorf("closing frequency list: %v", err)
		}
	}()

	entries, err := ParseFrequencyList(in)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create dictionary %s: %w", outPath, err)
	}
	defer func() {
		if err := out.Close(); err != nil {
			log.Errorf("closing dictionary: %v", err)
		}
	}()

	if err := WriteCSV(out, entries); err != nil {
		return err
	}
	log.Infof("Converted %s: %d words -> %s", inPath, len(entries), outPath)
	return nil
}
