// Package cli handles cmd line input and queries for DBG and testing various features
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/wordlex/internal/utils"
	"github.com/bastiangx/wordlex/pkg/index"
	"github.com/bastiangx/wordlex/pkg/suggest"
	"github.com/charmbracelet/log"
)

// InputHandler processes user input from stdin, mapping each line onto one
// of the query modes. A plain word asks for ranked completions; a leading
// '/' enumerates every word under the prefix; a leading '~' runs a fuzzy
// lookup with an optional trailing distance; a leading '=' checks exact
// membership; any line carrying a '?' is treated as a wildcard pattern.
type InputHandler struct {
	completer       suggest.ICompleter
	index           *index.Index
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	defaultDistance int
	maxDistance     int
	requestCount    int
	noFilter        bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(completer suggest.ICompleter, ix *index.Index, minLength, maxLength, limit, distance, maxDistance int, noFilter bool) *InputHandler {
	return &InputHandler{
		completer:       completer,
		index:           ix,
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		defaultDistance: distance,
		maxDistance:     maxDistance,
		noFilter:        noFilter,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed input to the handleInput() for processing.
// Loop terminates if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	log.Print("WordLex CLI [BETA]")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a word for completions, /w for prefix walk, ~w [n] for fuzzy,")
	log.Print("=w for exact lookup, ? as a wildcard char (Ctrl+C to exit):")

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

// handleInput dispatches a single line to the matching query mode.
func (h *InputHandler) handleInput(line string) {
	h.requestCount++

	switch {
	case strings.HasPrefix(line, "="):
		h.showContains(strings.TrimSpace(strings.TrimPrefix(line, "=")))
	case strings.HasPrefix(line, "/"):
		h.showPrefixWalk(strings.TrimSpace(strings.TrimPrefix(line, "/")))
	case strings.HasPrefix(line, "~"):
		h.showFuzzy(strings.TrimSpace(strings.TrimPrefix(line, "~")))
	case strings.ContainsRune(line, index.Wildcard):
		h.showPattern(line)
	default:
		h.showCompletions(line)
	}
}

// showCompletions validates the prefix's length and content, then asks the
// completer for suggestions. Results are formatted and printed to the log.
func (h *InputHandler) showCompletions(prefix string) {
	if len(prefix) < h.minPrefixLength {
		log.Errorf("Prefix too short: %s", prefix)
		return
	}

	if len(prefix) > h.maxPrefixLength {
		log.Errorf("Prefix too long: %s", prefix)
		return
	}

	// input filtering by default (unless --no-filter flag is used)
	if !h.noFilter {
		if !utils.IsValidInput(prefix) {
			log.Infof("No results found for prefix: '%s'", prefix)
			return
		}
	} else {
		log.Debug("Input filtering disabled - indexed all entries")
	}

	start := time.Now()
	suggestions := h.completer.Complete(prefix, h.suggestLimit)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for prefix '%s'", elapsed, prefix)

	if len(suggestions) == 0 {
		log.Warnf("No suggestions found for prefix: '%s'", prefix)
		return
	}

	log.Printf("Found %d suggestions for prefix '%s':", len(suggestions), prefix)
	for i, s := range suggestions {
		fmtFreq := utils.FormatWithCommas(s.Frequency)
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", s.Word)
		log.Printf("%2d. %-40s (freq: %8s)", i+1, clWord, fmtFreq)
	}
}

// showPrefixWalk enumerates indexed words below a prefix, unranked.
func (h *InputHandler) showPrefixWalk(prefix string) {
	start := time.Now()
	words := h.index.WordsWithPrefix(prefix)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for prefix walk '%s'", elapsed, prefix)

	h.printWords(words, fmt.Sprintf("under prefix '%s'", prefix))
}

// showPattern matches the line as a fixed-length wildcard pattern.
func (h *InputHandler) showPattern(pattern string) {
	start := time.Now()
	words := h.index.WordsMatchingPattern(pattern)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for pattern '%s'", elapsed, pattern)

	h.printWords(words, fmt.Sprintf("matching pattern '%s'", pattern))
}

// showFuzzy parses an optional trailing distance ("~word 2") and lists
// every indexed word within that edit distance of the query.
func (h *InputHandler) showFuzzy(input string) {
	query := input
	distance := h.defaultDistance

	if fields := strings.Fields(input); len(fields) == 2 {
		if d, err := strconv.Atoi(fields[1]); err == nil {
			query = fields[0]
			distance = d
		}
	}
	if query == "" {
		log.Error("Fuzzy query is empty")
		return
	}
	if distance > h.maxDistance {
		log.Errorf("Distance %d exceeds maximum %d", distance, h.maxDistance)
		return
	}

	start := time.Now()
	matches, err := h.index.WordsWithinDistance(query, distance)
	elapsed := time.Since(start)
	if err != nil {
		log.Errorf("Fuzzy lookup failed: %v", err)
		return
	}
	log.Debugf("Took [ %v ] for fuzzy '%s' d=%d", elapsed, query, distance)

	if len(matches) == 0 {
		log.Warnf("No words within distance %d of '%s'", distance, query)
		return
	}

	shown := matches
	if h.suggestLimit > 0 && len(shown) > h.suggestLimit {
		shown = shown[:h.suggestLimit]
	}
	log.Printf("Found %d words within distance %d of '%s':", len(matches), distance, query)
	for i, m := range shown {
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", m.Word)
		log.Printf("%2d. %-40s (d=%d)", i+1, clWord, m.Distance)
	}
	if len(shown) < len(matches) {
		log.Printf("    ... and %d more", len(matches)-len(shown))
	}
}

// showContains reports exact membership for one spelling.
func (h *InputHandler) showContains(word string) {
	if word == "" {
		log.Error("Lookup word is empty")
		return
	}

	start := time.Now()
	found := h.index.Contains(word)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for lookup '%s'", elapsed, word)

	if found {
		log.Printf("'%s' is indexed", word)
	} else {
		log.Warnf("'%s' is not indexed", word)
	}
}

func (h *InputHandler) printWords(words []string, what string) {
	if len(words) == 0 {
		log.Warnf("No words %s", what)
		return
	}

	shown := words
	if h.suggestLimit > 0 && len(shown) > h.suggestLimit {
		shown = shown[:h.suggestLimit]
	}
	log.Printf("Found %d words %s:", len(words), what)
	for i, w := range shown {
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", w)
		log.Printf("%2d. %s", i+1, clWord)
	}
	if len(shown) < len(words) {
		log.Printf("    ... and %d more", len(words)-len(shown))
	}
}
