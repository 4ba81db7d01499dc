package server

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/wordlex/internal/utils"
	"github.com/bastiangx/wordlex/pkg/config"
	"github.com/bastiangx/wordlex/pkg/index"
	"github.com/bastiangx/wordlex/pkg/suggest"
)

// defaultLimit applies when a completion request carries no limit.
const defaultLimit = 10

// Server handles the IPC for word lookups and completions
type Server struct {
	index      *index.Index
	completer  *suggest.Completer
	cfg        *config.Config
	fuzzyCache *lru.Cache[string, []index.Match]
	decoder    *msgpack.Decoder
	encoder    *msgpack.Encoder
	requests   atomic.Int64
}

// NewServer creates a completion server using stdin/stdout for IPC
func NewServer(ix *index.Index, completer *suggest.Completer, cfg *config.Config) *Server {
	return NewServerIO(ix, completer, cfg, os.Stdin, os.Stdout)
}

// NewServerIO wires explicit streams, for tests and embedding hosts.
func NewServerIO(ix *index.Index, completer *suggest.Completer, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	var fuzzyCache *lru.Cache[string, []index.Match]
	if cfg.Dict.CacheSize > 0 {
		fuzzyCache, _ = lru.New[string, []index.Match](cfg.Dict.CacheSize)
	}

	return &Server{
		index:      ix,
		completer:  completer,
		cfg:        cfg,
		fuzzyCache: fuzzyCache,
		decoder:    msgpack.NewDecoder(r),
		encoder:    msgpack.NewEncoder(w),
	}
}

// Start begins listening for IPC requests
func (s *Server) Start() error {
	log.Debug("Starting Server.")

	// Signal that the server is ready
	s.send(StatusResponse{Status: "ready"})

	// incoming requests stdin
	for {
		var request Request
		if err := s.decoder.Decode(&request); err != nil {
			if err == io.EOF {
				return nil
			}
			// A malformed frame desyncs the msgpack stream, so bail
			// out instead of guessing at the next boundary.
			log.Errorf("Reading request: %v", err)
			s.sendError(request.ID, "Invalid msgpack request", 400)
			return err
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches an incoming request by op
func (s *Server) handleRequest(request Request) {
	s.requests.Add(1)

	switch request.Op {
	case "complete":
		s.handleComplete(request)
	case "contains":
		s.handleContains(request)
	case "prefix":
		s.handlePrefix(request)
	case "pattern":
		s.handlePattern(request)
	case "fuzzy":
		s.handleFuzzy(request)
	case "stats":
		s.handleStats(request)
	case "health":
		s.send(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown op: %s", request.Op), 400)
	}
}

// send encodes one response frame onto the wire.
func (s *Server) send(response interface{}) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.send(CompletionError{
		ID:    id,
		Error: message,
		Code:  code,
	})
}

// validateQuery applies the length bounds every query op shares.
func (s *Server) validateQuery(request Request) bool {
	if request.Query == "" {
		s.sendError(request.ID, "Missing 'q' parameter", 400)
		log.Debugf("Empty query in request %s", request.ID)
		return false
	}
	if max := s.cfg.Server.MaxPrefix; max > 0 && len(request.Query) > max {
		s.sendError(request.ID, fmt.Sprintf("Query exceeds maximum length of %d bytes", max), 400)
		log.Debugf("Query too long in request %s", request.ID)
		return false
	}
	return true
}

// handleComplete serves ranked suggestions. On top of the shared bounds,
// completion prefixes honor the configured minimum length and the junk
// input filter.
func (s *Server) handleComplete(request Request) {
	if !s.validateQuery(request) {
		return
	}
	if min := s.cfg.Server.MinPrefix; len(request.Query) < min {
		s.sendError(request.ID, fmt.Sprintf("Prefix must be at least %d characters", min), 400)
		return
	}
	if s.cfg.Server.EnableFilter && !utils.IsValidInput(request.Query) {
		s.sendError(request.ID, "Prefix rejected by input filter", 400)
		return
	}

	limit := request.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if max := s.cfg.Server.MaxLimit; max > 0 && limit > max {
		limit = max
	}

	start := time.Now()
	suggestions := s.completer.Complete(request.Query, limit)
	elapsed := time.Since(start)

	wire := make([]CompletionSuggestion, len(suggestions))
	for i, sg := range suggestions {
		wire[i] = CompletionSuggestion{Word: sg.Word, Rank: uint16(i + 1)}
	}

	s.send(CompletionResponse{
		ID:          request.ID,
		Suggestions: wire,
		Count:       len(wire),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleContains(request Request) {
	if !s.validateQuery(request) {
		return
	}

	start := time.Now()
	found := s.index.Contains(request.Query)
	elapsed := time.Since(start)

	s.send(ContainsResponse{
		ID:        request.ID,
		Found:     found,
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) handlePrefix(request Request) {
	if !s.validateQuery(request) {
		return
	}

	start := time.Now()
	words := s.index.WordsWithPrefix(request.Query)
	elapsed := time.Since(start)

	s.sendWords(request, words, elapsed)
}

func (s *Server) handlePattern(request Request) {
	if !s.validateQuery(request) {
		return
	}

	start := time.Now()
	words := s.index.WordsMatchingPattern(request.Query)
	elapsed := time.Since(start)

	s.sendWords(request, words, elapsed)
}

func (s *Server) sendWords(request Request, words []string, elapsed time.Duration) {
	if request.Limit > 0 && len(words) > request.Limit {
		words = words[:request.Limit]
	}
	s.send(WordsResponse{
		ID:        request.ID,
		Words:     words,
		Count:     len(words),
		TimeTaken: elapsed.Microseconds(),
	})
}

// handleFuzzy serves bounded edit distance search. Full result sets are
// memoized per query and distance; the limit only trims the response.
func (s *Server) handleFuzzy(request Request) {
	if !s.validateQuery(request) {
		return
	}
	if request.Distance < 0 {
		s.sendError(request.ID, "Distance must not be negative", 400)
		return
	}
	if max := s.cfg.Dict.MaxFuzzyDistance; max > 0 && request.Distance > max {
		s.sendError(request.ID, fmt.Sprintf("Distance exceeds maximum of %d", max), 400)
		return
	}

	cacheKey := request.Query + "|" + strconv.Itoa(request.Distance)

	start := time.Now()
	matches, ok := s.cachedFuzzy(cacheKey)
	if !ok {
		var err error
		matches, err = s.index.WordsWithinDistance(request.Query, request.Distance)
		if err != nil {
			s.sendError(request.ID, err.Error(), 400)
			return
		}
		if s.fuzzyCache != nil {
			s.fuzzyCache.Add(cacheKey, matches)
		}
	}
	elapsed := time.Since(start)

	if request.Limit > 0 && len(matches) > request.Limit {
		matches = matches[:request.Limit]
	}

	wire := make([]FuzzyMatch, len(matches))
	for i, m := range matches {
		wire[i] = FuzzyMatch{Word: m.Word, Distance: m.Distance}
	}

	s.send(FuzzyResponse{
		ID:        request.ID,
		Matches:   wire,
		Count:     len(wire),
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) cachedFuzzy(key string) ([]index.Match, bool) {
	if s.fuzzyCache == nil {
		return nil, false
	}
	return s.fuzzyCache.Get(key)
}

func (s *Server) handleStats(request Request) {
	start := time.Now()
	stats := s.completer.Stats()
	stats["indexedWords"] = s.index.Len()
	stats["requests"] = int(s.requests.Load())
	if s.fuzzyCache != nil {
		stats["fuzzyCached"] = s.fuzzyCache.Len()
	}
	elapsed := time.Since(start)

	s.send(StatsResponse{
		ID:        request.ID,
		Stats:     stats,
		TimeTaken: elapsed.Microseconds(),
	})
}
