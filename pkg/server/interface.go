/*
Package server implements msgpack IPC for word lookup services.

The server provides a minimal interface for querying the word index and the
ranked completer using msgpack serialization over stdin/stdout.

The protocol uses binary msgpack encoding. Frames are consecutive msgpack
objects with no extra delimiters, processed synchronously in arrival order
with timing info included in responses.

# IPC

The server operates on a request response model where clients send
structured messages via stdin and receive responses through stdout.
Each message carries an ID, an op name, and the op's parameters.

Completion requests use mainly this structure:

	{"id": "req_001", "op": "complete", "q": "ame", "l": 24}

The server responds with suggestions ranked by freq:

	{"id": "req_001", "s": [{"w": "amenity", "r": 1}, {"w": "america", "r": 2}], "c": 2, "t": 145}

The other ops query the index directly:

	{"id": "q_001", "op": "contains", "q": "fiancé"}
	{"id": "q_002", "op": "prefix", "q": "car"}
	{"id": "q_003", "op": "pattern", "q": "c?t"}
	{"id": "q_004", "op": "fuzzy", "q": "fiance", "d": 1}
	{"id": "q_005", "op": "stats"}

On startup the server emits a single status frame so clients know when to
start sending:

	{"status": "ready"}

Responses include error details when an op fails; the error frame carries
the request ID, a message, and an HTTP-flavored code.

# Message Types

Request covers every op: the ID echoes back in the response, q holds the
query text, l caps result counts, and d sets the fuzzy edit distance
budget.

CompletionResponse carries ranked suggestions, WordsResponse carries plain
word lists for prefix and pattern ops, FuzzyResponse pairs each word with
its edit distance, and StatsResponse returns engine counters.

msgpack encoding has ~30 to 50% smaller message sizes compared to JSON.
binary format enables faster parsing and generation, less errors and
reducing latency by ~40 to 70% in most cases.
*/
package server

// Request is one incoming op frame.
type Request struct {
	ID       string `msgpack:"id"`
	Op       string `msgpack:"op"`
	Query    string `msgpack:"q"`
	Limit    int    `msgpack:"l,omitempty"`
	Distance int    `msgpack:"d,omitempty"`
}

// StatusResponse signals lifecycle events, the startup ready hello and
// health checks.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// CompletionSuggestion - minimal suggestion response
type CompletionSuggestion struct {
	Word string `msgpack:"w"`
	Rank uint16 `msgpack:"r"`
}

// CompletionResponse - completion response. TimeTaken is microseconds.
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// ContainsResponse answers exact membership checks.
type ContainsResponse struct {
	ID        string `msgpack:"id"`
	Found     bool   `msgpack:"f"`
	TimeTaken int64  `msgpack:"t"`
}

// WordsResponse carries plain word lists for the prefix and pattern ops.
type WordsResponse struct {
	ID        string   `msgpack:"id"`
	Words     []string `msgpack:"w"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
}

// FuzzyMatch pairs a stored word with its edit distance from the query.
type FuzzyMatch struct {
	Word     string `msgpack:"w"`
	Distance int    `msgpack:"d"`
}

// FuzzyResponse - bounded edit distance search response.
type FuzzyResponse struct {
	ID        string       `msgpack:"id"`
	Matches   []FuzzyMatch `msgpack:"m"`
	Count     int          `msgpack:"c"`
	TimeTaken int64        `msgpack:"t"`
}

// StatsResponse returns engine counters.
type StatsResponse struct {
	ID        string         `msgpack:"id"`
	Stats     map[string]int `msgpack:"s"`
	TimeTaken int64          `msgpack:"t"`
}

// CompletionError holds basic error information for failed requests
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
