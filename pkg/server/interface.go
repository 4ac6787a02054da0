/*
Package server implements msgpack IPC for phrase completion.

Clients write msgpack-encoded requests to the server's input (stdin in
production) and read msgpack responses from its output (stdout). The first
frame the server writes is a ready status:

	{"status": "ready"}

# Requests

Every request carries an ID echoed in its response and an action. An empty
action means "complete":

	{"id": "q1", "p": "how to make", "l": 3}

The server answers with suggestions in rank order (score descending, ties
broken by phrase), their scores, 1-based ranks and the elapsed microseconds:

	{"id": "q1", "s": [{"w": "how to make money online", "f": 55, "r": 1}, ...], "c": 3, "t": 41}

Observation and exact seeding mutate the corpus:

	{"id": "o1", "a": "observe", "w": "how to make tea"}
	{"id": "s1", "a": "set", "w": "how to make tea", "s": 40}

and "stats" / "health" report on the engine.

Requests that fail validation get an error frame and the loop keeps going:

	{"id": "q2", "e": "prefix exceeds 256 bytes", "c": 400}

An empty prefix is valid and matches every phrase. A missing or non-positive
limit uses the configured default; limits above max_limit are clamped.
*/
package server

// Request actions.
const (
	ActionComplete = "complete"
	ActionObserve  = "observe"
	ActionSet      = "set"
	ActionStats    = "stats"
	ActionHealth   = "health"
)

// Request is the single request envelope for all actions.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"a,omitempty"`
	Prefix string `msgpack:"p,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
	Phrase string `msgpack:"w,omitempty"`
	Score  *int   `msgpack:"s,omitempty"`
}

// CompletionSuggestion is one ranked phrase.
type CompletionSuggestion struct {
	Phrase string `msgpack:"w"`
	Score  int    `msgpack:"f"`
	Rank   uint16 `msgpack:"r"`
}

// CompletionResponse answers a complete request.
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// StatusResponse answers observe, set, stats and health requests.
type StatusResponse struct {
	ID     string         `msgpack:"id,omitempty"`
	Status string         `msgpack:"status"`
	Score  *int           `msgpack:"score,omitempty"`
	Stats  map[string]int `msgpack:"stats,omitempty"`
}

// CompletionError holds basic error information for a failed request
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
