package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bastiangx/phraserank/internal/logger"
	"github.com/bastiangx/phraserank/internal/utils"
	"github.com/bastiangx/phraserank/pkg/config"
	"github.com/bastiangx/phraserank/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles msgpack IPC for phrase completions
type Server struct {
	completer suggest.ICompleter
	config    *config.Config
	decoder   *msgpack.Decoder
	encoder   *msgpack.Encoder
	writer    *bufio.Writer
	log       *log.Logger

	requestCount int
}

// NewServer creates a server reading requests from r and writing responses to w.
// A nil cfg uses the built-in defaults.
func NewServer(completer suggest.ICompleter, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	bw := bufio.NewWriter(w)
	return &Server{
		completer: completer,
		config:    cfg,
		decoder:   msgpack.NewDecoder(bufio.NewReader(r)),
		encoder:   msgpack.NewEncoder(bw),
		writer:    bw,
		log:       logger.New("ipc"),
	}
}

// Start sends the ready frame and serves requests until the input ends.
// A clean EOF returns nil; a stream that stops decoding returns the error.
func (s *Server) Start() error {
	s.log.Debug("Starting server", "maxLimit", s.config.Server.MaxLimit, "defaultLimit", s.config.Server.DefaultLimit)

	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debug("Input closed", "requests", s.requestCount)
				return nil
			}
			s.log.Errorf("Decoding request: %v", err)
			_ = s.sendError("", "invalid msgpack request", 400)
			return fmt.Errorf("failed to decode request: %w", err)
		}
		s.requestCount++
		if err := s.handleRequest(req); err != nil {
			return err
		}
	}
}

// handleRequest dispatches on the action. Only write failures are returned.
func (s *Server) handleRequest(req Request) error {
	switch req.Action {
	case "", ActionComplete:
		return s.handleComplete(req)
	case ActionObserve:
		if req.Phrase == "" {
			return s.sendError(req.ID, "missing 'w' phrase", 400)
		}
		score := s.completer.Insert(req.Phrase)
		return s.send(StatusResponse{ID: req.ID, Status: "ok", Score: &score})
	case ActionSet:
		if req.Phrase == "" || req.Score == nil {
			return s.sendError(req.ID, "set needs 'w' phrase and 's' score", 400)
		}
		s.completer.SetScore(req.Phrase, *req.Score)
		return s.send(StatusResponse{ID: req.ID, Status: "ok", Score: req.Score})
	case ActionStats:
		return s.send(StatusResponse{ID: req.ID, Status: "ok", Stats: s.completer.Stats()})
	case ActionHealth:
		return s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		return s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

func (s *Server) handleComplete(req Request) error {
	if len(req.Prefix) > s.config.Server.MaxPrefix {
		s.log.Debug("Prefix is too long in request", "id", req.ID, "len", len(req.Prefix))
		return s.sendError(req.ID, fmt.Sprintf("prefix exceeds %d bytes", s.config.Server.MaxPrefix), 400)
	}

	limit := req.Limit
	if limit < 1 {
		limit = s.config.Server.DefaultLimit
	}
	if limit > s.config.Server.MaxLimit {
		limit = s.config.Server.MaxLimit
	}

	start := time.Now()
	suggestions := s.completer.Complete(req.Prefix, limit)
	elapsed := time.Since(start)

	ranks := utils.CreateRankList(len(suggestions))
	out := make([]CompletionSuggestion, len(suggestions))
	for i, sg := range suggestions {
		out[i] = CompletionSuggestion{Phrase: sg.Phrase, Score: sg.Score, Rank: ranks[i]}
	}

	return s.send(CompletionResponse{
		ID:          req.ID,
		Suggestions: out,
		Count:       len(out),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// send encodes one frame and flushes it so the client sees it immediately.
func (s *Server) send(v any) error {
	if err := s.encoder.Encode(v); err != nil {
		s.log.Errorf("Encoding response: %v", err)
		return fmt.Errorf("failed to encode response: %w", err)
	}
	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush response: %w", err)
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(CompletionError{ID: id, Error: message, Code: code})
}
