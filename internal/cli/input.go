// Package cli is the interactive prompt: it reads a prefix and an optional K
// per line and prints the ranked completions.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/bastiangx/phraserank/internal/logger"
	"github.com/bastiangx/phraserank/internal/utils"
	"github.com/bastiangx/phraserank/pkg/suggest"
	"github.com/charmbracelet/log"
)

// InputHandler reads queries from in and writes results to out.
// Queries look like "how to make 3"; see ParseQuery for the exact rules.
type InputHandler struct {
	completer    suggest.ICompleter
	in           *bufio.Scanner
	out          io.Writer
	prompt       string
	defaultLimit int
	log          *log.Logger
	requestCount int
}

// NewInputHandler wires a handler to the given streams.
func NewInputHandler(completer suggest.ICompleter, in io.Reader, out io.Writer, prompt string, defaultLimit int) *InputHandler {
	return &InputHandler{
		completer:    completer,
		in:           bufio.NewScanner(in),
		out:          out,
		prompt:       prompt,
		defaultLimit: defaultLimit,
		log:          logger.New("cli"),
	}
}

// Start runs the loop until exit, quit or end of input.
func (h *InputHandler) Start() error {
	fmt.Fprintln(h.out, `PhraseRank autocomplete. Type a prefix and optional k (e.g. "how to make 3"), or "exit" to quit.`)
	for {
		fmt.Fprintf(h.out, "\n%s", h.prompt)
		if !h.in.Scan() {
			if err := h.in.Err(); err != nil {
				return err
			}
			break
		}
		if !h.handleInput(h.in.Text()) {
			break
		}
	}
	fmt.Fprintln(h.out, "Goodbye.")
	return nil
}

// handleInput processes one line and reports whether the loop should go on.
func (h *InputHandler) handleInput(line string) bool {
	cmd, err := parseLine(line, h.defaultLimit)
	if err != nil {
		fmt.Fprintf(h.out, "Error: %v\n", err)
		return true
	}

	switch cmd.kind {
	case cmdEmpty:
		fmt.Fprintln(h.out, "Please enter a prefix.")
	case cmdExit:
		return false
	case cmdAdd:
		score := h.completer.Insert(cmd.phrase)
		fmt.Fprintf(h.out, "  [%d] %s\n", score, cmd.phrase)
	case cmdSet:
		h.completer.SetScore(cmd.phrase, cmd.score)
		fmt.Fprintf(h.out, "  [%d] %s\n", cmd.score, cmd.phrase)
	case cmdStats:
		h.printStats()
	case cmdQuery:
		h.requestCount++
		start := time.Now()
		suggestions := h.completer.Complete(cmd.prefix, cmd.limit)
		h.log.Debug("query", "prefix", cmd.prefix, "k", cmd.limit, "took", time.Since(start), "n", h.requestCount)
		PrintSuggestions(h.out, cmd.prefix, suggestions)
	}
	return true
}

func (h *InputHandler) printStats() {
	stats := h.completer.Stats()
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(h.out, "  %-14s %s\n", k, utils.FormatWithCommas(stats[k]))
	}
}
