package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bastiangx/phraserank/pkg/suggest"
)

// ErrInvalidLimit is returned for a negative K.
var ErrInvalidLimit = errors.New("k must be zero or a positive integer")

// commandKind tags a parsed input line.
type commandKind int

const (
	cmdQuery commandKind = iota
	cmdExit
	cmdAdd
	cmdSet
	cmdStats
	cmdEmpty
)

type command struct {
	kind   commandKind
	prefix string
	limit  int
	phrase string
	score  int
}

// ParseQuery splits a query line into its prefix and K. A trailing integer
// token is K; without one the whole line is the prefix and K is defaultK.
// Surrounding whitespace is not part of the prefix.
func ParseQuery(line string, defaultK int) (string, int, error) {
	line = strings.TrimSpace(line)
	cut := strings.LastIndexAny(line, " \t")
	if cut < 0 {
		// a lone token is always the prefix, even when numeric
		return line, defaultK, nil
	}

	last := line[cut+1:]
	k, err := strconv.Atoi(last)
	if err != nil {
		return line, defaultK, nil
	}
	if k < 0 {
		return "", 0, fmt.Errorf("%w: %d", ErrInvalidLimit, k)
	}
	return strings.TrimSpace(line[:cut]), k, nil
}

// parseLine recognises the control commands before falling back to a query.
func parseLine(line string, defaultK int) (command, error) {
	trimmed := strings.TrimSpace(line)
	head, rest, _ := strings.Cut(trimmed, " ")
	rest = strings.TrimSpace(rest)
	switch {
	case trimmed == "":
		return command{kind: cmdEmpty}, nil
	case trimmed == "exit" || trimmed == "quit":
		return command{kind: cmdExit}, nil
	case trimmed == ":stats":
		return command{kind: cmdStats}, nil
	case head == ":add":
		if rest == "" {
			return command{}, errors.New("usage: :add <phrase>")
		}
		return command{kind: cmdAdd, phrase: rest}, nil
	case head == ":set":
		rawScore, phrase, ok := strings.Cut(rest, " ")
		phrase = strings.TrimSpace(phrase)
		if !ok || phrase == "" {
			return command{}, errors.New("usage: :set <score> <phrase>")
		}
		score, err := strconv.Atoi(rawScore)
		if err != nil {
			return command{}, fmt.Errorf("invalid score %q: %w", rawScore, err)
		}
		return command{kind: cmdSet, phrase: phrase, score: score}, nil
	}

	prefix, k, err := ParseQuery(trimmed, defaultK)
	if err != nil {
		return command{}, err
	}
	return command{kind: cmdQuery, prefix: prefix, limit: k}, nil
}

// PrintSuggestions writes one "[score] phrase" line per suggestion.
func PrintSuggestions(w io.Writer, prefix string, suggestions []suggest.Suggestion) {
	if len(suggestions) == 0 {
		fmt.Fprintf(w, "No suggestions found for prefix %q\n", prefix)
		return
	}
	fmt.Fprintf(w, "Top %d suggestions for prefix %q:\n", len(suggestions), prefix)
	for _, s := range suggestions {
		fmt.Fprintf(w, "  [%d] %s\n", s.Score, s.Phrase)
	}
}
