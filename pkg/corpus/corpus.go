// Package corpus provides the seed records used to populate a prefix index at
// startup: the built-in reference corpus plus TOML and plain text seed files.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

var (
	// ErrMalformedLine is wrapped by Parse for lines whose score is not an integer.
	ErrMalformedLine = errors.New("malformed seed line")
	// ErrUnknownFormat is returned by LoadFile for unsupported extensions.
	ErrUnknownFormat = errors.New("unknown seed file format")
)

// Seed is one corpus record. Accumulate seeds count as a single observation
// of the phrase instead of an exact score.
type Seed struct {
	Phrase     string `toml:"phrase"`
	Score      int    `toml:"score"`
	Accumulate bool   `toml:"accumulate,omitempty"`
}

// Seeder is anything a corpus can be applied to.
// Both index.Trie and suggest.Completer satisfy it.
type Seeder interface {
	Insert(phrase string) int
	SetScore(phrase string, score int)
}

// Defaults returns the reference corpus.
func Defaults() []Seed {
	return []Seed{
		{Phrase: "how to make pizza", Score: 50},
		{Phrase: "how to make pasta", Score: 30},
		{Phrase: "how to make pancakes", Score: 20},
		{Phrase: "how to tie a tie", Score: 45},
		{Phrase: "how to train your dragon", Score: 5},
		{Phrase: "home remedies for cold", Score: 40},
		{Phrase: "holiday packages", Score: 25},
		{Phrase: "how to make pizza dough", Score: 35},
		{Phrase: "how to make pizza at home", Score: 28},
		{Phrase: "how to make protein shake", Score: 18},
		{Phrase: "how to make money online", Score: 55},
		{Phrase: "how to make coffee", Score: 22},
	}
}

// Apply writes seeds into target in order and returns how many were applied.
func Apply(target Seeder, seeds []Seed) int {
	for _, s := range seeds {
		if s.Accumulate {
			target.Insert(s.Phrase)
			continue
		}
		target.SetScore(s.Phrase, s.Score)
	}
	return len(seeds)
}

// Parse reads the text seed format: one "phrase<TAB>score" record per line.
// A line without a tab is a single observation of the phrase. Blank lines and
// lines starting with '#' are skipped.
func Parse(r io.Reader) ([]Seed, error) {
	var seeds []Seed
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		phrase, rawScore, hasScore := strings.Cut(line, "\t")
		if !hasScore {
			seeds = append(seeds, Seed{Phrase: trimmed, Accumulate: true})
			continue
		}
		score, err := strconv.Atoi(strings.TrimSpace(rawScore))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %q", lineNo, ErrMalformedLine, rawScore)
		}
		seeds = append(seeds, Seed{Phrase: strings.TrimSpace(phrase), Score: score})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read seeds: %w", err)
	}
	return seeds, nil
}

// seedFile is the TOML layout of a seed file.
type seedFile struct {
	Seeds []Seed `toml:"seed"`
}

// LoadFile reads seeds from path, picking the format from its extension:
// .toml for [[seed]] tables, .txt or .tsv for the text format.
func LoadFile(path string) ([]Seed, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var f seedFile
		if _, err := toml.DecodeFile(path, &f); err != nil {
			return nil, fmt.Errorf("failed to decode seed file %s: %w", path, err)
		}
		log.Debugf("Loaded %d seeds from %s", len(f.Seeds), path)
		return f.Seeds, nil
	case ".txt", ".tsv":
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open seed file %s: %w", path, err)
		}
		defer file.Close()

		seeds, err := Parse(file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		log.Debugf("Loaded %d seeds from %s", len(seeds), path)
		return seeds, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// LoadFiles concatenates the seeds of every path, in order.
func LoadFiles(paths []string) ([]Seed, error) {
	var all []Seed
	for _, p := range paths {
		seeds, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		all = append(all, seeds...)
	}
	return all, nil
}
