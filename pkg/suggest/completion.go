package suggest

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/bastiangx/phraserank/pkg/index"
	"github.com/bastiangx/phraserank/pkg/rank"
	"github.com/charmbracelet/log"
)

// Suggestion is one ranked completion.
type Suggestion struct {
	Phrase string
	Score  int
}

// Completer serves queries from a single trie. Insert and SetScore take the
// write lock; queries share the read lock and never mutate the trie.
type Completer struct {
	trie         *index.Trie
	mu           sync.RWMutex
	queries      atomic.Int64
	observations atomic.Int64
}

// NewCompleter returns a completer over an empty trie.
func NewCompleter() *Completer {
	return NewCompleterFromTrie(index.New())
}

// NewCompleterFromTrie wraps an already seeded trie. Seeding the trie
// directly keeps startup seeds out of the observation counter.
func NewCompleterFromTrie(t *index.Trie) *Completer {
	return &Completer{trie: t}
}

// Insert records one observation of phrase.
func (c *Completer) Insert(phrase string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observations.Add(1)
	return c.trie.Insert(phrase)
}

// SetScore stores phrase with exactly score.
func (c *Completer) SetScore(phrase string, score int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trie.SetScore(phrase, score)
}

// Lookup returns the score of phrase if it is stored.
func (c *Completer) Lookup(phrase string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trie.Lookup(phrase)
}

// Complete returns at most limit phrases starting with prefix, ordered by
// score descending then phrase ascending. An unknown prefix or limit <= 0
// yields an empty slice.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	start := time.Now()
	c.queries.Add(1)

	c.mu.RLock()
	entries := rank.Query(c.trie, prefix, limit)
	c.mu.RUnlock()

	suggestions := make([]Suggestion, len(entries))
	for i, e := range entries {
		suggestions[i] = Suggestion{Phrase: e.Phrase, Score: e.Score}
	}

	log.Debugf("Took [ %v ] for prefix '%s' (%d results)", time.Since(start), prefix, len(suggestions))
	return suggestions
}

// Len is the number of stored phrases.
func (c *Completer) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trie.Len()
}

// Stats reports corpus size and traffic counters. topScore is only present
// when the corpus is not empty.
func (c *Completer) Stats() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := map[string]int{
		"totalPhrases": c.trie.Len(),
		"nodes":        c.trie.NodeCount(),
		"queries":      int(c.queries.Load()),
		"observations": int(c.observations.Load()),
	}
	if top := rank.TopK(c.trie.Root(), "", 1); len(top) == 1 {
		stats["topScore"] = top[0].Score
	}
	return stats
}
