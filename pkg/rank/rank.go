// Package rank selects the top entries of a trie subtree under a fixed total
// order: score descending, then phrase ascending byte-wise.
package rank

import (
	"container/heap"
	"sort"

	"github.com/bastiangx/phraserank/pkg/index"
)

// Entry is one ranked result.
type Entry struct {
	Score  int
	Phrase string
}

// Less reports whether a ranks ahead of b. Phrases are unique within a trie,
// so this is a strict total order over any collected set.
func Less(a, b Entry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Phrase < b.Phrase
}

// Collect returns every entry of the subtree at root, in rank order.
// A nil root yields nil.
func Collect(root *index.Node, prefix string) []Entry {
	var entries []Entry
	root.Walk(prefix, func(phrase string, score int) {
		entries = append(entries, Entry{Score: score, Phrase: phrase})
	})
	sort.Slice(entries, func(i, j int) bool {
		return Less(entries[i], entries[j])
	})
	return entries
}

// TopK returns at most k entries of the subtree at root, best first.
// A nil root (unresolved prefix) or k <= 0 yields an empty result.
func TopK(root *index.Node, prefix string, k int) []Entry {
	if root == nil || k <= 0 {
		return []Entry{}
	}

	h := make(worstFirst, 0, min(k, 64))
	root.Walk(prefix, func(phrase string, score int) {
		e := Entry{Score: score, Phrase: phrase}
		if len(h) < k {
			heap.Push(&h, e)
			return
		}
		if Less(e, h[0]) {
			h[0] = e
			heap.Fix(&h, 0)
		}
	})

	out := make([]Entry, len(h))
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&h).(Entry)
	}
	return out
}

// Query resolves prefix in t and ranks its subtree.
func Query(t *index.Trie, prefix string, k int) []Entry {
	root, ok := t.Resolve(prefix)
	if !ok {
		return []Entry{}
	}
	return TopK(root, prefix, k)
}

// worstFirst is a bounded min-heap: h[0] is the lowest ranked entry kept.
type worstFirst []Entry

func (h worstFirst) Len() int           { return len(h) }
func (h worstFirst) Less(i, j int) bool { return Less(h[j], h[i]) }
func (h worstFirst) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *worstFirst) Push(x any) {
	*h = append(*h, x.(Entry))
}

func (h *worstFirst) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
