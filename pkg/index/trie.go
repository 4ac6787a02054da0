// Package index is the prefix index: a byte-keyed trie where every stored
// phrase ends at a terminal node carrying its score.
package index

// Node is one position in the trie. A node owns its children exclusively;
// the path of edge labels from the root spells the node's prefix.
type Node struct {
	children map[byte]*Node
	terminal bool
	score    int
}

// Terminal reports whether a stored phrase ends at this node.
func (n *Node) Terminal() bool {
	return n.terminal
}

// Score is the phrase score. Only meaningful when Terminal is true.
func (n *Node) Score() int {
	return n.score
}

// Walk visits every terminal node in the subtree rooted at n, n included,
// calling fn with prefix followed by the edge labels leading to the node.
// Sibling order is unspecified.
func (n *Node) Walk(prefix string, fn func(phrase string, score int)) {
	if n == nil {
		return
	}
	path := make([]byte, len(prefix), len(prefix)+32)
	copy(path, prefix)
	n.walk(&path, fn)
}

func (n *Node) walk(path *[]byte, fn func(phrase string, score int)) {
	if n.terminal {
		fn(string(*path), n.score)
	}
	for c, child := range n.children {
		*path = append(*path, c)
		child.walk(path, fn)
		*path = (*path)[:len(*path)-1]
	}
}

// Trie owns the root node, which stands for the empty prefix.
// It is not safe for concurrent use; see suggest.Completer for that.
type Trie struct {
	root    *Node
	phrases int
	nodes   int
}

// New returns an empty trie.
func New() *Trie {
	return &Trie{root: &Node{}, nodes: 1}
}

// Insert records one observation of phrase: the phrase becomes terminal and
// its score grows by one. It returns the resulting score.
func (t *Trie) Insert(phrase string) int {
	n := t.path(phrase)
	t.markTerminal(n)
	n.score++
	return n.score
}

// SetScore stores phrase with exactly score, overwriting any earlier value.
func (t *Trie) SetScore(phrase string, score int) {
	n := t.path(phrase)
	t.markTerminal(n)
	n.score = score
}

// Resolve returns the subtree root for prefix, or false when no stored phrase
// starts with it. The empty prefix resolves to the root.
func (t *Trie) Resolve(prefix string) (*Node, bool) {
	n := t.root
	for i := 0; i < len(prefix); i++ {
		child, ok := n.children[prefix[i]]
		if !ok {
			return nil, false
		}
		n = child
	}
	return n, true
}

// Lookup returns the score of phrase if it is stored.
func (t *Trie) Lookup(phrase string) (int, bool) {
	n, ok := t.Resolve(phrase)
	if !ok || !n.terminal {
		return 0, false
	}
	return n.score, true
}

// Root returns the node for the empty prefix.
func (t *Trie) Root() *Node {
	return t.root
}

// Len is the number of stored phrases.
func (t *Trie) Len() int {
	return t.phrases
}

// NodeCount is the number of allocated nodes, root included.
func (t *Trie) NodeCount() int {
	return t.nodes
}

// path walks phrase from the root, creating any missing node on the way.
func (t *Trie) path(phrase string) *Node {
	n := t.root
	for i := 0; i < len(phrase); i++ {
		c := phrase[i]
		child, ok := n.children[c]
		if !ok {
			if n.children == nil {
				n.children = make(map[byte]*Node, 1)
			}
			child = &Node{}
			n.children[c] = child
			t.nodes++
		}
		n = child
	}
	return n
}

func (t *Trie) markTerminal(n *Node) {
	if !n.terminal {
		n.terminal = true
		t.phrases++
	}
}
