// Package trie provides a prefix tree over keyword strings, used for
// interactive completion.
//
// The implementation is arena-based: all nodes live in one contiguous
// slice and reference their children by index instead of by pointer.
// A single growing allocation keeps related nodes close together and
// avoids per-node garbage collector work during traversal.
package trie

import "sort"

// NodeIndex represents the index of a trie node.
type NodeIndex int

// Arena is a memory pool that stores all trie nodes.
type Arena struct {
	nodes []arenaNode
}

// arenaNode is the internal representation of a trie node stored in the arena.
type arenaNode struct {
	// children maps the next byte of a word to the index of the child node.
	children map[byte]NodeIndex
	// isEnd indicates whether this node terminates an inserted word.
	isEnd bool
}

// NewArena creates a new arena holding only the root node (index 0).
func NewArena() *Arena {
	arena := &Arena{
		nodes: make([]arenaNode, 0, 256),
	}
	arena.nodes = append(arena.nodes, arenaNode{
		children: make(map[byte]NodeIndex),
	})
	return arena
}

// newNode adds a new node to the arena and returns its index.
func (a *Arena) newNode() NodeIndex {
	idx := NodeIndex(len(a.nodes))
	a.nodes = append(a.nodes, arenaNode{
		children: make(map[byte]NodeIndex),
	})
	return idx
}

// Insert adds a word to the trie byte by byte.
func (a *Arena) Insert(word string) {
	current := NodeIndex(0) // root node

	for i := 0; i < len(word); i++ {
		node := &a.nodes[current]
		childIdx, exists := node.children[word[i]]

		if !exists {
			childIdx = a.newNode()
			node.children[word[i]] = childIdx
		}

		current = childIdx
	}

	a.nodes[current].isEnd = true
}

// Contains reports whether word was inserted. Prefixes of inserted words
// do not count.
func (a *Arena) Contains(word string) bool {
	idx, ok := a.walk(word)
	return ok && a.nodes[idx].isEnd
}

// WithPrefix returns every inserted word starting with prefix, sorted.
// An unknown prefix yields nil.
func (a *Arena) WithPrefix(prefix string) []string {
	idx, ok := a.walk(prefix)
	if !ok {
		return nil
	}

	var words []string
	a.collect(idx, []byte(prefix), &words)
	sort.Strings(words)
	return words
}

// walk descends from the root along word and returns the node it ends at.
func (a *Arena) walk(word string) (NodeIndex, bool) {
	current := NodeIndex(0)
	for i := 0; i < len(word); i++ {
		childIdx, exists := a.nodes[current].children[word[i]]
		if !exists {
			return 0, false
		}
		current = childIdx
	}
	return current, true
}

// collect gathers the words below idx depth-first. word is reused as a
// scratch buffer; string conversion copies it at every terminal node.
func (a *Arena) collect(idx NodeIndex, word []byte, out *[]string) {
	node := a.nodes[idx]
	if node.isEnd {
		*out = append(*out, string(word))
	}
	for b, child := range node.children {
		a.collect(child, append(word, b), out)
	}
}

// Trie is a prefix tree backed by an Arena.
type Trie struct {
	arena *Arena
}

// New returns an initialized Trie.
func New() *Trie {
	return &Trie{
		arena: NewArena(),
	}
}

// Insert adds a word to the trie.
func (t *Trie) Insert(word string) {
	t.arena.Insert(word)
}

// Contains reports whether word was inserted.
func (t *Trie) Contains(word string) bool {
	return t.arena.Contains(word)
}

// WithPrefix returns every inserted word starting with prefix, sorted.
func (t *Trie) WithPrefix(prefix string) []string {
	return t.arena.WithPrefix(prefix)
}
