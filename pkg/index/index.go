// Package index implements the in-memory word index: a character tree keyed
// by accent- and case-folded runes, answering exact membership, prefix,
// single-character-wildcard and bounded edit-distance queries. Folding is
// lossy on purpose; every entry keeps the exact spelling it was indexed
// with, for display and for precise distance scoring.
//
// Mutation lives on Builder. Seal turns a Builder into an Index, which is
// immutable and safe for any number of concurrent readers.
package index

import (
	"fmt"
	"strings"

	"github.com/bastiangx/wordlex/pkg/fold"
)

// Builder accumulates words before the index is sealed. Not safe for
// concurrent use; build single-threaded, then Seal.
type Builder struct {
	root   *node
	size   int
	sealed bool
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{root: &node{}}
}

// Insert indexes one spelling under its folded key. Inserting the same
// spelling twice is a no-op; two spellings sharing a key both survive.
// Reports whether a new entry was added.
func (b *Builder) Insert(word string) bool {
	if b.sealed {
		panic("index: Insert after Seal")
	}
	n := b.root
	for _, r := range fold.Key(word) {
		n = n.ensure(r)
	}
	if !n.addWord(word) {
		return false
	}
	b.size++
	return true
}

// Remove deletes an exact spelling and prunes any nodes left with no
// entries and no children back toward the root. Reports whether the
// spelling was present.
func (b *Builder) Remove(word string) bool {
	if b.sealed {
		panic("index: Remove after Seal")
	}
	key := fold.Key(word)
	parents := make([]*node, 0, len(key))
	edges := make([]rune, 0, len(key))

	n := b.root
	for _, r := range key {
		c := n.walk(r)
		if c == nil {
			return false
		}
		parents = append(parents, n)
		edges = append(edges, r)
		n = c
	}
	if !n.dropWord(word) {
		return false
	}
	b.size--

	for i := len(parents) - 1; i >= 0 && n.dead(); i-- {
		parents[i].dropChild(edges[i])
		n = parents[i]
	}
	return true
}

// Len returns the number of entries added so far.
func (b *Builder) Len() int {
	return b.size
}

// Seal consumes the builder and returns the finished index. Any mutation
// of the builder afterwards panics.
func (b *Builder) Seal() *Index {
	if b.sealed {
		panic("index: Seal called twice")
	}
	b.sealed = true
	ix := &Index{root: b.root, size: b.size}
	b.root = nil
	return ix
}

// Build indexes a word list in one go.
func Build(words []string) *Index {
	b := NewBuilder()
	for _, w := range words {
		b.Insert(w)
	}
	return b.Seal()
}

// Index is the sealed, read-only word index. All query methods are safe
// for concurrent use; none of them mutate shared state.
type Index struct {
	root *node
	size int
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int {
	return ix.size
}

// Contains reports whether this exact spelling was indexed. A different
// spelling on the same folded key does not count.
func (ix *Index) Contains(word string) bool {
	n := ix.descend(fold.Key(word))
	if n == nil {
		return false
	}
	for _, w := range n.words {
		if w == word {
			return true
		}
	}
	return false
}

// WordsWithPrefix returns every entry whose folded key starts with the
// folded prefix, in traversal order. The slice is freshly allocated.
func (ix *Index) WordsWithPrefix(prefix string) []string {
	n := ix.descend(fold.Key(prefix))
	if n == nil {
		return nil
	}
	var out []string
	collect(n, &out)
	return out
}

// Words returns every entry in traversal order: folded keys ascending,
// spellings on one key in insertion order.
func (ix *Index) Words() []string {
	out := make([]string, 0, ix.size)
	collect(ix.root, &out)
	return out
}

const previewLen = 3

// String renders a short summary like "<index 5 words [bar car care ...]>".
func (ix *Index) String() string {
	head := make([]string, 0, previewLen)
	complete := preview(ix.root, &head)
	joined := strings.Join(head, " ")
	if !complete {
		joined += " ..."
	}
	return fmt.Sprintf("<index %d words [%s]>", ix.size, joined)
}

// descend walks an already-folded key and returns the node it lands on,
// or nil when an edge is missing.
func (ix *Index) descend(key string) *node {
	n := ix.root
	for _, r := range key {
		if n = n.walk(r); n == nil {
			return nil
		}
	}
	return n
}

// collect appends the subtree's entries in traversal order.
func collect(n *node, out *[]string) {
	*out = append(*out, n.words...)
	for _, r := range n.order {
		collect(n.children[r], out)
	}
}

// preview fills out with up to previewLen entries; reports whether the
// subtree held no more than that.
func preview(n *node, out *[]string) bool {
	for _, w := range n.words {
		if len(*out) == previewLen {
			return false
		}
		*out = append(*out, w)
	}
	for _, r := range n.order {
		if !preview(n.children[r], out) {
			return false
		}
	}
	return true
}
