package index

import "sort"

// node is one point in the folded-key tree. children maps the next folded
// rune to a subtree and order keeps those runes sorted, so every walk
// visits children in the same sequence. words holds the original spellings
// terminating here in insertion order; several spellings can share a node
// when folding collides them ("Finance" and "finance").
type node struct {
	children map[rune]*node
	order    []rune
	words    []string
}

// walk returns the child for r, or nil when the edge is missing.
func (n *node) walk(r rune) *node {
	if n.children == nil {
		return nil
	}
	return n.children[r]
}

// ensure returns the child for r, creating it on first use and keeping
// order sorted.
func (n *node) ensure(r rune) *node {
	if c := n.walk(r); c != nil {
		return c
	}
	if n.children == nil {
		n.children = make(map[rune]*node)
	}
	c := &node{}
	n.children[r] = c
	i := sort.Search(len(n.order), func(i int) bool { return n.order[i] >= r })
	n.order = append(n.order, 0)
	copy(n.order[i+1:], n.order[i:])
	n.order[i] = r
	return c
}

// addWord appends an original spelling unless that exact spelling is
// already present. Reports whether an entry was added.
func (n *node) addWord(w string) bool {
	for _, have := range n.words {
		if have == w {
			return false
		}
	}
	n.words = append(n.words, w)
	return true
}

// dropWord removes an exact spelling. Reports whether it was present.
func (n *node) dropWord(w string) bool {
	for i, have := range n.words {
		if have == w {
			n.words = append(n.words[:i], n.words[i+1:]...)
			return true
		}
	}
	return false
}

// dropChild unlinks the child for r.
func (n *node) dropChild(r rune) {
	delete(n.children, r)
	for i, have := range n.order {
		if have == r {
			n.order = append(n.order[:i], n.order[i+1:]...)
			return
		}
	}
}

// dead reports whether nothing terminates here and nothing hangs below.
func (n *node) dead() bool {
	return len(n.words) == 0 && len(n.children) == 0
}
