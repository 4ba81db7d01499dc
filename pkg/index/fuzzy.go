package index

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/bastiangx/wordlex/internal/editdist"
	"github.com/bastiangx/wordlex/pkg/fold"
)

// ErrNegativeDistance is returned when a fuzzy query is handed a negative
// edit budget. The budget is never silently clamped.
var ErrNegativeDistance = errors.New("index: negative max distance")

// Match pairs an indexed spelling with its exact edit distance from a query.
type Match struct {
	Word     string
	Distance int
}

// rowPool recycles distance rows across fuzzy walks.
var rowPool = sync.Pool{
	New: func() any {
		row := make([]int, 0, 48)
		return &row
	},
}

func getRow(n int) *[]int {
	ptr := rowPool.Get().(*[]int)
	if cap(*ptr) < n {
		row := make([]int, n)
		*ptr = row
		return ptr
	}
	*ptr = (*ptr)[:n]
	return ptr
}

// WordsWithinDistance returns every entry whose Damerau-Levenshtein
// distance from query is at most maxDistance, paired with that exact
// distance. Results are ordered by ascending distance, ties in traversal
// order. A negative maxDistance is rejected with ErrNegativeDistance; a
// huge one is legal, just slow.
//
// The walk keeps a distance row of the folded query against the folded
// key path and abandons a branch once the row minimum exceeds the budget,
// since deeper characters can only add cost. Folding can only shrink a
// distance, so the row is a sound lower bound, not an exact score: the
// surviving candidates are re-scored against their original spellings,
// which charges case and accent differences at full substitution cost.
func (ix *Index) WordsWithinDistance(query string, maxDistance int) ([]Match, error) {
	if maxDistance < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeDistance, maxDistance)
	}

	q := []rune(fold.Key(query))
	ptr := getRow(len(q) + 1)
	row := *ptr
	for j := range row {
		row[j] = j
	}

	w := &fuzzyWalk{query: q, max: maxDistance}
	if len(ix.root.words) > 0 && row[len(q)] <= maxDistance {
		w.cands = append(w.cands, ix.root.words)
	}
	for _, r := range ix.root.order {
		w.step(ix.root.children[r], r, 0, row, nil)
	}
	rowPool.Put(ptr)

	out := make([]Match, 0, len(w.cands))
	for _, words := range w.cands {
		for _, orig := range words {
			d := editdist.DistanceWithLimit(query, orig, maxDistance)
			if d <= maxDistance {
				out = append(out, Match{Word: orig, Distance: d})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance < out[j].Distance
	})
	return out, nil
}

// fuzzyWalk carries the state of one WordsWithinDistance call. Candidate
// nodes are recorded in traversal order so the final stable sort keeps
// that order between equal distances.
type fuzzyWalk struct {
	query []rune
	max   int
	cands [][]string
}

// step derives the row for the node reached over edge r from the parent's
// row and recurses. prevPrev is the grandparent's row (nil for the root's
// children) and prevRune the edge into the parent; together they feed the
// adjacent-transposition case.
func (w *fuzzyWalk) step(n *node, r, prevRune rune, prev, prevPrev []int) {
	ptr := getRow(len(w.query) + 1)
	curr := *ptr

	curr[0] = prev[0] + 1
	best := curr[0]
	for j := 1; j <= len(w.query); j++ {
		cost := 1
		if w.query[j-1] == r {
			cost = 0
		}
		d := min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		if prevPrev != nil && j > 1 && w.query[j-2] == r && w.query[j-1] == prevRune {
			if t := prevPrev[j-2] + 1; t < d {
				d = t
			}
		}
		curr[j] = d
		if d < best {
			best = d
		}
	}

	if len(n.words) > 0 && curr[len(w.query)] <= w.max {
		w.cands = append(w.cands, n.words)
	}
	if best <= w.max {
		for _, c := range n.order {
			w.step(n.children[c], c, r, curr, prev)
		}
	}
	rowPool.Put(ptr)
}
