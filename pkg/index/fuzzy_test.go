package index

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/bastiangx/wordlex/internal/editdist"
)

func TestWordsWithinDistance(t *testing.T) {
	testCases := []struct {
		dictionary  []string
		query       string
		maxDistance int
		expected    []Match
		description string
	}{
		{
			[]string{"cat", "cats", "car", "care", "bar"},
			"cot", 1,
			[]Match{{"cat", 1}},
			"single substitution within budget, everything else pruned",
		},
		{
			[]string{"cat", "cats", "car", "care", "bar"},
			"care", 0,
			[]Match{{"care", 0}},
			"zero budget degenerates to exact lookup",
		},
		{
			[]string{"cat", "cats", "car", "care", "bar"},
			"care", 1,
			[]Match{{"care", 0}, {"car", 1}},
			"exact match leads, deletion follows",
		},
		{
			[]string{"fiance", "fiancee", "fiancé", "finance"},
			"fiance", 1,
			[]Match{{"fiance", 0}, {"fiancé", 1}, {"fiancee", 1}, {"finance", 1}},
			"insertion, accent substitution and inner insertion all cost one",
		},
		{
			[]string{"car"},
			"acr", 1,
			[]Match{{"car", 1}},
			"adjacent transposition costs one inside the walk",
		},
		{
			[]string{"Care"},
			"care", 0,
			nil,
			"case difference is re-scored exactly and dropped at zero budget",
		},
		{
			[]string{"Care"},
			"care", 1,
			[]Match{{"Care", 1}},
			"case difference costs one against the original spelling",
		},
		{
			[]string{"a", "ab", "abc", "b"},
			"", 2,
			[]Match{{"a", 1}, {"b", 1}, {"ab", 2}},
			"empty query returns words no longer than the budget",
		},
		{
			[]string{"cat", "bar"},
			"x", 10,
			[]Match{{"bar", 3}, {"cat", 3}},
			"oversized budget naturally scans everything",
		},
		{
			nil,
			"word", 3,
			nil,
			"empty dictionary yields empty result",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			ix := Build(tc.dictionary)
			got, err := ix.WordsWithinDistance(tc.query, tc.maxDistance)
			if err != nil {
				t.Fatalf("WordsWithinDistance(%q, %d) failed: %v", tc.query, tc.maxDistance, err)
			}
			if len(got) == 0 && len(tc.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("WordsWithinDistance(%q, %d) = %v, want %v",
					tc.query, tc.maxDistance, got, tc.expected)
			}
		})
	}
}

func TestWordsWithinDistanceNegative(t *testing.T) {
	ix := Build([]string{"cat"})

	matches, err := ix.WordsWithinDistance("cat", -1)
	if err == nil {
		t.Fatal("negative budget should be rejected")
	}
	if !errors.Is(err, ErrNegativeDistance) {
		t.Errorf("error should wrap ErrNegativeDistance, got %v", err)
	}
	if matches != nil {
		t.Errorf("rejected query should not return matches, got %v", matches)
	}
}

// The walk must agree with a brute-force scan of the dictionary: no word
// inside the budget may be pruned away and every reported distance must be
// the true one.
func TestWordsWithinDistanceMatchesBruteForce(t *testing.T) {
	dictionary := []string{
		"cat", "cats", "car", "care", "bar", "card", "cart", "carted",
		"fiance", "fiancee", "fiancé", "finance", "Finance", "français",
		"resume", "résumé", "Résumé", "naive", "naïve",
	}
	ix := Build(dictionary)

	queries := []string{"cat", "cart", "fiance", "resume", "naïve", "xyz", ""}
	for _, query := range queries {
		for maxDistance := 0; maxDistance <= 3; maxDistance++ {
			got, err := ix.WordsWithinDistance(query, maxDistance)
			if err != nil {
				t.Fatalf("WordsWithinDistance(%q, %d) failed: %v", query, maxDistance, err)
			}

			want := make(map[string]int)
			for _, w := range dictionary {
				if d := editdist.Distance(query, w); d <= maxDistance {
					want[w] = d
				}
			}

			if len(got) != len(want) {
				t.Errorf("query %q budget %d: got %d matches %v, want %d",
					query, maxDistance, len(got), got, len(want))
				continue
			}
			seen := make(map[string]bool)
			for _, m := range got {
				if seen[m.Word] {
					t.Errorf("query %q budget %d: %q reported twice", query, maxDistance, m.Word)
				}
				seen[m.Word] = true
				if d, ok := want[m.Word]; !ok {
					t.Errorf("query %q budget %d: unexpected match %v", query, maxDistance, m)
				} else if d != m.Distance {
					t.Errorf("query %q budget %d: %q scored %d, want %d",
						query, maxDistance, m.Word, m.Distance, d)
				}
			}
			for i := 1; i < len(got); i++ {
				if got[i-1].Distance > got[i].Distance {
					t.Errorf("query %q budget %d: distances out of order: %v", query, maxDistance, got)
					break
				}
			}
		}
	}
}

func TestWordsWithinDistanceDeterministic(t *testing.T) {
	ix := Build([]string{"fiance", "fiancee", "fiancé", "finance"})

	first, err := ix.WordsWithinDistance("fiance", 2)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := ix.WordsWithinDistance("fiance", 2)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("result order changed between calls: %v vs %v", first, again)
		}
	}
}

func BenchmarkWordsWithinDistance(b *testing.B) {
	words := make([]string, 0, 2000)
	for i := 0; i < 1000; i++ {
		words = append(words,
			fmt.Sprintf("word%04d", i),
			fmt.Sprintf("término%04d", i),
		)
	}
	ix := Build(words)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ix.WordsWithinDistance("wodr0500", 2); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkWordsWithPrefix(b *testing.B) {
	words := make([]string, 0, 1000)
	for i := 0; i < 1000; i++ {
		words = append(words, fmt.Sprintf("word%04d", i))
	}
	ix := Build(words)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ix.WordsWithPrefix("word05")
	}
}
