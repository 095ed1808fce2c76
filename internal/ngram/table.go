// Package ngram counts fixed-width word windows over a token stream and
// answers the lookups the infill predictor needs.
package ngram

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Alfex4936/wordweave/internal/errs"
)

// Sep joins the words of a gram into its key. It is also the on-disk key format.
const Sep = " "

// Gram is one window of N consecutive words.
type Gram []string

// Key returns the space-joined form of g.
func (g Gram) Key() string { return strings.Join(g, Sep) }

// Less orders grams word by word.
func (g Gram) Less(o Gram) bool {
	for i := 0; i < len(g) && i < len(o); i++ {
		if g[i] != o[i] {
			return g[i] < o[i]
		}
	}
	return len(g) < len(o)
}

// Table maps each distinct N-word window to its occurrence count.
// A Table is read-only once returned by Count, Build or FromCounts and is
// safe for concurrent use.
type Table struct {
	n      int
	counts map[string]int
	total  int

	// byFirst maps the first word to every gram starting with it.
	byFirst map[string][]Gram
	// byEnds maps "first last" to every gram with those ends (n >= 3).
	byEnds map[string][]Gram
}

func newTable(n int, counts map[string]int) *Table {
	t := &Table{
		n:       n,
		counts:  counts,
		byFirst: make(map[string][]Gram),
	}
	if n >= 3 {
		t.byEnds = make(map[string][]Gram)
	}
	for key, c := range counts {
		t.total += c
		g := Gram(strings.Split(key, Sep))
		t.byFirst[g[0]] = append(t.byFirst[g[0]], g)
		if t.byEnds != nil {
			ends := g[0] + Sep + g[len(g)-1]
			t.byEnds[ends] = append(t.byEnds[ends], g)
		}
	}
	return t
}

// N returns the window width.
func (t *Table) N() int {
	if t == nil {
		return 0
	}
	return t.n
}

// Len returns the number of distinct grams.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.counts)
}

// Total returns the sum of all counts (the number of windows observed).
func (t *Table) Total() int {
	if t == nil {
		return 0
	}
	return t.total
}

// Count returns the count for the gram made of words, 0 when absent.
func (t *Table) Count(words ...string) int {
	if t == nil {
		return 0
	}
	return t.counts[strings.Join(words, Sep)]
}

// Each calls fn for every gram in lexicographic order.
func (t *Table) Each(fn func(g Gram, count int)) {
	if t == nil {
		return
	}
	keys := make([]string, 0, len(t.counts))
	for k := range t.counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn(Gram(strings.Split(k, Sep)), t.counts[k])
	}
}

// Counts returns a copy of the key -> count mapping, for persistence.
func (t *Table) Counts() map[string]int {
	if t == nil {
		return map[string]int{}
	}
	out := make(map[string]int, len(t.counts))
	for k, v := range t.counts {
		out[k] = v
	}
	return out
}

// StartingWith returns the grams whose first word is first.
// The returned slice must not be modified.
func (t *Table) StartingWith(first string) []Gram {
	if t == nil {
		return nil
	}
	return t.byFirst[first]
}

// Between returns the grams whose first word is first and last word is last.
// Only meaningful for n >= 3; the returned slice must not be modified.
func (t *Table) Between(first, last string) []Gram {
	if t == nil || t.byEnds == nil {
		return nil
	}
	return t.byEnds[first+Sep+last]
}

// Best returns the highest-count gram among candidates. Equal counts are
// broken by the lexicographically smallest gram, so the answer does not
// depend on map iteration order.
func (t *Table) Best(candidates []Gram) (Gram, int, bool) {
	var best Gram
	bestCount := -1
	for _, g := range candidates {
		c := t.counts[g.Key()]
		if c > bestCount || (c == bestCount && g.Less(best)) {
			best, bestCount = g, c
		}
	}
	if best == nil {
		return nil, 0, false
	}
	return best, bestCount, true
}

// FromCounts rebuilds a table of width n from its persisted form. Every key
// must hold exactly n space-separated words and every count must be >= 0.
func FromCounts(n int, counts map[string]int) (*Table, error) {
	if n < 1 {
		return nil, errs.NewParse("n-gram table", "", "width must be positive, got "+strconv.Itoa(n))
	}
	own := make(map[string]int, len(counts))
	for key, c := range counts {
		words := strings.Fields(key)
		if len(words) != n {
			return nil, errs.NewParse("n-gram key", "", fmt.Sprintf("%q has %d words, want %d", key, len(words), n))
		}
		if c < 0 {
			return nil, errs.NewParse("n-gram count", "", fmt.Sprintf("%q has negative count %d", key, c))
		}
		own[strings.Join(words, Sep)] += c
	}
	return newTable(n, own), nil
}
