package ngram

import "strings"

// Builder counts windows of width n, one token at a time. It is the only
// mutable form of a table; Table freezes the counts.
type Builder struct {
	n      int
	window []string
	counts map[string]int
}

// NewBuilder returns a Builder for windows of width n. n must be >= 1.
func NewBuilder(n int) *Builder {
	if n < 1 {
		panic("ngram: window width must be >= 1")
	}
	return &Builder{
		n:      n,
		window: make([]string, 0, n),
		counts: make(map[string]int),
	}
}

// Add pushes the next token and counts the window it completes, if any.
// Tokens that are empty or contain whitespace would corrupt the key format
// and are skipped.
func (b *Builder) Add(token string) {
	if token == "" || strings.ContainsAny(token, " \t\n\r") {
		return
	}
	if len(b.window) == b.n {
		copy(b.window, b.window[1:])
		b.window = b.window[:b.n-1]
	}
	b.window = append(b.window, token)
	if len(b.window) == b.n {
		b.counts[strings.Join(b.window, Sep)]++
	}
}

// AddAll pushes every token in order.
func (b *Builder) AddAll(tokens []string) {
	for _, tok := range tokens {
		b.Add(tok)
	}
}

// Table freezes the current counts. The Builder must not be used afterwards.
func (b *Builder) Table() *Table {
	t := newTable(b.n, b.counts)
	b.counts = nil
	return t
}

// Count slides a window of width n across tokens with stride 1 and counts
// every window. Fewer than n tokens yield an empty table.
func Count(tokens []string, n int) *Table {
	b := NewBuilder(n)
	b.AddAll(tokens)
	return b.Table()
}

// Build produces the bigram and trigram tables for tokens in one pass.
func Build(tokens []string) (bigrams, trigrams *Table) {
	bi, tri := NewBuilder(2), NewBuilder(3)
	for _, tok := range tokens {
		bi.Add(tok)
		tri.Add(tok)
	}
	return bi.Table(), tri.Table()
}
