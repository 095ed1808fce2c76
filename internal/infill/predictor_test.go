package infill

import (
	"testing"

	"github.com/Alfex4936/wordweave/internal/ngram"
)

func mustTable(t *testing.T, n int, counts map[string]int) *ngram.Table {
	t.Helper()
	tbl, err := ngram.FromCounts(n, counts)
	if err != nil {
		t.Fatalf("FromCounts: %v", err)
	}
	return tbl
}

func TestBetweenPrefersHigherTrigram(t *testing.T) {
	p := New(
		mustTable(t, 2, map[string]int{"i feel": 50}),
		mustTable(t, 3, map[string]int{"i am happy": 5, "i feel happy": 2}),
		"",
	)
	got := p.Between("i", "happy")
	if got.Word != "am" || got.Source != SourceTrigram || got.Count != 5 {
		t.Fatalf("Between(i, happy) = %+v, want am from trigram (5)", got)
	}
}

func TestBetweenFallsBackToBigram(t *testing.T) {
	p := New(
		mustTable(t, 2, map[string]int{"i want": 4, "i need": 9, "you need": 20}),
		mustTable(t, 3, map[string]int{"i am sad": 3}),
		"",
	)
	got := p.Between("I", "pizza")
	if got.Word != "need" || got.Source != SourceBigram || got.Count != 9 {
		t.Fatalf("Between(I, pizza) = %+v, want need from bigram (9)", got)
	}
}

func TestBetweenDefault(t *testing.T) {
	p := New(mustTable(t, 2, map[string]int{"a b": 1}), mustTable(t, 3, map[string]int{"a b c": 1}), "")
	for _, pair := range [][2]string{{"zebra", "pool"}, {"q", "a"}} {
		got := p.Between(pair[0], pair[1])
		if got.Word != "am" || got.Source != SourceDefault || got.Count != 0 {
			t.Errorf("Between(%q, %q) = %+v, want default am", pair[0], pair[1], got)
		}
	}

	custom := New(nil, nil, "is")
	if got := custom.Between("x", "y").Word; got != "is" {
		t.Errorf("custom default = %q, want is", got)
	}
	var zero Predictor
	if got := zero.Between("x", "y").Word; got != DefaultWord {
		t.Errorf("zero Predictor = %q, want %q", got, DefaultWord)
	}
}

func TestBetweenTieIsDeterministic(t *testing.T) {
	p := New(nil, mustTable(t, 3, map[string]int{"i feel happy": 4, "i am happy": 4, "i was happy": 4}), "")
	for i := 0; i < 25; i++ {
		if got := p.Between("i", "happy").Word; got != "am" {
			t.Fatalf("tie broken to %q, want am (lexicographically first)", got)
		}
	}
}

func TestSentence(t *testing.T) {
	p := New(
		mustTable(t, 2, map[string]int{"swim in": 7, "happy to": 2}),
		mustTable(t, 3, map[string]int{"i am happy": 5, "i feel happy": 2, "happy to swim": 3}),
		"",
	)
	tests := []struct {
		words []string
		want  string
	}{
		{nil, ""},
		{[]string{"Hello"}, "Hello"},
		{[]string{"I", "happy"}, "I am happy"},
		{[]string{"I", "happy", "swim", "pool"}, "I am happy to swim in pool"},
		{[]string{"zzz", "qqq"}, "zzz am qqq"},
	}
	for _, tt := range tests {
		if got := p.Sentence(tt.words); got != tt.want {
			t.Errorf("Sentence(%q) = %q, want %q", tt.words, got, tt.want)
		}
	}
}

func TestFillPairs(t *testing.T) {
	p := New(nil, nil, "")
	preds := p.Fill([]string{"a", "b", "c"})
	if len(preds) != 2 || preds[0].Left != "a" || preds[1].Right != "c" {
		t.Fatalf("Fill() = %+v", preds)
	}
	if p.Fill([]string{"solo"}) != nil {
		t.Fatal("single word has no pairs")
	}
}

func TestBetweenPhraseAnchors(t *testing.T) {
	bi, tri := ngram.Build([]string{"i", "eat", "ice", "cream", "at", "home", "ice", "cream", "at", "home"})
	p := New(bi, tri, "")

	got := p.Between("Ice Cream", "home")
	if got.Word != "at" || got.Source != SourceTrigram || got.Left != "Ice Cream" {
		t.Fatalf("Between(Ice Cream, home) = %+v, want at from trigram", got)
	}
	got = p.Between("i", "ice cream")
	if got.Word != "eat" || got.Source != SourceTrigram {
		t.Fatalf("Between(i, ice cream) = %+v, want eat from trigram", got)
	}
	if s := p.Sentence([]string{"I", "ice cream", "home"}); s != "I eat ice cream at home" {
		t.Fatalf("Sentence = %q", s)
	}
}
