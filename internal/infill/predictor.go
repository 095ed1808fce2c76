// Package infill inserts a connecting word between adjacent anchor words
// using bigram and trigram frequencies.
package infill

import (
	"strings"

	"github.com/Alfex4936/wordweave/internal/model"
	"github.com/Alfex4936/wordweave/internal/ngram"
)

// DefaultWord is used when neither table knows the left anchor.
const DefaultWord = "am"

// Source names which tier produced a prediction.
const (
	SourceTrigram = "trigram"
	SourceBigram  = "bigram"
	SourceDefault = "default"
)

// Predictor picks infill words. A zero Predictor always answers DefaultWord.
type Predictor struct {
	Bigrams  *ngram.Table
	Trigrams *ngram.Table
	// Default replaces DefaultWord when non-empty.
	Default string
}

// New returns a Predictor over the given tables.
func New(bigrams, trigrams *ngram.Table, defaultWord string) *Predictor {
	return &Predictor{Bigrams: bigrams, Trigrams: trigrams, Default: defaultWord}
}

func (p *Predictor) fallback() string {
	if p.Default != "" {
		return p.Default
	}
	return DefaultWord
}

// Between returns the word to place between w1 and w2, first match wins:
//
//  1. the middle word of the most frequent trigram (w1, x, w2);
//  2. the second word of the most frequent bigram (w1, x);
//  3. the default word.
//
// Anchors are compared lowercased. A multi-word anchor such as "ice cream"
// is matched by its last word on the left and its first word on the right.
// It never fails.
func (p *Predictor) Between(w1, w2 string) model.Prediction {
	l1, l2 := edge(w1, true), edge(w2, false)
	pred := model.Prediction{Left: w1, Right: w2}

	if g, c, ok := p.Trigrams.Best(p.Trigrams.Between(l1, l2)); ok {
		pred.Word, pred.Source, pred.Count = g[1], SourceTrigram, c
		return pred
	}
	if g, c, ok := p.Bigrams.Best(p.Bigrams.StartingWith(l1)); ok {
		pred.Word, pred.Source, pred.Count = g[1], SourceBigram, c
		return pred
	}
	pred.Word, pred.Source = p.fallback(), SourceDefault
	return pred
}

// edge returns the lowercased last (or first) word of an anchor.
func edge(w string, last bool) string {
	f := strings.Fields(strings.ToLower(w))
	switch {
	case len(f) == 0:
		return ""
	case last:
		return f[len(f)-1]
	default:
		return f[0]
	}
}

// Fill returns one prediction per adjacent pair of words.
func (p *Predictor) Fill(words []string) []model.Prediction {
	if len(words) < 2 {
		return nil
	}
	out := make([]model.Prediction, 0, len(words)-1)
	for i := 0; i+1 < len(words); i++ {
		out = append(out, p.Between(words[i], words[i+1]))
	}
	return out
}

// Sentence emits the first word, then for each adjacent pair the predicted
// word followed by the next anchor, space-joined. Anchors keep their casing.
// A single word comes back unchanged; no words give "".
func (p *Predictor) Sentence(words []string) string {
	return Join(words, p.Fill(words))
}

// Join interleaves words with the predicted infill words.
func Join(words []string, preds []model.Prediction) string {
	if len(words) == 0 {
		return ""
	}
	out := make([]string, 0, 2*len(words)-1)
	out = append(out, words[0])
	for i := 1; i < len(words); i++ {
		if i-1 < len(preds) && preds[i-1].Word != "" {
			out = append(out, preds[i-1].Word)
		}
		out = append(out, words[i])
	}
	return strings.Join(out, " ")
}
