// Package pos tags words with Penn Treebank parts of speech, letting a
// manual-correction table override the statistical tagger.
package pos

import "github.com/Alfex4936/wordweave/internal/model"

// Classifier tags words. The correction table is consulted first for every
// word; the tagger only decides the words the table does not cover.
type Classifier struct {
	tagger      Tagger
	corrections Corrections
}

// NewClassifier returns a Classifier. A nil tagger falls back to
// DefaultTagger; nil corrections mean no overrides.
func NewClassifier(tagger Tagger, corrections Corrections) *Classifier {
	if tagger == nil {
		tagger = DefaultTagger()
	}
	if corrections == nil {
		corrections = Corrections{}
	}
	return &Classifier{tagger: tagger, corrections: corrections}
}

// Corrections returns the table in use.
func (c *Classifier) Corrections() Corrections { return c.corrections }

// Prepare merges multi-word correction phrases into single words.
func (c *Classifier) Prepare(words []string) []string {
	return c.corrections.Join(words)
}

// Classify returns one TaggedWord per input word, in order.
func (c *Classifier) Classify(words []string) []model.TaggedWord {
	out := make([]model.TaggedWord, len(words))
	covered := 0
	for i, w := range words {
		out[i].Text = w
		if tag, ok := c.corrections.Lookup(w); ok {
			out[i].Tag, out[i].Manual = tag, true
			covered++
		}
	}

	if covered < len(words) {
		// The tagger sees the whole sequence so its context features work,
		// but its answer is only used for uncovered words.
		tags := c.tagger.Tag(words)
		for i := range out {
			if out[i].Manual {
				continue
			}
			if i < len(tags) {
				out[i].Tag = tags[i]
			}
		}
	}

	for i := range out {
		out[i].Category = string(CategoryOf(out[i].Tag))
	}
	return out
}
