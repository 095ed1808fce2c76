// Package reorder arranges tagged words into a fixed slot order:
// pronoun, adjective, verb, subject, objects, other.
//
// The order is a template, not English word order; "happy pool I swim"
// becomes "I happy swim pool" and the infill step adds the glue.
package reorder

import (
	"strings"

	"github.com/Alfex4936/wordweave/internal/errs"
	"github.com/Alfex4936/wordweave/internal/model"
	"github.com/Alfex4936/wordweave/internal/pos"
)

// Buckets groups words by slot, keeping insertion order inside each slot.
type Buckets struct {
	Pronouns   []string
	Adjectives []string
	Verbs      []string
	Subjects   []string
	// Objects stays empty here: tag prefixes cannot tell a subject noun
	// from an object noun. Role-aware callers may fill it.
	Objects []string
	Others  []string
}

// Bucketize classifies each word by the category of its tag.
func Bucketize(tagged []model.TaggedWord) Buckets {
	var b Buckets
	for _, w := range tagged {
		switch pos.CategoryOf(w.Tag) {
		case pos.Pronoun:
			b.Pronouns = append(b.Pronouns, w.Text)
		case pos.Noun:
			b.Subjects = append(b.Subjects, w.Text)
		case pos.Adjective:
			b.Adjectives = append(b.Adjectives, w.Text)
		case pos.Verb:
			b.Verbs = append(b.Verbs, w.Text)
		default:
			b.Others = append(b.Others, w.Text)
		}
	}
	return b
}

// Missing lists the required parts that have no word, verb first.
func (b Buckets) Missing() []string {
	var missing []string
	if len(b.Verbs) == 0 {
		missing = append(missing, "verb")
	}
	if len(b.Subjects) == 0 && len(b.Objects) == 0 {
		missing = append(missing, "noun")
	}
	return missing
}

// Words concatenates the buckets in slot order.
func (b Buckets) Words() []string {
	n := len(b.Pronouns) + len(b.Adjectives) + len(b.Verbs) + len(b.Subjects) + len(b.Objects) + len(b.Others)
	out := make([]string, 0, n)
	out = append(out, b.Pronouns...)
	out = append(out, b.Adjectives...)
	out = append(out, b.Verbs...)
	out = append(out, b.Subjects...)
	out = append(out, b.Objects...)
	out = append(out, b.Others...)
	return out
}

// Sentence is a validated reordering.
type Sentence struct {
	Buckets Buckets
}

// Words returns the reordered words.
func (s Sentence) Words() []string { return s.Buckets.Words() }

// String joins the reordered words with single spaces.
func (s Sentence) String() string { return strings.Join(s.Words(), " ") }

// Reorder buckets tagged words and validates that at least one verb and one
// noun are present. Otherwise it returns an *errs.ValidationError naming
// every missing part.
func Reorder(tagged []model.TaggedWord) (Sentence, error) {
	b := Bucketize(tagged)
	if missing := b.Missing(); len(missing) > 0 {
		return Sentence{}, errs.NewMissing(missing...)
	}
	return Sentence{Buckets: b}, nil
}
