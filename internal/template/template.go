// Package template builds a sentence from subject, verb, object and
// adjective slots, inferring a verb when the input has none.
package template

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kljensen/snowball/english"

	"github.com/Alfex4936/wordweave/internal/errs"
	"github.com/Alfex4936/wordweave/internal/model"
	"github.com/Alfex4936/wordweave/internal/pos"
)

// Slots are the words picked for each role. Empty means not found.
type Slots struct {
	Subject   string `json:"subject"`
	Verb      string `json:"verb"`
	Object    string `json:"object,omitempty"`
	Adjective string `json:"adjective,omitempty"`
	// Inferred is set when Verb did not come from the input.
	Inferred bool `json:"inferred,omitempty"`
}

// DefaultVerbs maps nouns and adjectives to the activity they suggest.
func DefaultVerbs() map[string]string {
	return map[string]string{
		"hungry": "eat", "food": "eat", "pizza": "eat", "burger": "eat", "cake": "eat",
		"chicken": "eat", "apple": "eat", "ice cream": "eat", "halo-halo": "eat",
		"thirsty": "drink", "water": "drink", "juice": "drink", "milk": "drink", "coffee": "drink",
		"tired": "sleep", "sleepy": "sleep", "bed": "sleep",
		"bored": "play", "toy": "play", "dinosaur toy": "play", "ball": "play", "park": "play",
		"pool": "swim", "beach": "swim",
		"school": "study", "book": "read", "notebook": "write", "pencil": "write", "ballpen": "write",
		"crayons": "draw", "white ink": "draw", "sticky notes": "write",
		"keyboard": "type", "music": "listen", "aquarium": "visit", "hospital": "visit",
		"home": "go", "sad": "cry", "laughter": "laugh", "happy": "smile",
	}
}

// Builder fills the slot template.
type Builder struct {
	verbs map[string]string
}

// New returns a Builder using verbs for inference; nil means DefaultVerbs.
func New(verbs map[string]string) *Builder {
	if verbs == nil {
		verbs = DefaultVerbs()
	}
	return &Builder{verbs: verbs}
}

// Extract picks the slots from tagged words: the subject is the first
// pronoun (else the first noun), the object the first other noun, the verb
// the first verb, the adjective the first adjective (else adverb).
func (b *Builder) Extract(tagged []model.TaggedWord) Slots {
	var s Slots
	subjectIdx := -1
	for i, w := range tagged {
		if pos.CategoryOf(w.Tag) == pos.Pronoun {
			s.Subject, subjectIdx = w.Text, i
			break
		}
	}
	if subjectIdx < 0 {
		for i, w := range tagged {
			if pos.CategoryOf(w.Tag) == pos.Noun {
				s.Subject, subjectIdx = w.Text, i
				break
			}
		}
	}

	var adverb string
	for i, w := range tagged {
		switch pos.CategoryOf(w.Tag) {
		case pos.Verb:
			if s.Verb == "" {
				s.Verb = w.Text
			}
		case pos.Noun:
			if s.Object == "" && i != subjectIdx {
				s.Object = w.Text
			}
		case pos.Adjective:
			if s.Adjective == "" {
				s.Adjective = w.Text
			}
		default:
			if adverb == "" && strings.HasPrefix(w.Tag, "RB") {
				adverb = w.Text
			}
		}
	}
	if s.Adjective == "" {
		s.Adjective = adverb
	}

	if s.Verb == "" {
		if v, ok := b.InferVerb(tagged); ok {
			s.Verb, s.Inferred = v, true
		}
	}
	return s
}

// InferVerb derives a verb from the nouns and adjectives in tagged.
// It tries the dictionary, then the dictionary keyed by Snowball stem, then
// the stem of an -ing noun ("drawing" -> "draw").
func (b *Builder) InferVerb(tagged []model.TaggedWord) (string, bool) {
	var candidates []string
	for _, w := range tagged {
		switch pos.CategoryOf(w.Tag) {
		case pos.Noun, pos.Adjective:
			candidates = append(candidates, strings.ToLower(w.Text))
		}
	}
	for _, c := range candidates {
		if v, ok := b.verbs[c]; ok {
			return v, true
		}
	}
	for _, c := range candidates {
		if v, ok := b.verbs[english.Stem(c, false)]; ok {
			return v, true
		}
	}
	for _, c := range candidates {
		if strings.HasSuffix(c, "ing") {
			if stem := english.Stem(c, false); stem != c && len(stem) > 1 {
				return stem, true
			}
		}
	}
	return "", false
}

// Auxiliary returns the form of "to be" that agrees with subject. Nouns take "is".
func Auxiliary(subject string) string {
	switch strings.ToLower(subject) {
	case "i":
		return "am"
	case "he", "she", "it":
		return "is"
	case "you", "we", "they":
		return "are"
	case "":
		return ""
	default:
		return "is"
	}
}

// Build validates the slots and renders the sentence:
//
//	Subject aux adjective want to verb [object].
//	Subject verb [object].
func (b *Builder) Build(tagged []model.TaggedWord) (string, Slots, error) {
	s := b.Extract(tagged)

	var missing []string
	if s.Verb == "" {
		missing = append(missing, "verb")
	}
	if s.Subject == "" {
		missing = append(missing, "noun")
	}
	if len(missing) > 0 {
		return "", s, errs.NewMissing(missing...)
	}

	parts := []string{capitalize(s.Subject)}
	aux := Auxiliary(s.Subject)
	if s.Adjective != "" && aux != "" {
		parts = append(parts, aux, s.Adjective, "want to", s.Verb)
	} else {
		parts = append(parts, s.Verb)
	}
	if s.Object != "" {
		parts = append(parts, s.Object)
	}

	sentence := strings.TrimSpace(strings.Join(parts, " "))
	if !strings.HasSuffix(sentence, ".") {
		sentence += "."
	}
	return sentence, s, nil
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
