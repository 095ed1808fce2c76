package pos

import "strings"

// Category is the coarse part of speech used for bucketing.
type Category string

const (
	Pronoun   Category = "pronoun"
	Noun      Category = "noun"
	Adjective Category = "adjective"
	Verb      Category = "verb"
	Other     Category = "other"
)

// CategoryOf maps a Penn Treebank tag to its category by prefix.
// PRP and PRP$ are pronouns; NN, NNS, NNP, NNPS nouns; JJ* adjectives; VB* verbs.
func CategoryOf(tag string) Category {
	switch {
	case strings.HasPrefix(tag, "PRP"):
		return Pronoun
	case strings.HasPrefix(tag, "NN"):
		return Noun
	case strings.HasPrefix(tag, "JJ"):
		return Adjective
	case strings.HasPrefix(tag, "VB"):
		return Verb
	default:
		return Other
	}
}
