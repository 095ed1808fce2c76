package pos

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/Alfex4936/wordweave/internal/errs"
)

// Corrections maps a lowercase word (or space-separated phrase) to the tag
// that must replace whatever the tagger says about it.
type Corrections map[string]string

// correctionsFile is the on-disk form: {"words": {"pizza": "NN", ...}}.
type correctionsFile struct {
	Words map[string]string `json:"words"`
}

// DefaultCorrections returns the built-in vocabulary: activity verbs the
// tagger tends to read as nouns, plus food, places, toys, characters and
// feelings that show up in picture-card input.
func DefaultCorrections() Corrections {
	return NewCorrections(map[string]string{
		// activities
		"eat": "VB", "draw": "VB", "run": "VB", "swim": "VB", "study": "VB",
		"drawing": "VB", "running": "VB", "studying": "VB",
		// feelings
		"happy": "JJ", "sad": "JJ", "angry": "JJ", "bored": "JJ", "nauseated": "JJ",
		"sleepy": "JJ", "anxious": "JJ", "dizzy": "JJ",
		// food
		"nori": "NN", "burger": "NN", "pizza": "NN", "chicken": "NN", "cake": "NN",
		"apple": "NN", "halo-halo": "NN", "ice cream": "NN",
		// places
		"pool": "NN", "hospital": "NN", "school": "NN", "home": "NN", "aquarium": "NN",
		"park": "NN", "jollibee": "NN", "mcdonalds": "NN",
		// things
		"white ink": "NN", "dinosaur toy": "NN", "ballpen": "NN", "penguin": "NN",
		"notebook": "NN", "crayons": "NN", "sticky notes": "NN", "pencil": "NN",
		"keyboard": "NN", "laughter": "NN",
		// characters
		"inosuke": "NN", "jiraiya": "NN", "pochita": "NN", "ampaman": "NN",
	})
}

// NewCorrections normalises keys (trim, lowercase, single spaces) and tags
// (trim, uppercase). Empty keys or tags are dropped.
func NewCorrections(entries map[string]string) Corrections {
	c := make(Corrections, len(entries))
	for word, tag := range entries {
		key := normalizeKey(word)
		tag = strings.ToUpper(strings.TrimSpace(tag))
		if key == "" || tag == "" {
			continue
		}
		c[key] = tag
	}
	return c
}

func normalizeKey(word string) string {
	return strings.Join(strings.Fields(strings.ToLower(word)), " ")
}

// LoadCorrections reads a JSON file of the form {"words": {"pizza": "NN"}}.
func LoadCorrections(path string) (Corrections, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.NewIO("read", path, err)
	}
	var f correctionsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &errs.ParseError{Format: "corrections JSON", Path: path, Message: err.Error(), Err: err}
	}
	return NewCorrections(f.Words), nil
}

// Merge returns a new table with other layered over c.
func (c Corrections) Merge(other Corrections) Corrections {
	out := make(Corrections, len(c)+len(other))
	for k, v := range c {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Lookup returns the manual tag for word, compared lowercased.
func (c Corrections) Lookup(word string) (string, bool) {
	tag, ok := c[normalizeKey(word)]
	return tag, ok
}

// maxPhrase is the word count of the longest key.
func (c Corrections) maxPhrase() int {
	max := 1
	for k := range c {
		if n := strings.Count(k, " ") + 1; n > max {
			max = n
		}
	}
	return max
}

// Join merges runs of adjacent words that together form a multi-word
// correction key ("ice", "cream" -> "ice cream"). Longer phrases win.
// The merged word keeps the caller's casing.
func (c Corrections) Join(words []string) []string {
	max := c.maxPhrase()
	if max == 1 {
		return words
	}
	out := make([]string, 0, len(words))
	for i := 0; i < len(words); {
		n := max
		if rest := len(words) - i; n > rest {
			n = rest
		}
		for ; n > 1; n-- {
			phrase := strings.Join(words[i:i+n], " ")
			if _, ok := c.Lookup(phrase); ok {
				out = append(out, phrase)
				break
			}
		}
		if n <= 1 {
			out = append(out, words[i])
			n = 1
		}
		i += n
	}
	return out
}
