package pos

import (
	"sync"

	"github.com/jdkato/prose/tag"
)

// Tagger assigns one Penn Treebank tag per word, in order.
type Tagger interface {
	Tag(words []string) []string
}

// TaggerFunc adapts a function to the Tagger interface.
type TaggerFunc func(words []string) []string

// Tag calls f(words).
func (f TaggerFunc) Tag(words []string) []string { return f(words) }

// ProseTagger is the averaged-perceptron tagger shipped with prose.
// Loading the model is not free, so share one instance per process.
type ProseTagger struct {
	mu sync.Mutex
	pt *tag.PerceptronTagger
}

var (
	defaultTaggerOnce sync.Once
	defaultTagger     *ProseTagger
)

// NewProseTagger loads the embedded perceptron model.
func NewProseTagger() *ProseTagger {
	return &ProseTagger{pt: tag.NewPerceptronTagger()}
}

// DefaultTagger returns a process-wide ProseTagger, loaded on first use.
func DefaultTagger() *ProseTagger {
	defaultTaggerOnce.Do(func() { defaultTagger = NewProseTagger() })
	return defaultTagger
}

// Tag runs the perceptron over words as one sequence.
func (t *ProseTagger) Tag(words []string) []string {
	if len(words) == 0 {
		return nil
	}
	t.mu.Lock()
	tokens := t.pt.Tag(words)
	t.mu.Unlock()

	out := make([]string, len(words))
	for i := range out {
		if i < len(tokens) {
			out[i] = tokens[i].Tag
		}
	}
	return out
}
