package wordweave

import (
	"fmt"
	"sort"

	"github.com/Alfex4936/wordweave/internal/mlm"
	"github.com/Alfex4936/wordweave/internal/pos"
)

// Registry maps strategy names to generators.
type Registry struct {
	gens map[string]Generator
	def  string
}

// NewRegistry returns an empty registry whose default is def.
func NewRegistry(def string) *Registry {
	return &Registry{gens: make(map[string]Generator), def: def}
}

// Register adds g under g.Name(), replacing any earlier one.
func (r *Registry) Register(g Generator) {
	r.gens[g.Name()] = g
}

// Get returns the generator for name; "" means the default.
func (r *Registry) Get(name string) (Generator, error) {
	if name == "" {
		name = r.def
	}
	g, ok := r.gens[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownStrategy, name)
	}
	return g, nil
}

// Default returns the default strategy name.
func (r *Registry) Default() string { return r.def }

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.gens))
	for n := range r.gens {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Config holds what the built-in strategies need.
type Config struct {
	Tables TableSource
	// Classifier tags words for reorder, pipeline and template. Nil means
	// the prose tagger with the default corrections.
	Classifier *pos.Classifier
	// DefaultWord is the infill fallback; empty means "am".
	DefaultWord string
	// Verbs feeds template verb inference; nil means template.DefaultVerbs.
	Verbs map[string]string
	// Filler enables the mlm strategy when set.
	Filler mlm.Filler
	// Strategy is the default strategy; empty means pipeline.
	Strategy string
}

// New registers every strategy cfg can support. The n-gram strategies
// need Tables and mlm needs Filler; the rest are always present. The
// default strategy must be among them.
func New(cfg Config) (*Registry, error) {
	def := cfg.Strategy
	if def == "" {
		def = DefaultStrategy
	}
	cls := cfg.Classifier
	if cls == nil {
		cls = pos.NewClassifier(nil, pos.DefaultCorrections())
	}

	r := NewRegistry(def)
	r.Register(NewReorder(cls))
	r.Register(NewTemplate(cls, cfg.Verbs))
	if cfg.Tables != nil {
		r.Register(NewNgram(cfg.Tables, cfg.DefaultWord))
		r.Register(NewPipeline(cls, cfg.Tables, cfg.DefaultWord))
	}
	if cfg.Filler != nil {
		r.Register(NewMLM(cfg.Filler))
	}

	if _, err := r.Get(def); err != nil {
		return nil, err
	}
	return r, nil
}
