// Package wordweave turns a loose bag of English words into a short
// sentence.
//
// Each way of doing it is a Generator:
//
//	ngram     infill a connecting word between the words as given
//	reorder   tag the words and concatenate them in a fixed slot order
//	pipeline  reorder, then infill (the default)
//	template  fill a subject/verb/object template, inferring a missing verb
//	mlm       let a masked language model fill a mask between every pair
//
// Generators are safe for concurrent use once built.
package wordweave

import (
	"context"
	"strings"
	"unicode"

	"github.com/Alfex4936/wordweave/internal/errs"
	"github.com/Alfex4936/wordweave/internal/infill"
	"github.com/Alfex4936/wordweave/internal/mlm"
	"github.com/Alfex4936/wordweave/internal/model"
	"github.com/Alfex4936/wordweave/internal/pos"
	"github.com/Alfex4936/wordweave/internal/reorder"
	"github.com/Alfex4936/wordweave/internal/template"
)

// Strategy names.
const (
	StrategyNgram    = "ngram"
	StrategyReorder  = "reorder"
	StrategyPipeline = "pipeline"
	StrategyTemplate = "template"
	StrategyMLM      = "mlm"

	DefaultStrategy = StrategyPipeline
)

// Generator turns words into a sentence.
type Generator interface {
	Name() string
	Generate(ctx context.Context, words []string) (*model.Result, error)
}

// Split turns free text into words: whitespace separated, with surrounding
// punctuation trimmed. "I'm" stays one word.
func Split(text string) []string {
	fields := strings.Fields(text)
	out := fields[:0]
	for _, f := range fields {
		f = strings.TrimFunc(f, unicode.IsPunct)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// GenerateText splits text and runs g over the words. Result.Original is
// the text as given.
func GenerateText(ctx context.Context, g Generator, text string) (*model.Result, error) {
	words := Split(text)
	if len(words) == 0 {
		return nil, ErrEmptyInput
	}
	res, err := g.Generate(ctx, words)
	if err != nil {
		return nil, err
	}
	res.Original = text
	return res, nil
}

func newResult(strategy string, words []string) *model.Result {
	return &model.Result{
		Original: strings.Join(words, " "),
		Words:    append([]string(nil), words...),
		Strategy: strategy,
	}
}

/***----- ngram -----***/

// Ngram infills between the words in the order given.
type Ngram struct {
	tables      TableSource
	defaultWord string
}

// NewNgram returns the n-gram strategy. An empty defaultWord means
// infill.DefaultWord.
func NewNgram(tables TableSource, defaultWord string) *Ngram {
	return &Ngram{tables: tables, defaultWord: defaultWord}
}

func (g *Ngram) Name() string { return StrategyNgram }

func (g *Ngram) predictor(ctx context.Context) (*infill.Predictor, error) {
	if g.tables == nil {
		return nil, ErrNoTables
	}
	bi, tri, err := g.tables.Tables(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "load n-gram tables")
	}
	return infill.New(bi, tri, g.defaultWord), nil
}

// Predict returns the infill word for one pair.
func (g *Ngram) Predict(ctx context.Context, w1, w2 string) (model.Prediction, error) {
	p, err := g.predictor(ctx)
	if err != nil {
		return model.Prediction{}, err
	}
	return p.Between(w1, w2), nil
}

func (g *Ngram) Generate(ctx context.Context, words []string) (*model.Result, error) {
	res := newResult(StrategyNgram, words)
	if err := g.fill(ctx, res, words); err != nil {
		return nil, err
	}
	return res, nil
}

func (g *Ngram) fill(ctx context.Context, res *model.Result, words []string) error {
	p, err := g.predictor(ctx)
	if err != nil {
		return err
	}
	res.Predictions = p.Fill(words)
	res.Predicted = infill.Join(words, res.Predictions)
	res.Sentence = res.Predicted
	return nil
}

/***----- reorder -----***/

// Reorder tags the words and concatenates them bucket by bucket.
type Reorder struct {
	cls *pos.Classifier
}

// NewReorder returns the reorder strategy.
func NewReorder(cls *pos.Classifier) *Reorder {
	return &Reorder{cls: cls}
}

func (g *Reorder) Name() string { return StrategyReorder }

func (g *Reorder) Generate(ctx context.Context, words []string) (*model.Result, error) {
	res := newResult(StrategyReorder, words)
	if _, err := g.reorder(ctx, res, words); err != nil {
		return nil, err
	}
	res.Sentence = res.Reordered
	return res, nil
}

func (g *Reorder) reorder(ctx context.Context, res *model.Result, words []string) (reorder.Sentence, error) {
	if err := ctx.Err(); err != nil {
		return reorder.Sentence{}, err
	}
	res.Tagged = g.cls.Classify(g.cls.Prepare(words))
	s, err := reorder.Reorder(res.Tagged)
	if err != nil {
		return reorder.Sentence{}, err
	}
	res.Reordered = s.String()
	return s, nil
}

/***----- pipeline -----***/

// Pipeline reorders the words and then infills between them.
type Pipeline struct {
	reorder *Reorder
	ngram   *Ngram
}

// NewPipeline returns the pipeline strategy.
func NewPipeline(cls *pos.Classifier, tables TableSource, defaultWord string) *Pipeline {
	return &Pipeline{reorder: NewReorder(cls), ngram: NewNgram(tables, defaultWord)}
}

func (g *Pipeline) Name() string { return StrategyPipeline }

func (g *Pipeline) Generate(ctx context.Context, words []string) (*model.Result, error) {
	res := newResult(StrategyPipeline, words)
	s, err := g.reorder.reorder(ctx, res, words)
	if err != nil {
		return nil, err
	}
	if err := g.ngram.fill(ctx, res, s.Words()); err != nil {
		return nil, err
	}
	return res, nil
}

/***----- template -----***/

// Template fills a subject/verb/object template.
type Template struct {
	cls     *pos.Classifier
	builder *template.Builder
}

// NewTemplate returns the template strategy. Nil verbs means
// template.DefaultVerbs.
func NewTemplate(cls *pos.Classifier, verbs map[string]string) *Template {
	return &Template{cls: cls, builder: template.New(verbs)}
}

func (g *Template) Name() string { return StrategyTemplate }

func (g *Template) Generate(ctx context.Context, words []string) (*model.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := newResult(StrategyTemplate, words)
	res.Tagged = g.cls.Classify(g.cls.Prepare(words))
	sentence, _, err := g.builder.Build(res.Tagged)
	if err != nil {
		return nil, err
	}
	res.Sentence = sentence
	return res, nil
}

/***----- mlm -----***/

// MLM asks a masked language model to fill a mask between every pair.
type MLM struct {
	filler mlm.Filler
}

// NewMLM returns the masked-language-model strategy.
func NewMLM(f mlm.Filler) *MLM {
	return &MLM{filler: f}
}

func (g *MLM) Name() string { return StrategyMLM }

func (g *MLM) Generate(ctx context.Context, words []string) (*model.Result, error) {
	res := newResult(StrategyMLM, words)
	sentence, err := mlm.Complete(ctx, g.filler, words)
	if err != nil {
		return nil, errs.Wrap(err, "mask fill")
	}
	res.Sentence = sentence
	return res, nil
}

// CompleteAfterFirst fills a single mask placed after the first word.
func (g *MLM) CompleteAfterFirst(ctx context.Context, words []string) (*model.Result, error) {
	res := newResult(StrategyMLM, words)
	sentence, err := mlm.CompleteAfterFirst(ctx, g.filler, words)
	if err != nil {
		return nil, errs.Wrap(err, "mask fill")
	}
	res.Sentence = sentence
	return res, nil
}
