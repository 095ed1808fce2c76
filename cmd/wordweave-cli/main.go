// Command wordweave-cli builds n-gram tables from a corpus and generates
// sentences from the command line, printing JSON results.
//
// Usage:
//
//	wordweave-cli build --corpus wiki.txt.xz --out data --compress
//	wordweave-cli generate happy pool I swim
//	echo "I hungry pizza" | wordweave-cli generate --strategy template
//	wordweave-cli predict i happy
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/Alfex4936/wordweave/internal/corpus"
	"github.com/Alfex4936/wordweave/internal/infill"
	"github.com/Alfex4936/wordweave/internal/logging"
	"github.com/Alfex4936/wordweave/internal/mlm"
	"github.com/Alfex4936/wordweave/internal/ngram"
	"github.com/Alfex4936/wordweave/internal/pos"
	"github.com/Alfex4936/wordweave/internal/store"
	"github.com/Alfex4936/wordweave/internal/util"
	"github.com/Alfex4936/wordweave/wordweave"
)

// CLI defines the command-line interface for wordweave-cli.
type CLI struct {
	LogLevel string `name:"log-level" default:"warn" env:"LOG_LEVEL" help:"debug | info | warn | error"`

	Build       BuildCmd       `cmd:"" help:"Count bigrams and trigrams in a corpus and store them"`
	Generate    GenerateCmd    `cmd:"" help:"Turn words into a sentence"`
	Tag         TagCmd         `cmd:"" help:"Show the part-of-speech tag of each word"`
	Predict     PredictCmd     `cmd:"" help:"Show the infill word between two words"`
	Fingerprint FingerprintCmd `cmd:"" help:"Print the BLAKE3 digest of a table store"`
}

// BuildCmd builds tables from a corpus.
type BuildCmd struct {
	Corpus   string `required:"" env:"WORDWEAVE_CORPUS" help:"Corpus file, directory of .txt files, .xz file or http(s) URL"`
	Out      string `default:"data" env:"WORDWEAVE_STORE" help:"Table store: directory or sqlite://path"`
	Compress bool   `help:"xz-compress JSON tables"`
}

func (c *BuildCmd) Run(ctx *kong.Context) error {
	bg := context.Background()
	start := time.Now()
	tokens, err := corpus.Load(bg, c.Corpus)
	if err != nil {
		return err
	}
	bi, tri := ngram.Build(tokens)

	st := store.Open(c.Out)
	if js, ok := st.(*store.JSONStore); ok {
		js.Compress = c.Compress
	}
	if err := st.Save(bg, bi, tri); err != nil {
		return err
	}
	logging.Info("tables_built", "corpus", c.Corpus, "tokens", len(tokens),
		"bigrams", bi.Len(), "trigrams", tri.Len(), "duration_ms", time.Since(start).Milliseconds())

	return printJSON(ctx.Stdout, map[string]any{
		"store":    c.Out,
		"tokens":   len(tokens),
		"bigrams":  bi.Len(),
		"trigrams": tri.Len(),
	})
}

// TableFlags are shared by commands that read tables.
type TableFlags struct {
	Store       string `default:"data" env:"WORDWEAVE_STORE" help:"Table store: directory or sqlite://path"`
	DefaultWord string `name:"default-word" default:"${default_word}" env:"WORDWEAVE_DEFAULT_WORD" help:"Infill word when no n-gram matches"`
}

func (f TableFlags) source() wordweave.TableSource {
	return wordweave.LazyTables(wordweave.FromStore(store.Open(f.Store)))
}

// TagFlags are shared by commands that tag words.
type TagFlags struct {
	Corrections string `env:"WORDWEAVE_CORRECTIONS" help:"Extra manual corrections JSON {\"words\":{...}}" type:"path"`
}

func (f TagFlags) classifier() (*pos.Classifier, error) {
	table := pos.DefaultCorrections()
	if f.Corrections != "" {
		extra, err := pos.LoadCorrections(f.Corrections)
		if err != nil {
			return nil, err
		}
		table = table.Merge(extra)
	}
	return pos.NewClassifier(nil, table), nil
}

// GenerateCmd turns words into a sentence.
type GenerateCmd struct {
	TableFlags `embed:""`
	TagFlags   `embed:""`

	Strategy string        `short:"s" default:"pipeline" env:"WORDWEAVE_STRATEGY" enum:"ngram,reorder,pipeline,template,mlm" help:"ngram | reorder | pipeline | template | mlm"`
	Timeout  time.Duration `short:"t" default:"8s" help:"Overall timeout"`
	MLMKey   string        `name:"mlm-key" env:"HF_API_KEY" help:"Fill-mask API key"`
	MLMModel string        `name:"mlm-model" default:"${mlm_model}" env:"MLM_MODEL" help:"Fill-mask model"`
	MLMURL   string        `name:"mlm-url" env:"MLM_BASE_URL" help:"Fill-mask base URL"`

	Words []string `arg:"" optional:"" help:"Words; read from stdin when omitted"`
}

func (c *GenerateCmd) Run(ctx *kong.Context) error {
	text := strings.Join(c.Words, " ")
	if len(c.Words) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		text = string(data)
	}

	cls, err := c.classifier()
	if err != nil {
		return err
	}
	cfg := wordweave.Config{
		Classifier:  cls,
		DefaultWord: c.DefaultWord,
		Strategy:    c.Strategy,
	}
	if c.Store != "" {
		cfg.Tables = c.source()
	}
	if c.Strategy == wordweave.StrategyMLM {
		cfg.Filler = mlm.New(c.MLMKey, c.MLMModel, c.MLMURL)
	}
	reg, err := wordweave.New(cfg)
	if err != nil {
		return err
	}
	g, err := reg.Get(c.Strategy)
	if err != nil {
		return err
	}

	timeout := c.Timeout
	if c.Strategy == wordweave.StrategyMLM && timeout < wordweave.MLMTimeout {
		timeout = wordweave.MLMTimeout
	}
	bg, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	res, err := wordweave.GenerateText(bg, g, text)
	if err != nil {
		return err
	}
	return printJSON(ctx.Stdout, res)
}

// TagCmd prints tagged words.
type TagCmd struct {
	TagFlags `embed:""`

	Words []string `arg:"" help:"Words to tag"`
}

func (c *TagCmd) Run(ctx *kong.Context) error {
	cls, err := c.classifier()
	if err != nil {
		return err
	}
	return printJSON(ctx.Stdout, cls.Classify(cls.Prepare(c.Words)))
}

// PredictCmd prints the infill prediction for one pair.
type PredictCmd struct {
	TableFlags `embed:""`

	Word1 string `arg:"" help:"Left word"`
	Word2 string `arg:"" help:"Right word"`
}

func (c *PredictCmd) Run(ctx *kong.Context) error {
	p, err := wordweave.NewNgram(c.source(), c.DefaultWord).Predict(context.Background(), c.Word1, c.Word2)
	if err != nil {
		return err
	}
	return printJSON(ctx.Stdout, p)
}

// FingerprintCmd prints the digest of a store.
type FingerprintCmd struct {
	Store string `default:"data" env:"WORDWEAVE_STORE" help:"Table store: directory or sqlite://path"`
}

func (c *FingerprintCmd) Run(ctx *kong.Context) error {
	fp, ok := store.Open(c.Store).(store.Fingerprinter)
	if !ok {
		return fmt.Errorf("store %s cannot be fingerprinted", c.Store)
	}
	sum, err := fp.Fingerprint()
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Stdout, sum)
	return nil
}

func printJSON(w io.Writer, v any) error {
	return util.WriteJSON(w, v, true)
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("wordweave-cli"),
		kong.Description("Turn a loose bag of English words into a short sentence"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"default_word": infill.DefaultWord, "mlm_model": mlm.DefaultModel},
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		fmt.Fprintln(os.Stderr, "wordweave-cli:", err)
		os.Exit(1)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	logging.InitLogger(os.Stderr, logging.ParseLevel(cli.LogLevel), logging.FormatText)
	ctx.FatalIfErrorf(ctx.Run())
}
