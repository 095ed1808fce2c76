// Command wordweave-server provides an HTTP REST API for sentence generation.
//
// Usage:
//
//	wordweave-server -p 8080 -store data
//	wordweave-server -p 8080 -store sqlite://ngrams.db -lazy
//	wordweave-server -p 8080 -strategy mlm -mlm-key $HF_API_KEY
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Alfex4936/wordweave/internal/infill"
	"github.com/Alfex4936/wordweave/internal/logging"
	"github.com/Alfex4936/wordweave/internal/mlm"
	"github.com/Alfex4936/wordweave/internal/pos"
	"github.com/Alfex4936/wordweave/internal/store"
	"github.com/Alfex4936/wordweave/wordweave"
)

func main() {
	port     := flag.String("p", envOr("PORT", "8080"), "port to listen on")
	strategy := flag.String("strategy", envOr("WORDWEAVE_STRATEGY", wordweave.DefaultStrategy), "default strategy: ngram | reorder | pipeline | template | mlm")

	// tables
	storeURI    := flag.String("store", envOr("WORDWEAVE_STORE", "data"), "table store: directory of JSON files or sqlite://path (empty: no n-gram strategies)")
	lazy        := flag.Bool("lazy", envOr("WORDWEAVE_LAZY", "") != "", "load tables on first use instead of at startup")
	defaultWord := flag.String("default-word", envOr("WORDWEAVE_DEFAULT_WORD", infill.DefaultWord), "infill word when no n-gram matches")

	// tagging
	corrections := flag.String("corrections", envOr("WORDWEAVE_CORRECTIONS", ""), "extra manual corrections JSON {\"words\":{...}} (optional)")

	// mlm flags
	mlmKey   := flag.String("mlm-key", envOr("HF_API_KEY", ""), "fill-mask API key (enables mlm)")
	mlmModel := flag.String("mlm-model", envOr("MLM_MODEL", mlm.DefaultModel), "fill-mask model name")
	mlmURL   := flag.String("mlm-url", envOr("MLM_BASE_URL", ""), "fill-mask base URL (enables mlm; default Hugging Face when a key is set)")

	origins   := flag.String("cors", envOr("CORS_ORIGINS", "*"), "comma-separated allowed origins")
	logLevel  := flag.String("log-level", envOr("LOG_LEVEL", "info"), "debug | info | warn | error")
	logFormat := flag.String("log-format", envOr("LOG_FORMAT", "text"), "text | json")

	flag.Parse()

	logging.InitLogger(os.Stderr, logging.ParseLevel(*logLevel), logging.ParseFormat(*logFormat))

	cls := pos.NewClassifier(nil, pos.DefaultCorrections())
	if *corrections != "" {
		extra, err := pos.LoadCorrections(*corrections)
		if err != nil {
			fatal("corrections load failed", err)
		}
		cls = pos.NewClassifier(nil, pos.DefaultCorrections().Merge(extra))
		logging.Info("corrections_loaded", "path", *corrections, "entries", len(extra))
	}

	cfg := wordweave.Config{
		Classifier:  cls,
		DefaultWord: *defaultWord,
		Strategy:    *strategy,
	}

	var fingerprint func() (string, error)
	if *storeURI != "" {
		st := store.Open(*storeURI)
		if *lazy {
			cfg.Tables = wordweave.LazyTables(wordweave.FromStore(st))
			logging.Info("tables_deferred", "store", *storeURI)
		} else {
			start := time.Now()
			bi, tri, err := st.Load(context.Background())
			if err != nil {
				fatal("table load failed (build them with wordweave-cli build)", err)
			}
			cfg.Tables = wordweave.StaticTables(bi, tri)
			logging.Info("tables_loaded", "store", *storeURI, "bigrams", bi.Len(), "trigrams", tri.Len(),
				"duration_ms", time.Since(start).Milliseconds())
		}
		if fp, ok := st.(store.Fingerprinter); ok {
			fingerprint = fp.Fingerprint
		}
	}

	if *mlmKey != "" || *mlmURL != "" {
		cfg.Filler = mlm.New(*mlmKey, *mlmModel, *mlmURL)
		logging.Info("mlm_enabled", "model", *mlmModel)
	}

	reg, err := wordweave.New(cfg)
	if err != nil {
		fatal("strategy setup failed", err)
	}

	srv := &wordweave.Server{
		Registry:    reg,
		Classifier:  cls,
		Tables:      cfg.Tables,
		DefaultWord: *defaultWord,
		Fingerprint: fingerprint,
	}

	addr := fmt.Sprintf(":%s", *port)
	hs := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(splitList(*origins)...),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logging.GetLogger().Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			logging.Warn("shutdown_incomplete", "error", err.Error())
		}
	}()

	logging.ServerStartup(addr, reg.Default(), "strategies", reg.Names(),
		"docs", fmt.Sprintf("http://localhost:%s/", *port))
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fatal("server failed", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fatal(msg string, err error) {
	logging.Error(msg, "error", err.Error())
	os.Exit(1)
}
