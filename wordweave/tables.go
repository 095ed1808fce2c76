package wordweave

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Alfex4936/wordweave/internal/logging"
	"github.com/Alfex4936/wordweave/internal/ngram"
	"github.com/Alfex4936/wordweave/internal/store"
)

// TableSource hands out the bigram and trigram tables. Tables are shared
// read-only by every caller.
type TableSource interface {
	Tables(ctx context.Context) (bigrams, trigrams *ngram.Table, err error)
}

// LoaderFunc produces the tables once.
type LoaderFunc func(ctx context.Context) (bigrams, trigrams *ngram.Table, err error)

// FromStore loads tables from s.
func FromStore(s store.Store) LoaderFunc {
	return s.Load
}

type staticTables struct {
	bigrams, trigrams *ngram.Table
}

// StaticTables returns a source over tables that are already loaded.
func StaticTables(bigrams, trigrams *ngram.Table) TableSource {
	return staticTables{bigrams: bigrams, trigrams: trigrams}
}

func (s staticTables) Tables(context.Context) (*ngram.Table, *ngram.Table, error) {
	return s.bigrams, s.trigrams, nil
}

// Lazy loads tables on first use. Concurrent first callers wait for one
// load; its result, error included, is kept for the life of the process.
type Lazy struct {
	load LoaderFunc

	once     sync.Once
	loaded   atomic.Bool
	bigrams  *ngram.Table
	trigrams *ngram.Table
	err      error
}

// LazyTables wraps load in a Lazy.
func LazyTables(load LoaderFunc) *Lazy {
	return &Lazy{load: load}
}

// Tables runs the loader on the first call. The load is detached from the
// caller's cancellation so one aborted request cannot poison the cache.
func (l *Lazy) Tables(ctx context.Context) (*ngram.Table, *ngram.Table, error) {
	l.once.Do(func() {
		start := time.Now()
		l.bigrams, l.trigrams, l.err = l.load(context.WithoutCancel(ctx))
		l.loaded.Store(true)
		if l.err != nil {
			logging.Warn("tables_load_failed", "error", l.err.Error())
			return
		}
		logging.Debug("tables_loaded", "bigrams", l.bigrams.Len(), "trigrams", l.trigrams.Len(),
			"duration_ms", time.Since(start).Milliseconds())
	})
	return l.bigrams, l.trigrams, l.err
}

// Loaded reports whether the loader has run.
func (l *Lazy) Loaded() bool { return l.loaded.Load() }
