// Package store persists bigram and trigram tables between runs.
package store

import (
	"context"
	"strings"

	"github.com/Alfex4936/wordweave/internal/ngram"
)

// Store saves and loads the two tables the predictor needs.
type Store interface {
	Save(ctx context.Context, bigrams, trigrams *ngram.Table) error
	Load(ctx context.Context) (bigrams, trigrams *ngram.Table, err error)
}

// Fingerprinter is implemented by stores that can identify their content.
type Fingerprinter interface {
	Fingerprint() (string, error)
}

const sqlitePrefix = "sqlite://"

// Open picks a Store for uri: "sqlite://path" opens an SQLite database,
// anything else is a directory of JSON files.
func Open(uri string) Store {
	if path, ok := strings.CutPrefix(uri, sqlitePrefix); ok {
		return &SQLiteStore{Path: path}
	}
	return &JSONStore{Dir: uri}
}
