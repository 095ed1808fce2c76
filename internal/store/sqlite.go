package store

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
	_ "modernc.org/sqlite"

	"github.com/Alfex4936/wordweave/internal/errs"
	"github.com/Alfex4936/wordweave/internal/ngram"
)

const schema = `CREATE TABLE IF NOT EXISTS ngrams (
	n     INTEGER NOT NULL,
	gram  TEXT    NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY (n, gram)
)`

// SQLiteStore keeps both tables in one SQLite database.
type SQLiteStore struct {
	Path string
}

func (s *SQLiteStore) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, errs.NewIO("open", s.Path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errs.NewIO("create schema", s.Path, err)
	}
	return db, nil
}

// Save replaces the stored tables in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, bigrams, trigrams *ngram.Table) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errs.NewIO("begin", s.Path, err)
	}
	defer tx.Rollback() // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM ngrams`); err != nil {
		return errs.NewIO("clear", s.Path, err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO ngrams (n, gram, count) VALUES (?, ?, ?)`)
	if err != nil {
		return errs.NewIO("prepare", s.Path, err)
	}
	defer stmt.Close()

	for _, t := range []*ngram.Table{bigrams, trigrams} {
		var insErr error
		t.Each(func(g ngram.Gram, count int) {
			if insErr != nil {
				return
			}
			_, insErr = stmt.ExecContext(ctx, len(g), g.Key(), count)
		})
		if insErr != nil {
			return errs.NewIO("insert", s.Path, insErr)
		}
	}
	if err := tx.Commit(); err != nil {
		return errs.NewIO("commit", s.Path, err)
	}
	return nil
}

// Load reads both tables back.
func (s *SQLiteStore) Load(ctx context.Context) (*ngram.Table, *ngram.Table, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer db.Close()

	counts := map[int]map[string]int{2: {}, 3: {}}
	rows, err := db.QueryContext(ctx, `SELECT n, gram, count FROM ngrams WHERE n IN (2, 3)`)
	if err != nil {
		return nil, nil, errs.NewIO("query", s.Path, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			n     int
			gram  string
			count int
		)
		if err := rows.Scan(&n, &gram, &count); err != nil {
			return nil, nil, errs.NewIO("scan", s.Path, err)
		}
		counts[n][gram] = count
	}
	if err := rows.Err(); err != nil {
		return nil, nil, errs.NewIO("query", s.Path, err)
	}

	bi, err := ngram.FromCounts(2, counts[2])
	if err != nil {
		return nil, nil, err
	}
	tri, err := ngram.FromCounts(3, counts[3])
	if err != nil {
		return nil, nil, err
	}
	return bi, tri, nil
}

// Fingerprint hashes the stored rows in key order, so it depends on the
// content and not on the database file layout.
func (s *SQLiteStore) Fingerprint() (string, error) {
	ctx := context.Background()
	db, err := s.open(ctx)
	if err != nil {
		return "", err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT n, gram, count FROM ngrams ORDER BY n, gram`)
	if err != nil {
		return "", errs.NewIO("query", s.Path, err)
	}
	defer rows.Close()

	h := blake3.New()
	for rows.Next() {
		var (
			n     int
			gram  string
			count int
		)
		if err := rows.Scan(&n, &gram, &count); err != nil {
			return "", errs.NewIO("scan", s.Path, err)
		}
		fmt.Fprintf(h, "%d\t%s\t%d\n", n, gram, count)
	}
	if err := rows.Err(); err != nil {
		return "", errs.NewIO("query", s.Path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
