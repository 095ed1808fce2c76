package store

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/Alfex4936/wordweave/internal/errs"
	"github.com/Alfex4936/wordweave/internal/ngram"
	"github.com/Alfex4936/wordweave/internal/util"
)

const (
	BigramFile  = "bigram_freq.json"
	TrigramFile = "trigram_freq.json"
	xzSuffix    = ".xz"
)

// JSONStore keeps each table as a JSON object {"w1 w2": count} in Dir.
// With Compress set the files are written xz-compressed with an ".xz"
// suffix. Load accepts either form.
type JSONStore struct {
	Dir      string
	Compress bool
}

func (s *JSONStore) path(name string) string {
	p := filepath.Join(s.Dir, name)
	if s.Compress {
		p += xzSuffix
	}
	return p
}

// existing returns the on-disk path for name, preferring the plain file.
func (s *JSONStore) existing(name string) (string, error) {
	plain := filepath.Join(s.Dir, name)
	for _, p := range []string{plain, plain + xzSuffix} {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", errs.NewIO("open", plain, fs.ErrNotExist)
}

// Save writes both tables. Each file is written to a temporary name and
// renamed into place.
func (s *JSONStore) Save(ctx context.Context, bigrams, trigrams *ngram.Table) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return errs.NewIO("create", s.Dir, err)
	}
	for _, f := range []struct {
		name  string
		table *ngram.Table
	}{{BigramFile, bigrams}, {TrigramFile, trigrams}} {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.writeTable(s.path(f.name), f.table); err != nil {
			return err
		}
	}
	return nil
}

func (s *JSONStore) writeTable(path string, t *ngram.Table) error {
	data, err := util.MarshalNoEscape(t.Counts(), false)
	if err != nil {
		return errs.Wrapf(err, "encode %s", path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return errs.NewIO("create", path, err)
	}
	defer os.Remove(tmp.Name()) // no-op after rename

	var w io.Writer = tmp
	var xw *xz.Writer
	if s.Compress {
		if xw, err = xz.NewWriter(tmp); err != nil {
			tmp.Close()
			return errs.NewIO("compress", path, err)
		}
		w = xw
	}
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		return errs.NewIO("write", path, err)
	}
	if xw != nil {
		if err := xw.Close(); err != nil {
			tmp.Close()
			return errs.NewIO("compress", path, err)
		}
	}
	if err := tmp.Close(); err != nil {
		return errs.NewIO("write", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errs.NewIO("rename", path, err)
	}
	return nil
}

// Load reads both tables back.
func (s *JSONStore) Load(ctx context.Context) (*ngram.Table, *ngram.Table, error) {
	bi, err := s.readTable(ctx, BigramFile, 2)
	if err != nil {
		return nil, nil, err
	}
	tri, err := s.readTable(ctx, TrigramFile, 3)
	if err != nil {
		return nil, nil, err
	}
	return bi, tri, nil
}

func (s *JSONStore) readTable(ctx context.Context, name string, n int) (*ngram.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.existing(name)
	if err != nil {
		return nil, err
	}
	data, err := readMaybeXZ(path)
	if err != nil {
		return nil, err
	}

	var counts map[string]int
	if err := json.Unmarshal(data, &counts); err != nil {
		return nil, &errs.ParseError{Format: "JSON", Path: path, Message: err.Error(), Err: err}
	}
	t, err := ngram.FromCounts(n, counts)
	if err != nil {
		var pe *errs.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return t, nil
}

func readMaybeXZ(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.NewIO("open", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if filepath.Ext(path) == xzSuffix {
		if r, err = xz.NewReader(f); err != nil {
			return nil, errs.NewIO("decompress", path, err)
		}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.NewIO("read", path, err)
	}
	return data, nil
}

// Fingerprint returns the hex BLAKE3 digest over both stored files as
// they sit on disk.
func (s *JSONStore) Fingerprint() (string, error) {
	h := blake3.New()
	for _, name := range []string{BigramFile, TrigramFile} {
		path, err := s.existing(name)
		if err != nil {
			return "", err
		}
		f, err := os.Open(path)
		if err != nil {
			return "", errs.NewIO("open", path, err)
		}
		_, err = io.Copy(h, f)
		f.Close()
		if err != nil {
			return "", errs.NewIO("read", path, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
