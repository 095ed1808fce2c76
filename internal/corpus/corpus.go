// Package corpus loads reference text and turns it into the lowercased
// token stream the n-gram builder counts.
package corpus

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/jdkato/prose/tokenize"
	"github.com/ulikunitz/xz"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/Alfex4936/wordweave/internal/chunk"
	"github.com/Alfex4936/wordweave/internal/errs"
	"github.com/Alfex4936/wordweave/internal/net"
)

// wikitext escapes intra-word punctuation as " @-@ ", " @,@ ", " @.@ ".
var wikitextReplacer = strings.NewReplacer(" @-@ ", "-", " @,@ ", ",", " @.@ ", ".")

// Open returns a reader over src: an http(s) URL, a file (xz-compressed when
// it ends in .xz), or a directory whose .txt and .txt.xz files are read in
// name order.
func Open(ctx context.Context, src string) (io.ReadCloser, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		body, err := net.Get(ctx, src)
		if err != nil {
			return nil, errs.NewIO("fetch", src, err)
		}
		if strings.HasSuffix(src, ".xz") {
			return xzReadCloser(body, src)
		}
		return body, nil
	}

	info, err := os.Stat(src)
	if err != nil {
		return nil, errs.NewIO("stat", src, err)
	}
	if info.IsDir() {
		return openDir(src)
	}
	return openFile(src)
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.NewIO("open", path, err)
	}
	if strings.HasSuffix(path, ".xz") {
		return xzReadCloser(f, path)
	}
	return f, nil
}

func openDir(dir string) (io.ReadCloser, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errs.NewIO("read", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if n := e.Name(); strings.HasSuffix(n, ".txt") || strings.HasSuffix(n, ".txt.xz") {
			names = append(names, n)
		}
	}
	sort.Strings(names)

	m := &multiCloser{}
	for _, n := range names {
		rc, err := openFile(filepath.Join(dir, n))
		if err != nil {
			m.Close()
			return nil, err
		}
		// A newline between files keeps their last and first words apart.
		m.readers = append(m.readers, rc, io.NopCloser(strings.NewReader("\n")))
		m.closers = append(m.closers, rc)
	}
	m.Reader = io.MultiReader(m.readers...)
	return m, nil
}

type multiCloser struct {
	io.Reader
	readers []io.Reader
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type xzFile struct {
	*xz.Reader
	under io.Closer
}

func (x xzFile) Close() error { return x.under.Close() }

func xzReadCloser(rc io.ReadCloser, name string) (io.ReadCloser, error) {
	r, err := xz.NewReader(rc)
	if err != nil {
		rc.Close()
		return nil, errs.NewIO("decompress", name, err)
	}
	return xzFile{Reader: r, under: rc}, nil
}

// ReadText reads all of src.
func ReadText(ctx context.Context, src string) (string, error) {
	rc, err := Open(ctx, src)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", errs.NewIO("read", src, err)
	}
	return string(data), nil
}

// Load reads src and tokenises it.
func Load(ctx context.Context, src string) ([]string, error) {
	text, err := ReadText(ctx, src)
	if err != nil {
		return nil, err
	}
	return Tokenize(ctx, text)
}

// Tokenize normalises text (NFC, English lowercase) and splits it with the
// Treebank word tokenizer. Large inputs are cut into word-bounded chunks
// tokenised in parallel (bounded by GOMAXPROCS); the output keeps input order.
func Tokenize(ctx context.Context, text string) ([]string, error) {
	parts := chunk.Split(text, chunk.DefaultWords)
	out := make([][]string, len(parts))

	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	for i, p := range parts {
		i, p := i, p
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			out[i] = tokenizeChunk(p)
		}()
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := 0
	for _, toks := range out {
		n += len(toks)
	}
	tokens := make([]string, 0, n)
	for _, toks := range out {
		tokens = append(tokens, toks...)
	}
	return tokens, nil
}

// tokenizeChunk works on one chunk. Casers are not safe for concurrent use,
// so each call makes its own.
func tokenizeChunk(s string) []string {
	s = norm.NFC.String(s)
	s = cases.Lower(language.English).String(s)
	s = wikitextReplacer.Replace(s)

	tk := tokenize.NewTreebankWordTokenizer()
	var out []string
	// Tokenise line by line: the Treebank rules treat a trailing period as
	// sentence-final only at the end of the input.
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		for _, tok := range tk.Tokenize(line) {
			if tok = strings.TrimSpace(tok); tok != "" {
				out = append(out, tok)
			}
		}
	}
	return out
}
