package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"

	"github.com/Alfex4936/wordweave/internal/errs"
)

func TestTokenizeLowercases(t *testing.T) {
	got, err := Tokenize(context.Background(), "I Like CAKE\nyou swim in the POOL")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"i", "like", "cake", "you", "swim", "in", "the", "pool"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize() = %q, want %q", got, want)
	}
}

func TestTokenizeSplitsFinalPunctuation(t *testing.T) {
	got, err := Tokenize(context.Background(), "i am happy!")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 || got[3] != "!" {
		t.Fatalf("Tokenize() = %q, want trailing !", got)
	}
}

func TestTokenizeWikitext(t *testing.T) {
	got, err := Tokenize(context.Background(), "a state @-@ of @-@ the @-@ art design")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "state-of-the-art", "design"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize() = %q, want %q", got, want)
	}
}

func TestTokenizeKeepsOrderAcrossChunks(t *testing.T) {
	var b strings.Builder
	const n = 10000
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			b.WriteString("even ")
		} else {
			b.WriteString("odd ")
		}
	}
	got, err := Tokenize(context.Background(), b.String())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != n {
		t.Fatalf("len = %d, want %d", len(got), n)
	}
	for i, tok := range got {
		want := "odd"
		if i%2 == 0 {
			want = "even"
		}
		if tok != want {
			t.Fatalf("token %d = %q, want %q", i, tok, want)
		}
	}
}

func TestTokenizeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Tokenize(ctx, "some words"); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func writeXZ(t *testing.T, path, text string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w, err := xz.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(text)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFileAndXZ(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(plain, []byte("i am happy"), 0o644); err != nil {
		t.Fatal(err)
	}
	packed := filepath.Join(dir, "b.txt.xz")
	writeXZ(t, packed, "you are sad")

	got, err := Load(context.Background(), plain)
	if err != nil || strings.Join(got, " ") != "i am happy" {
		t.Fatalf("Load(plain) = %q, %v", got, err)
	}
	got, err = Load(context.Background(), packed)
	if err != nil || strings.Join(got, " ") != "you are sad" {
		t.Fatalf("Load(xz) = %q, %v", got, err)
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "2.txt"), []byte("second file"), 0o644)
	os.WriteFile(filepath.Join(dir, "1.txt"), []byte("first"), 0o644)
	os.WriteFile(filepath.Join(dir, "skip.md"), []byte("ignored"), 0o644)
	writeXZ(t, filepath.Join(dir, "3.txt.xz"), "third")

	got, err := Load(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"first", "second", "file", "third"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Load(dir) = %q, want %q", got, want)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	var ioErr *errs.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("err = %v, want *errs.IOError", err)
	}
}
