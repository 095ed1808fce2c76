package net

import (
	"context"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	srv := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if !strings.HasPrefix(r.Header.Get("User-Agent"), "wordweave/") {
			w.WriteHeader(stdhttp.StatusForbidden)
			return
		}
		if r.URL.Path == "/missing" {
			w.WriteHeader(stdhttp.StatusNotFound)
			return
		}
		io.WriteString(w, "i am happy")
	}))
	defer srv.Close()

	body, err := Get(context.Background(), srv.URL+"/corpus.txt")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	data, _ := io.ReadAll(body)
	body.Close()
	if string(data) != "i am happy" {
		t.Fatalf("body = %q", data)
	}

	if _, err := Get(context.Background(), srv.URL+"/missing"); err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("err = %v, want status 404", err)
	}
}

func TestClientIsShared(t *testing.T) {
	a, err := Client()
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Client()
	if a != b {
		t.Fatal("Client() should return one shared instance")
	}
}
