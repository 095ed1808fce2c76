package wordweave

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Alfex4936/wordweave/internal/model"
	"github.com/Alfex4936/wordweave/internal/ngram"
)

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	if cfg.Classifier == nil {
		cfg.Classifier = testClassifier()
	}
	reg, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	s := &Server{
		Registry:    reg,
		Classifier:  cfg.Classifier,
		Tables:      cfg.Tables,
		Fingerprint: func() (string, error) { return "abc123", nil },
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) (int, string) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(b)
}

func TestGenerateEndpoint(t *testing.T) {
	ts := newTestServer(t, Config{Tables: testTables(t)})

	code, body := post(t, ts.URL+"/v1/generate", `{"text":"happy pool I swim"}`)
	if code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", code, body)
	}
	var res model.Result
	if err := json.Unmarshal([]byte(body), &res); err != nil {
		t.Fatal(err)
	}
	if res.Sentence != "I am happy to swim in pool" || res.Reordered != "I happy swim pool" || res.Original != "happy pool I swim" {
		t.Fatalf("res = %+v", res)
	}

	code, body = post(t, ts.URL+"/v1/generate", `{"words":["I","happy"],"strategy":"ngram"}`)
	if code != http.StatusOK || !strings.Contains(body, `"sentence": "I am happy"`) {
		t.Fatalf("ngram: %d %s", code, body)
	}
}

func TestGenerateEndpointClientErrors(t *testing.T) {
	ts := newTestServer(t, Config{Tables: testTables(t)})
	tests := []struct {
		name, body, want string
	}{
		{"bad json", `{"text":`, "Invalid request"},
		{"empty text", `{"text":"   "}`, "no words"},
		{"unknown strategy", `{"text":"I swim pool","strategy":"nope"}`, "unknown strategy"},
		{"missing verb and noun", `{"text":"I happy"}`, "verb and noun"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := post(t, ts.URL+"/v1/generate", tt.body)
			if code != http.StatusBadRequest || !strings.Contains(body, tt.want) {
				t.Fatalf("got %d %q, want 400 containing %q", code, body, tt.want)
			}
		})
	}
}

func TestGenerateEndpointServerError(t *testing.T) {
	broken := LazyTables(func(context.Context) (*ngram.Table, *ngram.Table, error) {
		return nil, nil, errors.New("tables missing on disk")
	})
	ts := newTestServer(t, Config{Tables: broken})
	code, body := post(t, ts.URL+"/v1/generate", `{"text":"happy pool I swim"}`)
	if code != http.StatusInternalServerError || !strings.Contains(body, "tables missing on disk") {
		t.Fatalf("got %d %q, want 500 with cause", code, body)
	}
}

func TestGenerateEndpointHugeTimeout(t *testing.T) {
	ts := newTestServer(t, Config{Tables: testTables(t)})
	code, body := post(t, ts.URL+"/v1/generate", `{"text":"happy pool I swim","timeout":9223372036854775807}`)
	if code != http.StatusOK {
		t.Fatalf("got %d %q, want 200", code, body)
	}
}

func TestGenerateEndpointMethod(t *testing.T) {
	ts := newTestServer(t, Config{Tables: testTables(t)})
	resp, err := http.Get(ts.URL + "/v1/generate")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestTagAndPredictEndpoints(t *testing.T) {
	ts := newTestServer(t, Config{Tables: testTables(t)})

	code, body := post(t, ts.URL+"/v1/tag", `{"text":"I swim"}`)
	if code != http.StatusOK || !strings.Contains(body, `"tag": "PRP"`) || !strings.Contains(body, `"manual": true`) {
		t.Fatalf("tag: %d %s", code, body)
	}

	code, body = post(t, ts.URL+"/v1/predict", `{"word1":"i","word2":"happy"}`)
	var p model.Prediction
	if code != http.StatusOK || json.Unmarshal([]byte(body), &p) != nil || p.Word != "am" {
		t.Fatalf("predict: %d %s", code, body)
	}

	code, _ = post(t, ts.URL+"/v1/predict", `{"word1":"i"}`)
	if code != http.StatusBadRequest {
		t.Fatalf("predict without word2: %d", code)
	}
}

func TestCompleteSentenceEndpoint(t *testing.T) {
	ts := newTestServer(t, Config{Tables: testTables(t), Filler: oneWordFiller("am")})
	code, body := post(t, ts.URL+"/complete_sentence", `{"text":"i happy"}`)
	if code != http.StatusOK || !strings.Contains(body, `"completed_sentence": "I am happy"`) {
		t.Fatalf("got %d %s", code, body)
	}

	// one mask after the first word, not one per gap
	ts = newTestServer(t, Config{Tables: testTables(t), Filler: oneWordFiller("really")})
	code, body = post(t, ts.URL+"/complete_sentence", `{"text":"i like cake"}`)
	if code != http.StatusOK || !strings.Contains(body, `"completed_sentence": "I really like cake"`) {
		t.Fatalf("got %d %s", code, body)
	}
	if code, _ := post(t, ts.URL+"/complete_sentence", `{"text":" "}`); code != http.StatusBadRequest {
		t.Fatalf("empty text: %d, want 400", code)
	}

	ts = newTestServer(t, Config{Tables: testTables(t)})
	if code, _ := post(t, ts.URL+"/complete_sentence", `{"text":"i happy"}`); code != http.StatusBadRequest {
		t.Fatalf("without mlm: %d, want 400", code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	lazy := LazyTables(func(context.Context) (*ngram.Table, *ngram.Table, error) {
		bi, tri := ngram.Build([]string{"a", "b", "c"})
		return bi, tri, nil
	})
	ts := newTestServer(t, Config{Tables: lazy})

	health := func() map[string]any {
		resp, err := http.Get(ts.URL + "/health")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		var out map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatal(err)
		}
		return out
	}

	h := health()
	if h["status"] != "ok" || h["fingerprint"] != "abc123" || h["default"] != "pipeline" {
		t.Fatalf("health = %v", h)
	}
	if tables := h["tables"].(map[string]any); tables["loaded"] != false {
		t.Fatalf("health loaded lazy tables: %v", tables)
	}

	post(t, ts.URL+"/v1/generate", `{"words":["a","b"],"strategy":"ngram"}`)
	tables := health()["tables"].(map[string]any)
	if tables["loaded"] != true || tables["bigrams"] != float64(2) || tables["trigrams"] != float64(1) {
		t.Fatalf("tables after load = %v", tables)
	}
}

func TestDocsCORSAndRequestID(t *testing.T) {
	ts := newTestServer(t, Config{Tables: testTables(t)})

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/openapi.json", nil)
	req.Header.Set("Origin", "http://example.com")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	var spec map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&spec); err != nil {
		t.Fatalf("openapi.json is not JSON: %v", err)
	}
	resp.Body.Close()
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("CORS header = %q", resp.Header.Get("Access-Control-Allow-Origin"))
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}

	resp, err = http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
		t.Errorf("docs: %d %s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}

	resp, err = http.Get(ts.URL + "/missing")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown path: %d", resp.StatusCode)
	}
}

func TestStatusOf(t *testing.T) {
	if StatusOf(ErrEmptyInput) != 400 || StatusOf(errors.New("disk")) != 500 {
		t.Fatal("StatusOf mismatch")
	}
}
