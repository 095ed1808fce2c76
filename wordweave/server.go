package wordweave

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/cors"

	"github.com/Alfex4936/wordweave/internal/errs"
	"github.com/Alfex4936/wordweave/internal/logging"
	"github.com/Alfex4936/wordweave/internal/model"
	"github.com/Alfex4936/wordweave/internal/pos"
	"github.com/Alfex4936/wordweave/internal/util"
)

// DefaultTimeout bounds one generation when the request does not say.
// The mlm strategy calls out over the network and gets MLMTimeout.
const (
	DefaultTimeout = 8 * time.Second
	MLMTimeout     = 60 * time.Second
)

// MaxTimeoutSeconds caps the per-request timeout.
const MaxTimeoutSeconds = 300

// Server is the HTTP front end.
type Server struct {
	Registry    *Registry
	Classifier  *pos.Classifier
	Tables      TableSource
	DefaultWord string
	// Fingerprint identifies the loaded tables on /health; optional.
	Fingerprint func() (string, error)
}

// GenerateRequest is the HTTP request body for /v1/generate
type GenerateRequest struct {
	Text     string   `json:"text"`               // free text, split on whitespace
	Words    []string `json:"words,omitempty"`    // used instead of text when set
	Strategy string   `json:"strategy,omitempty"` // default: server strategy
	Timeout  int      `json:"timeout,omitempty"`  // seconds
}

// PredictRequest is the HTTP request body for /v1/predict
type PredictRequest struct {
	Word1 string `json:"word1"`
	Word2 string `json:"word2"`
}

// CompleteRequest is the HTTP request body for /complete_sentence
type CompleteRequest struct {
	Text string `json:"text"`
}

// Handler returns the routed handler wrapped in CORS, request id and
// request logging. No origins means any origin.
func (s *Server) Handler(origins ...string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/generate", s.GenerateHandler)
	mux.HandleFunc("/v1/tag", s.TagHandler)
	mux.HandleFunc("/v1/predict", s.PredictHandler)
	mux.HandleFunc("/complete_sentence", s.CompleteHandler)
	mux.HandleFunc("/health", s.HealthHandler)
	mux.HandleFunc("/openapi.json", OpenAPIHandler)
	mux.HandleFunc("/", DocsHandler)

	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-ID"},
	})
	return logging.CombinedMiddleware(c.Handler(mux))
}

// GenerateHandler handles POST /v1/generate requests
func (s *Server) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if !decode(w, r, &req) {
		return
	}

	words := req.Words
	if len(words) == 0 {
		words = Split(req.Text)
	}
	if len(words) == 0 {
		writeError(w, r, ErrEmptyInput)
		return
	}

	g, err := s.Registry.Get(req.Strategy)
	if err != nil {
		writeError(w, r, err)
		return
	}

	timeout := DefaultTimeout
	if g.Name() == StrategyMLM {
		timeout = MLMTimeout
	}
	if req.Timeout > 0 {
		timeout = time.Duration(min(req.Timeout, MaxTimeoutSeconds)) * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	start := time.Now()
	res, err := g.Generate(ctx, words)
	logging.Generation(ctx, g.Name(), len(words), time.Since(start), err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if req.Text != "" && len(req.Words) == 0 {
		res.Original = req.Text
	}
	writeJSON(w, res)
}

// TagHandler handles POST /v1/tag requests
func (s *Server) TagHandler(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if !decode(w, r, &req) {
		return
	}
	words := req.Words
	if len(words) == 0 {
		words = Split(req.Text)
	}
	if len(words) == 0 {
		writeError(w, r, ErrEmptyInput)
		return
	}
	writeJSON(w, struct {
		Tagged []model.TaggedWord `json:"tagged"`
	}{s.Classifier.Classify(s.Classifier.Prepare(words))})
}

// PredictHandler handles POST /v1/predict requests
func (s *Server) PredictHandler(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Word1) == "" || strings.TrimSpace(req.Word2) == "" {
		writeError(w, r, errs.NewValidation("word1 and word2 are required"))
		return
	}
	pred, err := NewNgram(s.Tables, s.DefaultWord).Predict(r.Context(), req.Word1, req.Word2)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, pred)
}

// CompleteHandler handles POST /complete_sentence requests: one mask after
// the first word, filled by the mlm strategy.
func (s *Server) CompleteHandler(w http.ResponseWriter, r *http.Request) {
	var req CompleteRequest
	if !decode(w, r, &req) {
		return
	}
	words := Split(req.Text)
	if len(words) == 0 {
		writeError(w, r, ErrEmptyInput)
		return
	}
	g, err := s.Registry.Get(StrategyMLM)
	if err != nil {
		writeError(w, r, err)
		return
	}
	m, ok := g.(*MLM)
	if !ok {
		writeError(w, r, fmt.Errorf("%w %q", ErrUnknownStrategy, StrategyMLM))
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), MLMTimeout)
	defer cancel()

	res, err := m.CompleteAfterFirst(ctx, words)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"completed_sentence": res.Sentence})
}

// HealthHandler handles GET /health requests. Lazily loaded tables are
// reported but never loaded from here.
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	type tableInfo struct {
		Loaded   bool `json:"loaded"`
		Bigrams  int  `json:"bigrams"`
		Trigrams int  `json:"trigrams"`
	}
	out := struct {
		Status      string     `json:"status"`
		Service     string     `json:"service"`
		Strategies  []string   `json:"strategies"`
		Default     string     `json:"default"`
		Tables      *tableInfo `json:"tables,omitempty"`
		Fingerprint string     `json:"fingerprint,omitempty"`
	}{
		Status:     "ok",
		Service:    "wordweave",
		Strategies: s.Registry.Names(),
		Default:    s.Registry.Default(),
	}

	if s.Tables != nil {
		info := &tableInfo{}
		lazy, isLazy := s.Tables.(*Lazy)
		if !isLazy || lazy.Loaded() {
			if bi, tri, err := s.Tables.Tables(r.Context()); err == nil {
				info.Loaded, info.Bigrams, info.Trigrams = true, bi.Len(), tri.Len()
			}
		}
		out.Tables = info
	}
	if s.Fingerprint != nil {
		if fp, err := s.Fingerprint(); err == nil {
			out.Fingerprint = fp
		}
	}
	writeJSON(w, out)
}

// OpenAPIHandler serves the OpenAPI 3.0 spec at GET /openapi.json
func OpenAPIHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, openAPISpec)
}

// DocsHandler serves the Redoc UI at GET /
func DocsHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, redocHTML)
}

/***----- private -----***/

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

// StatusOf maps an error to its HTTP status: 400 for what the caller can
// fix, 500 for the rest.
func StatusOf(err error) int {
	switch {
	case errs.IsValidation(err),
		errors.Is(err, ErrEmptyInput),
		errors.Is(err, ErrUnknownStrategy):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		logging.ErrorContext(r.Context(), "request_failed", "path", r.URL.Path, "error", err.Error())
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, v any) {
	out, err := util.MarshalNoEscape(v, true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(out)
}

const openAPISpec = `{
  "openapi": "3.0.3",
  "info": {
    "title": "wordweave API",
    "description": "Turns a loose bag of English words into a short sentence.",
    "version": "1.0.0"
  },
  "paths": {
    "/v1/generate": {
      "post": {
        "summary": "Generate",
        "description": "Builds a sentence from the words with the chosen strategy.",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": { "$ref": "#/components/schemas/GenerateRequest" },
              "examples": {
                "pipeline": { "value": { "text": "happy pool I swim" } },
                "template": { "value": { "text": "I hungry", "strategy": "template" } },
                "words":    { "value": { "words": ["I", "happy", "swim", "pool"], "strategy": "ngram" } }
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "Generated sentence",
            "content": {
              "application/json": {
                "schema": { "$ref": "#/components/schemas/Result" },
                "example": {
                  "original": "happy pool I swim",
                  "words": ["happy", "pool", "I", "swim"],
                  "reordered": "I happy swim pool",
                  "predicted": "I am happy to swim in pool",
                  "sentence": "I am happy to swim in pool",
                  "strategy": "pipeline"
                }
              }
            }
          },
          "400": { "description": "Bad JSON, empty text, unknown strategy, or a missing verb/noun" },
          "500": { "description": "Tables or model backend unavailable" }
        }
      }
    },
    "/v1/tag": {
      "post": {
        "summary": "Tag",
        "requestBody": { "required": true, "content": { "application/json": { "schema": { "$ref": "#/components/schemas/GenerateRequest" } } } },
        "responses": { "200": { "description": "Tagged words" } }
      }
    },
    "/v1/predict": {
      "post": {
        "summary": "Predict",
        "description": "Returns the infill word between word1 and word2.",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["word1", "word2"],
                "properties": { "word1": { "type": "string" }, "word2": { "type": "string" } }
              },
              "example": { "word1": "i", "word2": "happy" }
            }
          }
        },
        "responses": { "200": { "description": "Prediction", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Prediction" } } } } }
      }
    },
    "/complete_sentence": {
      "post": {
        "summary": "Complete sentence",
        "description": "Inserts one [MASK] after the first word and fills it with the masked language model.",
        "requestBody": { "required": true, "content": { "application/json": { "example": { "text": "I happy" } } } },
        "responses": { "200": { "description": "Completed sentence", "content": { "application/json": { "example": { "completed_sentence": "I am happy" } } } } }
      }
    },
    "/health": {
      "get": {
        "summary": "Health",
        "responses": { "200": { "description": "Service is up", "content": { "application/json": { "example": { "status": "ok", "service": "wordweave" } } } } }
      }
    }
  },
  "components": {
    "schemas": {
      "GenerateRequest": {
        "type": "object",
        "properties": {
          "text":     { "type": "string", "example": "happy pool I swim" },
          "words":    { "type": "array", "items": { "type": "string" } },
          "strategy": { "type": "string", "enum": ["ngram", "reorder", "pipeline", "template", "mlm"] },
          "timeout":  { "type": "integer", "description": "seconds, default 8 (60 for mlm), at most 300" }
        }
      },
      "Result": {
        "type": "object",
        "properties": {
          "original":    { "type": "string" },
          "words":       { "type": "array", "items": { "type": "string" } },
          "tagged":      { "type": "array", "items": { "$ref": "#/components/schemas/TaggedWord" } },
          "reordered":   { "type": "string" },
          "predicted":   { "type": "string" },
          "predictions": { "type": "array", "items": { "$ref": "#/components/schemas/Prediction" } },
          "sentence":    { "type": "string" },
          "strategy":    { "type": "string" }
        }
      },
      "TaggedWord": {
        "type": "object",
        "properties": {
          "text":     { "type": "string" },
          "tag":      { "type": "string", "description": "Penn Treebank tag" },
          "category": { "type": "string", "enum": ["pronoun", "noun", "adjective", "verb", "other"] },
          "manual":   { "type": "boolean" }
        }
      },
      "Prediction": {
        "type": "object",
        "properties": {
          "left":   { "type": "string" },
          "right":  { "type": "string" },
          "word":   { "type": "string" },
          "source": { "type": "string", "enum": ["trigram", "bigram", "default"] },
          "count":  { "type": "integer" }
        }
      }
    }
  }
}`

const redocHTML = `<!DOCTYPE html>
<html>
<head>
  <title>wordweave API Docs</title>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <link href="https://fonts.googleapis.com/css?family=Montserrat:300,400,700|Roboto:300,400,700" rel="stylesheet">
  <style>body { margin: 0; padding: 0; }</style>
</head>
<body>
  <redoc spec-url="/openapi.json" expand-responses="200" hide-download-button></redoc>
  <script src="https://cdn.jsdelivr.net/npm/redoc@latest/bundles/redoc.standalone.js"></script>
</body>
</html>`
