// Package mlm fills gaps between words with a masked language model
// served over an HTTP fill-mask API.
package mlm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	http "github.com/bogdanfinn/fhttp"

	"github.com/Alfex4936/wordweave/internal/net"
)

const (
	DefaultModel   = "bert-base-uncased"
	DefaultBaseURL = "https://api-inference.huggingface.co"
)

// Candidate is one proposed token for a mask.
type Candidate struct {
	Score    float64 `json:"score"`
	Token    int     `json:"token"`
	TokenStr string  `json:"token_str"`
	Sequence string  `json:"sequence"`
}

// Filler proposes candidates for the first mask in text, best first.
type Filler interface {
	FillMask(ctx context.Context, text string) ([]Candidate, error)
}

// Client calls a Hugging Face compatible fill-mask endpoint.
type Client struct {
	baseURL string
	apiKey  string
	model   string
}

// New creates a new fill-mask Client.
// Unset fields fall back to their defaults; apiKey may be empty for
// self-hosted endpoints.
func New(apiKey, model, baseURL string) *Client {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
	}
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// --- wire types ---

type fillRequest struct {
	Inputs string `json:"inputs"`
}

type apiError struct {
	Error string `json:"error"`
}

// FillMask sends text and returns the candidates for its first mask.
func (c *Client) FillMask(ctx context.Context, text string) ([]Candidate, error) {
	body, err := json.Marshal(fillRequest{Inputs: text})
	if err != nil {
		return nil, err
	}

	req, err := net.NewRequest(ctx, http.MethodPost, c.baseURL+"/models/"+c.model, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := net.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mlm: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("mlm: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("mlm: API error (status %d): %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("mlm: unexpected status %d", resp.StatusCode)
	}

	perMask, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	if len(perMask) == 0 {
		return nil, fmt.Errorf("mlm: empty prediction list")
	}
	return perMask[0], nil
}

// Decode parses a fill-mask response. One mask yields a flat list of
// candidates, several masks a list per mask; both come back per mask,
// each sorted by descending score.
func Decode(raw []byte) ([][]Candidate, error) {
	var nested [][]Candidate
	if err := json.Unmarshal(raw, &nested); err != nil {
		var flat []Candidate
		if err2 := json.Unmarshal(raw, &flat); err2 != nil {
			var apiErr apiError
			if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
				return nil, fmt.Errorf("mlm: API error: %s", apiErr.Error)
			}
			return nil, fmt.Errorf("mlm: decode response: %w", err2)
		}
		nested = [][]Candidate{flat}
	}
	for _, cands := range nested {
		sort.SliceStable(cands, func(i, j int) bool { return cands[i].Score > cands[j].Score })
	}
	return nested, nil
}
