package net

import (
	"context"
	"fmt"
	"io"
	"sync"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// TimeoutSeconds bounds every request made through the shared client.
const TimeoutSeconds = 60

// shared client (keep-alive, TLS session reuse).
var (
	clientOnce sync.Once
	client     tls_client.HttpClient
	clientErr  error
)

// Client returns the process-wide HTTP client, created on first use.
func Client() (tls_client.HttpClient, error) {
	clientOnce.Do(func() {
		client, clientErr = tls_client.NewHttpClient(tls_client.NewNoopLogger(),
			tls_client.WithTimeoutSeconds(TimeoutSeconds),
			tls_client.WithClientProfile(profiles.DefaultClientProfile),
		)
	})
	return client, clientErr
}

// NewRequest builds a pre-populated request.
func NewRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", ua)
	return req, nil
}

// Do forwards to the shared client.
func Do(req *http.Request) (*http.Response, error) {
	c, err := Client()
	if err != nil {
		return nil, fmt.Errorf("net: client init: %w", err)
	}
	return c.Do(req)
}

// Get fetches url and returns the body of a 2xx response.
// The caller closes the returned reader.
func Get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := NewRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("net: GET %s: status %d", url, resp.StatusCode)
	}
	return resp.Body, nil
}

const ua = "wordweave/1.0 (+https://github.com/Alfex4936/wordweave)"
