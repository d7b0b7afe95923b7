package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"
)

// ErrMissingResults is returned when a list response has no "results" array.
var ErrMissingResults = errors.New("response has no results")

// HTTPClient is the part of *http.Client the API needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("GET %s: unexpected status %d: %s", e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

type API struct {
	client    HTTPClient
	baseURL   string
	limiter   *rate.Limiter
	userAgent string
}

func NewAPI(baseURL string) *API {
	return &API{client: http.DefaultClient, baseURL: strings.TrimRight(baseURL, "/")}
}

func (a *API) SetClient(client HTTPClient) {
	if client != nil {
		a.client = client
	}
}

// SetRateLimit throttles outgoing requests. A zero limit disables throttling.
func (a *API) SetRateLimit(limit rate.Limit, burst int) {
	if limit <= 0 {
		a.limiter = nil
		return
	}
	if burst < 1 {
		burst = 1
	}
	a.limiter = rate.NewLimiter(limit, burst)
}

func (a *API) SetUserAgent(ua string) {
	a.userAgent = ua
}

func (a *API) BaseURL() string {
	return a.baseURL
}

// Get issues a GET for path and decodes the JSON body into v.
func (a *API) Get(ctx context.Context, path string, params url.Values, v any) error {
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	target := a.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if a.userAgent != "" {
		req.Header.Set("User-Agent", a.userAgent)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return &StatusError{StatusCode: resp.StatusCode, URL: target, Body: strings.TrimSpace(string(snippet))}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", target, err)
	}
	return nil
}
