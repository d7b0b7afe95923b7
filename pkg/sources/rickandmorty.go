package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kerbaras/rmwiki/pkg/config"
	"github.com/kerbaras/rmwiki/pkg/data"
	"github.com/kerbaras/rmwiki/pkg/utils"
	"golang.org/x/time/rate"
)

const (
	charactersPath = "/character"
	episodesPath   = "/episode"

	// upper bound on pages walked by the catalog, in case info.pages lies
	maxPages = 500
)

// Info is the pagination block of every list response.
type Info struct {
	Count int    `json:"count"`
	Pages int    `json:"pages"`
	Next  string `json:"next"`
	Prev  string `json:"prev"`
}

type page[T any] struct {
	Info    Info `json:"info"`
	Results []T  `json:"results"`
}

type RickAndMorty struct {
	api *utils.API
}

type options struct {
	baseURL   string
	client    utils.HTTPClient
	limit     rate.Limit
	burst     int
	userAgent string
}

type Option func(*options)

// WithHTTPClient injects the client used for every request.
func WithHTTPClient(client utils.HTTPClient) Option {
	return func(o *options) { o.client = client }
}

// WithBaseURL points the source at another deployment of the API.
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(o *options) {
		o.limit = limit
		o.burst = burst
	}
}

func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

func NewRickAndMorty(opts ...Option) *RickAndMorty {
	o := options{baseURL: config.DefaultBaseURL, client: http.DefaultClient}
	for _, opt := range opts {
		opt(&o)
	}

	api := utils.NewAPI(o.baseURL)
	api.SetClient(o.client)
	api.SetRateLimit(o.limit, o.burst)
	api.SetUserAgent(o.userAgent)
	return &RickAndMorty{api: api}
}

// NewFromConfig builds a source from the api section of the configuration.
func NewFromConfig(cfg config.APIConfig) *RickAndMorty {
	return NewRickAndMorty(
		WithBaseURL(cfg.BaseURL),
		WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		WithRateLimit(rate.Limit(cfg.RateLimit), cfg.Burst),
		WithUserAgent(cfg.UserAgent),
	)
}

func (r *RickAndMorty) Characters(ctx context.Context) ([]data.Character, error) {
	p, err := fetchPage[data.Character](ctx, r.api, charactersPath, 0)
	if err != nil {
		return nil, fmt.Errorf("fetch characters: %w", err)
	}
	return p.Results, nil
}

func (r *RickAndMorty) Episodes(ctx context.Context) ([]data.Episode, error) {
	p, err := fetchPage[data.Episode](ctx, r.api, episodesPath, 0)
	if err != nil {
		return nil, fmt.Errorf("fetch episodes: %w", err)
	}
	return p.Results, nil
}

func (r *RickAndMorty) AllCharacters(ctx context.Context) ([]data.Character, error) {
	out, err := fetchAll[data.Character](ctx, r.api, charactersPath)
	if err != nil {
		return nil, fmt.Errorf("fetch all characters: %w", err)
	}
	return out, nil
}

func (r *RickAndMorty) AllEpisodes(ctx context.Context) ([]data.Episode, error) {
	out, err := fetchAll[data.Episode](ctx, r.api, episodesPath)
	if err != nil {
		return nil, fmt.Errorf("fetch all episodes: %w", err)
	}
	return out, nil
}

// fetchPage gets one results page. n == 0 sends no query parameters.
func fetchPage[T any](ctx context.Context, api *utils.API, path string, n int) (page[T], error) {
	var params url.Values
	if n > 0 {
		params = url.Values{"page": {strconv.Itoa(n)}}
	}

	var p page[T]
	if err := api.Get(ctx, path, params, &p); err != nil {
		return page[T]{}, err
	}
	if p.Results == nil {
		return page[T]{}, utils.ErrMissingResults
	}
	return p, nil
}

func fetchAll[T any](ctx context.Context, api *utils.API, path string) ([]T, error) {
	first, err := fetchPage[T](ctx, api, path, 0)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, max(first.Info.Count, len(first.Results)))
	out = append(out, first.Results...)

	pages := min(first.Info.Pages, maxPages)
	for n := 2; n <= pages; n++ {
		p, err := fetchPage[T](ctx, api, path, n)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", n, err)
		}
		out = append(out, p.Results...)
		if p.Info.Next == "" {
			break
		}
	}
	return out, nil
}
