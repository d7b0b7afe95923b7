// Package testutil provides a fake Rick and Morty API for tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/kerbaras/rmwiki/pkg/data"
)

// PageSize matches the upstream API.
const PageSize = 20

// FakeAPI serves /api/character and /api/episode from in-memory data.
type FakeAPI struct {
	server *httptest.Server

	mu         sync.RWMutex
	characters []data.Character
	episodes   []data.Episode
	failures   map[string]int
	raw        map[string]string
	delay      time.Duration
	requests   map[string]int
}

func NewFakeAPI(characters []data.Character, episodes []data.Episode) *FakeAPI {
	f := &FakeAPI{
		characters: characters,
		episodes:   episodes,
		failures:   make(map[string]int),
		raw:        make(map[string]string),
		requests:   make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/character", func(w http.ResponseWriter, r *http.Request) {
		f.serve(w, r, "/api/character", func() ([]any, int) { return toAny(f.characters), len(f.characters) })
	})
	mux.HandleFunc("/api/episode", func(w http.ResponseWriter, r *http.Request) {
		f.serve(w, r, "/api/episode", func() ([]any, int) { return toAny(f.episodes), len(f.episodes) })
	})
	f.server = httptest.NewServer(mux)

	return f
}

// BaseURL is the value to use as api.base_url.
func (f *FakeAPI) BaseURL() string {
	return f.server.URL + "/api"
}

func (f *FakeAPI) Close() {
	f.server.Close()
}

// Fail makes path ("/api/character" or "/api/episode") answer with status.
func (f *FakeAPI) Fail(path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[path] = status
}

// Raw makes path answer 200 with the given body.
func (f *FakeAPI) Raw(path, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.raw[path] = body
}

// Delay holds every response for d.
func (f *FakeAPI) Delay(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delay = d
}

// Requests returns how many requests path received.
func (f *FakeAPI) Requests(path string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.requests[path]
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request, path string, items func() ([]any, int)) {
	f.mu.Lock()
	f.requests[path]++
	status, failing := f.failures[path]
	body, raw := f.raw[path]
	delay := f.delay
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	if failing {
		http.Error(w, `{"error":"fake failure"}`, status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if raw {
		fmt.Fprint(w, body)
		return
	}

	f.mu.RLock()
	all, count := items()
	f.mu.RUnlock()

	n := 1
	if p := r.URL.Query().Get("page"); p != "" {
		var err error
		if n, err = strconv.Atoi(p); err != nil || n < 1 {
			http.Error(w, `{"error":"invalid page"}`, http.StatusBadRequest)
			return
		}
	}

	pages := (count + PageSize - 1) / PageSize
	if n > max(pages, 1) {
		http.Error(w, `{"error":"There is nothing here"}`, http.StatusNotFound)
		return
	}

	from := (n - 1) * PageSize
	to := min(from+PageSize, count)

	next := ""
	if n < pages {
		next = fmt.Sprintf("%s%s?page=%d", f.server.URL, path, n+1)
	}
	prev := ""
	if n > 1 {
		prev = fmt.Sprintf("%s%s?page=%d", f.server.URL, path, n-1)
	}

	json.NewEncoder(w).Encode(map[string]any{
		"info": map[string]any{
			"count": count,
			"pages": pages,
			"next":  nullable(next),
			"prev":  nullable(prev),
		},
		"results": all[from:to],
	})
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func toAny[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// Characters generates n distinct characters with ids starting at 1.
func Characters(n int) []data.Character {
	out := make([]data.Character, n)
	for i := range out {
		id := i + 1
		out[i] = data.Character{
			ID:      id,
			Name:    fmt.Sprintf("Character %d", id),
			Status:  "Alive",
			Species: "Human",
			Gender:  "unknown",
			Image:   fmt.Sprintf("https://rickandmortyapi.com/api/character/avatar/%d.jpeg", id),
		}
	}
	return out
}

// Episodes generates n distinct episodes with ids starting at 1.
func Episodes(n int) []data.Episode {
	out := make([]data.Episode, n)
	for i := range out {
		id := i + 1
		out[i] = data.Episode{
			ID:      id,
			Name:    fmt.Sprintf("Episode %d", id),
			Code:    fmt.Sprintf("S%02dE%02d", i/10+1, i%10+1),
			AirDate: "December 2, 2013",
		}
	}
	return out
}
