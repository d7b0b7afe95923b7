package services

import (
	"context"
	"sync"
	"time"

	"github.com/kerbaras/rmwiki/pkg/data"
	"github.com/kerbaras/rmwiki/pkg/sources"
	"github.com/rs/zerolog"
)

// Controller owns the home screen state: both collections and the episode
// pager. Fetch failures are logged and never returned; the affected
// collection keeps its previous contents.
type Controller struct {
	source sources.Source
	logger zerolog.Logger

	mu         sync.RWMutex
	ctx        context.Context
	cancel     context.CancelFunc
	characters []data.Character
	episodes   []data.Episode
	pager      *Pager

	charactersFetch fetchSlot
	episodesFetch   fetchSlot
}

func NewController(source sources.Source, logger zerolog.Logger, pageSize int) *Controller {
	c := &Controller{
		source:     source,
		logger:     logger,
		characters: []data.Character{},
		episodes:   []data.Episode{},
		pager:      NewPager(pageSize),
	}
	c.Activate(context.Background())
	return c
}

// Activate starts a new screen lifetime. Fetches still running for a
// previous lifetime are cancelled and their results dropped.
func (c *Controller) Activate(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
	c.ctx, c.cancel = ctx, cancel
}

// Close ends the current lifetime.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
}

// fetchSlot tracks the newest fetch of one collection. Starting a fetch
// cancels the one before it, so only the latest result can be stored.
type fetchSlot struct {
	gen    uint64
	cancel context.CancelFunc
}

// begin starts a fetch bound to the current lifetime and supersedes any
// fetch still running for the same collection.
func (c *Controller) begin(slot *fetchSlot) (context.Context, uint64, context.CancelFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if slot.cancel != nil {
		slot.cancel()
	}
	ctx, cancel := context.WithCancel(c.ctx)
	slot.gen++
	slot.cancel = cancel
	return ctx, slot.gen, cancel
}

// LoadCharacters fetches the character list and reports whether the stored
// collection was replaced.
func (c *Controller) LoadCharacters() bool {
	ctx, gen, cancel := c.begin(&c.charactersFetch)
	defer cancel()
	start := time.Now()

	characters, err := c.source.Characters(ctx)
	if err != nil {
		c.logFailure(ctx, "characters", err)
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if ctx.Err() != nil || gen != c.charactersFetch.gen {
		c.logger.Debug().Str("collection", "characters").Msg("discarding result for superseded fetch")
		return false
	}
	c.characters = characters

	c.logger.Info().
		Str("collection", "characters").
		Int("count", len(characters)).
		Dur("duration", time.Since(start)).
		Msg("fetched")
	return true
}

// LoadEpisodes fetches the episode list and reports whether the stored
// collection was replaced. The pager is clamped to the new total.
func (c *Controller) LoadEpisodes() bool {
	ctx, gen, cancel := c.begin(&c.episodesFetch)
	defer cancel()
	start := time.Now()

	episodes, err := c.source.Episodes(ctx)
	if err != nil {
		c.logFailure(ctx, "episodes", err)
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if ctx.Err() != nil || gen != c.episodesFetch.gen {
		c.logger.Debug().Str("collection", "episodes").Msg("discarding result for superseded fetch")
		return false
	}
	c.episodes = episodes
	c.pager.Clamp(len(episodes))

	c.logger.Info().
		Str("collection", "episodes").
		Int("count", len(episodes)).
		Dur("duration", time.Since(start)).
		Msg("fetched")
	return true
}

// Load runs both fetches concurrently and waits for both.
func (c *Controller) Load() {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.LoadCharacters()
	}()
	go func() {
		defer wg.Done()
		c.LoadEpisodes()
	}()
	wg.Wait()
}

func (c *Controller) logFailure(ctx context.Context, collection string, err error) {
	if ctx.Err() != nil {
		c.logger.Debug().Err(err).Str("collection", collection).Msg("fetch cancelled")
		return
	}
	c.logger.Error().Err(err).Str("collection", collection).Msg("fetch failed")
}

func (c *Controller) Characters() []data.Character {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]data.Character(nil), c.characters...)
}

func (c *Controller) Episodes() []data.Episode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]data.Episode(nil), c.episodes...)
}

// Page is the zero-based episode page index.
func (c *Controller) Page() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pager.Page
}

func (c *Controller) PageSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pager.Size
}

// PageBounds returns the visible index range [from, to) over the episodes.
func (c *Controller) PageBounds() (from, to int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pager.Bounds(len(c.episodes))
}

func (c *Controller) VisibleEpisodes() []data.Episode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]data.Episode(nil), Slice(c.pager, c.episodes)...)
}

func (c *Controller) HasPrevPage() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pager.HasPrev()
}

func (c *Controller) HasNextPage() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pager.HasNext(len(c.episodes))
}

func (c *Controller) NextPage() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pager.Next(len(c.episodes))
}

func (c *Controller) PrevPage() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pager.Prev()
}

// SetPage jumps to page, clamped to the available range.
func (c *Controller) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pager.Page = page
	c.pager.Clamp(len(c.episodes))
}
