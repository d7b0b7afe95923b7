package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kerbaras/rmwiki/pkg/data"
	"github.com/kerbaras/rmwiki/pkg/integrations"
	"github.com/kerbaras/rmwiki/pkg/sources"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ExportProgress reports one step of an export.
type ExportProgress struct {
	Collection string // "characters", "episodes" or "" for the export as a whole
	Count      int
	Status     string // "fetching", "fetched", "writing", "complete", "error"
	Error      error
}

// Repository is the snapshot store the exporter writes to.
type Repository interface {
	ReplaceCharacters(ctx context.Context, characters []data.Character) error
	ReplaceEpisodes(ctx context.Context, episodes []data.Episode) error
}

// Snapshot is both collections fetched together.
type Snapshot struct {
	Characters []data.Character
	Episodes   []data.Episode
	FetchedAt  time.Time
}

// Exporter fetches both collections and hands them to an export target.
// Unlike the screen controller it propagates failures.
type Exporter struct {
	source       sources.Source
	catalog      sources.Catalog
	logger       zerolog.Logger
	progressChan chan ExportProgress
}

// NewExporter creates an exporter. catalog may be nil, in which case only
// first-page fetches are possible.
func NewExporter(source sources.Source, catalog sources.Catalog, logger zerolog.Logger) *Exporter {
	return &Exporter{
		source:       source,
		catalog:      catalog,
		logger:       logger,
		progressChan: make(chan ExportProgress, 100),
	}
}

// GetProgressChannel returns the channel for receiving export progress updates
func (e *Exporter) GetProgressChannel() <-chan ExportProgress {
	return e.progressChan
}

// Fetch gets both collections concurrently. With all set, every API page is
// walked; otherwise only the first page, as the home screen does.
func (e *Exporter) Fetch(ctx context.Context, all bool) (Snapshot, error) {
	if all && e.catalog == nil {
		return Snapshot{}, fmt.Errorf("source cannot list every page")
	}

	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		e.sendProgress(ExportProgress{Collection: "characters", Status: "fetching"})
		var err error
		if all {
			snap.Characters, err = e.catalog.AllCharacters(ctx)
		} else {
			snap.Characters, err = e.source.Characters(ctx)
		}
		if err != nil {
			e.sendProgress(ExportProgress{Collection: "characters", Status: "error", Error: err})
			return err
		}
		e.sendProgress(ExportProgress{Collection: "characters", Status: "fetched", Count: len(snap.Characters)})
		return nil
	})

	g.Go(func() error {
		e.sendProgress(ExportProgress{Collection: "episodes", Status: "fetching"})
		var err error
		if all {
			snap.Episodes, err = e.catalog.AllEpisodes(ctx)
		} else {
			snap.Episodes, err = e.source.Episodes(ctx)
		}
		if err != nil {
			e.sendProgress(ExportProgress{Collection: "episodes", Status: "error", Error: err})
			return err
		}
		e.sendProgress(ExportProgress{Collection: "episodes", Status: "fetched", Count: len(snap.Episodes)})
		return nil
	})

	if err := g.Wait(); err != nil {
		e.logger.Error().Err(err).Bool("all", all).Msg("export fetch failed")
		return Snapshot{}, err
	}

	snap.FetchedAt = time.Now()
	e.logger.Info().
		Int("characters", len(snap.Characters)).
		Int("episodes", len(snap.Episodes)).
		Bool("all", all).
		Msg("export fetched")
	return snap, nil
}

// ToRepository replaces the stored snapshot with snap.
func (e *Exporter) ToRepository(ctx context.Context, repo Repository, snap Snapshot) error {
	e.sendProgress(ExportProgress{Collection: "characters", Status: "writing", Count: len(snap.Characters)})
	if err := repo.ReplaceCharacters(ctx, snap.Characters); err != nil {
		e.sendProgress(ExportProgress{Collection: "characters", Status: "error", Error: err})
		return fmt.Errorf("failed to store characters: %w", err)
	}

	e.sendProgress(ExportProgress{Collection: "episodes", Status: "writing", Count: len(snap.Episodes)})
	if err := repo.ReplaceEpisodes(ctx, snap.Episodes); err != nil {
		e.sendProgress(ExportProgress{Collection: "episodes", Status: "error", Error: err})
		return fmt.Errorf("failed to store episodes: %w", err)
	}

	e.sendProgress(ExportProgress{Status: "complete", Count: len(snap.Characters) + len(snap.Episodes)})
	e.logger.Info().Msg("snapshot stored")
	return nil
}

// ToPublisher renders snap with publisher and returns the written path.
func (e *Exporter) ToPublisher(publisher integrations.Publisher, snap Snapshot) (string, error) {
	e.sendProgress(ExportProgress{Status: "writing", Count: len(snap.Episodes)})

	path, err := publisher.Publish(integrations.Guide{
		Characters:  snap.Characters,
		Episodes:    snap.Episodes,
		GeneratedAt: snap.FetchedAt,
	})
	if err != nil {
		e.sendProgress(ExportProgress{Status: "error", Error: err})
		return "", fmt.Errorf("failed to publish guide: %w", err)
	}

	e.sendProgress(ExportProgress{Status: "complete", Count: len(snap.Episodes)})
	e.logger.Info().Str("path", path).Msg("guide published")
	return path, nil
}

// sendProgress sends a progress update (non-blocking)
func (e *Exporter) sendProgress(progress ExportProgress) {
	select {
	case e.progressChan <- progress:
	default:
		// Channel full, skip this update
	}
}

// Close closes the progress channel. The exporter must not be used after.
func (e *Exporter) Close() {
	close(e.progressChan)
}
