package sources

import (
	"context"

	"github.com/kerbaras/rmwiki/pkg/data"
)

// Source serves the home screen: the first results page of each collection.
type Source interface {
	Characters(ctx context.Context) ([]data.Character, error)
	Episodes(ctx context.Context) ([]data.Episode, error)
}

// Catalog walks every results page. Used by exports.
type Catalog interface {
	AllCharacters(ctx context.Context) ([]data.Character, error)
	AllEpisodes(ctx context.Context) ([]data.Episode, error)
}
