package services

import (
	"context"

	"github.com/kerbaras/rmwiki/pkg/data"
)

type mockSource struct {
	charactersFunc    func(ctx context.Context) ([]data.Character, error)
	episodesFunc      func(ctx context.Context) ([]data.Episode, error)
	allCharactersFunc func(ctx context.Context) ([]data.Character, error)
	allEpisodesFunc   func(ctx context.Context) ([]data.Episode, error)
}

func (m *mockSource) Characters(ctx context.Context) ([]data.Character, error) {
	if m.charactersFunc != nil {
		return m.charactersFunc(ctx)
	}
	return []data.Character{}, nil
}

func (m *mockSource) Episodes(ctx context.Context) ([]data.Episode, error) {
	if m.episodesFunc != nil {
		return m.episodesFunc(ctx)
	}
	return []data.Episode{}, nil
}

func (m *mockSource) AllCharacters(ctx context.Context) ([]data.Character, error) {
	if m.allCharactersFunc != nil {
		return m.allCharactersFunc(ctx)
	}
	return m.Characters(ctx)
}

func (m *mockSource) AllEpisodes(ctx context.Context) ([]data.Episode, error) {
	if m.allEpisodesFunc != nil {
		return m.allEpisodesFunc(ctx)
	}
	return m.Episodes(ctx)
}

type mockRepository struct {
	characters              []data.Character
	episodes                []data.Episode
	replaceCharactersErr    error
	replaceEpisodesErr      error
	replaceCharactersCalled int
	replaceEpisodesCalled   int
}

func (m *mockRepository) ReplaceCharacters(_ context.Context, characters []data.Character) error {
	m.replaceCharactersCalled++
	if m.replaceCharactersErr != nil {
		return m.replaceCharactersErr
	}
	m.characters = characters
	return nil
}

func (m *mockRepository) ReplaceEpisodes(_ context.Context, episodes []data.Episode) error {
	m.replaceEpisodesCalled++
	if m.replaceEpisodesErr != nil {
		return m.replaceEpisodesErr
	}
	m.episodes = episodes
	return nil
}

func makeCharacters(n int) []data.Character {
	out := make([]data.Character, n)
	for i := range out {
		out[i] = data.Character{ID: i + 1, Name: "Character", Status: "Alive", Species: "Human"}
	}
	return out
}

func makeEpisodes(n int) []data.Episode {
	out := make([]data.Episode, n)
	for i := range out {
		out[i] = data.Episode{ID: i + 1, Name: "Episode", Code: "S01E01"}
	}
	return out
}
