package data

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()

	repo, err := NewDuckDBRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to init DB: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	return repo
}

func testCharacters() []Character {
	return []Character{
		{
			ID:       2,
			Name:     "Morty Smith",
			Status:   "Alive",
			Species:  "Human",
			Gender:   "Male",
			Origin:   NamedResource{Name: "unknown"},
			Location: NamedResource{Name: "Citadel of Ricks", URL: "https://rickandmortyapi.com/api/location/3"},
			Image:    "https://rickandmortyapi.com/api/character/avatar/2.jpeg",
		},
		{
			ID:      1,
			Name:    "Rick Sanchez",
			Status:  "Alive",
			Species: "Human",
			Gender:  "Male",
			Origin:  NamedResource{Name: "Earth (C-137)", URL: "https://rickandmortyapi.com/api/location/1"},
			Image:   "https://rickandmortyapi.com/api/character/avatar/1.jpeg",
		},
	}
}

func TestReplaceAndListCharacters(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	// Initially empty
	characters, err := repo.ListCharacters(ctx)
	require.NoError(t, err)
	assert.Empty(t, characters)

	require.NoError(t, repo.ReplaceCharacters(ctx, testCharacters()))

	characters, err = repo.ListCharacters(ctx)
	require.NoError(t, err)
	require.Len(t, characters, 2)

	// Ordered by id
	assert.Equal(t, "Rick Sanchez", characters[0].Name)
	assert.Equal(t, "Earth (C-137)", characters[0].Origin.Name)
	assert.Equal(t, "Morty Smith", characters[1].Name)
	assert.Equal(t, "Citadel of Ricks", characters[1].Location.Name)
	assert.Equal(t, "https://rickandmortyapi.com/api/character/avatar/2.jpeg", characters[1].Image)
}

func TestReplaceCharactersIsWholesale(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceCharacters(ctx, testCharacters()))
	require.NoError(t, repo.ReplaceCharacters(ctx, []Character{{ID: 3, Name: "Summer Smith"}}))

	characters, err := repo.ListCharacters(ctx)
	require.NoError(t, err)
	require.Len(t, characters, 1)
	assert.Equal(t, "Summer Smith", characters[0].Name)
}

func TestReplaceAndListEpisodes(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	episodes := []Episode{
		{
			ID:      1,
			Name:    "Pilot",
			Code:    "S01E01",
			AirDate: "December 2, 2013",
			Characters: []string{
				"https://rickandmortyapi.com/api/character/1",
				"https://rickandmortyapi.com/api/character/2",
			},
			URL: "https://rickandmortyapi.com/api/episode/1",
		},
		{ID: 2, Name: "Lawnmower Dog", Code: "S01E02", AirDate: "December 9, 2013"},
	}

	require.NoError(t, repo.ReplaceEpisodes(ctx, episodes))

	stored, err := repo.ListEpisodes(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	assert.Equal(t, episodes[0], stored[0])
	assert.Equal(t, "Lawnmower Dog", stored[1].Name)
	assert.Nil(t, stored[1].Characters)
}

func TestReplaceEpisodesWithEmptySlice(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceEpisodes(ctx, []Episode{{ID: 1, Name: "Pilot"}}))
	require.NoError(t, repo.ReplaceEpisodes(ctx, nil))

	stored, err := repo.ListEpisodes(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}
