package data

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacterDecode(t *testing.T) {
	body := `{
		"id": 1,
		"name": "Rick Sanchez",
		"status": "Alive",
		"species": "Human",
		"type": "",
		"gender": "Male",
		"origin": {"name": "Earth (C-137)", "url": "https://rickandmortyapi.com/api/location/1"},
		"location": {"name": "Citadel of Ricks", "url": "https://rickandmortyapi.com/api/location/3"},
		"image": "https://rickandmortyapi.com/api/character/avatar/1.jpeg",
		"episode": ["https://rickandmortyapi.com/api/episode/1"],
		"url": "https://rickandmortyapi.com/api/character/1",
		"created": "2017-11-04T18:48:46.250Z"
	}`

	var c Character
	require.NoError(t, json.Unmarshal([]byte(body), &c))

	assert.Equal(t, 1, c.ID)
	assert.Equal(t, "Rick Sanchez", c.Name)
	assert.Equal(t, "Alive", c.Status)
	assert.Equal(t, "Human", c.Species)
	assert.Equal(t, "Earth (C-137)", c.Origin.Name)
	assert.Equal(t, "Citadel of Ricks", c.Location.Name)
	assert.Equal(t, "https://rickandmortyapi.com/api/character/avatar/1.jpeg", c.Image)
}

func TestEpisodeDecode(t *testing.T) {
	body := `{
		"id": 28,
		"name": "The Ricklantis Mixup",
		"air_date": "September 10, 2017",
		"episode": "S03E07",
		"characters": ["https://rickandmortyapi.com/api/character/1", "https://rickandmortyapi.com/api/character/2"],
		"url": "https://rickandmortyapi.com/api/episode/28"
	}`

	var e Episode
	require.NoError(t, json.Unmarshal([]byte(body), &e))

	assert.Equal(t, 28, e.ID)
	assert.Equal(t, "The Ricklantis Mixup", e.Name)
	assert.Equal(t, "S03E07", e.Code)
	assert.Equal(t, "September 10, 2017", e.AirDate)
	assert.Len(t, e.Characters, 2)
}

func TestEpisodeSeason(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"S01E01", "S01"},
		{"S10E12", "S10"},
		{"s02e03", "s02"},
		{"", ""},
		{"E01", ""},
		{"S01", ""},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, Episode{Code: tt.code}.Season())
		})
	}
}
