package screens

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/rmwiki/pkg/data"
	"github.com/kerbaras/rmwiki/pkg/services"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	characters    []data.Character
	episodes      []data.Episode
	charactersErr error
	episodesErr   error
}

func (s *stubSource) Characters(ctx context.Context) ([]data.Character, error) {
	return s.characters, s.charactersErr
}

func (s *stubSource) Episodes(ctx context.Context) ([]data.Episode, error) {
	return s.episodes, s.episodesErr
}

func testCharacters(n int) []data.Character {
	chars := make([]data.Character, n)
	for i := range chars {
		chars[i] = data.Character{
			ID:       i + 1,
			Name:     fmt.Sprintf("Character %d", i+1),
			Status:   "Alive",
			Species:  "Human",
			Gender:   "Male",
			Origin:   data.NamedResource{Name: "Earth (C-137)"},
			Location: data.NamedResource{Name: "Citadel of Ricks"},
			Image:    fmt.Sprintf("https://example.test/avatar/%d.jpeg", i+1),
		}
	}
	return chars
}

func testEpisodes(n int) []data.Episode {
	eps := make([]data.Episode, n)
	for i := range eps {
		eps[i] = data.Episode{
			ID:      i + 1,
			Name:    fmt.Sprintf("Episode %02d", i+1),
			Code:    fmt.Sprintf("S01E%02d", i+1),
			AirDate: "December 2, 2013",
		}
	}
	return eps
}

func press(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain runs a command tree and feeds the resulting messages to the model,
// skipping timer driven messages.
func drain(t *testing.T, m tea.Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			drain(t, m, c)
		}
	case charactersLoadedMsg, episodesLoadedMsg:
		m.Update(msg)
	}
}

func newHome(src *stubSource) (*HomeScreen, *services.Controller) {
	controller := services.NewController(src, zerolog.Nop(), services.DefaultPageSize)
	home := NewHomeScreen(controller, 28, 2)
	home.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return home, controller
}

func TestHomeScreen_Loads(t *testing.T) {
	home, controller := newHome(&stubSource{
		characters: testCharacters(20),
		episodes:   testEpisodes(12),
	})

	cmd := home.Init()
	require.NotNil(t, cmd)
	assert.True(t, home.loads.HasActive())

	drain(t, home, cmd)

	assert.False(t, home.loads.HasActive())
	assert.Equal(t, 20, home.carousel.Len())
	assert.Len(t, controller.VisibleEpisodes(), 5)

	view := home.View()
	for _, want := range []string{
		"Rick and Morty Wiki",
		"Characters",
		"Character 1",
		"Status: Alive",
		"Episodes",
		"Episode 01",
		"S01E05 • December 2, 2013",
		"Previous",
		"Next",
	} {
		assert.Contains(t, view, want)
	}
	assert.NotContains(t, view, "Episode 06")
}

func TestHomeScreen_FailedEpisodes(t *testing.T) {
	home, _ := newHome(&stubSource{
		characters:  testCharacters(3),
		episodesErr: errors.New("503 Service Unavailable"),
	})

	drain(t, home, home.Init())

	view := home.View()
	assert.Contains(t, view, "Character 1")
	assert.Contains(t, view, "No episodes")
	assert.NotContains(t, view, "503")
	assert.NotContains(t, view, "rror")
	assert.False(t, home.loads.IsLoading(episodesSection))
}

func TestHomeScreen_FailedCharacters(t *testing.T) {
	home, _ := newHome(&stubSource{
		charactersErr: errors.New("connection refused"),
		episodes:      testEpisodes(3),
	})

	drain(t, home, home.Init())

	view := home.View()
	assert.Contains(t, view, "No characters")
	assert.Contains(t, view, "Episode 03")
	assert.NotContains(t, view, "connection refused")
}

func TestHomeScreen_Pagination(t *testing.T) {
	home, controller := newHome(&stubSource{episodes: testEpisodes(12)})
	drain(t, home, home.Init())

	home.Update(press("p"))
	assert.Equal(t, 0, controller.Page(), "previous is inert on the first page")

	home.Update(press("n"))
	assert.Equal(t, 1, controller.Page())
	assert.Contains(t, home.View(), "Episode 06")

	home.Update(press("n"))
	assert.Equal(t, 2, controller.Page())
	view := home.View()
	assert.Contains(t, view, "Episode 11")
	assert.Contains(t, view, "Episode 12")
	assert.NotContains(t, view, "Episode 10")

	home.Update(press("n"))
	assert.Equal(t, 2, controller.Page(), "next is inert on the last page")

	home.Update(press("p"))
	assert.Equal(t, 1, controller.Page())
}

func TestHomeScreen_CarouselKeys(t *testing.T) {
	home, _ := newHome(&stubSource{characters: testCharacters(3)})
	drain(t, home, home.Init())

	_, cmd := home.Update(press("l"))
	assert.NotNil(t, cmd, "scrolling starts the animation")
	assert.Equal(t, 1, home.carousel.Focus())

	home.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, home.carousel.Focus())
}

func TestHomeScreen_EnterOpensDetails(t *testing.T) {
	home, _ := newHome(&stubSource{characters: testCharacters(3)})
	drain(t, home, home.Init())
	home.Update(press("l"))

	_, cmd := home.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(SwitchScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "details", msg.Screen)
	assert.Equal(t, "Character 2", msg.Data.(data.Character).Name)
}

func TestHomeScreen_EnterWithoutCharacters(t *testing.T) {
	home, _ := newHome(&stubSource{})
	drain(t, home, home.Init())

	_, cmd := home.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestHomeScreen_Refetch(t *testing.T) {
	src := &stubSource{episodes: testEpisodes(12)}
	home, controller := newHome(src)
	drain(t, home, home.Init())
	home.Update(press("n"))
	home.Update(press("n"))

	src.episodes = testEpisodes(6)
	_, cmd := home.Update(press("r"))
	assert.True(t, home.loads.IsLoading(episodesSection))
	drain(t, home, cmd)

	assert.Equal(t, 1, controller.Page())
	assert.Contains(t, home.View(), "Episode 06")
}

func TestRootScreen_DetailsRoundTrip(t *testing.T) {
	controller := services.NewController(&stubSource{characters: testCharacters(2)}, zerolog.Nop(), services.DefaultPageSize)
	root := NewRootScreen(controller, 28, 2)
	root.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	drain(t, root, root.Init())

	_, cmd := root.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	root.Update(cmd())

	assert.Equal(t, detailsView, root.currentView)
	view := root.View()
	assert.Contains(t, view, "Character 1")
	assert.Contains(t, view, "Earth (C-137)")
	assert.Contains(t, view, "Citadel of Ricks")
	assert.Contains(t, view, "Type: -")

	// carousel keys do not reach the home screen while details are shown
	root.Update(press("l"))
	assert.Equal(t, 0, root.home.carousel.Focus())

	_, cmd = root.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	root.Update(cmd())

	assert.Equal(t, homeView, root.currentView)
	assert.Contains(t, root.View(), "Rick and Morty Wiki")
}

func TestRootScreen_QuitClosesController(t *testing.T) {
	src := &stubSource{characters: testCharacters(2)}
	controller := services.NewController(src, zerolog.Nop(), services.DefaultPageSize)
	root := NewRootScreen(controller, 28, 2)
	drain(t, root, root.Init())

	_, cmd := root.Update(press("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	// the lifetime has ended, late results are dropped
	src.characters = testCharacters(5)
	assert.False(t, controller.LoadCharacters())
	assert.Len(t, controller.Characters(), 2)
}

func TestDetailsScreen_Back(t *testing.T) {
	details := NewDetailsScreen(testCharacters(1)[0])

	_, cmd := details.Update(press("x"))
	assert.Nil(t, cmd)

	_, cmd = details.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	require.NotNil(t, cmd)
	assert.Equal(t, SwitchScreenMsg{Screen: "home"}, cmd())
}

func TestHomeScreen_RefetchIgnoresSupersededResult(t *testing.T) {
	home, _ := newHome(&stubSource{episodes: testEpisodes(12)})

	_ = home.Init() // left in flight
	_, refetch := home.Update(press("r"))
	require.NotNil(t, refetch)

	// the first fetch settles after the refetch was issued
	home.Update(episodesLoadedMsg{ok: false, gen: 1})
	assert.True(t, home.loads.IsLoading(episodesSection), "spinner stays until the newest fetch settles")
	assert.Contains(t, home.View(), "Loading")

	drain(t, home, refetch)
	assert.False(t, home.loads.HasActive())
	assert.Contains(t, home.View(), "Episode 01")
	assert.NotContains(t, home.View(), "Loading")
}

func TestHomeScreen_FirstLastPageKeys(t *testing.T) {
	home, controller := newHome(&stubSource{episodes: testEpisodes(12)})
	drain(t, home, home.Init())

	home.Update(press("G"))
	assert.Equal(t, 2, controller.Page())
	view := home.View()
	assert.Contains(t, view, "Episode 12")
	assert.NotContains(t, view, "Episode 01")

	home.Update(press("g"))
	assert.Equal(t, 0, controller.Page())
	assert.Contains(t, home.View(), "Episode 01")
}
