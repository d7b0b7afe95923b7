package screens

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/rmwiki/pkg/app/components"
	"github.com/kerbaras/rmwiki/pkg/app/styles"
	"github.com/kerbaras/rmwiki/pkg/services"
)

const (
	homeTitle = "Rick and Morty Wiki"
	homeBlurb = "Rick and Morty is an animated science fiction sitcom about a mad scientist and his grandson who travel to other dimensions. The show premiered on Adult Swim in 2013."

	charactersSection = "characters"
	episodesSection   = "episodes"
)

// HomeScreen shows the character carousel and the paginated episode list.
// Both sections load independently; a failed load leaves its section empty.
type HomeScreen struct {
	controller *services.Controller
	carousel   *components.Carousel
	episodes   *components.EpisodeList
	loads      *components.LoadTracker
	keys       homeKeyMap
	help       help.Model
	width      int
	height     int

	charactersGen int
	episodesGen   int
}

func NewHomeScreen(controller *services.Controller, cardWidth, cardSpacing int) *HomeScreen {
	return &HomeScreen{
		controller: controller,
		carousel:   components.NewCarousel(cardWidth, cardSpacing),
		episodes:   components.NewEpisodeList(),
		loads:      components.NewLoadTracker(),
		keys:       newHomeKeyMap(),
		help:       help.New(),
	}
}

func (s *HomeScreen) Init() tea.Cmd {
	s.controller.Activate(context.Background())
	return s.fetch()
}

func (s *HomeScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.carousel.Width = msg.Width
		s.episodes.Width = msg.Width
		s.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.Left):
			return s, s.carousel.Prev()
		case key.Matches(msg, s.keys.Right):
			return s, s.carousel.Next()
		case key.Matches(msg, s.keys.PrevPage):
			if s.controller.PrevPage() {
				s.syncEpisodes()
			}
		case key.Matches(msg, s.keys.NextPage):
			if s.controller.NextPage() {
				s.syncEpisodes()
			}
		case key.Matches(msg, s.keys.FirstPage):
			s.controller.SetPage(0)
			s.syncEpisodes()
		case key.Matches(msg, s.keys.LastPage):
			// clamped to the last page
			s.controller.SetPage(math.MaxInt)
			s.syncEpisodes()
		case key.Matches(msg, s.keys.Details):
			if selected := s.carousel.Selected(); selected != nil {
				character := *selected
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "details", Data: character}
				}
			}
		case key.Matches(msg, s.keys.Refresh):
			return s, s.fetch()
		case key.Matches(msg, s.keys.Help):
			s.help.ShowAll = !s.help.ShowAll
		}

	case charactersLoadedMsg:
		if msg.gen != s.charactersGen {
			return s, nil
		}
		s.loads.Done(charactersSection)
		if msg.ok {
			s.carousel.SetCharacters(s.controller.Characters())
		}

	case episodesLoadedMsg:
		if msg.gen != s.episodesGen {
			return s, nil
		}
		s.loads.Done(episodesSection)
		s.syncEpisodes()

	case components.CarouselFrameMsg:
		return s, s.carousel.Update(msg)

	default:
		return s, s.loads.Update(msg)
	}

	return s, nil
}

func (s *HomeScreen) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(homeTitle))
	b.WriteString("\n")
	b.WriteString(styles.TextStyle.Width(max(s.width-2, 40)).Render(homeBlurb))
	b.WriteString("\n")
	b.WriteString(s.divider())
	b.WriteString("\n")

	b.WriteString(s.sectionTitle("Characters", charactersSection))
	b.WriteString("\n\n")
	b.WriteString(s.carousel.View())
	b.WriteString("\n")
	b.WriteString(s.divider())
	b.WriteString("\n")

	b.WriteString(s.sectionTitle("Episodes", episodesSection))
	b.WriteString("\n\n")
	b.WriteString(s.episodes.View())
	b.WriteString("\n")

	if status := s.loads.View(); status != "" {
		b.WriteString("\n")
		b.WriteString(status)
	}
	b.WriteString(styles.HelpStyle.Render(s.help.View(s.keys)))
	return b.String()
}

// fetch loads both sections. A fetch issued while another is running
// supersedes it.
func (s *HomeScreen) fetch() tea.Cmd {
	s.charactersGen++
	s.episodesGen++
	return tea.Batch(
		s.loads.Start(charactersSection),
		s.loads.Start(episodesSection),
		s.loadCharacters(s.charactersGen),
		s.loadEpisodes(s.episodesGen),
	)
}

func (s *HomeScreen) syncEpisodes() {
	s.episodes.SetWindow(
		s.controller.VisibleEpisodes(),
		s.controller.Page(),
		s.controller.HasPrevPage(),
		s.controller.HasNextPage(),
	)
}

func (s *HomeScreen) sectionTitle(title, section string) string {
	heading := styles.SubtitleStyle.Render(title)
	if indicator := s.loads.Indicator(section); indicator != "" {
		return fmt.Sprintf("%s %s", heading, indicator)
	}
	return heading
}

func (s *HomeScreen) divider() string {
	return styles.Divider.Render(strings.Repeat("─", max(s.width-2, 40)))
}

// Commands
func (s *HomeScreen) loadCharacters(gen int) tea.Cmd {
	return func() tea.Msg {
		return charactersLoadedMsg{ok: s.controller.LoadCharacters(), gen: gen}
	}
}

func (s *HomeScreen) loadEpisodes(gen int) tea.Cmd {
	return func() tea.Msg {
		return episodesLoadedMsg{ok: s.controller.LoadEpisodes(), gen: gen}
	}
}
