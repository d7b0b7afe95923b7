package screens

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/rmwiki/pkg/app/styles"
	"github.com/kerbaras/rmwiki/pkg/data"
)

type DetailsScreen struct {
	character data.Character
	keys      detailsKeyMap
	help      help.Model
	width     int
	height    int
}

func NewDetailsScreen(character data.Character) *DetailsScreen {
	return &DetailsScreen{
		character: character,
		keys:      newDetailsKeyMap(),
		help:      help.New(),
		width:     80,
	}
}

func (s *DetailsScreen) Init() tea.Cmd {
	return nil
}

func (s *DetailsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.help.Width = msg.Width

	case tea.KeyMsg:
		if key.Matches(msg, s.keys.Back) {
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: "home", Data: nil}
			}
		}
	}

	return s, nil
}

func (s *DetailsScreen) View() string {
	ch := s.character
	header := styles.TitleStyle.Render(ch.Name)

	info := lipgloss.JoinVertical(
		lipgloss.Left,
		field("Status", styles.StatusStyle(ch.Status).Render(orDash(ch.Status))),
		field("Species", orDash(ch.Species)),
		field("Type", orDash(ch.Type)),
		field("Gender", orDash(ch.Gender)),
		field("Origin", orDash(ch.Origin.Name)),
		field("Location", orDash(ch.Location.Name)),
		"",
		styles.MutedStyle.Render(ch.Image),
	)
	card := styles.CardStyle.BorderForeground(styles.Portal).Width(max(s.width-4, 30)).Render(info)

	return fmt.Sprintf("%s\n%s\n%s", header, card, styles.HelpStyle.Render(s.help.View(s.keys)))
}

func field(label, value string) string {
	return fmt.Sprintf("%s %s", styles.MutedStyle.Render(label+":"), value)
}

// The API reports unknown attributes as empty strings.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
