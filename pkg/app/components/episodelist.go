package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/rmwiki/pkg/app/styles"
	"github.com/kerbaras/rmwiki/pkg/data"
)

// EpisodeList renders one page of episodes and the pagination controls.
type EpisodeList struct {
	Episodes []data.Episode
	Page     int
	HasPrev  bool
	HasNext  bool
	Width    int
}

func NewEpisodeList() *EpisodeList {
	return &EpisodeList{
		Episodes: []data.Episode{},
		Width:    80,
	}
}

// SetWindow replaces the visible episodes and the state of the controls.
func (l *EpisodeList) SetWindow(episodes []data.Episode, page int, hasPrev, hasNext bool) {
	l.Episodes = episodes
	l.Page = page
	l.HasPrev = hasPrev
	l.HasNext = hasNext
}

func (l *EpisodeList) View() string {
	var b strings.Builder

	for _, ep := range l.Episodes {
		b.WriteString(styles.EpisodeNameStyle.Render(ep.Name))
		b.WriteString("\n")
		b.WriteString(styles.EpisodeDetailStyle.Render(fmt.Sprintf("%s • %s", ep.Code, ep.AirDate)))
		b.WriteString("\n")
	}

	rows := strings.TrimSuffix(b.String(), "\n")
	if len(l.Episodes) == 0 {
		rows = styles.MutedStyle.Render("No episodes")
	}

	table := styles.TableStyle.Width(max(l.Width-4, 20)).Render(rows)
	return lipgloss.JoinVertical(lipgloss.Left, table, l.Controls())
}

// Controls renders "Previous  N  Next" with disabled controls dimmed. N is
// the 1-based page number.
func (l *EpisodeList) Controls() string {
	prev := styles.ControlStyle
	if !l.HasPrev {
		prev = styles.DisabledControlStyle
	}
	next := styles.ControlStyle
	if !l.HasNext {
		next = styles.DisabledControlStyle
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Center,
		prev.Render("Previous"),
		styles.PageNumberStyle.Render(fmt.Sprintf("%d", l.Page+1)),
		next.Render("Next"),
	)
}
