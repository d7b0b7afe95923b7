package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	Portal     = lipgloss.Color("#97CE4C")
	Brown      = lipgloss.Color("#44281D")
	Success    = lipgloss.Color("#C3E88D")
	Error      = lipgloss.Color("#F07178")
	Info       = lipgloss.Color("#82AAFF")
	Muted      = lipgloss.Color("#7F7F7F")
	Background = lipgloss.Color("#1B1B1B")
	Foreground = lipgloss.Color("#FFFFFF")

	// Border styles
	RoundedBorder = lipgloss.RoundedBorder()
	ThickBorder   = lipgloss.ThickBorder()
)

// Base styles
var (
	// Title style for headings
	TitleStyle = lipgloss.NewStyle().
			Foreground(Portal).
			Background(Brown).
			Bold(true).
			Padding(0, 1).
			MarginBottom(1)

	// Section headings ("Characters", "Episodes")
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Bold(true).
			Underline(true)

	// Normal text
	TextStyle = lipgloss.NewStyle().
			Foreground(Foreground)

	// Muted/dimmed text
	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	Divider = lipgloss.NewStyle().
		Foreground(Foreground).
		Faint(true)

	// Card style
	CardStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			Padding(0, 1)

	// Focused carousel card
	ActiveCardStyle = lipgloss.NewStyle().
			Border(ThickBorder).
			Padding(0, 1)

	// Episode list
	EpisodeNameStyle = lipgloss.NewStyle().
				Foreground(Portal).
				Bold(true)

	EpisodeDetailStyle = lipgloss.NewStyle().
				Foreground(Foreground)

	TableStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Muted).
			Padding(0, 1)

	// Pagination controls
	ControlStyle = lipgloss.NewStyle().
			Foreground(Portal).
			Padding(0, 1)

	DisabledControlStyle = lipgloss.NewStyle().
				Foreground(Muted).
				Padding(0, 1)

	PageNumberStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Padding(0, 1)

	// Status styles
	StatusAlive = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	StatusDead = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	StatusLoading = lipgloss.NewStyle().
			Foreground(Info)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true).
			MarginTop(1)
)

// StatusStyle picks the style for a character status as reported by the API.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "Alive", "alive":
		return StatusAlive
	case "Dead", "dead":
		return StatusDead
	default:
		return MutedStyle
	}
}
