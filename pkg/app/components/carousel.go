package components

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/rmwiki/pkg/app/styles"
	"github.com/kerbaras/rmwiki/pkg/data"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	DefaultCardWidth   = 28
	DefaultCardSpacing = 2

	carouselFPS     = 60
	springFrequency = 6.0
	springDamping   = 1.0
	settleEpsilon   = 0.01
)

// CarouselFrameMsg advances the scroll animation by one frame.
type CarouselFrameMsg struct{}

// CardView is a character card as it should be drawn for the current offset.
type CardView struct {
	Character data.Character
	Scale     float64
	Opacity   float64
}

// Carousel is a horizontally scrolling row of character cards. The scroll
// offset is measured in terminal cells and follows the focused card with a
// spring.
type Carousel struct {
	Width       int
	CardWidth   int
	CardSpacing int

	characters []data.Character
	focus      int

	offset    float64
	velocity  float64
	spring    harmonica.Spring
	animating bool
}

func NewCarousel(cardWidth, spacing int) *Carousel {
	if cardWidth <= 0 {
		cardWidth = DefaultCardWidth
	}
	if spacing < 0 {
		spacing = DefaultCardSpacing
	}
	return &Carousel{
		Width:       80,
		CardWidth:   cardWidth,
		CardSpacing: spacing,
		spring:      harmonica.NewSpring(harmonica.FPS(carouselFPS), springFrequency, springDamping),
	}
}

// Stride is the distance in cells between two adjacent card centres.
func (c *Carousel) Stride() float64 {
	return float64(c.CardWidth + 2*c.CardSpacing)
}

// SetCharacters replaces the cards. The focus is kept when still in range and
// the scroll offset snaps to it.
func (c *Carousel) SetCharacters(chars []data.Character) {
	c.characters = chars
	if c.focus >= len(chars) {
		c.focus = max(len(chars)-1, 0)
	}
	c.offset = c.target()
	c.velocity = 0
	c.animating = false
}

func (c *Carousel) Len() int {
	return len(c.characters)
}

func (c *Carousel) Focus() int {
	return c.focus
}

func (c *Carousel) Offset() float64 {
	return c.offset
}

func (c *Carousel) Animating() bool {
	return c.animating
}

// Selected returns the focused character, or nil when the carousel is empty.
func (c *Carousel) Selected() *data.Character {
	if len(c.characters) == 0 {
		return nil
	}
	ch := c.characters[c.focus]
	return &ch
}

// Next moves the focus one card to the right and starts the animation.
func (c *Carousel) Next() tea.Cmd {
	if c.focus >= len(c.characters)-1 {
		return nil
	}
	c.focus++
	return c.animate()
}

// Prev moves the focus one card to the left and starts the animation.
func (c *Carousel) Prev() tea.Cmd {
	if c.focus <= 0 {
		return nil
	}
	c.focus--
	return c.animate()
}

// Update steps the spring on every frame until the offset settles on the
// focused card.
func (c *Carousel) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(CarouselFrameMsg); !ok || !c.animating {
		return nil
	}

	target := c.target()
	c.offset, c.velocity = c.spring.Update(c.offset, c.velocity, target)
	if math.Abs(c.offset-target) < settleEpsilon && math.Abs(c.velocity) < settleEpsilon {
		c.offset = target
		c.velocity = 0
		c.animating = false
		return nil
	}
	return frame()
}

// Cards returns one entry per character with the emphasis for the current
// scroll offset.
func (c *Carousel) Cards() []CardView {
	cards := make([]CardView, len(c.characters))
	stride := c.Stride()
	for i, ch := range c.characters {
		scale, opacity := CardEmphasis(c.offset, i, stride)
		cards[i] = CardView{Character: ch, Scale: scale, Opacity: opacity}
	}
	return cards
}

func (c *Carousel) View() string {
	if len(c.characters) == 0 {
		return styles.MutedStyle.Render("No characters")
	}

	cards := c.Cards()
	from, to := c.visibleRange()

	rendered := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		rendered = append(rendered, c.renderCard(cards[i], i == c.focus))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, rendered...)
}

// visibleRange picks the cards that fit in Width, centred on the current
// scroll position.
func (c *Carousel) visibleRange() (from, to int) {
	stride := c.Stride()
	fit := max(int(float64(c.Width)/stride), 1)
	centre := int(math.Round(c.offset / stride))

	from = max(centre-fit/2, 0)
	to = min(from+fit, len(c.characters))
	from = max(to-fit, 0)
	return from, to
}

func (c *Carousel) renderCard(card CardView, focused bool) string {
	width := max(int(math.Round(float64(c.CardWidth)*card.Scale)), 4)
	inner := width - 2

	ch := card.Character
	name := lipgloss.NewStyle().
		Foreground(fade(styles.Portal, card.Opacity)).
		Bold(true).
		Render(truncate(ch.Name, inner))

	text := lipgloss.NewStyle().Foreground(fade(styles.Foreground, card.Opacity))
	status := text.Render(truncate(fmt.Sprintf("Status: %s", ch.Status), inner))
	species := text.Render(truncate(fmt.Sprintf("Species: %s", ch.Species), inner))
	image := lipgloss.NewStyle().
		Foreground(fade(styles.Muted, card.Opacity)).
		Render(truncate(ch.Image, inner))

	style := styles.CardStyle
	if focused {
		style = styles.ActiveCardStyle
	}
	style = style.
		Width(width).
		BorderForeground(fade(styles.Portal, card.Opacity)).
		Margin(0, c.CardSpacing)

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, name, "", status, species, image))
}

func (c *Carousel) target() float64 {
	return float64(c.focus) * c.Stride()
}

func (c *Carousel) animate() tea.Cmd {
	if c.animating {
		return nil
	}
	c.animating = true
	return frame()
}

func frame() tea.Cmd {
	return tea.Tick(time.Second/carouselFPS, func(time.Time) tea.Msg {
		return CarouselFrameMsg{}
	})
}

// fade blends a palette colour toward the background by 1-opacity.
func fade(c lipgloss.Color, opacity float64) lipgloss.Color {
	if opacity >= 1 {
		return c
	}
	from, err := colorful.Hex(string(c))
	if err != nil {
		return c
	}
	bg, err := colorful.Hex(string(styles.Background))
	if err != nil {
		return c
	}
	return lipgloss.Color(from.BlendRgb(bg, 1-opacity).Clamped().Hex())
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return strings.TrimSpace(string(r[:width-3])) + "..."
}
