package components

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/rmwiki/pkg/app/styles"
)

// LoadTracker keeps the set of fetches still in flight and animates a
// spinner while any is pending.
type LoadTracker struct {
	pending map[string]bool
	spinner spinner.Model
}

func NewLoadTracker() *LoadTracker {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.StatusLoading
	return &LoadTracker{
		pending: make(map[string]bool),
		spinner: s,
	}
}

// Start marks a fetch as pending and returns the spinner tick when it is the
// first one.
func (l *LoadTracker) Start(name string) tea.Cmd {
	idle := len(l.pending) == 0
	l.pending[name] = true
	if idle {
		return l.spinner.Tick
	}
	return nil
}

// Done removes a fetch, whatever its outcome.
func (l *LoadTracker) Done(name string) {
	delete(l.pending, name)
}

func (l *LoadTracker) IsLoading(name string) bool {
	return l.pending[name]
}

func (l *LoadTracker) HasActive() bool {
	return len(l.pending) > 0
}

// Pending returns the names of the fetches in flight, sorted.
func (l *LoadTracker) Pending() []string {
	names := make([]string, 0, len(l.pending))
	for name := range l.pending {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (l *LoadTracker) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(spinner.TickMsg); !ok || !l.HasActive() {
		return nil
	}
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// Indicator renders the spinner, or nothing when name is not loading.
func (l *LoadTracker) Indicator(name string) string {
	if !l.IsLoading(name) {
		return ""
	}
	return l.spinner.View()
}

func (l *LoadTracker) View() string {
	if !l.HasActive() {
		return ""
	}
	return l.spinner.View() + " " + styles.StatusLoading.Render("Loading "+strings.Join(l.Pending(), ", ")+"...")
}
