package screens

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/rmwiki/pkg/data"
	"github.com/kerbaras/rmwiki/pkg/services"
)

type screenType int

const (
	homeView screenType = iota
	detailsView
)

// RootScreen routes between the home screen and the character details.
// Keys go to the active screen; everything else reaches the home screen so
// fetches and animations keep running while details are shown.
type RootScreen struct {
	controller *services.Controller

	currentView screenType
	home        *HomeScreen
	details     *DetailsScreen

	width  int
	height int
}

func NewRootScreen(controller *services.Controller, cardWidth, cardSpacing int) *RootScreen {
	return &RootScreen{
		controller:  controller,
		currentView: homeView,
		home:        NewHomeScreen(controller, cardWidth, cardSpacing),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	return r.home.Init()
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		if r.details != nil {
			r.details.Update(msg)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			r.controller.Close()
			return r, tea.Quit
		}

		if r.currentView == detailsView && r.details != nil {
			newModel, newCmd := r.details.Update(msg)
			r.details = newModel.(*DetailsScreen)
			return r, newCmd
		}

	case SwitchScreenMsg:
		switch msg.Screen {
		case "home":
			r.currentView = homeView
		case "details":
			if character, ok := msg.Data.(data.Character); ok {
				r.details = NewDetailsScreen(character)
				if r.width > 0 {
					r.details.Update(tea.WindowSizeMsg{Width: r.width, Height: r.height})
				}
				r.currentView = detailsView
				cmd = r.details.Init()
			}
		}
		return r, cmd
	}

	newModel, newCmd := r.home.Update(msg)
	r.home = newModel.(*HomeScreen)
	return r, newCmd
}

func (r *RootScreen) View() string {
	if r.currentView == detailsView && r.details != nil {
		return r.details.View()
	}
	return r.home.View()
}
