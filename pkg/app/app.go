package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/rmwiki/pkg/app/screens"
	"github.com/kerbaras/rmwiki/pkg/config"
	"github.com/kerbaras/rmwiki/pkg/logging"
	"github.com/kerbaras/rmwiki/pkg/services"
	"github.com/kerbaras/rmwiki/pkg/sources"
	"github.com/rs/zerolog"
)

type App struct {
	cfg    config.Config
	logger zerolog.Logger
}

func NewApp(cfg config.Config, logger zerolog.Logger) *App {
	return &App{cfg: cfg, logger: logger}
}

// Model builds the root screen wired to the configured API.
func (a *App) Model() *screens.RootScreen {
	source := sources.NewFromConfig(a.cfg.API)
	controller := services.NewController(source, logging.NewLogger("controller"), a.cfg.UI.PageSize)
	return screens.NewRootScreen(controller, a.cfg.UI.CardWidth, a.cfg.UI.CardSpacing)
}

func (a *App) Run() error {
	a.logger.Info().Str("base_url", a.cfg.API.BaseURL).Msg("starting tui")
	p := tea.NewProgram(a.Model(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
