package cmd

import (
	"io"
	"os"

	"github.com/kerbaras/rmwiki/pkg/app"
	"github.com/kerbaras/rmwiki/pkg/config"
	"github.com/kerbaras/rmwiki/pkg/logging"
	"github.com/kerbaras/rmwiki/pkg/sources"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgFile string

	cfg     config.Config
	logger  zerolog.Logger
	logFile io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "rmwiki",
	Short: "A Rick and Morty wiki for your terminal",
	Long:  "Browse Rick and Morty characters and episodes from rickandmortyapi.com in a TUI, or export them from the CLI",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		out, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			return err
		}
		logFile = out
		logCfg := logging.DefaultConfig()
		logCfg.Level = cfg.Log.Level
		logCfg.Pretty = cfg.Log.Pretty
		logCfg.Output = out
		logger = logging.Setup(logCfg)
		logger.Debug().Str("command", cmd.Name()).Msg("config loaded")
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logFile != nil {
			return logFile.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Launch TUI by default
		a := app.NewApp(cfg, logging.NewLogger("tui"))
		return a.Run()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/rmwiki/config.toml)")
	rootCmd.PersistentFlags().String("base-url", config.DefaultBaseURL, "Rick and Morty API base URL")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error, off)")

	// Add all subcommands
	rootCmd.AddCommand(charactersCmd)
	rootCmd.AddCommand(episodesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(epubCmd)
}

func newSource() *sources.RickAndMorty {
	return sources.NewFromConfig(cfg.API)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
