package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/kerbaras/rmwiki/pkg/data"
	"github.com/kerbaras/rmwiki/pkg/logging"
	"github.com/kerbaras/rmwiki/pkg/services"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Snapshot characters and episodes into DuckDB",
	Long:  "Fetch both collections and replace the contents of a DuckDB snapshot file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("db")
		all, _ := cmd.Flags().GetBool("all")

		repo, err := data.NewDuckDBRepository(dbPath)
		if err != nil {
			return fmt.Errorf("open snapshot: %w", err)
		}
		defer repo.Close()

		source := newSource()
		exporter := services.NewExporter(source, source, logging.NewLogger("exporter"))
		done := printProgress(cmd, exporter)

		snap, err := exporter.Fetch(cmd.Context(), all)
		if err == nil {
			err = exporter.ToRepository(cmd.Context(), repo, snap)
		}
		exporter.Close()
		<-done
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\nSnapshot written to %s (%d characters, %d episodes)\n",
			dbPath, len(snap.Characters), len(snap.Episodes))
		return nil
	},
}

func init() {
	exportCmd.Flags().String("db", filepath.Join(".", "rmwiki.duckdb"), "DuckDB file to write")
	exportCmd.Flags().Bool("all", false, "Follow every API page instead of the first one")
}

// printProgress echoes exporter progress until the channel is closed.
func printProgress(cmd *cobra.Command, exporter *services.Exporter) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for progress := range exporter.GetProgressChannel() {
			label := progress.Collection
			if label == "" {
				label = "export"
			}
			if progress.Error != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s (%v)\n", label, progress.Status, progress.Error)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s (%d)\n", label, progress.Status, progress.Count)
		}
	}()
	return done
}
