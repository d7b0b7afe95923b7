package cmd

import (
	"fmt"

	"github.com/kerbaras/rmwiki/pkg/integrations"
	"github.com/kerbaras/rmwiki/pkg/logging"
	"github.com/kerbaras/rmwiki/pkg/services"
	"github.com/spf13/cobra"
)

var epubCmd = &cobra.Command{
	Use:   "epub",
	Short: "Generate an episode guide EPUB",
	Long:  "Fetch every character and episode and write an EPUB episode guide with one section per season",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputDir, _ := cmd.Flags().GetString("output")

		source := newSource()
		exporter := services.NewExporter(source, source, logging.NewLogger("exporter"))
		done := printProgress(cmd, exporter)

		snap, err := exporter.Fetch(cmd.Context(), true)
		var path string
		if err == nil {
			path, err = exporter.ToPublisher(integrations.NewEPubBuilder(outputDir), snap)
		}
		exporter.Close()
		<-done
		if err != nil {
			return fmt.Errorf("EPUB generation failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "EPUB created: %s\n", path)
		return nil
	},
}

func init() {
	epubCmd.Flags().StringP("output", "o", ".", "Directory to write the EPUB to")
}
