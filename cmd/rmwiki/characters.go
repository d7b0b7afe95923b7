package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kerbaras/rmwiki/pkg/app/styles"
	"github.com/kerbaras/rmwiki/pkg/data"
	"github.com/spf13/cobra"
)

var charactersCmd = &cobra.Command{
	Use:   "characters",
	Short: "List characters",
	Long:  "Fetch the first page of characters and display them in a table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		characters, err := newSource().Characters(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch characters: %w", err)
		}

		if len(characters) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No characters found.")
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), charactersTable(characters))
		return nil
	},
}

func charactersTable(characters []data.Character) *table.Table {
	var (
		headerStyle = lipgloss.NewStyle().Foreground(styles.Portal).Bold(true).Align(lipgloss.Center)
		cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	)

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Portal)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			default:
				return cellStyle
			}
		}).
		Headers("#", "Name", "Status", "Species", "Image")

	for _, ch := range characters {
		t.Row(fmt.Sprintf("%d", ch.ID), truncateString(ch.Name, 38), ch.Status, truncateString(ch.Species, 18), ch.Image)
	}
	return t
}
