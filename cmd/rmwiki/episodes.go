package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/rmwiki/pkg/data"
	"github.com/kerbaras/rmwiki/pkg/services"
	"github.com/spf13/cobra"
)

var episodesCmd = &cobra.Command{
	Use:   "episodes",
	Short: "List one page of episodes",
	Long:  "Fetch the first page of episodes and display one client-side page in a table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		if page < 1 {
			return fmt.Errorf("--page must be at least 1, got %d", page)
		}

		episodes, err := newSource().Episodes(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch episodes: %w", err)
		}

		if len(episodes) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No episodes found.")
			return nil
		}

		pager := services.NewPager(cfg.UI.PageSize)
		pager.Page = page - 1
		pager.Clamp(len(episodes))

		fmt.Fprintf(cmd.OutOrStdout(), "\nEpisodes (page %d of %d)\n\n", pager.Page+1, pager.Pages(len(episodes)))
		fmt.Fprintln(cmd.OutOrStdout(), episodesTable(services.Slice(pager, episodes)).View())
		fmt.Fprintln(cmd.OutOrStdout(), pagerState(pager, len(episodes)))
		return nil
	},
}

func init() {
	episodesCmd.Flags().IntP("page", "p", 1, "Page to show (1-based)")
}

func episodesTable(episodes []data.Episode) table.Model {
	columns := []table.Column{
		{Title: "Code", Width: 8},
		{Title: "Name", Width: 40},
		{Title: "Air date", Width: 20},
	}

	rows := []table.Row{}
	for _, ep := range episodes {
		rows = append(rows, table.Row{
			ep.Code,
			truncateString(ep.Name, 38),
			ep.AirDate,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+2),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Cell
	t.SetStyles(s)
	return t
}

func pagerState(p *services.Pager, total int) string {
	from, to := p.Window(total)
	prev, next := "no", "no"
	if p.HasPrev() {
		prev = "yes"
	}
	if p.HasNext(total) {
		next = "yes"
	}
	return fmt.Sprintf("Showing %d-%d of %d • previous: %s • next: %s", from+1, to, total, prev, next)
}
