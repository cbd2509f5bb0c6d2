package cmd

import (
	"fmt"

	"github.com/theirongolddev/orburn/internal/cli"
	"github.com/theirongolddev/orburn/internal/state"
	"github.com/theirongolddev/orburn/internal/store"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show all-time totals and per-model breakdown",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	ledger, err := store.Open(store.Path(state.CacheDir()))
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer func() { _ = ledger.Close() }()

	events, cost, discount, err := ledger.Totals()
	if err != nil {
		return fmt.Errorf("reading ledger: %w", err)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("ORBURN SUMMARY"))
	fmt.Println()

	totalRows := [][]string{
		{"Resolved generations", cli.FormatNumber(int64(events))},
		{"Total cost", cli.FormatUSD(cost)},
	}
	if discount < 0 {
		totalRows = append(totalRows, []string{"Cache savings", cli.FormatUSD(-discount)})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Totals",
		Headers: []string{"Metric", "Value"},
		Rows:    totalRows,
	}))

	models, err := ledger.ModelRollups()
	if err != nil {
		return fmt.Errorf("reading model rollups: %w", err)
	}
	if len(models) > 0 {
		rows := make([][]string, 0, len(models))
		for _, m := range models {
			rows = append(rows, []string{
				cli.PrettyModelName(m.Model),
				cli.FormatNumber(int64(m.Events)),
				cli.FormatUSD(m.Cost),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "By Model",
			Headers: []string{"Model", "Events", "Cost"},
			Rows:    rows,
		}))
	}

	return nil
}
