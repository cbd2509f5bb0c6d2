package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/orburn/internal/cli"
	"github.com/theirongolddev/orburn/internal/state"
	"github.com/theirongolddev/orburn/internal/store"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List per-session cost rollups from the resolution ledger",
	RunE:  runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(_ *cobra.Command, _ []string) error {
	ledger, err := store.Open(store.Path(state.CacheDir()))
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer func() { _ = ledger.Close() }()

	rollups, err := ledger.SessionRollups()
	if err != nil {
		return fmt.Errorf("reading ledger: %w", err)
	}

	if len(rollups) == 0 {
		fmt.Println()
		fmt.Println("  No resolved generations yet.")
		fmt.Println()
		return nil
	}

	now := time.Now()
	rows := make([][]string, 0, len(rollups))
	for _, r := range rollups {
		rows = append(rows, []string{
			truncateID(r.SessionID),
			cli.PrettyModelName(r.LastModel),
			cli.FormatNumber(int64(r.Events)),
			cli.FormatUSD(r.Cost),
			cli.FormatTimeAgo(r.LastAt, now),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Sessions",
		Headers: []string{"Session", "Last Model", "Events", "Cost", "Last Activity"},
		Rows:    rows,
	}))

	return nil
}

// truncateID shortens long session UUIDs for table display.
func truncateID(id string) string {
	if len(id) > 12 {
		return id[:12] + "…"
	}
	return id
}
