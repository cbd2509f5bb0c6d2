// Package cmd wires up the orburn command tree.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	flagSession    string
	flagTranscript string
	flagNoLedger   bool
)

var rootCmd = &cobra.Command{
	Use:   "orburn",
	Short: "OpenRouter session cost statusline",
	Long: "Accumulate authoritative per-generation costs from the OpenRouter billing API\n" +
		"into durable per-session totals and render them as a status line.",
	RunE:         runStatusline,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagSession, "session", "s", "", "Session id (default: from stdin payload)")
	rootCmd.PersistentFlags().StringVarP(&flagTranscript, "transcript", "t", "", "Transcript path (default: from stdin payload)")
	rootCmd.PersistentFlags().BoolVar(&flagNoLedger, "no-ledger", false, "Skip the SQLite resolution ledger")
}
