package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/orburn/internal/cli"
	"github.com/theirongolddev/orburn/internal/config"
	"github.com/theirongolddev/orburn/internal/openrouter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show OpenRouter key balance and account credits",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	apiKey := config.GetAPIKey(cfg)
	if apiKey == "" {
		fmt.Println()
		fmt.Println("  No OpenRouter API key configured.")
		fmt.Println()
		fmt.Println("  To get one:")
		fmt.Println("    1. Open https://openrouter.ai/settings/keys")
		fmt.Println("    2. Create a key (starts with sk-or-...)")
		fmt.Println()
		fmt.Println("  Then configure it:")
		fmt.Println("    orburn setup                              (interactive)")
		fmt.Println("    OPENROUTER_API_KEY=sk-or-... orburn status (one-shot)")
		fmt.Println()
		return nil
	}

	client := openrouter.NewClient(apiKey, config.GetProvisioningKey(cfg), cfg.API.BaseURL, openrouter.RetryPolicy{})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	keyInfo, keyErr := client.FetchKeyInfo(ctx)
	if errors.Is(keyErr, openrouter.ErrUnauthorized) {
		return errors.New("API key invalid or expired — create a fresh one at openrouter.ai")
	}

	var credits *openrouter.Credits
	var creditsErr error
	if client.HasProvisioningKey() {
		credits, creditsErr = client.FetchCredits(ctx)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("OPENROUTER STATUS"))
	fmt.Println()

	if keyInfo != nil {
		rows := [][]string{
			{"Label", keyInfo.Label},
			{"Usage", cli.FormatUSD(keyInfo.Usage)},
		}
		if keyInfo.Limit != nil {
			rows = append(rows,
				[]string{"Limit", cli.FormatUSD(*keyInfo.Limit)},
				[]string{"Remaining", cli.FormatUSD(*keyInfo.Limit - keyInfo.Usage)},
			)
		} else {
			rows = append(rows, []string{"Limit", "unlimited"})
		}
		if keyInfo.IsFreeTier {
			rows = append(rows, []string{"Tier", "free"})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Key",
			Headers: []string{"Field", "Value"},
			Rows:    rows,
		}))
	}

	if credits != nil {
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Account Credits",
			Headers: []string{"Field", "Value"},
			Rows: [][]string{
				{"Purchased", cli.FormatUSD(credits.TotalCredits)},
				{"Used", cli.FormatUSD(credits.TotalUsage)},
				{"Remaining", cli.FormatUSD(credits.Remaining())},
			},
		}))
	} else if !client.HasProvisioningKey() {
		fmt.Println(dimIndent("Account credits need a provisioning key (orburn setup)."))
		fmt.Println()
	}

	if keyErr != nil || creditsErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(cli.ColorOrange)
		msg := keyErr
		if msg == nil {
			msg = creditsErr
		}
		fmt.Printf("  %s\n\n", warnStyle.Render(fmt.Sprintf("Partial data — %v", msg)))
	}

	return nil
}

func dimIndent(s string) string {
	return "  " + lipgloss.NewStyle().Foreground(cli.ColorTextDim).Render(s)
}
