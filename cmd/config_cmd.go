package cmd

import (
	"fmt"

	"github.com/theirongolddev/orburn/internal/config"
	"github.com/theirongolddev/orburn/internal/state"
	"github.com/theirongolddev/orburn/internal/store"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [API]")
	apiKey := config.GetAPIKey(cfg)
	if apiKey != "" {
		fmt.Printf("    API key:          %s\n", maskAPIKey(apiKey))
	} else {
		fmt.Println("    API key:          not configured")
	}
	provisioningKey := config.GetProvisioningKey(cfg)
	if provisioningKey != "" {
		fmt.Printf("    Provisioning key: %s\n", maskAPIKey(provisioningKey))
	} else {
		fmt.Println("    Provisioning key: not configured (credits disabled)")
	}
	if cfg.API.BaseURL != "" {
		fmt.Printf("    Base URL:         %s\n", cfg.API.BaseURL)
	}
	fmt.Println()

	fmt.Println("  [Retry]")
	fmt.Printf("    Enabled:      %v\n", cfg.Retry.Enabled)
	fmt.Printf("    Max attempts: %d\n", cfg.Retry.MaxAttempts)
	fmt.Printf("    Base delay:   %s\n", cfg.Retry.BaseDelay())
	fmt.Println()

	fmt.Println("  [Throttle]")
	fmt.Printf("    Enabled: %v\n", cfg.Throttle.Enabled)
	fmt.Printf("    Delay:   %s\n", cfg.Throttle.Delay())
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Icons: %v\n", cfg.Appearance.Icons)
	fmt.Println()

	fmt.Println("  [Storage]")
	fmt.Printf("    Session state: %s\n", state.SessionsDir())
	fmt.Printf("    Ledger:        %s\n", store.Path(state.CacheDir()))
	fmt.Println()

	fmt.Println("  Run `orburn setup` to reconfigure.")
	return nil
}
