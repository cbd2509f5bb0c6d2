package cmd

import (
	"fmt"

	"github.com/theirongolddev/orburn/internal/config"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults so re-running keeps prior values.
	cfg, _ := config.Load()

	apiKey := cfg.API.APIKey
	provisioningKey := cfg.API.ProvisioningKey
	throttle := cfg.Throttle.Enabled
	icons := cfg.Appearance.Icons
	confirm := true

	apiKeyDesc := "Inference key for generation lookups and key balance."
	if apiKey != "" {
		apiKeyDesc += " Current: " + maskAPIKey(apiKey)
	}
	provDesc := "Optional. Unlocks the account-credits figure."
	if provisioningKey != "" {
		provDesc += " Current: " + maskAPIKey(provisioningKey)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("OpenRouter API key").
				Description(apiKeyDesc).
				Placeholder("sk-or-v1-...").
				EchoMode(huh.EchoModePassword).
				Value(&apiKey),
			huh.NewInput().
				Title("Provisioning key").
				Description(provDesc).
				Placeholder("sk-or-v1-... (Enter to skip)").
				EchoMode(huh.EchoModePassword).
				Value(&provisioningKey),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Throttle generation lookups?").
				Description("Adds a courtesy delay between API calls in one run.").
				Value(&throttle),
			huh.NewConfirm().
				Title("Show icons in the statusline?").
				Value(&icons),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Save to %s?", config.ConfigPath())).
				Value(&confirm),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("setup cancelled: %w", err)
	}
	if !confirm {
		fmt.Println("  Nothing saved.")
		return nil
	}

	if apiKey != "" {
		cfg.API.APIKey = apiKey
	}
	cfg.API.ProvisioningKey = provisioningKey
	cfg.Throttle.Enabled = throttle
	cfg.Appearance.Icons = icons

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `orburn setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

func maskAPIKey(key string) string {
	if len(key) > 16 {
		return key[:8] + "..." + key[len(key)-4:]
	}
	if len(key) > 4 {
		return key[:4] + "..."
	}
	return "****"
}
