package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/orburn/internal/cli"
	"github.com/theirongolddev/orburn/internal/config"
	"github.com/theirongolddev/orburn/internal/engine"
	"github.com/theirongolddev/orburn/internal/hook"
	"github.com/theirongolddev/orburn/internal/openrouter"
	"github.com/theirongolddev/orburn/internal/state"
	"github.com/theirongolddev/orburn/internal/store"
	"github.com/theirongolddev/orburn/internal/transcript"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var statuslineCmd = &cobra.Command{
	Use:   "statusline",
	Short: "Run one accounting pass and print the status line (default command)",
	RunE:  runStatusline,
}

func init() {
	rootCmd.AddCommand(statuslineCmd)
}

// runStatusline is one full render: stdin payload -> engine pass -> one line
// on stdout. It must always produce output; failures degrade to a short
// diagnostic line rather than silence.
func runStatusline(_ *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Println(dimLine(fmt.Sprintf("orburn: %v", r)))
		}
	}()

	sessionID, transcriptPath, modelSlug := resolveRunInputs()
	if sessionID == "" {
		fmt.Println(dimLine("orburn: no session (pipe the statusline payload or pass --session)"))
		return nil
	}

	cfg, _ := config.Load()

	apiKey := config.GetAPIKey(cfg)
	if apiKey == "" {
		// The one condition that halts normal operation: without the
		// inference key nothing can be resolved.
		fmt.Println(dimLine("orburn: no OpenRouter API key — run `orburn setup`"))
		return nil
	}
	provisioningKey := config.GetProvisioningKey(cfg)

	client := openrouter.NewClient(apiKey, provisioningKey, cfg.API.BaseURL, openrouter.RetryPolicy{
		Enabled:     cfg.Retry.Enabled,
		MaxAttempts: cfg.Retry.MaxAttempts,
		BaseDelay:   cfg.Retry.BaseDelay(),
	})

	var recorder engine.Recorder
	if !flagNoLedger {
		if ledger, err := store.Open(store.Path(state.CacheDir())); err == nil {
			defer func() { _ = ledger.Close() }()
			recorder = ledger
		}
		// Ledger failures never block a render; the state file is the
		// unit of durability.
	}

	eng := engine.New(
		client,
		state.NewFileStore(state.SessionsDir()),
		recorder,
		engine.ThrottlePolicy{Enabled: cfg.Throttle.Enabled, Delay: cfg.Throttle.Delay()},
		provisioningKey != "",
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ids := transcript.ExtractGenerationIDs(transcriptPath)
	snap, err := eng.Run(ctx, sessionID, ids, time.Now())
	if err != nil {
		// State persist failed; the snapshot is still worth showing.
		fmt.Fprintf(os.Stderr, "orburn: persisting state: %v\n", err)
	}

	model := snap.LastModel
	if model == "" {
		model = modelSlug
	}

	fmt.Println(cli.RenderStatusline(cli.Statusline{
		Model:              model,
		TotalCost:          snap.TotalCost,
		TotalCacheDiscount: snap.TotalCacheDiscount,
		KeyUsage:           snap.KeyUsage,
		KeyLimit:           snap.KeyLimit,
		Credits:            snap.Credits,
		Resolved:           snap.Resolved,
		Failed:             snap.Failed,
		Icons:              cfg.Appearance.Icons,
	}))

	return nil
}

// resolveRunInputs merges the stdin payload with flag overrides. Flags win so
// manual invocations work without a payload.
func resolveRunInputs() (sessionID, transcriptPath, modelSlug string) {
	sessionID = flagSession
	transcriptPath = flagTranscript

	if sessionID == "" || transcriptPath == "" {
		if in, err := hook.Read(os.Stdin); err == nil {
			if sessionID == "" {
				sessionID = in.SessionID
			}
			if transcriptPath == "" {
				transcriptPath = in.TranscriptPath
			}
			modelSlug = in.Model.ID
		}
	}
	return sessionID, transcriptPath, modelSlug
}

func dimLine(s string) string {
	return lipgloss.NewStyle().Foreground(cli.ColorTextDim).Render(s)
}
