package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/theirongolddev/orburn/internal/cli"
	"github.com/theirongolddev/orburn/internal/config"
	"github.com/theirongolddev/orburn/internal/engine"
	"github.com/theirongolddev/orburn/internal/openrouter"
	"github.com/theirongolddev/orburn/internal/state"
	"github.com/theirongolddev/orburn/internal/store"
	"github.com/theirongolddev/orburn/internal/transcript"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live session view, refreshed on an interval",
	Long: `Watch re-reads the session transcript on an interval, resolves any
new generations, and redraws the running totals in place.`,
	RunE: runWatch,
}

var flagInterval int

func init() {
	watchCmd.Flags().IntVarP(&flagInterval, "interval", "i", 5, "refresh interval in seconds")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(_ *cobra.Command, _ []string) error {
	if flagSession == "" {
		return fmt.Errorf("watch requires --session (and usually --transcript)")
	}

	cfg, _ := config.Load()
	apiKey := config.GetAPIKey(cfg)
	if apiKey == "" {
		return fmt.Errorf("no API key configured; run `orburn setup`")
	}

	interval := time.Duration(flagInterval) * time.Second
	if interval < time.Second {
		interval = time.Second
	}

	client := openrouter.NewClient(apiKey, config.GetProvisioningKey(cfg), cfg.API.BaseURL, openrouter.RetryPolicy{
		Enabled:     cfg.Retry.Enabled,
		MaxAttempts: cfg.Retry.MaxAttempts,
		BaseDelay:   cfg.Retry.BaseDelay(),
	})

	var recorder engine.Recorder
	if !flagNoLedger {
		if ledger, err := store.Open(store.Path(state.CacheDir())); err == nil {
			defer ledger.Close()
			recorder = ledger
		}
	}

	eng := engine.New(client, state.NewFileStore(state.SessionsDir()), recorder,
		engine.ThrottlePolicy{
			Enabled: cfg.Throttle.Enabled,
			Delay:   cfg.Throttle.Delay(),
		},
		config.GetProvisioningKey(cfg) != "")

	m := newWatchModel(eng, flagSession, flagTranscript, interval, cfg.Appearance.Icons)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("watch error: %w", err)
	}
	return nil
}

// refreshDoneMsg carries one engine pass result back into the model.
type refreshDoneMsg struct {
	snap engine.Snapshot
	err  error
	when time.Time
}

type watchTickMsg time.Time

type watchModel struct {
	eng            *engine.Engine
	sessionID      string
	transcriptPath string
	interval       time.Duration
	icons          bool

	spinner    spinner.Model
	refreshing bool
	haveSnap   bool
	snap       engine.Snapshot
	lastErr    error
	lastPass   time.Time
	passes     int
}

func newWatchModel(eng *engine.Engine, sessionID, transcriptPath string, interval time.Duration, icons bool) watchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(cli.ColorAccent)

	return watchModel{
		eng:            eng,
		sessionID:      sessionID,
		transcriptPath: transcriptPath,
		interval:       interval,
		icons:          icons,
		spinner:        sp,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refreshCmd())
}

func (m watchModel) refreshCmd() tea.Cmd {
	eng, sessionID, path := m.eng, m.sessionID, m.transcriptPath
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		ids := transcript.ExtractGenerationIDs(path)
		snap, err := eng.Run(ctx, sessionID, ids, time.Now())
		return refreshDoneMsg{snap: snap, err: err, when: time.Now()}
	}
}

func (m watchModel) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if !m.refreshing {
				m.refreshing = true
				return m, m.refreshCmd()
			}
		}
		return m, nil

	case refreshDoneMsg:
		m.refreshing = false
		m.haveSnap = true
		m.snap = msg.snap
		m.lastErr = msg.err
		m.lastPass = msg.when
		m.passes++
		return m, m.tickCmd()

	case watchTickMsg:
		if m.refreshing {
			return m, m.tickCmd()
		}
		m.refreshing = true
		return m, m.refreshCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m watchModel) View() string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(cli.ColorTextDim))

	var b []byte
	b = append(b, cli.RenderTitle("ORBURN WATCH")...)
	b = append(b, '\n')

	if !m.haveSnap {
		b = append(b, fmt.Sprintf("  %s resolving generations...\n", m.spinner.View())...)
		return string(b)
	}

	b = append(b, "  "...)
	b = append(b, cli.RenderStatusline(cli.Statusline{
		Model:              m.snap.LastModel,
		TotalCost:          m.snap.TotalCost,
		TotalCacheDiscount: m.snap.TotalCacheDiscount,
		KeyUsage:           m.snap.KeyUsage,
		KeyLimit:           m.snap.KeyLimit,
		Credits:            m.snap.Credits,
		Resolved:           m.snap.Resolved,
		Failed:             m.snap.Failed,
		Icons:              m.icons,
	})...)
	b = append(b, '\n', '\n')

	status := fmt.Sprintf("updated %s", cli.FormatTimeAgo(m.lastPass, time.Now()))
	if m.refreshing {
		status = m.spinner.View() + " refreshing"
	}
	b = append(b, "  "...)
	b = append(b, dim.Render(fmt.Sprintf("session %s  ·  pass %d (+%d resolved)  ·  %s",
		truncateID(m.sessionID), m.passes, m.snap.Resolved, status))...)
	b = append(b, '\n')

	if m.lastErr != nil {
		b = append(b, "  "...)
		b = append(b, dim.Render("state not persisted: "+m.lastErr.Error())...)
		b = append(b, '\n')
	}

	b = append(b, '\n')
	b = append(b, "  "...)
	b = append(b, dim.Render("r refresh · q quit")...)
	b = append(b, '\n')

	return string(b)
}
