package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Statusline holds everything the one-line render needs.
type Statusline struct {
	Model              string // raw slug; prettified here
	TotalCost          float64
	TotalCacheDiscount float64
	KeyUsage           *float64
	KeyLimit           *float64
	Credits            *float64
	Resolved           int
	Failed             int
	Icons              bool
}

var (
	slModelStyle = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	slCostStyle  = lipgloss.NewStyle().Foreground(ColorGreen)
	slSaveStyle  = lipgloss.NewStyle().Foreground(ColorBlue)
	slKeyStyle   = lipgloss.NewStyle().Foreground(ColorAccent)
	slWarnStyle  = lipgloss.NewStyle().Foreground(ColorOrange)
	slSepStyle   = lipgloss.NewStyle().Foreground(ColorTextDim)
)

// RenderStatusline assembles the single status line printed per render.
// Segments degrade independently: anything unknown is simply omitted, so a
// partially failed run still produces useful output.
func RenderStatusline(s Statusline) string {
	var segs []string

	if s.Model != "" {
		segs = append(segs, slModelStyle.Render(PrettyModelName(s.Model)))
	}

	cost := FormatUSD(s.TotalCost)
	if s.Icons {
		cost = "⚡ " + cost
	}
	segs = append(segs, slCostStyle.Render(cost))

	if s.TotalCacheDiscount < 0 {
		segs = append(segs, slSaveStyle.Render(fmt.Sprintf("saved %s", FormatUSD(-s.TotalCacheDiscount))))
	}

	if s.KeyUsage != nil {
		if s.KeyLimit != nil {
			// Limited key: show what's left of the limit.
			segs = append(segs, slKeyStyle.Render(fmt.Sprintf("key %s left", FormatUSD(*s.KeyLimit-*s.KeyUsage))))
		} else {
			// Unlimited key: only spend is meaningful.
			segs = append(segs, slKeyStyle.Render(fmt.Sprintf("key %s used", FormatUSD(*s.KeyUsage))))
		}
	}

	if s.Credits != nil {
		segs = append(segs, slKeyStyle.Render(fmt.Sprintf("credits %s", FormatUSD(*s.Credits))))
	}

	if s.Failed > 0 {
		segs = append(segs, slWarnStyle.Render(fmt.Sprintf("%d pending", s.Failed)))
	}

	return strings.Join(segs, slSepStyle.Render(" · "))
}
