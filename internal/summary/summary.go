// Package summary renders simulation and calibration results as text for
// the surrounding CLI layer. No presentation logic lives in the core.
package summary

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/deanturpin/lft/internal/calibrate"
	"github.com/deanturpin/lft/internal/simulator"
)

// Render formats a simulation result as a capital summary plus a
// per-strategy table.
func Render(result *simulator.Result) string {
	p := message.NewPrinter(language.English)

	var b strings.Builder

	totalPnL := result.TotalPnL()
	returnPct := totalPnL / result.InitialCapital * 100.0

	p.Fprintf(&b, "Initial capital: $%.2f\n", result.InitialCapital)
	p.Fprintf(&b, "Final capital:   $%.2f (%+.2f%%)\n", result.FinalCash, returnPct)
	p.Fprintf(&b, "Total P&L:       $%+.2f\n", totalPnL)
	p.Fprintf(&b, "Ticks replayed:  %d\n", result.Ticks)
	p.Fprintf(&b, "Trades closed:   %d\n\n", len(result.Trades))

	p.Fprintf(&b, "%-20s %8s %9s %7s %6s %9s %12s\n",
		"STRATEGY", "SIGNALS", "EXECUTED", "CLOSED", "WINS", "WIN RATE", "NET P&L")

	names := make([]string, 0, len(result.StrategyStats))
	for name := range result.StrategyStats {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		stats := result.StrategyStats[name]
		p.Fprintf(&b, "%-20s %8d %9d %7d %6d %8.1f%% %12.2f\n",
			stats.Name, stats.SignalsGenerated, stats.TradesExecuted,
			stats.TradesClosed, stats.ProfitableTrades, stats.WinRate(), stats.NetProfit())
	}

	return b.String()
}

// RenderCalibration formats an enable/disable table for a calibration
// result.
func RenderCalibration(result *calibrate.Result) string {
	p := message.NewPrinter(language.English)

	var b strings.Builder

	enabledCount := 0

	for _, cfg := range result.Configs {
		status := "DISABLED"
		if cfg.Enabled {
			status = "ENABLED"
			enabledCount++
		}

		p.Fprintf(&b, "%-20s %-8s trades=%-4d P&L=$%-10.2f WR=%5.1f%%\n",
			cfg.Name, status, cfg.TradesClosed, cfg.NetProfit, cfg.WinRate)
	}

	p.Fprintf(&b, "\n%d of %d strategies enabled\n", enabledCount, len(result.Configs))

	return b.String()
}
