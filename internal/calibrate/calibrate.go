// Package calibrate replays each strategy in isolation over historical bars
// to decide which strategies are enabled for the session.
package calibrate

import (
	"sync"

	"github.com/deanturpin/lft/internal/logger"
	"github.com/deanturpin/lft/internal/simulator"
	"github.com/deanturpin/lft/internal/strategy"
	"github.com/deanturpin/lft/internal/types"
	"github.com/deanturpin/lft/pkg/errors"
)

// DefaultLookbackDays is the historical window the caller should fetch for
// calibration.
const DefaultLookbackDays = 30

// Entries during calibration require this confidence floor, so a strategy
// is judged on its cleaner signals.
const calibrationConfidence = 0.7

// Config controls the enable decision.
type Config struct {
	// ProfitBar is the net profit a strategy must exceed to be enabled.
	ProfitBar float64 `yaml:"profit_bar" json:"profit_bar"`
	// MinTrades is the minimum closed-trade count; a strategy that barely
	// traded proves nothing either way.
	MinTrades int `yaml:"min_trades" json:"min_trades" validate:"gte=0"`
	// Simulator is the replay parameter set used for each isolated run.
	Simulator simulator.Config `yaml:"simulator" json:"simulator"`
}

// DefaultConfig enables strategies with positive net profit over at least
// three closed trades.
func DefaultConfig() Config {
	return Config{
		ProfitBar: 0,
		MinTrades: 3,
		Simulator: simulator.DefaultConfig(),
	}
}

// Result maps strategy names to their enable decision and carries the
// session strategy configs derived from each isolated replay.
type Result struct {
	Enabled map[string]bool        `yaml:"enabled" json:"enabled"`
	Configs []types.StrategyConfig `yaml:"configs" json:"configs"`
}

// Run replays every registered strategy in isolation over the given bars
// and enables those clearing the profit bar. It is a pure function of its
// input: identical bars yield identical results, and it has no side effects
// beyond the returned value.
//
// Replays run concurrently; each owns an isolated simulator, series and
// statistics, and results are merged order-independently afterwards.
func Run(bars map[string][]types.Bar, cfg Config, log *logger.Logger) (*Result, error) {
	if len(bars) == 0 {
		return nil, errors.New(errors.ErrCodeNoBars, "no historical bars to calibrate on")
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	names := strategy.NewRegistry(cfg.Simulator.Signals).Names()

	simCfg := cfg.Simulator
	simCfg.MinConfidence = calibrationConfidence

	type replayOutcome struct {
		name  string
		stats *types.StrategyStats
		err   error
	}

	outcomes := make([]replayOutcome, len(names))

	var wg sync.WaitGroup

	for i, name := range names {
		wg.Add(1)

		go func(i int, name string) {
			defer wg.Done()

			stats, err := replayOne(name, bars, simCfg)
			outcomes[i] = replayOutcome{name: name, stats: stats, err: err}
		}(i, name)
	}

	wg.Wait()

	result := &Result{
		Enabled: make(map[string]bool, len(names)),
		Configs: make([]types.StrategyConfig, 0, len(names)),
	}

	for _, outcome := range outcomes {
		if outcome.err != nil {
			return nil, errors.Wrapf(errors.ErrCodeCalibrationFailed, outcome.err, "replay failed for %s", outcome.name)
		}

		stats := outcome.stats
		enabled := stats.NetProfit() > cfg.ProfitBar && stats.TradesClosed >= cfg.MinTrades

		result.Enabled[outcome.name] = enabled
		result.Configs = append(result.Configs, types.StrategyConfig{
			Name:            outcome.name,
			Enabled:         enabled,
			TakeProfitPct:   simCfg.Exits.TakeProfitPct,
			StopLossPct:     simCfg.Exits.StopLossPct,
			TrailingStopPct: simCfg.Exits.TrailingStopPct,
			NetProfit:       stats.NetProfit(),
			WinRate:         stats.WinRate(),
			TradesClosed:    stats.TradesClosed,
		})

		log.Info("calibrated strategy: " + outcome.name)
	}

	return result, nil
}

// replayOne runs the simulator with a single strategy active and returns
// that strategy's statistics.
func replayOne(name string, bars map[string][]types.Bar, simCfg simulator.Config) (*types.StrategyStats, error) {
	enabled := map[string]bool{name: true}

	sim, err := simulator.New(simCfg, enabled, logger.NewNopLogger())
	if err != nil {
		return nil, err
	}

	result, err := sim.Run(bars)
	if err != nil {
		return nil, err
	}

	stats, ok := result.StrategyStats[name]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeStrategyNotFound, "no statistics for strategy %s", name)
	}

	return stats, nil
}
