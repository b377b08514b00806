// Package simulator replays time-ordered bars across all symbols
// deterministically, opening positions from strategy signals and closing
// them through the exit engine while tracking cash and per-strategy
// statistics.
package simulator

import (
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/deanturpin/lft/internal/exitengine"
	"github.com/deanturpin/lft/internal/logger"
	"github.com/deanturpin/lft/internal/series"
	"github.com/deanturpin/lft/internal/strategy"
	"github.com/deanturpin/lft/internal/types"
	"github.com/deanturpin/lft/pkg/errors"
)

// Result is the outcome of one simulation run, exposed to the reporting
// layer.
type Result struct {
	InitialCapital float64                         `yaml:"initial_capital" json:"initial_capital"`
	FinalCash      float64                         `yaml:"final_cash" json:"final_cash"`
	Ticks          int                             `yaml:"ticks" json:"ticks"`
	StrategyStats  map[string]*types.StrategyStats `yaml:"strategy_stats" json:"strategy_stats"`
	Trades         []types.Trade                   `yaml:"trades" json:"trades"`
}

// TotalPnL returns final cash minus initial capital.
func (r *Result) TotalPnL() float64 {
	return r.FinalCash - r.InitialCapital
}

// Simulator runs the replay loop. It is single-threaded and deterministic:
// identical bar input yields identical results.
type Simulator struct {
	cfg      Config
	registry *strategy.Registry
	enabled  map[string]bool
	log      *logger.Logger
	progress func(done, total int)
}

// New creates a simulator. The enabled map selects which strategies may open
// positions; a nil map enables all of them. The registry's fixed order still
// decides tie-breaks among enabled strategies.
func New(cfg Config, enabled map[string]bool, log *logger.Logger) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Simulator{
		cfg:      cfg,
		registry: strategy.NewRegistry(cfg.Signals),
		enabled:  enabled,
		log:      log,
		progress: nil,
	}, nil
}

// SetProgress installs a per-tick progress callback.
func (s *Simulator) SetProgress(fn func(done, total int)) {
	s.progress = fn
}

// Run replays the given bars. Tick i is processed for every symbol before
// tick i+1, preventing look-ahead bias across symbols.
func (s *Simulator) Run(bars map[string][]types.Bar) (*Result, error) {
	if len(bars) == 0 {
		return nil, errors.New(errors.ErrCodeNoBars, "no bar data to replay")
	}

	clamped := s.clampWindow(bars)

	// Sorted symbol order keeps the replay reproducible regardless of map
	// iteration order.
	symbols := make([]string, 0, len(clamped))
	for symbol := range clamped {
		symbols = append(symbols, symbol)
	}

	sort.Strings(symbols)

	maxBars := 0
	for _, symbolBars := range clamped {
		if len(symbolBars) > maxBars {
			maxBars = len(symbolBars)
		}
	}

	allSeries := make(map[string]*series.PriceSeries, len(symbols))
	for _, symbol := range symbols {
		allSeries[symbol] = series.NewPriceSeries()
	}

	result := &Result{
		InitialCapital: s.cfg.InitialCapital,
		FinalCash:      s.cfg.InitialCapital,
		Ticks:          maxBars,
		StrategyStats:  make(map[string]*types.StrategyStats),
		Trades:         nil,
	}

	for _, name := range s.registry.Names() {
		result.StrategyStats[name] = &types.StrategyStats{Name: name}
	}

	positions := make(map[string]*types.Position)

	for tick := 0; tick < maxBars; tick++ {
		// First pass: ingest tick i for every symbol so cross-sectional
		// metrics see a consistent snapshot.
		for _, symbol := range symbols {
			symbolBars := clamped[symbol]
			if tick < len(symbolBars) {
				bar := symbolBars[tick]
				allSeries[symbol].AddBar(bar.Close, bar.High, bar.Low, bar.Volume)
			}
		}

		// Second pass: exits, then entries, per symbol.
		for _, symbol := range symbols {
			symbolBars := clamped[symbol]
			if tick >= len(symbolBars) {
				continue
			}

			bar := symbolBars[tick]

			if pos, ok := positions[symbol]; ok {
				closed, err := s.processExit(pos, bar, tick, allSeries[symbol], result)
				if err != nil {
					return nil, err
				}

				if closed {
					delete(positions, symbol)
				}

				continue
			}

			if err := s.processEntry(symbol, bar, tick, allSeries, positions, result); err != nil {
				return nil, err
			}
		}

		if s.progress != nil {
			s.progress(tick+1, maxBars)
		}
	}

	// Force-close whatever is still open at the last available price. These
	// are tagged EndOfData and never conflated with price exits.
	for _, symbol := range symbols {
		pos, ok := positions[symbol]
		if !ok {
			continue
		}

		symbolBars := clamped[symbol]
		lastBar := symbolBars[len(symbolBars)-1]

		s.closePosition(pos, lastBar, maxBars-1, types.ExitReasonEndOfData, result)
		delete(positions, symbol)
	}

	return result, nil
}

// clampWindow drops bars outside the configured start/end window. Gaps are
// not filled; they simply shrink the effective rolling window.
func (s *Simulator) clampWindow(bars map[string][]types.Bar) map[string][]types.Bar {
	if s.cfg.StartTime.IsNone() && s.cfg.EndTime.IsNone() {
		return bars
	}

	clamped := make(map[string][]types.Bar, len(bars))

	for symbol, symbolBars := range bars {
		kept := make([]types.Bar, 0, len(symbolBars))

		for _, bar := range symbolBars {
			if s.cfg.StartTime.IsSome() && bar.Time.Before(s.cfg.StartTime.Unwrap()) {
				continue
			}

			if s.cfg.EndTime.IsSome() && bar.Time.After(s.cfg.EndTime.Unwrap()) {
				continue
			}

			kept = append(kept, bar)
		}

		if len(kept) > 0 {
			clamped[symbol] = kept
		}
	}

	return clamped
}

// processExit updates the peak and asks the exit engine whether to close.
// Returns true when the position was closed.
func (s *Simulator) processExit(pos *types.Position, bar types.Bar, tick int, symbolSeries *series.PriceSeries, result *Result) (bool, error) {
	// Peak tracks the mid price; the exit itself settles at bid.
	pos.UpdatePeak(bar.Close)

	class := types.ClassifySymbol(pos.Symbol)
	bid := s.cfg.Spreads.Bid(bar.Close, class)

	noise := symbolSeries.RecentNoise(series.DefaultNoisePeriods)
	exitCfg := s.cfg.Exits.Adaptive(noise)

	reason, err := exitengine.Evaluate(pos.EntryPrice, pos.PeakPrice, bid, exitCfg)
	if err != nil {
		return false, errors.Wrapf(errors.ErrCodeSimulationFailed, err, "exit evaluation failed for %s", pos.Symbol)
	}

	if reason == types.ExitReasonHolding && s.cfg.MaxHoldBars > 0 && pos.HoldingBars(tick) >= s.cfg.MaxHoldBars {
		reason = types.ExitReasonTimedOut
	}

	if !reason.IsTerminal() {
		return false, nil
	}

	s.closePosition(pos, bar, tick, reason, result)

	return true, nil
}

// closePosition settles at bid, updates cash and statistics, and records the
// closed trade.
func (s *Simulator) closePosition(pos *types.Position, bar types.Bar, tick int, reason types.ExitReason, result *Result) {
	class := types.ClassifySymbol(pos.Symbol)
	exitPrice := s.cfg.Spreads.Bid(bar.Close, class)

	pnl := types.TradePnL(pos.EntryPrice, exitPrice, pos.Quantity)

	result.FinalCash += pos.Quantity * exitPrice

	if stats, ok := result.StrategyStats[pos.StrategyName]; ok {
		stats.RecordClose(pnl)
	}

	result.Trades = append(result.Trades, types.Trade{
		ID:           uuid.NewString(),
		Symbol:       pos.Symbol,
		StrategyName: pos.StrategyName,
		EntryPrice:   pos.EntryPrice,
		ExitPrice:    exitPrice,
		Quantity:     pos.Quantity,
		PnL:          pnl,
		ExitReason:   reason,
		EntryTime:    pos.EntryTime,
		ExitTime:     bar.Time,
		HoldingBars:  pos.HoldingBars(tick),
	})

	s.log.Debug("position closed",
		zap.String("symbol", pos.Symbol),
		zap.String("strategy", pos.StrategyName),
		zap.String("reason", string(reason)),
		zap.Float64("pnl", pnl),
	)
}

// processEntry evaluates the enabled strategies in fixed order and opens at
// most one position.
func (s *Simulator) processEntry(symbol string, bar types.Bar, tick int, allSeries map[string]*series.PriceSeries, positions map[string]*types.Position, result *Result) error {
	ctx := strategy.Context{
		Series:    allSeries[symbol],
		AllSeries: allSeries,
	}

	// Count every firing signal before executing any, so the statistics
	// reflect signals that lost the tie-break too.
	var firing []types.StrategySignal

	for _, evaluator := range s.registry.Evaluators() {
		if !s.strategyEnabled(evaluator.Name()) {
			continue
		}

		signal := evaluator.Evaluate(ctx)
		if signal.ShouldBuy {
			result.StrategyStats[signal.StrategyName].SignalsGenerated++
			firing = append(firing, signal)
		}
	}

	for _, signal := range firing {
		if signal.Confidence < s.cfg.MinConfidence {
			continue
		}

		if result.FinalCash < s.cfg.Notional {
			continue
		}

		class := types.ClassifySymbol(symbol)

		entryPrice := s.cfg.Spreads.Ask(bar.Close, class)
		if entryPrice <= 0 {
			return errors.Newf(errors.ErrCodeInvalidPrice, "non-positive entry price %v for %s", entryPrice, symbol)
		}

		quantity := s.cfg.Notional / entryPrice

		pos := &types.Position{
			Symbol:       symbol,
			StrategyName: signal.StrategyName,
			EntryPrice:   entryPrice,
			Quantity:     quantity,
			EntryTime:    bar.Time,
			EntryIndex:   tick,
			PeakPrice:    entryPrice,
		}

		if err := pos.Validate(); err != nil {
			return err
		}

		positions[symbol] = pos
		result.FinalCash -= quantity * entryPrice
		result.StrategyStats[signal.StrategyName].TradesExecuted++

		s.log.Debug("position opened",
			zap.String("symbol", symbol),
			zap.String("strategy", signal.StrategyName),
			zap.Float64("entry_price", entryPrice),
			zap.Float64("confidence", signal.Confidence),
			zap.String("reason", signal.Reason),
		)

		// Only one position per symbol; the first enabled strategy to fire
		// wins the tie-break.
		break
	}

	return nil
}

func (s *Simulator) strategyEnabled(name string) bool {
	if s.enabled == nil {
		return true
	}

	return s.enabled[name]
}
