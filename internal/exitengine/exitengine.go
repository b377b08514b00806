// Package exitengine decides when an open position must close. The decision
// function is pure: entry, peak and current price in, exit reason out.
package exitengine

import (
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/deanturpin/lft/internal/types"
	"github.com/deanturpin/lft/pkg/errors"
)

// MinSignalToNoise is the minimum multiple of recent intrabar noise that the
// effective take-profit and stop-loss must clear. Tighter thresholds would
// fire on noise alone, not signal.
const MinSignalToNoise = 3.0

// Config holds the exit thresholds for one strategy, as fractions: 0.02
// means 2%.
type Config struct {
	TakeProfitPct   float64 `yaml:"take_profit_pct" json:"take_profit_pct" validate:"gt=0,lt=1"`
	StopLossPct     float64 `yaml:"stop_loss_pct" json:"stop_loss_pct" validate:"gt=0,lt=1"`
	TrailingStopPct float64 `yaml:"trailing_stop_pct" json:"trailing_stop_pct" validate:"gt=0,lt=1"`
}

// DefaultConfig returns the canonical 2% / 2% / 1% exit thresholds.
func DefaultConfig() Config {
	return Config{
		TakeProfitPct:   0.02,
		StopLossPct:     0.02,
		TrailingStopPct: 0.01,
	}
}

// Validate validates the exit thresholds.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidThreshold, "invalid exit config", err)
	}

	return nil
}

// PnLPercent returns (current-entry)/entry as a fraction. A non-positive or
// non-finite entry price is a distinct error, never a NaN or infinite P&L.
func PnLPercent(entryPrice, currentPrice float64) (float64, error) {
	if entryPrice <= 0 || math.IsNaN(entryPrice) || math.IsInf(entryPrice, 0) {
		return 0, errors.Newf(errors.ErrCodeInvalidPrice, "entry price must be positive, got %v", entryPrice)
	}

	if math.IsNaN(currentPrice) || math.IsInf(currentPrice, 0) {
		return 0, errors.Newf(errors.ErrCodeInvalidPrice, "current price must be finite, got %v", currentPrice)
	}

	return (currentPrice - entryPrice) / entryPrice, nil
}

// Evaluate maps a position's entry, peak and current price to an exit
// reason, in strict priority order: stop loss, take profit, trailing stop,
// holding. The trailing stop uses a strict inequality: price exactly at
// peak*(1-trailing) does not trigger.
func Evaluate(entryPrice, peakPrice, currentPrice float64, cfg Config) (types.ExitReason, error) {
	pnl, err := PnLPercent(entryPrice, currentPrice)
	if err != nil {
		return types.ExitReasonHolding, err
	}

	switch {
	case pnl <= -cfg.StopLossPct:
		return types.ExitReasonStopLoss, nil
	case pnl >= cfg.TakeProfitPct:
		return types.ExitReasonTakeProfit, nil
	case currentPrice < peakPrice*(1.0-cfg.TrailingStopPct):
		return types.ExitReasonTrailingStop, nil
	default:
		return types.ExitReasonHolding, nil
	}
}

// AdaptiveTakeProfit widens the profit target when intrabar noise is high:
// the effective target is never tighter than MinSignalToNoise times the
// noise.
func AdaptiveTakeProfit(base, noise float64) float64 {
	return math.Max(base, noise*MinSignalToNoise)
}

// AdaptiveStopLoss widens the stop when intrabar noise is high, mirroring
// AdaptiveTakeProfit.
func AdaptiveStopLoss(base, noise float64) float64 {
	return math.Max(base, noise*MinSignalToNoise)
}

// Adaptive returns a copy of cfg with the take-profit and stop-loss widened
// for the given noise level. The trailing stop is left as configured.
func (c Config) Adaptive(noise float64) Config {
	c.TakeProfitPct = AdaptiveTakeProfit(c.TakeProfitPct, noise)
	c.StopLossPct = AdaptiveStopLoss(c.StopLossPct, noise)

	return c
}
