// Package strategy implements the buy-signal evaluators. Each evaluator is a
// pure function of one symbol's price series (relative strength additionally
// reads a snapshot of every tracked series) and can be tested against a
// constructed series with no network or wall-clock dependency.
package strategy

import (
	"math"

	"github.com/deanturpin/lft/internal/series"
	"github.com/deanturpin/lft/internal/types"
	"github.com/deanturpin/lft/pkg/errors"
)

// Context carries the inputs for one evaluation call.
type Context struct {
	// Series is the evaluated symbol's price series.
	Series *series.PriceSeries
	// AllSeries is a snapshot of every tracked symbol's series, keyed by
	// symbol. Only relative strength reads it.
	AllSeries map[string]*series.PriceSeries
}

// Evaluator produces a buy signal from a price series.
type Evaluator interface {
	// Name returns the strategy name used in configs and statistics.
	Name() string
	// Evaluate returns the signal for the current tick.
	Evaluate(ctx Context) types.StrategySignal
}

// Config holds the signal thresholds. It is an explicit immutable value
// passed in at construction so concurrent simulation runs can use different
// parameters.
type Config struct {
	// DipThreshold is the single-bar percent drop that triggers the dip
	// strategy. Must be negative.
	DipThreshold float64 `yaml:"dip_threshold" json:"dip_threshold" validate:"lt=0"`
	// RelativeStrengthMargin is the percent by which a symbol must beat the
	// cross-sectional mean return.
	RelativeStrengthMargin float64 `yaml:"relative_strength_margin" json:"relative_strength_margin" validate:"gt=0"`
	// VolumeSurgeRatio is the multiple of average volume that counts as a
	// surge.
	VolumeSurgeRatio float64 `yaml:"volume_surge_ratio" json:"volume_surge_ratio" validate:"gt=0"`
	// ProfitTarget is the nominal profit fraction a trade must clear. Used
	// for the noise-adjusted confidence comparison.
	ProfitTarget float64 `yaml:"profit_target" json:"profit_target" validate:"gt=0"`
	// SignalToNoise is the minimum ratio of profit target to intrabar
	// noise. Below it, confidence is scaled down proportionally.
	SignalToNoise float64 `yaml:"signal_to_noise" json:"signal_to_noise" validate:"gt=0"`
}

// DefaultConfig returns the thresholds used by the live trader.
func DefaultConfig() Config {
	return Config{
		DipThreshold:           -2.0,
		RelativeStrengthMargin: 0.5,
		VolumeSurgeRatio:       3.0,
		ProfitTarget:           0.02,
		SignalToNoise:          3.0,
	}
}

// Registry holds the evaluators in their fixed order. The order defines
// tie-break priority: when several strategies fire for the same symbol on
// the same tick, only the first opens a position.
type Registry struct {
	evaluators []Evaluator
}

// NewRegistry builds the full registry in canonical order.
func NewRegistry(cfg Config) *Registry {
	return &Registry{
		evaluators: []Evaluator{
			NewDip(cfg),
			NewMACrossover(cfg),
			NewMeanReversion(cfg),
			NewVolatilityBreakout(cfg),
			NewRelativeStrength(cfg),
			NewVolumeSurge(cfg),
		},
	}
}

// Evaluators returns the evaluators in priority order.
func (r *Registry) Evaluators() []Evaluator {
	return r.evaluators
}

// Names returns the strategy names in priority order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.evaluators))
	for _, e := range r.evaluators {
		names = append(names, e.Name())
	}

	return names
}

// Get returns the evaluator with the given name.
func (r *Registry) Get(name string) (Evaluator, error) {
	for _, e := range r.evaluators {
		if e.Name() == name {
			return e, nil
		}
	}

	return nil, errors.Newf(errors.ErrCodeStrategyNotFound, "strategy %s not found", name)
}

// attenuate applies the volume-factor penalty and the noise-adjusted
// threshold comparison to a firing signal. When the noise-scaled minimum
// target exceeds the nominal profit target, confidence shrinks
// proportionally instead of suppressing the signal outright.
func attenuate(sig types.StrategySignal, s *series.PriceSeries, cfg Config) types.StrategySignal {
	if !sig.ShouldBuy {
		return sig
	}

	sig.Confidence /= s.VolumeFactor()

	noise := s.RecentNoise(series.DefaultNoisePeriods)

	minTarget := noise * cfg.SignalToNoise
	if minTarget > cfg.ProfitTarget {
		sig.Confidence *= cfg.ProfitTarget / minTarget
	}

	sig.Confidence = math.Max(0, math.Min(1, sig.Confidence))

	return sig
}
