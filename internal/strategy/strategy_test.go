package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deanturpin/lft/internal/series"
	"github.com/deanturpin/lft/internal/types"
	"github.com/deanturpin/lft/pkg/errors"
)

// seriesOf builds a series from flat bars (high=low=close) at equal volume.
func seriesOf(closes ...float64) *series.PriceSeries {
	s := series.NewPriceSeries()
	for _, close := range closes {
		s.AddBar(close, close, close, 1000)
	}

	return s
}

// soloContext wraps a single series as both the symbol's series and the
// whole tracked universe.
func soloContext(s *series.PriceSeries) Context {
	return Context{
		Series:    s,
		AllSeries: map[string]*series.PriceSeries{"TEST": s},
	}
}

func TestRegistryOrder(t *testing.T) {
	registry := NewRegistry(DefaultConfig())

	assert.Equal(t, []string{
		"dip",
		"ma_crossover",
		"mean_reversion",
		"volatility_breakout",
		"relative_strength",
		"volume_surge",
	}, registry.Names())
}

func TestRegistryGet(t *testing.T) {
	registry := NewRegistry(DefaultConfig())

	evaluator, err := registry.Get("mean_reversion")
	require.NoError(t, err)
	assert.Equal(t, "mean_reversion", evaluator.Name())

	_, err = registry.Get("momentum")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeStrategyNotFound))
}

func TestAttenuateLeavesNonFiringSignal(t *testing.T) {
	s := seriesOf(100, 97)
	sig := types.NoSignal("dip")

	out := attenuate(sig, s, DefaultConfig())

	assert.Equal(t, sig, out)
}

func TestAttenuateNoisePenalty(t *testing.T) {
	// Each bar spans 2% of its close, so recent noise is 0.02 and the
	// noise-scaled minimum target is 0.06 against a 0.02 profit target.
	s := series.NewPriceSeries()
	for i := 0; i < series.DefaultNoisePeriods; i++ {
		s.AddBar(100, 101, 99, 1000)
	}

	sig := types.StrategySignal{ShouldBuy: true, StrategyName: "dip", Confidence: 1.0}
	out := attenuate(sig, s, DefaultConfig())

	assert.InDelta(t, 1.0/3.0, out.Confidence, 1e-9)
}

func TestAttenuateClampsToUnitInterval(t *testing.T) {
	s := seriesOf(100, 97)
	sig := types.StrategySignal{ShouldBuy: true, StrategyName: "dip", Confidence: 5.0}

	out := attenuate(sig, s, DefaultConfig())

	assert.LessOrEqual(t, out.Confidence, 1.0)
	assert.GreaterOrEqual(t, out.Confidence, 0.0)
}
