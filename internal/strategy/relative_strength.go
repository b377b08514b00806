package strategy

import (
	"fmt"

	"github.com/deanturpin/lft/internal/types"
)

// RelativeStrength buys symbols outperforming the cross-sectional mean.
type RelativeStrength struct {
	cfg Config
}

// NewRelativeStrength creates the relative-strength evaluator.
func NewRelativeStrength(cfg Config) *RelativeStrength {
	return &RelativeStrength{cfg: cfg}
}

// Name returns the strategy name.
func (r *RelativeStrength) Name() string {
	return "relative_strength"
}

// Evaluate fires when the symbol's latest return beats the mean return of
// all tracked symbols by the configured margin. Symbols without history are
// excluded from the mean.
func (r *RelativeStrength) Evaluate(ctx Context) types.StrategySignal {
	signal := types.NoSignal(r.Name())

	s := ctx.Series
	if !s.HasHistory() || len(ctx.AllSeries) == 0 {
		return signal
	}

	totalChange := 0.0
	count := 0

	for _, other := range ctx.AllSeries {
		if other.HasHistory() {
			totalChange += other.ChangePercent()
			count++
		}
	}

	if count == 0 {
		return signal
	}

	marketAverage := totalChange / float64(count)

	if s.ChangePercent() > marketAverage+r.cfg.RelativeStrengthMargin {
		signal.ShouldBuy = true
		signal.Reason = fmt.Sprintf("relative strength: %.2f%% vs market %.2f%%", s.ChangePercent(), marketAverage)
	}

	return attenuate(signal, s, r.cfg)
}
