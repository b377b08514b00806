package strategy

import (
	"fmt"

	"github.com/deanturpin/lft/internal/types"
)

// Fraction of the window volatility the close must clear the recent high by.
const breakoutMargin = 0.5

// VolatilityBreakout buys when price escapes its recent range by more than a
// volatility-scaled margin.
type VolatilityBreakout struct {
	cfg Config
}

// NewVolatilityBreakout creates the volatility-breakout evaluator.
func NewVolatilityBreakout(cfg Config) *VolatilityBreakout {
	return &VolatilityBreakout{cfg: cfg}
}

// Name returns the strategy name.
func (v *VolatilityBreakout) Name() string {
	return "volatility_breakout"
}

// Evaluate fires when the latest close exceeds the highest high of the
// previous 20 bars by more than half the window's standard deviation. The
// margin keeps a tight consolidation from triggering on noise alone.
func (v *VolatilityBreakout) Evaluate(ctx Context) types.StrategySignal {
	signal := types.NoSignal(v.Name())

	s := ctx.Series
	if s.Len() < longMAPeriods+1 {
		return signal
	}

	recentHigh := s.RecentHigh(longMAPeriods)
	margin := s.Volatility() * breakoutMargin
	price := s.LatestClose()

	if price > recentHigh+margin {
		signal.ShouldBuy = true
		signal.Reason = fmt.Sprintf("breakout: %.2f above recent high %.2f by > %.4f", price, recentHigh, margin)
	}

	return attenuate(signal, s, v.cfg)
}
