package strategy

import (
	"fmt"

	"github.com/deanturpin/lft/internal/types"
)

const (
	shortMAPeriods = 5
	longMAPeriods  = 20
)

// MACrossover buys when the short moving average crosses above the long one.
type MACrossover struct {
	cfg Config
}

// NewMACrossover creates the moving-average crossover evaluator.
func NewMACrossover(cfg Config) *MACrossover {
	return &MACrossover{cfg: cfg}
}

// Name returns the strategy name.
func (m *MACrossover) Name() string {
	return "ma_crossover"
}

// Evaluate fires only on a true crossing: the short MA was at or below the
// long MA on the previous bar and is above it now. Merely being above does
// not trigger.
func (m *MACrossover) Evaluate(ctx Context) types.StrategySignal {
	signal := types.NoSignal(m.Name())

	s := ctx.Series
	if s.Len() < longMAPeriods+1 {
		return signal
	}

	maShort := s.MovingAverage(shortMAPeriods)
	maLong := s.MovingAverage(longMAPeriods)
	prevShort := s.MovingAverageBefore(shortMAPeriods)
	prevLong := s.MovingAverageBefore(longMAPeriods)

	if prevShort <= prevLong && maShort > maLong {
		signal.ShouldBuy = true
		signal.Reason = fmt.Sprintf("MA crossover: %.2f > %.2f", maShort, maLong)
	}

	return attenuate(signal, s, m.cfg)
}
