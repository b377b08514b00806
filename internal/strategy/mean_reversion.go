package strategy

import (
	"fmt"

	"github.com/deanturpin/lft/internal/types"
)

// Deviation below the moving average, in standard deviations, that counts as
// oversold.
const meanReversionDeviation = -2.0

// Volatility below this is treated as flat; mean reversion does not apply.
const minVolatility = 1e-4

// MeanReversion buys when price falls well below its moving average.
type MeanReversion struct {
	cfg Config
}

// NewMeanReversion creates the mean-reversion evaluator.
func NewMeanReversion(cfg Config) *MeanReversion {
	return &MeanReversion{cfg: cfg}
}

// Name returns the strategy name.
func (m *MeanReversion) Name() string {
	return "mean_reversion"
}

// Evaluate fires when price sits more than two standard deviations below the
// 20-bar moving average.
func (m *MeanReversion) Evaluate(ctx Context) types.StrategySignal {
	signal := types.NoSignal(m.Name())

	s := ctx.Series
	if s.Len() < longMAPeriods {
		return signal
	}

	price := s.LatestClose()
	ma := s.MovingAverage(longMAPeriods)
	stdDev := s.Volatility()

	if stdDev < minVolatility {
		return signal
	}

	deviation := (price - ma) / stdDev
	if deviation < meanReversionDeviation {
		signal.ShouldBuy = true
		signal.Reason = fmt.Sprintf("mean reversion: %.2f std devs below MA", deviation)
	}

	return attenuate(signal, s, m.cfg)
}
