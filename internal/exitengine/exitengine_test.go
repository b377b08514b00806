package exitengine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/deanturpin/lft/internal/types"
	"github.com/deanturpin/lft/pkg/errors"
)

type ExitEngineTestSuite struct {
	suite.Suite
	cfg Config
}

func TestExitEngineSuite(t *testing.T) {
	suite.Run(t, new(ExitEngineTestSuite))
}

func (suite *ExitEngineTestSuite) SetupTest() {
	suite.cfg = DefaultConfig()
}

func (suite *ExitEngineTestSuite) TestPnLPercent() {
	pnl, err := PnLPercent(100, 102)
	suite.Require().NoError(err)
	suite.InDelta(0.02, pnl, 1e-9)

	pnl, err = PnLPercent(100, 98)
	suite.Require().NoError(err)
	suite.InDelta(-0.02, pnl, 1e-9)
}

func (suite *ExitEngineTestSuite) TestPnLPercentRejectsBadEntry() {
	for _, entry := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := PnLPercent(entry, 100)
		suite.Require().Error(err)
		suite.True(errors.HasCode(err, errors.ErrCodeInvalidPrice))
	}
}

func (suite *ExitEngineTestSuite) TestPnLPercentRejectsNonFiniteCurrent() {
	_, err := PnLPercent(100, math.NaN())
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPrice))
}

// Entry at ask 100.01 on a $100 mid, stock spread. The mid must rise to
// roughly 102.03 before the bid-side exit clears the 2% take-profit.
func (suite *ExitEngineTestSuite) TestTakeProfitAfterSpreadRoundTrip() {
	spreads := DefaultSpreadModel()
	entry := spreads.Ask(100.0, types.InstrumentStock)
	exitBid := spreads.Bid(102.0306, types.InstrumentStock)

	reason, err := Evaluate(entry, exitBid, exitBid, suite.cfg)
	suite.Require().NoError(err)
	suite.Equal(types.ExitReasonTakeProfit, reason)
}

func (suite *ExitEngineTestSuite) TestStopLossAfterSpreadRoundTrip() {
	spreads := DefaultSpreadModel()
	entry := spreads.Ask(100.0, types.InstrumentStock)
	exitBid := spreads.Bid(97.9796, types.InstrumentStock)

	reason, err := Evaluate(entry, entry, exitBid, suite.cfg)
	suite.Require().NoError(err)
	suite.Equal(types.ExitReasonStopLoss, reason)
}

// A pullback from the peak that still leaves P&L above the take-profit
// threshold resolves as a take profit, never a trailing stop.
func (suite *ExitEngineTestSuite) TestTakeProfitOutranksTrailingStop() {
	spreads := DefaultSpreadModel()
	entry := spreads.Ask(100.0, types.InstrumentStock)
	peak := 105.0
	exitBid := spreads.Bid(103.94, types.InstrumentStock)

	suite.Less(exitBid, peak*(1.0-suite.cfg.TrailingStopPct))

	reason, err := Evaluate(entry, peak, exitBid, suite.cfg)
	suite.Require().NoError(err)
	suite.Equal(types.ExitReasonTakeProfit, reason)
}

func (suite *ExitEngineTestSuite) TestStopLossOutranksTrailingStop() {
	reason, err := Evaluate(100.0, 103.0, 97.9, suite.cfg)
	suite.Require().NoError(err)
	suite.Equal(types.ExitReasonStopLoss, reason)
}

// Price exactly at peak*(1-trailing) holds; one tick below triggers.
func (suite *ExitEngineTestSuite) TestTrailingStopStrictBoundary() {
	reason, err := Evaluate(100.0, 100.0, 99.0, suite.cfg)
	suite.Require().NoError(err)
	suite.Equal(types.ExitReasonHolding, reason)

	reason, err = Evaluate(100.0, 100.0, 98.999, suite.cfg)
	suite.Require().NoError(err)
	suite.Equal(types.ExitReasonTrailingStop, reason)
}

func (suite *ExitEngineTestSuite) TestHoldingInsideThresholds() {
	reason, err := Evaluate(100.0, 101.0, 100.5, suite.cfg)
	suite.Require().NoError(err)
	suite.Equal(types.ExitReasonHolding, reason)
	suite.False(reason.IsTerminal())
}

func (suite *ExitEngineTestSuite) TestAdaptiveWidensWithNoise() {
	// Noise of 1% pushes both thresholds out to 3%.
	adaptive := suite.cfg.Adaptive(0.01)
	suite.InDelta(0.03, adaptive.TakeProfitPct, 1e-9)
	suite.InDelta(0.03, adaptive.StopLossPct, 1e-9)
	suite.InDelta(suite.cfg.TrailingStopPct, adaptive.TrailingStopPct, 1e-9)
}

func (suite *ExitEngineTestSuite) TestAdaptiveFloorsAtBase() {
	adaptive := suite.cfg.Adaptive(0.001)
	suite.InDelta(suite.cfg.TakeProfitPct, adaptive.TakeProfitPct, 1e-9)
	suite.InDelta(suite.cfg.StopLossPct, adaptive.StopLossPct, 1e-9)
}

func (suite *ExitEngineTestSuite) TestConfigValidate() {
	cfg := DefaultConfig()
	suite.NoError(cfg.Validate())

	cfg.TakeProfitPct = 0
	err := cfg.Validate()
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidThreshold))
}
