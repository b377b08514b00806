package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deanturpin/lft/pkg/errors"
)

func TestClassifySymbol(t *testing.T) {
	assert.Equal(t, InstrumentStock, ClassifySymbol("AAPL"))
	assert.Equal(t, InstrumentStock, ClassifySymbol("BRK.B"))
	assert.Equal(t, InstrumentCrypto, ClassifySymbol("BTC/USD"))
	assert.Equal(t, InstrumentCrypto, ClassifySymbol("ETH/EUR"))
}

func TestExitReasonTerminal(t *testing.T) {
	assert.False(t, ExitReasonHolding.IsTerminal())

	for _, reason := range []ExitReason{
		ExitReasonStopLoss,
		ExitReasonTakeProfit,
		ExitReasonTrailingStop,
		ExitReasonTimedOut,
		ExitReasonEndOfData,
	} {
		assert.True(t, reason.IsTerminal(), string(reason))
	}
}

func TestExitReasonPriceTriggered(t *testing.T) {
	assert.True(t, ExitReasonStopLoss.PriceTriggered())
	assert.True(t, ExitReasonTakeProfit.PriceTriggered())
	assert.True(t, ExitReasonTrailingStop.PriceTriggered())
	assert.False(t, ExitReasonTimedOut.PriceTriggered())
	assert.False(t, ExitReasonEndOfData.PriceTriggered())
	assert.False(t, ExitReasonHolding.PriceTriggered())
}

func TestNoSignal(t *testing.T) {
	signal := NoSignal("dip")

	assert.False(t, signal.ShouldBuy)
	assert.Equal(t, "dip", signal.StrategyName)
	assert.Equal(t, 1.0, signal.Confidence)
	assert.Empty(t, signal.Reason)
}

func TestPositionUpdatePeak(t *testing.T) {
	pos := Position{EntryPrice: 100, PeakPrice: 100}

	pos.UpdatePeak(105)
	assert.Equal(t, 105.0, pos.PeakPrice)

	// The peak never decreases while the position is open.
	pos.UpdatePeak(102)
	assert.Equal(t, 105.0, pos.PeakPrice)
}

func TestPositionHoldingBars(t *testing.T) {
	pos := Position{EntryIndex: 10}

	assert.Equal(t, 0, pos.HoldingBars(10))
	assert.Equal(t, 5, pos.HoldingBars(15))
}

func TestPositionValidate(t *testing.T) {
	pos := Position{
		Symbol:       "AAPL",
		StrategyName: "dip",
		EntryPrice:   97.0097,
		Quantity:     1.03,
		EntryTime:    time.Now(),
		PeakPrice:    97.0097,
	}
	require.NoError(t, pos.Validate())

	pos.EntryPrice = 0
	err := pos.Validate()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidPosition))
}

func TestStrategyStatsRecordClose(t *testing.T) {
	stats := StrategyStats{Name: "dip"}

	stats.RecordClose(2.5)
	stats.RecordClose(-1.0)
	stats.RecordClose(1.5)
	stats.RecordClose(0) // break-even counts as a loss

	assert.Equal(t, 4, stats.TradesClosed)
	assert.Equal(t, 2, stats.ProfitableTrades)
	assert.Equal(t, 2, stats.LosingTrades)
	assert.InDelta(t, 50.0, stats.WinRate(), 1e-9)
	assert.InDelta(t, 3.0, stats.NetProfit(), 1e-9)
}

func TestStrategyStatsEmptyWinRate(t *testing.T) {
	stats := StrategyStats{Name: "dip"}

	assert.Equal(t, 0.0, stats.WinRate())
	assert.Equal(t, 0.0, stats.NetProfit())
}

func TestTradePnL(t *testing.T) {
	assert.InDelta(t, 2.0103, TradePnL(100.01, 102.0204, 0.9999), 1e-4)
	assert.InDelta(t, -2.5, TradePnL(100, 97.5, 1), 1e-9)
	assert.Equal(t, 0.0, TradePnL(100, 100, 1))
}

func TestStrategyConfigValidate(t *testing.T) {
	cfg := StrategyConfig{
		Name:            "dip",
		Enabled:         true,
		TakeProfitPct:   0.02,
		StopLossPct:     0.02,
		TrailingStopPct: 0.01,
	}
	require.NoError(t, cfg.Validate())

	cfg.TakeProfitPct = 1.5
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}
