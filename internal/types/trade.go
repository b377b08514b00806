package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is a closed-trade record exposed to the reporting layer.
type Trade struct {
	ID           string     `yaml:"id" json:"id" csv:"id"`
	Symbol       string     `yaml:"symbol" json:"symbol" csv:"symbol"`
	StrategyName string     `yaml:"strategy_name" json:"strategy_name" csv:"strategy_name"`
	EntryPrice   float64    `yaml:"entry_price" json:"entry_price" csv:"entry_price"`
	ExitPrice    float64    `yaml:"exit_price" json:"exit_price" csv:"exit_price"`
	Quantity     float64    `yaml:"quantity" json:"quantity" csv:"quantity"`
	PnL          float64    `yaml:"pnl" json:"pnl" csv:"pnl"`
	ExitReason   ExitReason `yaml:"exit_reason" json:"exit_reason" csv:"exit_reason"`
	EntryTime    time.Time  `yaml:"entry_time" json:"entry_time" csv:"entry_time"`
	ExitTime     time.Time  `yaml:"exit_time" json:"exit_time" csv:"exit_time"`
	HoldingBars  int        `yaml:"holding_bars" json:"holding_bars" csv:"holding_bars"`
}

// TradePnL computes realized P&L in dollars for a long trade.
// For example, 0.9999 shares entered at $100.01 and exited at $102.0204
// yield (102.0204-100.01)*0.9999 ≈ $2.01.
func TradePnL(entryPrice, exitPrice, quantity float64) float64 {
	entry := decimal.NewFromFloat(entryPrice)
	exit := decimal.NewFromFloat(exitPrice)
	qty := decimal.NewFromFloat(quantity)

	pnl, _ := exit.Sub(entry).Mul(qty).Float64()

	return pnl
}
