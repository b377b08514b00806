package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/deanturpin/lft/pkg/errors"
)

// StrategyConfig is produced by calibration at session start and read-only
// thereafter. Recalibration replaces the whole value.
type StrategyConfig struct {
	Name    string `yaml:"name" json:"name" validate:"required"`
	Enabled bool   `yaml:"enabled" json:"enabled"`
	// TakeProfitPct, StopLossPct and TrailingStopPct are fractions, not
	// percentages: 0.02 means 2%.
	TakeProfitPct   float64 `yaml:"take_profit_pct" json:"take_profit_pct" validate:"gt=0,lt=1"`
	StopLossPct     float64 `yaml:"stop_loss_pct" json:"stop_loss_pct" validate:"gt=0,lt=1"`
	TrailingStopPct float64 `yaml:"trailing_stop_pct" json:"trailing_stop_pct" validate:"gt=0,lt=1"`
	// NetProfit and WinRate come from the calibration replay.
	NetProfit    float64 `yaml:"net_profit" json:"net_profit"`
	WinRate      float64 `yaml:"win_rate" json:"win_rate"`
	TradesClosed int     `yaml:"trades_closed" json:"trades_closed"`
}

// Validate validates the StrategyConfig struct.
func (c *StrategyConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid strategy config", err)
	}

	return nil
}

// StrategyStats tracks running counters for one strategy over a simulation
// pass. Win rate and net profit are derived, never stored.
type StrategyStats struct {
	Name             string  `yaml:"name" json:"name"`
	SignalsGenerated int     `yaml:"signals_generated" json:"signals_generated"`
	TradesExecuted   int     `yaml:"trades_executed" json:"trades_executed"`
	TradesClosed     int     `yaml:"trades_closed" json:"trades_closed"`
	ProfitableTrades int     `yaml:"profitable_trades" json:"profitable_trades"`
	LosingTrades     int     `yaml:"losing_trades" json:"losing_trades"`
	TotalProfit      float64 `yaml:"total_profit" json:"total_profit"`
	TotalLoss        float64 `yaml:"total_loss" json:"total_loss"`
}

// RecordClose books a closed trade's realized P&L into the counters.
func (s *StrategyStats) RecordClose(pnl float64) {
	s.TradesClosed++

	if pnl > 0 {
		s.ProfitableTrades++
		s.TotalProfit += pnl
	} else {
		s.LosingTrades++
		s.TotalLoss += pnl
	}
}

// WinRate returns the percentage of closed trades that were profitable.
func (s *StrategyStats) WinRate() float64 {
	if s.TradesClosed == 0 {
		return 0
	}

	return float64(s.ProfitableTrades) / float64(s.TradesClosed) * 100.0
}

// NetProfit returns total profit plus total loss. Decimal arithmetic avoids
// drift when the two running sums are large and nearly cancel.
func (s *StrategyStats) NetProfit() float64 {
	profit := decimal.NewFromFloat(s.TotalProfit)
	loss := decimal.NewFromFloat(s.TotalLoss)

	net, _ := profit.Add(loss).Float64()

	return net
}
