package types

// ExitReason is the terminal state of an open position's exit decision.
// Holding is the only non-terminal value.
type ExitReason string

const (
	ExitReasonHolding      ExitReason = "holding"
	ExitReasonStopLoss     ExitReason = "stop_loss"
	ExitReasonTakeProfit   ExitReason = "take_profit"
	ExitReasonTrailingStop ExitReason = "trailing_stop"
	ExitReasonTimedOut     ExitReason = "timed_out"
	ExitReasonEndOfData    ExitReason = "end_of_data"
)

// IsTerminal reports whether the reason closes the position.
func (r ExitReason) IsTerminal() bool {
	return r != ExitReasonHolding
}

// PriceTriggered reports whether the exit came from the price-based decision
// function rather than a driver-imposed cutoff. EndOfData and TimedOut are
// never conflated with price exits in statistics.
func (r ExitReason) PriceTriggered() bool {
	switch r {
	case ExitReasonStopLoss, ExitReasonTakeProfit, ExitReasonTrailingStop:
		return true
	default:
		return false
	}
}
