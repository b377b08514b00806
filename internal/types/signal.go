package types

// StrategySignal is the stateless output of one strategy evaluation.
type StrategySignal struct {
	// ShouldBuy is true when the strategy wants to open a long position.
	ShouldBuy bool
	// Reason is a human-readable explanation of the trigger.
	Reason string
	// StrategyName is the name of the strategy that produced the signal.
	StrategyName string
	// Confidence is advisory metadata in [0,1]. Low volume and noisy bars
	// attenuate it; it never gates ShouldBuy.
	Confidence float64
}

// NoSignal returns the neutral signal for a strategy. Evaluators return it
// whenever history is insufficient, so callers never branch on "not enough
// data".
func NoSignal(strategyName string) StrategySignal {
	return StrategySignal{
		ShouldBuy:    false,
		Reason:       "",
		StrategyName: strategyName,
		Confidence:   1.0,
	}
}
