package strategy

import (
	"fmt"

	"github.com/deanturpin/lft/internal/types"
)

// Dip buys after a sharp single-bar drop.
type Dip struct {
	cfg Config
}

// NewDip creates the dip evaluator.
func NewDip(cfg Config) *Dip {
	return &Dip{cfg: cfg}
}

// Name returns the strategy name.
func (d *Dip) Name() string {
	return "dip"
}

// Evaluate fires when the latest single-bar change is at or below the
// negative dip threshold.
func (d *Dip) Evaluate(ctx Context) types.StrategySignal {
	signal := types.NoSignal(d.Name())

	s := ctx.Series
	if !s.HasHistory() {
		return signal
	}

	if s.ChangePercent() <= d.cfg.DipThreshold {
		signal.ShouldBuy = true
		signal.Reason = fmt.Sprintf("price dropped %.2f%%", s.ChangePercent())
	}

	return attenuate(signal, s, d.cfg)
}
