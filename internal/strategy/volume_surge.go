package strategy

import (
	"fmt"
	"math"

	"github.com/deanturpin/lft/internal/types"
)

// Minimum single-bar percent rise that counts as upward momentum.
const surgeMomentum = 0.5

// VolumeSurge buys when heavy volume confirms a rising price.
type VolumeSurge struct {
	cfg Config
}

// NewVolumeSurge creates the volume-surge evaluator.
func NewVolumeSurge(cfg Config) *VolumeSurge {
	return &VolumeSurge{cfg: cfg}
}

// Name returns the strategy name.
func (v *VolumeSurge) Name() string {
	return "volume_surge"
}

// Evaluate fires when the current bar's volume exceeds the configured
// multiple of the window average and price is rising. Confidence scales with
// the surge size, capped at the trigger ratio.
func (v *VolumeSurge) Evaluate(ctx Context) types.StrategySignal {
	signal := types.NoSignal(v.Name())

	s := ctx.Series
	if s.Len() < longMAPeriods {
		return signal
	}

	ratio := s.VolumeRatio()
	if ratio == 0 {
		return signal
	}

	if ratio > v.cfg.VolumeSurgeRatio && s.ChangePercent() > surgeMomentum {
		signal.ShouldBuy = true
		signal.Confidence = math.Min(ratio/v.cfg.VolumeSurgeRatio, 1.0)
		signal.Reason = fmt.Sprintf("volume surge: %.1fx avg, +%.2f%%", ratio, s.ChangePercent())
	}

	return attenuate(signal, s, v.cfg)
}
