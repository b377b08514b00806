package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVolumeSurgeFiresOnHeavyVolumeRally(t *testing.T) {
	// Last bar: four times the running volume on a +1% move. The ratio
	// against the 20-bar average is ~3.48, above the 3x trigger.
	s := seriesOf()
	for i := 0; i < 19; i++ {
		s.AddBar(100, 100, 100, 1000)
	}

	s.AddBar(101, 101, 101, 4000)

	surge := NewVolumeSurge(DefaultConfig())
	signal := surge.Evaluate(soloContext(s))

	assert.True(t, signal.ShouldBuy)
	assert.Equal(t, "volume_surge", signal.StrategyName)
	assert.InDelta(t, 1.0, signal.Confidence, 1e-9)
	assert.Contains(t, signal.Reason, "volume surge")
}

func TestVolumeSurgeNeedsMomentum(t *testing.T) {
	// Heavy volume on a flat-ish bar is distribution, not accumulation.
	s := seriesOf()
	for i := 0; i < 19; i++ {
		s.AddBar(100, 100, 100, 1000)
	}

	s.AddBar(100.3, 100.3, 100.3, 4000)

	surge := NewVolumeSurge(DefaultConfig())
	signal := surge.Evaluate(soloContext(s))

	assert.False(t, signal.ShouldBuy)
}

func TestVolumeSurgeNeedsVolume(t *testing.T) {
	s := seriesOf()
	for i := 0; i < 19; i++ {
		s.AddBar(100, 100, 100, 1000)
	}

	s.AddBar(101, 101, 101, 1000)

	surge := NewVolumeSurge(DefaultConfig())
	signal := surge.Evaluate(soloContext(s))

	assert.False(t, signal.ShouldBuy)
}

func TestVolumeSurgeNeedsTwentyBars(t *testing.T) {
	s := seriesOf()
	for i := 0; i < 18; i++ {
		s.AddBar(100, 100, 100, 1000)
	}

	s.AddBar(101, 101, 101, 4000)

	surge := NewVolumeSurge(DefaultConfig())
	signal := surge.Evaluate(soloContext(s))

	assert.False(t, signal.ShouldBuy)
}
