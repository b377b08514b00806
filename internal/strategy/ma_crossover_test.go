package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMACrossoverFiresOnTrueCrossing(t *testing.T) {
	// 25 flat bars then a jump: the 5-bar MA rises to 102 while the
	// previous-bar MAs were still level at 100.
	s := seriesOf()
	for i := 0; i < 25; i++ {
		s.AddBar(100, 100, 100, 1000)
	}

	s.AddBar(110, 110, 110, 1000)

	crossover := NewMACrossover(DefaultConfig())
	signal := crossover.Evaluate(soloContext(s))

	assert.True(t, signal.ShouldBuy)
	assert.Equal(t, "ma_crossover", signal.StrategyName)
	assert.Contains(t, signal.Reason, "crossover")
}

func TestMACrossoverIgnoresAlreadyAbove(t *testing.T) {
	s := seriesOf()
	for i := 0; i < 25; i++ {
		s.AddBar(100, 100, 100, 1000)
	}

	s.AddBar(110, 110, 110, 1000)
	s.AddBar(110, 110, 110, 1000)

	// Short MA is still above long, but the crossing happened on the
	// previous bar. Merely being above must not re-trigger.
	crossover := NewMACrossover(DefaultConfig())
	signal := crossover.Evaluate(soloContext(s))

	assert.False(t, signal.ShouldBuy)
}

func TestMACrossoverNeedsTwentyOneBars(t *testing.T) {
	s := seriesOf()
	for i := 0; i < longMAPeriods; i++ {
		s.AddBar(100, 100, 100, 1000)
	}

	crossover := NewMACrossover(DefaultConfig())
	signal := crossover.Evaluate(soloContext(s))

	assert.False(t, signal.ShouldBuy)
}

func TestMACrossoverFlatSeriesNeverFires(t *testing.T) {
	s := seriesOf()
	for i := 0; i < 30; i++ {
		s.AddBar(100, 100, 100, 1000)
	}

	crossover := NewMACrossover(DefaultConfig())
	signal := crossover.Evaluate(soloContext(s))

	assert.False(t, signal.ShouldBuy)
}
