// Package series maintains a bounded rolling window of OHLCV observations
// per symbol and derives the metrics the strategies consume. All metrics are
// computed on demand from the current window, never cached.
package series

import (
	"math"
	"time"
)

const (
	// WindowCapacity is the maximum number of bars retained. The oldest bar
	// is evicted FIFO once the window is full.
	WindowCapacity = 100

	// DefaultNoisePeriods is the lookback for intrabar noise.
	DefaultNoisePeriods = 20
)

// PriceSeries owns a bounded ordered sequence of bars for one symbol. The
// closes, highs, lows and volumes slices stay length-synchronized.
//
// Metrics needing more history than the window holds return zero sentinels
// rather than errors, so callers never branch on "not enough data".
type PriceSeries struct {
	closes  []float64
	highs   []float64
	lows    []float64
	volumes []int64

	lastPrice     float64
	changePercent float64
	hasHistory    bool
	lastTickTime  time.Time
}

// NewPriceSeries creates an empty series.
func NewPriceSeries() *PriceSeries {
	return &PriceSeries{
		closes:  make([]float64, 0, WindowCapacity),
		highs:   make([]float64, 0, WindowCapacity),
		lows:    make([]float64, 0, WindowCapacity),
		volumes: make([]int64, 0, WindowCapacity),
	}
}

// AddBar appends one observation unconditionally. This is the offline replay
// ingestion mode: every call is a new observation.
func (s *PriceSeries) AddBar(close, high, low float64, volume int64) {
	s.closes = append(s.closes, close)
	s.highs = append(s.highs, high)
	s.lows = append(s.lows, low)
	s.volumes = append(s.volumes, volume)

	if len(s.closes) > WindowCapacity {
		s.closes = s.closes[1:]
		s.highs = s.highs[1:]
		s.lows = s.lows[1:]
		s.volumes = s.volumes[1:]
	}

	if len(s.closes) >= 2 {
		s.lastPrice = s.closes[len(s.closes)-2]
		s.changePercent = (close - s.lastPrice) / s.lastPrice * 100.0
		s.hasHistory = true
	}
}

// AddBarAt appends one observation only if the trade timestamp differs from
// the previous one. Re-observing the same tick in a live poll must not alter
// the change percent.
func (s *PriceSeries) AddBarAt(timestamp time.Time, close, high, low float64, volume int64) {
	if !s.lastTickTime.IsZero() && timestamp.Equal(s.lastTickTime) {
		return
	}

	s.lastTickTime = timestamp
	s.AddBar(close, high, low, volume)
}

// Len returns the number of bars currently in the window.
func (s *PriceSeries) Len() int {
	return len(s.closes)
}

// LatestClose returns the most recent close, or 0 for an empty series.
func (s *PriceSeries) LatestClose() float64 {
	if len(s.closes) == 0 {
		return 0
	}

	return s.closes[len(s.closes)-1]
}

// ChangePercent returns the latest single-bar percent move.
func (s *PriceSeries) ChangePercent() float64 {
	return s.changePercent
}

// HasHistory reports whether at least two observations exist.
func (s *PriceSeries) HasHistory() bool {
	return s.hasHistory
}

// MovingAverage returns the mean of the last `periods` closes, or the 0
// sentinel when fewer than `periods` bars exist.
func (s *PriceSeries) MovingAverage(periods int) float64 {
	if periods <= 0 || len(s.closes) < periods {
		return 0
	}

	sum := 0.0
	for i := len(s.closes) - periods; i < len(s.closes); i++ {
		sum += s.closes[i]
	}

	return sum / float64(periods)
}

// MovingAverageBefore returns the mean of `periods` closes ending one bar
// before the latest, or 0 when fewer than periods+1 bars exist. Used to
// detect a true crossover rather than "currently above".
func (s *PriceSeries) MovingAverageBefore(periods int) float64 {
	if periods <= 0 || len(s.closes) < periods+1 {
		return 0
	}

	end := len(s.closes) - 1

	sum := 0.0
	for i := end - periods; i < end; i++ {
		sum += s.closes[i]
	}

	return sum / float64(periods)
}

// Volatility returns the population standard deviation of all closes in the
// window, or 0 when fewer than two bars exist.
func (s *PriceSeries) Volatility() float64 {
	n := len(s.closes)
	if n < 2 {
		return 0
	}

	sum := 0.0
	for _, c := range s.closes {
		sum += c
	}

	mean := sum / float64(n)

	variance := 0.0
	for _, c := range s.closes {
		diff := c - mean
		variance += diff * diff
	}

	return math.Sqrt(variance / float64(n))
}

// RecentNoise returns the mean of (high-low)/close over the last `periods`
// bars, or 0 when insufficient history exists. This is the intrabar noise
// floor protective exits must clear.
func (s *PriceSeries) RecentNoise(periods int) float64 {
	if periods <= 0 || len(s.closes) < periods || len(s.highs) < periods || len(s.lows) < periods {
		return 0
	}

	total := 0.0
	for i := len(s.closes) - periods; i < len(s.closes); i++ {
		total += (s.highs[i] - s.lows[i]) / s.closes[i]
	}

	return total / float64(periods)
}

// RecentHigh returns the highest high over the last `periods` bars excluding
// the latest bar, or 0 when fewer than periods+1 bars exist.
func (s *PriceSeries) RecentHigh(periods int) float64 {
	if periods <= 0 || len(s.highs) < periods+1 {
		return 0
	}

	end := len(s.highs) - 1

	high := s.highs[end-periods]
	for i := end - periods + 1; i < end; i++ {
		if s.highs[i] > high {
			high = s.highs[i]
		}
	}

	return high
}

// AvgVolume returns the integer mean of all volumes in the window.
func (s *PriceSeries) AvgVolume() int64 {
	if len(s.volumes) == 0 {
		return 0
	}

	var sum int64
	for _, v := range s.volumes {
		sum += v
	}

	return sum / int64(len(s.volumes))
}

// VolumeRatio returns the latest volume as a ratio of the window average,
// or 0 when no volume history exists.
func (s *PriceSeries) VolumeRatio() float64 {
	if len(s.volumes) == 0 {
		return 0
	}

	avg := s.AvgVolume()
	if avg == 0 {
		return 0
	}

	return float64(s.volumes[len(s.volumes)-1]) / float64(avg)
}

// VolumeFactor returns the confidence-penalty divisor for the latest bar's
// volume: 1.0 at or above 75% of average, 1.2 in [50%,75%), 1.5 below 50%.
// Callers divide confidence by this factor.
func (s *PriceSeries) VolumeFactor() float64 {
	if len(s.volumes) == 0 {
		return 1.0
	}

	avg := s.AvgVolume()
	if avg == 0 {
		return 1.0
	}

	ratio := float64(s.volumes[len(s.volumes)-1]) / float64(avg)

	switch {
	case ratio < 0.5:
		return 1.5
	case ratio < 0.75:
		return 1.2
	default:
		return 1.0
	}
}
