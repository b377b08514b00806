package types

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/deanturpin/lft/pkg/errors"
)

// Position represents an open long position for a single symbol. At most one
// position exists per symbol at any time.
type Position struct {
	Symbol       string    `yaml:"symbol" json:"symbol" csv:"symbol" validate:"required"`
	StrategyName string    `yaml:"strategy_name" json:"strategy_name" csv:"strategy_name" validate:"required"`
	EntryPrice   float64   `yaml:"entry_price" json:"entry_price" csv:"entry_price" validate:"required,gt=0"`
	Quantity     float64   `yaml:"quantity" json:"quantity" csv:"quantity" validate:"required,gt=0"`
	EntryTime    time.Time `yaml:"entry_time" json:"entry_time" csv:"entry_time"`
	// EntryIndex is the tick index at which the position opened. Used for
	// the maximum holding duration cutoff.
	EntryIndex int `yaml:"entry_index" json:"entry_index" csv:"entry_index"`
	// PeakPrice is the highest price observed since entry. Monotonically
	// non-decreasing while the position is open.
	PeakPrice float64 `yaml:"peak_price" json:"peak_price" csv:"peak_price"`
}

// UpdatePeak raises the peak price if the given price exceeds it.
func (p *Position) UpdatePeak(price float64) {
	if price > p.PeakPrice {
		p.PeakPrice = price
	}
}

// HoldingBars returns the number of ticks the position has been open at the
// given tick index.
func (p *Position) HoldingBars(currentIndex int) int {
	return currentIndex - p.EntryIndex
}

// Validate validates the Position struct.
func (p *Position) Validate() error {
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPosition, "invalid position", err)
	}

	return nil
}
