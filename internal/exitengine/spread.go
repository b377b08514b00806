package exitengine

import (
	"github.com/deanturpin/lft/internal/types"
	"github.com/deanturpin/lft/pkg/errors"
)

// Default spread fractions. 1 basis point = 0.0001.
const (
	// StockSpread is 2 basis points.
	StockSpread = 2.0 / 10000.0
	// CryptoSpread is 10 basis points.
	CryptoSpread = 10.0 / 10000.0
)

// SpreadModel maps an instrument class to its bid/ask spread as a fraction
// of mid price. All entries execute at ask, all exits at bid, so realized
// P&L is always worse than the raw mid move by roughly the round-trip
// spread.
type SpreadModel struct {
	Stock  float64 `yaml:"stock" json:"stock" validate:"gte=0,lt=1"`
	Crypto float64 `yaml:"crypto" json:"crypto" validate:"gte=0,lt=1"`
}

// DefaultSpreadModel returns the 2bp stock / 10bp crypto model.
func DefaultSpreadModel() SpreadModel {
	return SpreadModel{
		Stock:  StockSpread,
		Crypto: CryptoSpread,
	}
}

// For returns the spread fraction for the given instrument class.
func (m SpreadModel) For(class types.InstrumentClass) float64 {
	if class == types.InstrumentCrypto {
		return m.Crypto
	}

	return m.Stock
}

// Ask returns the buy price for a mid price: mid plus half the spread.
func (m SpreadModel) Ask(mid float64, class types.InstrumentClass) float64 {
	return mid + mid*m.For(class)/2.0
}

// Bid returns the sell price for a mid price: mid minus half the spread.
func (m SpreadModel) Bid(mid float64, class types.InstrumentClass) float64 {
	return mid - mid*m.For(class)/2.0
}

// Validate rejects negative or absurd spreads.
func (m SpreadModel) Validate() error {
	if m.Stock < 0 || m.Stock >= 1 || m.Crypto < 0 || m.Crypto >= 1 {
		return errors.Newf(errors.ErrCodeInvalidSpread, "spread fractions must be in [0,1): stock=%v crypto=%v", m.Stock, m.Crypto)
	}

	return nil
}
