package types

import (
	"strings"
	"time"
)

// Bar is a single OHLCV observation for a fixed time interval.
type Bar struct {
	Time   time.Time `csv:"time"`
	Open   float64   `csv:"open"`
	High   float64   `csv:"high"`
	Low    float64   `csv:"low"`
	Close  float64   `csv:"close"`
	Volume int64     `csv:"volume"`
}

// InstrumentClass selects the spread model for a symbol. Crypto trades with
// a wider bid/ask spread than listed stocks.
type InstrumentClass string

const (
	InstrumentStock  InstrumentClass = "stock"
	InstrumentCrypto InstrumentClass = "crypto"
)

// ClassifySymbol derives the instrument class from the symbol. Crypto pairs
// are quoted as BASE/QUOTE, e.g. BTC/USD.
func ClassifySymbol(symbol string) InstrumentClass {
	if strings.Contains(symbol, "/") {
		return InstrumentCrypto
	}

	return InstrumentStock
}
