// Package datasource loads historical bar data for calibration and
// backtesting. The core engine performs no I/O itself; drivers read bars
// here and hand the in-memory map to the simulator.
package datasource

import (
	"time"

	"github.com/moznion/go-optional"

	"github.com/deanturpin/lft/internal/types"
)

// DataSource provides ordered, strictly time-ascending bars per symbol.
type DataSource interface {
	// Initialize points the source at a CSV file or glob of bar data.
	Initialize(path string) error
	// Symbols lists the distinct symbols available.
	Symbols() ([]string, error)
	// ReadBars returns every symbol's bars in time-ascending order,
	// optionally clamped to a window.
	ReadBars(start optional.Option[time.Time], end optional.Option[time.Time]) (map[string][]types.Bar, error)
	// Count returns the total number of bars available.
	Count() (int, error)
	// Close releases the underlying store.
	Close() error
}
