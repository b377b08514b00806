package datasource

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/deanturpin/lft/internal/logger"
	"github.com/deanturpin/lft/internal/types"
	"github.com/deanturpin/lft/pkg/errors"
)

// DuckDBDataSource reads bar CSVs through an in-process DuckDB view, so a
// directory of per-day dumps queries like a single table.
type DuckDBDataSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDuckDBDataSource opens an in-memory DuckDB instance. Initialize() then
// points it at the CSV data.
func NewDuckDBDataSource(log *logger.Logger) (DataSource, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &DuckDBDataSource{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize implements DataSource. The path may be a single CSV file or a
// glob; files need symbol,time,open,high,low,close,volume columns.
func (d *DuckDBDataSource) Initialize(path string) error {
	d.logger.Debug("initializing duckdb data source", zap.String("path", path))

	if _, err := d.db.Exec(`DROP VIEW IF EXISTS market_data;`); err != nil {
		return errors.Wrap(errors.ErrCodeIngestFailed, "failed to drop existing view", err)
	}

	// CREATE VIEW isn't expressible in squirrel, so raw SQL here.
	query := fmt.Sprintf(`
		CREATE VIEW market_data AS
		SELECT * FROM read_csv_auto('%s');
	`, path)

	if _, err := d.db.Exec(query); err != nil {
		return errors.Wrap(errors.ErrCodeIngestFailed, "failed to create market_data view", err)
	}

	return nil
}

// Symbols implements DataSource.
func (d *DuckDBDataSource) Symbols() ([]string, error) {
	query, args, err := d.sq.Select("DISTINCT symbol").From("market_data").OrderBy("symbol").ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build symbols query", err)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query symbols", err)
	}
	defer rows.Close()

	var symbols []string

	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan symbol", err)
		}

		symbols = append(symbols, symbol)
	}

	return symbols, rows.Err()
}

// ReadBars implements DataSource. Bars come back time-ascending per symbol,
// the ordering the simulator's look-ahead-free replay depends on.
func (d *DuckDBDataSource) ReadBars(start optional.Option[time.Time], end optional.Option[time.Time]) (map[string][]types.Bar, error) {
	builder := d.sq.Select("symbol", "time", "open", "high", "low", "close", "volume").
		From("market_data").
		OrderBy("symbol", "time ASC")

	if start.IsSome() {
		builder = builder.Where(squirrel.GtOrEq{"time": start.Unwrap()})
	}

	if end.IsSome() {
		builder = builder.Where(squirrel.LtOrEq{"time": end.Unwrap()})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build bars query", err)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query bars", err)
	}
	defer rows.Close()

	bars := make(map[string][]types.Bar)

	for rows.Next() {
		var symbol string

		var bar types.Bar

		if err := rows.Scan(&symbol, &bar.Time, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan bar", err)
		}

		bars[symbol] = append(bars[symbol], bar)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "bar row iteration failed", err)
	}

	if len(bars) == 0 {
		return nil, errors.New(errors.ErrCodeDataNotFound, "no bars found in data source")
	}

	return bars, nil
}

// Count implements DataSource.
func (d *DuckDBDataSource) Count() (int, error) {
	var count int

	if err := d.db.QueryRow("SELECT COUNT(*) FROM market_data").Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count bars", err)
	}

	return count, nil
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	return d.db.Close()
}
