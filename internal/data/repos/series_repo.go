package repos

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/tearsheet/backend/internal/pnl"
)

// SeriesRepository reads and writes named cumulative PnL series.
// ⭐ SSOT: PnL 시리즈 저장/조회는 여기서만
// The analytics engine never touches the database; this repository is one
// possible series source alongside the synthetic generator.
type SeriesRepository struct {
	pool *pgxpool.Pool
}

// NewSeriesRepository creates a new series repository
func NewSeriesRepository(pool *pgxpool.Pool) *SeriesRepository {
	return &SeriesRepository{pool: pool}
}

// GetSeries loads a named series ordered by date. Zero from/to bounds are
// open-ended. Returns pnl.ErrEmptySeries when no rows match, so callers
// see the same invalid-input condition the engine raises.
func (r *SeriesRepository) GetSeries(ctx context.Context, name string, from, to time.Time) (pnl.Series, error) {
	query := `
		SELECT trade_date, cumulative_pnl
		FROM pnl.series
		WHERE series_name = $1
		  AND ($2::date IS NULL OR trade_date >= $2)
		  AND ($3::date IS NULL OR trade_date <= $3)
		ORDER BY trade_date
	`

	var fromArg, toArg any
	if !from.IsZero() {
		fromArg = from
	}
	if !to.IsZero() {
		toArg = to
	}

	rows, err := r.pool.Query(ctx, query, name, fromArg, toArg)
	if err != nil {
		return nil, fmt.Errorf("failed to query series %s: %w", name, err)
	}
	defer rows.Close()

	var series pnl.Series
	for rows.Next() {
		var p pnl.Point
		if err := rows.Scan(&p.Date, &p.Value); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		series = append(series, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("series %s: %w", name, pnl.ErrEmptySeries)
	}

	return series, nil
}

// SaveSeries upserts all points of a named series in one transaction
func (r *SeriesRepository) SaveSeries(ctx context.Context, name string, series pnl.Series) error {
	if err := series.Validate(); err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO pnl.series (series_name, trade_date, cumulative_pnl)
		VALUES ($1, $2, $3)
		ON CONFLICT (series_name, trade_date) DO UPDATE SET
			cumulative_pnl = EXCLUDED.cumulative_pnl,
			updated_at = NOW()
	`

	for _, p := range series {
		if _, err := tx.Exec(ctx, query, name, p.Date, p.Value); err != nil {
			return fmt.Errorf("failed to save point %s: %w", p.Date.Format("2006-01-02"), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListSeries returns the distinct series names available, with row counts
func (r *SeriesRepository) ListSeries(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT series_name, COUNT(*)
		FROM pnl.series
		GROUP BY series_name
		ORDER BY series_name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out[name] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return out, nil
}
