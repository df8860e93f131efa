package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads occupied slots from the occupied_slots table. The
// wizard only ever reads through it; rows are maintained outside this service.
type PostgresSource struct {
	db querier
}

// NewPostgresSource wraps a pgx pool (or anything with the same Query method).
func NewPostgresSource(db querier) *PostgresSource {
	if db == nil {
		panic("availability: pgx pool required")
	}
	return &PostgresSource{db: db}
}

const occupiedForDaySQL = `SELECT slot FROM occupied_slots WHERE day = $1::date ORDER BY slot`

// Occupied returns the occupied slots for date.
func (s *PostgresSource) Occupied(ctx context.Context, date Date) ([]string, error) {
	rows, err := s.db.Query(ctx, occupiedForDaySQL, date.String())
	if err != nil {
		return nil, fmt.Errorf("availability: query occupied: %w", err)
	}
	slots, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("availability: scan occupied: %w", err)
	}
	return slots, nil
}

const occupiedRangeSQL = `SELECT day, slot FROM occupied_slots WHERE day BETWEEN $1::date AND $2::date ORDER BY day, slot`

// OccupiedRange returns every occupied slot between from and to inclusive.
func (s *PostgresSource) OccupiedRange(ctx context.Context, from, to Date) (map[Date][]string, error) {
	rows, err := s.db.Query(ctx, occupiedRangeSQL, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("availability: query range: %w", err)
	}
	defer rows.Close()

	out := make(map[Date][]string)
	for rows.Next() {
		var (
			day  time.Time
			slot string
		)
		if err := rows.Scan(&day, &slot); err != nil {
			return nil, fmt.Errorf("availability: scan range: %w", err)
		}
		d := DateOf(day)
		out[d] = append(out[d], slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("availability: iterate range: %w", err)
	}
	return out, nil
}

// OccupiedRange returns the seeded days between from and to inclusive.
func (t *StaticTable) OccupiedRange(_ context.Context, from, to Date) (map[Date][]string, error) {
	out := make(map[Date][]string)
	for d, slots := range t.days {
		if d.Before(from) || to.Before(d) {
			continue
		}
		cp := make([]string, len(slots))
		copy(cp, slots)
		out[d] = cp
	}
	return out, nil
}

// RangeSource is implemented by sources that can list a window of days.
type RangeSource interface {
	Source
	OccupiedRange(ctx context.Context, from, to Date) (map[Date][]string, error)
}

var (
	_ RangeSource = (*StaticTable)(nil)
	_ RangeSource = (*PostgresSource)(nil)
)
