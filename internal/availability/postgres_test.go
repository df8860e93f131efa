package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresSourceOccupied(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT slot FROM occupied_slots").
		WithArgs("2026-11-02").
		WillReturnRows(pgxmock.NewRows([]string{"slot"}).AddRow("09:00").AddRow("11:00"))

	src := NewPostgresSource(mock)
	d, _ := ParseDate("2026-11-02")
	slots, err := src.Occupied(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "11:00"}, slots)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSourceOccupiedEmptyDay(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT slot FROM occupied_slots").
		WithArgs("2026-11-03").
		WillReturnRows(pgxmock.NewRows([]string{"slot"}))

	src := NewPostgresSource(mock)
	d, _ := ParseDate("2026-11-03")
	capacity, count, err := ClassifyDate(context.Background(), src, d, DefaultSlots())
	require.NoError(t, err)
	assert.Equal(t, CapacityOpen, capacity)
	assert.Zero(t, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSourceQueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT slot FROM occupied_slots").
		WithArgs("2026-11-04").
		WillReturnError(errors.New("connection reset"))

	src := NewPostgresSource(mock)
	d, _ := ParseDate("2026-11-04")
	_, err = src.Occupied(context.Background(), d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "availability: query occupied")
}

func TestPostgresSourceRange(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	day1 := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 11, 5, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT day, slot FROM occupied_slots").
		WithArgs("2026-11-01", "2026-11-30").
		WillReturnRows(pgxmock.NewRows([]string{"day", "slot"}).
			AddRow(day1, "09:00").
			AddRow(day1, "10:00").
			AddRow(day2, "17:00"))

	src := NewPostgresSource(mock)
	from, _ := ParseDate("2026-11-01")
	to, _ := ParseDate("2026-11-30")
	days, err := src.OccupiedRange(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00"}, days[DateOf(day1)])
	assert.Equal(t, []string{"17:00"}, days[DateOf(day2)])
	require.NoError(t, mock.ExpectationsWereMet())
}
