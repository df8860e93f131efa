package availability

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSlots(t *testing.T) {
	slots := DefaultSlots()
	require.Equal(t, 10, slots.Len())
	assert.Equal(t, []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00", "18:00"}, slots.All())

	i, err := slots.Index("14:00")
	require.NoError(t, err)
	assert.Equal(t, 5, i)

	_, err = slots.Index("08:30")
	assert.True(t, errors.Is(err, ErrUnknownSlot))
}

func TestNewSlotsValidation(t *testing.T) {
	_, err := NewSlots("09:00", "25:00")
	assert.Error(t, err)
	_, err = NewSlots("09:00", "09:00")
	assert.Error(t, err)
}

func TestSlotsNeeded(t *testing.T) {
	tests := map[int]int{0: 0, 1: 1, 30: 1, 60: 1, 61: 2, 75: 2, 120: 2, 121: 3, 390: 7}
	for minutes, want := range tests {
		assert.Equal(t, want, SlotsNeeded(minutes), "minutes=%d", minutes)
	}
}

// A 120-minute draft with 11:00 taken: every start slot of the day.
func TestIsSlotAvailableCollisionTable(t *testing.T) {
	slots := DefaultSlots()
	occupied := []string{"11:00"}

	want := map[string]bool{
		"09:00": true,  // 09:00-10:00
		"10:00": false, // would run into 11:00
		"11:00": false, // occupied itself
		"12:00": true,
		"13:00": true,
		"14:00": true,
		"15:00": true,
		"16:00": true,
		"17:00": true,  // 17:00-18:00
		"18:00": false, // runs past closing
	}
	for _, start := range slots.All() {
		got, err := IsSlotAvailable(occupied, start, 120, slots)
		require.NoError(t, err)
		assert.Equal(t, want[start], got, "start=%s", start)
	}
}

func TestIsSlotAvailableUnknownSlotIsAnError(t *testing.T) {
	ok, err := IsSlotAvailable(nil, "19:00", 60, DefaultSlots())
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrUnknownSlot))
}

func TestIsSlotAvailableEndToEndScenario(t *testing.T) {
	slots := DefaultSlots()
	// canapea-2L (45) + calorifere (30) = 75 minutes, two slots.
	ok, err := IsSlotAvailable([]string{"17:00"}, "16:00", 75, slots)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = IsSlotAvailable([]string{"14:00"}, "09:00", 75, slots)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSlotGrid(t *testing.T) {
	grid := SlotGrid([]string{"11:00"}, 120, DefaultSlots())
	require.Len(t, grid, 10)
	assert.Equal(t, SlotStatus{Start: "09:00", Available: true}, grid[0])
	assert.Equal(t, SlotStatus{Start: "10:00", Available: false}, grid[1])
	assert.Equal(t, SlotStatus{Start: "18:00", Available: false}, grid[9])
}

func TestClassifyThresholdTable(t *testing.T) {
	tests := []struct {
		occupied int
		want     Capacity
	}{
		{0, CapacityOpen},
		{3, CapacityOpen},
		{7, CapacityOpen},
		{8, CapacityLimited},
		{9, CapacityLimited},
		{10, CapacityFull},
		{11, CapacityFull},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.occupied, 10), "occupied=%d", tt.occupied)
	}
}

func TestClassifyDate(t *testing.T) {
	ctx := context.Background()
	slots := DefaultSlots()
	table, err := NewStaticTable(map[string][]string{
		"2026-11-02": {"09:00", "10:00", "14:00"},
		"2026-11-03": {"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00"},
		"2026-11-04": slots.All(),
		"2026-11-05": {"09:00", "09:00", "bogus"},
	})
	require.NoError(t, err)

	tests := []struct {
		day      string
		want     Capacity
		occupied int
	}{
		{"2026-11-01", CapacityOpen, 0},
		{"2026-11-02", CapacityOpen, 3},
		{"2026-11-03", CapacityLimited, 8},
		{"2026-11-04", CapacityFull, 10},
		{"2026-11-05", CapacityOpen, 1},
	}
	for _, tt := range tests {
		d, err := ParseDate(tt.day)
		require.NoError(t, err)
		capacity, count, err := ClassifyDate(ctx, table, d, slots)
		require.NoError(t, err)
		assert.Equal(t, tt.want, capacity, tt.day)
		assert.Equal(t, tt.occupied, count, tt.day)
	}
}

func TestMonthMarksPastDaysUnselectable(t *testing.T) {
	table, err := NewStaticTable(map[string][]string{
		"2026-10-05": DefaultSlots().All(),
		"2026-10-25": DefaultSlots().All(),
	})
	require.NoError(t, err)
	today := Date{Year: 2026, Month: time.October, Day: 19}

	days, err := Month(context.Background(), table, 2026, time.October, today, DefaultSlots())
	require.NoError(t, err)
	require.Len(t, days, 31)

	for _, day := range days {
		assert.Equal(t, !day.Date.Before(today), day.Selectable, day.Date.String())
	}
	// Full past day: still full, not selectable.
	assert.Equal(t, CapacityFull, days[4].Capacity)
	assert.False(t, days[4].Selectable)
	// Full future day stays selectable; the classification is advisory.
	assert.Equal(t, CapacityFull, days[24].Capacity)
	assert.True(t, days[24].Selectable)
}

func TestStaticTableIsReadOnly(t *testing.T) {
	table := DefaultTable()
	d, _ := ParseDate("2025-11-25")

	got, err := table.Occupied(context.Background(), d)
	require.NoError(t, err)
	got[0] = "mutated"

	again, _ := table.Occupied(context.Background(), d)
	assert.Equal(t, []string{"09:00", "10:00", "14:00"}, again)
	assert.Len(t, table.Days(), 2)
}

func TestStaticTableRange(t *testing.T) {
	table := DefaultTable()
	from, _ := ParseDate("2025-11-26")
	to, _ := ParseDate("2025-12-31")

	days, err := table.OccupiedRange(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, []string{"11:00", "15:00", "16:00"}, days[from])
}

func TestDateHelpers(t *testing.T) {
	d, err := ParseDate("2025-11-25")
	require.NoError(t, err)
	assert.Equal(t, "2025-11-25", d.String())
	assert.Equal(t, "25.11.2025", d.Display())
	assert.True(t, d.Before(d.AddDays(1)))
	assert.False(t, d.Before(d))
	assert.Equal(t, "2026-01-01", Date{Year: 2025, Month: time.December, Day: 31}.AddDays(1).String())

	_, err = ParseDate("25/11/2025")
	assert.True(t, errors.Is(err, ErrInvalidDate))

	loc, _ := time.LoadLocation("Europe/Bucharest")
	// 23:30 UTC is already the next day in Bucharest.
	now := time.Date(2026, 10, 18, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-10-19", Today(now, loc).String())
}

func TestDateJSON(t *testing.T) {
	d := Date{Year: 2026, Month: time.March, Day: 4}
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-04"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, d, back)

	assert.Error(t, json.Unmarshal([]byte(`"nope"`), &back))
}
