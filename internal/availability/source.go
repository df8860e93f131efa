package availability

import (
	"context"
	"sort"
)

// Source answers which slots are already taken on a day. Implementations are
// read-only from the booking flow's point of view.
type Source interface {
	Occupied(ctx context.Context, date Date) ([]string, error)
}

// StaticTable is the in-memory seed table. It is never mutated after
// construction, so concurrent reads need no locking.
type StaticTable struct {
	days map[Date][]string
}

// NewStaticTable copies the given ISO-keyed table.
func NewStaticTable(seed map[string][]string) (*StaticTable, error) {
	t := &StaticTable{days: make(map[Date][]string, len(seed))}
	for key, slots := range seed {
		d, err := ParseDate(key)
		if err != nil {
			return nil, err
		}
		cp := make([]string, len(slots))
		copy(cp, slots)
		t.days[d] = cp
	}
	return t, nil
}

// DefaultTable returns the seed table shipped with the site.
func DefaultTable() *StaticTable {
	t, err := NewStaticTable(map[string][]string{
		"2025-11-25": {"09:00", "10:00", "14:00"},
		"2025-11-26": {"11:00", "15:00", "16:00"},
	})
	if err != nil {
		panic(err)
	}
	return t
}

// Occupied returns a copy of the occupied slots for date, or nil when the day
// has no entry.
func (t *StaticTable) Occupied(_ context.Context, date Date) ([]string, error) {
	slots, ok := t.days[date]
	if !ok {
		return nil, nil
	}
	out := make([]string, len(slots))
	copy(out, slots)
	return out, nil
}

// Days lists the dates present in the table in ascending order.
func (t *StaticTable) Days() []Date {
	out := make([]Date, 0, len(t.days))
	for d := range t.days {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
