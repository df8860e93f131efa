package availability

import (
	"context"
	"fmt"
	"time"
)

// Capacity is the advisory classification of a day.
type Capacity string

const (
	CapacityFull    Capacity = "full"
	CapacityLimited Capacity = "limited"
	CapacityOpen    Capacity = "open"
)

// limitedThreshold is the highest remaining-slot count still shown as limited.
const limitedThreshold = 2

// Classify maps a day's occupied count onto full / limited / open:
// remaining 0 is full, 1..2 is limited, anything above is open.
func Classify(occupied, totalSlots int) Capacity {
	remaining := totalSlots - occupied
	switch {
	case remaining <= 0:
		return CapacityFull
	case remaining <= limitedThreshold:
		return CapacityLimited
	default:
		return CapacityOpen
	}
}

// DayStatus is one calendar tile.
type DayStatus struct {
	Date       Date     `json:"date"`
	Capacity   Capacity `json:"capacity"`
	Occupied   int      `json:"occupied"`
	Selectable bool     `json:"selectable"`
}

// ClassifyDate classifies a single day against source. Days absent from the
// source count as fully free.
func ClassifyDate(ctx context.Context, source Source, date Date, slots Slots) (Capacity, int, error) {
	occupied, err := source.Occupied(ctx, date)
	if err != nil {
		return "", 0, err
	}
	count := countKnown(occupied, slots)
	return Classify(count, slots.Len()), count, nil
}

// Month returns one DayStatus per day of the given month. Days before today are
// never selectable; full days stay selectable because the classification is
// advisory only.
func Month(ctx context.Context, source Source, year int, month time.Month, today Date, slots Slots) ([]DayStatus, error) {
	first := Date{Year: year, Month: month, Day: 1}
	var days []DayStatus
	for d := first; d.Month == month && d.Year == year; d = d.AddDays(1) {
		capacity, count, err := ClassifyDate(ctx, source, d, slots)
		if err != nil {
			return nil, fmt.Errorf("availability: month %s: %w", d, err)
		}
		days = append(days, DayStatus{
			Date:       d,
			Capacity:   capacity,
			Occupied:   count,
			Selectable: !d.Before(today),
		})
	}
	return days, nil
}

// countKnown counts distinct occupied entries that belong to the sequence, so
// stray values in the table cannot push remaining below zero.
func countKnown(occupied []string, slots Slots) int {
	seen := make(map[string]struct{}, len(occupied))
	for _, slot := range occupied {
		if slots.Contains(slot) {
			seen[slot] = struct{}{}
		}
	}
	return len(seen)
}
