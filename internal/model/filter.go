package model

import "strings"

// ActiveFilter narrows customer listings to active or inactive rows.
type ActiveFilter string

const (
	ActiveAll  ActiveFilter = "all"
	ActiveOnly ActiveFilter = "active"
	Inactive   ActiveFilter = "inactive"
)

func (f ActiveFilter) String() string { return string(f) }

// ParseActiveFilter normalizes input; empty => all.
// Returns (value, true) if valid; otherwise (all, false).
func ParseActiveFilter(s string) (ActiveFilter, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ActiveAll, true
	case "active":
		return ActiveOnly, true
	case "inactive":
		return Inactive, true
	default:
		return ActiveAll, false
	}
}

// TimeFilter narrows appointment listings relative to a reference time.
// Future sorts ascending, past descending, all ascending.
type TimeFilter string

const (
	TimeAll    TimeFilter = "all"
	TimeFuture TimeFilter = "future"
	TimePast   TimeFilter = "past"
)

func (f TimeFilter) String() string { return string(f) }

// ParseTimeFilter normalizes input; empty => all.
func ParseTimeFilter(s string) (TimeFilter, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return TimeAll, true
	case "future", "upcoming":
		return TimeFuture, true
	case "past":
		return TimePast, true
	default:
		return TimeAll, false
	}
}
