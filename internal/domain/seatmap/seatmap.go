// Package seatmap models the bus seat grid: 10 rows of 4 seats
// (2 left + aisle + 2 right), numbered row-major from 1 to 40.
package seatmap

import "sort"

const (
	Rows        = 10
	SeatsPerRow = 4
	TotalSeats  = Rows * SeatsPerRow
)

// SeatStatus is derived from the booked and selected sets, never stored.
type SeatStatus string

const (
	SeatBooked    SeatStatus = "booked"
	SeatSelected  SeatStatus = "selected"
	SeatAvailable SeatStatus = "available"
)

// SeatNumber maps row r in [0,Rows) and position p in [1,SeatsPerRow] to the
// persisted seat number. The backend stores these numbers, so the formula
// must not change.
func SeatNumber(row, pos int) int {
	return row*SeatsPerRow + pos
}

// ValidSeat reports whether n is inside the grid.
func ValidSeat(n int) bool {
	return n >= 1 && n <= TotalSeats
}

// Layout returns the grid row by row, each row holding its seat numbers in
// position order. Rendering splits each row as [0:2] left, [2:4] right.
func Layout() [][]int {
	grid := make([][]int, Rows)
	for r := 0; r < Rows; r++ {
		row := make([]int, SeatsPerRow)
		for p := 1; p <= SeatsPerRow; p++ {
			row[p-1] = SeatNumber(r, p)
		}
		grid[r] = row
	}
	return grid
}

// Selection tracks an in-progress seat pick: at most max seats, never one
// that is already booked.
type Selection struct {
	max      int
	booked   map[int]struct{}
	selected map[int]struct{}
}

// NewSelection builds a selection over the given booked seat numbers.
// Out-of-grid booked numbers are ignored.
func NewSelection(max int, booked []int) *Selection {
	b := make(map[int]struct{}, len(booked))
	for _, n := range booked {
		if ValidSeat(n) {
			b[n] = struct{}{}
		}
	}
	return &Selection{
		max:      max,
		booked:   b,
		selected: make(map[int]struct{}),
	}
}

// Toggle flips seat n. Booked seats are never selectable; toggles past the
// max are ignored rather than reported.
func (s *Selection) Toggle(n int) {
	if !ValidSeat(n) {
		return
	}
	if _, ok := s.booked[n]; ok {
		return
	}
	if _, ok := s.selected[n]; ok {
		delete(s.selected, n)
		return
	}
	if len(s.selected) >= s.max {
		return
	}
	s.selected[n] = struct{}{}
}

// Status derives the display state for seat n.
func (s *Selection) Status(n int) SeatStatus {
	if _, ok := s.booked[n]; ok {
		return SeatBooked
	}
	if _, ok := s.selected[n]; ok {
		return SeatSelected
	}
	return SeatAvailable
}

// Selected returns the current selection in ascending order.
func (s *Selection) Selected() []int {
	out := make([]int, 0, len(s.selected))
	for n := range s.selected {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Count returns the number of selected seats.
func (s *Selection) Count() int {
	return len(s.selected)
}

// Confirm finalizes the selection. Valid only when between 1 and max seats
// are picked.
func (s *Selection) Confirm() ([]int, bool) {
	if len(s.selected) < 1 || len(s.selected) > s.max {
		return nil, false
	}
	return s.Selected(), true
}

// Reset clears the selection so the map can be reopened for another ticket
// without stale carry-over.
func (s *Selection) Reset() {
	s.selected = make(map[int]struct{})
}

// Conflicts returns the requested seats that are invalid or already in the
// booked set. Used by the booking service to re-validate a client-submitted
// selection against the authoritative occupancy inside the transaction.
func Conflicts(requested, booked []int) []int {
	taken := make(map[int]struct{}, len(booked))
	for _, n := range booked {
		taken[n] = struct{}{}
	}
	var out []int
	for _, n := range requested {
		if !ValidSeat(n) {
			out = append(out, n)
			continue
		}
		if _, ok := taken[n]; ok {
			out = append(out, n)
		}
	}
	return out
}

// Unique reports whether the requested seat numbers are free of duplicates.
func Unique(requested []int) bool {
	seen := make(map[int]struct{}, len(requested))
	for _, n := range requested {
		if _, ok := seen[n]; ok {
			return false
		}
		seen[n] = struct{}{}
	}
	return true
}
