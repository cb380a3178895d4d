package export

import (
	"maps"
	"slices"

	"github.com/alexanderramin/gradeplan/internal/domain"
)

const (
	FirstHour = 8
	LastHour  = 23
	Hours     = LastHour - FirstHour
)

// Grid is a weekly occupancy table: one row per hour from 08:00 to 23:00,
// one column per weekday starting on Sunday. Cells hold subject codes.
type Grid [Hours][7]string

// NewGrid marks every hour a section meets during. A slot covers hour h
// when it starts at or before h and finishes after it.
func NewGrid(sections map[string]domain.Section) Grid {
	var g Grid
	for _, code := range slices.Sorted(maps.Keys(sections)) {
		for _, slot := range sections[code].Slots {
			if !slot.Weekday.Valid() {
				continue
			}
			for h := max(slot.StartHour(), FirstHour); h < min(slot.FinishHour(), LastHour); h++ {
				cell := &g[h-FirstHour][slot.Weekday-1]
				if *cell == "" {
					*cell = code
				}
			}
		}
	}
	return g
}

// Span returns the first occupied hour and the hour after the last one.
func (g Grid) Span() (first, last int, ok bool) {
	first, last = -1, -1
	for i, row := range g {
		for _, cell := range row {
			if cell != "" {
				if first < 0 {
					first = i
				}
				last = i
				break
			}
		}
	}
	if first < 0 {
		return 0, 0, false
	}
	return first + FirstHour, last + FirstHour + 1, true
}

// At returns the cell for a clock hour and weekday.
func (g Grid) At(hour int, day domain.Weekday) string {
	return g[hour-FirstHour][day-1]
}
