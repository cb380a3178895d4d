package domain

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

type Weekday int

const (
	Sunday Weekday = iota + 1
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// weekdayNames are the day labels printed on the public schedule pages.
var weekdayNames = map[string]Weekday{
	"Domingo": Sunday,
	"Segunda": Monday,
	"Terça":   Tuesday,
	"Quarta":  Wednesday,
	"Quinta":  Thursday,
	"Sexta":   Friday,
	"Sábado":  Saturday,
}

// WeekdayLabels lists the day labels in weekday order (index 0 = Sunday).
var WeekdayLabels = [7]string{"Domingo", "Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado"}

// ParseWeekday maps a schedule-page day label to a Weekday.
func ParseWeekday(name string) (Weekday, error) {
	if d, ok := weekdayNames[strings.TrimSpace(name)]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("unexpected weekday %q", name)
}

func (d Weekday) Valid() bool {
	return d >= Sunday && d <= Saturday
}

func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return WeekdayLabels[d-1]
}

// Slot is one weekly recurring meeting interval. Start and Finish encode a
// 24-hour clock as hour*100+minute.
type Slot struct {
	Weekday Weekday `json:"weekday" yaml:"weekday"`
	Start   int     `json:"start" yaml:"start"`
	Finish  int     `json:"finish" yaml:"finish"`
}

// NewSlot builds a slot from a day label and an "HH:MM - HH:MM" range.
func NewSlot(day, hours string) (Slot, error) {
	wd, err := ParseWeekday(day)
	if err != nil {
		return Slot{}, err
	}
	from, to, ok := strings.Cut(hours, "-")
	if !ok {
		return Slot{}, fmt.Errorf("time range %q must be HH:MM - HH:MM", hours)
	}
	start, err := ParseClock(from)
	if err != nil {
		return Slot{}, fmt.Errorf("time range %q: %w", hours, err)
	}
	finish, err := ParseClock(to)
	if err != nil {
		return Slot{}, fmt.Errorf("time range %q: %w", hours, err)
	}
	if start >= finish {
		return Slot{}, fmt.Errorf("time range %q: start must be before finish", hours)
	}
	return Slot{Weekday: wd, Start: start, Finish: finish}, nil
}

// MustSlot is NewSlot for literals known to be valid; it panics otherwise.
func MustSlot(day, hours string) Slot {
	s, err := NewSlot(day, hours)
	if err != nil {
		panic(err)
	}
	return s
}

// ParseClock parses "HH:MM" into hour*100+minute.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("clock %q must be HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("clock %q: invalid hour", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock %q: invalid minute", s)
	}
	return h*100 + m, nil
}

// Compare orders slots by (weekday, start, finish).
func (s Slot) Compare(o Slot) int {
	if c := cmp.Compare(s.Weekday, o.Weekday); c != 0 {
		return c
	}
	if c := cmp.Compare(s.Start, o.Start); c != 0 {
		return c
	}
	return cmp.Compare(s.Finish, o.Finish)
}

// Overlaps reports whether both slots fall on the same day and their
// half-open [start, finish) intervals intersect.
func (s Slot) Overlaps(o Slot) bool {
	return s.Weekday == o.Weekday && s.Start < o.Finish && s.Finish > o.Start
}

func (s Slot) StartHour() int  { return s.Start / 100 }
func (s Slot) FinishHour() int { return s.Finish / 100 }

func (s Slot) String() string {
	return fmt.Sprintf("%s %02d:%02d-%02d:%02d", s.Weekday, s.Start/100, s.Start%100, s.Finish/100, s.Finish%100)
}
