package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Term is one academic half-year. Half is 1 or 2.
type Term struct {
	Year int
	Half int
}

// Next returns the following half-year.
func (t Term) Next() Term {
	if t.Half == 1 {
		return Term{Year: t.Year, Half: 2}
	}
	return Term{Year: t.Year + 1, Half: 1}
}

// Previous returns the preceding half-year.
func (t Term) Previous() Term {
	if t.Half == 1 {
		return Term{Year: t.Year - 1, Half: 2}
	}
	return Term{Year: t.Year, Half: 1}
}

// String renders the canonical "{half}s{year}" form, e.g. "1s2024".
func (t Term) String() string {
	return fmt.Sprintf("%ds%d", t.Half, t.Year)
}

// Before reports whether t comes strictly earlier than o.
func (t Term) Before(o Term) bool {
	if t.Year != o.Year {
		return t.Year < o.Year
	}
	return t.Half < o.Half
}

// IsZero reports whether the term was never set.
func (t Term) IsZero() bool {
	return t.Year == 0 && t.Half == 0
}

// ParseTerm parses the canonical "{half}s{year}" form.
func ParseTerm(s string) (Term, error) {
	half, year, ok := strings.Cut(strings.TrimSpace(s), "s")
	if !ok {
		return Term{}, fmt.Errorf("term %q must look like 1s2024", s)
	}
	h, err := strconv.Atoi(half)
	if err != nil || (h != 1 && h != 2) {
		return Term{}, fmt.Errorf("term %q: half must be 1 or 2", s)
	}
	y, err := strconv.Atoi(year)
	if err != nil || y <= 0 {
		return Term{}, fmt.Errorf("term %q: invalid year", s)
	}
	return Term{Year: y, Half: h}, nil
}

// TermFromDate returns the term a calendar date falls in: the first half
// runs until the end of July.
func TermFromDate(d time.Time) Term {
	if d.Month() < time.August {
		return Term{Year: d.Year(), Half: 1}
	}
	return Term{Year: d.Year(), Half: 2}
}

func (t Term) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Term) UnmarshalText(b []byte) error {
	parsed, err := ParseTerm(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
