package domain

import (
	"slices"
	"strings"
)

// Section is one offered weekly meeting pattern ("turma") of a subject.
type Section struct {
	Slots []Slot `json:"slots" yaml:"slots"`
}

// NewSection copies the given slots into a Section.
func NewSection(slots ...Slot) Section {
	return Section{Slots: slices.Clone(slots)}
}

// Sorted returns the slots ordered by (weekday, start, finish).
func (s Section) Sorted() []Slot {
	out := slices.Clone(s.Slots)
	slices.SortFunc(out, Slot.Compare)
	return out
}

// Equal reports whether both sections meet at exactly the same slots,
// regardless of the order the slots were listed in.
func (s Section) Equal(o Section) bool {
	if len(s.Slots) != len(o.Slots) {
		return false
	}
	return slices.Equal(s.Sorted(), o.Sorted())
}

// Clone returns a deep copy.
func (s Section) Clone() Section {
	return Section{Slots: slices.Clone(s.Slots)}
}

func (s Section) String() string {
	parts := make([]string, 0, len(s.Slots))
	for _, sl := range s.Sorted() {
		parts = append(parts, sl.String())
	}
	return strings.Join(parts, ", ")
}
