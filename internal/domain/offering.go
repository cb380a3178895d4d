package domain

import "time"

// Offering is what one term's schedule page says about a subject. A subject
// the term does not offer has Offered false and no sections.
type Offering struct {
	Subject   Subject
	Term      Term
	Offered   bool
	Credits   int
	Sections  []Section
	FetchedAt time.Time
}
