package app

import "github.com/alexanderramin/gradeplan/internal/domain"

// TimesheetOptions controls where BuildTimesheet may look for sections.
type TimesheetOptions struct {
	Offline bool
	Refresh bool
}

// TimesheetResult is one term's timesheet with the credit weights of the
// subjects it covers and any subjects whose pages could not be read.
type TimesheetResult struct {
	Term      domain.Term
	Timesheet domain.Timesheet
	Credits   domain.CreditMap
	Scraped   int
	Warnings  []string
}

type ImportResult struct {
	SubjectCount int
	CreditCount  int
	TermCount    int
	SectionCount int
}
