package scheduler

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/alexanderramin/gradeplan/internal/domain"
)

var (
	// ErrMissingCredits marks a subject offered in a timesheet with no credit
	// weight. It is a data-integrity violation, not a planning outcome.
	ErrMissingCredits = errors.New("missing credit weight")
	// ErrNoFeasiblePlan means a search budget ran out before any plan covered
	// every subject.
	ErrNoFeasiblePlan = errors.New("no feasible plan")
)

type Outcome string

const (
	// OutcomeComplete: every branch covered every subject.
	OutcomeComplete Outcome = "complete"
	// OutcomePartial: a budget ran out; only the branches that had already
	// covered every subject are returned.
	OutcomePartial Outcome = "partial"
)

type StopReason string

const (
	StopNone      StopReason = ""
	StopTermLimit StopReason = "term_limit"
	StopPlanLimit StopReason = "plan_limit"
)

const (
	DefaultMaxTerms = 12
	DefaultMaxPlans = 20000
)

// Limits bound the search. A subject that no term can ever place would
// otherwise keep the term alternation going forever.
type Limits struct {
	MaxTerms int
	MaxPlans int
}

func (l Limits) withDefaults() Limits {
	if l.MaxTerms <= 0 {
		l.MaxTerms = DefaultMaxTerms
	}
	if l.MaxPlans <= 0 {
		l.MaxPlans = DefaultMaxPlans
	}
	return l
}

// Input is everything the search consumes. Timesheets[0] drives terms
// 0, 2, 4, … and Timesheets[1] drives terms 1, 3, 5, ….
type Input struct {
	Timesheets [2]domain.Timesheet
	Credits    domain.CreditMap
	MaxCredits int
	Limits     Limits
}

type Result struct {
	Plans     []*Plan
	Goal      int
	Outcome   Outcome
	Stop      StopReason
	Terms     int
	Passes    int
	Branches  int
	Abandoned int
	Uncovered []string
}

// NoFeasiblePlanError reports which budget ran out and what stayed uncovered.
type NoFeasiblePlanError struct {
	Stop      StopReason
	Terms     int
	Plans     int
	Uncovered []string
}

func (e *NoFeasiblePlanError) Error() string {
	return fmt.Sprintf("%s after %d terms and %d branches (%s); uncovered: %s",
		ErrNoFeasiblePlan, e.Terms, e.Plans, e.Stop, strings.Join(e.Uncovered, ", "))
}

func (e *NoFeasiblePlanError) Unwrap() error { return ErrNoFeasiblePlan }

// Search runs the term-by-term branching search until every branch covers
// every subject found in either timesheet, or a budget runs out.
func Search(ctx context.Context, in Input) (*Result, error) {
	if in.MaxCredits <= 0 {
		return nil, fmt.Errorf("max credits must be positive, got %d", in.MaxCredits)
	}
	subjects := subjectUniverse(in.Timesheets)
	// Only subjects that can be placed need a weight. One offered in
	// neither term stays in the goal and runs into the term budget.
	var missing []string
	for _, code := range subjects {
		if !in.Timesheets[0].Offered(code) && !in.Timesheets[1].Offered(code) {
			continue
		}
		if _, ok := in.Credits[code]; !ok {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingCredits, strings.Join(missing, ", "))
	}

	e := &engine{
		in:       in,
		limits:   in.Limits.withDefaults(),
		subjects: subjects,
		res:      &Result{Goal: len(subjects)},
	}
	return e.run(ctx)
}

type engine struct {
	in       Input
	limits   Limits
	subjects []string
	term     int
	res      *Result
}

func (e *engine) run(ctx context.Context) (*Result, error) {
	plans := e.seed()
	for {
		var ok bool
		var err error
		plans, ok, err = e.fill(ctx, plans)
		if err != nil {
			return nil, err
		}
		if !ok {
			return e.exhausted(plans, StopPlanLimit)
		}
		if allComplete(plans) {
			break
		}
		if e.term+1 >= e.limits.MaxTerms {
			return e.exhausted(plans, StopTermLimit)
		}
		e.term++
		for _, p := range plans {
			p.extend()
		}
	}

	e.res.Plans = plans
	e.res.Outcome = OutcomeComplete
	e.res.Terms = e.term + 1
	return e.res, nil
}

func (e *engine) timesheet() domain.Timesheet {
	return e.in.Timesheets[e.term%2]
}

// seed starts one branch per section of the most constrained first-term
// subject, or a single empty branch when the first term can place nothing.
func (e *engine) seed() []*Plan {
	goal := len(e.subjects)
	first := newPlan(goal)
	cand, ok := NextSubject(e.timesheet(), first.Covered, first.Current(), e.in.Credits, e.in.MaxCredits)
	if !ok {
		first.Current().Finished = true
		return []*Plan{first}
	}
	weight := e.in.Credits[cand.Code]
	plans := make([]*Plan, 0, len(cand.Sections))
	for _, s := range cand.Sections {
		p := newPlan(goal)
		p.commit(cand.Code, s.Clone(), weight)
		plans = append(plans, p)
	}
	e.res.Branches += len(cand.Sections) - 1
	return plans
}

// fill repeats passes over the population until every current term is
// finished. Each pass adds at most one subject per branch; clones spawned
// during a pass join the population only after it, so they are first
// visited on the next pass. It returns false when the plan budget runs out.
func (e *engine) fill(ctx context.Context, plans []*Plan) ([]*Plan, bool, error) {
	ts := e.timesheet()
	for {
		if err := ctx.Err(); err != nil {
			return nil, false, fmt.Errorf("search cancelled in term %d: %w", e.term, err)
		}

		var clones []*Plan
		active := false
		for _, p := range plans {
			cur := p.Current()
			if cur.Finished {
				continue
			}
			active = true
			cand, ok := NextSubject(ts, p.Covered, cur, e.in.Credits, e.in.MaxCredits)
			if !ok {
				cur.Finished = true
				continue
			}
			weight := e.in.Credits[cand.Code]
			for _, s := range cand.Sections[1:] {
				c := p.clone()
				c.commit(cand.Code, s.Clone(), weight)
				clones = append(clones, c)
			}
			p.commit(cand.Code, cand.Sections[0].Clone(), weight)
			e.res.Branches += len(cand.Sections) - 1
		}
		if !active {
			return plans, true, nil
		}

		e.res.Passes++
		plans = append(plans, clones...)
		if len(plans) > e.limits.MaxPlans {
			return plans, false, nil
		}
	}
}

// exhausted turns a budget stop into either a partial result holding the
// branches that already covered everything, or a NoFeasiblePlanError.
func (e *engine) exhausted(plans []*Plan, stop StopReason) (*Result, error) {
	var complete []*Plan
	uncovered := make(map[string]bool)
	for _, p := range plans {
		if p.Complete() {
			complete = append(complete, p)
			continue
		}
		for _, code := range e.subjects {
			if !p.Covered[code] {
				uncovered[code] = true
			}
		}
	}
	codes := slices.Sorted(maps.Keys(uncovered))

	if len(complete) == 0 {
		return nil, &NoFeasiblePlanError{
			Stop:      stop,
			Terms:     e.term + 1,
			Plans:     len(plans),
			Uncovered: codes,
		}
	}

	for _, p := range complete {
		p.Current().Finished = true
	}
	e.res.Plans = complete
	e.res.Outcome = OutcomePartial
	e.res.Stop = stop
	e.res.Terms = e.term + 1
	e.res.Abandoned = len(plans) - len(complete)
	e.res.Uncovered = codes
	return e.res, nil
}

func allComplete(plans []*Plan) bool {
	for _, p := range plans {
		if !p.Complete() {
			return false
		}
	}
	return true
}

// subjectUniverse lists every code appearing in either timesheet, offered
// or not, in ascending order.
func subjectUniverse(timesheets [2]domain.Timesheet) []string {
	seen := make(map[string]bool)
	for _, ts := range timesheets {
		for code := range ts {
			seen[code] = true
		}
	}
	return slices.Sorted(maps.Keys(seen))
}
