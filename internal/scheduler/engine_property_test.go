package scheduler

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/alexanderramin/gradeplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomTimesheets(rng *rand.Rand) ([2]domain.Timesheet, domain.CreditMap) {
	sheets := [2]domain.Timesheet{{}, {}}
	credits := domain.CreditMap{}

	numSubjects := rng.Intn(5) + 1
	for i := 0; i < numSubjects; i++ {
		code := fmt.Sprintf("MC%03d", 100+i)
		credits[code] = rng.Intn(6) + 1
		for term := range sheets {
			if rng.Intn(3) == 0 {
				continue
			}
			numSections := rng.Intn(4)
			sections := make([]domain.Section, 0, numSections)
			for j := 0; j < numSections; j++ {
				var slots []domain.Slot
				for k := rng.Intn(2) + 1; k > 0; k-- {
					start := rng.Intn(13) + 8
					slots = append(slots, domain.Slot{
						Weekday: domain.Weekday(rng.Intn(5) + 2),
						Start:   start * 100,
						Finish:  (start + rng.Intn(2) + 1) * 100,
					})
				}
				sections = append(sections, domain.NewSection(slots...))
			}
			sheets[term][code] = sections
		}
	}
	return sheets, credits
}

// TestSearch_Invariants_NoOverlapsAndCapRespected property-tests every
// returned plan: no two subjects overlap within a term, term credits stay
// within the cap, every subject is covered exactly once, and each chosen
// section is one the term's timesheet actually offers.
func TestSearch_Invariants_NoOverlapsAndCapRespected(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 300; trial++ {
		sheets, credits := randomTimesheets(rng)
		maxCredits := rng.Intn(7) + 6

		res, err := Search(context.Background(), Input{
			Timesheets: sheets,
			Credits:    credits,
			MaxCredits: maxCredits,
			Limits:     Limits{MaxTerms: 6, MaxPlans: 5000},
		})
		if err != nil {
			require.ErrorIs(t, err, ErrNoFeasiblePlan, "trial %d", trial)
			continue
		}

		for pi, p := range res.Plans {
			require.True(t, p.Complete(), "trial %d plan %d must be complete", trial, pi)

			// Invariant 5: every branch was carried through the same terms
			assert.Len(t, p.Terms, len(res.Plans[0].Terms), "trial %d plan %d term count", trial, pi)

			placed := map[string]int{}
			for ti, term := range p.Terms {
				// Invariant 1: credit cap
				sum := 0
				for _, code := range term.Codes() {
					sum += credits[code]
					placed[code]++
				}
				assert.Equal(t, sum, term.Credits, "trial %d plan %d term %d credits", trial, pi, ti)
				assert.LessOrEqual(t, term.Credits, maxCredits, "trial %d plan %d term %d over cap", trial, pi, ti)

				// Invariant 2: no overlaps between subjects
				codes := term.Codes()
				for a := 0; a < len(codes); a++ {
					for b := a + 1; b < len(codes); b++ {
						for _, s := range term.Sections[codes[a]].Slots {
							assert.False(t, Conflicts(s, term.Sections[codes[b]].Slots),
								"trial %d plan %d term %d: %s overlaps %s", trial, pi, ti, codes[a], codes[b])
						}
					}
				}

				// Invariant 3: sections come from the term's timesheet
				ts := sheets[ti%2]
				for code, s := range term.Sections {
					assert.True(t, slices.ContainsFunc(ts[code], s.Equal),
						"trial %d plan %d term %d: %s section not offered", trial, pi, ti, code)
				}
			}

			// Invariant 4: each subject exactly once
			assert.Len(t, placed, res.Goal, "trial %d plan %d", trial, pi)
			for code, n := range placed {
				assert.Equal(t, 1, n, "trial %d plan %d: %s placed %d times", trial, pi, code, n)
			}
		}
	}
}
