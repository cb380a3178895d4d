package formatter

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/alexanderramin/gradeplan/internal/app"
	"github.com/alexanderramin/gradeplan/internal/domain"
	"github.com/alexanderramin/gradeplan/internal/export"
)

const loadBarWidth = 12

// termCodes lists a term's subjects in code order.
func termCodes(t domain.PlannedTerm) string {
	return strings.Join(slices.Sorted(maps.Keys(t.Sections)), " ")
}

// PlanRows builds one table row per ranked plan.
func PlanRows(plans []domain.RankedPlan) [][]string {
	best := 0.0
	if len(plans) > 0 {
		best = plans[0].Score
	}
	return lo.Map(plans, func(p domain.RankedPlan, _ int) []string {
		terms := lo.Map(p.Terms, func(t domain.PlannedTerm, _ int) string { return termCodes(t) })
		return []string{
			Bold(fmt.Sprintf("#%d", p.Rank)),
			ScoreStyle(p.Score, best).Render(fmt.Sprintf("%.3f", p.Score)),
			fmt.Sprintf("%d", len(p.Terms)),
			strings.Join(terms, Dim(" │ ")),
		}
	})
}

// FormatPlanResponse summarizes a planner run: outcome, budgets and the
// ranked plans.
func FormatPlanResponse(resp *app.PlanResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", OutcomeBadge(resp.Outcome), Dim("run "+resp.RunID))
	fmt.Fprintf(&b, "%s %d subjects from %s, %d branches explored",
		Dim("Goal:"), resp.Goal, Bold(resp.StartTerm.String()), resp.Explored)
	if resp.Abandoned > 0 {
		fmt.Fprintf(&b, ", %s", StyleYellow.Render(fmt.Sprintf("%d abandoned", resp.Abandoned)))
	}
	b.WriteString("\n\n")

	if len(resp.Plans) == 0 {
		b.WriteString(Dim("No plans to show.") + "\n")
	} else {
		b.WriteString(RenderTable([]string{"RANK", "SCORE", "TERMS", "SUBJECTS BY TERM"}, PlanRows(resp.Plans)))
	}

	if len(resp.Uncovered) > 0 {
		b.WriteString("\n" + Dim("Left uncovered by abandoned branches: "+strings.Join(resp.Uncovered, ", ")) + "\n")
	}
	if len(resp.Warnings) > 0 {
		b.WriteString("\n" + Warnings(resp.Warnings))
	}
	return RenderBox("Plans", b.String())
}

// FormatPlan renders every term of a plan: credit load, score, chosen
// sections and the weekly grid.
func FormatPlan(plan domain.RankedPlan, maxCredits int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n", Header(fmt.Sprintf("Plan #%d", plan.Rank)), Dim(fmt.Sprintf("score %.3f", plan.Score)))

	for i, t := range plan.Terms {
		fmt.Fprintf(&b, "%s  %s  %s\n",
			StyleBlue.Render(Bold(t.Term.String())),
			RenderLoad(t.Credits, maxCredits, loadBarWidth),
			Dim(fmt.Sprintf("score %.3f", t.Score)))

		if len(t.Sections) == 0 {
			b.WriteString(Dim("  no subjects this term") + "\n")
		}
		for _, code := range slices.Sorted(maps.Keys(t.Sections)) {
			fmt.Fprintf(&b, "  %s %s\n", StyleFg.Render(fmt.Sprintf("%-7s", code)), Dim(t.Sections[code].String()))
		}

		b.WriteString(export.TextTable(export.NewGrid(t.Sections)))
		if i < len(plan.Terms)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
