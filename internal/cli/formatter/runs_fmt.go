package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gradeplan/internal/domain"
)

func FormatRunList(runs []*domain.PlanRun, now time.Time) string {
	if len(runs) == 0 {
		return Dim("No plan runs recorded yet.") + "\n"
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			TruncID(r.ID),
			r.StartTerm.String(),
			strings.Join(r.Subjects, " "),
			fmt.Sprintf("%d", r.MaxCredits),
			OutcomeBadge(r.Outcome),
			fmt.Sprintf("%d", len(r.Plans)),
			HumanTimestamp(r.CreatedAt, now),
		})
	}
	return RenderTable([]string{"ID", "START", "SUBJECTS", "CAP", "OUTCOME", "PLANS", "CREATED"}, rows)
}

// FormatRun shows a stored run's parameters, its ranking and its best plan.
func FormatRun(run *domain.PlanRun) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Dim("Run:     "), run.ID)
	fmt.Fprintf(&b, "%s %s\n", Dim("Created: "), run.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "%s %s\n", Dim("Start:   "), run.StartTerm)
	fmt.Fprintf(&b, "%s %s\n", Dim("Subjects:"), strings.Join(run.Subjects, ", "))
	fmt.Fprintf(&b, "%s %d credits per term\n", Dim("Cap:     "), run.MaxCredits)
	fmt.Fprintf(&b, "%s %s, %d explored, %d abandoned\n", Dim("Outcome: "), OutcomeBadge(run.Outcome), run.Explored, run.Abandoned)
	if len(run.Uncovered) > 0 {
		fmt.Fprintf(&b, "%s %s\n", Dim("Uncovered:"), strings.Join(run.Uncovered, ", "))
	}
	b.WriteString("\n")

	if len(run.Plans) == 0 {
		b.WriteString(Dim("No plans stored.") + "\n")
		return b.String()
	}
	b.WriteString(RenderTable([]string{"RANK", "SCORE", "TERMS", "SUBJECTS BY TERM"}, PlanRows(run.Plans)))
	b.WriteString("\n")
	b.WriteString(FormatPlan(run.Plans[0], run.MaxCredits))
	return b.String()
}
