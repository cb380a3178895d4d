package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/gradeplan/internal/cli/formatter"
	"github.com/alexanderramin/gradeplan/internal/domain"
)

// gradeplanHuhTheme styles huh forms with the formatter palette.
func gradeplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// planInputs holds the prompt's text fields.
type planInputs struct {
	term       string
	subjects   string
	maxCredits string
}

func newPlanInputs(f *planFlags, subjects []domain.Subject, now time.Time) *planInputs {
	in := &planInputs{term: domain.TermFromDate(now).String()}
	if !f.term.IsZero() {
		in.term = f.term.String()
	}
	refs := make([]string, len(subjects))
	for i, s := range subjects {
		refs[i] = s.String()
	}
	in.subjects = strings.Join(refs, " ")
	if f.maxCredits > 0 {
		in.maxCredits = strconv.Itoa(f.maxCredits)
	}
	return in
}

// apply copies the validated answers back into the flags.
func (in *planInputs) apply(f *planFlags) error {
	term, err := domain.ParseTerm(strings.TrimSpace(in.term))
	if err != nil {
		return err
	}
	credits, err := strconv.Atoi(strings.TrimSpace(in.maxCredits))
	if err != nil {
		return fmt.Errorf("max credits: %w", err)
	}
	f.term = term
	f.maxCredits = credits
	return nil
}

func planInputForm(in *planInputs) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First term").
				Description("e.g. 1s2025").
				Value(&in.term).
				Validate(validateTerm),
			huh.NewInput().
				Title("Subjects").
				Description("INSTITUTE:CODE, separated by spaces or commas").
				Placeholder("IC:MC102 IMECC:MA111").
				Value(&in.subjects).
				Validate(validateSubjectRefs),
			huh.NewInput().
				Title("Credit cap per term").
				Value(&in.maxCredits).
				Validate(validatePositiveInt),
		),
	).WithTheme(gradeplanHuhTheme()).WithShowHelp(false)
}

func validateTerm(s string) error {
	_, err := domain.ParseTerm(strings.TrimSpace(s))
	return err
}

func validateSubjectRefs(s string) error {
	subjects, err := parseSubjectRefs([]string{s})
	if err != nil {
		return err
	}
	if len(subjects) == 0 {
		return fmt.Errorf("enter at least one subject")
	}
	return domain.ValidateSubjects(subjects)
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a whole number")
	}
	if n <= 0 {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}
