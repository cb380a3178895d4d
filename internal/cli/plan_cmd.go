package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/gradeplan/internal/app"
	"github.com/alexanderramin/gradeplan/internal/cli/formatter"
	"github.com/alexanderramin/gradeplan/internal/domain"
	"github.com/alexanderramin/gradeplan/internal/export"
	"github.com/alexanderramin/gradeplan/internal/importer"
)

type planFlags struct {
	term         domain.Term
	subjectsFile string
	subjects     []string
	maxCredits   int
	top          int
	maxTerms     int
	offline      bool
	refresh      bool
	outDir       string
	format       string
	browse       bool
}

func newPlanCmd(a *App) *cobra.Command {
	var f planFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Search enrollment plans covering the given subjects",
		Long: `Search term-by-term enrollment plans that cover every subject without
schedule conflicts or exceeding the credit cap, and print the best ones.

Subjects are given as INSTITUTE:CODE, either with --subject (repeatable,
comma separated) or one per line in --subjects-file.`,
		Example: `  gradeplan plan --term 1s2025 --subject IC:MC102,IMECC:MA111 --max-credits 24
  gradeplan plan --subjects-file subjects.txt --max-credits 20 --out-dir plans --format pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, a, &f)
		},
	}

	cmd.Flags().Var(newTermValue(&f.term), "term", "first term to plan, e.g. 1s2025 (default: current term)")
	cmd.Flags().StringVar(&f.subjectsFile, "subjects-file", "", "file listing INSTITUTE:CODE subjects, one per line")
	cmd.Flags().StringArrayVar(&f.subjects, "subject", nil, "subject as INSTITUTE:CODE (repeatable)")
	cmd.Flags().IntVar(&f.maxCredits, "max-credits", 0, "credit cap per term")
	cmd.Flags().IntVar(&f.top, "top", a.Defaults.TopPlans, "number of ranked plans to keep")
	cmd.Flags().IntVar(&f.maxTerms, "max-terms", a.Defaults.MaxTerms, "longest plan to consider, in terms")
	cmd.Flags().BoolVar(&f.offline, "offline", false, "use cached schedules only")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-download schedules even when cached")
	cmd.Flags().StringVar(&f.outDir, "out-dir", "", "write every ranked plan into this directory")
	cmd.Flags().StringVar(&f.format, "format", string(export.FormatText), "export format: txt, csv or pdf")
	cmd.Flags().BoolVar(&f.browse, "browse", false, "page through the plans interactively")
	cmd.MarkFlagsMutuallyExclusive("offline", "refresh")

	return cmd
}

func runPlan(cmd *cobra.Command, a *App, f *planFlags) error {
	format, err := export.ParseFormat(f.format)
	if err != nil {
		return err
	}

	subjects, err := collectSubjects(f)
	if err != nil {
		return err
	}

	if len(subjects) == 0 || f.maxCredits <= 0 {
		if !a.interactive() {
			return missingPlanInputs(len(subjects) == 0, f.maxCredits <= 0)
		}
		in := newPlanInputs(f, subjects, a.now())
		if err := planInputForm(in).Run(); err != nil {
			return err
		}
		if err := in.apply(f); err != nil {
			return err
		}
		if subjects, err = parseSubjectRefs([]string{in.subjects}); err != nil {
			return err
		}
	}
	if f.term.IsZero() {
		f.term = domain.TermFromDate(a.now())
	}
	if f.browse && !a.interactive() {
		return errors.New("--browse needs an interactive terminal")
	}

	req := app.NewPlanRequest(f.term, subjects, f.maxCredits)
	req.Top = f.top
	req.MaxTerms = f.maxTerms
	req.Offline = f.offline
	req.Refresh = f.refresh

	stop := func() {}
	if a.interactive() {
		stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Searching plans...")
	}
	resp, err := a.Plans.Plan(cmd.Context(), req)
	stop()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatter.FormatPlanResponse(resp))
	if len(resp.Plans) > 0 && !f.browse {
		fmt.Fprintln(out)
		fmt.Fprint(out, formatter.FormatPlan(resp.Plans[0], f.maxCredits))
	}

	if f.outDir != "" {
		paths, err := export.WritePlans(f.outDir, resp.Plans, format)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(out, formatter.Dim("wrote "+p))
		}
	}

	if f.browse && len(resp.Plans) > 0 {
		return runPlanBrowser(resp.Plans, f.maxCredits)
	}
	return nil
}

func collectSubjects(f *planFlags) ([]domain.Subject, error) {
	subjects, err := parseSubjectRefs(f.subjects)
	if err != nil {
		return nil, err
	}
	if f.subjectsFile != "" {
		fromFile, err := importer.LoadSubjectList(f.subjectsFile)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, fromFile...)
	}
	return subjects, nil
}

func missingPlanInputs(noSubjects, noCredits bool) error {
	var missing []string
	if noSubjects {
		missing = append(missing, "--subject or --subjects-file")
	}
	if noCredits {
		missing = append(missing, "--max-credits")
	}
	if len(missing) == 1 {
		return fmt.Errorf("missing %s", missing[0])
	}
	return fmt.Errorf("missing %s and %s", missing[0], missing[1])
}
