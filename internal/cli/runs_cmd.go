package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/gradeplan/internal/cli/formatter"
)

func newRunsCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect past planner runs",
	}
	cmd.AddCommand(
		newRunsListCmd(a),
		newRunsShowCmd(a),
	)
	return cmd
}

func newRunsListCmd(a *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent planner runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := a.Plans.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRunList(runs, a.now()))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to show (0 for all)")
	return cmd
}

func newRunsShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the plans of a past run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := a.Plans.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRun(run))
			return nil
		},
	}
}
