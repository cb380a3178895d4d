package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/gradeplan/internal/cli/formatter"
)

func newCatalogCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage cached subject schedules",
	}
	cmd.AddCommand(
		newCatalogImportCmd(a),
		newCatalogShowCmd(a),
	)
	return cmd
}

func newCatalogImportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Load subjects, credits and schedules from a YAML catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.Import.ImportCatalog(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatImportResult(args[0], res))
			return nil
		},
	}
}

func newCatalogShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <CODE>",
		Short: "Show the cached schedule of a subject in every term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToUpper(strings.TrimSpace(args[0]))
			offerings, err := a.Catalog.Offerings(cmd.Context(), code)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatOfferings(code, offerings))
			return nil
		},
	}
}
