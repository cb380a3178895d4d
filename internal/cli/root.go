package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/gradeplan/internal/app"
)

// Defaults are the configured values the plan command falls back to.
type Defaults struct {
	TopPlans int
	MaxTerms int
}

// App holds the use cases and environment hooks CLI commands run against.
type App struct {
	Plans   app.PlanUseCase
	Catalog app.CatalogUseCase
	Import  app.ImportCatalogUseCase

	Defaults Defaults

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	// Now is the clock used for the default start term. Nil means time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "gradeplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "gradeplan",
		Short:         "Plan conflict-free course enrollments term by term",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPlanCmd(a),
		newCatalogCmd(a),
		newRunsCmd(a),
	)
	return root
}
