package cli

import (
	"github.com/alexanderramin/cityplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plans  service.PlanService
	Import service.ImportService

	// Currency prefixes money amounts in rendered output.
	Currency string
	// ExportFormat is the default for "plan export" when --format is not given.
	ExportFormat string
	// IsInteractive reports whether a terminal is attached. A nil func means
	// never interactive, which is what tests want.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "cityplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "cityplan",
		Short:         "Sustainable city plan builder",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPlanCmd(app),
	)

	return root
}
