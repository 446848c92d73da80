package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/cityplan/internal/cli/formatter"
	"github.com/alexanderramin/cityplan/internal/domain"
	"github.com/alexanderramin/cityplan/internal/importer"
	"github.com/spf13/cobra"
)

func newPlanExportCmd(app *App) *cobra.Command {
	var (
		format string
		output string
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "export [ID]",
		Short: "Export plans as a JSON or YAML import document",
		Long: `Export a plan (default: the current plan) or, with --all, every saved plan.
The document can be fed back to "cityplan plan import"; derived fields are
included for reference and ignored on import.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if format == "" && output != "" {
				format = string(importer.FormatForPath(output))
			}
			if format == "" {
				format = app.ExportFormat
			}
			if format == "" {
				format = string(importer.FormatJSON)
			}
			f, err := importer.ParseFormat(format)
			if err != nil {
				return err
			}

			var plans []*domain.Plan
			if all {
				if len(args) > 0 {
					return fmt.Errorf("--all cannot be combined with a plan id")
				}
				plans, err = app.Plans.List(ctx)
				if err != nil {
					return err
				}
			} else {
				id, err := resolvePlanArg(ctx, app, args)
				if err != nil {
					return err
				}
				if id == "" {
					return fmt.Errorf("no current plan; pass a plan id or --all")
				}
				plan, err := app.Plans.Get(ctx, id)
				if err != nil {
					return err
				}
				plans = []*domain.Plan{plan}
			}

			data, err := importer.Marshal(importer.FromPlans(plans), f)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d plan(s) to %s\n", len(plans), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Output format: json or yaml (default from config, or the --output extension)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().BoolVar(&all, "all", false, "Export every saved plan")

	return cmd
}

func newPlanImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Create plans from a JSON or YAML document",
		Long: `Create plans from a JSON or YAML document. The whole document is validated
first; if any entry is invalid nothing is imported. The last imported plan
becomes the current plan.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportPlans(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d plan(s):\n", len(result.Plans))
			for _, p := range result.Plans {
				fmt.Fprintf(out, "  %s\n", formatter.FormatPlanLine(p))
			}
			return nil
		},
	}
}
