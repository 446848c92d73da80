package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/cityplan/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Create, inspect and manage city plans",
	}

	cmd.AddCommand(
		newPlanNewCmd(app),
		newDraftCmd(app),
		newPlanSubmitCmd(app),
		newPlanListCmd(app),
		newPlanShowCmd(app),
		newPlanSelectCmd(app),
		newPlanDeleteCmd(app),
		newPlanCurrentCmd(app),
		newPlanSummaryCmd(app),
		newPlanBrowseCmd(app),
		newPlanExportCmd(app),
		newPlanImportCmd(app),
	)

	return cmd
}

func newPlanNewCmd(app *App) *cobra.Command {
	var (
		flags planFieldFlags
		fresh bool
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a plan with the step-by-step wizard or from flags",
		Long: `Create a new city plan.

With a terminal attached and no field flags, an interactive wizard walks
through location, budget, population, environment, risks and goals. The
draft is saved after every step, so an interrupted wizard resumes where it
stopped. Otherwise the plan is derived directly from the given flags; any
field left out takes its default.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if app.interactive() && !flags.anyChanged(cmd.Flags()) {
				if fresh {
					if err := app.Plans.ResetDraft(ctx); err != nil {
						return err
					}
				}
				plan, err := runPlanWizard(ctx, app)
				if err != nil {
					return err
				}
				if plan == nil {
					fmt.Fprintln(out, formatter.Dim("Wizard cancelled. Your draft is saved; run 'cityplan plan new' to resume."))
					return nil
				}
				fmt.Fprint(out, formatter.FormatPlanReport(plan, true, app.Currency))
				return nil
			}

			patch, err := flags.patch(cmd.Flags())
			if err != nil {
				return err
			}
			plan, err := app.Plans.SubmitInput(ctx, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Created %s\n", formatter.FormatPlanLine(plan))
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&fresh, "fresh", false, "Discard any saved draft before starting the wizard")

	return cmd
}

func newPlanSubmitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "submit",
		Short: "Derive the saved draft into a plan and select it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := app.Plans.Submit(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", formatter.FormatPlanLine(plan))
			return nil
		},
	}
}

func newPlanListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved plans in creation order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			plans, err := app.Plans.List(ctx)
			if err != nil {
				return err
			}
			current, err := app.Plans.Current(ctx)
			if err != nil {
				return err
			}
			currentID := ""
			if current != nil {
				currentID = current.ID
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanList(plans, currentID, app.Currency))
			return nil
		},
	}
}

func newPlanShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [ID]",
		Short: "Show the full report for a plan (default: current plan)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePlanArg(ctx, app, args)
			if err != nil {
				return err
			}
			if id == "" {
				return fmt.Errorf("no current plan; pass a plan id or run 'cityplan plan select'")
			}
			plan, err := app.Plans.Get(ctx, id)
			if err != nil {
				return err
			}
			current, err := app.Plans.Current(ctx)
			if err != nil {
				return err
			}
			isCurrent := current != nil && current.ID == plan.ID
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanReport(plan, isCurrent, app.Currency))
			return nil
		},
	}
}

func newPlanSelectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "select ID",
		Short: "Make a plan the current plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			id, err := resolvePlanID(ctx, app, args[0])
			if errors.Is(err, errNoMatch) {
				fmt.Fprintf(out, "No plan matches %q; selection unchanged.\n", args[0])
				return nil
			}
			if err != nil {
				return err
			}
			if err := app.Plans.Select(ctx, id); err != nil {
				return err
			}
			plan, err := app.Plans.Get(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Selected %s\n", formatter.FormatPlanLine(plan))
			return nil
		},
	}
}

func newPlanDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a plan",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			id, err := resolvePlanID(ctx, app, args[0])
			if errors.Is(err, errNoMatch) {
				fmt.Fprintf(out, "No plan matches %q; nothing deleted.\n", args[0])
				return nil
			}
			if err != nil {
				return err
			}
			plan, err := app.Plans.Get(ctx, id)
			if err != nil {
				return err
			}
			if err := app.Plans.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(out, "Deleted %s (%s)\n", plan.CityName, plan.DisplayID())
			return nil
		},
	}
}

func newPlanCurrentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show which plan is currently selected",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := app.Plans.Current(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if plan == nil {
				fmt.Fprintln(out, formatter.Dim("No current plan."))
				return nil
			}
			fmt.Fprintln(out, formatter.FormatPlanLine(plan))
			return nil
		},
	}
}

func newPlanSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show totals across all saved plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Plans.Summary(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSummary(s, app.Currency))
			return nil
		},
	}
}

func newPlanBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse, select and delete plans interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("plan browse needs an interactive terminal; use 'cityplan plan list' instead")
			}
			ctx := cmd.Context()
			p := tea.NewProgram(newPlanBrowser(ctx, app), tea.WithContext(ctx), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}
