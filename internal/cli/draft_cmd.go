package cli

import (
	"fmt"

	"github.com/alexanderramin/cityplan/internal/cli/formatter"
	"github.com/alexanderramin/cityplan/internal/draft"
	"github.com/spf13/cobra"
)

func newDraftCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Edit the saved plan draft field by field",
	}

	cmd.AddCommand(
		newDraftSetCmd(app),
		newDraftShowCmd(app),
		newDraftResetCmd(app),
	)

	return cmd
}

func newDraftSetCmd(app *App) *cobra.Command {
	var (
		flags  planFieldFlags
		toggle []string
		step   int
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Merge field values into the draft",
		Long: `Merge field values into the draft. Only flags that are given change the
draft; everything else keeps its saved value. --toggle-disaster adds a
disaster type, or removes it when already present.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if flags.anyChanged(cmd.Flags()) {
				patch, err := flags.patch(cmd.Flags())
				if err != nil {
					return err
				}
				if err := app.Plans.SetField(ctx, patch); err != nil {
					return err
				}
			}

			toggles, err := parseDisasterTypes(toggle)
			if err != nil {
				return err
			}
			for _, t := range toggles {
				if err := app.Plans.ToggleDisaster(ctx, t); err != nil {
					return err
				}
			}

			if cmd.Flags().Changed("step") {
				if step < 1 || step > len(draft.Steps) {
					return fmt.Errorf("--step must be between 1 and %d", len(draft.Steps))
				}
				if err := app.Plans.SetStep(ctx, step-1); err != nil {
					return err
				}
			}

			in, current, err := app.Plans.Draft(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDraft(in, current, app.Currency))
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringSliceVar(&toggle, "toggle-disaster", nil, "Toggle a disaster type in the draft (repeatable)")
	cmd.Flags().IntVar(&step, "step", 1, "Wizard step to resume at (1-6)")

	return cmd
}

func newDraftShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the draft and the score it would earn",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, step, err := app.Plans.Draft(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDraft(in, step, app.Currency))
			return nil
		},
	}
}

func newDraftResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Discard the draft and start over at the first step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Plans.ResetDraft(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Draft cleared.")
			return nil
		},
	}
}
