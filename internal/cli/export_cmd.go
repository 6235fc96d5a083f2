package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/mealplanner/internal/cli/formatter"
	"github.com/alexanderramin/mealplanner/internal/repository"
	"github.com/spf13/cobra"
)

// ErrHistoryUnavailable is returned by history on a backend without revisions.
var ErrHistoryUnavailable = errors.New("revision history requires the sqlite backend")

func newExportCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the plan document as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate := optionalStart(app)
			body, err := repository.EncodeDocument(app.Plans.Plan(), startDate, app.Plans.NumWeeks())
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(body)
				return err
			}

			if err := repository.NewFileDocumentRepo(output).Write(context.Background(), body); err != nil {
				return fmt.Errorf("exporting plan: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Exported to "+output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write (default stdout)")

	return cmd
}

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved revisions of the plan (sqlite backend)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Revisions == nil {
				return ErrHistoryUnavailable
			}
			revs, err := app.Revisions.Revisions(context.Background(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRevisions(revs))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum revisions to list (0 for all)")

	return cmd
}

// optionalStart returns the store's start date as a pointer, nil when unset.
func optionalStart(app *App) *time.Time {
	start, ok := app.Plans.StartDate()
	if !ok {
		return nil
	}
	return &start
}
