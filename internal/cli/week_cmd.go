package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/mealplanner/internal/cli/formatter"
	"github.com/alexanderramin/mealplanner/internal/domain"
	"github.com/spf13/cobra"
)

// printWeek jumps the navigator to week and prints it.
func printWeek(cmd *cobra.Command, app *App, week int) error {
	nav := app.Navigator
	nav.Jump(week)
	current := nav.Current()

	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeek(
		current,
		nav.NumWeeks(),
		nav.DisplayLabel(current),
		app.Plans.Meals(current),
	))
	return nil
}

func newShowCmd(app *App) *cobra.Command {
	var week int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the dinners for a week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("week") {
				week = app.Navigator.Current()
			}
			return printWeek(cmd, app, week)
		},
	}

	cmd.Flags().IntVar(&week, "week", 1, "Week to show (clamped to the planned range)")

	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit WEEK DAY [MEAL...]",
		Short: "Set the dinner for a day",
		Long: `Set the dinner for DAY in WEEK. The remaining words are joined with
spaces; leave MEAL out to store an empty entry.`,
		Example: `  mealplanner edit 1 monday Leek and potato soup
  mealplanner edit 2 Fri Takeaway`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid week %q: must be a number", args[0])
			}
			day, err := domain.ParseDay(args[1])
			if err != nil {
				return err
			}
			meal := strings.Join(args[2:], " ")

			if err := app.Plans.EditDinner(context.Background(), week, day, meal); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Week %d, %s: %s",
				week, day, formatter.Bold(displayMeal(meal)))))
			return nil
		},
	}
}

func newWeeksCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "weeks N",
		Short: "Set the number of planned weeks",
		// Flag parsing is off so a negative count such as "-1" arrives as
		// input instead of an unknown shorthand flag.
		DisableFlagParsing: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if wantsHelp(args) {
				return nil
			}
			return cobra.ExactArgs(1)(cmd, positionalArgs(app.Flags, args))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if wantsHelp(args) {
				return cmd.Help()
			}
			input := positionalArgs(app.Flags, args)[0]
			if err := app.Plans.SetNumWeeks(context.Background(), input); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Planning %d weeks", app.Plans.NumWeeks())))
			return nil
		},
	}
}

func newStartDateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start-date YYYY-MM-DD",
		Short: "Anchor week 1 to the Monday of the given date's week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Plans.SetStartDate(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Week 1 starts "+app.Navigator.DisplayLabel(1)))
			return nil
		},
	}
}

func newDatesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dates",
		Short: "List every planned week with its start date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nav := app.Navigator
			dates := make([]formatter.WeekDate, 0, nav.NumWeeks())
			for week := 1; week <= nav.NumWeeks(); week++ {
				dates = append(dates, formatter.WeekDate{Week: week, Label: nav.DisplayLabel(week)})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDates(dates))
			return nil
		},
	}
}

// displayMeal shows an empty entry explicitly.
func displayMeal(meal string) string {
	if meal == "" {
		return `""`
	}
	return meal
}
