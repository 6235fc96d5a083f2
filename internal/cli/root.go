package cli

import (
	"log/slog"
	"strings"

	"github.com/alexanderramin/mealplanner/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds references to the services used by CLI commands and the TUI.
type App struct {
	Plans     service.PlanService
	Navigator *service.WeekNavigator
	Revisions service.RevisionLister // nil unless the SQLite backend is active

	Logger  *slog.Logger
	Console *ConsoleHandler // receives Logger records while the TUI runs

	// Flags is the global flag set shared by every command.
	Flags *pflag.FlagSet

	// IsInteractive reports whether stdin is a terminal; nil means never.
	IsInteractive func() bool
}

// GlobalFlags returns the flag set shared by all commands. Values bind to
// configuration keys of the same name.
func GlobalFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("global", pflag.ContinueOnError)
	fs.String("data", "", "Path to the JSON plan document")
	fs.String("backend", "", "Storage backend: json or sqlite")
	fs.String("db", "", "Path to the SQLite database (sqlite backend)")
	fs.String("log-level", "", "Log level: debug, info, warn or error")
	return fs
}

// NewRootCmd creates the top-level "mealplanner" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "mealplanner",
		Short: "Weekly dinner planner",
		Long: `Plan a dinner for every day across a configurable number of weeks.

Run without a command to open the interactive planner; when stdin is not a
terminal, week 1 is printed instead.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(app)
			}
			return printWeek(cmd, app, 1)
		},
	}

	if app.Flags != nil {
		root.PersistentFlags().AddFlagSet(app.Flags)
	}

	root.AddCommand(
		newShowCmd(app),
		newEditCmd(app),
		newWeeksCmd(app),
		newStartDateCmd(app),
		newDatesCmd(app),
		newExportCmd(app),
		newHistoryCmd(app),
		newTUICmd(app),
	)

	return root
}

// positionalArgs drops global flags and their values from args. Commands
// that disable flag parsing use it to see only their own arguments; the
// global values were already read during config resolution.
func positionalArgs(flags *pflag.FlagSet, args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return append(out, args[i+1:]...)
		}
		if !strings.HasPrefix(arg, "--") || flags == nil {
			if arg != "-h" {
				out = append(out, arg)
			}
			continue
		}
		name, _, inline := strings.Cut(arg[2:], "=")
		if name == "help" {
			continue
		}
		f := flags.Lookup(name)
		if f == nil {
			out = append(out, arg)
			continue
		}
		if !inline && f.NoOptDefVal == "" {
			i++ // value follows as the next argument
		}
	}
	return out
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "-h" || arg == "--help" {
			return true
		}
	}
	return false
}
