package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/sadopc/hourtrack/internal/export"
	"github.com/sadopc/hourtrack/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	okColor      = color.New(color.FgGreen)
	runningColor = color.New(color.FgHiGreen, color.Bold)
	stoppedColor = color.New(color.FgHiBlack)
	labelColor   = color.New(color.FgCyan)
	negColor     = color.New(color.FgYellow)
)

// command is one row of the command table: a name bound to the engine
// operation it runs.
type command struct {
	name  string
	short string
	run   func(rt *Runtime, out io.Writer) error
}

func simpleCommands() []command {
	return []command{
		{
			name:  "start",
			short: "start the timer",
			run: func(rt *Runtime, out io.Writer) error {
				if err := rt.Engine.Start(); err != nil {
					return err
				}
				okColor.Fprintln(out, "Timer started")
				return nil
			},
		},
		{
			name:  "stop",
			short: "stop the timer",
			run: func(rt *Runtime, out io.Writer) error {
				if err := rt.Engine.Stop(); err != nil {
					return err
				}
				okColor.Fprintln(out, "Timer stopped")
				return nil
			},
		},
		{
			name:  "reset",
			short: "reset the start timer without counting the running session",
			run: func(rt *Runtime, out io.Writer) error {
				if err := rt.Engine.Reset(); err != nil {
					return err
				}
				okColor.Fprintln(out, "Timer reset")
				return nil
			},
		},
		{
			name:  "delete",
			short: "delete all the information about the working hours",
			run: func(rt *Runtime, out io.Writer) error {
				if err := rt.Engine.Delete(); err != nil {
					return err
				}
				okColor.Fprintln(out, "All stats are deleted")
				return nil
			},
		},
		{
			name:  "show",
			short: "show the information about the working hours",
			run: func(rt *Runtime, out io.Writer) error {
				r, err := rt.Engine.GetReport()
				if err != nil {
					return err
				}
				printReport(out, rt.Engine, r)
				return nil
			},
		},
		{
			name:  "history",
			short: "list the completed weeks",
			run: func(rt *Runtime, out io.Writer) error {
				weeks, err := rt.Engine.History()
				if err != nil {
					return err
				}
				printHistory(out, rt.Engine, weeks)
				return nil
			},
		},
	}
}

// commandTable resolves every command name to its cobra command once, at
// startup.
func commandTable(a *app) []*cobra.Command {
	var cmds []*cobra.Command
	for _, c := range simpleCommands() {
		c := c
		cmds = append(cmds, &cobra.Command{
			Use:   c.name,
			Short: c.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withRuntime(cmd.ErrOrStderr(), func(rt *Runtime) error {
					return c.run(rt, cmd.OutOrStdout())
				})
			},
		})
	}
	cmds = append(cmds, exportCmd(a), uiCmd(a))
	return cmds
}

func exportCmd(a *app) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "export the completed weeks to CSV or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "csv" && format != "json" {
				return fmt.Errorf("invalid format %q, expected csv or json", format)
			}
			return a.withRuntime(cmd.ErrOrStderr(), func(rt *Runtime) error {
				weeks, err := rt.Engine.History()
				if err != nil {
					return err
				}

				path := output
				if path == "" {
					path, err = export.DefaultPath(format, time.Now())
					if err != nil {
						return err
					}
				}

				hours := rt.Engine.Config().WorkingHoursPerDay
				if format == "csv" {
					err = export.ToCSV(weeks, hours, path)
				} else {
					err = export.ToJSON(weeks, hours, path)
				}
				if err != nil {
					return err
				}
				okColor.Fprintf(cmd.OutOrStdout(), "Exported %d weeks to %s\n", len(weeks), path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "export format: csv or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: ~/hourtrack-export-<date>.<format>)")
	return cmd
}

func printReport(out io.Writer, e *tracker.Engine, r tracker.Report) {
	if r.Running {
		started := time.Unix(r.StartedAt, 0).Format("15:04")
		runningColor.Fprintf(out, "● running since %s (%s)\n", started, e.Format(r.SessionSeconds))
	} else {
		stoppedColor.Fprintln(out, "■ stopped")
	}

	labelColor.Fprint(out, "Today:      ")
	fmt.Fprintln(out, r.TodayHours)
	labelColor.Fprint(out, "Week:       ")
	fmt.Fprintf(out, "%s (%d working days)\n", r.WeekHours, r.WeekWorkingDays)
	labelColor.Fprint(out, "Extra time: ")
	if r.ExtraTimeSeconds < 0 {
		negColor.Fprintln(out, r.ExtraTime)
	} else {
		fmt.Fprintln(out, r.ExtraTime)
	}
}

func printHistory(out io.Writer, e *tracker.Engine, weeks []tracker.WeekRecord) {
	if len(weeks) == 0 {
		stoppedColor.Fprintln(out, "No completed weeks yet")
		return
	}
	labelColor.Fprintf(out, "%-6s %-6s %s\n", "Week", "Days", "Worked")
	for _, w := range weeks {
		fmt.Fprintf(out, "%-6d %-6d %s\n", w.Week, w.WorkingDays, e.Format(w.Seconds))
	}
}
