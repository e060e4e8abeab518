// Package cli maps hourtrack's command names onto engine operations.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sadopc/hourtrack/internal/config"
	"github.com/spf13/cobra"
)

// UnknownCommandError is returned for a command name that is not in the
// command table. No engine operation runs in that case.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("command '%s' does not exist", e.Name)
}

// Options lets callers replace the process-level collaborators.
type Options struct {
	Out io.Writer
	Err io.Writer

	LoadConfig func(path string) (*config.Config, error)
	Open       func(cfg *config.Config, logOut io.Writer) (*Runtime, error)
	RunUI      func(rt *Runtime) error
}

func (o *Options) defaults() {
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
	if o.LoadConfig == nil {
		o.LoadConfig = config.Load
	}
	if o.Open == nil {
		o.Open = Open
	}
	if o.RunUI == nil {
		o.RunUI = runProgram
	}
}

type app struct {
	opts       Options
	configPath string
}

// withRuntime loads the configuration, opens the store for the duration of fn
// and closes it afterwards.
func (a *app) withRuntime(logOut io.Writer, fn func(rt *Runtime) error) error {
	cfg, err := a.opts.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	rt, err := a.opts.Open(cfg, logOut)
	if err != nil {
		return err
	}
	defer rt.Close()
	return fn(rt)
}

// NewRootCmd builds the command tree from the static command table.
func NewRootCmd(opts Options) *cobra.Command {
	opts.defaults()
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:   "hourtrack",
		Short: "Track working hours against a daily quota",
		Long: `hourtrack records work sessions and keeps daily and weekly totals,
the overtime accumulated against your daily quota, and a history of past weeks.

Run without a command to open the interactive dashboard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &UnknownCommandError{Name: args[0]}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runUI()
		},
	}
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: ./config.yaml or ~/.config/hourtrack/config.yaml)")

	for _, c := range commandTable(a) {
		root.AddCommand(c)
	}
	return root
}

// Execute runs the CLI against os.Args and returns the process exit code.
func Execute() int {
	root := NewRootCmd(Options{})
	if err := root.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
