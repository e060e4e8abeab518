package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/hourtrack/internal/tui"
	"github.com/sadopc/hourtrack/internal/watch"
	"github.com/spf13/cobra"
)

func uiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runUI()
		},
	}
}

// runUI opens the store with logs routed away from the terminal, which the
// dashboard owns while it runs.
func (a *app) runUI() error {
	cfg, err := a.opts.LoadConfig(a.configPath)
	if err != nil {
		return err
	}

	logOut, closeLog, err := uiLogOutput(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	rt, err := a.opts.Open(cfg, logOut)
	if err != nil {
		return err
	}
	defer rt.Close()

	return a.opts.RunUI(rt)
}

func uiLogOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// runProgram runs the dashboard until the user quits. Writes to the state
// file by other hourtrack processes refresh it immediately.
func runProgram(rt *Runtime) error {
	app := tui.NewApp(rt.Engine, rt.Settings, rt.Config.RefreshInterval())
	p := tea.NewProgram(app, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startWatcher(ctx, rt, func() { p.Send(tui.ExternalChangeMsg{}) })

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}

// startWatcher is best effort: without it the dashboard still refreshes on
// every tick.
func startWatcher(ctx context.Context, rt *Runtime, onChange func()) {
	w, err := watch.NewFSWatcher(0, onChange)
	if err != nil {
		rt.Logger.Warn("state watcher disabled", "error", err)
		return
	}
	if err := w.Watch(rt.StatePath); err != nil {
		rt.Logger.Warn("state watcher disabled", "path", rt.StatePath, "error", err)
		w.Close()
		return
	}

	go func() {
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			rt.Logger.Warn("state watcher stopped", "error", err)
		}
	}()
}
