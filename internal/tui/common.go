package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/hourtrack/internal/tracker"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewHistory
	viewSettings
)

var viewNames = []string{"Dashboard", "History", "Settings"}

// --- Messages ---

// ExternalChangeMsg tells the app that another process rewrote the state.
type ExternalChangeMsg struct{}

type tickMsg time.Time

type reportMsg struct {
	report tracker.Report
	err    error
}

type historyMsg struct {
	weeks []tracker.WeekRecord
	err   error
}

// actionMsg reports the outcome of an engine operation started from a key.
type actionMsg struct {
	text string
	err  error
}

type configChangedMsg struct {
	cfg tracker.Config
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path  string
	count int
}

// --- Helpers ---

// formatClock renders seconds as hh:mm:ss.
func formatClock(secs int64) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

func formatHours(secs int64) string {
	return fmt.Sprintf("%.1fh", float64(secs)/3600)
}

func runAction(op func() error, done string) tea.Cmd {
	return func() tea.Msg {
		if err := op(); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{text: done}
	}
}
