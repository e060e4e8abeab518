package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/hourtrack/internal/tracker"
)

type dashboardModel struct {
	engine *tracker.Engine
	width  int
	height int

	report  tracker.Report
	loaded  bool
	loadErr error

	// Delete confirmation
	confirming bool
	confirm    *huh.Form
	confirmed  *bool
}

func newDashboardModel(e *tracker.Engine) dashboardModel {
	confirmed := false
	return dashboardModel{
		engine:    e,
		confirmed: &confirmed,
	}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) isRunning() bool { return d.report.Running }

func (d dashboardModel) refresh() tea.Cmd {
	e := d.engine
	return func() tea.Msg {
		r, err := e.GetReport()
		return reportMsg{report: r, err: err}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if d.confirming && d.confirm != nil {
		return d.updateConfirm(msg)
	}

	switch msg := msg.(type) {
	case reportMsg:
		if msg.err != nil {
			d.loadErr = msg.err
			return d, nil
		}
		d.report = msg.report
		d.loaded = true
		d.loadErr = nil
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			return d, runAction(d.engine.Start, "Timer started")
		case key.Matches(msg, keys.Stop):
			return d, runAction(d.engine.Stop, "Timer stopped")
		case key.Matches(msg, keys.Reset):
			return d, runAction(d.engine.Reset, "Timer reset")
		case key.Matches(msg, keys.Delete):
			return d.showConfirm()
		}
	}
	return d, nil
}

func (d dashboardModel) showConfirm() (dashboardModel, tea.Cmd) {
	*d.confirmed = false
	d.confirm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete all stats?").
				Description("Today, this week, the history and the extra time are erased.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(d.confirmed),
		),
	).WithShowHelp(false)
	d.confirming = true
	return d, d.confirm.Init()
}

func (d dashboardModel) updateConfirm(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		d.confirming = false
		d.confirm = nil
		return d, nil
	}

	form, cmd := d.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.confirm = f
	}

	switch d.confirm.State {
	case huh.StateCompleted:
		d.confirming = false
		d.confirm = nil
		if *d.confirmed {
			return d, runAction(d.engine.Delete, "All stats are deleted")
		}
		return d, nil
	case huh.StateAborted:
		d.confirming = false
		d.confirm = nil
		return d, nil
	}
	return d, cmd
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	if d.confirming && d.confirm != nil {
		return activePanelStyle.Width(contentWidth).Render(d.confirm.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderTimerPanel(contentWidth),
		d.renderSummaryPanel(contentWidth),
	)
}

func (d dashboardModel) renderTimerPanel(w int) string {
	if d.report.Running {
		timeDisplay := timerRunningStyle.Width(w - 6).Render(formatClock(d.report.SessionSeconds))
		started := time.Unix(d.report.StartedAt, 0).Format("15:04")
		indicator := successStyle.Render("●  RUNNING since " + started)

		content := lipgloss.JoinVertical(lipgloss.Center, timeDisplay, indicator)
		return activePanelStyle.Width(w).Render(content)
	}

	timeDisplay := timerStyle.Width(w - 6).Render(formatClock(0))
	indicator := mutedStyle.Render("■  STOPPED")
	hint := mutedStyle.Render("Press s to start tracking")

	content := lipgloss.JoinVertical(lipgloss.Center, timeDisplay, indicator, hint)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderSummaryPanel(w int) string {
	if d.loadErr != nil {
		return panelStyle.Width(w).Render(errorStyle.Render("Could not read the tracker state: " + d.loadErr.Error()))
	}
	if !d.loaded {
		return panelStyle.Width(w).Render(mutedStyle.Render("Loading..."))
	}

	r := d.report
	workday := d.engine.Config().WorkdaySeconds()

	var quota string
	if left := workday - r.TodaySeconds; left > 0 {
		quota = mutedStyle.Render(d.engine.Format(left) + " left today")
	} else {
		quota = successStyle.Render("quota reached")
	}

	extra := highlightStyle.Render(r.ExtraTime)
	if r.ExtraTimeSeconds < 0 {
		extra = warningStyle.Render(r.ExtraTime)
	}

	label := lipgloss.NewStyle().Width(14)
	rows := []string{
		titleStyle.Render("Summary"),
		"",
		fmt.Sprintf("  %s %s", label.Render("Today"), highlightStyle.Render(r.TodayHours)),
		fmt.Sprintf("  %s %s", label.Render(""), quota),
		fmt.Sprintf("  %s %s", label.Render("This week"), highlightStyle.Render(r.WeekHours)),
		fmt.Sprintf("  %s %d", label.Render("Working days"), r.WeekWorkingDays),
		fmt.Sprintf("  %s %s", label.Render("Extra time"), extra),
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
