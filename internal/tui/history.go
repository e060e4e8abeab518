package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/hourtrack/internal/tracker"
)

// barWidth is the number of columns one week takes in the chart, gap included.
const barWidth = 6

type historyModel struct {
	engine *tracker.Engine
	width  int
	height int

	weeks   []tracker.WeekRecord
	loadErr error

	chart barchart.Model
}

func newHistoryModel(e *tracker.Engine) historyModel {
	return historyModel{
		engine: e,
		chart:  barchart.New(60, 12),
	}
}

func (h *historyModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
	h.buildChart()
}

func (h historyModel) refresh() tea.Cmd {
	e := h.engine
	return func() tea.Msg {
		weeks, err := e.History()
		return historyMsg{weeks: weeks, err: err}
	}
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	if msg, ok := msg.(historyMsg); ok {
		if msg.err != nil {
			h.loadErr = msg.err
			return h, nil
		}
		h.loadErr = nil
		h.weeks = msg.weeks
		h.buildChart()
	}
	return h, nil
}

// visibleWeeks returns the most recent weeks that fit the chart width.
func (h historyModel) visibleWeeks(chartWidth int) []tracker.WeekRecord {
	n := chartWidth / barWidth
	if n < 1 {
		n = 1
	}
	if len(h.weeks) <= n {
		return h.weeks
	}
	return h.weeks[len(h.weeks)-n:]
}

func (h *historyModel) buildChart() {
	chartWidth := h.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if h.height > 30 {
		chartHeight = 16
	}

	h.chart = barchart.New(chartWidth, chartHeight)

	workday := h.engine.Config().WorkdaySeconds()
	var bars []barchart.BarData
	for _, wk := range h.visibleWeeks(chartWidth) {
		color := colorWarning
		if wk.Seconds >= int64(wk.WorkingDays)*workday {
			color = colorSuccess
		}
		bars = append(bars, barchart.BarData{
			Label: fmt.Sprintf("W%d", wk.Week),
			Values: []barchart.BarValue{{
				Name:  "worked",
				Value: float64(wk.Seconds) / 3600,
				Style: lipgloss.NewStyle().Foreground(color),
			}},
		})
	}

	if len(bars) == 0 {
		return
	}
	h.chart.PushAll(bars)
	h.chart.Draw()
}

func (h historyModel) view() string {
	w := h.width - 4
	title := titleStyle.Render("History")

	if h.loadErr != nil {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", errorStyle.Render("Could not read the history: "+h.loadErr.Error()),
		))
	}
	if len(h.weeks) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", mutedStyle.Render("No completed weeks yet. A week is recorded when you start the timer in a new week."),
		))
	}

	legend := "  " + successStyle.Render("●") + " quota met  " + warningStyle.Render("●") + " below quota"

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "", h.chart.View(), "", legend, "", h.renderTable(w),
	))
}

func (h historyModel) renderTable(w int) string {
	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-6s %6s %8s  %s", "Week", "Days", "Hours", "Worked")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 48))))

	// Newest first
	for i := len(h.weeks) - 1; i >= 0; i-- {
		wk := h.weeks[i]
		rows = append(rows, fmt.Sprintf("  %-6d %6d %8s  %s",
			wk.Week, wk.WorkingDays, formatHours(wk.Seconds), h.engine.Format(wk.Seconds),
		))
	}
	return strings.Join(rows, "\n")
}
