package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/hourtrack/internal/config"
	"github.com/sadopc/hourtrack/internal/tracker"
)

type settingsModel struct {
	engine   *tracker.Engine
	settings config.SettingsStore
	refresh  time.Duration
	width    int
	height   int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	hours *string
}

func newSettingsModel(e *tracker.Engine, s config.SettingsStore, refresh time.Duration) settingsModel {
	hours := ""
	return settingsModel{
		engine:   e,
		settings: s,
		refresh:  refresh,
		hours:    &hours,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.Edit) {
		return s.showForm()
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.hours = strconv.Itoa(s.engine.Config().WorkingHoursPerDay)

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Working hours per day").
				Description("Length of one working day, 1 to 24.").
				Value(s.hours).
				Validate(validateHours),
		).Title("General"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	switch s.form.State {
	case huh.StateCompleted:
		s.formActive = false
		s.form = nil
		return s, s.save(*s.hours)
	case huh.StateAborted:
		s.formActive = false
		s.form = nil
		return s, nil
	}
	return s, cmd
}

func (s settingsModel) save(raw string) tea.Cmd {
	store := s.settings
	return func() tea.Msg {
		hours, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Settings error: %q is not a number", raw), isError: true}
		}
		if err := config.SaveWorkingHours(store, hours); err != nil {
			return statusMsg{text: fmt.Sprintf("Settings error: %v", err), isError: true}
		}
		return configChangedMsg{cfg: tracker.Config{WorkingHoursPerDay: hours}}
	}
}

func validateHours(v string) error {
	hours, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("enter a whole number of hours")
	}
	return (tracker.Config{WorkingHoursPerDay: hours}).Validate()
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	cfg := s.engine.Config()
	label := lipgloss.NewStyle().Width(24)
	rows := []string{
		title,
		"",
		fmt.Sprintf("  %s %s", label.Render(config.KeyWorkingHoursPerDay), highlightStyle.Render(fmt.Sprintf("%d hours", cfg.WorkingHoursPerDay))),
		fmt.Sprintf("  %s %s", label.Render("refresh interval"), highlightStyle.Render(s.refresh.String())),
		"",
		mutedStyle.Render("Press enter to edit settings"),
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
