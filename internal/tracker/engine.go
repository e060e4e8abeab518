// Package tracker implements the work-hours accounting engine: starting and
// stopping sessions, rolling daily totals into weeks and weeks into history,
// and formatting the resulting report.
package tracker

import (
	"fmt"
	"log/slog"
)

// StateStore loads and saves the tracker record.
//
// Load returns the empty record, persisting it, when nothing was stored yet.
// Save replaces the stored record entirely. Clear discards it and stores the
// empty record again.
type StateStore interface {
	Load() (State, error)
	Save(State) error
	Clear() error
}

// Config holds the engine's quota.
type Config struct {
	WorkingHoursPerDay int
}

const DefaultWorkingHoursPerDay = 7

func DefaultConfig() Config {
	return Config{WorkingHoursPerDay: DefaultWorkingHoursPerDay}
}

// WorkdaySeconds is the daily quota in seconds.
func (c Config) WorkdaySeconds() int64 {
	return int64(c.WorkingHoursPerDay) * 3600
}

func (c Config) Validate() error {
	if c.WorkingHoursPerDay < 1 || c.WorkingHoursPerDay > 24 {
		return fmt.Errorf("working hours per day must be between 1 and 24, got %d", c.WorkingHoursPerDay)
	}
	return nil
}

// Report is the formatted summary shown by front-ends, with the raw values it
// was computed from.
type Report struct {
	TodayHours string
	WeekHours  string
	ExtraTime  string

	Running          bool
	StartedAt        int64
	SessionSeconds   int64 // elapsed in the running session, 0 when stopped
	TodaySeconds     int64 // includes SessionSeconds
	WeekSeconds      int64
	WeekWorkingDays  int
	ExtraTimeSeconds int64
}

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine applies tracker operations as one load-modify-save pass each. It
// holds no state between calls.
type Engine struct {
	store  StateStore
	clock  Clock
	cfg    Config
	logger *slog.Logger
}

func NewEngine(store StateStore, clock Clock, cfg Config, opts ...Option) *Engine {
	if clock == nil {
		clock = SystemClock{}
	}
	e := &Engine{
		store:  store,
		clock:  clock,
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithConfig returns a copy of e using cfg.
func (e *Engine) WithConfig(cfg Config) *Engine {
	c := *e
	c.cfg = cfg
	return &c
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Format renders seconds with the engine's working day length.
func (e *Engine) Format(seconds int64) string {
	return FormatSeconds(seconds, e.cfg.WorkingHoursPerDay)
}

// Start begins a session, first rolling yesterday into the week and last
// week into the history when the calendar moved on.
func (e *Engine) Start() error {
	st, err := e.store.Load()
	if err != nil {
		return err
	}

	sm, err := newSessionMachine(st)
	if err != nil {
		return err
	}
	if !sm.fire(eventStart) {
		return ErrAlreadyRunning
	}

	// The day is flushed before the week so that a day spent in the closing
	// week is counted in that week's record.
	if st.FlushDay(e.clock.DayOfMonth(), e.cfg.WorkdaySeconds()) {
		e.logger.Debug("flushed day into week",
			"week_seconds", st.WeekSeconds,
			"week_working_days", st.WeekWorkingDays,
			"extra_time_seconds", st.ExtraTimeSeconds,
		)
	}
	if st.FlushWeek(e.clock.ISOWeek()) {
		rec := st.WeekHistory[len(st.WeekHistory)-1]
		e.logger.Debug("closed week", "week", rec.Week, "working_days", rec.WorkingDays, "seconds", rec.Seconds)
	}

	st.StartTimestamp = e.clock.Now()
	st.CurrentDay = e.clock.DayOfMonth()
	st.CurrentWeek = e.clock.ISOWeek()

	if err := e.store.Save(st); err != nil {
		return err
	}
	e.logger.Debug("timer started", "start_timestamp", st.StartTimestamp, "day", st.CurrentDay, "week", st.CurrentWeek)
	return nil
}

// Stop ends the running session and adds its duration to today's total. It
// never rolls days or weeks over.
func (e *Engine) Stop() error {
	st, err := e.store.Load()
	if err != nil {
		return err
	}

	sm, err := newSessionMachine(st)
	if err != nil {
		return err
	}
	if !sm.fire(eventStop) {
		return ErrNotRunning
	}

	now := e.clock.Now()
	if now < st.StartTimestamp {
		e.logger.Warn("clock is behind the session start, counting zero seconds",
			"now", now, "start_timestamp", st.StartTimestamp)
	}
	elapsed := st.AccumulateElapsed(now)

	if err := e.store.Save(st); err != nil {
		return err
	}
	e.logger.Debug("timer stopped", "elapsed_seconds", elapsed, "today_seconds", st.TodaySeconds)
	return nil
}

// Reset clears the running session without counting it.
func (e *Engine) Reset() error {
	st, err := e.store.Load()
	if err != nil {
		return err
	}
	st.StartTimestamp = 0
	if err := e.store.Save(st); err != nil {
		return err
	}
	e.logger.Debug("timer reset")
	return nil
}

// Delete discards every stored total and the history.
func (e *Engine) Delete() error {
	if err := e.store.Clear(); err != nil {
		return err
	}
	e.logger.Debug("state deleted")
	return nil
}

func (e *Engine) IsRunning() (bool, error) {
	st, err := e.store.Load()
	if err != nil {
		return false, err
	}
	return st.Running(), nil
}

// GetReport summarises the stored totals. A running session is counted into
// today's figure without being persisted.
func (e *Engine) GetReport() (Report, error) {
	st, err := e.store.Load()
	if err != nil {
		return Report{}, err
	}

	snapshot := st.Clone()
	startedAt := snapshot.StartTimestamp
	running := snapshot.Running()
	session := snapshot.AccumulateElapsed(e.clock.Now())

	return Report{
		TodayHours:       formatToday(snapshot.TodaySeconds, e.cfg),
		WeekHours:        e.Format(snapshot.WeekSeconds),
		ExtraTime:        e.Format(snapshot.ExtraTimeSeconds),
		Running:          running,
		StartedAt:        startedAt,
		SessionSeconds:   session,
		TodaySeconds:     snapshot.TodaySeconds,
		WeekSeconds:      snapshot.WeekSeconds,
		WeekWorkingDays:  snapshot.WeekWorkingDays,
		ExtraTimeSeconds: snapshot.ExtraTimeSeconds,
	}, nil
}

// History returns the closed weeks, oldest first.
func (e *Engine) History() ([]WeekRecord, error) {
	st, err := e.store.Load()
	if err != nil {
		return nil, err
	}
	return st.Clone().WeekHistory, nil
}
