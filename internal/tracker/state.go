package tracker

// WeekRecord is a snapshot of a completed week. Records are appended to the
// history once and never modified afterwards.
type WeekRecord struct {
	Week        int   `json:"week" yaml:"week"`
	WorkingDays int   `json:"working_days" yaml:"working_days"`
	Seconds     int64 `json:"seconds" yaml:"seconds"`
}

// State is the persisted tracker record. A zero State is the empty record.
type State struct {
	StartTimestamp   int64        `json:"start_timestamp" yaml:"start_timestamp"`
	CurrentDay       int          `json:"current_day" yaml:"current_day"`
	CurrentWeek      int          `json:"current_week" yaml:"current_week"`
	TodaySeconds     int64        `json:"today_seconds" yaml:"today_seconds"`
	WeekWorkingDays  int          `json:"week_working_days" yaml:"week_working_days"`
	WeekSeconds      int64        `json:"week_seconds" yaml:"week_seconds"`
	WeekHistory      []WeekRecord `json:"week_history" yaml:"week_history"`
	ExtraTimeSeconds int64        `json:"extra_time_seconds" yaml:"extra_time_seconds"`
}

// Running reports whether a session is in progress.
func (s State) Running() bool {
	return s.StartTimestamp != 0
}

// FlushDay moves today's total into the week when the stored day differs
// from day and there is something to move. The day and week markers are left
// untouched. It returns whether a flush happened.
func (s *State) FlushDay(day int, workdaySeconds int64) bool {
	if s.CurrentDay == day || s.TodaySeconds <= 0 {
		return false
	}
	today := s.TodaySeconds
	s.TodaySeconds = 0
	s.ExtraTimeSeconds += today - workdaySeconds
	s.WeekSeconds += today
	s.WeekWorkingDays++
	return true
}

// FlushWeek closes the stored week into the history when week differs from
// it and the week accumulated any time. It returns whether a record was
// appended.
func (s *State) FlushWeek(week int) bool {
	if s.WeekSeconds == 0 || s.CurrentWeek == week {
		return false
	}
	s.WeekHistory = append(s.WeekHistory, WeekRecord{
		Week:        s.CurrentWeek,
		WorkingDays: s.WeekWorkingDays,
		Seconds:     s.WeekSeconds,
	})
	s.WeekWorkingDays = 0
	s.WeekSeconds = 0
	return true
}

// AccumulateElapsed adds the running session up to now into today's total and
// stops the session. A negative elapsed time counts as zero. It returns the
// seconds added; a stopped state is left as is.
func (s *State) AccumulateElapsed(now int64) int64 {
	if !s.Running() {
		return 0
	}
	elapsed := now - s.StartTimestamp
	if elapsed < 0 {
		elapsed = 0
	}
	s.TodaySeconds += elapsed
	s.StartTimestamp = 0
	return elapsed
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	c := s
	if s.WeekHistory != nil {
		c.WeekHistory = make([]WeekRecord, len(s.WeekHistory))
		copy(c.WeekHistory, s.WeekHistory)
	}
	return c
}
