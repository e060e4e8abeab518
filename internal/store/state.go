package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/sadopc/hourtrack/internal/tracker"
)

// Load returns the stored record, creating the empty one on first use.
func (s *Store) Load() (tracker.State, error) {
	var st tracker.State
	err := s.db.QueryRow(`
		SELECT start_timestamp, current_day, current_week, today_seconds,
		       week_working_days, week_seconds, extra_time_seconds
		FROM tracker_state WHERE id = 1`,
	).Scan(&st.StartTimestamp, &st.CurrentDay, &st.CurrentWeek, &st.TodaySeconds,
		&st.WeekWorkingDays, &st.WeekSeconds, &st.ExtraTimeSeconds)
	if errors.Is(err, sql.ErrNoRows) {
		if err := s.Save(tracker.State{}); err != nil {
			return tracker.State{}, err
		}
		return tracker.State{}, nil
	}
	if err != nil {
		return tracker.State{}, unavailable("load state", err)
	}

	st.WeekHistory, err = s.loadHistory()
	if err != nil {
		return tracker.State{}, unavailable("load week history", err)
	}
	return st, nil
}

func (s *Store) loadHistory() ([]tracker.WeekRecord, error) {
	rows, err := s.db.Query(`SELECT week, working_days, seconds FROM week_history ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []tracker.WeekRecord
	for rows.Next() {
		var r tracker.WeekRecord
		if err := rows.Scan(&r.Week, &r.WorkingDays, &r.Seconds); err != nil {
			return nil, err
		}
		history = append(history, r)
	}
	return history, rows.Err()
}

// Save replaces the stored record and its history in one transaction.
func (s *Store) Save(st tracker.State) error {
	tx, err := s.db.Begin()
	if err != nil {
		return unavailable("begin save", err)
	}
	if err := writeState(tx, st); err != nil {
		tx.Rollback()
		return unavailable("save state", err)
	}
	if err := tx.Commit(); err != nil {
		return unavailable("commit save", err)
	}
	return nil
}

// Clear drops the stored record and history and stores the empty record.
func (s *Store) Clear() error {
	tx, err := s.db.Begin()
	if err != nil {
		return unavailable("begin clear", err)
	}
	if _, err := tx.Exec(`DELETE FROM tracker_state`); err != nil {
		tx.Rollback()
		return unavailable("clear state", err)
	}
	if err := writeState(tx, tracker.State{}); err != nil {
		tx.Rollback()
		return unavailable("clear state", err)
	}
	if err := tx.Commit(); err != nil {
		return unavailable("commit clear", err)
	}
	return nil
}

func writeState(tx *sql.Tx, st tracker.State) error {
	_, err := tx.Exec(`
		INSERT INTO tracker_state (id, start_timestamp, current_day, current_week, today_seconds,
		                           week_working_days, week_seconds, extra_time_seconds, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, strftime('%Y-%m-%dT%H:%M:%SZ','now'))
		ON CONFLICT(id) DO UPDATE SET
			start_timestamp    = excluded.start_timestamp,
			current_day        = excluded.current_day,
			current_week       = excluded.current_week,
			today_seconds      = excluded.today_seconds,
			week_working_days  = excluded.week_working_days,
			week_seconds       = excluded.week_seconds,
			extra_time_seconds = excluded.extra_time_seconds,
			updated_at         = excluded.updated_at`,
		st.StartTimestamp, st.CurrentDay, st.CurrentWeek, st.TodaySeconds,
		st.WeekWorkingDays, st.WeekSeconds, st.ExtraTimeSeconds,
	)
	if err != nil {
		return fmt.Errorf("upsert state: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM week_history`); err != nil {
		return fmt.Errorf("reset week history: %w", err)
	}
	for i, r := range st.WeekHistory {
		_, err := tx.Exec(
			`INSERT INTO week_history (position, week, working_days, seconds) VALUES (?, ?, ?, ?)`,
			i, r.Week, r.WorkingDays, r.Seconds,
		)
		if err != nil {
			return fmt.Errorf("insert week %d: %w", r.Week, err)
		}
	}
	return nil
}
