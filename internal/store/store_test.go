package store

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sadopc/hourtrack/internal/config"
	"github.com/sadopc/hourtrack/internal/tracker"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleState() tracker.State {
	return tracker.State{
		StartTimestamp:   1,
		CurrentDay:       2,
		CurrentWeek:      4,
		TodaySeconds:     3,
		WeekWorkingDays:  5,
		WeekSeconds:      6,
		ExtraTimeSeconds: -7,
		WeekHistory: []tracker.WeekRecord{
			{Week: 40, WorkingDays: 5, Seconds: 126000},
			{Week: 41, WorkingDays: 3, Seconds: 72000},
		},
	}
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "hourtrack.db")
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Path() != path {
		t.Fatalf("expected path %q, got %q", path, s.Path())
	}
	if err := s.Save(sampleState()); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen: should succeed, not re-migrate, and keep the data
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	got, err := s2.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, sampleState()) {
		t.Fatalf("state not persisted across reopen: %+v", got)
	}
}

func TestNewUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	s, err := New(blocker)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	_, err = New(filepath.Join(blocker, "nested", "hourtrack.db"))
	if !errors.Is(err, tracker.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
	if filepath.Base(path) != "hourtrack.db" {
		t.Fatalf("unexpected file name: %s", path)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	// Running migrate again should be a no-op
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// State
// ============================================================

func TestLoadCreatesEmptyRecord(t *testing.T) {
	s := newTestStore(t)

	var count int
	s.db.QueryRow(`SELECT COUNT(*) FROM tracker_state`).Scan(&count)
	if count != 0 {
		t.Fatalf("expected no state row before first load, got %d", count)
	}

	st, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(st, tracker.State{}) {
		t.Fatalf("expected empty state, got %+v", st)
	}

	s.db.QueryRow(`SELECT COUNT(*) FROM tracker_state`).Scan(&count)
	if count != 1 {
		t.Fatalf("first load should persist the empty record, got %d rows", count)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := sampleState()

	if err := s.Save(want); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func TestSaveOverwritesEntirely(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(sampleState()); err != nil {
		t.Fatal(err)
	}

	next := tracker.State{TodaySeconds: 99, WeekHistory: []tracker.WeekRecord{{Week: 50, WorkingDays: 1, Seconds: 1}}}
	if err := s.Save(next); err != nil {
		t.Fatal(err)
	}

	got, _ := s.Load()
	if !reflect.DeepEqual(got, next) {
		t.Fatalf("expected %+v, got %+v", next, got)
	}
}

func TestHistoryKeepsOrder(t *testing.T) {
	s := newTestStore(t)
	st := tracker.State{}
	for w := 10; w > 0; w-- {
		st.WeekHistory = append(st.WeekHistory, tracker.WeekRecord{Week: w, WorkingDays: 1, Seconds: int64(w)})
	}
	if err := s.Save(st); err != nil {
		t.Fatal(err)
	}

	got, _ := s.Load()
	for i, r := range got.WeekHistory {
		if r.Week != 10-i {
			t.Fatalf("history out of order at %d: %+v", i, got.WeekHistory)
		}
	}
}

func TestClear(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(sampleState()); err != nil {
		t.Fatal(err)
	}

	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, tracker.State{}) {
		t.Fatalf("expected empty state after clear, got %+v", got)
	}

	var count int
	s.db.QueryRow(`SELECT COUNT(*) FROM week_history`).Scan(&count)
	if count != 0 {
		t.Fatalf("expected empty history table, got %d rows", count)
	}
}

func TestOperationsOnClosedStore(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	if _, err := s.Load(); !errors.Is(err, tracker.ErrStorageUnavailable) {
		t.Fatalf("Load: expected ErrStorageUnavailable, got %v", err)
	}
	if err := s.Save(tracker.State{}); !errors.Is(err, tracker.ErrStorageUnavailable) {
		t.Fatalf("Save: expected ErrStorageUnavailable, got %v", err)
	}
	if err := s.Clear(); !errors.Is(err, tracker.ErrStorageUnavailable) {
		t.Fatalf("Clear: expected ErrStorageUnavailable, got %v", err)
	}
}

// ============================================================
// Engine over SQLite
// ============================================================

type stubClock struct {
	now       int64
	day, week int
}

func (c stubClock) Now() int64      { return c.now }
func (c stubClock) DayOfMonth() int { return c.day }
func (c stubClock) ISOWeek() int    { return c.week }

func TestEngineOverStore(t *testing.T) {
	s := newTestStore(t)
	clock := &stubClock{now: 1_000_000, day: 3, week: 10}
	e := tracker.NewEngine(s, clock, tracker.DefaultConfig())

	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	clock.now += 3600
	if err := e.Stop(); err != nil {
		t.Fatal(err)
	}

	// Next week, next day
	clock.day, clock.week = 10, 11
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}

	got, _ := s.Load()
	if got.TodaySeconds != 0 || len(got.WeekHistory) != 1 {
		t.Fatalf("unexpected state after rollover: %+v", got)
	}
	want := tracker.WeekRecord{Week: 10, WorkingDays: 1, Seconds: 3600}
	if got.WeekHistory[0] != want {
		t.Fatalf("expected %+v, got %+v", want, got.WeekHistory[0])
	}
	if got.ExtraTimeSeconds != 3600-7*3600 {
		t.Fatalf("unexpected extra time %d", got.ExtraTimeSeconds)
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettings(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetSetting(config.KeyWorkingHoursPerDay)
	if !errors.Is(err, config.ErrSettingNotFound) {
		t.Fatalf("expected ErrSettingNotFound, got %v", err)
	}

	if err := s.SetSetting(config.KeyWorkingHoursPerDay, "8"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSetting(config.KeyWorkingHoursPerDay, "6"); err != nil {
		t.Fatal(err)
	}
	v, err := s.GetSetting(config.KeyWorkingHoursPerDay)
	if err != nil {
		t.Fatal(err)
	}
	if v != "6" {
		t.Fatalf("expected 6, got %q", v)
	}
}

func TestSettingsSurviveClear(t *testing.T) {
	s := newTestStore(t)
	s.SetSetting(config.KeyWorkingHoursPerDay, "8")
	s.Clear()

	v, err := s.GetSetting(config.KeyWorkingHoursPerDay)
	if err != nil || v != "8" {
		t.Fatalf("expected setting to survive clear, got %q, %v", v, err)
	}
}
