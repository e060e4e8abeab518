package tracker

import (
	"errors"
	"time"
)

// memStore keeps the state in memory and records how often it was written.
type memStore struct {
	state   State
	loaded  bool
	saves   int
	loadErr error
	saveErr error
}

func (m *memStore) Load() (State, error) {
	if m.loadErr != nil {
		return State{}, m.loadErr
	}
	if !m.loaded {
		m.loaded = true
		m.state = State{}
	}
	return m.state.Clone(), nil
}

func (m *memStore) Save(s State) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.loaded = true
	m.state = s.Clone()
	m.saves++
	return nil
}

func (m *memStore) Clear() error {
	m.loaded = true
	m.state = State{}
	m.saves++
	return nil
}

func newMemStore(s State) *memStore {
	return &memStore{state: s, loaded: true}
}

// fakeClock returns fixed values until moved.
type fakeClock struct {
	now  int64
	day  int
	week int
}

func (c *fakeClock) Now() int64      { return c.now }
func (c *fakeClock) DayOfMonth() int { return c.day }
func (c *fakeClock) ISOWeek() int    { return c.week }

func (c *fakeClock) advance(d time.Duration) {
	c.now += int64(d / time.Second)
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: 1_700_000_000, day: 15, week: 46}
}

var errDisk = errors.New("disk on fire")

func storageErr() error {
	return errors.Join(ErrStorageUnavailable, errDisk)
}
