package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quota = 7 * 3600

func TestFlushDay(t *testing.T) {
	st := State{TodaySeconds: 20, CurrentDay: 14, CurrentWeek: 45}

	require.True(t, st.FlushDay(15, quota))

	assert.Equal(t, int64(0), st.TodaySeconds)
	assert.Equal(t, int64(20), st.WeekSeconds)
	assert.Equal(t, 1, st.WeekWorkingDays)
	assert.Equal(t, int64(20-quota), st.ExtraTimeSeconds)
	// Markers are only moved by Start.
	assert.Equal(t, 14, st.CurrentDay)
	assert.Equal(t, 45, st.CurrentWeek)
}

func TestFlushDayNothingToFlush(t *testing.T) {
	st := State{CurrentDay: 14, WeekSeconds: 100, WeekWorkingDays: 2, ExtraTimeSeconds: -5}

	require.False(t, st.FlushDay(15, quota))
	assert.Equal(t, State{CurrentDay: 14, WeekSeconds: 100, WeekWorkingDays: 2, ExtraTimeSeconds: -5}, st)
}

func TestFlushDaySameDay(t *testing.T) {
	st := State{CurrentDay: 15, TodaySeconds: 300}

	require.False(t, st.FlushDay(15, quota))
	assert.Equal(t, int64(300), st.TodaySeconds)
}

func TestFlushDayOvertime(t *testing.T) {
	st := State{CurrentDay: 1, TodaySeconds: quota + 1800, ExtraTimeSeconds: 600}

	require.True(t, st.FlushDay(2, quota))
	assert.Equal(t, int64(2400), st.ExtraTimeSeconds)
}

func TestFlushWeek(t *testing.T) {
	st := State{CurrentWeek: 45, WeekWorkingDays: 3, WeekSeconds: 20}

	require.True(t, st.FlushWeek(46))

	require.Len(t, st.WeekHistory, 1)
	assert.Equal(t, WeekRecord{Week: 45, WorkingDays: 3, Seconds: 20}, st.WeekHistory[0])
	assert.Equal(t, int64(0), st.WeekSeconds)
	assert.Equal(t, 0, st.WeekWorkingDays)
	assert.Equal(t, 45, st.CurrentWeek)
}

func TestFlushWeekEmptyWeek(t *testing.T) {
	st := State{CurrentWeek: 45, WeekWorkingDays: 2}

	require.False(t, st.FlushWeek(46))
	assert.Empty(t, st.WeekHistory)
	assert.Equal(t, 2, st.WeekWorkingDays)
}

func TestFlushWeekSameWeek(t *testing.T) {
	st := State{CurrentWeek: 46, WeekSeconds: 20}

	require.False(t, st.FlushWeek(46))
	assert.Empty(t, st.WeekHistory)
}

func TestFlushWeekAppendsOnly(t *testing.T) {
	first := WeekRecord{Week: 40, WorkingDays: 5, Seconds: 100}
	st := State{CurrentWeek: 41, WeekSeconds: 50, WeekWorkingDays: 1, WeekHistory: []WeekRecord{first}}

	require.True(t, st.FlushWeek(42))
	require.Len(t, st.WeekHistory, 2)
	assert.Equal(t, first, st.WeekHistory[0])
	assert.Equal(t, WeekRecord{Week: 41, WorkingDays: 1, Seconds: 50}, st.WeekHistory[1])
}

func TestAccumulateElapsed(t *testing.T) {
	st := State{StartTimestamp: 1000, TodaySeconds: 5}

	got := st.AccumulateElapsed(1010)

	assert.Equal(t, int64(10), got)
	assert.Equal(t, int64(15), st.TodaySeconds)
	assert.False(t, st.Running())
}

func TestAccumulateElapsedClockBehind(t *testing.T) {
	st := State{StartTimestamp: 1000, TodaySeconds: 5}

	got := st.AccumulateElapsed(900)

	assert.Equal(t, int64(0), got)
	assert.Equal(t, int64(5), st.TodaySeconds)
	assert.False(t, st.Running())
}

func TestAccumulateElapsedWhenStopped(t *testing.T) {
	st := State{TodaySeconds: 5}

	assert.Equal(t, int64(0), st.AccumulateElapsed(2000))
	assert.Equal(t, int64(5), st.TodaySeconds)
}

func TestCloneIsDeep(t *testing.T) {
	st := State{WeekHistory: []WeekRecord{{Week: 1, WorkingDays: 1, Seconds: 1}}}
	c := st.Clone()
	c.WeekHistory[0].Seconds = 99
	c.WeekHistory = append(c.WeekHistory, WeekRecord{Week: 2})

	assert.Equal(t, int64(1), st.WeekHistory[0].Seconds)
	assert.Len(t, st.WeekHistory, 1)
}

func TestCloneKeepsNilHistory(t *testing.T) {
	assert.Nil(t, State{}.Clone().WeekHistory)
}

// Mirrors the stop, day rollover, week rollover sequence on one record.
func TestFullSequence(t *testing.T) {
	now := int64(1_700_000_000)
	st := State{
		StartTimestamp:  now - 20,
		TodaySeconds:    20,
		CurrentDay:      14,
		CurrentWeek:     45,
		WeekWorkingDays: 3,
	}

	st.AccumulateElapsed(now)
	assert.Equal(t, int64(40), st.TodaySeconds)
	assert.Equal(t, 3, st.WeekWorkingDays)

	st.FlushDay(15, quota)
	assert.Equal(t, int64(0), st.TodaySeconds)
	assert.Equal(t, int64(40), st.WeekSeconds)
	assert.Equal(t, 4, st.WeekWorkingDays)

	st.FlushWeek(46)
	assert.Equal(t, int64(0), st.StartTimestamp)
	assert.Equal(t, int64(0), st.WeekSeconds)
	assert.Equal(t, 0, st.WeekWorkingDays)
	assert.Equal(t, 14, st.CurrentDay)
	assert.Equal(t, 45, st.CurrentWeek)
	require.Len(t, st.WeekHistory, 1)
	assert.Equal(t, WeekRecord{Week: 45, WorkingDays: 4, Seconds: 40}, st.WeekHistory[0])
}
