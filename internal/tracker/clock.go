package tracker

import "time"

// Clock supplies the current instant and the local calendar keys used for
// rollover. Every call reads the wall clock on its own.
type Clock interface {
	Now() int64
	DayOfMonth() int
	ISOWeek() int
}

// SystemClock reads the host's local time.
type SystemClock struct{}

func (SystemClock) Now() int64 {
	return time.Now().Unix()
}

func (SystemClock) DayOfMonth() int {
	return time.Now().Day()
}

func (SystemClock) ISOWeek() int {
	_, week := time.Now().ISOWeek()
	return week
}
