package compliance

import "time"

// Clock abstracts time so results can be stamped deterministically in tests
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }
