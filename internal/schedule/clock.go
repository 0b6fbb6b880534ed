package schedule

import "time"

// Clock supplies "today" so overdue/upcoming logic stays deterministic
// under test. Production code uses SystemClock.
type Clock interface {
	Today() time.Time
}

type SystemClock struct{}

func (SystemClock) Today() time.Time {
	return DateOnly(time.Now().UTC())
}

// FixedClock pins Today to a single date.
type FixedClock struct {
	Date time.Time
}

func (c FixedClock) Today() time.Time {
	return DateOnly(c.Date)
}

// DateOnly truncates a timestamp to calendar-day granularity in UTC.
// All schedule arithmetic operates on these normalized dates.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
