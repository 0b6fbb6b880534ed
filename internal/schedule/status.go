package schedule

import "time"

// Urgency is derived fresh from NextPMSSchedule and the clock on every
// query. It is never stored and is independent of the operator-set
// contract status (active/expired/pending).
type Urgency string

const (
	UrgencyOnSchedule Urgency = "on_schedule"
	UrgencyDueToday   Urgency = "due_today"
	UrgencyOverdue    Urgency = "overdue"
)

// DaysUntil returns whole calendar days from today to next, negative
// when the schedule date has passed.
func DaysUntil(next, today time.Time) int {
	next = DateOnly(next)
	today = DateOnly(today)
	return int(next.Sub(today).Hours() / 24)
}

func Classify(daysUntil int) Urgency {
	switch {
	case daysUntil < 0:
		return UrgencyOverdue
	case daysUntil == 0:
		return UrgencyDueToday
	default:
		return UrgencyOnSchedule
	}
}
