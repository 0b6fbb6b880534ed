package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysUntil(t *testing.T) {
	today := date(2024, time.June, 15)

	tests := []struct {
		name string
		next time.Time
		want int
	}{
		{"yesterday", date(2024, time.June, 14), -1},
		{"today", date(2024, time.June, 15), 0},
		{"tomorrow", date(2024, time.June, 16), 1},
		{"ten days out", date(2024, time.June, 25), 10},
		{"five days overdue", date(2024, time.June, 10), -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntil(tt.next, today))
		})
	}
}

func TestDaysUntilIgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2024, time.June, 15, 23, 30, 0, 0, time.UTC)
	next := time.Date(2024, time.June, 16, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysUntil(next, today))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, UrgencyOverdue, Classify(-1))
	assert.Equal(t, UrgencyDueToday, Classify(0))
	assert.Equal(t, UrgencyOnSchedule, Classify(1))
}

func TestFixedClock(t *testing.T) {
	clock := FixedClock{Date: time.Date(2024, time.June, 15, 18, 0, 0, 0, time.UTC)}
	assert.Equal(t, date(2024, time.June, 15), clock.Today())
}
