package schedule

import (
	"fmt"
	"time"

	"github.com/danyol08/PMS-Monitoring/internal/model"
)

// Recurrence intervals are fixed by contract type. The user-editable
// frequency field is display-only and never consulted here.
const (
	HardwareIntervalDays = 90
	LabelIntervalDays    = 30
)

// InvariantError marks schedule inputs that violate contract-creation
// rules (end date not after start date, unknown contract type).
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("schedule invariant violated: %s", e.Reason)
}

// IntervalDays returns the PMS cycle length for a contract type.
func IntervalDays(contractType model.ContractType) (int, error) {
	switch contractType {
	case model.ContractTypeHardware:
		return HardwareIntervalDays, nil
	case model.ContractTypeLabel:
		return LabelIntervalDays, nil
	default:
		return 0, &InvariantError{Reason: fmt.Sprintf("unknown contract type %q", contractType)}
	}
}

// NextDate computes the next PMS date after from: +90 calendar days for
// hardware contracts, +30 for label contracts. Time-of-day is discarded.
func NextDate(contractType model.ContractType, from time.Time) (time.Time, error) {
	interval, err := IntervalDays(contractType)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(from).AddDate(0, 0, interval), nil
}

// FullSchedule produces every PMS date in (start, end], stepping one
// interval at a time from start. The series is strictly increasing and
// empty when less than one interval fits. An end date before the start
// date is an invariant violation, not an empty schedule.
func FullSchedule(contractType model.ContractType, start, end time.Time) ([]time.Time, error) {
	interval, err := IntervalDays(contractType)
	if err != nil {
		return nil, err
	}

	start = DateOnly(start)
	end = DateOnly(end)
	if end.Before(start) {
		return nil, &InvariantError{Reason: "end of contract precedes date of contract"}
	}

	var series []time.Time
	for current := start.AddDate(0, 0, interval); !current.After(end); current = current.AddDate(0, 0, interval) {
		series = append(series, current)
	}
	return series, nil
}
