package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danyol08/PMS-Monitoring/internal/model"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestNextDateHardware(t *testing.T) {
	// 90 days across February in a leap year
	next, err := NextDate(model.ContractTypeHardware, date(2024, time.January, 10))
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.April, 9), next)
}

func TestNextDateLabel(t *testing.T) {
	// 30 days across a short month
	next, err := NextDate(model.ContractTypeLabel, date(2024, time.January, 31))
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 1), next)
}

func TestNextDateIgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2024, time.January, 10, 17, 45, 12, 0, time.UTC)
	next, err := NextDate(model.ContractTypeHardware, from)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.April, 9), next)
}

func TestNextDateUnknownType(t *testing.T) {
	_, err := NextDate(model.ContractType("repair"), date(2024, time.January, 1))
	require.Error(t, err)
	var invariant *InvariantError
	assert.ErrorAs(t, err, &invariant)
}

func TestFullScheduleBoundedAndIncreasing(t *testing.T) {
	start := date(2024, time.January, 1)
	end := date(2025, time.January, 1)

	series, err := FullSchedule(model.ContractTypeHardware, start, end)
	require.NoError(t, err)
	require.NotEmpty(t, series)

	previous := start
	for _, entry := range series {
		assert.True(t, entry.After(previous), "series must be strictly increasing")
		assert.False(t, entry.After(end), "every entry must be <= end")
		previous = entry
	}
	// 90-day cycle fits 4 times in a 366-day year
	assert.Len(t, series, 4)
}

func TestFullScheduleLabelCount(t *testing.T) {
	series, err := FullSchedule(model.ContractTypeLabel, date(2024, time.January, 1), date(2024, time.July, 1))
	require.NoError(t, err)
	assert.Len(t, series, 6)
}

func TestFullScheduleEmptyWhenStartEqualsEnd(t *testing.T) {
	start := date(2024, time.June, 15)
	series, err := FullSchedule(model.ContractTypeLabel, start, start)
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestFullScheduleEmptyWhenLessThanOneInterval(t *testing.T) {
	series, err := FullSchedule(model.ContractTypeHardware, date(2024, time.January, 1), date(2024, time.February, 1))
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestFullScheduleEndBeforeStart(t *testing.T) {
	_, err := FullSchedule(model.ContractTypeHardware, date(2024, time.June, 1), date(2024, time.January, 1))
	require.Error(t, err)
	var invariant *InvariantError
	assert.ErrorAs(t, err, &invariant)
}

func TestFullScheduleRecomputedFresh(t *testing.T) {
	start := date(2024, time.January, 1)
	end := date(2024, time.December, 31)

	first, err := FullSchedule(model.ContractTypeLabel, start, end)
	require.NoError(t, err)
	second, err := FullSchedule(model.ContractTypeLabel, start, end)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
