package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danyol08/PMS-Monitoring/internal/model"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func contractDue(id string, contractType model.ContractType, next time.Time) model.Contract {
	return model.Contract{
		ID:              uuid.MustParse(id),
		ContractType:    contractType,
		SQ:              "1",
		EndUser:         "Acme Corp",
		Serial:          "SN-100",
		Status:          model.ContractStatusActive,
		NextPMSSchedule: next,
	}
}

func TestUpcomingIncludesOverdueRegardlessOfWindow(t *testing.T) {
	now := date(2024, time.June, 15)
	contracts := []model.Contract{
		// 100 days overdue, far outside any window
		contractDue("00000000-0000-0000-0000-000000000001", model.ContractTypeHardware, date(2024, time.March, 7)),
		// due in 5 days
		contractDue("00000000-0000-0000-0000-000000000002", model.ContractTypeLabel, date(2024, time.June, 20)),
		// due in 60 days, outside the 30-day window
		contractDue("00000000-0000-0000-0000-000000000003", model.ContractTypeHardware, date(2024, time.August, 14)),
	}

	result := Upcoming(contracts, 30, now)
	require.Len(t, result, 2)
	assert.True(t, result[0].IsOverdue)
	assert.Equal(t, -100, result[0].DaysUntil)
	assert.Equal(t, "overdue", result[0].Urgency)
	assert.Equal(t, 5, result[1].DaysUntil)
	assert.Equal(t, "on_schedule", result[1].Urgency)
}

func TestUpcomingOrderedByRawDate(t *testing.T) {
	now := date(2024, time.June, 15)
	contracts := []model.Contract{
		contractDue("00000000-0000-0000-0000-000000000001", model.ContractTypeLabel, date(2024, time.June, 20)),
		contractDue("00000000-0000-0000-0000-000000000002", model.ContractTypeHardware, date(2024, time.January, 1)),
		contractDue("00000000-0000-0000-0000-000000000003", model.ContractTypeLabel, date(2024, time.June, 10)),
	}

	result := Upcoming(contracts, 30, now)
	require.Len(t, result, 3)
	// overdue entries sort by date, not pushed to the end by |days|
	assert.Equal(t, date(2024, time.January, 1), result[0].NextPMSSchedule)
	assert.Equal(t, date(2024, time.June, 10), result[1].NextPMSSchedule)
	assert.Equal(t, date(2024, time.June, 20), result[2].NextPMSSchedule)
}

func TestUpcomingTieBreaksByID(t *testing.T) {
	now := date(2024, time.June, 15)
	same := date(2024, time.June, 20)
	contracts := []model.Contract{
		contractDue("00000000-0000-0000-0000-00000000000b", model.ContractTypeLabel, same),
		contractDue("00000000-0000-0000-0000-00000000000a", model.ContractTypeHardware, same),
	}

	result := Upcoming(contracts, 30, now)
	require.Len(t, result, 2)
	assert.Equal(t, "00000000-0000-0000-0000-00000000000a", result[0].ID.String())
	assert.Equal(t, "00000000-0000-0000-0000-00000000000b", result[1].ID.String())
}

func TestUpcomingExcludesExpired(t *testing.T) {
	now := date(2024, time.June, 15)
	expired := contractDue("00000000-0000-0000-0000-000000000001", model.ContractTypeHardware, date(2024, time.June, 1))
	expired.Status = model.ContractStatusExpired

	result := Upcoming([]model.Contract{expired}, 30, now)
	assert.Empty(t, result)
}

func TestUpcomingIsIdempotent(t *testing.T) {
	now := date(2024, time.June, 15)
	contracts := []model.Contract{
		contractDue("00000000-0000-0000-0000-000000000001", model.ContractTypeHardware, date(2024, time.June, 1)),
		contractDue("00000000-0000-0000-0000-000000000002", model.ContractTypeLabel, date(2024, time.June, 20)),
	}

	first := Upcoming(contracts, 30, now)
	second := Upcoming(contracts, 30, now)
	assert.Equal(t, first, second)
}

func TestGroupByPeriodOverdueBucket(t *testing.T) {
	now := date(2024, time.June, 15)
	contracts := []model.Contract{
		// 5 days overdue: lands in Overdue, not 2024-06
		contractDue("00000000-0000-0000-0000-000000000001", model.ContractTypeHardware, date(2024, time.June, 10)),
		// 10 days out: lands in its calendar month
		contractDue("00000000-0000-0000-0000-000000000002", model.ContractTypeLabel, date(2024, time.June, 25)),
		contractDue("00000000-0000-0000-0000-000000000003", model.ContractTypeHardware, date(2024, time.August, 2)),
	}

	summary := GroupByPeriod(contracts, now)
	assert.Equal(t, 3, summary.TotalDue)
	assert.Equal(t, 1, summary.OverdueCount)

	require.Contains(t, summary.ByPeriod, "Overdue")
	assert.Equal(t, PeriodCounts{Hardware: 1, Total: 1}, summary.ByPeriod["Overdue"])
	assert.Equal(t, PeriodCounts{Label: 1, Total: 1}, summary.ByPeriod["2024-06"])
	assert.Equal(t, PeriodCounts{Hardware: 1, Total: 1}, summary.ByPeriod["2024-08"])
}

func TestGroupByPeriodLabelOrder(t *testing.T) {
	now := date(2024, time.June, 15)
	contracts := []model.Contract{
		contractDue("00000000-0000-0000-0000-000000000001", model.ContractTypeHardware, date(2024, time.August, 2)),
		contractDue("00000000-0000-0000-0000-000000000002", model.ContractTypeLabel, date(2024, time.June, 1)),
		contractDue("00000000-0000-0000-0000-000000000003", model.ContractTypeLabel, date(2024, time.July, 9)),
	}

	summary := GroupByPeriod(contracts, now)
	assert.Equal(t, []string{"Overdue", "2024-07", "2024-08"}, summary.PeriodLabels())
}

func TestGroupByPeriodIsIdempotent(t *testing.T) {
	now := date(2024, time.June, 15)
	contracts := []model.Contract{
		contractDue("00000000-0000-0000-0000-000000000001", model.ContractTypeHardware, date(2024, time.June, 10)),
		contractDue("00000000-0000-0000-0000-000000000002", model.ContractTypeLabel, date(2024, time.July, 1)),
	}

	first := GroupByPeriod(contracts, now)
	second := GroupByPeriod(contracts, now)
	assert.Equal(t, first, second)
}

func TestComputeDashboardStats(t *testing.T) {
	now := date(2024, time.June, 15)

	active := contractDue("00000000-0000-0000-0000-000000000001", model.ContractTypeHardware, date(2024, time.June, 20))
	overdue := contractDue("00000000-0000-0000-0000-000000000002", model.ContractTypeLabel, date(2024, time.June, 1))
	farOut := contractDue("00000000-0000-0000-0000-000000000003", model.ContractTypeHardware, date(2024, time.September, 1))
	expired := contractDue("00000000-0000-0000-0000-000000000004", model.ContractTypeLabel, date(2024, time.June, 16))
	expired.Status = model.ContractStatusExpired
	pending := contractDue("00000000-0000-0000-0000-000000000005", model.ContractTypeLabel, date(2024, time.July, 10))
	pending.Status = model.ContractStatusPending

	stats := ComputeDashboardStats([]model.Contract{active, overdue, farOut, expired, pending}, now)
	assert.Equal(t, 5, stats.TotalContracts)
	assert.Equal(t, 3, stats.ActiveContracts)
	assert.Equal(t, 1, stats.ExpiredContracts)
	assert.Equal(t, 1, stats.PendingContracts)
	assert.Equal(t, 1, stats.OverdueMaintenance)
	// active due in 5 days and pending due in 25 days fall in the fixed
	// 30-day window; the far-out and expired contracts do not
	assert.Equal(t, 2, stats.UpcomingMaintenance)
}

func TestComputeDashboardStatsWindowBoundary(t *testing.T) {
	now := date(2024, time.June, 15)
	atBoundary := contractDue("00000000-0000-0000-0000-000000000001", model.ContractTypeHardware, date(2024, time.July, 15))
	pastBoundary := contractDue("00000000-0000-0000-0000-000000000002", model.ContractTypeHardware, date(2024, time.July, 16))

	stats := ComputeDashboardStats([]model.Contract{atBoundary, pastBoundary}, now)
	assert.Equal(t, 1, stats.UpcomingMaintenance)
}
