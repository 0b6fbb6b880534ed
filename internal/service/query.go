package service

import (
	"sort"
	"time"

	"github.com/danyol08/PMS-Monitoring/internal/model"
	"github.com/danyol08/PMS-Monitoring/internal/schedule"
)

// OverduePeriodLabel buckets every overdue contract regardless of the
// calendar month its schedule date falls in.
const OverduePeriodLabel = "Overdue"

type PeriodCounts struct {
	Hardware int `json:"hardware"`
	Label    int `json:"label"`
	Total    int `json:"total"`
}

type PeriodSummary struct {
	TotalDue     int                     `json:"total_due"`
	OverdueCount int                     `json:"overdue_count"`
	ByPeriod     map[string]PeriodCounts `json:"by_period"`
}

type DashboardStats struct {
	TotalContracts       int   `json:"total_contracts"`
	ActiveContracts      int   `json:"active_contracts"`
	ExpiredContracts     int   `json:"expired_contracts"`
	PendingContracts     int   `json:"pending_contracts"`
	OverdueMaintenance   int   `json:"overdue_maintenance"`
	UpcomingMaintenance  int   `json:"upcoming_maintenance"`
	CompletedMaintenance int64 `json:"completed_maintenance"`
}

// Upcoming filters contracts due within windowDays of now. Overdue
// contracts are always included, whatever the window. Expired contracts
// never surface here. The result is ordered by the raw schedule date,
// most urgent first, with the contract id as tie-break so repeated
// renders of the same data agree.
func Upcoming(contracts []model.Contract, windowDays int, now time.Time) []model.ContractSummary {
	today := schedule.DateOnly(now)

	var result []model.ContractSummary
	for _, contract := range contracts {
		if contract.Status == model.ContractStatusExpired {
			continue
		}
		daysUntil := schedule.DaysUntil(contract.NextPMSSchedule, today)
		if daysUntil > windowDays {
			continue
		}
		result = append(result, summarize(contract, daysUntil))
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].NextPMSSchedule.Equal(result[j].NextPMSSchedule) {
			return result[i].NextPMSSchedule.Before(result[j].NextPMSSchedule)
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	return result
}

// GroupByPeriod buckets non-expired contracts for the notification
// popup: one "Overdue" bucket, then one per YYYY-MM of the schedule
// date, each carrying hardware/label/total counts.
func GroupByPeriod(contracts []model.Contract, now time.Time) PeriodSummary {
	today := schedule.DateOnly(now)
	summary := PeriodSummary{ByPeriod: map[string]PeriodCounts{}}

	for _, contract := range contracts {
		if contract.Status == model.ContractStatusExpired {
			continue
		}
		daysUntil := schedule.DaysUntil(contract.NextPMSSchedule, today)

		label := schedule.DateOnly(contract.NextPMSSchedule).Format("2006-01")
		if daysUntil < 0 {
			label = OverduePeriodLabel
			summary.OverdueCount++
		}

		counts := summary.ByPeriod[label]
		switch contract.ContractType {
		case model.ContractTypeHardware:
			counts.Hardware++
		case model.ContractTypeLabel:
			counts.Label++
		}
		counts.Total++
		summary.ByPeriod[label] = counts
		summary.TotalDue++
	}
	return summary
}

// PeriodLabels returns the bucket labels in display order: Overdue
// first, then months ascending.
func (s PeriodSummary) PeriodLabels() []string {
	labels := make([]string, 0, len(s.ByPeriod))
	for label := range s.ByPeriod {
		if label == OverduePeriodLabel {
			continue
		}
		labels = append(labels, label)
	}
	sort.Strings(labels)
	if _, ok := s.ByPeriod[OverduePeriodLabel]; ok {
		labels = append([]string{OverduePeriodLabel}, labels...)
	}
	return labels
}

// ComputeDashboardStats aggregates contract counts. Upcoming uses the
// fixed 30-day default window, independent of the caller-configurable
// window Upcoming takes. CompletedMaintenance is filled by the caller
// from the history store.
func ComputeDashboardStats(contracts []model.Contract, now time.Time) DashboardStats {
	today := schedule.DateOnly(now)
	stats := DashboardStats{TotalContracts: len(contracts)}

	for _, contract := range contracts {
		switch contract.Status {
		case model.ContractStatusActive:
			stats.ActiveContracts++
		case model.ContractStatusExpired:
			stats.ExpiredContracts++
		case model.ContractStatusPending:
			stats.PendingContracts++
		}
		if contract.Status == model.ContractStatusExpired {
			continue
		}
		daysUntil := schedule.DaysUntil(contract.NextPMSSchedule, today)
		if daysUntil < 0 {
			stats.OverdueMaintenance++
		}
		if daysUntil >= 0 && daysUntil <= defaultUpcomingWindowDays {
			stats.UpcomingMaintenance++
		}
	}
	return stats
}

const defaultUpcomingWindowDays = 30

func summarize(contract model.Contract, daysUntil int) model.ContractSummary {
	return model.ContractSummary{
		ID:              contract.ID,
		SQ:              contract.SQ,
		EndUser:         contract.EndUser,
		Serial:          contract.Serial,
		Branch:          contract.Branch,
		ContractType:    contract.ContractType,
		Status:          contract.Status,
		NextPMSSchedule: schedule.DateOnly(contract.NextPMSSchedule),
		DaysUntil:       daysUntil,
		IsOverdue:       daysUntil < 0,
		Urgency:         string(schedule.Classify(daysUntil)),
	}
}
