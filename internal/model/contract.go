package model

import (
	"time"

	"github.com/google/uuid"
)

type ContractType string

const (
	ContractTypeHardware ContractType = "hardware"
	ContractTypeLabel    ContractType = "label"
)

type ContractStatus string

const (
	ContractStatusActive  ContractStatus = "active"
	ContractStatusExpired ContractStatus = "expired"
	ContractStatusPending ContractStatus = "pending"
)

// Frequency is descriptive only. The recurrence interval is fixed by
// ContractType and never read from this field.
type Frequency string

const (
	FrequencyMonthly    Frequency = "monthly"
	FrequencyQuarterly  Frequency = "quarterly"
	FrequencySemiAnnual Frequency = "semi-annual"
	FrequencyYearly     Frequency = "yearly"
)

type Contract struct {
	ID                  uuid.UUID      `json:"id"`
	ContractType        ContractType   `json:"contract_type"`
	SQ                  string         `json:"sq"` // per-type sequential service quote number
	EndUser             string         `json:"end_user"`
	Model               string         `json:"model,omitempty"`       // hardware contracts
	PartNumber          string         `json:"part_number,omitempty"` // label contracts
	Serial              string         `json:"serial"`
	Branch              string         `json:"branch"`
	TechnicalSpecialist string         `json:"technical_specialist"`
	DateOfContract      time.Time      `json:"date_of_contract"`
	EndOfContract       time.Time      `json:"end_of_contract"`
	NextPMSSchedule     time.Time      `json:"next_pms_schedule"`
	Status              ContractStatus `json:"status"`
	Frequency           Frequency      `json:"frequency"`
	PONumber            string         `json:"po_number"`
	Documentation       string         `json:"documentation,omitempty"`
	ServiceReport       string         `json:"service_report,omitempty"`
	History             string         `json:"history,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	CreatedBy           string         `json:"created_by,omitempty"`
}

// ContractSummary is the dashboard row shape: a contract plus its
// urgency computed against the request clock.
type ContractSummary struct {
	ID              uuid.UUID      `json:"id"`
	SQ              string         `json:"sq"`
	EndUser         string         `json:"end_user"`
	Serial          string         `json:"serial"`
	Branch          string         `json:"branch"`
	ContractType    ContractType   `json:"contract_type"`
	Status          ContractStatus `json:"status"`
	NextPMSSchedule time.Time      `json:"next_pms_schedule"`
	DaysUntil       int            `json:"days_until"`
	IsOverdue       bool           `json:"is_overdue"`
	Urgency         string         `json:"urgency"`
}
