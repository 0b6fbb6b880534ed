package model

import (
	"time"

	"github.com/google/uuid"
)

// ServiceHistoryRecord is an append-only fact describing one completed
// PMS session. Records are never updated or deleted.
type ServiceHistoryRecord struct {
	ID            uuid.UUID    `json:"id"`
	ContractID    uuid.UUID    `json:"contract_id"`
	ContractType  ContractType `json:"contract_type"`
	ServiceDate   time.Time    `json:"service_date"` // technician-supplied completion date
	ServiceType   string       `json:"service_type"`
	Description   string       `json:"description"`
	Technician    string       `json:"technician"`
	SRNumber      string       `json:"sr_number"`
	Sales         string       `json:"sales"`
	Company       string       `json:"company"`
	Location      string       `json:"location"`
	Model         string       `json:"model"`
	Serial        string       `json:"serial"`
	ServiceReport string       `json:"service_report"`
	CreatedAt     time.Time    `json:"created_at"`
	CreatedBy     string       `json:"created_by,omitempty"`
}
