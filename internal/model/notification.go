package model

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Message          string     `json:"message"`
	NotificationType string     `json:"notification_type"`
	ContractID       *uuid.UUID `json:"contract_id,omitempty"`
	IsRead           bool       `json:"is_read"`
	CreatedAt        time.Time  `json:"created_at"`
}
