package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/danyol08/PMS-Monitoring/internal/model"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

type historyRow struct {
	ID            uuid.UUID
	ContractID    uuid.UUID
	ContractType  string
	ServiceDate   time.Time
	ServiceType   string
	Description   *string
	Technician    string
	SRNumber      *string `gorm:"column:sr_number"`
	Sales         *string
	Company       *string
	Location      *string
	Model         *string
	Serial        *string
	ServiceReport *string
	CreatedAt     time.Time
	CreatedBy     *string
}

const historyColumns = `
	id, contract_id, contract_type, service_date, service_type, description,
	technician, sr_number, sales, company, location, model, serial,
	service_report, created_at, created_by`

// List returns history records newest first, optionally restricted to
// one contract.
func (r *HistoryRepository) List(ctx context.Context, contractID *uuid.UUID) ([]model.ServiceHistoryRecord, error) {
	query := `SELECT` + historyColumns + ` FROM service_history`
	args := []interface{}{}
	if contractID != nil {
		query += ` WHERE contract_id = ?`
		args = append(args, *contractID)
	}
	query += ` ORDER BY service_date DESC, created_at DESC`

	var rows []historyRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]model.ServiceHistoryRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, toHistoryRecord(row))
	}
	return records, nil
}

// CountSince counts completed sessions with a service date on or after
// the given day. Feeds the dashboard's completed-maintenance figure.
func (r *HistoryRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM service_history WHERE service_date >= ?`, since,
	).Scan(&count).Error
	return count, err
}

func toHistoryRecord(row historyRow) model.ServiceHistoryRecord {
	return model.ServiceHistoryRecord{
		ID:            row.ID,
		ContractID:    row.ContractID,
		ContractType:  model.ContractType(row.ContractType),
		ServiceDate:   row.ServiceDate,
		ServiceType:   row.ServiceType,
		Description:   deref(row.Description),
		Technician:    row.Technician,
		SRNumber:      deref(row.SRNumber),
		Sales:         deref(row.Sales),
		Company:       deref(row.Company),
		Location:      deref(row.Location),
		Model:         deref(row.Model),
		Serial:        deref(row.Serial),
		ServiceReport: deref(row.ServiceReport),
		CreatedAt:     row.CreatedAt,
		CreatedBy:     deref(row.CreatedBy),
	}
}
