package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/danyol08/PMS-Monitoring/internal/model"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

type contractRow struct {
	ID                  uuid.UUID
	ContractType        string
	SQ                  string `gorm:"column:sq"`
	EndUser             string
	Model               *string
	PartNumber          *string
	Serial              string
	Branch              *string
	TechnicalSpecialist *string
	DateOfContract      time.Time
	EndOfContract       time.Time
	NextPMSSchedule     time.Time `gorm:"column:next_pms_schedule"`
	Status              string
	Frequency           *string
	PONumber            *string `gorm:"column:po_number"`
	Documentation       *string
	ServiceReport       *string
	History             *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	CreatedBy           *string
}

const contractColumns = `
	id, contract_type, sq, end_user, model, part_number, serial, branch,
	technical_specialist, date_of_contract, end_of_contract, next_pms_schedule,
	status, frequency, po_number, documentation, service_report, history,
	created_at, updated_at, created_by`

func (r *ContractRepository) Get(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	var row contractRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT`+contractColumns+` FROM contracts WHERE id = ?`, id,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	contract := toContract(row)
	return &contract, nil
}

// List returns contracts, optionally filtered by type, ordered by
// numeric SQ with non-numeric values last.
func (r *ContractRepository) List(ctx context.Context, contractType *model.ContractType) ([]model.Contract, error) {
	query := `SELECT` + contractColumns + ` FROM contracts`
	args := []interface{}{}
	if contractType != nil {
		query += ` WHERE contract_type = ?`
		args = append(args, string(*contractType))
	}
	query += ` ORDER BY CASE WHEN sq ~ '^[0-9]+$' THEN sq::bigint ELSE 9223372036854775807 END, created_at`

	var rows []contractRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	contracts := make([]model.Contract, 0, len(rows))
	for _, row := range rows {
		contracts = append(contracts, toContract(row))
	}
	return contracts, nil
}

// Create inserts the contract, assigning the next per-type SQ when one
// was not supplied. Assignment and insert run in one transaction so the
// sequence never hands out the same number twice.
func (r *ContractRepository) Create(ctx context.Context, contract *model.Contract) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if contract.SQ == "" {
			sq, err := nextSQ(tx, contract.ContractType)
			if err != nil {
				return err
			}
			contract.SQ = sq
		}
		if contract.ID == uuid.Nil {
			contract.ID = uuid.New()
		}
		now := time.Now().UTC()
		contract.CreatedAt = now
		contract.UpdatedAt = now

		return tx.Exec(`
			INSERT INTO contracts (
				id, contract_type, sq, end_user, model, part_number, serial, branch,
				technical_specialist, date_of_contract, end_of_contract, next_pms_schedule,
				status, frequency, po_number, documentation, service_report, history,
				created_at, updated_at, created_by
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			contract.ID, string(contract.ContractType), contract.SQ, contract.EndUser,
			contract.Model, contract.PartNumber, contract.Serial, contract.Branch,
			contract.TechnicalSpecialist, contract.DateOfContract, contract.EndOfContract,
			contract.NextPMSSchedule, string(contract.Status), string(contract.Frequency),
			contract.PONumber, contract.Documentation, contract.ServiceReport,
			contract.History, contract.CreatedAt, contract.UpdatedAt, contract.CreatedBy,
		).Error
	})
}

func (r *ContractRepository) Update(ctx context.Context, contract *model.Contract) error {
	contract.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).Exec(`
		UPDATE contracts SET
			end_user = ?, model = ?, part_number = ?, serial = ?, branch = ?,
			technical_specialist = ?, date_of_contract = ?, end_of_contract = ?,
			next_pms_schedule = ?, status = ?, frequency = ?, po_number = ?,
			documentation = ?, service_report = ?, history = ?, updated_at = ?
		WHERE id = ?`,
		contract.EndUser, contract.Model, contract.PartNumber, contract.Serial,
		contract.Branch, contract.TechnicalSpecialist, contract.DateOfContract,
		contract.EndOfContract, contract.NextPMSSchedule, string(contract.Status),
		string(contract.Frequency), contract.PONumber, contract.Documentation,
		contract.ServiceReport, contract.History, contract.UpdatedAt, contract.ID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ContractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM contracts WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ApplyCompletion runs fn against the contract under a row lock and
// persists the snapshot and history record it returns in the same
// transaction. This is the at-most-one-writer guarantee the completion
// workflow requires: two concurrent completions for one contract
// serialize on the lock instead of racing read-then-write.
func (r *ContractRepository) ApplyCompletion(
	ctx context.Context,
	id uuid.UUID,
	fn func(contract model.Contract) (model.Contract, model.ServiceHistoryRecord, error),
) (*model.Contract, *model.ServiceHistoryRecord, error) {
	var updated model.Contract
	var record model.ServiceHistoryRecord

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row contractRow
		err := tx.Raw(
			`SELECT`+contractColumns+` FROM contracts WHERE id = ? FOR UPDATE`, id,
		).Scan(&row).Error
		if err != nil {
			return err
		}
		if row.ID == uuid.Nil {
			return gorm.ErrRecordNotFound
		}

		updated, record, err = fn(toContract(row))
		if err != nil {
			return err
		}

		if err := tx.Exec(`
			UPDATE contracts SET next_pms_schedule = ?, updated_at = ? WHERE id = ?`,
			updated.NextPMSSchedule, time.Now().UTC(), id,
		).Error; err != nil {
			return err
		}

		return tx.Exec(`
			INSERT INTO service_history (
				id, contract_id, contract_type, service_date, service_type, description,
				technician, sr_number, sales, company, location, model, serial,
				service_report, created_at, created_by
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			record.ID, record.ContractID, string(record.ContractType), record.ServiceDate,
			record.ServiceType, record.Description, record.Technician, record.SRNumber,
			record.Sales, record.Company, record.Location, record.Model, record.Serial,
			record.ServiceReport, record.CreatedAt, record.CreatedBy,
		).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &updated, &record, nil
}

// MarkExpired sets status to expired for every contract whose end date
// has passed and returns how many rows changed. Invoked only from the
// operator-triggered expire check, never automatically.
func (r *ContractRepository) MarkExpired(ctx context.Context, today time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE contracts SET status = 'expired', updated_at = NOW()
		WHERE status <> 'expired' AND end_of_contract < ?`, today)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// nextSQ returns "last-used integer + 1" for the contract type, starting
// at 1. Non-numeric legacy values are ignored.
func nextSQ(tx *gorm.DB, contractType model.ContractType) (string, error) {
	var last int64
	err := tx.Raw(`
		SELECT COALESCE(MAX(sq::bigint), 0) FROM contracts
		WHERE contract_type = ? AND sq ~ '^[0-9]+$'`,
		string(contractType),
	).Scan(&last).Error
	if err != nil {
		return "", fmt.Errorf("next sq: %w", err)
	}
	return strconv.FormatInt(last+1, 10), nil
}

func toContract(row contractRow) model.Contract {
	return model.Contract{
		ID:                  row.ID,
		ContractType:        model.ContractType(row.ContractType),
		SQ:                  row.SQ,
		EndUser:             row.EndUser,
		Model:               deref(row.Model),
		PartNumber:          deref(row.PartNumber),
		Serial:              row.Serial,
		Branch:              deref(row.Branch),
		TechnicalSpecialist: deref(row.TechnicalSpecialist),
		DateOfContract:      row.DateOfContract,
		EndOfContract:       row.EndOfContract,
		NextPMSSchedule:     row.NextPMSSchedule,
		Status:              model.ContractStatus(row.Status),
		Frequency:           model.Frequency(deref(row.Frequency)),
		PONumber:            deref(row.PONumber),
		Documentation:       deref(row.Documentation),
		ServiceReport:       deref(row.ServiceReport),
		History:             deref(row.History),
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
		CreatedBy:           deref(row.CreatedBy),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
