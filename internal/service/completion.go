package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/danyol08/PMS-Monitoring/internal/model"
	"github.com/danyol08/PMS-Monitoring/internal/schedule"
)

type CompletePMSInput struct {
	ContractID     uuid.UUID
	Technician     string
	CompletionDate time.Time // zero means "today" per the clock
	SRNumber       string
	SalesName      string
	Location       string
	ServiceReport  string
	Principal      model.Principal
}

type CompletePMSResult struct {
	Contract model.Contract
	Record   model.ServiceHistoryRecord
}

// CompletePMS records one finished PMS session: it advances the
// contract's schedule cursor by exactly one cycle anchored at the
// technician-supplied completion date and appends an immutable history
// record. Both writes commit in one transaction under a row lock on the
// contract, so concurrent completions for the same contract serialize
// instead of losing an update.
func (s *MaintenanceService) CompletePMS(ctx context.Context, input CompletePMSInput) (*CompletePMSResult, error) {
	if !input.Principal.CanMutate() {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(input.Technician) == "" {
		return nil, fmt.Errorf("%w: technician is required", ErrInvalidInput)
	}
	if input.ContractID == uuid.Nil {
		return nil, fmt.Errorf("%w: contract_id is required", ErrInvalidInput)
	}

	completionDate := input.CompletionDate
	if completionDate.IsZero() {
		completionDate = s.clock.Today()
	}
	completionDate = schedule.DateOnly(completionDate)

	updated, record, err := s.contracts.ApplyCompletion(ctx, input.ContractID,
		func(contract model.Contract) (model.Contract, model.ServiceHistoryRecord, error) {
			return applyCompletion(contract, input, completionDate)
		})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.log.Info().
		Str("contract_id", input.ContractID.String()).
		Str("sq", updated.SQ).
		Str("technician", record.Technician).
		Time("next_pms_schedule", updated.NextPMSSchedule).
		Msg("pms completed")

	return &CompletePMSResult{Contract: *updated, Record: *record}, nil
}

// applyCompletion is the pure state transition: given a contract
// snapshot it returns the updated snapshot (only NextPMSSchedule
// changed) and the history record for the session. Anchoring the next
// cycle to the completion date rather than the old schedule date keeps
// early or late visits from drifting every following cycle.
func applyCompletion(contract model.Contract, input CompletePMSInput, completionDate time.Time) (model.Contract, model.ServiceHistoryRecord, error) {
	nextDate, err := schedule.NextDate(contract.ContractType, completionDate)
	if err != nil {
		return model.Contract{}, model.ServiceHistoryRecord{}, fmt.Errorf("%w: %s", ErrInvariant, err)
	}

	srNumber := strings.TrimSpace(input.SRNumber)
	if srNumber == "" {
		srNumber = fmt.Sprintf("SR-%s-%s",
			completionDate.Format("20060102"),
			strings.ToUpper(contract.ID.String()[:8]))
	}
	sales := strings.TrimSpace(input.SalesName)
	if sales == "" {
		sales = contract.PONumber
	}
	location := strings.TrimSpace(input.Location)
	if location == "" {
		location = contract.Branch
	}
	technician := strings.TrimSpace(input.Technician)
	serviceReport := strings.TrimSpace(input.ServiceReport)
	if serviceReport == "" {
		serviceReport = fmt.Sprintf("PMS service completed by %s", technician)
	}

	equipment := contract.Model
	if contract.ContractType == model.ContractTypeLabel {
		equipment = contract.PartNumber
	}

	record := model.ServiceHistoryRecord{
		ID:            uuid.New(),
		ContractID:    contract.ID,
		ContractType:  contract.ContractType,
		ServiceDate:   completionDate,
		ServiceType:   "PMS",
		Description:   fmt.Sprintf("PMS completed for %s - %s", contract.SQ, contract.EndUser),
		Technician:    technician,
		SRNumber:      srNumber,
		Sales:         sales,
		Company:       contract.EndUser,
		Location:      location,
		Model:         equipment,
		Serial:        contract.Serial,
		ServiceReport: serviceReport,
		CreatedAt:     time.Now().UTC(),
		CreatedBy:     input.Principal.FullName,
	}

	updated := contract
	updated.NextPMSSchedule = nextDate
	return updated, record, nil
}
