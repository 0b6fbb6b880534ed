package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/danyol08/PMS-Monitoring/internal/config"
	"github.com/danyol08/PMS-Monitoring/internal/model"
	"github.com/danyol08/PMS-Monitoring/internal/repository"
	"github.com/danyol08/PMS-Monitoring/internal/schedule"
)

// HistoryExcelGenerator renders service-history records to a workbook.
type HistoryExcelGenerator interface {
	Generate(records []model.ServiceHistoryRecord) ([]byte, error)
}

// HistoryPDFGenerator renders service-history records to a PDF.
type HistoryPDFGenerator interface {
	Generate(records []model.ServiceHistoryRecord) ([]byte, error)
}

type MaintenanceService struct {
	contracts *repository.ContractRepository
	history   *repository.HistoryRepository
	excel     HistoryExcelGenerator
	pdf       HistoryPDFGenerator
	clock     schedule.Clock
	cfg       *config.Config
	log       zerolog.Logger
}

func NewMaintenanceService(
	contracts *repository.ContractRepository,
	history *repository.HistoryRepository,
	excel HistoryExcelGenerator,
	pdf HistoryPDFGenerator,
	clock schedule.Clock,
	cfg *config.Config,
	log zerolog.Logger,
) *MaintenanceService {
	return &MaintenanceService{
		contracts: contracts,
		history:   history,
		excel:     excel,
		pdf:       pdf,
		clock:     clock,
		cfg:       cfg,
		log:       log,
	}
}

type CreateContractInput struct {
	ContractType        model.ContractType
	EndUser             string
	Model               string
	PartNumber          string
	Serial              string
	Branch              string
	TechnicalSpecialist string
	DateOfContract      time.Time
	EndOfContract       time.Time
	NextPMSSchedule     time.Time // zero: computed from date of contract
	Status              model.ContractStatus
	Frequency           model.Frequency
	PONumber            string
	Documentation       string
	Principal           model.Principal
}

func (s *MaintenanceService) CreateContract(ctx context.Context, input CreateContractInput) (*model.Contract, error) {
	if !input.Principal.CanMutate() {
		return nil, ErrPermissionDenied
	}
	if err := validateContractType(input.ContractType); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.EndUser) == "" {
		return nil, fmt.Errorf("%w: end_user is required", ErrInvalidInput)
	}
	if input.DateOfContract.IsZero() || input.EndOfContract.IsZero() {
		return nil, fmt.Errorf("%w: contract dates are required", ErrInvalidInput)
	}

	dateOfContract := schedule.DateOnly(input.DateOfContract)
	endOfContract := schedule.DateOnly(input.EndOfContract)
	if !endOfContract.After(dateOfContract) {
		return nil, fmt.Errorf("%w: end_of_contract must be after date_of_contract", ErrInvariant)
	}

	nextPMS := schedule.DateOnly(input.NextPMSSchedule)
	if input.NextPMSSchedule.IsZero() {
		computed, err := schedule.NextDate(input.ContractType, dateOfContract)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvariant, err)
		}
		nextPMS = computed
	}
	if nextPMS.Before(dateOfContract) {
		return nil, fmt.Errorf("%w: next_pms_schedule precedes date_of_contract", ErrInvariant)
	}

	status := input.Status
	if status == "" {
		status = model.ContractStatusActive
	}
	frequency := input.Frequency
	if frequency == "" {
		frequency = defaultFrequency(input.ContractType)
	}

	contract := &model.Contract{
		ContractType:        input.ContractType,
		EndUser:             strings.TrimSpace(input.EndUser),
		Model:               input.Model,
		PartNumber:          input.PartNumber,
		Serial:              input.Serial,
		Branch:              input.Branch,
		TechnicalSpecialist: input.TechnicalSpecialist,
		DateOfContract:      dateOfContract,
		EndOfContract:       endOfContract,
		NextPMSSchedule:     nextPMS,
		Status:              status,
		Frequency:           frequency,
		PONumber:            input.PONumber,
		Documentation:       input.Documentation,
		CreatedBy:           input.Principal.FullName,
	}
	if err := s.contracts.Create(ctx, contract); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("contract_id", contract.ID.String()).
		Str("sq", contract.SQ).
		Str("contract_type", string(contract.ContractType)).
		Msg("contract created")
	return contract, nil
}

func (s *MaintenanceService) GetContract(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	contract, err := s.contracts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return contract, nil
}

func (s *MaintenanceService) ListContracts(ctx context.Context, contractType *model.ContractType) ([]model.Contract, error) {
	if contractType != nil {
		if err := validateContractType(*contractType); err != nil {
			return nil, err
		}
	}
	return s.contracts.List(ctx, contractType)
}

type UpdateContractInput struct {
	EndUser             *string
	Model               *string
	PartNumber          *string
	Serial              *string
	Branch              *string
	TechnicalSpecialist *string
	DateOfContract      *time.Time
	EndOfContract       *time.Time
	NextPMSSchedule     *time.Time
	Status              *model.ContractStatus
	Frequency           *model.Frequency
	PONumber            *string
	Documentation       *string
	ServiceReport       *string
	History             *string
	Principal           model.Principal
}

func (s *MaintenanceService) UpdateContract(ctx context.Context, id uuid.UUID, input UpdateContractInput) (*model.Contract, error) {
	if !input.Principal.CanMutate() {
		return nil, ErrPermissionDenied
	}

	contract, err := s.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}

	applyIfSet(&contract.EndUser, input.EndUser)
	applyIfSet(&contract.Model, input.Model)
	applyIfSet(&contract.PartNumber, input.PartNumber)
	applyIfSet(&contract.Serial, input.Serial)
	applyIfSet(&contract.Branch, input.Branch)
	applyIfSet(&contract.TechnicalSpecialist, input.TechnicalSpecialist)
	applyIfSet(&contract.PONumber, input.PONumber)
	applyIfSet(&contract.Documentation, input.Documentation)
	applyIfSet(&contract.ServiceReport, input.ServiceReport)
	applyIfSet(&contract.History, input.History)
	if input.DateOfContract != nil {
		contract.DateOfContract = schedule.DateOnly(*input.DateOfContract)
	}
	if input.EndOfContract != nil {
		contract.EndOfContract = schedule.DateOnly(*input.EndOfContract)
	}
	if input.NextPMSSchedule != nil {
		contract.NextPMSSchedule = schedule.DateOnly(*input.NextPMSSchedule)
	}
	if input.Status != nil {
		switch *input.Status {
		case model.ContractStatusActive, model.ContractStatusExpired, model.ContractStatusPending:
			contract.Status = *input.Status
		default:
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *input.Status)
		}
	}
	if input.Frequency != nil {
		contract.Frequency = *input.Frequency
	}

	if !contract.EndOfContract.After(contract.DateOfContract) {
		return nil, fmt.Errorf("%w: end_of_contract must be after date_of_contract", ErrInvariant)
	}
	if contract.NextPMSSchedule.Before(contract.DateOfContract) {
		return nil, fmt.Errorf("%w: next_pms_schedule precedes date_of_contract", ErrInvariant)
	}

	if err := s.contracts.Update(ctx, contract); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return contract, nil
}

func (s *MaintenanceService) DeleteContract(ctx context.Context, id uuid.UUID, principal model.Principal) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	if err := s.contracts.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.log.Info().Str("contract_id", id.String()).Msg("contract deleted")
	return nil
}

// FullSchedule returns every PMS date between the contract's start and
// end dates. Computed fresh on each call, never stored.
func (s *MaintenanceService) FullSchedule(ctx context.Context, id uuid.UUID) ([]time.Time, error) {
	contract, err := s.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}
	series, err := schedule.FullSchedule(contract.ContractType, contract.DateOfContract, contract.EndOfContract)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvariant, err)
	}
	return series, nil
}

// UpcomingMaintenance lists contracts due within windowDays, overdue
// first. windowDays <= 0 falls back to the configured default.
func (s *MaintenanceService) UpcomingMaintenance(ctx context.Context, windowDays int) ([]model.ContractSummary, error) {
	if windowDays <= 0 {
		windowDays = s.cfg.Maintenance.UpcomingWindowDays
	}
	contracts, err := s.contracts.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	return Upcoming(contracts, windowDays, s.clock.Today()), nil
}

// PeriodSummary groups due and upcoming work into the Overdue bucket
// and per-month buckets for the notification popup.
func (s *MaintenanceService) PeriodSummary(ctx context.Context) (*PeriodSummary, error) {
	contracts, err := s.contracts.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	summary := GroupByPeriod(contracts, s.clock.Today())
	return &summary, nil
}

func (s *MaintenanceService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	contracts, err := s.contracts.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	stats := ComputeDashboardStats(contracts, s.clock.Today())

	completed, err := s.history.CountSince(ctx, time.Time{})
	if err != nil {
		return nil, err
	}
	stats.CompletedMaintenance = completed
	return &stats, nil
}

// ExpireCheck marks contracts past their end date as expired. Status is
// operator-owned, so this runs only when an operator invokes it.
func (s *MaintenanceService) ExpireCheck(ctx context.Context, principal model.Principal) (int64, error) {
	if !principal.IsAdmin() {
		return 0, ErrPermissionDenied
	}
	expired, err := s.contracts.MarkExpired(ctx, s.clock.Today())
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		s.log.Info().Int64("expired", expired).Msg("contracts marked expired")
	}
	return expired, nil
}

func (s *MaintenanceService) ServiceHistory(ctx context.Context, contractID *uuid.UUID) ([]model.ServiceHistoryRecord, error) {
	return s.history.List(ctx, contractID)
}

type ExportResult struct {
	FileName string
	Content  []byte
}

func (s *MaintenanceService) ExportHistoryExcel(ctx context.Context, contractID *uuid.UUID) (*ExportResult, error) {
	records, err := s.history.List(ctx, contractID)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Generate(records)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: fmt.Sprintf("service-history-%s.xlsx", s.clock.Today().Format("20060102")),
		Content:  content,
	}, nil
}

func (s *MaintenanceService) ExportHistoryPDF(ctx context.Context, contractID *uuid.UUID) (*ExportResult, error) {
	records, err := s.history.List(ctx, contractID)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(records)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: fmt.Sprintf("service-history-%s.pdf", s.clock.Today().Format("20060102")),
		Content:  content,
	}, nil
}

func validateContractType(contractType model.ContractType) error {
	switch contractType {
	case model.ContractTypeHardware, model.ContractTypeLabel:
		return nil
	default:
		return fmt.Errorf("%w: unknown contract type %q", ErrInvalidInput, contractType)
	}
}

func defaultFrequency(contractType model.ContractType) model.Frequency {
	if contractType == model.ContractTypeHardware {
		return model.FrequencyQuarterly
	}
	return model.FrequencyMonthly
}

func applyIfSet(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
