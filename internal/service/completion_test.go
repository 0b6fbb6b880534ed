package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danyol08/PMS-Monitoring/internal/config"
	"github.com/danyol08/PMS-Monitoring/internal/model"
	"github.com/danyol08/PMS-Monitoring/internal/schedule"
)

func hardwareContract() model.Contract {
	return model.Contract{
		ID:                  uuid.MustParse("11111111-2222-3333-4444-555555555555"),
		ContractType:        model.ContractTypeHardware,
		SQ:                  "42",
		EndUser:             "Acme Corp",
		Model:               "Analyzer X200",
		Serial:              "SN-9001",
		Branch:              "Cebu",
		TechnicalSpecialist: "R. Santos",
		DateOfContract:      date(2024, time.January, 1),
		EndOfContract:       date(2025, time.January, 1),
		NextPMSSchedule:     date(2024, time.March, 31),
		Status:              model.ContractStatusActive,
		Frequency:           model.FrequencyQuarterly,
		PONumber:            "PO-7788",
		Documentation:       "docs",
		ServiceReport:       "prior report",
		History:             "prior history",
	}
}

func technicianPrincipal() model.Principal {
	return model.Principal{
		UserID:   uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"),
		FullName: "J. Dela Cruz",
		Role:     model.RoleTechnician,
	}
}

func TestApplyCompletionAdvancesOnlyNextSchedule(t *testing.T) {
	contract := hardwareContract()
	completionDate := date(2024, time.January, 10)
	input := CompletePMSInput{
		ContractID: contract.ID,
		Technician: "J. Dela Cruz",
		Principal:  technicianPrincipal(),
	}

	updated, record, err := applyCompletion(contract, input, completionDate)
	require.NoError(t, err)

	// the next cycle anchors to the completion date, not the old schedule
	assert.Equal(t, date(2024, time.April, 9), updated.NextPMSSchedule)

	// every other field passes through untouched
	expected := contract
	expected.NextPMSSchedule = updated.NextPMSSchedule
	assert.Equal(t, expected, updated)

	assert.Equal(t, contract.ID, record.ContractID)
	assert.Equal(t, model.ContractTypeHardware, record.ContractType)
	assert.Equal(t, completionDate, record.ServiceDate)
	assert.Equal(t, "J. Dela Cruz", record.Technician)
	assert.Equal(t, "PMS", record.ServiceType)
}

func TestApplyCompletionLabelShortMonth(t *testing.T) {
	contract := hardwareContract()
	contract.ContractType = model.ContractTypeLabel
	contract.PartNumber = "PN-555"
	input := CompletePMSInput{ContractID: contract.ID, Technician: "J. Dela Cruz", Principal: technicianPrincipal()}

	updated, record, err := applyCompletion(contract, input, date(2024, time.January, 31))
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 1), updated.NextPMSSchedule)
	assert.Equal(t, "PN-555", record.Model)
}

func TestApplyCompletionFallbacks(t *testing.T) {
	contract := hardwareContract()
	input := CompletePMSInput{
		ContractID: contract.ID,
		Technician: "J. Dela Cruz",
		Principal:  technicianPrincipal(),
	}

	_, record, err := applyCompletion(contract, input, date(2024, time.May, 2))
	require.NoError(t, err)

	assert.Equal(t, "SR-20240502-11111111", record.SRNumber)
	assert.Equal(t, contract.PONumber, record.Sales)
	assert.Equal(t, contract.Branch, record.Location)
	assert.Equal(t, contract.EndUser, record.Company)
	assert.Equal(t, "PMS service completed by J. Dela Cruz", record.ServiceReport)
}

func TestApplyCompletionExplicitFieldsWin(t *testing.T) {
	contract := hardwareContract()
	input := CompletePMSInput{
		ContractID:    contract.ID,
		Technician:    "J. Dela Cruz",
		SRNumber:      "SR-CUSTOM-1",
		SalesName:     "M. Reyes",
		Location:      "Davao",
		ServiceReport: "Replaced filters",
		Principal:     technicianPrincipal(),
	}

	_, record, err := applyCompletion(contract, input, date(2024, time.May, 2))
	require.NoError(t, err)
	assert.Equal(t, "SR-CUSTOM-1", record.SRNumber)
	assert.Equal(t, "M. Reyes", record.Sales)
	assert.Equal(t, "Davao", record.Location)
	assert.Equal(t, "Replaced filters", record.ServiceReport)
}

func testService(t *testing.T) *MaintenanceService {
	t.Helper()
	cfg := &config.Config{}
	cfg.Maintenance.UpcomingWindowDays = 30
	clock := schedule.FixedClock{Date: date(2024, time.June, 15)}
	// nil repositories: the calls under test must fail before any store access
	return NewMaintenanceService(nil, nil, nil, nil, clock, cfg, zerolog.Nop())
}

func TestCompletePMSEmptyTechnician(t *testing.T) {
	svc := testService(t)

	_, err := svc.CompletePMS(context.Background(), CompletePMSInput{
		ContractID: uuid.New(),
		Technician: "   ",
		Principal:  technicianPrincipal(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCompletePMSMissingContractID(t *testing.T) {
	svc := testService(t)

	_, err := svc.CompletePMS(context.Background(), CompletePMSInput{
		Technician: "J. Dela Cruz",
		Principal:  technicianPrincipal(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCompletePMSViewerForbidden(t *testing.T) {
	svc := testService(t)
	viewer := technicianPrincipal()
	viewer.Role = model.RoleViewer

	_, err := svc.CompletePMS(context.Background(), CompletePMSInput{
		ContractID: uuid.New(),
		Technician: "J. Dela Cruz",
		Principal:  viewer,
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
