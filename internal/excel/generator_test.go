package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/danyol08/PMS-Monitoring/internal/model"
)

func TestGenerateWorkbook(t *testing.T) {
	records := []model.ServiceHistoryRecord{
		{
			ID:           uuid.New(),
			ContractID:   uuid.New(),
			ContractType: model.ContractTypeHardware,
			ServiceDate:  time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC),
			SRNumber:     "SR-20240502-ABCD1234",
			Company:      "Acme Corp",
			Location:     "Cebu",
			Model:        "Analyzer X200",
			Serial:       "SN-9001",
			Technician:   "J. Dela Cruz",
		},
		{
			ID:           uuid.New(),
			ContractID:   uuid.New(),
			ContractType: model.ContractTypeLabel,
			ServiceDate:  time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC),
			SRNumber:     "SR-20240510-EFGH5678",
			Company:      "Beta Inc",
			Technician:   "M. Reyes",
		},
	}

	content, err := NewGenerator().Generate(records)
	require.NoError(t, err)
	require.NotEmpty(t, content)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	assert.ElementsMatch(t, []string{"Summary", "Service History"}, file.GetSheetList())

	total, err := file.GetCellValue("Summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "2", total)

	sr, err := file.GetCellValue("Service History", "A2")
	require.NoError(t, err)
	assert.Equal(t, "SR-20240502-ABCD1234", sr)
}

func TestGenerateEmpty(t *testing.T) {
	content, err := NewGenerator().Generate(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, content)
}
