package excel

import (
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/danyol08/PMS-Monitoring/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

var historyHeaders = []string{
	"SR Number", "Service Date", "Company", "Location", "Model", "Serial",
	"Contract Type", "Technician", "Sales", "Service Report",
}

// Generate renders service-history records as a workbook with one
// summary sheet and one detail sheet.
func (g *Generator) Generate(records []model.ServiceHistoryRecord) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, records); err != nil {
		return nil, err
	}

	detailSheet := "Service History"
	file.NewSheet(detailSheet)
	if err := g.writeDetail(file, detailSheet, records); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, records []model.ServiceHistoryRecord) error {
	hardware := 0
	label := 0
	for _, record := range records {
		switch record.ContractType {
		case model.ContractTypeHardware:
			hardware++
		case model.ContractTypeLabel:
			label++
		}
	}

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Report")
	set("B1", "PMS Service History")
	set("A2", "Generated")
	set("B2", formatDate(time.Now().UTC()))
	set("A3", "Total Sessions")
	set("B3", len(records))
	set("A4", "Hardware")
	set("B4", hardware)
	set("A5", "Label")
	set("B5", label)
	return nil
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, records []model.ServiceHistoryRecord) error {
	for col, header := range historyHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for i, record := range records {
		row := i + 2
		values := []interface{}{
			record.SRNumber,
			formatDate(record.ServiceDate),
			record.Company,
			record.Location,
			record.Model,
			record.Serial,
			string(record.ContractType),
			record.Technician,
			record.Sales,
			record.ServiceReport,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	widths := []float64{18, 14, 28, 22, 18, 18, 14, 20, 18, 48}
	for i, width := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := file.SetColWidth(sheet, name, name, width); err != nil {
			return err
		}
	}
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
