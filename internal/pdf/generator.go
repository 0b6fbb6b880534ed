package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/danyol08/PMS-Monitoring/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() (*Generator, error) {
	return &Generator{fontName: "Arial"}, nil
}

// Generate renders service-history records as a landscape A4 table.
func (g *Generator) Generate(records []model.ServiceHistoryRecord) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "PMS Service History", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s / %d sessions", formatDate(time.Now().UTC()), len(records)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	headers := []string{"SR Number", "Date", "Company", "Location", "Model", "Serial", "Type", "Technician"}
	colWidths := []float64{34, 24, 50, 38, 34, 34, 22, 40}

	drawRow(pdf, g.fontName, headers, colWidths, true)
	for _, record := range records {
		row := []string{
			record.SRNumber,
			formatDate(record.ServiceDate),
			record.Company,
			record.Location,
			record.Model,
			record.Serial,
			string(record.ContractType),
			record.Technician,
		}
		drawRow(pdf, g.fontName, row, colWidths, false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawRow(pdf *gofpdf.Fpdf, font string, cells []string, widths []float64, header bool) {
	if header {
		pdf.SetFont(font, "B", 9)
		pdf.SetFillColor(230, 230, 230)
	} else {
		pdf.SetFont(font, "", 9)
		pdf.SetFillColor(255, 255, 255)
	}
	for i, cell := range cells {
		pdf.CellFormat(widths[i], 7, truncate(cell, 38), "1", 0, "L", header, 0, "")
	}
	pdf.Ln(-1)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "..."
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
