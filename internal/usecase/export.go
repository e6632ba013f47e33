package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"
)

const (
	ExportFormatXLSX = "xlsx"
	ExportFormatCSV  = "csv"
)

var messageExportColumns = []string{"CREATED AT", "NAME", "EMAIL", "SUBJECT", "MESSAGE", "READ"}

// MessageExporter renders the inbox as a spreadsheet.
type MessageExporter struct {
	now func() time.Time
}

func NewMessageExporter() *MessageExporter {
	return &MessageExporter{now: time.Now}
}

func (e *MessageExporter) Export(messages []domain.Message, format string) (*domain.ExportFile, error) {
	switch format {
	case ExportFormatXLSX, "":
		return e.exportExcel(messages)
	case ExportFormatCSV:
		return e.exportCSV(messages)
	default:
		return nil, apperror.BadRequest(fmt.Sprintf("unsupported export format: %s", format))
	}
}

func messageRow(m domain.Message) []string {
	return []string{
		m.CreatedAt.UTC().Format(time.RFC3339),
		m.Name,
		m.Email,
		m.Subject,
		m.Content,
		strconv.FormatBool(m.Read),
	}
}

func (e *MessageExporter) exportExcel(messages []domain.Message) (*domain.ExportFile, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Messages"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, apperror.Internal(err)
	}

	for i, col := range messageExportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(messageExportColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, m := range messages {
		for colIdx, value := range messageRow(m) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	widths := []float64{22, 24, 30, 36, 80, 8}
	for i, w := range widths {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, w)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to write Excel file: %w", err))
	}

	return &domain.ExportFile{
		Filename:    fmt.Sprintf("messages_%s.xlsx", e.now().Format("20060102_150405")),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

func (e *MessageExporter) exportCSV(messages []domain.Message) (*domain.ExportFile, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(messageExportColumns); err != nil {
		return nil, apperror.Internal(err)
	}
	for _, m := range messages {
		if err := w.Write(messageRow(m)); err != nil {
			return nil, apperror.Internal(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.ExportFile{
		Filename:    fmt.Sprintf("messages_%s.csv", e.now().Format("20060102_150405")),
		ContentType: "text/csv; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}
