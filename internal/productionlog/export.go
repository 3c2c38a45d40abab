package productionlog

import (
	"bytes"
	"fmt"

	"github.com/ivancepe/Production-Trial/internal/models"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Production Logs"

var exportHeaders = []any{
	"ID", "Operator", "Machine", "Die Number", "Shift", "Date",
	"Start Time", "End Time", "Produced", "Rejected", "Notes",
}

// WriteWorkbook renders logs, in the given order, as an xlsx workbook.
func WriteWorkbook(logs []models.ProductionLog) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &exportHeaders); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, l := range logs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{
			l.ID,
			l.OperatorName,
			l.MachineID,
			deref(l.DieNumber),
			deref(l.Shift),
			l.Date.String(),
			l.StartTime.String(),
			l.EndTime.String(),
			l.QuantityProduced,
			l.QuantityRejected,
			deref(l.Notes),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
