package service

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"worksite/backend/internal/repository/postgres/attendance"
)

// BuildAttendanceExcel renders attendance rows into a spreadsheet.
// The caller owns the returned file and should close it after writing.
func BuildAttendanceExcel(rows []attendance.ExportRow) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Sheet1"

	headers := []string{"Worker", "National ID", "Site", "Type", "Event Time", "Distance (m)", "Phone", "Approved"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	rowNum := 2
	for _, entry := range rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), deref(entry.WorkerName))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), deref(entry.NationalID))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), deref(entry.SiteName))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), entry.Type)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), entry.EventTime.Format("2006-01-02 15:04:05"))
		if entry.Distance != nil {
			f.SetCellValue(sheet, fmt.Sprintf("F%d", rowNum), *entry.Distance)
		}
		f.SetCellValue(sheet, fmt.Sprintf("G%d", rowNum), entry.Phone)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", rowNum), entry.Approved)
		rowNum++
	}

	return f, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
