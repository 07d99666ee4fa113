package service

import (
	"bytes"
	"testing"
	"time"

	"worksite/backend/internal/entity"
	"worksite/backend/internal/repository/postgres/attendance"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestBuildSiteQRSheet(t *testing.T) {
	sites := []entity.Site{
		{
			Name:      strPtr("Obra Centro"),
			Address:   strPtr("Av. San Martin 1234"),
			Latitude:  -32.8908,
			Longitude: -68.8272,
			Radius:    100,
			Active:    true,
		},
		{
			Name:      strPtr("Obra Norte"),
			Latitude:  -32.85,
			Longitude: -68.80,
			Radius:    150,
			Active:    true,
		},
	}
	sites[0].ID = 1
	sites[1].ID = 2

	data, err := BuildSiteQRSheet(sites)
	if err != nil {
		t.Fatalf("BuildSiteQRSheet() error = %v", err)
	}

	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF, starts with %q", data[:4])
	}
}

func TestBuildAttendanceExcel(t *testing.T) {
	rows := []attendance.ExportRow{
		{
			WorkerName: strPtr("Juan Perez"),
			NationalID: strPtr("30123456"),
			SiteName:   strPtr("Obra Centro"),
			Type:       entity.TypeCheckIn,
			EventTime:  time.Date(2026, 3, 10, 8, 2, 15, 0, time.UTC),
			Distance:   intPtr(42),
			Phone:      "+5492610000000",
			Approved:   true,
		},
	}

	f, err := BuildAttendanceExcel(rows)
	if err != nil {
		t.Fatalf("BuildAttendanceExcel() error = %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Sheet1", "A2")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if got != "Juan Perez" {
		t.Errorf("A2 = %q, want %q", got, "Juan Perez")
	}

	header, err := f.GetCellValue("Sheet1", "D1")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if header != "Type" {
		t.Errorf("D1 = %q, want %q", header, "Type")
	}
}
