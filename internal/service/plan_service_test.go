package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/twmlab/probenplan-go/internal/geomap"
	"github.com/twmlab/probenplan-go/internal/spreadsheet"
)

var workbookHeaders = []interface{}{
	"Kunde", "Gebiet", "Bereich", "Messstelle", "Zapfstelle", "Parameter",
	"Häufigkeit", "PN (I/E)", "Proben\nGesamt", "Aktuell\nGesamt",
	"Jan\nKW", "Jan\nIst", "Jan\nDatum",
}

func sampleRows() [][]interface{} {
	return [][]interface{}{
		{"Stadtwerke Nord", "52.5, 13.4", "Brunnen", "Brunnen 1", "Zapf 1",
			"Nitrat", "monatlich", "I", "2", "1", "1", "1", "10.01.2026"},
		{"Stadtwerke Nord", "52.5, 13.4", "Brunnen", "Brunnen 1", "Zapf 1",
			"Sulfat", "quartalsmäßig", "E", "4", "1", "1", "1", "12.01.2026"},
	}
}

// buildWorkbook assembles an in-memory xlsx with the given header and data
// rows, the shape uploads arrive in.
func buildWorkbook(t *testing.T, headers []interface{}, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow("Sheet1", "A1", &headers); err != nil {
		t.Fatalf("write header row: %v", err)
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("write row %d: %v", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("serialize workbook: %v", err)
	}
	return buf
}

func TestUpload(t *testing.T) {
	svc := NewPlanService(nil)

	summary, err := svc.Upload("plan.xlsx", buildWorkbook(t, workbookHeaders, sampleRows()))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if summary.Version != 1 || summary.Filename != "plan.xlsx" {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Customers != 1 {
		t.Fatalf("got %d customers, want 1", summary.Customers)
	}
	if !summary.HasGeoData || summary.MapPoints != 1 {
		t.Fatalf("unexpected geo summary: %+v", summary)
	}

	table, version, err := svc.Dashboard()
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if version != 1 || len(table.Customers) != 1 {
		t.Fatalf("unexpected dashboard: version=%d customers=%d", version, len(table.Customers))
	}

	mapModel, _, err := svc.MapData()
	if err != nil {
		t.Fatalf("MapData: %v", err)
	}
	if len(mapModel.Points) != 1 {
		t.Fatalf("got %d map points, want 1", len(mapModel.Points))
	}
}

func TestUpload_BeforeFirstUpload(t *testing.T) {
	svc := NewPlanService(nil)

	if _, _, err := svc.Dashboard(); !errors.Is(err, ErrNoDataset) {
		t.Fatalf("Dashboard: got %v, want ErrNoDataset", err)
	}
	if _, _, err := svc.MapData(); !errors.Is(err, ErrNoDataset) {
		t.Fatalf("MapData: got %v, want ErrNoDataset", err)
	}
	if _, err := svc.Current(); !errors.Is(err, ErrNoDataset) {
		t.Fatalf("Current: got %v, want ErrNoDataset", err)
	}
}

func TestUpload_Reupload(t *testing.T) {
	svc := NewPlanService(nil)

	derive := func() ([]byte, int) {
		_, err := svc.Upload("plan.xlsx", buildWorkbook(t, workbookHeaders, sampleRows()))
		if err != nil {
			t.Fatalf("Upload: %v", err)
		}
		ds, err := svc.Current()
		if err != nil {
			t.Fatalf("Current: %v", err)
		}
		out, err := json.Marshal(struct {
			Table interface{}
			Map   interface{}
		}{ds.Table, ds.Map})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return out, ds.Version
	}

	first, v1 := derive()
	second, v2 := derive()

	if v1 != 1 || v2 != 2 {
		t.Fatalf("got versions %d, %d, want 1, 2", v1, v2)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("re-uploading the same file produced a different model")
	}
}

func TestUpload_MissingColumnsLeavesModelUntouched(t *testing.T) {
	svc := NewPlanService(nil)

	if _, err := svc.Upload("plan.xlsx", buildWorkbook(t, workbookHeaders, sampleRows())); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	bad := buildWorkbook(t, []interface{}{"Kunde", "Messstelle"}, nil)
	_, err := svc.Upload("bad.xlsx", bad)
	var missing *spreadsheet.MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("got %v, want MissingColumnsError", err)
	}

	table, version, err := svc.Dashboard()
	if err != nil {
		t.Fatalf("Dashboard after failed upload: %v", err)
	}
	if version != 1 || len(table.Customers) != 1 {
		t.Fatalf("failed upload disturbed the model: version=%d customers=%d", version, len(table.Customers))
	}
}

func TestUpload_WithoutGeoData(t *testing.T) {
	headers := []interface{}{
		"Kunde", "Messstelle", "Zapfstelle", "Parameter",
		"Häufigkeit", "PN (I/E)", "Proben\nGesamt", "Aktuell\nGesamt",
		"Jan\nKW", "Jan\nIst", "Jan\nDatum",
	}
	rows := [][]interface{}{
		{"Stadtwerke Nord", "Brunnen 1", "Zapf 1", "Nitrat",
			"monatlich", "I", "2", "1", "1", "1", "10.01.2026"},
	}

	svc := NewPlanService(nil)
	summary, err := svc.Upload("plan.xlsx", buildWorkbook(t, headers, rows))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if summary.HasGeoData {
		t.Fatal("summary claims geo data for a sheet without Gebiet")
	}

	if _, _, err := svc.Dashboard(); err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if _, _, err := svc.MapData(); !errors.Is(err, geomap.ErrNoGeoData) {
		t.Fatalf("MapData: got %v, want ErrNoGeoData", err)
	}
}

func TestUpload_UndecodableFile(t *testing.T) {
	svc := NewPlanService(nil)

	if _, err := svc.Upload("junk.xlsx", bytes.NewReader([]byte("not an xlsx"))); err == nil {
		t.Fatal("Upload accepted junk bytes")
	}
}
