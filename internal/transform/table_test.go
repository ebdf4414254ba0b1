package transform

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestBuildTableModel(t *testing.T) {
	model, err := BuildTableModel(doc(
		testRow(nil),
		testRow(map[string]string{"Parameter": "Sulfat", "Aktuell\nGesamt": "2"}),
	))
	if err != nil {
		t.Fatalf("BuildTableModel: %v", err)
	}

	if len(model.Customers) != 1 {
		t.Fatalf("got %d customers, want 1", len(model.Customers))
	}
	view := model.Customers[0]

	want := []string{"Nitrat", "Sulfat"}
	if len(view.Parameters) != 2 || view.Parameters[0] != want[0] || view.Parameters[1] != want[1] {
		t.Fatalf("got parameter header %v, want %v", view.Parameters, want)
	}

	cell := view.Rows[0].Cells["Nitrat"]
	if cell == nil {
		t.Fatal("Nitrat cell missing")
	}
	if cell.Completed != 1 || cell.Planned != 2 || cell.Percent != 50 {
		t.Fatalf("unexpected cell progress: %+v", cell)
	}
	if len(cell.Buckets) == 0 {
		t.Fatal("cell has no buckets")
	}
}

func TestBuildTableModel_Deterministic(t *testing.T) {
	build := func() []byte {
		model, err := BuildTableModel(doc(
			testRow(nil),
			testRow(map[string]string{"Parameter": "Sulfat"}),
			testRow(map[string]string{"Messstelle": "Brunnen 2"}),
		))
		if err != nil {
			t.Fatalf("BuildTableModel: %v", err)
		}
		out, err := json.Marshal(model)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return out
	}

	first := build()
	for i := 0; i < 10; i++ {
		if next := build(); !bytes.Equal(first, next) {
			t.Fatalf("run %d produced a different model", i)
		}
	}
}

func TestBuildTableModel_PercentZeroWhenNothingPlanned(t *testing.T) {
	model, err := BuildTableModel(doc(testRow(map[string]string{
		"Proben\nGesamt":  "0",
		"Aktuell\nGesamt": "1",
	})))
	if err != nil {
		t.Fatalf("BuildTableModel: %v", err)
	}
	cell := model.Customers[0].Rows[0].Cells["Nitrat"]
	if cell.Percent != 0 {
		t.Fatalf("got percent %d, want 0", cell.Percent)
	}
}
