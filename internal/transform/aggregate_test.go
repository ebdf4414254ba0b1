package transform

import (
	"errors"
	"testing"

	"github.com/twmlab/probenplan-go/internal/spreadsheet"
)

var aggHeaders = []string{
	"Kunde", "Messstelle", "Zapfstelle", "Parameter",
	"Häufigkeit", "PN (I/E)", "Proben\nGesamt", "Aktuell\nGesamt",
	"Jan\nKW", "Jan\nIst", "Jan\nDatum",
	"Feb\nKW", "Feb\nIst", "Feb\nDatum",
}

func testRow(overrides map[string]string) spreadsheet.Row {
	row := spreadsheet.Row{
		"Kunde":          "Stadtwerke Nord",
		"Messstelle":     "Brunnen 1",
		"Zapfstelle":     "Zapf 1",
		"Parameter":      "Nitrat",
		"Häufigkeit":     "monatlich",
		"PN (I/E)":       "I",
		"Proben\nGesamt": "2",
		"Aktuell\nGesamt": "1",
		"Jan\nKW":        "1",
		"Jan\nIst":       "1",
		"Jan\nDatum":     "10.01.2026",
	}
	for k, v := range overrides {
		row[k] = v
	}
	return row
}

func doc(rows ...spreadsheet.Row) *spreadsheet.Document {
	return &spreadsheet.Document{Headers: aggHeaders, Rows: rows}
}

func TestAggregate_GroupsRow(t *testing.T) {
	agg, err := Aggregate(doc(testRow(nil)))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(agg.Customers) != 1 {
		t.Fatalf("got %d customers, want 1", len(agg.Customers))
	}

	group := agg.Customers[0]
	if group.Name != "Stadtwerke Nord" || len(group.Rows) != 1 {
		t.Fatalf("unexpected group: %+v", group)
	}

	rec := group.Rows[0].Parameters["Nitrat"]
	if rec == nil {
		t.Fatal("Nitrat record missing")
	}
	if rec.Planned != 2 || rec.Completed != 1 || rec.Remaining != 1 {
		t.Fatalf("unexpected totals: %+v", rec)
	}
	if len(rec.Months) != 1 {
		t.Fatalf("got %d months, want 1", len(rec.Months))
	}
}

func TestAggregate_MissingColumnsFails(t *testing.T) {
	bad := &spreadsheet.Document{Headers: []string{"Kunde", "Messstelle"}}

	_, err := Aggregate(bad)
	var missing *spreadsheet.MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("got %v, want MissingColumnsError", err)
	}
}

func TestAggregate_SkipsUnusableRows(t *testing.T) {
	agg, err := Aggregate(doc(
		testRow(map[string]string{"Kunde": ""}),
		testRow(map[string]string{"Messstelle": ""}),
		testRow(map[string]string{"Proben\nGesamt": "", "Häufigkeit": ""}),
		testRow(map[string]string{"Parameter": "nan"}),
		testRow(map[string]string{"Parameter": "None"}),
		testRow(nil),
	))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if agg.SkippedRows != 5 {
		t.Fatalf("got %d skipped rows, want 5", agg.SkippedRows)
	}
	if len(agg.Customers) != 1 {
		t.Fatalf("got %d customers, want 1", len(agg.Customers))
	}
}

func TestAggregate_MissingTapPointPlaceholder(t *testing.T) {
	agg, err := Aggregate(doc(testRow(map[string]string{"Zapfstelle": ""})))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if got := agg.Customers[0].Rows[0].TapPoint; got != TapPointUnspecified {
		t.Fatalf("got tap point %q, want %q", got, TapPointUnspecified)
	}
}

func TestAggregate_MergesRowsLastWriteWins(t *testing.T) {
	first := testRow(nil)
	second := testRow(map[string]string{
		"Jan\nKW":    "1",
		"Jan\nIst":   "2",
		"Jan\nDatum": "20.01.2026",
		"Feb\nKW":    "1",
	})

	agg, err := Aggregate(doc(first, second))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	group := agg.Customers[0]
	if len(group.Rows) != 1 {
		t.Fatalf("got %d rows, want merged single row", len(group.Rows))
	}
	rec := group.Rows[0].Parameters["Nitrat"]
	if len(rec.Months) != 2 {
		t.Fatalf("got %d months, want 2", len(rec.Months))
	}
	if rec.Months["Jan"].ActualCount != 2 {
		t.Fatalf("got Jan actual %d, want later row's 2", rec.Months["Jan"].ActualCount)
	}
	if agg.DuplicateMonths != 1 {
		t.Fatalf("got %d duplicate warnings, want 1", agg.DuplicateMonths)
	}
}

func TestAggregate_DropsZeroZeroParameters(t *testing.T) {
	agg, err := Aggregate(doc(testRow(map[string]string{
		"Proben\nGesamt":  "0",
		"Aktuell\nGesamt": "0",
		"Jan\nKW":         "",
		"Jan\nIst":        "",
		"Jan\nDatum":      "",
	})))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(agg.Customers) != 0 {
		t.Fatalf("expected the 0/0 parameter and its customer dropped, got %+v", agg.Customers)
	}
}

func TestAggregate_RemainingNeverNegative(t *testing.T) {
	agg, err := Aggregate(doc(testRow(map[string]string{
		"Proben\nGesamt":  "1",
		"Aktuell\nGesamt": "3",
	})))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	rec := agg.Customers[0].Rows[0].Parameters["Nitrat"]
	if rec.Remaining != 0 {
		t.Fatalf("got remaining %d, want 0", rec.Remaining)
	}
}
