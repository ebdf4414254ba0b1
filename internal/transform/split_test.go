package transform

import (
	"testing"

	"github.com/twmlab/probenplan-go/internal/models"
)

func record(name string) *models.ParameterRecord {
	return &models.ParameterRecord{Name: name, Planned: 1, Months: map[string]models.SampleRecord{}}
}

func TestParameterCategory(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Grundwasser (SMP 2)", "Grundwasser Brunnen"},
		{"Grundwasser Pegel (SMP 1)", "Grundwasser Pegel"},
		{"Parametergruppe A TWN", "Parametergruppe A"},
		{"Parametergruppe B (mit THM)", "Parametergruppe B"},
		{"Trubung", "Filterrückspülwässer"},
		{"Nitrat", CategoryOther},
	}
	for _, tt := range tests {
		if got := ParameterCategory(tt.name); got != tt.want {
			t.Fatalf("ParameterCategory(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSplitCustomer_PassThrough(t *testing.T) {
	group := &models.CustomerGroup{
		Name: "Stadtwerke Nord",
		Rows: []*models.LocationRow{{
			Location: "Brunnen 1",
			TapPoint: "Zapf 1",
			Parameters: map[string]*models.ParameterRecord{
				"Grundwasser (SMP 2)": record("Grundwasser (SMP 2)"),
				"Nitrat":              record("Nitrat"),
			},
		}},
	}

	result := SplitCustomer(group)
	if len(result) != 1 || result[0] != group {
		t.Fatalf("unlisted customer must pass through unchanged, got %+v", result)
	}
}

func TestSplitCustomer_FansOutPerCategory(t *testing.T) {
	group := &models.CustomerGroup{
		Name: "TWM GmbH",
		Rows: []*models.LocationRow{{
			Location: "WW Colbitz",
			TapPoint: "Ausgang",
			Parameters: map[string]*models.ParameterRecord{
				"Grundwasser (SMP 2)":   record("Grundwasser (SMP 2)"),
				"Parametergruppe A TWN": record("Parametergruppe A TWN"),
				"Nitrat":                record("Nitrat"),
			},
		}},
	}

	result := SplitCustomer(group)
	if len(result) != 3 {
		t.Fatalf("got %d groups, want 3: %+v", len(result), result)
	}

	byName := make(map[string]*models.CustomerGroup)
	for _, g := range result {
		byName[g.Name] = g
	}

	brunnen := byName["TWM GmbH (Grundwasser Brunnen)"]
	if brunnen == nil || len(brunnen.Rows) != 1 {
		t.Fatalf("Grundwasser Brunnen group missing or malformed: %+v", brunnen)
	}
	if _, ok := brunnen.Rows[0].Parameters["Grundwasser (SMP 2)"]; !ok {
		t.Fatalf("parameter missing from its category group: %+v", brunnen.Rows[0].Parameters)
	}
	if len(brunnen.Rows[0].Parameters) != 1 {
		t.Fatalf("category group carries foreign parameters: %+v", brunnen.Rows[0].Parameters)
	}

	sonstige := byName["TWM GmbH (Sonstige)"]
	if sonstige == nil {
		t.Fatal("Sonstige fallback group missing")
	}
	if _, ok := sonstige.Rows[0].Parameters["Nitrat"]; !ok {
		t.Fatalf("unlisted parameter not in Sonstige: %+v", sonstige.Rows[0].Parameters)
	}
}

func TestSplitCustomer_RowAppearsInEveryCategoryItTouches(t *testing.T) {
	group := &models.CustomerGroup{
		Name: "TWM GmbH",
		Rows: []*models.LocationRow{
			{
				Location: "WW Colbitz",
				TapPoint: "Ausgang",
				Parameters: map[string]*models.ParameterRecord{
					"Parametergruppe A TWN": record("Parametergruppe A TWN"),
				},
			},
			{
				Location: "WW Lindau",
				TapPoint: "Ausgang",
				Parameters: map[string]*models.ParameterRecord{
					"Parametergruppe A TWN":     record("Parametergruppe A TWN"),
					"Parametergruppe B (mit THM)": record("Parametergruppe B (mit THM)"),
				},
			},
		},
	}

	result := SplitCustomer(group)

	byName := make(map[string]*models.CustomerGroup)
	for _, g := range result {
		byName[g.Name] = g
	}

	groupA := byName["TWM GmbH (Parametergruppe A)"]
	if groupA == nil || len(groupA.Rows) != 2 {
		t.Fatalf("Parametergruppe A should hold both locations: %+v", groupA)
	}
	groupB := byName["TWM GmbH (Parametergruppe B)"]
	if groupB == nil || len(groupB.Rows) != 1 {
		t.Fatalf("Parametergruppe B should hold one location: %+v", groupB)
	}
	if groupB.Rows[0].Location != "WW Lindau" {
		t.Fatalf("got location %q, want WW Lindau", groupB.Rows[0].Location)
	}
}
