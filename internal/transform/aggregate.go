package transform

import (
	"strings"

	"github.com/twmlab/probenplan-go/internal/models"
	"github.com/twmlab/probenplan-go/internal/spreadsheet"
)

// TapPointUnspecified stands in for rows without a Zapfstelle so a missing
// tap point never breaks the grouping.
const TapPointUnspecified = "Not Specified"

// tableColumns are the headers the dashboard path cannot work without.
// Their absence is a structural failure that aborts the upload.
var tableColumns = []string{
	"Kunde",
	"Messstelle",
	"Parameter",
	"Häufigkeit",
	"Proben Gesamt",
}

// Aggregation is the grouped outcome of the table path before splitting.
type Aggregation struct {
	Customers []*models.CustomerGroup

	SkippedRows     int // rows without usable parameter/plan data
	DuplicateMonths int // same (location, parameter, month) fed by several rows
}

// Aggregate groups spreadsheet rows into customer → location → tap point →
// parameter records. Rows naming the same parameter at the same spot merge
// into one record; parameters with neither planned nor completed samples are
// dropped, as are rows left without parameters.
func Aggregate(doc *spreadsheet.Document) (*Aggregation, error) {
	if err := doc.RequireColumns(tableColumns...); err != nil {
		return nil, err
	}

	kundeCol := doc.FindColumn("Kunde")
	messstelleCol := doc.FindColumn("Messstelle")
	zapfstelleCol := doc.FindColumn("Zapfstelle")
	parameterCol := doc.FindColumn("Parameter")
	frequencyCol := doc.FindColumn("Häufigkeit")
	pnCol := doc.FindColumn("PN", "I/E")
	plannedCol := doc.FindColumn("Proben", "Gesamt")
	actualCol := doc.FindColumn("Aktuell", "Gesamt")
	monthTable := spreadsheet.MonthColumnTable(doc.Headers)

	agg := &Aggregation{}
	customers := make(map[string]*models.CustomerGroup)
	rows := make(map[string]map[string]*models.LocationRow) // customer → row key

	for _, row := range doc.Rows {
		kunde := row.Get(kundeCol)
		messstelle := row.Get(messstelleCol)
		if kunde == "" || messstelle == "" {
			agg.SkippedRows++
			continue
		}

		// Rows carrying neither a planned total nor a frequency are layout
		// filler in the source sheets.
		if row.Get(plannedCol) == "" && row.Get(frequencyCol) == "" {
			agg.SkippedRows++
			continue
		}

		parameter := row.Get(parameterCol)
		if !validParameterName(parameter) {
			agg.SkippedRows++
			continue
		}

		zapfstelle := row.Get(zapfstelleCol)
		if zapfstelle == "" {
			zapfstelle = TapPointUnspecified
		}

		group, ok := customers[kunde]
		if !ok {
			group = &models.CustomerGroup{Name: kunde}
			customers[kunde] = group
			rows[kunde] = make(map[string]*models.LocationRow)
			agg.Customers = append(agg.Customers, group)
		}

		rowKey := messstelle + "\x00" + zapfstelle
		locRow, ok := rows[kunde][rowKey]
		if !ok {
			locRow = &models.LocationRow{
				Location:   messstelle,
				TapPoint:   zapfstelle,
				Parameters: make(map[string]*models.ParameterRecord),
			}
			rows[kunde][rowKey] = locRow
			group.Rows = append(group.Rows, locRow)
		}

		agg.DuplicateMonths += mergeParameter(locRow, parameter, row,
			plannedCol, actualCol, pnCol, frequencyCol, monthTable)
	}

	dropEmpty(agg)
	return agg, nil
}

// mergeParameter folds one spreadsheet row into the location's parameter
// record, creating it on first sight. Month data already present is
// overwritten by later rows (last write wins); each such overwrite is
// reported as a data-quality warning since well-formed input has every
// month in exactly one row.
func mergeParameter(locRow *models.LocationRow, name string, row spreadsheet.Row,
	plannedCol, actualCol, pnCol, frequencyCol string,
	monthTable map[string]spreadsheet.MonthColumns) (duplicates int) {

	rec, ok := locRow.Parameters[name]
	if !ok {
		rec = &models.ParameterRecord{
			Name:      name,
			Planned:   spreadsheet.TotalCount(row.Get(plannedCol)),
			Completed: spreadsheet.TotalCount(row.Get(actualCol)),
			Frequency: row.Get(frequencyCol),
			PN:        models.ParsePNType(row.Get(pnCol)),
			Months:    make(map[string]models.SampleRecord),
		}
		locRow.Parameters[name] = rec
	}

	for month, sample := range spreadsheet.NormalizeRow(row, monthTable) {
		if _, exists := rec.Months[month]; exists {
			duplicates++
		}
		rec.Months[month] = sample
	}
	return duplicates
}

// dropEmpty removes 0/0 parameters, rows without parameters and customers
// without rows, then fixes up the Remaining derivation.
func dropEmpty(agg *Aggregation) {
	var customers []*models.CustomerGroup
	for _, group := range agg.Customers {
		var kept []*models.LocationRow
		for _, row := range group.Rows {
			for name, rec := range row.Parameters {
				if rec.Planned == 0 && rec.Completed == 0 {
					delete(row.Parameters, name)
					continue
				}
				rec.Remaining = rec.Planned - rec.Completed
				if rec.Remaining < 0 {
					rec.Remaining = 0
				}
			}
			if len(row.Parameters) > 0 {
				kept = append(kept, row)
			}
		}
		group.Rows = kept
		if len(group.Rows) > 0 {
			customers = append(customers, group)
		}
	}
	agg.Customers = customers
}

// validParameterName rejects blank cells and literal placeholder names.
func validParameterName(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "nan", "none":
		return false
	}
	return true
}
