package spreadsheet

import (
	"strings"

	"github.com/twmlab/probenplan-go/internal/models"
)

// MonthCodes are the twelve fixed three-letter codes embedded in the
// per-month column headers, in calendar order.
var MonthCodes = []string{
	"Jan", "Feb", "Mrz", "Apr", "Mai", "Jun",
	"Jul", "Aug", "Sep", "Okt", "Nov", "Dez",
}

// MonthIndex returns the calendar position of a month code, or -1.
func MonthIndex(month string) int {
	for i, m := range MonthCodes {
		if m == month {
			return i
		}
	}
	return -1
}

// MonthColumns names the three sub-columns of one month.
type MonthColumns struct {
	Planned string // "<month> ... KW"
	Actual  string // "<month> ... Ist"
	Date    string // "<month> ... Datum"
}

// MonthColumnTable resolves every month's sub-columns against the sheet's
// headers once, so row handling never re-parses column names. Months whose
// columns are absent simply have empty entries.
func MonthColumnTable(headers []string) map[string]MonthColumns {
	table := make(map[string]MonthColumns, len(MonthCodes))
	for _, month := range MonthCodes {
		var cols MonthColumns
		for _, h := range headers {
			if !strings.Contains(h, month) {
				continue
			}
			switch {
			case strings.Contains(h, "KW") && cols.Planned == "":
				cols.Planned = h
			case strings.Contains(h, "Ist") && cols.Actual == "":
				cols.Actual = h
			case strings.Contains(h, "Datum") && cols.Date == "":
				cols.Date = h
			}
		}
		table[month] = cols
	}
	return table
}

// NormalizeRow extracts the per-month sample records of one spreadsheet row.
// A month is excluded entirely (not stored as zero) when its planned cell is
// absent or zero and neither the actual cell nor the date cell carries
// anything; such months were never meant to be tracked.
func NormalizeRow(row Row, table map[string]MonthColumns) map[string]models.SampleRecord {
	months := make(map[string]models.SampleRecord)
	for _, month := range MonthCodes {
		cols := table[month]
		plannedRaw := row.Get(cols.Planned)
		actualRaw := row.Get(cols.Actual)
		dateRaw := row.Get(cols.Date)

		if plannedRaw == "" && actualRaw == "" && dateRaw == "" {
			continue
		}

		planned := ParsePlanned(plannedRaw)
		noPlan := planned.Kind == models.PlannedEmpty ||
			(planned.Kind == models.PlannedCount && planned.Count == 0)
		if noPlan && actualRaw == "" && dateRaw == "" {
			continue
		}

		months[month] = models.SampleRecord{
			Month:       month,
			Planned:     planned,
			ActualCount: ActualCount(actualRaw),
			Dates:       ParseDates(dateRaw),
		}
	}
	return months
}
