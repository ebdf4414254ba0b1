package models

// PNType is the sampling-responsibility flag from the "PN (I/E)" column
type PNType string

const (
	PNInternal PNType = "I"
	PNExternal PNType = "E"
	PNUnknown  PNType = ""
)

// ParsePNType maps the raw cell value to a PNType. Anything other than
// "I" or "E" is treated as unknown (and classified as internal downstream).
func ParsePNType(raw string) PNType {
	switch raw {
	case "I":
		return PNInternal
	case "E":
		return PNExternal
	default:
		return PNUnknown
	}
}

// PlannedKind tags the format of a planned-count ("KW") cell
type PlannedKind int

const (
	PlannedEmpty      PlannedKind = iota // no planned information
	PlannedCount                         // plain integer count
	PlannedEveryMonth                    // the literal "m" token
	PlannedWeekList                      // "KW: n;n;..." calendar-week list
	PlannedDayList                       // "Tn;Tn;..." day-of-month list
	PlannedFallback                      // free text, count via digit extraction
)

// PlannedCell is the parsed form of a planned-count cell. The raw value is
// kept for diagnostics; all downstream logic dispatches on Kind.
type PlannedCell struct {
	Raw   string      `json:"raw,omitempty"`
	Kind  PlannedKind `json:"-"`
	Count int         `json:"count"`           // required samples, 0 only for Kind == PlannedEmpty
	Weeks []string    `json:"weeks,omitempty"` // calendar-week numbers for PlannedWeekList
	Days  []string    `json:"days,omitempty"`  // day numbers for PlannedDayList
}

// SampleRecord holds one month of raw sampling data for a parameter.
// Months without any planned, actual or date information are never stored.
type SampleRecord struct {
	Month       string      `json:"month"`
	Planned     PlannedCell `json:"planned"`
	ActualCount int         `json:"actual_count"`
	Dates       []string    `json:"dates,omitempty"` // formatted dd.mm.yyyy, spreadsheet order
}

// HasSampleEvidence reports whether the month shows any trace of a taken
// sample (nonzero actual count or at least one date).
func (r SampleRecord) HasSampleEvidence() bool {
	return r.ActualCount > 0 || len(r.Dates) > 0
}

// ParameterRecord is one parameter at one (customer, location, tap point),
// merged from all spreadsheet rows naming that parameter. Immutable after
// construction; records with Planned == 0 and Completed == 0 are dropped
// before they ever reach a model.
type ParameterRecord struct {
	Name      string                  `json:"name"`
	Planned   int                     `json:"planned"`
	Completed int                     `json:"completed"`
	Remaining int                     `json:"remaining"` // max(0, Planned-Completed)
	Frequency string                  `json:"frequency"`
	PN        PNType                  `json:"pn_type"`
	Months    map[string]SampleRecord `json:"months"`
}

// LocationRow is one (Messstelle, Zapfstelle) row of a customer table.
type LocationRow struct {
	Location   string                      `json:"messstelle"`
	TapPoint   string                      `json:"zapfstelle"`
	Parameters map[string]*ParameterRecord `json:"parameters"`
}

// CustomerGroup is all rows of one customer, possibly a synthetic
// per-category split of an original customer.
type CustomerGroup struct {
	Name string         `json:"kunde"`
	Rows []*LocationRow `json:"rows"`
}

// TableModel is the fully derived dashboard model for one upload.
type TableModel struct {
	Customers []*CustomerView `json:"customers"`

	// Data-quality diagnostics, surfaced but never fatal.
	SkippedRows     int `json:"skipped_rows"`
	DuplicateMonths int `json:"duplicate_month_warnings"`
}

// CustomerView is a CustomerGroup with every cell pre-resolved for rendering.
type CustomerView struct {
	Name       string     `json:"kunde"`
	Parameters []string   `json:"parameters"` // sorted union, table header order
	Rows       []*RowView `json:"rows"`
}

// RowView is one rendered table row.
type RowView struct {
	Location string               `json:"messstelle"`
	TapPoint string               `json:"zapfstelle"`
	Cells    map[string]*CellView `json:"cells"` // keyed by parameter name
}

// CellView is one rendered parameter cell: progress plus display buckets.
type CellView struct {
	Completed int      `json:"completed"`
	Planned   int      `json:"planned"`
	Percent   int      `json:"percent"`
	Frequency string   `json:"frequency"`
	Buckets   []Bucket `json:"buckets"`
}
