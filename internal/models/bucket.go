package models

// CompletionState classifies a bucket's (taken, required) pair together with
// the sampling-responsibility flag.
type CompletionState string

const (
	StateExcess          CompletionState = "excess"
	StateCompleted       CompletionState = "completed"
	StateMissingInternal CompletionState = "missing_internal"
	StateMissingExternal CompletionState = "missing_external"
)

// ColorTriple is the presentation color set of a completion state.
type ColorTriple struct {
	Background string `json:"bg"`
	Text       string `json:"text"`
	Border     string `json:"border"`
}

// Bucket is one display unit of a parameter cell: a month, a calendar week,
// a fixed day, a quarter, a half-year or a grouped month range.
type Bucket struct {
	Label    string          `json:"label"`
	Taken    int             `json:"taken"`
	Required int             `json:"required"`
	Dates    []string        `json:"dates,omitempty"`
	State    CompletionState `json:"state"`
	Colors   ColorTriple     `json:"colors"`
}
