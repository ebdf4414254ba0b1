package schedule

import "github.com/twmlab/probenplan-go/internal/models"

// StateColors holds the fixed presentation colors per completion state.
var StateColors = map[models.CompletionState]models.ColorTriple{
	models.StateCompleted: {
		Background: "#d4edda", Text: "#155724", Border: "#c3e6cb",
	},
	models.StateExcess: {
		Background: "#1F7D53", Text: "#ffffff", Border: "#186446",
	},
	models.StateMissingInternal: {
		Background: "#f8d7da", Text: "#721c24", Border: "#f5c6cb",
	},
	models.StateMissingExternal: {
		Background: "#e6e6fa", Text: "#6a0dad", Border: "#d8bfd8",
	},
}

// Progress bar colors for the dashboard header row.
const (
	ProgressComplete   = "#28a745"
	ProgressIncomplete = "#ffc107"
)

// Classify maps a bucket's taken/required counts and the responsibility flag
// to exactly one completion state. Taking more samples than required is
// always Excess, regardless of flag; an unknown flag counts as internal.
func Classify(taken, required int, pn models.PNType) models.CompletionState {
	switch {
	case taken > required:
		return models.StateExcess
	case taken == required:
		return models.StateCompleted
	case pn == models.PNExternal:
		return models.StateMissingExternal
	default:
		return models.StateMissingInternal
	}
}

// ColorsFor returns the color triple of a state.
func ColorsFor(state models.CompletionState) models.ColorTriple {
	return StateColors[state]
}
