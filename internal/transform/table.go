package transform

import (
	"sort"

	"github.com/twmlab/probenplan-go/internal/models"
	"github.com/twmlab/probenplan-go/internal/schedule"
	"github.com/twmlab/probenplan-go/internal/spreadsheet"
)

// BuildTableModel derives the complete dashboard model from a decoded
// spreadsheet: aggregate, split listed customers, then pre-resolve every
// parameter cell into its progress fraction and display buckets. Pure
// function of its input; reruns yield identical models.
func BuildTableModel(doc *spreadsheet.Document) (*models.TableModel, error) {
	agg, err := Aggregate(doc)
	if err != nil {
		return nil, err
	}

	model := &models.TableModel{
		SkippedRows:     agg.SkippedRows,
		DuplicateMonths: agg.DuplicateMonths,
	}

	for _, group := range agg.Customers {
		for _, split := range SplitCustomer(group) {
			model.Customers = append(model.Customers, renderCustomer(split))
		}
	}
	return model, nil
}

// renderCustomer resolves one customer group into its render view with the
// sorted parameter header and per-cell buckets.
func renderCustomer(group *models.CustomerGroup) *models.CustomerView {
	paramSet := make(map[string]bool)
	view := &models.CustomerView{Name: group.Name}

	for _, row := range group.Rows {
		rowView := &models.RowView{
			Location: row.Location,
			TapPoint: row.TapPoint,
			Cells:    make(map[string]*models.CellView, len(row.Parameters)),
		}
		for name, rec := range row.Parameters {
			paramSet[name] = true
			rowView.Cells[name] = renderCell(rec)
		}
		view.Rows = append(view.Rows, rowView)
	}

	view.Parameters = make([]string, 0, len(paramSet))
	for name := range paramSet {
		view.Parameters = append(view.Parameters, name)
	}
	sort.Strings(view.Parameters)
	return view
}

func renderCell(rec *models.ParameterRecord) *models.CellView {
	percent := 0
	if rec.Planned > 0 {
		percent = rec.Completed * 100 / rec.Planned
	}
	return &models.CellView{
		Completed: rec.Completed,
		Planned:   rec.Planned,
		Percent:   percent,
		Frequency: rec.Frequency,
		Buckets:   schedule.Buckets(rec),
	}
}
