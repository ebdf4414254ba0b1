package transform

import (
	"sort"

	"github.com/twmlab/probenplan-go/internal/models"
)

// CategoryOther collects parameters not listed in any category.
const CategoryOther = "Sonstige"

// splitCustomers lists the customers whose parameter sets are fanned out
// into one pseudo-customer per category.
var splitCustomers = map[string]bool{
	"TWM GmbH": true,
}

// parameterCategories assigns known parameter names to display categories.
var parameterCategories = buildCategoryIndex(map[string][]string{
	"Grundwasser Pegel": {
		"Grundwasser Pegel (SMP 1)",
		"Grundwasser Pegel (SMP 2)",
		"Grundwasser Pegel (SMP 5) PBSM",
		"Grundwasser Pegel (SMP 6)",
		"Grundwassermeßprogramm Pegel (GMP/EMP 1)",
		"Grundwassermeßprogramm Pegel (GMP/EMP 1 + SMP 1)",
		"Grundwassermeßprogramm Pegel (GMP/EMP 1 + SMP 1 + SMP 5)",
		"Grundwassermeßprogramm Pegel (GMP/EMP 1 + SMP 1 + SMP 6)",
		"Grundwassermeßprogramm Pegel (GMP/EMP 1+ SMP 5)",
		"Grundwassermeßprogramm Pegel (GMP/EMP 1+ SMP 5 + SMP 6)",
		"Grundwassermeßprogramm Pegel (GMP+EMP 1+EMP 3)",
		"Grundwassermeßprogramm Pegel (GMP+EMP 1+EMP 3+SMP6)",
	},
	"Grundwasser Brunnen": {
		"Grundwasser (SMP 1)",
		"Grundwasser (SMP 1) + DIN 50930+Fe/Mn",
		"Grundwasser (SMP 1 + SMP 5) ohne vor Ort-Messung",
		"Grundwasser (SMP 1) ohne vor Ort-Messung",
		"Grundwasser (SMP 2)",
		"Grundwasser (SMP 2) ohne vor Ort Messung",
		"Grundwasser (SMP 5) PBSM",
		"Grundwasser (SMP 5) PBSM ohne vor Ort Messung",
		"Grundwasser (SMP 6)",
		"Grundwasser (SMP 7)",
		"Grundwassermeßprogramm (GMP)",
		"GrundwassermeBprogramm (GMP)+Bak",
		"Grundwassermeßprogramm (GMP/EMP 1)",
		"Grundwassermeßprogramm (GMP/EMP 1 + SMP 1)",
		"Grundwassermeßprogramm (GMP/EMP 1 + SMP 1 + SMP 5)",
		"Grundwassermeßprogramm (GMP/EMP 1 + SMP 1 + SMP 5 + SMP 6)",
		"Grundwassermeßprogramm (GMP/EMP 1 + SMP 1 + SMP 6)",
		"Grundwassermeßprogramm (GMP/EMP 1+ SMP 5)",
		"Grundwassermeßprogramm (GMP+EMP 1+EMP 3)",
		"Grundwassermeßprogramm (GMP+EMP 1+EMP 3+SMP 4)",
		"Grundwassermeßprogramm (GMP+EMP 1+EMP 3+SMP 6)",
	},
	"Filterrückspülwässer": {
		"abfiltrierbare Stoffe, pH Filterrückspülw.SAS+AOX+As",
		"Filterrückspülw. Temp/pH",
		"Klarwasser emin.",
		"Sonderunters. Klarw.v. Filterrückspülw. (SAS)",
		"Sonderunters. Klarw.v. Filterrückspülw. (SAS)+Alu",
		"Sonderunters. Klarw. v. Filterrückspülw. (SAS+AOX)",
		"Trubung",
	},
	"Parametergruppe A": {
		"Parametergruppe A TWN",
		"Parametergruppe A TWN (mit Al, Clos)",
		"Parametergruppe A WW-Ausg-",
		"Parametergruppe A WW-Ausg- (mit Al,Clos)",
		"Parametergruppe A WW-Ausg- (mit Al,Clos+GH)",
		"Parametergruppe A WW-Ausg.+GH",
		"Bakteriologie/Temp. (TrinkwV)",
		"Clostridium perfringens",
	},
	"Parametergruppe B": {
		"Parametergruppe B (mit THM)",
		"Parametergruppe B (ohne THM)",
		"Sonst de Unters. nach DiM90430",
		"LHKW + BTEX",
	},
})

func buildCategoryIndex(groups map[string][]string) map[string]string {
	index := make(map[string]string)
	for category, names := range groups {
		for _, name := range names {
			index[name] = category
		}
	}
	return index
}

// ParameterCategory returns the display category of a parameter name, with
// "Sonstige" as the fallback for unlisted parameters.
func ParameterCategory(name string) string {
	if category, ok := parameterCategories[name]; ok {
		return category
	}
	return CategoryOther
}

// SplitCustomer fans a listed customer out into one synthetic group per
// parameter category, named "<customer> (<category>)". Each original row
// contributes one synthetic row to every category it has parameters in.
// Customers not on the split list pass through unchanged.
func SplitCustomer(group *models.CustomerGroup) []*models.CustomerGroup {
	if !splitCustomers[group.Name] {
		return []*models.CustomerGroup{group}
	}

	var order []string
	byName := make(map[string]*models.CustomerGroup)

	for _, row := range group.Rows {
		categoryRows := make(map[string]*models.LocationRow)
		var categoryOrder []string

		names := make([]string, 0, len(row.Parameters))
		for name := range row.Parameters {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			rec := row.Parameters[name]
			category := ParameterCategory(name)
			catRow, ok := categoryRows[category]
			if !ok {
				catRow = &models.LocationRow{
					Location:   row.Location,
					TapPoint:   row.TapPoint,
					Parameters: make(map[string]*models.ParameterRecord),
				}
				categoryRows[category] = catRow
				categoryOrder = append(categoryOrder, category)
			}
			catRow.Parameters[name] = rec
		}

		for _, category := range categoryOrder {
			splitName := group.Name + " (" + category + ")"
			split, ok := byName[splitName]
			if !ok {
				split = &models.CustomerGroup{Name: splitName}
				byName[splitName] = split
				order = append(order, splitName)
			}
			split.Rows = append(split.Rows, categoryRows[category])
		}
	}

	result := make([]*models.CustomerGroup, 0, len(order))
	for _, name := range order {
		result = append(result, byName[name])
	}
	return result
}
