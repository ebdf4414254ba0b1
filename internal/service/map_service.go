package service

import (
	"sort"

	"github.com/twmlab/probenplan-go/internal/models"
)

// MapFilter narrows the map view. Empty slices leave a dimension
// unfiltered; status filtering happens through the two Show flags.
type MapFilter struct {
	Categories     []string
	Customers      []string
	Parameters     []string
	Frequencies    []string
	PNTypes        []string
	ShowComplete   bool
	ShowIncomplete bool
}

// FilterOptions are the distinct values available per filter dimension.
type FilterOptions struct {
	Categories  []string `json:"categories"`
	Customers   []string `json:"customers"`
	Parameters  []string `json:"parameters"`
	Frequencies []string `json:"frequencies"`
	PNTypes     []string `json:"pn_types"`
}

// MapStatistics summarizes the (filtered) map view for the sidebar panel.
type MapStatistics struct {
	TotalPoints      int     `json:"total_points"`
	Complete         int     `json:"complete"`
	Incomplete       int     `json:"incomplete"`
	SuccessRate      float64 `json:"success_rate"`
	TotalSamples     int     `json:"total_samples"`
	CompletedSamples int     `json:"completed_samples"`
	UniqueCustomers  int     `json:"unique_customers"`
	UniqueParameters int     `json:"unique_parameters"`
	Internal         int     `json:"internal"`
	External         int     `json:"external"`
	ZeroSample       int     `json:"zero_sample_points"`
}

// MapService derives filtered views and summaries from the published map
// model. It never mutates the model.
type MapService struct {
	plans *PlanService
}

// NewMapService creates a new map service
func NewMapService(plans *PlanService) *MapService {
	return &MapService{plans: plans}
}

// Points returns the current map points matching the filter.
func (s *MapService) Points(filter MapFilter) ([]*models.MapPoint, int, error) {
	model, version, err := s.plans.MapData()
	if err != nil {
		return nil, version, err
	}
	return filterPoints(model.Points, filter), version, nil
}

// Options returns the distinct filter values of the current map model.
func (s *MapService) Options() (*FilterOptions, error) {
	model, _, err := s.plans.MapData()
	if err != nil {
		return nil, err
	}

	categories := make(map[string]bool)
	customers := make(map[string]bool)
	parameters := make(map[string]bool)
	frequencies := make(map[string]bool)
	pnTypes := make(map[string]bool)

	for _, p := range model.Points {
		addValue(categories, p.Category)
		addValue(customers, p.Customer)
		for _, d := range p.Details {
			addValue(parameters, d.Parameter)
			addValue(frequencies, d.Frequency)
			addValue(pnTypes, d.Type)
		}
	}

	return &FilterOptions{
		Categories:  sortedKeys(categories),
		Customers:   sortedKeys(customers),
		Parameters:  sortedKeys(parameters),
		Frequencies: sortedKeys(frequencies),
		PNTypes:     sortedKeys(pnTypes),
	}, nil
}

// Statistics summarizes the points matching the filter.
func (s *MapService) Statistics(filter MapFilter) (*MapStatistics, error) {
	points, _, err := s.Points(filter)
	if err != nil {
		return nil, err
	}

	stats := &MapStatistics{TotalPoints: len(points)}
	customers := make(map[string]bool)
	parameters := make(map[string]bool)

	for _, p := range points {
		if p.FullyComplete {
			stats.Complete++
		} else {
			stats.Incomplete++
		}
		if p.ZeroSample {
			stats.ZeroSample++
		}
		stats.TotalSamples += p.TotalPlanned
		stats.CompletedSamples += p.TotalCompleted
		customers[p.Customer] = true
		for _, d := range p.Details {
			parameters[d.Parameter] = true
			switch d.Type {
			case "Internal":
				stats.Internal++
			case "External":
				stats.External++
			}
		}
	}

	stats.UniqueCustomers = len(customers)
	stats.UniqueParameters = len(parameters)
	if stats.TotalPoints > 0 {
		stats.SuccessRate = float64(stats.Complete) / float64(stats.TotalPoints) * 100
	}
	return stats, nil
}

func filterPoints(points []*models.MapPoint, filter MapFilter) []*models.MapPoint {
	filtered := make([]*models.MapPoint, 0, len(points))
	for _, p := range points {
		if p.FullyComplete && !filter.ShowComplete {
			continue
		}
		if !p.FullyComplete && !filter.ShowIncomplete {
			continue
		}
		if !matches(filter.Categories, p.Category) {
			continue
		}
		if !matches(filter.Customers, p.Customer) {
			continue
		}
		if !matchesAnyDetail(filter.Parameters, p, func(d models.ParameterDetail) string { return d.Parameter }) {
			continue
		}
		if !matchesAnyDetail(filter.Frequencies, p, func(d models.ParameterDetail) string { return d.Frequency }) {
			continue
		}
		if !matchesAnyDetail(filter.PNTypes, p, func(d models.ParameterDetail) string { return d.Type }) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func matches(allowed []string, value string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, v := range allowed {
		if v == value {
			return true
		}
	}
	return false
}

func matchesAnyDetail(allowed []string, p *models.MapPoint, key func(models.ParameterDetail) string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, d := range p.Details {
		if matches(allowed, key(d)) {
			return true
		}
	}
	return false
}

func addValue(set map[string]bool, v string) {
	if v != "" && v != "Unknown" {
		set[v] = true
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
