package geomap

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"

	"github.com/twmlab/probenplan-go/internal/models"
	"github.com/twmlab/probenplan-go/internal/spreadsheet"
	"github.com/twmlab/probenplan-go/internal/transform"
)

// clusterOffset is added per cluster index to both coordinates of points
// sharing an exact position, so coincident markers stay individually
// clickable. A rendering accommodation, not a data correction; the
// unshifted coordinates are never needed again.
const clusterOffset = 0.0001

// ErrNoGeoData marks an upload without a Gebiet column: the dashboard still
// works, the map view is simply unavailable.
var ErrNoGeoData = errors.New("no geographical data found")

// mapColumns are required once the sheet carries geographic data at all.
var mapColumns = []string{
	"Gebiet",
	"Bereich",
	"Messstelle",
	"Zapfstelle",
	"Parameter",
	"Proben Gesamt",
	"Aktuell Gesamt",
}

// BuildMapModel groups spreadsheet rows into map points by (coordinate,
// location) — tap points intentionally merge into one marker — sums sample
// totals across all parameters at each point and flags zero-sample points
// and coordinate clusters. Rows with unparseable or out-of-bounds
// coordinates are skipped and counted, never fatal.
func BuildMapModel(doc *spreadsheet.Document) (*models.MapModel, error) {
	if doc.FindColumn("Gebiet") == "" {
		return nil, ErrNoGeoData
	}
	if err := doc.RequireColumns(mapColumns...); err != nil {
		return nil, err
	}

	gebietCol := doc.FindColumn("Gebiet")
	bereichCol := doc.FindColumn("Bereich")
	messstelleCol := doc.FindColumn("Messstelle")
	zapfstelleCol := doc.FindColumn("Zapfstelle")
	parameterCol := doc.FindColumn("Parameter")
	kundeCol := doc.FindColumn("Kunde")
	frequencyCol := doc.FindColumn("Häufigkeit")
	pnCol := doc.FindColumn("PN", "I/E")
	plannedCol := doc.FindColumn("Proben", "Gesamt")
	actualCol := doc.FindColumn("Aktuell", "Gesamt")

	// Group rows by (raw coordinate string, location), preserving the order
	// of first appearance.
	type pointGroup struct {
		gebiet     string
		messstelle string
		rows       []spreadsheet.Row
	}
	var order []*pointGroup
	groups := make(map[string]*pointGroup)

	for _, row := range doc.Rows {
		gebiet := row.Get(gebietCol)
		messstelle := row.Get(messstelleCol)
		if gebiet == "" || messstelle == "" {
			continue
		}
		key := gebiet + "\x00" + messstelle
		g, ok := groups[key]
		if !ok {
			g = &pointGroup{gebiet: gebiet, messstelle: messstelle}
			groups[key] = g
			order = append(order, g)
		}
		g.rows = append(g.rows, row)
	}

	model := &models.MapModel{}
	clusters := make(map[string][]*models.MapPoint)
	var clusterOrder []string

	for _, g := range order {
		lat, lon, err := ParseCoordinates(g.gebiet)
		if err != nil {
			model.Skipped++
			continue
		}

		point := &models.MapPoint{
			Lat:           lat,
			Lon:           lon,
			Location:      g.messstelle,
			Customer:      firstValue(g.rows, kundeCol, "Unknown"),
			TapPoint:      firstValue(g.rows, zapfstelleCol, transform.TapPointUnspecified),
			Category:      firstValue(g.rows, bereichCol, "Unknown"),
			FullyComplete: true,
			Cluster:       models.ClusterInfo{ClusterSize: 1},
		}

		for _, row := range g.rows {
			planned := spreadsheet.TotalCount(row.Get(plannedCol))
			actual := spreadsheet.TotalCount(row.Get(actualCol))
			point.TotalPlanned += planned
			point.TotalCompleted += actual
			if actual < planned {
				point.FullyComplete = false
			}

			parameter := row.Get(parameterCol)
			if parameter == "" {
				continue
			}
			point.Details = append(point.Details, buildDetail(
				parameter,
				row.Get(bereichCol),
				row.Get(frequencyCol),
				row.Get(pnCol),
				tapPointOrDefault(row.Get(zapfstelleCol)),
				actual, planned,
			))
		}

		if point.TotalPlanned > 0 {
			point.CompletionRate = float64(point.TotalCompleted) / float64(point.TotalPlanned) * 100
		}
		point.ZeroSample = point.TotalPlanned == 0 && point.TotalCompleted == 0
		if point.ZeroSample && len(point.Details) == 0 {
			// Placeholder detail so the point still renders with a popup.
			point.Details = append(point.Details, models.ParameterDetail{
				Parameter: "No Parameters",
				Category:  point.Category,
				TapPoint:  point.TapPoint,
				Status:    models.DetailStatusZeroSample,
			})
		}

		coordKey := fmt.Sprintf("%v,%v", lat, lon)
		if _, ok := clusters[coordKey]; !ok {
			clusterOrder = append(clusterOrder, coordKey)
		}
		clusters[coordKey] = append(clusters[coordKey], point)
		model.Points = append(model.Points, point)
	}

	for _, key := range clusterOrder {
		members := clusters[key]
		if len(members) < 2 {
			continue
		}
		for i, point := range members {
			point.Cluster = models.ClusterInfo{
				IsClustered:  true,
				ClusterSize:  len(members),
				ClusterIndex: i,
			}
			point.Lat += clusterOffset * float64(i)
			point.Lon += clusterOffset * float64(i)
		}
	}

	return model, nil
}

// ParseCoordinates parses a "lat, lon" Gebiet cell, tolerating embedded
// whitespace and line breaks, and rejects coordinates outside the valid
// latitude/longitude ranges.
func ParseCoordinates(raw string) (lat, lon float64, err error) {
	cleaned := strings.NewReplacer(" ", "", "\n", "", "\r", "").Replace(raw)
	parts := strings.Split(cleaned, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("coordinate %q is not a lat,lon pair", raw)
	}
	lat, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude %q: %w", parts[0], err)
	}
	lon, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude %q: %w", parts[1], err)
	}
	if !s2.LatLngFromDegrees(lat, lon).IsValid() {
		return 0, 0, fmt.Errorf("coordinate (%v, %v) out of bounds", lat, lon)
	}
	return lat, lon, nil
}

func buildDetail(parameter, category, frequency, pn, tapPoint string, current, total int) models.ParameterDetail {
	detail := models.ParameterDetail{
		Parameter: parameter,
		Category:  valueOrDefault(category, "Unknown"),
		Frequency: valueOrDefault(frequency, "Unknown"),
		Type:      pnLabel(pn),
		TapPoint:  tapPoint,
		Current:   current,
		Total:     total,
	}
	if total > 0 {
		detail.CompletionRate = float64(current) / float64(total) * 100
	}
	switch {
	case total > 0 && current >= total:
		detail.Status = models.DetailStatusComplete
	case current > 0:
		detail.Status = models.DetailStatusInProgress
	default:
		detail.Status = models.DetailStatusOpen
	}
	return detail
}

// pnLabel expands the single-letter responsibility flag; unknown flags pass
// through verbatim.
func pnLabel(pn string) string {
	switch pn {
	case "I":
		return "Internal"
	case "E":
		return "External"
	default:
		return pn
	}
}

func firstValue(rows []spreadsheet.Row, col, fallback string) string {
	for _, row := range rows {
		if v := row.Get(col); v != "" {
			return v
		}
	}
	return fallback
}

func tapPointOrDefault(v string) string {
	if v == "" {
		return transform.TapPointUnspecified
	}
	return v
}

func valueOrDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
