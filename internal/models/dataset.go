package models

import "time"

// Dataset is the complete immutable model derived from one uploaded
// spreadsheet. A new Dataset replaces the previous one atomically from the
// consumer's point of view; consumers never observe a half-built model.
type Dataset struct {
	Version    int        `json:"version"`
	Filename   string     `json:"filename"`
	UploadedAt time.Time  `json:"uploaded_at"`
	Table      *TableModel `json:"-"`
	Map        *MapModel   `json:"-"` // nil when the upload carries no Gebiet column
}

// UploadSummary is what an upload reports back to the caller.
type UploadSummary struct {
	Version         int    `json:"version"`
	Filename        string `json:"filename"`
	Customers       int    `json:"customers"`
	MapPoints       int    `json:"map_points"`
	HasGeoData      bool   `json:"has_geo_data"`
	SkippedRows     int    `json:"skipped_rows"`
	ZeroSamples     int    `json:"zero_sample_points"`
	DuplicateMonths int    `json:"duplicate_month_warnings"`
}
