package models

// ParameterDetail is the per-row breakdown kept on a map point. Numbers are
// the row's own individual counts, not the merged parameter record.
type ParameterDetail struct {
	Parameter      string  `json:"parameter"`
	Category       string  `json:"category"`
	Frequency      string  `json:"frequency"`
	Type           string  `json:"type"` // Internal, External, or the raw flag
	TapPoint       string  `json:"zapfstelle"`
	Current        int     `json:"current"`
	Total          int     `json:"total"`
	CompletionRate float64 `json:"completion_rate"`
	Status         string  `json:"status"`
}

// ParameterDetail status values
const (
	DetailStatusComplete   = "complete"
	DetailStatusInProgress = "in_progress"
	DetailStatusOpen       = "open"
	DetailStatusZeroSample = "zero_sample"
)

// ClusterInfo marks map points that share exact coordinates with others.
type ClusterInfo struct {
	IsClustered  bool `json:"is_clustered"`
	ClusterSize  int  `json:"cluster_size"`
	ClusterIndex int  `json:"cluster_index"`
}

// MapPoint is one marker on the monitoring map: all tap points of one
// location at one coordinate, summed across parameters. Latitude/longitude
// may carry a small deterministic offset when the point is clustered; the
// offset exists purely so coincident markers stay individually clickable,
// the unshifted coordinates are not retained.
type MapPoint struct {
	Lat            float64           `json:"lat"`
	Lon            float64           `json:"lon"`
	Location       string            `json:"messstelle"`
	TapPoint       string            `json:"zapfstelle"`
	Customer       string            `json:"kunde"`
	Category       string            `json:"bereich"` // first category seen, drives marker color
	TotalPlanned   int               `json:"total_samples"`
	TotalCompleted int               `json:"completed_samples"`
	CompletionRate float64           `json:"completion_rate"`
	FullyComplete  bool              `json:"vollstaendig"`
	ZeroSample     bool              `json:"is_zero_sample"`
	Details        []ParameterDetail `json:"parameter_details"`
	Cluster        ClusterInfo       `json:"cluster_info"`
}

// MapModel is the fully derived map model for one upload.
type MapModel struct {
	Points  []*MapPoint `json:"points"`
	Skipped int         `json:"skipped_rows"` // groups dropped for unparseable or out-of-bounds coordinates
}
