package analysis

import "fmt"

// EmptyInsight is the placeholder narrative for an empty result set. Empty
// data is a well-defined outcome, never an error.
const EmptyInsight = "No data available for analysis."

// Envelope is the uniform result shape consumed by the dashboard and the
// export renderers: static metadata plus parallel label/value series and the
// generated insight.
type Envelope struct {
	IdeaID      int       `json:"idea_id"`
	Title       string    `json:"title"`
	Problem     string    `json:"problem"`
	Solution    string    `json:"solution"`
	ReasonsHigh string    `json:"reasons_high"`
	ReasonsLow  string    `json:"reasons_low"`
	Labels      []string  `json:"labels"`
	Data        []float64 `json:"data"`
	Insight     string    `json:"insight"`
	ExtraInfo   []string  `json:"extra_info,omitempty"`
}

// Performer is an extreme entity with its value and generated explanation.
type Performer struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Reason string  `json:"reason"`
}

// CategoryReport is the richer envelope for the category-level dashboard.
type CategoryReport struct {
	Category        string    `json:"category"`
	TotalVolume     float64   `json:"total_volume"`
	MetricLabel     string    `json:"metric_label"`
	EntityLabel     string    `json:"entity_label"`
	Solution        string    `json:"solution"`
	TopPerformer    Performer `json:"top_performer"`
	BottomPerformer Performer `json:"bottom_performer"`
	ChartLabels     []string  `json:"chart_labels"`
	ChartData       []float64 `json:"chart_data"`
	ActiveRegions   int       `json:"active_regions"`
}

// RegionContext carries per-age-band totals for a single region, used to
// ground chatbot answers about a clicked chart bar.
type RegionContext struct {
	Region   string             `json:"region"`
	Level    string             `json:"level"`
	Category string             `json:"category"`
	Metrics  map[string]float64 `json:"metrics"`
	Total    float64            `json:"total"`
}

// Summary is the headline totals block of the dashboard.
type Summary struct {
	TotalEnrolment          float64 `json:"total_enrolment"`
	TotalDemographicUpdates float64 `json:"total_demographic_updates"`
	TotalBiometricUpdates   float64 `json:"total_biometric_updates"`
	StatesCount             int     `json:"states_count"`
	DistrictsCount          int     `json:"districts_count"`
}

// assemble packages an analysis result into its envelope. Labels, data and
// (when present) extra must be parallel; a mismatch is a bug in the calling
// analysis, not a user-facing condition, so it panics.
func (a *Analyzer) assemble(ideaID int, labels []string, data []float64, insight string, extra []string) *Envelope {
	if len(labels) != len(data) {
		panic(fmt.Sprintf("analysis: envelope label/data length mismatch (%d vs %d) for idea %d",
			len(labels), len(data), ideaID))
	}
	if extra != nil && len(extra) != len(labels) {
		panic(fmt.Sprintf("analysis: envelope extra_info length mismatch (%d vs %d) for idea %d",
			len(extra), len(labels), ideaID))
	}

	meta := a.metadata[ideaID]
	if labels == nil {
		labels = []string{}
	}
	if data == nil {
		data = []float64{}
	}

	return &Envelope{
		IdeaID:      ideaID,
		Title:       meta.Title,
		Problem:     meta.Problem,
		Solution:    meta.Solution,
		ReasonsHigh: meta.ReasonsHigh,
		ReasonsLow:  meta.ReasonsLow,
		Labels:      labels,
		Data:        data,
		Insight:     insight,
		ExtraInfo:   extra,
	}
}

// emptyEnvelope is the explicit placeholder response for no matching data.
func (a *Analyzer) emptyEnvelope(ideaID int, insight string) *Envelope {
	if insight == "" {
		insight = EmptyInsight
	}
	return a.assemble(ideaID, nil, nil, insight, nil)
}
