package aggregate

import "github.com/tidinho/dash-leishmaniose/internal/model"

// Options view parameters chosen by the user.
type Options struct {
	TopN      int
	Heatmap   HeatmapSettings
	Indicator model.Indicator
	Trend     bool
}

// DefaultOptions top 20, default heatmap, HDI with trend line.
func DefaultOptions() Options {
	return Options{
		TopN:      DefaultTopN,
		Heatmap:   DefaultHeatmapSettings(),
		Indicator: model.IndicatorHDI,
		Trend:     true,
	}
}

// Heatmap heat points with their rendering settings.
type Heatmap struct {
	Settings HeatmapSettings `json:"settings"`
	Points   []HeatPoint     `json:"points"`
}

// Dashboard every view derived from one filtered dataset.
type Dashboard struct {
	Summary           Summary             `json:"summary"`
	Metrics           []Metric            `json:"metrics"`
	ByState           []StateTotal        `json:"byState"`
	TopMunicipalities []MunicipalityTotal `json:"topMunicipalities"`
	MapView           MapView             `json:"mapView"`
	MapPoints         []MapPoint          `json:"mapPoints"`
	Heatmap           Heatmap             `json:"heatmap"`
	IndicatorTable    []IndicatorRow      `json:"indicatorTable"`
	Correlation       Correlation         `json:"correlation"`
}

// Build computes all views. Empty input yields zero counters and empty tables.
func Build(records []model.CaseRecord, opts Options) Dashboard {
	if opts.Indicator == "" {
		opts.Indicator = model.IndicatorHDI
	}
	if opts.Heatmap.MaxZoom == 0 {
		opts.Heatmap.MaxZoom = HeatMaxZoom
	}

	summary := Summarize(records)
	table := IndicatorTable(records)
	return Dashboard{
		Summary:           summary,
		Metrics:           summary.Metrics(),
		ByState:           ByState(records),
		TopMunicipalities: TopMunicipalities(records, opts.TopN),
		MapView:           DefaultMapView(),
		MapPoints:         MapPoints(records),
		Heatmap:           Heatmap{Settings: opts.Heatmap, Points: HeatPoints(records)},
		IndicatorTable:    table,
		Correlation:       Correlate(table, opts.Indicator, opts.Trend),
	}
}
