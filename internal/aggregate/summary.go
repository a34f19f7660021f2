package aggregate

import "github.com/tidinho/dash-leishmaniose/internal/model"

// Metric one KPI card.
type Metric struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Summary headline counters of the filtered dataset.
type Summary struct {
	TotalCases     int `json:"totalCases"`
	Municipalities int `json:"municipalities"`
	Facilities     int `json:"facilities"`
}

// Summarize counts cases and distinct non-null municipalities and facilities.
func Summarize(records []model.CaseRecord) Summary {
	muns := make(map[string]struct{})
	facs := make(map[string]struct{})
	var s Summary
	for i := range records {
		r := &records[i]
		s.TotalCases += r.Cases
		if r.Municipality != "" {
			muns[r.Municipality] = struct{}{}
		}
		if r.Facility != "" {
			facs[r.Facility] = struct{}{}
		}
	}
	s.Municipalities = len(muns)
	s.Facilities = len(facs)
	return s
}

// Metrics renders the summary as KPI cards.
func (s Summary) Metrics() []Metric {
	return []Metric{
		{ID: "total_cases", Name: "Total de casos", Value: float64(s.TotalCases), Unit: "casos"},
		{ID: "municipalities", Name: "Municípios afetados", Value: float64(s.Municipalities), Unit: "municípios"},
		{ID: "facilities", Name: "Unidades notificadoras", Value: float64(s.Facilities), Unit: "unidades"},
	}
}
