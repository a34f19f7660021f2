package aggregate

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/tidinho/dash-leishmaniose/internal/model"
)

// IndicatorRow cases and mean indicators of one municipality.
// A mean is nil when every value in the group is null.
type IndicatorRow struct {
	Municipality  string   `json:"nmMun"`
	Cases         int      `json:"casos"`
	HDI           *float64 `json:"idh"`
	Sanitation    *float64 `json:"saneamento"`
	Income        *float64 `json:"renda"`
	Precipitation *float64 `json:"precipitacao"`
}

// Value returns the mean of ind for this row.
func (r IndicatorRow) Value(ind model.Indicator) *float64 {
	switch ind {
	case model.IndicatorHDI:
		return r.HDI
	case model.IndicatorSanitation:
		return r.Sanitation
	case model.IndicatorIncome:
		return r.Income
	case model.IndicatorPrecipitation:
		return r.Precipitation
	}
	return nil
}

type meanAcc struct {
	sum float64
	n   int
}

func (m *meanAcc) add(v *float64) {
	if v == nil {
		return
	}
	m.sum += *v
	m.n++
}

func (m meanAcc) mean() *float64 {
	if m.n == 0 {
		return nil
	}
	v := m.sum / float64(m.n)
	return &v
}

type indicatorAcc struct {
	cases                       int
	hdi, san, income, rainfall meanAcc
}

// IndicatorTable groups by municipality: case sum and mean of each indicator.
func IndicatorTable(records []model.CaseRecord) []IndicatorRow {
	groups := make(map[string]*indicatorAcc)
	for i := range records {
		r := &records[i]
		if r.Municipality == "" {
			continue
		}
		acc, ok := groups[r.Municipality]
		if !ok {
			acc = &indicatorAcc{}
			groups[r.Municipality] = acc
		}
		acc.cases += r.Cases
		acc.hdi.add(r.HDI)
		acc.san.add(r.Sanitation)
		acc.income.add(r.MeanIncome)
		acc.rainfall.add(r.Precipitation)
	}

	out := make([]IndicatorRow, 0, len(groups))
	for mun, acc := range groups {
		out = append(out, IndicatorRow{
			Municipality:  mun,
			Cases:         acc.cases,
			HDI:           acc.hdi.mean(),
			Sanitation:    acc.san.mean(),
			Income:        acc.income.mean(),
			Precipitation: acc.rainfall.mean(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Municipality < out[j].Municipality })
	return out
}

// ScatterPoint one municipality in the cases-vs-indicator chart.
type ScatterPoint struct {
	Municipality string  `json:"nmMun"`
	X            float64 `json:"x"`
	Cases        int     `json:"casos"`
}

// TrendLine ordinary least squares fit cases = Intercept + Slope*x.
type TrendLine struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
	RSquared  float64 `json:"rSquared"`
	X0        float64 `json:"x0"`
	Y0        float64 `json:"y0"`
	X1        float64 `json:"x1"`
	Y1        float64 `json:"y1"`
}

// Correlation cases against one indicator.
type Correlation struct {
	Indicator model.Indicator `json:"indicator"`
	Key       string          `json:"key"`
	Label     string          `json:"label"`
	Points    []ScatterPoint  `json:"points"`
	Pearson   *float64        `json:"pearson"`
	Trend     *TrendLine      `json:"trend,omitempty"`
}

// Correlate pairs each municipality's mean indicator with its case total.
// Municipalities without the indicator are left out. The trend line needs
// at least two distinct x values.
func Correlate(table []IndicatorRow, ind model.Indicator, withTrend bool) Correlation {
	c := Correlation{
		Indicator: ind,
		Key:       ind.Key(),
		Label:     ind.Label(),
		Points:    []ScatterPoint{},
	}
	xs := make([]float64, 0, len(table))
	ys := make([]float64, 0, len(table))
	for _, row := range table {
		v := row.Value(ind)
		if v == nil {
			continue
		}
		c.Points = append(c.Points, ScatterPoint{Municipality: row.Municipality, X: *v, Cases: row.Cases})
		xs = append(xs, *v)
		ys = append(ys, float64(row.Cases))
	}
	if len(xs) < 2 || floats.Min(xs) == floats.Max(xs) {
		return c
	}

	if r := stat.Correlation(xs, ys, nil); !math.IsNaN(r) {
		c.Pearson = &r
	}
	if withTrend {
		alpha, beta := stat.LinearRegression(xs, ys, nil, false)
		lo, hi := floats.Min(xs), floats.Max(xs)
		c.Trend = &TrendLine{
			Intercept: alpha,
			Slope:     beta,
			RSquared:  stat.RSquared(xs, ys, nil, alpha, beta),
			X0:        lo,
			Y0:        alpha + beta*lo,
			X1:        hi,
			Y1:        alpha + beta*hi,
		}
	}
	return c
}
