package aggregate

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidinho/dash-leishmaniose/internal/filter"
	"github.com/tidinho/dash-leishmaniose/internal/model"
)

func f(v float64) *float64 { return &v }

func cases(n int, r model.CaseRecord) []model.CaseRecord {
	out := make([]model.CaseRecord, n)
	for i := range out {
		out[i] = r
		out[i].Cases = 1
	}
	return out
}

func sample() []model.CaseRecord {
	var out []model.CaseRecord
	out = append(out, cases(3, model.CaseRecord{
		State: "MA", Municipality: "Caxias", Facility: "HG",
		Latitude: f(-4.86), Longitude: f(-43.35), HDI: f(0.6), Sanitation: f(30), MeanIncome: f(500),
	})...)
	out = append(out, cases(1, model.CaseRecord{
		State: "MA", Municipality: "Caxias", Facility: "UBS",
		Latitude: f(-4.86), Longitude: f(-43.35), HDI: f(0.7),
	})...)
	out = append(out, cases(2, model.CaseRecord{
		State: "PI", Municipality: "Teresina", Facility: "HU",
		Latitude: f(-5.09), Longitude: f(-42.8), HDI: f(0.75), Precipitation: f(120),
	})...)
	out = append(out, cases(1, model.CaseRecord{Municipality: "Picos"})...)
	return out
}

func TestSummarize(t *testing.T) {
	s := Summarize(sample())
	assert.Equal(t, Summary{TotalCases: 7, Municipalities: 3, Facilities: 3}, s)
	require.Len(t, s.Metrics(), 3)
	assert.Equal(t, 7.0, s.Metrics()[0].Value)
}

func TestByState_RoundTripsWithSummary(t *testing.T) {
	data := sample()
	total := 0
	for _, st := range ByState(data) {
		total += st.Cases
	}
	assert.Equal(t, Summarize(data).TotalCases, total)

	want := []StateTotal{{State: "", Cases: 1}, {State: "MA", Cases: 4}, {State: "PI", Cases: 2}}
	if diff := cmp.Diff(want, ByState(data)); diff != "" {
		t.Fatalf("ByState mismatch (-want +got):\n%s", diff)
	}
}

func TestTopMunicipalities_StableTies(t *testing.T) {
	var data []model.CaseRecord
	data = append(data, cases(50, model.CaseRecord{Municipality: "A", State: "MA"})...)
	data = append(data, cases(30, model.CaseRecord{Municipality: "B", State: "MA"})...)
	data = append(data, cases(30, model.CaseRecord{Municipality: "C", State: "MA"})...)
	data = append(data, cases(10, model.CaseRecord{Municipality: "D", State: "MA"})...)

	got := TopMunicipalities(data, DefaultTopN)
	names := make([]string, len(got))
	for i, m := range got {
		names[i] = m.Municipality
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, names)
	assert.Equal(t, 30, got[1].Cases)
}

func TestTopMunicipalities_Truncates(t *testing.T) {
	var data []model.CaseRecord
	for i := 0; i < 35; i++ {
		data = append(data, cases(i+1, model.CaseRecord{Municipality: fmt.Sprintf("M%02d", i), State: "GO"})...)
	}
	got := TopMunicipalities(data, 0)
	require.Len(t, got, DefaultTopN)
	assert.Equal(t, "M34", got[0].Municipality)
	assert.Equal(t, 35, got[0].Cases)
}

func TestTopMunicipalities_SameNameDifferentStates(t *testing.T) {
	data := append(cases(2, model.CaseRecord{Municipality: "Bom Jesus", State: "PI"}),
		cases(2, model.CaseRecord{Municipality: "Bom Jesus", State: "RS"})...)
	got := TopMunicipalities(data, 20)
	require.Len(t, got, 2)
	assert.Equal(t, "PI", got[0].State)
	assert.Equal(t, "RS", got[1].State)
}

func TestMarkerRadius(t *testing.T) {
	assert.Equal(t, 15.0, MarkerRadius(40))
	assert.Equal(t, 5.0, MarkerRadius(10))
	assert.Equal(t, 0.5, MarkerRadius(1))
	assert.Equal(t, 15.0, MarkerRadius(30))
}

func TestMapAndHeatPoints(t *testing.T) {
	data := sample()
	points := MapPoints(data)
	want := []MapPoint{
		{Municipality: "Caxias", Latitude: -4.86, Longitude: -43.35, Cases: 4, Radius: 2},
		{Municipality: "Teresina", Latitude: -5.09, Longitude: -42.8, Cases: 2, Radius: 1},
	}
	if diff := cmp.Diff(want, points); diff != "" {
		t.Fatalf("MapPoints mismatch (-want +got):\n%s", diff)
	}

	heat := HeatPoints(data)
	require.Len(t, heat, 2)
	assert.Equal(t, HeatPoint{Latitude: -5.09, Longitude: -42.8, Weight: 2}, heat[0])
	assert.Equal(t, 4, heat[1].Weight)
}

func TestHeatmapSettingsValidate(t *testing.T) {
	assert.NoError(t, DefaultHeatmapSettings().Validate())
	assert.NoError(t, HeatmapSettings{Radius: 5, Blur: 30}.Validate())
	assert.ErrorIs(t, HeatmapSettings{Radius: 41, Blur: 15}.Validate(), ErrInvalidHeatmap)
	assert.ErrorIs(t, HeatmapSettings{Radius: 20, Blur: 4}.Validate(), ErrInvalidHeatmap)
}

func TestIndicatorTable(t *testing.T) {
	table := IndicatorTable(sample())
	require.Len(t, table, 3)

	caxias := table[0]
	assert.Equal(t, "Caxias", caxias.Municipality)
	assert.Equal(t, 4, caxias.Cases)
	require.NotNil(t, caxias.HDI)
	assert.InDelta(t, (0.6*3+0.7)/4, *caxias.HDI, 1e-12)
	require.NotNil(t, caxias.Sanitation)
	assert.InDelta(t, 30, *caxias.Sanitation, 1e-12)
	assert.Nil(t, caxias.Precipitation)

	picos := table[1]
	assert.Equal(t, "Picos", picos.Municipality)
	assert.Nil(t, picos.HDI)
}

func TestCorrelate_TrendLine(t *testing.T) {
	table := []IndicatorRow{
		{Municipality: "A", Cases: 10, HDI: f(0.5)},
		{Municipality: "B", Cases: 20, HDI: f(0.6)},
		{Municipality: "C", Cases: 30, HDI: f(0.7)},
		{Municipality: "D", Cases: 99},
	}
	c := Correlate(table, model.IndicatorHDI, true)
	require.Len(t, c.Points, 3)
	assert.Equal(t, "idh", c.Key)
	require.NotNil(t, c.Pearson)
	assert.InDelta(t, 1.0, *c.Pearson, 1e-9)
	require.NotNil(t, c.Trend)
	assert.InDelta(t, 100.0, c.Trend.Slope, 1e-6)
	assert.InDelta(t, -40.0, c.Trend.Intercept, 1e-6)
	assert.InDelta(t, 1.0, c.Trend.RSquared, 1e-9)
	assert.InDelta(t, 30.0, c.Trend.Y1, 1e-6)

	noTrend := Correlate(table, model.IndicatorHDI, false)
	assert.Nil(t, noTrend.Trend)
}

func TestCorrelate_Degenerate(t *testing.T) {
	c := Correlate([]IndicatorRow{{Municipality: "A", Cases: 1, Income: f(900)}}, model.IndicatorIncome, true)
	assert.Len(t, c.Points, 1)
	assert.Nil(t, c.Pearson)
	assert.Nil(t, c.Trend)

	empty := Correlate(nil, model.IndicatorSanitation, true)
	assert.NotNil(t, empty.Points)
	assert.Empty(t, empty.Points)
}

func TestBuild_EmptyFilterResult(t *testing.T) {
	res := filter.Apply(sample(), filter.Selection{States: []string{"XX"}})
	d := Build(res.Records, DefaultOptions())

	assert.Equal(t, 0, d.Summary.TotalCases)
	assert.Empty(t, d.ByState)
	assert.Empty(t, d.TopMunicipalities)
	assert.Empty(t, d.MapPoints)
	assert.Empty(t, d.Heatmap.Points)
	assert.Empty(t, d.IndicatorTable)
	assert.Empty(t, d.Correlation.Points)
	assert.Equal(t, DefaultHeatRadius, d.Heatmap.Settings.Radius)
}

func TestBuild_FilteredRoundTrip(t *testing.T) {
	res := filter.Apply(sample(), filter.Selection{States: []string{"MA"}})
	d := Build(res.Records, DefaultOptions())

	assert.Equal(t, 4, d.Summary.TotalCases)
	require.Len(t, d.ByState, 1)
	assert.Equal(t, d.Summary.TotalCases, d.ByState[0].Cases)
	assert.Equal(t, -14.5, d.MapView.CenterLat)
	assert.Equal(t, model.IndicatorHDI, d.Correlation.Indicator)
}
