package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidinho/dash-leishmaniose/internal/model"
)

func TestParseNotificationDate_DayFirst(t *testing.T) {
	t.Parallel()

	cases := map[string]time.Time{
		"03/04/2019":          time.Date(2019, 4, 3, 0, 0, 0, 0, time.UTC),
		" 15/12/2020 ":        time.Date(2020, 12, 15, 0, 0, 0, 0, time.UTC),
		"01-02-2018":          time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC),
		"2017-07-09":          time.Date(2017, 7, 9, 0, 0, 0, 0, time.UTC),
		"2017-07-09 00:00:00": time.Date(2017, 7, 9, 0, 0, 0, 0, time.UTC),
		"20160105":            time.Date(2016, 1, 5, 0, 0, 0, 0, time.UTC),
		"3/4/2019 10:30":      time.Date(2019, 4, 3, 10, 30, 0, 0, time.UTC),
		"3/4/2019 10:30:15":   time.Date(2019, 4, 3, 10, 30, 15, 0, time.UTC),
		"3-4-2019":            time.Date(2019, 4, 3, 0, 0, 0, 0, time.UTC),
		"3.4.2019":            time.Date(2019, 4, 3, 0, 0, 0, 0, time.UTC),
		"9-11-2020 08:05":     time.Date(2020, 11, 9, 8, 5, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got := ParseNotificationDate(in)
		require.NotNil(t, got, "input %q", in)
		assert.True(t, want.Equal(*got), "input %q: got %v want %v", in, *got, want)
	}
}

func TestParseNotificationDate_Unparseable(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   ", "nan", "NaT", "None", "31/02/2019", "ontem", "2019-13-01"} {
		assert.Nil(t, ParseNotificationDate(in), "input %q", in)
	}
}

func TestParseCommaDecimal(t *testing.T) {
	t.Parallel()

	v := ParseCommaDecimal("12,5")
	require.NotNil(t, v)
	assert.Equal(t, 12.5, *v)

	assert.Nil(t, ParseCommaDecimal("abc"))
	assert.Nil(t, ParseCommaDecimal("nan"))
	assert.Nil(t, ParseCommaDecimal(""))
}

func TestParseNumber(t *testing.T) {
	t.Parallel()

	v := ParseNumber(" -9.665 ")
	require.NotNil(t, v)
	assert.Equal(t, -9.665, *v)

	assert.Nil(t, ParseNumber("12,5"))
	assert.Nil(t, ParseNumber("NaN"))
	assert.Nil(t, ParseNumber("Inf"))
}

func TestNormalize_CaseCountAlwaysOne(t *testing.T) {
	t.Parallel()

	rows := []model.RawRow{
		{},
		{model.ColNotifiedAt: "lixo", model.ColLatitude: "x"},
		{
			model.ColNotifiedAt:    "10/05/2021",
			model.ColState:         "MA",
			model.ColMunicipality:  "São Luís",
			model.ColFacility:      "UBS Centro",
			model.ColLatitude:      "-2.53",
			model.ColLongitude:     "-44.3",
			model.ColHDI:           "0.768",
			model.ColMeanIncome:    "1850.2",
			model.ColPrecipitation: "210",
			model.ColSanitation:    "48,7",
		},
	}
	recs := NormalizeAll(rows)
	require.Len(t, recs, 3)
	for i, r := range recs {
		assert.Equal(t, 1, r.Cases, "row %d", i)
	}

	assert.Nil(t, recs[0].NotifiedAt)
	assert.Nil(t, recs[0].Year)
	assert.Nil(t, recs[1].NotifiedAt)
	assert.Nil(t, recs[1].Year)
	assert.Nil(t, recs[1].Latitude)

	full := recs[2]
	require.NotNil(t, full.Year)
	assert.Equal(t, 2021, *full.Year)
	assert.Equal(t, "MA", full.State)
	assert.Equal(t, "São Luís", full.Municipality)
	require.NotNil(t, full.Sanitation)
	assert.InDelta(t, 48.7, *full.Sanitation, 1e-9)
	assert.True(t, full.HasCoordinates())
}

func TestNormalize_MissingSanitationColumn(t *testing.T) {
	t.Parallel()

	rec := Normalize(model.RawRow{model.ColState: "PI", model.ColMunicipality: "nan"})
	assert.Nil(t, rec.Sanitation)
	assert.Equal(t, "PI", rec.State)
	assert.Equal(t, "", rec.Municipality)
}
