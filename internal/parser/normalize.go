package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidinho/dash-leishmaniose/internal/model"
)

// ParseNumber coerces a cell to a number. Non-numeric input yields nil.
func ParseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if IsNullToken(s) {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ParseCommaDecimal replaces a decimal comma before coercing.
// "12,5" -> 12.5, "abc" -> nil.
func ParseCommaDecimal(s string) *float64 {
	return ParseNumber(strings.ReplaceAll(s, ",", "."))
}

func categorical(row model.RawRow, col string) string {
	v, _ := row.Get(col)
	v = strings.TrimSpace(v)
	if IsNullToken(v) {
		return ""
	}
	return v
}

func numeric(row model.RawRow, col string) *float64 {
	v, ok := row.Get(col)
	if !ok {
		return nil
	}
	return ParseNumber(v)
}

// Normalize turns a raw row into an analysis-ready case record.
// Coercion failures become nil; every record carries exactly one case.
func Normalize(row model.RawRow) model.CaseRecord {
	raw, _ := row.Get(model.ColNotifiedAt)
	raw = strings.TrimSpace(raw)
	notified := ParseNotificationDate(raw)

	rec := model.CaseRecord{
		State:         categorical(row, model.ColState),
		Municipality:  categorical(row, model.ColMunicipality),
		Facility:      categorical(row, model.ColFacility),
		RawNotifiedAt: raw,
		NotifiedAt:    notified,
		Year:          YearOf(notified),
		Latitude:      numeric(row, model.ColLatitude),
		Longitude:     numeric(row, model.ColLongitude),
		HDI:           numeric(row, model.ColHDI),
		MeanIncome:    numeric(row, model.ColMeanIncome),
		Precipitation: numeric(row, model.ColPrecipitation),
		Cases:         1,
	}
	if v, ok := row.Get(model.ColSanitation); ok {
		rec.Sanitation = ParseCommaDecimal(v)
	}
	return rec
}

// NormalizeAll normalizes rows in order.
func NormalizeAll(rows []model.RawRow) []model.CaseRecord {
	out := make([]model.CaseRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, Normalize(r))
	}
	return out
}
