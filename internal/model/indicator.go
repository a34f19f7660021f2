package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownIndicator is returned for indicator names outside the fixed set.
var ErrUnknownIndicator = errors.New("unknown indicator")

// Indicator socioeconomic or environmental indicator, named after its snapshot column.
type Indicator string

const (
	IndicatorHDI           Indicator = ColHDI
	IndicatorSanitation    Indicator = ColSanitation
	IndicatorIncome        Indicator = ColMeanIncome
	IndicatorPrecipitation Indicator = ColPrecipitation
)

// Indicators in the order offered for selection.
var Indicators = []Indicator{
	IndicatorHDI,
	IndicatorSanitation,
	IndicatorIncome,
	IndicatorPrecipitation,
}

// Key short column key used in the indicator table.
func (i Indicator) Key() string {
	switch i {
	case IndicatorHDI:
		return "idh"
	case IndicatorSanitation:
		return "saneamento"
	case IndicatorIncome:
		return "renda"
	case IndicatorPrecipitation:
		return "precipitacao"
	}
	return ""
}

// Label human-readable name.
func (i Indicator) Label() string {
	switch i {
	case IndicatorHDI:
		return "IDH"
	case IndicatorSanitation:
		return "Saneamento básico"
	case IndicatorIncome:
		return "Renda média"
	case IndicatorPrecipitation:
		return "Precipitação mensal"
	}
	return string(i)
}

// ParseIndicator accepts either the column name or the short key.
func ParseIndicator(s string) (Indicator, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	for _, ind := range Indicators {
		if s == string(ind) || s == ind.Key() {
			return ind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownIndicator, s)
}
