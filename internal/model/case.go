package model

import "time"

// Snapshot column names.
const (
	ColNotifiedAt    = "dt_notific"
	ColState         = "sigla_uf"
	ColMunicipality  = "nm_mun"
	ColFacility      = "no_fantasia"
	ColLatitude      = "lat_locali"
	ColLongitude     = "long_local"
	ColHDI           = "idh"
	ColMeanIncome    = "renda_media"
	ColPrecipitation = "precipitacao_mensal"
	ColSanitation    = "saneamento_basico"
)

// RequiredColumns columns every snapshot must carry.
var RequiredColumns = []string{
	ColNotifiedAt,
	ColState,
	ColMunicipality,
	ColFacility,
	ColLatitude,
	ColLongitude,
	ColHDI,
	ColMeanIncome,
	ColPrecipitation,
}

// OptionalColumns columns tolerated when absent.
var OptionalColumns = []string{
	ColSanitation,
}

// RawRow is one snapshot row before normalization.
// Null or missing cells are absent from the map.
type RawRow map[string]string

// Get returns the cell value and whether it was present.
func (r RawRow) Get(col string) (string, bool) {
	v, ok := r[col]
	return v, ok
}

// CaseRecord one row = one notified case.
// Empty strings stand for null categorical values.
type CaseRecord struct {
	State         string `json:"siglaUf"`
	Municipality  string `json:"nmMun"`
	Facility      string `json:"noFantasia"`
	RawNotifiedAt string `json:"dtNotificRaw"`

	NotifiedAt *time.Time `json:"dtNotific,omitempty"`
	Year       *int       `json:"anoNotificacao,omitempty"`

	Latitude      *float64 `json:"latLocali,omitempty"`
	Longitude     *float64 `json:"longLocal,omitempty"`
	HDI           *float64 `json:"idh,omitempty"`
	MeanIncome    *float64 `json:"rendaMedia,omitempty"`
	Precipitation *float64 `json:"precipitacaoMensal,omitempty"`
	Sanitation    *float64 `json:"saneamentoBasico,omitempty"`

	// Cases is always 1.
	Cases int `json:"casos"`
}

// HasCoordinates reports whether both latitude and longitude are set.
func (r *CaseRecord) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// IndicatorValue returns the raw indicator value carried by the record.
func (r *CaseRecord) IndicatorValue(ind Indicator) *float64 {
	switch ind {
	case IndicatorHDI:
		return r.HDI
	case IndicatorSanitation:
		return r.Sanitation
	case IndicatorIncome:
		return r.MeanIncome
	case IndicatorPrecipitation:
		return r.Precipitation
	}
	return nil
}
