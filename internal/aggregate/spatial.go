package aggregate

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/tidinho/dash-leishmaniose/internal/model"
)

// Marker and heatmap constants.
const (
	MaxMarkerRadius = 15.0

	MinHeatRadius     = 5
	MaxHeatRadius     = 40
	DefaultHeatRadius = 20
	MinHeatBlur       = 5
	MaxHeatBlur       = 30
	DefaultHeatBlur   = 15
	HeatMaxZoom       = 10
)

// ErrInvalidHeatmap is returned for radius or blur outside their ranges.
var ErrInvalidHeatmap = errors.New("invalid heatmap settings")

// MapView initial map framing over Brazil.
type MapView struct {
	CenterLat float64 `json:"centerLat"`
	CenterLon float64 `json:"centerLon"`
	Zoom      int     `json:"zoom"`
	Tiles     string  `json:"tiles"`
}

// DefaultMapView centers on Brazil.
func DefaultMapView() MapView {
	return MapView{CenterLat: -14.5, CenterLon: -52, Zoom: 4, Tiles: "cartodbpositron"}
}

// MapPoint one circle marker.
type MapPoint struct {
	Municipality string  `json:"nmMun"`
	Latitude     float64 `json:"lat"`
	Longitude    float64 `json:"lon"`
	Cases        int     `json:"casos"`
	Radius       float64 `json:"radius"`
}

// HeatPoint one weighted heatmap coordinate.
type HeatPoint struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Weight    int     `json:"peso"`
}

// HeatmapSettings user-adjustable heatmap rendering parameters.
type HeatmapSettings struct {
	Radius  int `json:"radius" toml:"radius"`
	Blur    int `json:"blur" toml:"blur"`
	MaxZoom int `json:"maxZoom" toml:"-"`
}

// DefaultHeatmapSettings radius 20, blur 15.
func DefaultHeatmapSettings() HeatmapSettings {
	return HeatmapSettings{Radius: DefaultHeatRadius, Blur: DefaultHeatBlur, MaxZoom: HeatMaxZoom}
}

// Validate checks radius in [5,40] and blur in [5,30].
func (h HeatmapSettings) Validate() error {
	if h.Radius < MinHeatRadius || h.Radius > MaxHeatRadius {
		return fmt.Errorf("%w: radius %d outside [%d,%d]", ErrInvalidHeatmap, h.Radius, MinHeatRadius, MaxHeatRadius)
	}
	if h.Blur < MinHeatBlur || h.Blur > MaxHeatBlur {
		return fmt.Errorf("%w: blur %d outside [%d,%d]", ErrInvalidHeatmap, h.Blur, MinHeatBlur, MaxHeatBlur)
	}
	return nil
}

// MarkerRadius caps marker size: min(total/2, 15).
func MarkerRadius(total int) float64 {
	return math.Min(float64(total)/2, MaxMarkerRadius)
}

type pointKey struct {
	municipality string
	lat, lon     float64
}

// MapPoints sums cases per (municipality, lat, lon), skipping rows
// without coordinates or municipality.
func MapPoints(records []model.CaseRecord) []MapPoint {
	sums := make(map[pointKey]int)
	for i := range records {
		r := &records[i]
		if !r.HasCoordinates() || r.Municipality == "" {
			continue
		}
		sums[pointKey{r.Municipality, *r.Latitude, *r.Longitude}] += r.Cases
	}
	out := make([]MapPoint, 0, len(sums))
	for k, n := range sums {
		out = append(out, MapPoint{
			Municipality: k.municipality,
			Latitude:     k.lat,
			Longitude:    k.lon,
			Cases:        n,
			Radius:       MarkerRadius(n),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Municipality != b.Municipality {
			return a.Municipality < b.Municipality
		}
		if a.Latitude != b.Latitude {
			return a.Latitude < b.Latitude
		}
		return a.Longitude < b.Longitude
	})
	return out
}

// HeatPoints sums cases per coordinate as heatmap weight.
func HeatPoints(records []model.CaseRecord) []HeatPoint {
	type coord struct{ lat, lon float64 }
	sums := make(map[coord]int)
	for i := range records {
		r := &records[i]
		if !r.HasCoordinates() {
			continue
		}
		sums[coord{*r.Latitude, *r.Longitude}] += r.Cases
	}
	out := make([]HeatPoint, 0, len(sums))
	for k, n := range sums {
		out = append(out, HeatPoint{Latitude: k.lat, Longitude: k.lon, Weight: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Latitude != out[j].Latitude {
			return out[i].Latitude < out[j].Latitude
		}
		return out[i].Longitude < out[j].Longitude
	})
	return out
}
