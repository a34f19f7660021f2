package aggregate

import (
	"sort"

	"github.com/tidinho/dash-leishmaniose/internal/model"
)

// DefaultTopN municipalities shown in the ranking chart.
const DefaultTopN = 20

// StateTotal cases per state.
type StateTotal struct {
	State string `json:"siglaUf"`
	Cases int    `json:"casos"`
}

// MunicipalityTotal cases per (municipality, state).
type MunicipalityTotal struct {
	Municipality string `json:"nmMun"`
	State        string `json:"siglaUf"`
	Cases        int    `json:"casos"`
}

// ByState sums cases per state, ordered by state code.
// Rows without a state are kept under "" so the totals add up to Summarize.
func ByState(records []model.CaseRecord) []StateTotal {
	sums := make(map[string]int)
	for i := range records {
		sums[records[i].State] += records[i].Cases
	}
	out := make([]StateTotal, 0, len(sums))
	for uf, n := range sums {
		out = append(out, StateTotal{State: uf, Cases: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].State < out[j].State })
	return out
}

type munKey struct {
	municipality string
	state        string
}

// TopMunicipalities ranks (municipality, state) groups by cases, descending,
// and keeps the first n. Groups start in key order and the sort is stable,
// so ties keep key order. Rows without a municipality are skipped.
func TopMunicipalities(records []model.CaseRecord, n int) []MunicipalityTotal {
	if n <= 0 {
		n = DefaultTopN
	}
	sums := make(map[munKey]int)
	for i := range records {
		r := &records[i]
		if r.Municipality == "" {
			continue
		}
		sums[munKey{r.Municipality, r.State}] += r.Cases
	}

	out := make([]MunicipalityTotal, 0, len(sums))
	for k, v := range sums {
		out = append(out, MunicipalityTotal{Municipality: k.municipality, State: k.state, Cases: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Municipality != out[j].Municipality {
			return out[i].Municipality < out[j].Municipality
		}
		return out[i].State < out[j].State
	})
	return rankTop(out, n)
}

func rankTop(groups []MunicipalityTotal, n int) []MunicipalityTotal {
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Cases > groups[j].Cases })
	if len(groups) > n {
		groups = groups[:n]
	}
	return groups
}
