package filter

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tidinho/dash-leishmaniose/internal/model"
)

// Selection chosen values per stage. An empty slice places no restriction
// on its stage; a non-empty one keeps rows whose value is in the set.
type Selection struct {
	States         []string `json:"uf" form:"uf"`
	Municipalities []string `json:"municipio" form:"municipio"`
	Facilities     []string `json:"unidade" form:"unidade"`
	Years          []int    `json:"ano" form:"ano"`
}

// IsEmpty reports whether no stage is restricted.
func (s Selection) IsEmpty() bool {
	return len(s.States) == 0 && len(s.Municipalities) == 0 &&
		len(s.Facilities) == 0 && len(s.Years) == 0
}

// Options candidate values offered at each stage.
// Each domain is taken from the rows left by the stages before it.
type Options struct {
	States         []string `json:"uf"`
	Municipalities []string `json:"municipio"`
	Facilities     []string `json:"unidade"`
	Years          []int    `json:"ano"`
}

// Result filtered rows plus the option domains computed on the way.
type Result struct {
	Options Options
	Records []model.CaseRecord
}

// Apply runs the four stages in order: state, municipality, facility, year.
func Apply(records []model.CaseRecord, sel Selection) Result {
	var opts Options

	opts.States = distinctStrings(records, stateOf)
	byState := keepStrings(records, sel.States, stateOf)

	opts.Municipalities = distinctStrings(byState, municipalityOf)
	byMunicipality := keepStrings(byState, sel.Municipalities, municipalityOf)

	opts.Facilities = distinctStrings(byMunicipality, facilityOf)
	byFacility := keepStrings(byMunicipality, sel.Facilities, facilityOf)

	opts.Years = distinctYears(byFacility)
	byYear := keepYears(byFacility, sel.Years)

	return Result{Options: opts, Records: byYear}
}

func stateOf(r *model.CaseRecord) string        { return r.State }
func municipalityOf(r *model.CaseRecord) string { return r.Municipality }
func facilityOf(r *model.CaseRecord) string     { return r.Facility }

func keepStrings(records []model.CaseRecord, selected []string, field func(*model.CaseRecord) string) []model.CaseRecord {
	if len(selected) == 0 {
		return records
	}
	set := make(map[string]struct{}, len(selected))
	for _, v := range selected {
		set[v] = struct{}{}
	}
	out := make([]model.CaseRecord, 0, len(records))
	for i := range records {
		v := field(&records[i])
		if v == "" {
			continue
		}
		if _, ok := set[v]; ok {
			out = append(out, records[i])
		}
	}
	return out
}

func keepYears(records []model.CaseRecord, selected []int) []model.CaseRecord {
	if len(selected) == 0 {
		return records
	}
	set := make(map[int]struct{}, len(selected))
	for _, y := range selected {
		set[y] = struct{}{}
	}
	out := make([]model.CaseRecord, 0, len(records))
	for i := range records {
		if records[i].Year == nil {
			continue
		}
		if _, ok := set[*records[i].Year]; ok {
			out = append(out, records[i])
		}
	}
	return out
}

func distinctStrings(records []model.CaseRecord, field func(*model.CaseRecord) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for i := range records {
		v := field(&records[i])
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	SortStrings(out)
	return out
}

func distinctYears(records []model.CaseRecord) []int {
	seen := make(map[int]struct{})
	out := []int{}
	for i := range records {
		if records[i].Year == nil {
			continue
		}
		y := *records[i].Year
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}

// SortStrings orders names with Brazilian Portuguese collation,
// so "Ágata" sorts next to "Agua" rather than after "Z".
func SortStrings(values []string) {
	collate.New(language.BrazilianPortuguese).SortStrings(values)
}
