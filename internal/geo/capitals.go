// Package geo holds the state capitals reference table.
package geo

import (
	"sort"
	"strings"
)

// Capital a state capital with its IBGE codes.
type Capital struct {
	MunicipalityCode int    `json:"codeMuni"`
	Municipality     string `json:"nameMuni"`
	StateCode        int    `json:"codeState"`
	State            string `json:"nameState"`
	UF               string `json:"abbrevState"`
}

var capitals = []Capital{
	{3550308, "São Paulo", 35, "São Paulo", "SP"},
	{3304557, "Rio de Janeiro", 33, "Rio de Janeiro", "RJ"},
	{3106200, "Belo Horizonte", 31, "Minas Gerais", "MG"},
	{2927408, "Salvador", 29, "Bahia", "BA"},
	{2304400, "Fortaleza", 23, "Ceará", "CE"},
	{3205309, "Vitória", 32, "Espírito Santo", "ES"},
	{5208707, "Goiânia", 52, "Goiás", "GO"},
	{5103403, "Cuiabá", 51, "Mato Grosso", "MT"},
	{2111300, "São Luís", 21, "Maranhão", "MA"},
	{2211001, "Teresina", 22, "Piauí", "PI"},
	{2611606, "Recife", 26, "Pernambuco", "PE"},
	{2800308, "Aracaju", 28, "Sergipe", "SE"},
	{2507507, "João Pessoa", 25, "Paraíba", "PB"},
	{2408102, "Natal", 24, "Rio Grande do Norte", "RN"},
	{2704302, "Maceió", 27, "Alagoas", "AL"},
	{4314902, "Porto Alegre", 43, "Rio Grande do Sul", "RS"},
	{4106902, "Curitiba", 41, "Paraná", "PR"},
	{4205407, "Florianópolis", 42, "Santa Catarina", "SC"},
	{1501402, "Belém", 15, "Pará", "PA"},
	{1302603, "Manaus", 13, "Amazonas", "AM"},
	{1721000, "Palmas", 17, "Tocantins", "TO"},
	{5002704, "Campo Grande", 50, "Mato Grosso do Sul", "MS"},
	{1600303, "Macapá", 16, "Amapá", "AP"},
	{1200401, "Rio Branco", 12, "Acre", "AC"},
	{1400100, "Boa Vista", 14, "Roraima", "RR"},
	{5300108, "Brasília", 53, "Distrito Federal", "DF"},
	{1100205, "Porto Velho", 11, "Rondônia", "RO"},
}

func init() {
	sort.Slice(capitals, func(i, j int) bool {
		return capitals[i].MunicipalityCode < capitals[j].MunicipalityCode
	})
}

// Capitals returns all 27 capitals ordered by municipality code.
func Capitals() []Capital {
	out := make([]Capital, len(capitals))
	copy(out, capitals)
	return out
}

// CapitalOf looks up the capital of a state abbreviation.
func CapitalOf(uf string) (Capital, bool) {
	uf = strings.ToUpper(strings.TrimSpace(uf))
	for _, c := range capitals {
		if c.UF == uf {
			return c, true
		}
	}
	return Capital{}, false
}

// IsCapital reports whether municipality is the capital of uf.
// Names are compared case-insensitively.
func IsCapital(municipality, uf string) bool {
	c, ok := CapitalOf(uf)
	return ok && strings.EqualFold(strings.TrimSpace(municipality), c.Municipality)
}
