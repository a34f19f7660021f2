package parser

import "testing"

func TestNormalizeColumnName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"sigla_uf":             "sigla_uf",
		"  NM_MUN ":            "nm_mun",
		"\ufeffdt_notific":     "dt_notific",
		"no_ fantasia":         "no_fantasia",
		"lat_locali\t":         "lat_locali",
		"precipitacao_mensal":  "precipitacao_mensal",
		"\ufeff DT_NOTIFIC \n": "dt_notific",
		"sigla_ uf":            "sigla_uf",
	}
	for in, want := range cases {
		if got := NormalizeColumnName(in); got != want {
			t.Fatalf("NormalizeColumnName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsNullToken(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "  ", "nan", "NaN", "NaT", "None", "null", "<NA>"} {
		if !IsNullToken(s) {
			t.Fatalf("IsNullToken(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"0", "MA", "nana", "-"} {
		if IsNullToken(s) {
			t.Fatalf("IsNullToken(%q) = true, want false", s)
		}
	}
}
