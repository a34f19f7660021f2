package geo

import "testing"

func TestCapitals_SortedAndComplete(t *testing.T) {
	t.Parallel()

	all := Capitals()
	if len(all) != 27 {
		t.Fatalf("want 27 capitals, got %d", len(all))
	}
	if all[0].Municipality != "Porto Velho" || all[0].MunicipalityCode != 1100205 {
		t.Fatalf("first capital = %+v", all[0])
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].MunicipalityCode >= all[i].MunicipalityCode {
			t.Fatalf("not sorted at %d: %d >= %d", i, all[i-1].MunicipalityCode, all[i].MunicipalityCode)
		}
	}

	seen := map[string]bool{}
	for _, c := range all {
		if seen[c.UF] {
			t.Fatalf("duplicate UF %s", c.UF)
		}
		seen[c.UF] = true
		if c.MunicipalityCode/100000 != c.StateCode {
			t.Fatalf("%s: municipality code %d does not start with state code %d", c.Municipality, c.MunicipalityCode, c.StateCode)
		}
	}
}

func TestCapitalOf(t *testing.T) {
	t.Parallel()

	c, ok := CapitalOf(" ma ")
	if !ok || c.Municipality != "São Luís" || c.StateCode != 21 {
		t.Fatalf("CapitalOf(ma) = %+v, %v", c, ok)
	}
	if _, ok := CapitalOf("XX"); ok {
		t.Fatalf("unknown UF should not resolve")
	}
	if !IsCapital("teresina", "PI") {
		t.Fatalf("Teresina is the capital of PI")
	}
	if IsCapital("Parnaíba", "PI") {
		t.Fatalf("Parnaíba is not a capital")
	}
}

func TestCapitals_ReturnsCopy(t *testing.T) {
	t.Parallel()

	a := Capitals()
	a[0].Municipality = "alterado"
	if Capitals()[0].Municipality == "alterado" {
		t.Fatalf("Capitals must not expose the backing table")
	}
}
