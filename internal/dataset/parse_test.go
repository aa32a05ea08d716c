package dataset

import (
	"errors"
	"testing"
)

func TestParse_Basic(t *testing.T) {
	raw := []byte(`{
		"France": {"capital": "Paris", "normal_flag": "/flags/fr.png", "small_flag": "flags/small/fr.png"},
		"Japan": {"capital": "Tokyo", "small_flag": "flags/jp.png"}
	}`)

	items := Parse(raw)
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}

	fr := items[0]
	if fr.Country != "France" || fr.Capital != "Paris" {
		t.Errorf("items[0] = %+v, want France/Paris", fr)
	}
	if fr.NormalFlag != "/flags/fr.png" {
		t.Errorf("NormalFlag = %q, want /flags/fr.png", fr.NormalFlag)
	}
	if fr.SmallFlag != "/flags/small/fr.png" {
		t.Errorf("SmallFlag = %q, want leading slash added", fr.SmallFlag)
	}

	jp := items[1]
	if jp.NormalFlag != "" {
		t.Errorf("NormalFlag = %q, want empty", jp.NormalFlag)
	}
	if BestFlagPath(jp) != "/flags/jp.png" {
		t.Errorf("BestFlagPath = %q, want small flag fallback", BestFlagPath(jp))
	}
}

func TestParse_DeduplicatesCaseInsensitively(t *testing.T) {
	raw := []byte(`{
		"France": {"capital": "Paris"},
		"france": {"capital": "Lyon"},
		" FRANCE ": {"capital": "Marseille"}
	}`)

	items := Parse(raw)
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].Country != "France" || items[0].Capital != "Paris" {
		t.Errorf("got %+v, want first-seen France/Paris", items[0])
	}
}

func TestParse_RepeatedKeyKeepsLastValue(t *testing.T) {
	raw := []byte(`{
		"France": {"capital": "Lyon"},
		"france": {"capital": "Marseille"},
		"France": {"capital": "Paris"}
	}`)

	items := Parse(raw)
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].Country != "France" || items[0].Capital != "Paris" {
		t.Errorf("got %+v, want France at its first position with its last value", items[0])
	}
}

func TestParse_DeduplicatesAccentInsensitively(t *testing.T) {
	raw := []byte(`{"Côte d'Ivoire": {"capital": "Yamoussoukro"}, "Cote dIvoire": {"capital": "Abidjan"}}`)

	items := Parse(raw)
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].Capital != "Yamoussoukro" {
		t.Errorf("Capital = %q, want first-seen value", items[0].Capital)
	}
}

func TestParse_SortsByCountry(t *testing.T) {
	raw := []byte(`{
		"Zimbabwe": {"capital": "Harare"},
		"Austria": {"capital": "Vienna"},
		"Égypte": {"capital": "Cairo"},
		"Brazil": {"capital": "Brasília"}
	}`)

	items := Parse(raw)
	want := []string{"Austria", "Brazil", "Égypte", "Zimbabwe"}
	if len(items) != len(want) {
		t.Fatalf("len(items) = %d, want %d", len(items), len(want))
	}
	for i, w := range want {
		if items[i].Country != w {
			t.Errorf("items[%d].Country = %q, want %q", i, items[i].Country, w)
		}
	}
}

func TestParse_MissingCapital(t *testing.T) {
	raw := []byte(`{"Atlantis": {}, "Lemuria": {"capital": "   "}, "Mu": {"capital": null}}`)

	items := Parse(raw)
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}
	for _, it := range items {
		if it.Capital != UnknownCapital {
			t.Errorf("%s capital = %q, want %q", it.Country, it.Capital, UnknownCapital)
		}
	}
}

func TestParse_SkipsMalformedEntries(t *testing.T) {
	raw := []byte(`{
		"": {"capital": "Nowhere"},
		"   ": {"capital": "Blank"},
		"Scalar": "not an object",
		"Null": null,
		"List": [1, 2],
		"BadCapital": {"capital": {"name": "x"}},
		"BadFlag": {"normal_flag": ["a.png"]},
		"Peru": {"capital": "Lima"}
	}`)

	items := Parse(raw)
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1 (%+v)", len(items), items)
	}
	if items[0].Country != "Peru" {
		t.Errorf("Country = %q, want Peru", items[0].Country)
	}
}

func TestParse_ScalarFieldsAreStringified(t *testing.T) {
	raw := []byte(`{"Numberland": {"capital": 42, "normal_flag": "n.png"}}`)

	items := Parse(raw)
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].Capital != "42" {
		t.Errorf("Capital = %q, want 42", items[0].Capital)
	}
	if items[0].NormalFlag != "/n.png" {
		t.Errorf("NormalFlag = %q, want /n.png", items[0].NormalFlag)
	}
}

func TestParse_RejectsNonObjectRoot(t *testing.T) {
	inputs := []string{
		`[{"France": {"capital": "Paris"}}]`,
		`"France"`,
		`42`,
		`null`,
		`{not json`,
		``,
	}
	for _, in := range inputs {
		if items := Parse([]byte(in)); len(items) != 0 {
			t.Errorf("Parse(%q) returned %d items, want 0", in, len(items))
		}
	}
}

func TestParse_KeepsURLFlags(t *testing.T) {
	raw := []byte(`{"Chile": {"capital": "Santiago", "normal_flag": "https://example.com/cl.png"}}`)

	items := Parse(raw)
	if got := BestFlagPath(items[0]); got != "https://example.com/cl.png" {
		t.Errorf("BestFlagPath = %q, want URL unchanged", got)
	}
}

func TestMissingFlags(t *testing.T) {
	items := []Item{
		{Country: "A", NormalFlag: "/a.png"},
		{Country: "B", SmallFlag: "/b.png"},
		{Country: "C"},
		{Country: "D"},
	}
	if got := MissingFlags(items); got != 2 {
		t.Errorf("MissingFlags = %d, want 2", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{`{"France": {}}`, false},
		{`{}`, false},
		{`[]`, true},
		{`{"France":`, true},
		{`   `, true},
		{`"x"`, true},
	}
	for _, tc := range tests {
		err := Validate([]byte(tc.input))
		if (err != nil) != tc.wantErr {
			t.Errorf("Validate(%q) err = %v, wantErr %v", tc.input, err, tc.wantErr)
		}
		if err != nil {
			var invErr *InvalidJSONError
			if !errors.As(err, &invErr) {
				t.Errorf("Validate(%q) error type = %T, want *InvalidJSONError", tc.input, err)
			}
		}
	}
}
