package pipeline

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestConfigResolveDefaults(t *testing.T) {
	s := Config{}.Resolve(nil)
	if s.ThousandsSeparator != DefaultThousandsSeparator || s.DecimalsSeparator != DefaultDecimalsSeparator {
		t.Fatalf("default separators not applied: %+v", s)
	}
	if s.Checkbox {
		t.Fatalf("nil current value should not infer checkbox")
	}
	if s.EmptyValue != "" {
		t.Fatalf("unexpected empty value %q", s.EmptyValue)
	}
}

func TestConfigResolveDoesNotAlias(t *testing.T) {
	cfg := Config{MaxDecimalPlaces: Int(2)}
	s := cfg.Resolve(nil)
	*s.MaxDecimalPlaces = 5
	if *cfg.MaxDecimalPlaces != 2 {
		t.Fatalf("resolved settings alias the config")
	}
}

func TestConfigMerge(t *testing.T) {
	base := Config{ThousandsSeparator: " ", MaxIntegerLength: Int(6)}
	merged := base.Merge(Config{OnlyPositives: true, MaxIntegerLength: Int(3), IsCheckbox: Bool(false)})

	if merged.ThousandsSeparator != " " || !merged.OnlyPositives {
		t.Fatalf("merge lost fields: %+v", merged)
	}
	if *merged.MaxIntegerLength != 3 || *base.MaxIntegerLength != 6 {
		t.Fatalf("merge should override without touching the base")
	}
	if merged.IsCheckbox == nil || *merged.IsCheckbox {
		t.Fatalf("explicit false checkbox should survive merge")
	}
}

func TestConfigDecoding(t *testing.T) {
	raw := `
thousandsSeparator: "."
decimalsSeparator: ","
maxDecimalPlaces: 0
onlyPositives: true
elementValueForUndefinedOrNull: "-"
`
	var fromYAML Config
	if err := yaml.Unmarshal([]byte(raw), &fromYAML); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if fromYAML.MaxDecimalPlaces == nil || *fromYAML.MaxDecimalPlaces != 0 {
		t.Fatalf("explicit zero decimals should decode as a set pointer")
	}

	var fromJSON Config
	if err := json.Unmarshal([]byte(`{"thousandsSeparator":".","decimalsSeparator":",","maxDecimalPlaces":0,"onlyPositives":true,"elementValueForUndefinedOrNull":"-"}`), &fromJSON); err != nil {
		t.Fatalf("json: %v", err)
	}
	a, b := fromYAML.Resolve(nil), fromJSON.Resolve(nil)
	if a.ThousandsSeparator != b.ThousandsSeparator || a.DecimalsSeparator != b.DecimalsSeparator || a.EmptyValue != b.EmptyValue || a.OnlyPositives != b.OnlyPositives {
		t.Fatalf("yaml and json decode differently: %+v vs %+v", a, b)
	}
}

func TestParseVariant(t *testing.T) {
	cases := map[string]Variant{
		"":              VariantAll,
		"Numeric":       VariantNumeric,
		"numericString": VariantNumericString,
		"ONLYNUMBERS":   VariantOnlyNumbers,
		"string":        VariantString,
	}
	for raw, want := range cases {
		got, err := ParseVariant(raw)
		if err != nil || got != want {
			t.Fatalf("ParseVariant(%q) = %q, %v", raw, got, err)
		}
	}
	if _, err := ParseVariant("currency"); err == nil {
		t.Fatalf("expected error for unknown variant")
	}

	var v Variant
	if err := yaml.Unmarshal([]byte(`numeric`), &v); err != nil || v != VariantNumeric {
		t.Fatalf("yaml variant decode: %q, %v", v, err)
	}
}
