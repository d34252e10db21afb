package pipeline_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-inputprops/pkg/pipeline"
)

func TestParse_Numeric(t *testing.T) {
	settings := pipeline.Config{}.Resolve("")

	cases := map[string]any{
		"":            "",
		"   ":         "",
		".":           "0.",
		"0.":          "0.",
		"05":          "5",
		"0":           "0",
		"0.25":        "0.25",
		"1,234,567.5": "1234567.5",
		"1234567.5":   "1234567.5",
		" 12,000 ":    "12000",
		"-":           "-",
		"-1,000":      "-1000",
	}
	for raw, want := range cases {
		got, err := pipeline.Parse(pipeline.TargetValue(raw), pipeline.VariantNumeric, settings)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("Parse(%q) = %#v, want %#v", raw, got, want)
		}
	}
}

func TestParse_NumericCustomSeparators(t *testing.T) {
	settings := pipeline.Config{ThousandsSeparator: ".", DecimalsSeparator: ","}.Resolve("")
	got, err := pipeline.Parse(pipeline.TargetValue("1.234.567,89"), pipeline.VariantNumeric, settings)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != "1234567.89" {
		t.Fatalf("unexpected parse result %#v", got)
	}
}

func TestParse_NonNumericPassesThrough(t *testing.T) {
	settings := pipeline.Config{}.Resolve("")
	for _, variant := range []pipeline.Variant{pipeline.VariantAll, pipeline.VariantString, pipeline.VariantNumericString} {
		got, err := pipeline.Parse(pipeline.TargetValue("1,234"), variant, settings)
		if err != nil {
			t.Fatalf("%s: %v", variant, err)
		}
		if got != "1,234" {
			t.Fatalf("%s: expected untouched value, got %#v", variant, got)
		}
	}
}

func TestParse_StateModifiersRunAfterNormalisation(t *testing.T) {
	var seen []any
	settings := pipeline.Config{
		StateModifiers: []pipeline.Modifier{
			func(v any) any { seen = append(seen, v); return v },
			func(v any) any { return strings.TrimSuffix(pipeline.Stringify(v), "0") },
		},
	}.Resolve("")

	got, err := pipeline.Parse(pipeline.TargetValue("1,230"), pipeline.VariantNumeric, settings)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != "123" {
		t.Fatalf("unexpected result %#v", got)
	}
	if len(seen) != 1 || seen[0] != "1230" {
		t.Fatalf("first modifier should see the normalised value, saw %v", seen)
	}
}

func TestParse_RawBypassesPipeline(t *testing.T) {
	settings := pipeline.Config{
		StateModifiers: []pipeline.Modifier{func(any) any { return "modified" }},
	}.Resolve("")
	got, err := pipeline.Parse(pipeline.RawValue(42), pipeline.VariantNumeric, settings)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != 42 {
		t.Fatalf("raw value should be returned untouched, got %#v", got)
	}
}

func TestParse_CheckboxMismatch(t *testing.T) {
	checkbox := pipeline.Config{}.Resolve(false)
	if !checkbox.Checkbox {
		t.Fatalf("bool current value should infer checkbox")
	}

	if _, err := pipeline.Parse(pipeline.TargetValue("on"), pipeline.VariantAll, checkbox); !errors.Is(err, pipeline.ErrExpectedCheckbox) {
		t.Fatalf("expected ErrExpectedCheckbox, got %v", err)
	}
	got, err := pipeline.Parse(pipeline.TargetChecked(true), pipeline.VariantAll, checkbox)
	if err != nil || got != true {
		t.Fatalf("checked input on checkbox: got %#v, %v", got, err)
	}

	text := pipeline.Config{}.Resolve("text")
	if _, err := pipeline.Parse(pipeline.TargetChecked(true), pipeline.VariantAll, text); !errors.Is(err, pipeline.ErrUnexpectedCheckbox) {
		t.Fatalf("expected ErrUnexpectedCheckbox, got %v", err)
	}

	forced := pipeline.Config{IsCheckbox: pipeline.Bool(false)}.Resolve(true)
	if forced.Checkbox {
		t.Fatalf("explicit IsCheckbox should win over inference")
	}
}
