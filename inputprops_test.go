package inputprops_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	inputprops "github.com/goliatone/go-inputprops"
	"github.com/goliatone/go-inputprops/pkg/formspec"
)

func TestEmbeddedTemplates(t *testing.T) {
	for _, name := range []string{"input.tpl", "form.tpl"} {
		if _, err := fs.ReadFile(inputprops.EmbeddedTemplates(), name); err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
	}
}

func TestGenerateHTMLFromForm(t *testing.T) {
	form := formspec.Form{
		ID:     "budget",
		Action: "/budget",
		Fields: []formspec.Field{
			{Name: "limit", Label: "Limit", Input: formspec.InputNumber, Initial: "25000"},
		},
	}
	out, err := inputprops.GenerateHTMLFromForm(context.Background(), form)
	if err != nil {
		t.Fatalf("GenerateHTMLFromForm: %v", err)
	}
	if !strings.Contains(string(out), `id="budget-limit" name="limit" value="25,000"`) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestBindThroughRootPackage(t *testing.T) {
	store := inputprops.NewStore(map[string]any{"qty": "1200"})
	props, err := inputprops.Bind(store, "qty", inputprops.WithVariant(inputprops.VariantNumeric))
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if props.Value != "1,200" {
		t.Fatalf("value = %#v", props.Value)
	}
}
