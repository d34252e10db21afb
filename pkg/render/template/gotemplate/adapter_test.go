package gotemplate_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-inputprops/pkg/render/template/gotemplate"
	"github.com/goliatone/go-inputprops/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "  Ada "}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global", nil, w)
	})

	testsupport.AssertGolden(t, filepath.Join("testdata", "use-global.golden"), result)
}

func TestEngine_RegisterFilterAndFieldID(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter", map[string]any{
			"path":   "owner.email",
			"prefix": "Checkout",
			"label":  "email",
		}, w)
	})

	testsupport.AssertGolden(t, filepath.Join("testdata", "use-filter.golden"), result)
}

func TestEngine_RenderStringWithStructData(t *testing.T) {
	engine := newEngine(t)
	type view struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	got, err := engine.Render("{{ name }}={{ count }}", view{Name: "items", Count: 3})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "items=3" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without templates")
	}
}

func TestFieldID(t *testing.T) {
	cases := map[string]string{
		"owner.email":  "owner-email",
		"items.0.sku":  "items-0-sku",
		" Amount_Due ": "amount-due",
		"":             "",
	}
	for in, want := range cases {
		if got := gotemplate.FieldID(in); got != want {
			t.Fatalf("FieldID(%q) = %q, want %q", in, got, want)
		}
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
