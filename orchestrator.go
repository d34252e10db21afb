// Package inputprops binds fields of observable state containers to input
// elements. The root package re-exports the entry points most callers need;
// the pkg/ tree holds the pipeline, state, binding, error and element
// packages.
package inputprops

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-inputprops/pkg/formspec"
	"github.com/goliatone/go-inputprops/pkg/openapi"
	"github.com/goliatone/go-inputprops/pkg/orchestrator"
)

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// Session aliases orchestrator.Session.
type Session = orchestrator.Session

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML loads the OpenAPI source, derives the form for ref (a
// component schema or operation id) and renders it over its defaults.
func GenerateHTML(ctx context.Context, source openapi.Source, ref string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Source: source,
		Ref:    ref,
	})
}

// GenerateHTMLFromForm renders a form document over its initial values.
func GenerateHTMLFromForm(ctx context.Context, form formspec.Form, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{Form: &form})
}

// WithThemeSelector resolves rendered CSS classes through a go-theme
// selector.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector, name, variant)
}

// WithTemplateDir overrides the built-in templates with those found in dir.
func WithTemplateDir(dir string) orchestrator.Option {
	return orchestrator.WithTemplateDir(dir)
}
