package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-inputprops/pkg/bind"
	"github.com/goliatone/go-inputprops/pkg/elements/html"
	"github.com/goliatone/go-inputprops/pkg/formspec"
	"github.com/goliatone/go-inputprops/pkg/openapi"
	"github.com/goliatone/go-inputprops/pkg/pipeline"
	"github.com/goliatone/go-inputprops/pkg/state"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects the OpenAPI loader used for Request.Source.
func WithLoader(loader *openapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithRegistry injects the registry that resolves named restrictors and
// modifiers.
func WithRegistry(registry *pipeline.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithRenderer injects a prepared HTML renderer. It takes precedence over
// WithTemplateDir and WithThemeSelector.
func WithRenderer(renderer *html.Renderer) Option {
	return func(o *Orchestrator) {
		o.renderer = renderer
	}
}

// WithTemplateDir overrides built-in templates with the ones found in dir.
func WithTemplateDir(dir string) Option {
	return func(o *Orchestrator) {
		o.htmlOptions = append(o.htmlOptions, html.WithTemplateDir(dir))
	}
}

// WithThemeSelector resolves CSS classes through a go-theme selector.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(o *Orchestrator) {
		o.htmlOptions = append(o.htmlOptions, html.WithThemeSelector(selector, name, variant))
	}
}

// WithLogger routes binding diagnostics such as rejected values.
func WithLogger(logger *log.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithBindOptions appends options to every binding a session creates, after
// the options derived from the form document.
func WithBindOptions(opts ...bind.Option) Option {
	return func(o *Orchestrator) {
		o.bindOptions = append(o.bindOptions, opts...)
	}
}

// Orchestrator builds form sessions. Missing dependencies are initialised
// with the built-in implementations.
type Orchestrator struct {
	loader      *openapi.Loader
	registry    *pipeline.Registry
	renderer    *html.Renderer
	htmlOptions []html.Option
	logger      *log.Logger
	bindOptions []bind.Option
	initErr     error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = openapi.NewLoader()
	}
	if o.registry == nil {
		o.registry = pipeline.NewRegistry()
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard, "", 0)
	}
	if o.renderer == nil {
		renderer, err := html.NewRenderer(o.htmlOptions...)
		if err != nil {
			o.initErr = fmt.Errorf("orchestrator: html renderer: %w", err)
			return
		}
		o.renderer = renderer
	}
}

// Registry returns the registry sessions resolve names against.
func (o *Orchestrator) Registry() *pipeline.Registry {
	return o.registry
}

// Request selects the form to work with. Exactly one of Form, FormPath,
// Document or Source is used, in that order of precedence. Ref names the
// component schema or operation for OpenAPI requests.
type Request struct {
	Form     *formspec.Form
	FormPath string
	Document *openapi.Document
	Source   openapi.Source
	Ref      string
}

// Form resolves the form a request describes.
func (o *Orchestrator) Form(ctx context.Context, req Request) (formspec.Form, error) {
	switch {
	case req.Form != nil:
		return formspec.Normalize(*req.Form)
	case req.FormPath != "":
		return formspec.LoadFile(req.FormPath)
	}

	doc := req.Document
	if doc == nil {
		if req.Source == nil {
			return formspec.Form{}, errors.New("orchestrator: request needs a form, form path or OpenAPI source")
		}
		loaded, err := o.loader.Load(ctx, req.Source)
		if err != nil {
			return formspec.Form{}, err
		}
		doc = loaded
	}
	if req.Ref == "" {
		return formspec.Form{}, errors.New("orchestrator: OpenAPI requests need a schema or operation ref")
	}
	return doc.Form(req.Ref)
}

// Session resolves the request and opens a session over store. A nil store
// is seeded from the form's initial values.
func (o *Orchestrator) Session(ctx context.Context, req Request, store *state.Store) (*Session, error) {
	if o.initErr != nil {
		return nil, o.initErr
	}
	form, err := o.Form(ctx, req)
	if err != nil {
		return nil, err
	}
	return o.NewSession(form, store)
}

// Generate renders the requested form as HTML over its initial values.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	session, err := o.Session(ctx, req, nil)
	if err != nil {
		return nil, err
	}
	out, err := session.RenderHTML()
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}
