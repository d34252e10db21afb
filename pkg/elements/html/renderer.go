package html

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-inputprops/pkg/pipeline"
	"github.com/goliatone/go-inputprops/pkg/render/template"
	"github.com/goliatone/go-inputprops/pkg/render/template/gotemplate"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithEngine replaces the template engine. The engine must provide the
// "input" and "form" templates.
func WithEngine(engine template.TemplateRenderer) Option {
	return func(r *Renderer) {
		r.engine = engine
	}
}

// WithTemplateDir loads templates from dir, falling back to the built-in
// ones for names dir does not provide.
func WithTemplateDir(dir string) Option {
	return func(r *Renderer) {
		r.templateDir = strings.TrimSpace(dir)
	}
}

// WithThemeSelector resolves CSS classes from the tokens of the selected
// theme and variant.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(r *Renderer) {
		r.selector = selector
		r.themeName = name
		r.themeVariant = variant
	}
}

// Renderer renders bound inputs.
type Renderer struct {
	engine       template.TemplateRenderer
	templateDir  string
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
}

// NewRenderer builds a renderer backed by the pongo2 engine unless
// WithEngine supplies another.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.engine == nil {
		engineOpts := []gotemplate.Option{gotemplate.WithFS(Templates())}
		if r.templateDir != "" {
			engineOpts = append(engineOpts, gotemplate.WithBaseDir(r.templateDir))
		}
		engine, err := gotemplate.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("html: template engine: %w", err)
		}
		r.engine = engine
	}
	return r, nil
}

// Form groups inputs for RenderForm.
type Form struct {
	ID          string
	Action      string
	Method      string
	SubmitLabel string
	Errors      []string
	Hidden      []HiddenField
	Inputs      []*Input
}

// RenderInput renders a single bound input.
func (r *Renderer) RenderInput(in *Input) (string, error) {
	classes, err := r.classes()
	if err != nil {
		return "", err
	}
	return r.renderInput(in, "", classes)
}

// RenderForm renders every input inside a form element, preceded by the
// form-level error messages.
func (r *Renderer) RenderForm(form Form) (string, error) {
	classes, err := r.classes()
	if err != nil {
		return "", err
	}

	fields := make([]any, 0, len(form.Inputs))
	for _, in := range form.Inputs {
		rendered, err := r.renderInput(in, form.ID, classes)
		if err != nil {
			return "", err
		}
		fields = append(fields, rendered)
	}

	errs := make([]any, 0, len(form.Errors))
	for _, message := range form.Errors {
		if message = sanitizeText(message); message != "" {
			errs = append(errs, message)
		}
	}

	method := strings.ToLower(strings.TrimSpace(form.Method))
	if method == "" {
		method = "post"
	}
	submit := form.SubmitLabel
	if submit == "" {
		submit = "Submit"
	}

	out, err := r.engine.RenderTemplate("form", map[string]any{
		"id":          form.ID,
		"action":      form.Action,
		"method":      method,
		"submitLabel": submit,
		"errors":      errs,
		"errorsClass": classes.FormErrors,
		"hidden":      sortedHidden(form.Hidden),
		"fields":      fields,
	})
	if err != nil {
		return "", fmt.Errorf("html: render form %q: %w", form.ID, err)
	}
	return out, nil
}

func (r *Renderer) renderInput(in *Input, formID string, classes Classes) (string, error) {
	if in == nil {
		return "", ErrUnbound
	}
	props, ok := in.Props()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnbound, in.Name)
	}

	inputType := in.Type
	if inputType == "" {
		inputType = TypeText
	}
	value := pipeline.Stringify(props.Value)
	if inputType == TypePassword {
		value = ""
	}

	helper := in.Help
	inputClass, helperClass := classes.Input, classes.Helper
	if props.Error {
		inputClass, helperClass = classes.InputError, classes.HelperError
		if props.HelperText != "" {
			helper = props.HelperText
		}
	}
	label := in.Label
	if label == "" {
		label = in.Name
	}

	out, err := r.engine.RenderTemplate("input", map[string]any{
		"formID":      formID,
		"name":        in.Name,
		"type":        inputType,
		"label":       sanitizeText(label),
		"value":       value,
		"checkbox":    props.Checkbox,
		"checked":     props.Checked,
		"required":    in.Required,
		"placeholder": in.Placeholder,
		"invalid":     props.Error,
		"helper":      sanitizeText(helper),
		"inputClass":  inputClass,
		"helperClass": helperClass,
	})
	if err != nil {
		return "", fmt.Errorf("html: render input %q: %w", in.Name, err)
	}
	return out, nil
}
