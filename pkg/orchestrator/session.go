package orchestrator

import (
	"context"
	"fmt"
	"net/url"

	"github.com/goliatone/go-inputprops/pkg/bind"
	"github.com/goliatone/go-inputprops/pkg/elements/html"
	"github.com/goliatone/go-inputprops/pkg/elements/tui"
	"github.com/goliatone/go-inputprops/pkg/formerrors"
	"github.com/goliatone/go-inputprops/pkg/formspec"
	"github.com/goliatone/go-inputprops/pkg/inputprops"
	"github.com/goliatone/go-inputprops/pkg/state"
)

// MaxPromptRounds bounds how often Prompt re-asks required fields left
// blank.
const MaxPromptRounds = 3

// Session binds every field of a form to one store and one error registry.
type Session struct {
	form     formspec.Form
	store    *state.Store
	errors   *formerrors.Handler
	renderer *html.Renderer
	options  map[string][]bind.Option
}

// NewSession resolves each field's bind options and opens a session over
// store, seeding a new one from the form when store is nil.
func (o *Orchestrator) NewSession(form formspec.Form, store *state.Store) (*Session, error) {
	if o.initErr != nil {
		return nil, o.initErr
	}
	if store == nil {
		seeded, err := form.NewStore()
		if err != nil {
			return nil, err
		}
		store = seeded
	}

	options := make(map[string][]bind.Option, len(form.Fields))
	for _, field := range form.Fields {
		opts, err := field.Options(o.registry)
		if err != nil {
			return nil, err
		}
		opts = append(opts, bind.WithLogger(o.logger))
		opts = append(opts, o.bindOptions...)
		if _, err := bind.New(store, field.Name, opts...); err != nil {
			return nil, fmt.Errorf("orchestrator: form %q: %w", form.ID, err)
		}
		options[field.Name] = opts
	}

	return &Session{
		form:     form,
		store:    store,
		errors:   formerrors.New(),
		renderer: o.renderer,
		options:  options,
	}, nil
}

// Form returns the session's form.
func (s *Session) Form() formspec.Form { return s.form }

// Store returns the bound store.
func (s *Session) Store() *state.Store { return s.store }

// Errors returns the session's error registry.
func (s *Session) Errors() *formerrors.Handler { return s.errors }

// Apply binds the named field and hands its props to el.
func (s *Session) Apply(name string, el inputprops.Element) error {
	opts, ok := s.options[name]
	if !ok {
		return fmt.Errorf("orchestrator: form %q has no field %q", s.form.ID, name)
	}
	wrapper := inputprops.InputProps{
		Container: s.store,
		Field:     name,
		Errors:    s.errors,
		Options:   opts,
	}
	return wrapper.Apply(el)
}

// Inputs builds one bound HTML input per field.
func (s *Session) Inputs() ([]*html.Input, error) {
	inputs := make([]*html.Input, 0, len(s.form.Fields))
	for _, field := range s.form.Fields {
		in := &html.Input{
			Name:     field.Name,
			Label:    field.DisplayLabel(),
			Help:     field.Help,
			Type:     htmlType(field),
			Required: field.Required,
		}
		if err := s.Apply(field.Name, in); err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// RenderHTML renders the whole form from current state, with hidden fields
// such as CSRF tokens emitted first.
func (s *Session) RenderHTML(hidden ...html.HiddenField) (string, error) {
	inputs, err := s.Inputs()
	if err != nil {
		return "", err
	}
	return s.renderer.RenderForm(html.Form{
		ID:     s.form.ID,
		Action: s.form.Action,
		Errors: s.errors.FormErrors(),
		Hidden: hidden,
		Inputs: inputs,
	})
}

// Submit feeds posted values through every binding, then records required
// field errors. It reports whether the form is complete.
func (s *Session) Submit(ctx context.Context, values url.Values) (bool, error) {
	inputs, err := s.Inputs()
	if err != nil {
		return false, err
	}
	s.errors.Reset()
	for _, in := range inputs {
		if err := in.Submit(ctx, values); err != nil {
			return false, err
		}
	}
	return s.form.CheckRequired(s.store, s.errors), nil
}

// Prompt asks every field through driver, then re-asks required fields left
// blank for up to MaxPromptRounds rounds. It reports whether the form ended
// complete.
func (s *Session) Prompt(ctx context.Context, driver tui.PromptDriver) (bool, error) {
	s.errors.Reset()
	pending := s.form.Names()
	for round := 0; round < MaxPromptRounds; round++ {
		for _, name := range pending {
			if err := s.ask(ctx, driver, name); err != nil {
				return false, err
			}
		}
		s.errors.Reset()
		if s.form.CheckRequired(s.store, s.errors) {
			return true, nil
		}
		pending = pending[:0]
		for _, entry := range s.errors.Entries() {
			pending = append(pending, entry.Field)
		}
	}
	return false, nil
}

func (s *Session) ask(ctx context.Context, driver tui.PromptDriver, name string) error {
	field, _ := s.form.Field(name)
	p := &tui.Prompt{
		Name:   field.Name,
		Label:  field.DisplayLabel(),
		Help:   field.Help,
		Secret: field.InputType() == formspec.InputPassword,
	}
	if err := s.Apply(name, p); err != nil {
		return err
	}
	if err := p.Ask(ctx, driver); err != nil {
		return fmt.Errorf("orchestrator: ask %q: %w", name, err)
	}
	return nil
}

// ApplyErrors maps a server error payload onto the form's fields.
func (s *Session) ApplyErrors(payload map[string][]string) formerrors.Mapping {
	return s.errors.ApplyPayload(s.form.Names(), payload)
}

// Values returns the store contents with updatable wrappers replaced by
// their values.
func (s *Session) Values() map[string]any {
	values, _ := unwrapAll(s.store.Values()).(map[string]any)
	return values
}

func unwrapAll(value any) any {
	switch v := value.(type) {
	case *state.Updatable:
		return unwrapAll(v.Value())
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = unwrapAll(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = unwrapAll(item)
		}
		return out
	default:
		return value
	}
}

// htmlType keeps numeric fields as text inputs so grouped values stay
// editable.
func htmlType(field formspec.Field) string {
	switch field.InputType() {
	case formspec.InputPassword:
		return html.TypePassword
	case formspec.InputCheckbox:
		return html.TypeCheckbox
	default:
		return html.TypeText
	}
}
