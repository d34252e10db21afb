package html_test

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-inputprops/pkg/bind"
	"github.com/goliatone/go-inputprops/pkg/elements/html"
	"github.com/goliatone/go-inputprops/pkg/formerrors"
	"github.com/goliatone/go-inputprops/pkg/inputprops"
	"github.com/goliatone/go-inputprops/pkg/pipeline"
	"github.com/goliatone/go-inputprops/pkg/state"
)

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     int
}

func (s *stubThemeSelector) Select(_, _ string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls++
	return s.selection, s.err
}

func bindInput(t *testing.T, store *state.Store, errs *formerrors.Handler, in *html.Input, opts ...bind.Option) {
	t.Helper()
	wrapper := inputprops.InputProps{Container: store, Field: in.Name, Errors: errs, Options: opts}
	if err := wrapper.Apply(in); err != nil {
		t.Fatalf("apply %s: %v", in.Name, err)
	}
}

func TestRenderer_RenderInput(t *testing.T) {
	store := state.NewStore(map[string]any{"amount": "1234.5"})
	errs := formerrors.New()
	in := &html.Input{Name: "amount", Label: "Amount <script>alert(1)</script><em>due</em>", Help: "In euros", Placeholder: "0.00"}
	bindInput(t, store, errs, in, bind.WithVariant(pipeline.VariantNumeric))

	r, err := html.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	out, err := r.RenderInput(in)
	if err != nil {
		t.Fatalf("RenderInput: %v", err)
	}

	for _, want := range []string{
		`<label for="amount">Amount <em>due</em></label>`,
		`type="text" id="amount" name="amount" value="1,234.5" class="ip-input"`,
		`placeholder="0.00"`,
		`<p id="amount-helper" class="ip-helper">In euros</p>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<script>") || strings.Contains(out, "aria-invalid") {
		t.Fatalf("unexpected markup:\n%s", out)
	}
}

func TestRenderer_ErrorStateUsesThemeTokens(t *testing.T) {
	store := state.NewStore(map[string]any{"email": "<b>ada</b>"})
	errs := formerrors.New()
	errs.Error("email", "Email is <strong>invalid</strong>")

	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:   "acme",
			Tokens: map[string]string{html.TokenInputError: "field is-danger", html.TokenHelperError: "help is-danger"},
			Variants: map[string]theme.Variant{
				"dark": {Tokens: map[string]string{html.TokenHelperError: "help is-danger is-dark"}},
			},
		},
	}}

	in := &html.Input{Name: "email", Label: "Email"}
	bindInput(t, store, errs, in)

	r, err := html.NewRenderer(html.WithThemeSelector(selector, "acme", "dark"))
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	out, err := r.RenderInput(in)
	if err != nil {
		t.Fatalf("RenderInput: %v", err)
	}

	for _, want := range []string{
		`value="&lt;b&gt;ada&lt;/b&gt;" class="field is-danger" aria-invalid="true" aria-describedby="email-helper"`,
		`<p id="email-helper" class="help is-danger is-dark">Email is <strong>invalid</strong></p>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if selector.calls != 1 {
		t.Fatalf("expected one theme lookup, got %d", selector.calls)
	}

	failing := &stubThemeSelector{err: errors.New("unknown theme")}
	r, err = html.NewRenderer(html.WithThemeSelector(failing, "missing", ""))
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if _, err := r.RenderInput(in); err == nil {
		t.Fatalf("expected theme selection error")
	}
}

func TestRenderer_RenderForm(t *testing.T) {
	store := state.NewStore(map[string]any{"name": "Ada", "agree": true, "secret": "hunter2"})
	errs := formerrors.New()
	errs.Error("", "Please review the form")

	name := &html.Input{Name: "name", Label: "Name", Required: true}
	agree := &html.Input{Name: "agree", Label: "I agree"}
	secret := &html.Input{Name: "secret", Label: "Password", Type: html.TypePassword}
	for _, in := range []*html.Input{name, agree, secret} {
		bindInput(t, store, errs, in)
	}

	r, err := html.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	out, err := r.RenderForm(html.Form{
		ID:     "signup",
		Action: "/signup",
		Errors: errs.FormErrors(),
		Hidden: []html.HiddenField{
			html.VersionField("version", 3),
			html.CSRFToken("_csrf", "stale"),
			html.CSRFToken("_csrf", "t<k>"),
			html.Hidden(" ", "dropped"),
		},
		Inputs: []*html.Input{name, agree, secret},
	})
	if err != nil {
		t.Fatalf("RenderForm: %v", err)
	}

	for _, want := range []string{
		`<form id="signup" method="post" action="/signup" novalidate>`,
		`<input type="hidden" name="_csrf" value="t&lt;k&gt;">
<input type="hidden" name="version" value="3">
<ul class="ip-form-errors" role="alert">`,
		`<li>Please review the form</li>`,
		`id="signup-name" name="name" value="Ada"`,
		` required`,
		`<input type="checkbox" id="signup-agree" name="agree" value="on" class="ip-input" checked>`,
		`type="password" id="signup-secret" name="secret" value=""`,
		`<button type="submit">Submit</button>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderer_Unbound(t *testing.T) {
	r, err := html.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if _, err := r.RenderInput(&html.Input{Name: "x"}); !errors.Is(err, html.ErrUnbound) {
		t.Fatalf("expected ErrUnbound, got %v", err)
	}
	if err := (&html.Input{Name: "x"}).Submit(context.Background(), url.Values{}); !errors.Is(err, html.ErrUnbound) {
		t.Fatalf("expected ErrUnbound on submit, got %v", err)
	}
}

func TestInput_Submit(t *testing.T) {
	store := state.NewStore(map[string]any{"amount": "", "agree": true, "notes": "keep"})
	amount := &html.Input{Name: "amount"}
	agree := &html.Input{Name: "agree"}
	notes := &html.Input{Name: "notes"}
	bindInput(t, store, nil, amount, bind.WithVariant(pipeline.VariantNumeric))
	bindInput(t, store, nil, agree)
	bindInput(t, store, nil, notes)

	form := url.Values{"amount": {"1,250.75"}}
	ctx := context.Background()
	for _, in := range []*html.Input{amount, agree, notes} {
		if err := in.Submit(ctx, form); err != nil {
			t.Fatalf("submit %s: %v", in.Name, err)
		}
	}

	if got, _ := store.Get("amount"); got != "1250.75" {
		t.Fatalf("amount = %#v", got)
	}
	if got, _ := store.Get("agree"); got != false {
		t.Fatalf("missing checkbox key should uncheck, got %#v", got)
	}
	if got, _ := store.Get("notes"); got != "keep" {
		t.Fatalf("missing text key should not write, got %#v", got)
	}
}
