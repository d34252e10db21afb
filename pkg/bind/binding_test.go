package bind_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-inputprops/pkg/bind"
	"github.com/goliatone/go-inputprops/pkg/pipeline"
	"github.com/goliatone/go-inputprops/pkg/state"
)

func TestBind_NumericScenario(t *testing.T) {
	store := state.NewStore(map[string]any{"amount": nil})
	field, err := bind.New(store, "amount", bind.WithVariant(pipeline.VariantNumeric))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if got := field.Props().Value; got != "" {
		t.Fatalf("initial display = %#v, want empty string", got)
	}

	if err := field.Props().OnChange(context.Background(), bind.TargetValue("1234567.5")); err != nil {
		t.Fatalf("OnChange: %v", err)
	}
	if got, _ := store.Get("amount"); got != "1234567.5" {
		t.Fatalf("stored value = %#v", got)
	}
	if got := field.Props().Value; got != "1,234,567.5" {
		t.Fatalf("display after change = %#v", got)
	}

	// Formatted input from the element parses back to the same state value.
	if err := field.OnChange(context.Background(), bind.TargetValue("1,234,567.5")); err != nil {
		t.Fatalf("OnChange formatted: %v", err)
	}
	if got, _ := store.Get("amount"); got != "1234567.5" {
		t.Fatalf("stored value after formatted input = %#v", got)
	}
}

func TestBind_IdempotentChangeSkipsHooks(t *testing.T) {
	store := state.NewStore(map[string]any{"name": "Ada"})
	var preCalls, postCalls, writes int
	store.Subscribe("name", func(state.Change) { writes++ })

	props, err := bind.Bind(store, "name",
		bind.WithPreCommit(func(context.Context, bind.Change) (bind.Decision, error) {
			preCalls++
			return bind.DecisionNone, nil
		}),
		bind.WithPostCommit(func(bind.Change) { postCalls++ }),
	)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}

	if err := props.OnChange(context.Background(), bind.TargetValue("Ada")); err != nil {
		t.Fatalf("OnChange: %v", err)
	}
	if preCalls != 0 || postCalls != 0 || writes != 0 {
		t.Fatalf("unchanged value should skip everything: pre=%d post=%d writes=%d", preCalls, postCalls, writes)
	}

	if err := props.OnChange(context.Background(), bind.Input{}); err != nil {
		t.Fatalf("zero input should be a no-op, got %v", err)
	}
	if writes != 0 {
		t.Fatalf("zero input wrote to the store")
	}
}

func TestBind_ValidationRejectionIsSilent(t *testing.T) {
	store := state.NewStore(map[string]any{"qty": "3"})
	var logs bytes.Buffer
	props := bind.MustBind(store, "qty",
		bind.WithVariant(pipeline.VariantNumeric),
		bind.WithConfig(pipeline.Config{OnlyPositives: true}),
		bind.WithLogger(log.New(&logs, "", 0)),
	)

	if err := props.OnChange(context.Background(), bind.TargetValue("-5")); err != nil {
		t.Fatalf("rejection should not error: %v", err)
	}
	if got, _ := store.Get("qty"); got != "3" {
		t.Fatalf("stored value changed to %#v", got)
	}
	if !strings.Contains(logs.String(), `"qty" rejected`) {
		t.Fatalf("expected rejection to be logged, got %q", logs.String())
	}
}

func TestBind_PreCommitVeto(t *testing.T) {
	store := state.NewStore(map[string]any{"name": "Ada"})
	postCalled := false
	props := bind.MustBind(store, "name",
		bind.WithPreCommit(func(context.Context, bind.Change) (bind.Decision, error) {
			return bind.DecisionReject, nil
		}),
		bind.WithPostCommit(func(bind.Change) { postCalled = true }),
	)

	if err := props.OnChange(context.Background(), bind.TargetValue("Grace")); err != nil {
		t.Fatalf("veto should not error: %v", err)
	}
	if got, _ := store.Get("name"); got != "Ada" || postCalled {
		t.Fatalf("veto did not cancel commit: value=%v post=%v", got, postCalled)
	}
}

func TestBind_PreCommitErrorAborts(t *testing.T) {
	store := state.NewStore(map[string]any{"name": "Ada"})
	boom := errors.New("boom")
	props := bind.MustBind(store, "name",
		bind.WithPreCommit(func(context.Context, bind.Change) (bind.Decision, error) {
			return bind.DecisionAccept, boom
		}),
	)

	err := props.OnChange(context.Background(), bind.TargetValue("Grace"))
	if !errors.Is(err, boom) {
		t.Fatalf("expected hook error, got %v", err)
	}
	if got, _ := store.Get("name"); got != "Ada" {
		t.Fatalf("hook error should abort the write, got %v", got)
	}
}

func TestBind_AsyncPreCommit(t *testing.T) {
	store := state.NewStore(map[string]any{"name": "Ada"})
	release := make(chan bind.Decision)
	props := bind.MustBind(store, "name",
		bind.WithPreCommit(func(ctx context.Context, _ bind.Change) (bind.Decision, error) {
			select {
			case d := <-release:
				return d, nil
			case <-ctx.Done():
				return bind.DecisionNone, nil
			}
		}),
	)

	done := make(chan error, 1)
	go func() { done <- props.OnChange(context.Background(), bind.TargetValue("Grace")) }()

	if got, _ := store.Get("name"); got != "Ada" {
		t.Fatalf("value committed before hook resolved: %v", got)
	}
	release <- bind.DecisionAccept
	if err := <-done; err != nil {
		t.Fatalf("OnChange: %v", err)
	}
	if got, _ := store.Get("name"); got != "Grace" {
		t.Fatalf("value not committed after accept: %v", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := props.OnChange(ctx, bind.TargetValue("Linus")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if got, _ := store.Get("name"); got != "Grace" {
		t.Fatalf("cancelled change committed: %v", got)
	}
}

func TestBind_PostCommitReceivesChange(t *testing.T) {
	store := state.NewStore(map[string]any{"name": "Ada"})
	var got []bind.Change
	props := bind.MustBind(store, "name",
		bind.WithMetadata("profile"),
		bind.WithConfig(pipeline.Config{StateModifiers: []pipeline.Modifier{
			func(v any) any { return strings.TrimSpace(pipeline.Stringify(v)) },
		}}),
		bind.WithPostCommit(func(c bind.Change) {
			if current, _ := store.Get("name"); current != c.Value {
				t.Errorf("post-commit ran before the write")
			}
			got = append(got, c)
		}),
	)

	if err := props.OnChange(context.Background(), bind.TargetValue("  Grace ")); err != nil {
		t.Fatalf("OnChange: %v", err)
	}

	want := []bind.Change{{Field: "name", Previous: "Ada", Value: "Grace", Metadata: "profile"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("post-commit changes mismatch (-want +got):\n%s", diff)
	}
}

func TestBind_UpdatableWriteThrough(t *testing.T) {
	wrapper := state.NewUpdatable("10")
	store := state.NewStore(map[string]any{"price": wrapper})

	field, err := bind.New(store, "price", bind.WithVariant(pipeline.VariantNumeric))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !field.Wrapped() {
		t.Fatalf("binding should go through the wrapper")
	}

	if err := field.OnChange(context.Background(), bind.TargetValue("1200")); err != nil {
		t.Fatalf("OnChange: %v", err)
	}
	if wrapper.Value() != "1200" || !wrapper.Updated() {
		t.Fatalf("wrapper not updated: %v %v", wrapper.Value(), wrapper.Updated())
	}
	if got, _ := store.Get("price"); got != wrapper {
		t.Fatalf("container field should still hold the wrapper")
	}
	if got := field.Props().Value; got != "1,200" {
		t.Fatalf("display = %#v", got)
	}
}

func TestBindUpdatable(t *testing.T) {
	wrapper := state.NewUpdatable(false)
	props, err := bind.BindUpdatable(wrapper)
	if err != nil {
		t.Fatalf("BindUpdatable: %v", err)
	}
	if !props.Checkbox || props.Checked {
		t.Fatalf("bool wrapper should bind as an unchecked checkbox: %+v", props)
	}

	if err := props.OnChange(context.Background(), bind.TargetChecked(true)); err != nil {
		t.Fatalf("OnChange: %v", err)
	}
	if wrapper.Value() != true || !wrapper.Updated() {
		t.Fatalf("wrapper not updated")
	}

	if _, err := bind.BindUpdatable(nil); !errors.Is(err, bind.ErrNilUpdatable) {
		t.Fatalf("expected ErrNilUpdatable, got %v", err)
	}
}

func TestBind_NotObservable(t *testing.T) {
	type profile struct {
		Name  string `bind:"name"`
		Notes string
	}
	c, err := state.FromStruct(&profile{})
	if err != nil {
		t.Fatalf("FromStruct: %v", err)
	}

	_, err = bind.Bind(c, "Notes")
	var cfgErr *bind.ConfigError
	if !errors.As(err, &cfgErr) || !errors.Is(err, bind.ErrNotObservable) || cfgErr.Field != "Notes" {
		t.Fatalf("expected not observable config error, got %v", err)
	}

	if _, err := bind.Bind(state.NewStore(nil), "missing"); !errors.Is(err, bind.ErrNotObservable) {
		t.Fatalf("unknown store path should not be observable, got %v", err)
	}
	if _, err := bind.Bind(nil, "name"); !errors.Is(err, state.ErrNilContainer) {
		t.Fatalf("expected nil container error, got %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("MustBind should panic")
		}
	}()
	bind.MustBind(c, "Notes")
}

func TestBind_CheckboxMismatch(t *testing.T) {
	store := state.NewStore(map[string]any{"agree": false, "name": ""})

	agree := bind.MustBind(store, "agree")
	if !agree.Checkbox {
		t.Fatalf("bool field should be inferred as checkbox")
	}
	err := agree.OnChange(context.Background(), bind.TargetValue("on"))
	if !errors.Is(err, pipeline.ErrExpectedCheckbox) {
		t.Fatalf("expected ErrExpectedCheckbox, got %v", err)
	}
	if err := agree.OnChange(context.Background(), bind.TargetChecked(true)); err != nil {
		t.Fatalf("checked change: %v", err)
	}
	if got := bind.MustBind(store, "agree"); !got.Checked {
		t.Fatalf("checkbox should now be checked")
	}

	name := bind.MustBind(store, "name")
	var cfgErr *bind.ConfigError
	err = name.OnChange(context.Background(), bind.TargetChecked(true))
	if !errors.As(err, &cfgErr) || !errors.Is(err, pipeline.ErrUnexpectedCheckbox) {
		t.Fatalf("expected ErrUnexpectedCheckbox config error, got %v", err)
	}

	forced := bind.MustBind(store, "name", bind.WithConfig(pipeline.Config{IsCheckbox: pipeline.Bool(true)}))
	if !forced.Checkbox {
		t.Fatalf("explicit checkbox config should win over inference")
	}
}

func TestBind_RawInputBypassesParse(t *testing.T) {
	store := state.NewStore(map[string]any{"amount": ""})
	props := bind.MustBind(store, "amount", bind.WithVariant(pipeline.VariantNumeric))

	if err := props.OnChange(context.Background(), bind.RawValue(1500)); err != nil {
		t.Fatalf("OnChange: %v", err)
	}
	if got, _ := store.Get("amount"); got != 1500 {
		t.Fatalf("raw input should be stored as is, got %#v", got)
	}
	if got := bind.MustBind(store, "amount", bind.WithVariant(pipeline.VariantNumeric)).Value; got != "1,500" {
		t.Fatalf("display = %#v", got)
	}
}

func TestFieldProps_SharedDefaults(t *testing.T) {
	store := state.NewStore(map[string]any{"price": "", "tax": ""})
	props := bind.FieldProps(store,
		bind.WithVariant(pipeline.VariantNumeric),
		bind.WithConfig(pipeline.Config{MaxDecimalPlaces: pipeline.Int(2)}),
	)

	price, err := props("price")
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	tax, err := props("tax", bind.WithConfig(pipeline.Config{MaxDecimalPlaces: pipeline.Int(0)}))
	if err != nil {
		t.Fatalf("tax: %v", err)
	}

	ctx := context.Background()
	if err := price.OnChange(ctx, bind.TargetValue("9.99")); err != nil {
		t.Fatalf("price change: %v", err)
	}
	if err := tax.OnChange(ctx, bind.TargetValue("0.5")); err != nil {
		t.Fatalf("tax change: %v", err)
	}

	want := map[string]any{"price": "9.99", "tax": ""}
	if diff := cmp.Diff(want, store.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	upd := bind.UpdatableProps(bind.WithVariant(pipeline.VariantNumeric))
	wrapped, err := upd(state.NewUpdatable("2500"))
	if err != nil || wrapped.Value != "2,500" {
		t.Fatalf("UpdatableProps = %#v, %v", wrapped.Value, err)
	}
}

type ledgerLine struct {
	Amount   float64 `bind:"amount"`
	Quantity int     `bind:"quantity"`
}

func TestBind_NumericStructFields(t *testing.T) {
	line := &ledgerLine{Amount: 1234.5, Quantity: 2}
	container, err := state.FromStruct(line)
	if err != nil {
		t.Fatalf("FromStruct: %v", err)
	}
	amount, err := bind.New(container, "amount", bind.WithVariant(pipeline.VariantNumeric))
	if err != nil {
		t.Fatalf("New amount: %v", err)
	}
	quantity, err := bind.New(container, "quantity",
		bind.WithVariant(pipeline.VariantNumeric),
		bind.WithConfig(pipeline.Config{MaxDecimalPlaces: pipeline.Int(0)}),
	)
	if err != nil {
		t.Fatalf("New quantity: %v", err)
	}

	if got := amount.Props().Value; got != "1,234.5" {
		t.Fatalf("display = %#v", got)
	}

	ctx := context.Background()
	steps := []struct {
		field *bind.Field
		typed string
		want  ledgerLine
	}{
		{amount, "1,234.5", ledgerLine{Amount: 1234.5, Quantity: 2}},
		{amount, "99", ledgerLine{Amount: 99, Quantity: 2}},
		{amount, "-", ledgerLine{Amount: 99, Quantity: 2}},
		{amount, "1,000.25", ledgerLine{Amount: 1000.25, Quantity: 2}},
		{quantity, "12", ledgerLine{Amount: 1000.25, Quantity: 12}},
		{quantity, "12.5", ledgerLine{Amount: 1000.25, Quantity: 12}},
		{amount, "", ledgerLine{Amount: 0, Quantity: 12}},
	}
	for _, step := range steps {
		if err := step.field.OnChange(ctx, bind.TargetValue(step.typed)); err != nil {
			t.Fatalf("OnChange(%q): %v", step.typed, err)
		}
		if diff := cmp.Diff(step.want, *line); diff != "" {
			t.Fatalf("after %q (-want +got):\n%s", step.typed, diff)
		}
	}

	if got := quantity.Props().Value; got != "12" {
		t.Fatalf("quantity display = %#v", got)
	}
}
