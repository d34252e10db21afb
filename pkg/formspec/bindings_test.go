package formspec_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-inputprops/pkg/bind"
	"github.com/goliatone/go-inputprops/pkg/formerrors"
	"github.com/goliatone/go-inputprops/pkg/formspec"
	"github.com/goliatone/go-inputprops/pkg/pipeline"
	"github.com/goliatone/go-inputprops/pkg/state"
)

func loadCheckout(t *testing.T) (formspec.Form, *state.Store) {
	t.Helper()
	form, err := formspec.LoadFile("testdata/checkout.yaml")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	store, err := form.NewStore()
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return form, store
}

func bindField(t *testing.T, form formspec.Form, store *state.Store, name string) bind.Props {
	t.Helper()
	field, ok := form.Field(name)
	if !ok {
		t.Fatalf("field %s missing", name)
	}
	opts, err := field.Options(pipeline.NewRegistry())
	if err != nil {
		t.Fatalf("options %s: %v", name, err)
	}
	props, err := bind.Bind(store, name, opts...)
	if err != nil {
		t.Fatalf("bind %s: %v", name, err)
	}
	return props
}

func TestForm_NewStore(t *testing.T) {
	_, store := loadCheckout(t)

	wantPaths := []string{"amount", "coupon", "owner", "owner.email", "terms"}
	if diff := cmp.Diff(wantPaths, store.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
	if got, _ := store.Get("terms"); got != false {
		t.Fatalf("checkbox should start unchecked, got %#v", got)
	}
	if got, _ := store.Get("coupon"); got == nil {
		t.Fatalf("updatable field should hold a wrapper")
	} else if _, ok := got.(*state.Updatable); !ok {
		t.Fatalf("coupon = %T", got)
	}
}

func TestField_OptionsDriveBinding(t *testing.T) {
	form, store := loadCheckout(t)
	ctx := context.Background()

	amount := bindField(t, form, store, "amount")
	if err := amount.OnChange(ctx, bind.TargetValue("1234.567")); err != nil {
		t.Fatalf("amount: %v", err)
	}
	if err := amount.OnChange(ctx, bind.TargetValue("1234.56")); err != nil {
		t.Fatalf("amount: %v", err)
	}
	if got := bindField(t, form, store, "amount").Value; got != "$ 1,234.56" {
		t.Fatalf("amount display = %#v", got)
	}

	coupon := bindField(t, form, store, "coupon")
	if err := coupon.OnChange(ctx, bind.TargetValue("save 10")); err != nil {
		t.Fatalf("coupon: %v", err)
	}
	if err := coupon.OnChange(ctx, bind.TargetValue("save10")); err != nil {
		t.Fatalf("coupon: %v", err)
	}
	raw, _ := store.Get("coupon")
	wrapper := raw.(*state.Updatable)
	if wrapper.Value() != "SAVE10" || !wrapper.Updated() {
		t.Fatalf("coupon wrapper = %#v updated=%v", wrapper.Value(), wrapper.Updated())
	}

	terms := bindField(t, form, store, "terms")
	if !terms.Checkbox {
		t.Fatalf("terms should bind as checkbox")
	}
}

func TestField_UnknownReference(t *testing.T) {
	field := formspec.Field{Name: "x", Restrictors: []string{"nope"}}
	if _, err := field.Options(nil); err == nil {
		t.Fatalf("expected unknown restrictor error")
	}
}

func TestForm_CheckRequired(t *testing.T) {
	form, store := loadCheckout(t)
	errs := formerrors.New()

	if form.CheckRequired(store, errs) {
		t.Fatalf("empty required fields should fail")
	}
	want := []formerrors.Entry{
		{Field: "amount", Message: "Amount is required"},
		{Field: "terms", Message: "I accept the terms is required"},
	}
	if diff := cmp.Diff(want, errs.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}

	errs.Reset()
	if err := store.Set("amount", "10"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set("terms", true); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !form.CheckRequired(store, errs) || errs.HasError() {
		t.Fatalf("filled form should pass")
	}
}
