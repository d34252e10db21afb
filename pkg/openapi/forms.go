package openapi

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-inputprops/pkg/formspec"
	"github.com/goliatone/go-inputprops/pkg/pipeline"
)

// Form resolves ref as a component schema name first and as an operation id
// second.
func (d *Document) Form(ref string) (formspec.Form, error) {
	if schema, err := d.Schema(ref); err == nil {
		return FormFromSchema(ref, schema)
	}
	op, err := d.Operation(ref)
	if err != nil {
		return formspec.Form{}, fmt.Errorf("%w: schema or operation %q", ErrNotFound, ref)
	}
	form, err := FormFromSchema(op.ID, op.Schema)
	if err != nil {
		return formspec.Form{}, err
	}
	form.Action = op.Path
	if form.Title == "" {
		form.Title = op.Summary
	}
	return form, nil
}

// Forms derives one form per operation request body.
func (d *Document) Forms() ([]formspec.Form, error) {
	ops := d.Operations()
	forms := make([]formspec.Form, 0, len(ops))
	for _, op := range ops {
		form, err := d.Form(op.ID)
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return forms, nil
}

// FormFromSchema derives a form from an object schema. Nested objects
// contribute dotted field names; arrays, read-only properties and properties
// marked skip are left out.
func FormFromSchema(id string, schema *openapi3.Schema) (formspec.Form, error) {
	if schema == nil {
		return formspec.Form{}, errors.New("openapi: schema is nil")
	}
	form := formspec.Form{ID: id, Title: schema.Title}
	if err := collectFields(&form.Fields, "", schema); err != nil {
		return formspec.Form{}, fmt.Errorf("openapi: form %q: %w", id, err)
	}
	return formspec.Normalize(form)
}

type property struct {
	name   string
	schema *openapi3.Schema
	ext    Extension
}

func collectFields(out *[]formspec.Field, prefix string, parent *openapi3.Schema) error {
	required := make(map[string]bool, len(parent.Required))
	for _, name := range parent.Required {
		required[name] = true
	}

	props := make([]property, 0, len(parent.Properties))
	for name, ref := range parent.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		ext, err := readExtension(ref.Value.Extensions)
		if err != nil {
			return fmt.Errorf("property %q: %w", joinName(prefix, name), err)
		}
		props = append(props, property{name: name, schema: ref.Value, ext: ext})
	}
	sort.Slice(props, func(i, j int) bool {
		if props[i].ext.Order != props[j].ext.Order {
			return props[i].ext.Order < props[j].ext.Order
		}
		return props[i].name < props[j].name
	})

	for _, prop := range props {
		s := prop.schema
		if s.ReadOnly || prop.ext.Skip {
			continue
		}
		name := joinName(prefix, prop.name)
		switch schemaType(s) {
		case openapi3.TypeArray:
			continue
		case openapi3.TypeObject:
			if len(s.Properties) > 0 {
				if err := collectFields(out, name, s); err != nil {
					return err
				}
			}
			continue
		}
		*out = append(*out, fieldFromProperty(name, prop, required[prop.name]))
	}
	return nil
}

func fieldFromProperty(name string, prop property, required bool) formspec.Field {
	s := prop.schema
	field := formspec.Field{
		Name:     name,
		Label:    firstNonEmpty(s.Title, humanize(prop.name)),
		Help:     s.Description,
		Required: required,
	}

	switch schemaType(s) {
	case openapi3.TypeBoolean:
		field.Input = formspec.InputCheckbox
		if v, ok := s.Default.(bool); ok {
			field.Initial = v
		}
	case openapi3.TypeInteger, openapi3.TypeNumber:
		field.Input = formspec.InputNumber
		field.Variant = pipeline.VariantNumeric
		if schemaType(s) == openapi3.TypeInteger {
			field.Config.MaxDecimalPlaces = pipeline.Int(0)
		}
		if s.Min != nil && *s.Min >= 0 {
			field.Config.OnlyPositives = true
		}
		if s.Max != nil && math.Abs(*s.Max) >= 1 {
			field.Config.MaxIntegerLength = pipeline.Int(len(strconv.FormatFloat(math.Trunc(math.Abs(*s.Max)), 'f', 0, 64)))
		}
		if s.Default != nil {
			field.Initial = pipeline.Stringify(s.Default)
		}
	default:
		if s.Format == "password" || s.WriteOnly {
			field.Input = formspec.InputPassword
		}
		if s.MaxLength != nil {
			field.Restrictors = append(field.Restrictors, "maxLength:"+strconv.FormatUint(*s.MaxLength, 10))
		}
		if s.Pattern != "" {
			field.Restrictors = append(field.Restrictors, "pattern:"+s.Pattern)
		}
		if v, ok := s.Default.(string); ok {
			field.Initial = v
		}
	}

	applyExtension(&field, prop.ext)
	return field
}

func applyExtension(field *formspec.Field, ext Extension) {
	if ext.Label != "" {
		field.Label = ext.Label
	}
	if ext.Help != "" {
		field.Help = ext.Help
	}
	if ext.Input != "" {
		field.Input = ext.Input
	}
	if ext.Variant != "" {
		field.Variant = ext.Variant
	}
	field.Config = field.Config.Merge(ext.Config)
	field.Restrictors = append(field.Restrictors, ext.Restrictors...)
	field.ElementModifiers = append(field.ElementModifiers, ext.ElementModifiers...)
	field.StateModifiers = append(field.StateModifiers, ext.StateModifiers...)
	if ext.Updatable {
		field.Updatable = true
	}
}

// schemaType returns the first non-null declared type. Schemas without a
// type but with properties are objects.
func schemaType(s *openapi3.Schema) string {
	if s.Type != nil {
		for _, t := range s.Type.Slice() {
			if t != openapi3.TypeNull {
				return t
			}
		}
	}
	if len(s.Properties) > 0 {
		return openapi3.TypeObject
	}
	return openapi3.TypeString
}

func joinName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// humanize turns "billing_address" or "firstName" into "Billing address" and
// "First name".
func humanize(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_' || r == '-':
			b.WriteRune(' ')
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
