package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrNotFound is returned when a schema or operation reference does not
// resolve.
var ErrNotFound = errors.New("openapi: not found")

// Document is a parsed and validated OpenAPI document.
type Document struct {
	source Source
	spec   *openapi3.T
}

// Operation is an operation with a request body that can back a form.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
	Schema  *openapi3.Schema
}

// Parse decodes a JSON or YAML OpenAPI document, resolving local references
// and validating it.
func Parse(ctx context.Context, src Source, raw []byte) (*Document, error) {
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	return &Document{source: src, spec: spec}, nil
}

// Location returns the document origin, empty for inline documents.
func (d *Document) Location() string {
	if d == nil || d.source == nil {
		return ""
	}
	return d.source.Location()
}

// SchemaNames lists the component schemas in sorted order.
func (d *Document) SchemaNames() []string {
	if d == nil || d.spec.Components == nil {
		return nil
	}
	names := make([]string, 0, len(d.spec.Components.Schemas))
	for name := range d.spec.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schema returns a component schema by name.
func (d *Document) Schema(name string) (*openapi3.Schema, error) {
	if d != nil && d.spec.Components != nil {
		if ref, ok := d.spec.Components.Schemas[name]; ok && ref != nil && ref.Value != nil {
			return ref.Value, nil
		}
	}
	return nil, fmt.Errorf("%w: schema %q", ErrNotFound, name)
}

// Operations lists operations whose request body carries a schema, sorted
// by id. Operations without an operationId are keyed "<method>:<path>".
func (d *Document) Operations() []Operation {
	if d == nil || d.spec.Paths == nil {
		return nil
	}
	var out []Operation
	for path, item := range d.spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			schema := requestSchema(op)
			if schema == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			out = append(out, Operation{
				ID:      id,
				Method:  strings.ToUpper(method),
				Path:    path,
				Summary: op.Summary,
				Schema:  schema,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Operation returns the operation with the given id.
func (d *Document) Operation(id string) (Operation, error) {
	for _, op := range d.Operations() {
		if op.ID == id {
			return op, nil
		}
	}
	return Operation{}, fmt.Errorf("%w: operation %q", ErrNotFound, id)
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}
