package inputprops

import (
	"context"

	"github.com/goliatone/go-inputprops/pkg/formspec"
	"github.com/goliatone/go-inputprops/pkg/openapi"
)

// NewLoader constructs an OpenAPI loader.
func NewLoader(options ...openapi.LoaderOption) *openapi.Loader {
	return openapi.NewLoader(options...)
}

// ParseOpenAPI parses an in-memory OpenAPI document.
func ParseOpenAPI(ctx context.Context, raw []byte) (*openapi.Document, error) {
	return openapi.Parse(ctx, nil, raw)
}

// LoadForm reads a JSON or YAML form document.
func LoadForm(path string) (formspec.Form, error) {
	return formspec.LoadFile(path)
}
