package openapi_test

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
)

func mustSchema(t *testing.T) *openapi3.Schema {
	t.Helper()
	return openapi3.NewObjectSchema().WithProperty("firstName", openapi3.NewStringSchema())
}
