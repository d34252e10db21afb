// Package openapi derives form documents from OpenAPI 3 schemas. Component
// schemas and operation request bodies become formspec.Form values whose
// fields carry the variant and configuration implied by each property's
// type and constraints. The x-inputprops extension overrides the derived
// settings per property.
package openapi
