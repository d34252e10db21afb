package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-inputprops/pkg/pipeline"
)

// ExtensionKey is the vendor extension read from schema properties.
const ExtensionKey = "x-inputprops"

// Extension overrides the settings derived from a property schema. Unknown
// keys are rejected.
//
//	x-inputprops:
//	  variant: numericString
//	  config: {maxIntegerLength: 4}
//	  elementModifiers: ["suffix: kg"]
//	  updatable: true
type Extension struct {
	Label            string           `json:"label,omitempty"`
	Help             string           `json:"help,omitempty"`
	Input            string           `json:"input,omitempty"`
	Variant          pipeline.Variant `json:"variant,omitempty"`
	Config           pipeline.Config  `json:"config,omitempty"`
	Restrictors      []string         `json:"restrictors,omitempty"`
	ElementModifiers []string         `json:"elementModifiers,omitempty"`
	StateModifiers   []string         `json:"stateModifiers,omitempty"`
	Updatable        bool             `json:"updatable,omitempty"`
	Order            int              `json:"order,omitempty"`
	Skip             bool             `json:"skip,omitempty"`
}

func readExtension(extensions map[string]any) (Extension, error) {
	var ext Extension
	value, ok := extensions[ExtensionKey]
	if !ok || value == nil {
		return ext, nil
	}

	var raw []byte
	switch v := value.(type) {
	case json.RawMessage:
		raw = v
	case []byte:
		raw = v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ext, fmt.Errorf("encode %s: %w", ExtensionKey, err)
		}
		raw = encoded
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ext); err != nil {
		return ext, fmt.Errorf("decode %s: %w", ExtensionKey, err)
	}
	return ext, nil
}
