package bind

import "github.com/goliatone/go-inputprops/pkg/pipeline"

// Input is the discriminated change event accepted by OnChange.
type Input = pipeline.Input

// RawValue builds an input assigned as is.
func RawValue(value any) Input { return pipeline.RawValue(value) }

// TargetValue builds the input of a non-checkbox element.
func TargetValue(value string) Input { return pipeline.TargetValue(value) }

// TargetChecked builds the input of a checkbox element.
func TargetChecked(checked bool) Input { return pipeline.TargetChecked(checked) }
