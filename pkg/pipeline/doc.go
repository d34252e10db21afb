// Package pipeline holds the pure value transformations shared by every field
// binding: Parse maps an element input (a raw value, a target value, or a
// target checked flag) onto a candidate state value, IsAcceptable decides
// whether that candidate may be committed, and Format maps a state value back
// onto what the element displays.
//
// Variants select the value domain. The numeric variant formats integer parts
// with a thousands separator and parses the separator back out, so that
// Parse(Format(x)) == x for well formed numeric strings under the default
// separators. The literals "-", "." and "0." are kept as in-progress typing
// states on both paths.
//
// Config carries the caller-facing knobs. Config.Resolve lifts every default
// into a fully populated Settings value before any transformation runs.
package pipeline
