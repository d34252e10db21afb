// Package orchestrator wires form documents, OpenAPI schemas, bindings and
// elements into sessions that render HTML, apply submissions and drive
// terminal prompts.
package orchestrator
