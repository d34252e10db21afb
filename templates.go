package inputprops

import (
	"io/fs"

	"github.com/goliatone/go-inputprops/pkg/elements/html"
)

// EmbeddedTemplates exposes the built-in HTML templates so callers can copy
// or extend them for WithTemplateDir.
func EmbeddedTemplates() fs.FS {
	return html.Templates()
}
