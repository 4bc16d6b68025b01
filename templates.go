package pagetags

import (
	"io/fs"

	"github.com/goliatone/go-pagetags/pkg/uniform"
)

// EmbeddedTemplates exposes the built-in form templates so callers can reuse
// or extend them without importing the uniform package directly.
func EmbeddedTemplates() fs.FS {
	return uniform.TemplatesFS()
}
