package uniform

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl templates/inputs/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded template bundle so callers can copy or
// override individual templates.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

//go:embed assets/*.css assets/*.js
var embeddedAssets embed.FS

// AssetsFS exposes the stylesheets and script Setup links to. Serve it under
// "<media url>uni_form/".
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
