package pagetags

import (
	"io/fs"

	"github.com/goliatone/go-pagetags/pkg/uniform"
)

// RuntimeAssetsFS exposes the uni-form stylesheets and script referenced by
// the uni_form_setup tag so Go applications can serve them directly.
//
// Typical mount, with the default media URL:
//
//	mux.Handle("/static/uni_form/",
//	  http.StripPrefix("/static/uni_form/",
//	    http.FileServerFS(pagetags.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return uniform.AssetsFS()
}
