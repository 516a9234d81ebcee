// Package web serves the prebuilt single-page application.
package web

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

const indexFile = "index.html"

// SPAHandler serves files from fsys and answers every other GET or HEAD with
// index.html so client-side routes resolve.
type SPAHandler struct {
	fsys  fs.FS
	files http.Handler
}

func NewSPAHandler(fsys fs.FS) *SPAHandler {
	return &SPAHandler{fsys: fsys, files: http.FileServerFS(fsys)}
}

func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name != "" && name != indexFile {
		if info, err := fs.Stat(h.fsys, name); err == nil && !info.IsDir() {
			h.files.ServeHTTP(w, r)
			return
		}
	}
	http.ServeFileFS(w, r, h.fsys, indexFile)
}
