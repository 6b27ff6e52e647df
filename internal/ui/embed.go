package ui

import (
	"bytes"
	"embed"
	"io/fs"
	"net/http"
	"time"
)

//go:embed dist/*
var distFS embed.FS

// Handler returns an http.Handler that serves the embedded dashboard.
// Unknown paths fall back to index.html so client-side routing keeps working.
func Handler() http.Handler {
	sub, _ := fs.Sub(distFS, "dist")
	fileServer := http.FileServer(http.FS(sub))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if path == "" || path == "/" {
			path = "/index.html"
		}
		fsPath := path
		if len(fsPath) > 0 && fsPath[0] == '/' {
			fsPath = fsPath[1:]
		}
		f, err := sub.Open(fsPath)
		if err != nil {
			// Fallback with 200 so client-side routes render (no redirect).
			// http.ServeFileFS requires Go 1.22; serve the same bytes directly.
			b, rerr := fs.ReadFile(sub, "index.html")
			if rerr != nil {
				http.NotFound(w, r)
				return
			}
			http.ServeContent(w, r, "index.html", time.Time{}, bytes.NewReader(b))
			return
		}
		_ = f.Close()
		fileServer.ServeHTTP(w, r)
	})
}
