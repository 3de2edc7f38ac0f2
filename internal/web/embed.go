// Package web provides the embedded single-page UI.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFiles embed.FS

// FileSystem returns the embedded static files with "static" as root.
func FileSystem() (fs.FS, error) {
	return fs.Sub(staticFiles, "static")
}

// Handler serves the embedded UI. The page is a single index.html; unknown
// paths fall back to it so a reload anywhere lands on the app.
func Handler() (http.Handler, error) {
	staticFS, err := FileSystem()
	if err != nil {
		return nil, err
	}
	index, err := fs.ReadFile(staticFS, "index.html")
	if err != nil {
		return nil, err
	}
	fileServer := http.FileServer(http.FS(staticFS))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			if _, err := fs.Stat(staticFS, r.URL.Path[1:]); err == nil {
				fileServer.ServeHTTP(w, r)
				return
			}
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(index)
	}), nil
}
