package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// fileServerHandler serves ui/static and renders the not found page through session for anything else.
func (app *application) fileServerHandler(session func(http.Handler) http.Handler) (http.Handler, error) {
	fileRoot, err := resolveUIDir("", "static")
	if err != nil {
		return nil, err
	}
	static := app.recoverPanic(app.logAndTraceRequest(secureHeaders(cacheForever(
		http.FileServer(http.Dir(fileRoot))))))
	notFound := session(http.HandlerFunc(app.notFound))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cleanPath := filepath.Clean(r.URL.Path)
		if strings.Contains(cleanPath, "..") {
			notFound.ServeHTTP(w, r)
			return
		}
		if stat, statErr := os.Stat(filepath.Join(fileRoot, cleanPath)); statErr != nil || stat.IsDir() {
			notFound.ServeHTTP(w, r)
			return
		}
		static.ServeHTTP(w, r)
	}), nil
}
