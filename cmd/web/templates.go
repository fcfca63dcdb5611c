package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/sdeery14/fitness-app-sub000/internal/contexthelpers"
)

// BaseTemplateData is embedded in the data of every page.
type BaseTemplateData struct {
	CurrentPath string
	// ChatEnabled shows the coaching chat.
	ChatEnabled bool
}

func (app *application) newBaseTemplateData(r *http.Request) BaseTemplateData {
	return BaseTemplateData{
		CurrentPath: contexthelpers.CurrentPath(r.Context()),
		ChatEnabled: app.agent != nil,
	}
}

// resolveUIDir returns the directory ui/<name>. An explicit path wins. Otherwise the working directory and then
// the module root containing go.mod are searched, so that tests running in cmd/web find the assets too.
func resolveUIDir(explicit, name string) (string, error) {
	candidates := []string{explicit}
	if explicit == "" {
		candidates = []string{filepath.Join("ui", name)}
		if moduleDir, err := findModuleDir(); err == nil {
			candidates = append(candidates, filepath.Join(moduleDir, "ui", name))
		}
	}
	for _, dir := range candidates {
		if stat, err := os.Stat(dir); err == nil && stat.IsDir() {
			return dir, nil
		}
	}
	return "", fmt.Errorf("ui directory %q not found in %v", name, candidates)
}

// findModuleDir walks up from the working directory to the directory holding go.mod.
func findModuleDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	for {
		if _, err = os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
