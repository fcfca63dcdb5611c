package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/sdeery14/fitness-app-sub000/internal/errors"
	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan"
)

var errUnsupportedPlanFile = errors.NewSentinel("unsupported plan file")

// loadPlan reads a plan from a .json or .toml file.
//
// TOML documents are converted to JSON first so that both formats go through the same strict decoder.
func loadPlan(path string) (fitnessplan.FitnessPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fitnessplan.FitnessPlan{}, fmt.Errorf("read plan file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
	case ".toml":
		if data, err = tomlToJSON(data); err != nil {
			return fitnessplan.FitnessPlan{}, fmt.Errorf("%w: %w", fitnessplan.ErrInvalidPlanShape, err)
		}
	default:
		return fitnessplan.FitnessPlan{}, fmt.Errorf("%w: %q, use .json or .toml", errUnsupportedPlanFile, ext)
	}

	plan, err := fitnessplan.Decode(bytes.NewReader(data))
	if err != nil {
		return fitnessplan.FitnessPlan{}, fmt.Errorf("load %s: %w", path, err)
	}
	return plan, nil
}

func tomlToJSON(data []byte) ([]byte, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert toml: %w", err)
	}
	return out, nil
}
