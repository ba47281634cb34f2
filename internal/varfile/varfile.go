// Package varfile loads variable definitions for the infix command from YAML
// or JSON-with-comments files.
package varfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

// Load reads a file mapping variable names to numbers. Files ending in .yaml
// or .yml are YAML. Files ending in .json, .jsonc, or .hujson are JSON, which
// may contain comments and trailing commas.
func Load(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read variables: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return parseYAML(data)
	case ".json", ".jsonc", ".hujson":
		return parseJSON(data)
	default:
		return nil, fmt.Errorf("variables file %s: unknown format %q", path, ext)
	}
}

// LoadAll loads every file matching any of the glob patterns, which may use
// ** to match directories recursively. Files are read in sorted order within
// each pattern, and later definitions replace earlier ones. A pattern which
// matches no files is an error.
func LoadAll(patterns []string) (map[string]float64, error) {
	vars := make(map[string]float64)
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob: %w", err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no variables files match %q", pattern)
		}
		sort.Strings(matches)
		for _, path := range matches {
			v, err := Load(path)
			if err != nil {
				return nil, err
			}
			for name, x := range v {
				vars[name] = x
			}
		}
	}
	return vars, nil
}

func parseYAML(data []byte) (map[string]float64, error) {
	var vars map[string]float64
	if err := yaml.Unmarshal(data, &vars); err != nil {
		return nil, fmt.Errorf("unmarshal variables: %w", err)
	}
	return orEmpty(vars), nil
}

func parseJSON(data []byte) (map[string]float64, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("standardize variables: %w", err)
	}
	var vars map[string]float64
	if err := json.Unmarshal(std, &vars); err != nil {
		return nil, fmt.Errorf("unmarshal variables: %w", err)
	}
	return orEmpty(vars), nil
}

// orEmpty returns an empty map for an empty document.
func orEmpty(vars map[string]float64) map[string]float64 {
	if vars == nil {
		return map[string]float64{}
	}
	return vars
}

// Names returns the names in vars in sorted order.
func Names(vars map[string]float64) []string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
