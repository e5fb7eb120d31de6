package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a scenario file holding several definitions.
// A file may also hold a single bare Definition.
type File struct {
	Scenarios []Definition `json:"scenarios" yaml:"scenarios"`
}

// Load reads and unmarshals a JSON file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}

	return result, nil
}

// MustLoad reads and unmarshals a JSON file, panicking on error.
// Use this for data that must be present for the app to function.
func MustLoad[T any](filename string) T {
	result, err := Load[T](filename)
	if err != nil {
		panic(err)
	}
	return result
}

// LoadFile reads scenario definitions from a .yaml, .yml or .json file on disk.
// Every definition is validated before it is returned.
func LoadFile(path string) ([]Definition, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading scenario file: %w", err)
	}

	var unmarshal func([]byte, any) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	case ".json":
		unmarshal = json.Unmarshal
	default:
		return nil, fmt.Errorf("loading scenario file %s: unsupported extension", path)
	}

	var file File
	if err := unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("parsing scenario file %s: %w", path, err)
	}

	defs := file.Scenarios
	if len(defs) == 0 {
		var single Definition
		if err := unmarshal(content, &single); err != nil {
			return nil, fmt.Errorf("parsing scenario file %s: %w", path, err)
		}
		defs = []Definition{single}
	}

	for i := range defs {
		if err := defs[i].Validate(); err != nil {
			return nil, fmt.Errorf("validating %s: %w", path, err)
		}
	}
	return defs, nil
}

// LoadDir loads every scenario file in dir, in file name order.
// Subdirectories and files with other extensions are skipped.
func LoadDir(dir string) ([]Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading scenario directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".json":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var all []Definition
	for _, name := range names {
		defs, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		all = append(all, defs...)
	}
	return all, nil
}

// LoadBuiltins loads the embedded mayor and card scenarios.
func LoadBuiltins() ([]Definition, error) {
	var defs []Definition
	for _, name := range []string{"mayor.json", "cards.json"} {
		def, err := Load[Definition](name)
		if err != nil {
			return nil, err
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("built-in %s: %w", name, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}
