// Package demo builds a richer model.Router than the httpadapter package's
// private test fixture, for use by the demo server binary: a handful of
// procedures declared declaratively in testdata/procedures.yaml (shape
// only — kind, method, path, schemas), each bound to a small Go handler
// registered under its ID.
//
// The YAML table is grounded on internal/definition/loader.go's
// Loader/LoadAll/LoadFile idiom: read every file, unmarshal into a plain
// struct, surface a wrapped error with the source path on failure. It's
// narrowed here to a single file rather than a directory walk, since the
// demo table is small and fixed.
package demo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlProcedure is one entry of testdata/procedures.yaml.
type yamlProcedure struct {
	ID     string      `yaml:"id"`
	Kind   string      `yaml:"kind"`
	Method string      `yaml:"method"`
	Path   string      `yaml:"path"`
	Input  *yamlSchema `yaml:"input"`
	Output *yamlSchema `yaml:"output"`
}

type procedureTable struct {
	Procedures []yamlProcedure `yaml:"procedures"`
}

// loadFile reads and parses a procedure table file.
func loadFile(path string) ([]yamlProcedure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("demo: reading %s: %w", path, err)
	}

	var table procedureTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("demo: parsing %s: %w", path, err)
	}
	return table.Procedures, nil
}
