// Package hclarch loads an architecture description written in HCL
// into reader records. One or more .hcl files describe nodes with
// their callbacks, endpoints and transform entities, plus executors,
// named paths and transform frame declarations.
package hclarch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/hsgwa/archgraph/internal/ctxlog"
	"github.com/hsgwa/archgraph/internal/reader"
)

// Loader parses HCL architecture files.
type Loader struct{}

// NewLoader creates a new HCL architecture loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file reachable from the given paths and
// merges the declarations into one reader. Parsing and decoding are
// strict; a malformed file fails the load.
func (l *Loader) Load(ctx context.Context, paths ...string) (*reader.Static, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL architecture loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	out := &reader.Static{}

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if err := l.translate(out, &root); err != nil {
			return nil, fmt.Errorf("translating %s: %w", file, err)
		}
	}

	logger.Debug("HCL architecture loading complete.",
		"nodes", len(out.Nodes),
		"executors", len(out.Executors),
		"paths", len(out.Paths))
	return out, nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all
// .hcl files found.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && filepath.Ext(p) == ".hcl" {
					if _, wasSeen := seen[p]; !wasSeen {
						allFiles = append(allFiles, p)
						seen[p] = struct{}{}
					}
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else if filepath.Ext(path) == ".hcl" {
			if _, wasSeen := seen[path]; !wasSeen {
				allFiles = append(allFiles, path)
				seen[path] = struct{}{}
			}
		}
	}
	return allFiles, nil
}
