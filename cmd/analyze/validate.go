package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/multierr"

	"github.com/wricardo/klondike/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
type ValidationResult struct {
	File   string
	Errors []error
}

// Valid reports whether the file had no problems
func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// validateConfig loads a configuration file and collects every problem in it.
func validateConfig(path string) ValidationResult {
	result := ValidationResult{File: filepath.Base(path)}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = []error{fmt.Errorf("failed to read file: %w", err)}
		return result
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.Errors = []error{fmt.Errorf("invalid JSON: %w", err)}
		return result
	}

	result.Errors = multierr.Errors(engine.ValidateGameConfig(&config))
	return result
}

// validateDir validates every .json file in dir, sorted by name.
func validateDir(dir string) ([]ValidationResult, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no configuration files in %s", dir)
	}
	sort.Strings(files)

	results := make([]ValidationResult, 0, len(files))
	for _, file := range files {
		results = append(results, validateConfig(file))
	}
	return results, nil
}

func runValidate(out io.Writer, dir string) error {
	results, err := validateDir(dir)
	if err != nil {
		return err
	}

	invalid := 0
	for _, result := range results {
		if result.Valid() {
			fmt.Fprintf(out, "✓ %s\n", result.File)
			continue
		}
		invalid++
		fmt.Fprintf(out, "✗ %s\n", result.File)
		for _, e := range result.Errors {
			fmt.Fprintf(out, "    - %v\n", e)
		}
	}

	fmt.Fprintf(out, "\n%d of %d configurations valid\n", len(results)-invalid, len(results))
	if invalid > 0 {
		return fmt.Errorf("%d invalid configurations", invalid)
	}
	return nil
}
