// SPDX-License-Identifier: Apache-2.0

// Package utils contains small file helpers shared across the finance
// application.
package utils

import (
	"encoding/json"
	"fmt"
	"os"
)

// ReadJSON reads the JSON file at path and decodes it into v.
//
// Example usage:
//
//	var cfg map[string]any
//	err := utils.ReadJSON("config/base_config.json", &cfg)
func ReadJSON(path string, v any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error reading a json file: %w", err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(v); err != nil {
		return fmt.Errorf("error decoding json file %s: %w", path, err)
	}

	return nil
}

// SaveJSON writes v to path as indented JSON, creating or truncating the
// file.
func SaveJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating a json file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("error encoding json file %s: %w", path, err)
	}

	return nil
}

// MakeDir creates the directory and any missing parents. It is a no-op
// when the directory already exists.
func MakeDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating directory %s: %w", dir, err)
	}
	return nil
}
