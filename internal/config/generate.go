// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/LukeTonin/finance/internal/utils"
)

// Source is one override input to [Generate]: either a path to a
// configuration file ([FileSource]) or an in-memory tree ([MapSource]).
type Source interface {
	resolve() (Map, error)
}

// FileSource is the path to a JSON or YAML configuration file. The
// format is chosen by extension; anything that is not .yaml or .yml is
// parsed as JSON.
type FileSource string

func (s FileSource) resolve() (Map, error) {
	return ReadConfigFile(string(s))
}

// MapSource is an in-memory override tree.
type MapSource Map

func (s MapSource) resolve() (Map, error) {
	return Map(s), nil
}

// ReadConfigFile reads and parses a single configuration file.
func ReadConfigFile(path string) (Map, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".yaml" || ext == ".yml" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading a yaml file: %w", err)
		}

		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("error decoding yaml config %s: %w", path, err)
		}
		return MapFromAny(raw)
	}

	var m Map
	if err := utils.ReadJSON(path, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// ReadBaseConfig loads the base configuration from its canonical
// location under the process root.
func ReadBaseConfig() (Map, error) {
	settings, err := LoadSettings()
	if err != nil {
		return nil, err
	}
	return ReadConfigFile(settings.BaseConfigPath)
}

// Generate produces the effective configuration: it loads the base
// configuration and the non-overridable declaration from their canonical
// locations and folds the given sources into the base, left to right.
// Sources are supplied in priority order, later sources winning for the
// same key.
func Generate(sources ...Source) (Map, error) {
	settings, err := LoadSettings()
	if err != nil {
		return nil, err
	}
	return GenerateWith(settings, sources...)
}

// GenerateWith is [Generate] with explicit engine settings, for callers
// that construct their own [Settings] instead of relying on the
// environment.
//
// Merge and validation failures are wrapped with a generation context
// message; the underlying kind (ErrNewKey, ErrOverriding,
// ErrNonOverridable) stays matchable with errors.Is.
func GenerateWith(settings Settings, sources ...Source) (Map, error) {
	base, err := ReadConfigFile(settings.BaseConfigPath)
	if err != nil {
		return nil, fmt.Errorf("error reading the base configuration: %w", err)
	}

	decl, err := ReadConfigFile(settings.NonOverridablePath)
	if err != nil {
		return nil, fmt.Errorf("error reading the non-overridable declaration: %w", err)
	}

	overrides := make([]Map, 0, len(sources))
	for _, src := range sources {
		override, err := src.resolve()
		if err != nil {
			return nil, fmt.Errorf("error resolving config source: %w", err)
		}
		overrides = append(overrides, override)
	}

	merged, err := MergeOverridable(base, decl, MergeOptions{RejectNewKeys: true}, overrides...)
	if err != nil {
		return nil, fmt.Errorf("error when merging config files: %w", err)
	}

	return merged, nil
}
