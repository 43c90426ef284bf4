// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Canonical locations of the persisted configuration files, relative to
// the process root directory.
const (
	defaultBaseConfigFile     = "config/base_config.json"
	defaultNonOverridableFile = "config/is_non_overridable.json"
)

// Settings holds the process-level settings of the engine itself: where
// the root directory is and where the canonical configuration files
// live. They are read from FINANCE_-prefixed environment variables,
// falling back to the working directory and the canonical file names.
type Settings struct {
	// RootDir is the directory against which every relative path in the
	// configuration is resolved.
	// Env: FINANCE_ROOT_DIR
	RootDir string `env:"ROOT_DIR"`

	// BaseConfigPath is the location of the persisted base configuration.
	// Env: FINANCE_BASE_CONFIG
	BaseConfigPath string `env:"BASE_CONFIG"`

	// NonOverridablePath is the location of the persisted non-overridable
	// declaration.
	// Env: FINANCE_NON_OVERRIDABLE
	NonOverridablePath string `env:"NON_OVERRIDABLE"`
}

// LoadSettings reads the engine settings from the environment and fills
// in the defaults for anything unset.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Prefix: "FINANCE_"}); err != nil {
		return Settings{}, fmt.Errorf("error getting env settings: %w", err)
	}

	if s.RootDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Settings{}, fmt.Errorf("error resolving the working directory: %w", err)
		}
		s.RootDir = wd
	}
	if s.BaseConfigPath == "" {
		s.BaseConfigPath = defaultBaseConfigFile
	}
	if s.NonOverridablePath == "" {
		s.NonOverridablePath = defaultNonOverridableFile
	}

	s.BaseConfigPath = s.Resolve(s.BaseConfigPath)
	s.NonOverridablePath = s.Resolve(s.NonOverridablePath)

	return s, nil
}

// Resolve turns path into an absolute path by joining it with the root
// directory when it is relative. Absolute paths are cleaned and returned
// as-is.
func (s Settings) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(s.RootDir, path)
}
