// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"dario.cat/mergo"

	"github.com/LukeTonin/finance/internal/utils"
)

// The process-wide configuration. Assigned exactly once by [Initialise];
// nothing mutates it afterwards. The mutex makes initialisation safe if
// it ever races, but the intended pattern is a single Initialise during
// startup.
var (
	globalMu     sync.Mutex
	globalConfig Map
)

// Initialise generates the process-wide configuration from the given
// override sources. It must be called at most once per process: a second
// call fails with [ErrAlreadyInitialised] and leaves the configuration
// from the first call untouched. Nothing is assigned unless generation
// fully succeeds.
func Initialise(sources ...Source) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalConfig != nil {
		return ErrAlreadyInitialised
	}

	merged, err := Generate(sources...)
	if err != nil {
		return err
	}

	globalConfig = merged
	return nil
}

// Get returns the process-wide configuration. Before [Initialise] has
// run it falls back to reading the base configuration, so read-only
// callers get sensible defaults without initialising. The returned map
// is a deep copy; mutating it does not affect the stored configuration.
func Get() (Map, error) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalConfig == nil {
		return ReadBaseConfig()
	}
	return globalConfig.Clone(), nil
}

// reset clears the process-wide configuration. Tests only.
func reset() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = nil
}

// CacheSettings describes one named HTTP cache from the configuration's
// cache section, with the path already resolved to an absolute one and
// the expiry parsed into a duration.
type CacheSettings struct {
	// Path is the absolute location of the cache storage.
	Path string
	// Backend selects the cache storage kind: filesystem, memory or
	// sqlite.
	Backend string
	// Serializer selects how cached responses are encoded: json or
	// binary.
	Serializer string
	// ExpireAfter is how long a cached response stays valid. Zero means
	// no expiry.
	ExpireAfter time.Duration
}

// defaultCacheSettings fills the fields a cache entry may omit.
var defaultCacheSettings = CacheSettings{
	Backend:    "filesystem",
	Serializer: "json",
}

// GetCacheConfig returns the settings of the named cache from the
// current configuration. The name must be a key of the configuration's
// cache section. Relative paths are resolved against the process root
// and a missing or empty expire_after means no expiry.
func GetCacheConfig(name string) (CacheSettings, error) {
	cfg, err := Get()
	if err != nil {
		return CacheSettings{}, err
	}

	cacheSection, ok := cfg["cache"]
	if !ok || cacheSection.Kind() != KindMap {
		return CacheSettings{}, fmt.Errorf("the configuration has no cache section")
	}

	entry, ok := cacheSection.Map()[name]
	if !ok || entry.Kind() != KindMap {
		return CacheSettings{}, fmt.Errorf("no cache configuration named %q", name)
	}
	m := entry.Map()

	settings := CacheSettings{
		Path:       m["path"].Str(),
		Backend:    m["backend"].Str(),
		Serializer: m["serializer"].Str(),
	}
	if err := mergo.Merge(&settings, defaultCacheSettings); err != nil {
		return CacheSettings{}, fmt.Errorf("error applying cache defaults: %w", err)
	}
	if settings.Path == "" {
		return CacheSettings{}, fmt.Errorf("cache configuration %q has no path", name)
	}

	engine, err := LoadSettings()
	if err != nil {
		return CacheSettings{}, err
	}
	settings.Path = engine.Resolve(settings.Path)

	switch exp := m["expire_after"]; exp.Kind() {
	case KindNull:
		// absent or null means no expiry
	case KindString:
		if exp.Str() != "" {
			d, err := ParseExpiry(exp.Str())
			if err != nil {
				return CacheSettings{}, fmt.Errorf("error parsing expire_after for cache %q: %w", name, err)
			}
			settings.ExpireAfter = d
		}
	default:
		return CacheSettings{}, fmt.Errorf("expire_after for cache %q must be a duration string, found a %s", name, exp.Kind())
	}

	return settings, nil
}

// Credentials maps a vendor name to that vendor's secrets, e.g.
// credentials["eodhistoricaldata"]["api_token"].
type Credentials map[string]map[string]string

// GetCredentials reads the credentials file from the path named by the
// current configuration's credentials_path key, resolved against the
// process root.
func GetCredentials() (Credentials, error) {
	cfg, err := Get()
	if err != nil {
		return nil, err
	}

	pathVal, ok := cfg["credentials_path"]
	if !ok || pathVal.Kind() != KindString {
		return nil, fmt.Errorf("the configuration has no credentials_path")
	}

	engine, err := LoadSettings()
	if err != nil {
		return nil, err
	}

	var credentials Credentials
	if err := utils.ReadJSON(engine.Resolve(pathVal.Str()), &credentials); err != nil {
		return nil, fmt.Errorf("error reading the credentials file: %w", err)
	}

	return credentials, nil
}

var dayExpiry = regexp.MustCompile(`^(\d+)\s*(d|day|days)$`)

// ParseExpiry parses a cache expiry string into a duration. It accepts
// Go duration syntax ("30m", "12h") plus a day form ("1d", "7 days").
// An empty string means no expiry.
func ParseExpiry(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	if m := dayExpiry.FindStringSubmatch(strings.ToLower(s)); m != nil {
		days, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, fmt.Errorf("error parsing expiry %q: %w", s, err)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("error parsing expiry %q: %w", s, err)
	}
	return d, nil
}
