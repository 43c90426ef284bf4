// SPDX-License-Identifier: Apache-2.0

package requestcache

import (
	"fmt"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"

	"github.com/LukeTonin/finance/internal/config"
	"github.com/LukeTonin/finance/internal/utils"
)

// Backend stores serialized responses by key. It mirrors the cache
// contract of gregjones/httpcache, so its disk and memory caches plug in
// directly.
type Backend interface {
	Get(key string) ([]byte, bool)
	Set(key string, data []byte)
	Delete(key string)
}

// NewBackend constructs the storage backend named by the cache settings.
// Supported kinds are "filesystem", "memory" and "sqlite".
func NewBackend(cfg config.CacheSettings) (Backend, error) {
	switch cfg.Backend {
	case "filesystem":
		if err := utils.MakeDir(cfg.Path); err != nil {
			return nil, err
		}
		return diskcache.New(cfg.Path), nil
	case "memory":
		return httpcache.NewMemoryCache(), nil
	case "sqlite":
		return newSQLiteBackend(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", cfg.Backend)
	}
}
