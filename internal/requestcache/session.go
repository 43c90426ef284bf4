// SPDX-License-Identifier: Apache-2.0

package requestcache

import (
	"github.com/go-resty/resty/v2"

	"github.com/LukeTonin/finance/internal/config"
	"github.com/LukeTonin/finance/internal/logger"
)

// NewSession returns a resty client that caches responses according to
// the named cache configuration. Valid names are the keys of the cache
// section of the base configuration. An empty name returns a plain
// uncached client.
func NewSession(cacheName string, log *logger.Logger) (*resty.Client, error) {
	if cacheName == "" {
		return resty.New(), nil
	}

	cfg, err := config.GetCacheConfig(cacheName)
	if err != nil {
		return nil, err
	}

	return NewSessionFromSettings(cfg, log)
}

// NewSessionFromSettings builds a cached resty client from already
// resolved cache settings.
func NewSessionFromSettings(cfg config.CacheSettings, log *logger.Logger) (*resty.Client, error) {
	backend, err := NewBackend(cfg)
	if err != nil {
		return nil, err
	}

	serializer, err := NewSerializer(cfg.Serializer)
	if err != nil {
		return nil, err
	}

	transport := &Transport{
		Backend:    backend,
		Serializer: serializer,
		TTL:        cfg.ExpireAfter,
		Log:        log,
	}

	return resty.New().SetTransport(transport), nil
}
