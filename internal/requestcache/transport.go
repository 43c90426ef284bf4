// SPDX-License-Identifier: Apache-2.0

package requestcache

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/LukeTonin/finance/internal/logger"
)

// Transport is an http.RoundTripper that caches successful GET and HEAD
// responses in a Backend and serves them back until TTL elapses.
// A zero TTL means cached responses never expire.
type Transport struct {
	Backend    Backend
	Serializer Serializer
	TTL        time.Duration

	// Base performs uncached requests. nil means http.DefaultTransport.
	Base http.RoundTripper

	// Log receives cache hit/miss events. nil disables logging.
	Log *logger.Logger
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *Transport) log() *logger.Logger {
	if t.Log != nil {
		return t.Log
	}
	return logger.Nop()
}

func cacheKey(req *http.Request) string {
	return req.Method + " " + req.URL.String()
}

// RoundTrip serves the request from the cache when a fresh entry exists,
// otherwise forwards it to the base transport and stores a successful
// response. Non-GET/HEAD requests bypass the cache entirely.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		return t.base().RoundTrip(req)
	}

	key := cacheKey(req)

	if data, ok := t.Backend.Get(key); ok {
		e, err := t.Serializer.Decode(data)
		if err == nil && t.fresh(e) {
			t.log().Debug().Str("key", key).Msg("cache hit")
			return e.response(req), nil
		}
		// stale or undecodable
		t.Backend.Delete(key)
	}

	t.log().Debug().Str("key", key).Msg("cache miss")

	resp, err := t.base().RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}
		resp.Body = io.NopCloser(bytes.NewReader(body))

		e := entry{
			StoredAt: time.Now(),
			Status:   resp.StatusCode,
			Header:   resp.Header.Clone(),
			Body:     body,
		}
		if data, err := t.Serializer.Encode(e); err == nil {
			t.Backend.Set(key, data)
		}
	}

	return resp, nil
}

func (t *Transport) fresh(e entry) bool {
	if t.TTL == 0 {
		return true
	}
	return time.Since(e.StoredAt) < t.TTL
}
