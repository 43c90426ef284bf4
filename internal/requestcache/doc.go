// SPDX-License-Identifier: Apache-2.0

// Package requestcache builds cached HTTP clients from named cache
// configurations.
//
// A cached client wraps resty with a round-tripper that stores GET and
// HEAD responses in a pluggable backend (filesystem, memory or sqlite)
// and serves them back until the configured expiry elapses. Which
// backend, serializer and expiry to use comes from
// config.GetCacheConfig(name).
package requestcache
