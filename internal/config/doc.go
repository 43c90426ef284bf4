// SPDX-License-Identifier: Apache-2.0

// Package config implements the layered configuration engine for the
// finance application.
//
// A configuration is a tree of string keys to tagged values ([Map] of
// [Value]). The effective configuration is produced by deep-copying the
// base configuration and folding zero or more override sources into it,
// left to right, so later sources win for the same key. A separate
// non-overridable declaration marks base paths that overrides must not
// touch; it is validated before every fold step.
//
// The main entry points are [Generate] for one-off generation,
// [Initialise] / [Get] for the process-wide configuration, and the
// derived accessors [GetCacheConfig] and [GetCredentials].
package config
