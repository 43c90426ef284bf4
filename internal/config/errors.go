// SPDX-License-Identifier: Apache-2.0

package config

import "errors"

// Error kinds surfaced by the merging engine. Callers match them with
// errors.Is; wrapping with generation context preserves the kind.
var (
	// ErrNewKey indicates that an override introduces a key that does not
	// exist in the base configuration while new keys are rejected.
	ErrNewKey = errors.New("new key is not allowed")
	// ErrOverriding indicates that an override replaces a key present in
	// the base configuration while overriding is rejected.
	ErrOverriding = errors.New("overriding is not allowed")
	// ErrNonOverridable covers the three non-overridable violations: a
	// malformed declaration, an override touching a protected field, and
	// a declaration referencing a field absent from the base.
	ErrNonOverridable = errors.New("non-overridable constraint violated")
	// ErrAlreadyInitialised indicates a second call to [Initialise]. The
	// configuration from the first call stays in place.
	ErrAlreadyInitialised = errors.New("the config has already been initialised, it cannot be initialised twice")
)
