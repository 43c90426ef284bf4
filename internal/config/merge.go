// SPDX-License-Identifier: Apache-2.0

package config

import "fmt"

// MergeOptions controls the key-conflict policy of [Merge].
type MergeOptions struct {
	// RejectNewKeys fails the merge when the override contains a key that
	// does not exist in the base.
	RejectNewKeys bool
	// RejectOverrides fails the merge when the override replaces a key
	// that exists in the base.
	RejectOverrides bool
}

// Merge recursively merges override into base and returns the result as
// a new map. Neither argument is mutated: the result is a deep copy of
// base with the applicable override values deep-copied in, so no storage
// is shared with either input.
//
// When both sides hold a nested map at the same key the merge recurses;
// otherwise the override value replaces the base value, subject to the
// policy in opts. Keys are visited in sorted order, so the first
// violation reported is deterministic.
func Merge(base, override Map, opts MergeOptions) (Map, error) {
	merged := base.Clone()

	for _, key := range sortedKeys(override) {
		baseVal, inBase := base[key]
		overrideVal := override[key]

		if inBase && baseVal.Kind() == KindMap && overrideVal.Kind() == KindMap {
			sub, err := Merge(baseVal.Map(), overrideVal.Map(), opts)
			if err != nil {
				return nil, err
			}
			merged[key] = MapValue(sub)
			continue
		}

		switch {
		case inBase && opts.RejectOverrides:
			return nil, fmt.Errorf("cannot override key %q when overriding is rejected: %w", key, ErrOverriding)
		case !inBase && opts.RejectNewKeys:
			return nil, fmt.Errorf("cannot add key %q when new keys are rejected: %w", key, ErrNewKey)
		default:
			merged[key] = overrideVal.Clone()
		}
	}

	return merged, nil
}

// MergeOverridable folds the overrides into base left to right, so later
// overrides win for the same key. When decl is non-nil the three
// non-overridable checks run before every fold step, against the
// accumulated result. The fold is atomic: on any failure the error is
// returned and no partial result escapes.
func MergeOverridable(base Map, decl Map, opts MergeOptions, overrides ...Map) (Map, error) {
	merged := base.Clone()

	for _, override := range overrides {
		if decl != nil {
			if err := ValidateDeclaration(decl); err != nil {
				return nil, err
			}
			if err := ValidateOverride(override, decl); err != nil {
				return nil, err
			}
			if err := ValidateAgainstBase(merged, decl); err != nil {
				return nil, err
			}
		}

		var err error
		merged, err = Merge(merged, override, opts)
		if err != nil {
			return nil, err
		}
	}

	return merged, nil
}
