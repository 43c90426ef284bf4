// SPDX-License-Identifier: Apache-2.0

package config

import "fmt"

// ValidateDeclaration checks the shape of a non-overridable declaration.
// A declaration is valid when every leaf value is the literal true and
// every non-leaf value is a nested map; any other variant fails with
// [ErrNonOverridable]. Every sibling is checked, including those after a
// nested map at the same level.
func ValidateDeclaration(decl Map) error {
	for _, key := range sortedKeys(decl) {
		val := decl[key]

		switch val.Kind() {
		case KindMap:
			if err := ValidateDeclaration(val.Map()); err != nil {
				return err
			}
		case KindBool:
			if !val.Bool() {
				return fmt.Errorf("all leaf values of the non-overridable declaration must be true, key %q is false: %w", key, ErrNonOverridable)
			}
		default:
			return fmt.Errorf("all leaf values of the non-overridable declaration must be true, key %q holds a %s: %w", key, val.Kind(), ErrNonOverridable)
		}
	}

	return nil
}

// ValidateOverride checks an override against a non-overridable
// declaration. For every key the two share: a true leaf in the
// declaration means the field is fully protected and the override fails;
// nested maps on both sides recurse; anything else is a shape mismatch
// between the two trees and also fails.
func ValidateOverride(override, decl Map) error {
	for _, key := range sortedKeys(override) {
		declVal, shared := decl[key]
		if !shared {
			continue
		}

		switch {
		case declVal.Kind() == KindBool && declVal.Bool():
			return fmt.Errorf("override is attempting to change the non-overridable field %q: %w", key, ErrNonOverridable)
		case declVal.Kind() == KindMap && override[key].Kind() == KindMap:
			if err := ValidateOverride(override[key].Map(), declVal.Map()); err != nil {
				return err
			}
		default:
			return fmt.Errorf("override and non-overridable declaration are not compatible at key %q: %w", key, ErrNonOverridable)
		}
	}

	return nil
}

// ValidateAgainstBase checks that the declaration only references keys
// that exist in the base configuration, recursing where both sides hold
// nested maps. Protecting a field the base does not define fails with
// [ErrNonOverridable].
func ValidateAgainstBase(base, decl Map) error {
	for _, key := range sortedKeys(decl) {
		baseVal, inBase := base[key]
		if !inBase {
			return fmt.Errorf("the non-overridable declaration contains field %q that is not in the base configuration: %w", key, ErrNonOverridable)
		}

		if decl[key].Kind() == KindMap && baseVal.Kind() == KindMap {
			if err := ValidateAgainstBase(baseVal.Map(), decl[key].Map()); err != nil {
				return err
			}
		}
	}

	return nil
}
