package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── ValidateDeclaration ───────────────────────────────────────────────────────

// TestValidateDeclaration_Valid verifies that a declaration whose leaves are
// all true, at any nesting depth, passes.
func TestValidateDeclaration_Valid(t *testing.T) {
	decl := mustParse(t, `{"a": true, "b": {"c": true, "d": {"e": true}}}`)
	assert.NoError(t, ValidateDeclaration(decl))
}

// TestValidateDeclaration_FalseLeaf verifies that a false leaf anywhere
// fails with ErrNonOverridable.
func TestValidateDeclaration_FalseLeaf(t *testing.T) {
	decl := mustParse(t, `{"a": {"b": false}}`)

	err := ValidateDeclaration(decl)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonOverridable)
	assert.Contains(t, err.Error(), `"b"`)
}

// TestValidateDeclaration_NonBoolLeaf verifies that leaves of any kind other
// than the literal true are rejected.
func TestValidateDeclaration_NonBoolLeaf(t *testing.T) {
	for _, doc := range []string{
		`{"a": [1, 2]}`,
		`{"a": "true"}`,
		`{"a": 1}`,
		`{"a": null}`,
	} {
		err := ValidateDeclaration(mustParse(t, doc))
		require.Error(t, err, "declaration %s should be invalid", doc)
		assert.ErrorIs(t, err, ErrNonOverridable)
	}
}

// TestValidateDeclaration_ChecksAllSiblings verifies that siblings after a
// nested map are still validated. The engine deliberately validates every
// sibling exhaustively instead of stopping after the first nested map.
func TestValidateDeclaration_ChecksAllSiblings(t *testing.T) {
	decl := mustParse(t, `{"a": {"ok": true}, "z": false}`)

	err := ValidateDeclaration(decl)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonOverridable)
	assert.Contains(t, err.Error(), `"z"`)
}

// ── ValidateOverride ──────────────────────────────────────────────────────────

// TestValidateOverride_ProtectedField verifies that an override touching a
// fully protected key fails.
func TestValidateOverride_ProtectedField(t *testing.T) {
	decl := mustParse(t, `{"a": true}`)
	override := mustParse(t, `{"a": 5}`)

	err := ValidateOverride(override, decl)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonOverridable)
	assert.Contains(t, err.Error(), `"a"`)
}

// TestValidateOverride_DisjointKeys verifies that an override sharing no
// keys with the declaration passes.
func TestValidateOverride_DisjointKeys(t *testing.T) {
	decl := mustParse(t, `{"a": true}`)
	override := mustParse(t, `{"b": 5}`)

	assert.NoError(t, ValidateOverride(override, decl))
}

// TestValidateOverride_NestedProtection verifies that partial protection
// recurses: protected sub-keys fail, unprotected siblings pass.
func TestValidateOverride_NestedProtection(t *testing.T) {
	decl := mustParse(t, `{"section": {"locked": true}}`)

	err := ValidateOverride(mustParse(t, `{"section": {"locked": 1}}`), decl)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonOverridable)

	assert.NoError(t, ValidateOverride(mustParse(t, `{"section": {"free": 1}}`), decl))
}

// TestValidateOverride_Incompatible verifies that a shape mismatch between
// declaration and override fails: partial protection met by a scalar
// override value.
func TestValidateOverride_Incompatible(t *testing.T) {
	decl := mustParse(t, `{"section": {"locked": true}}`)
	override := mustParse(t, `{"section": "flat"}`)

	err := ValidateOverride(override, decl)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonOverridable)
	assert.Contains(t, err.Error(), "not compatible")
}

// ── ValidateAgainstBase ───────────────────────────────────────────────────────

// TestValidateAgainstBase_MissingKey verifies that protecting a field the
// base does not define fails regardless of any override content.
func TestValidateAgainstBase_MissingKey(t *testing.T) {
	base := mustParse(t, `{"a": 1, "b": 2}`)
	decl := mustParse(t, `{"c": true}`)

	err := ValidateAgainstBase(base, decl)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonOverridable)
	assert.Contains(t, err.Error(), `"c"`)
}

// TestValidateAgainstBase_NestedMissingKey verifies that the subset check
// recurses into nested maps.
func TestValidateAgainstBase_NestedMissingKey(t *testing.T) {
	base := mustParse(t, `{"section": {"a": 1}}`)

	assert.NoError(t, ValidateAgainstBase(base, mustParse(t, `{"section": {"a": true}}`)))

	err := ValidateAgainstBase(base, mustParse(t, `{"section": {"ghost": true}}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonOverridable)
	assert.Contains(t, err.Error(), `"ghost"`)
}
