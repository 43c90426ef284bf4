package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

// mustParse decodes a JSON document into a Map, failing the test on any
// decode error.
func mustParse(t *testing.T, doc string) Map {
	t.Helper()
	var m Map
	require.NoError(t, json.Unmarshal([]byte(doc), &m))
	return m
}

// ── codec ─────────────────────────────────────────────────────────────────────

// TestUnmarshalJSON_Kinds verifies that every JSON variant decodes into the
// matching tagged kind.
func TestUnmarshalJSON_Kinds(t *testing.T) {
	m := mustParse(t, `{
		"null": null,
		"bool": true,
		"string": "hello",
		"number": 4.5,
		"map": {"inner": 1},
		"sequence": [1, "two", false]
	}`)

	assert.Equal(t, KindNull, m["null"].Kind())
	assert.Equal(t, KindBool, m["bool"].Kind())
	assert.Equal(t, KindString, m["string"].Kind())
	assert.Equal(t, KindNumber, m["number"].Kind())
	assert.Equal(t, KindMap, m["map"].Kind())
	assert.Equal(t, KindSequence, m["sequence"].Kind())

	assert.True(t, m["bool"].Bool())
	assert.Equal(t, "hello", m["string"].Str())
	assert.Equal(t, 4.5, m["number"].Num())
	assert.Equal(t, 1.0, m["map"].Map()["inner"].Num())
	assert.Len(t, m["sequence"].Seq(), 3)
}

// TestMarshalJSON_RoundTrip verifies that a decoded tree encodes back to a
// semantically equal tree.
func TestMarshalJSON_RoundTrip(t *testing.T) {
	original := mustParse(t, `{"a": 1, "b": {"c": [true, "x"], "d": null}}`)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Map
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, original.Equal(decoded))
}

// TestFromAny_NonStringKey verifies that a mapping with a non-string key is
// rejected at the codec boundary.
func TestFromAny_NonStringKey(t *testing.T) {
	_, err := FromAny(map[any]any{1: "one"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keys must be strings")
}

// TestFromAny_UnsupportedType verifies that an unrecognised dynamic type is
// rejected instead of silently wrapped.
func TestFromAny_UnsupportedType(t *testing.T) {
	_, err := FromAny(struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported configuration value")
}

// TestMapFromAny_NonMapRoot verifies that a document whose root is not a
// mapping is rejected.
func TestMapFromAny_NonMapRoot(t *testing.T) {
	_, err := MapFromAny([]any{1, 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "root must be a map")
}

// ── clone and equality ────────────────────────────────────────────────────────

// TestClone_SharesNoStorage verifies that mutating a clone's nested maps and
// sequences leaves the original untouched.
func TestClone_SharesNoStorage(t *testing.T) {
	original := mustParse(t, `{"nested": {"key": "before"}, "seq": [1, 2]}`)
	snapshot := original.Clone()

	cloned := original.Clone()
	cloned["nested"].Map()["key"] = String("after")
	cloned["seq"].Seq()[0] = Number(99)

	assert.True(t, original.Equal(snapshot))
	assert.False(t, original.Equal(cloned))
}

// TestEqual_DistinguishesKinds verifies that values of different kinds never
// compare equal, even with zero payloads.
func TestEqual_DistinguishesKinds(t *testing.T) {
	assert.False(t, Bool(false).Equal(Null()))
	assert.False(t, Number(0).Equal(String("")))
	assert.False(t, MapValue(Map{}).Equal(Sequence()))
	assert.True(t, Null().Equal(Null()))
}
