// FILE: lixenwraith/deephash/view_test.go
package deephash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLetters(t *testing.T) *Map {
	t.Helper()
	p, err := NewParam(map[string]any{"a": "x", "b": "y", "c": 10})
	require.NoError(t, err)
	return p.Map
}

// TestToMap tests the top-level plain view
func TestToMap(t *testing.T) {
	m := MustFrom(testHash())
	converted := m.ToMap()

	assert.IsType(t, map[Key]any{}, converted)
	assert.ElementsMatch(t, m.Keys(), []Key{"str_key", "sym_key"})
	assert.Equal(t, map[Key]any{"str_key": "strk_val", "sym_key": "symk_val"}, converted)

	nested := newSubject(t).ToMap()
	assert.IsType(t, &Map{}, nested["nested_1"])
}

// TestCompact tests nil removal
func TestCompact(t *testing.T) {
	mixed := func() map[string]any {
		return map[string]any{"a": nil, "b": false, "c": map[string]any{}, "d": "", "remains": true}
	}
	kept := map[string]any{"b": false, "c": map[string]any{}, "d": "", "remains": true}

	t.Run("RemovesOnlyNil", func(t *testing.T) {
		assert.Equal(t, 0, MustFrom(map[string]any{"a": nil}).Compact().Len())
		assert.Equal(t, kept, MustFrom(mixed()).Compact().Plain())
	})

	t.Run("LeavesOriginalAlone", func(t *testing.T) {
		m := MustFrom(map[string]any{"a": nil, "remains": true})
		assert.Equal(t, map[string]any{"remains": true}, m.Compact().Plain())
		assert.Equal(t, map[string]any{"a": nil, "remains": true}, m.Plain())
	})

	t.Run("InPlace", func(t *testing.T) {
		assert.Equal(t, kept, MustFrom(mixed()).CompactInPlace().Plain())

		m := MustFrom(map[string]any{"a": nil, "remains": true})
		out := m.CompactInPlace()
		assert.Same(t, m, out)
		assert.Equal(t, map[string]any{"remains": true}, m.Plain())
		assert.Equal(t, []Key{"remains"}, m.Keys())
	})
}

// TestSlice tests key selection with and without mutation
func TestSlice(t *testing.T) {
	letters := map[string]any{"a": "x", "b": "y", "c": 10}

	t.Run("ReturnsOnlyGivenKeys", func(t *testing.T) {
		m := newLetters(t)
		out, err := m.Slice("a", "b")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": "x", "b": "y"}, out.Plain())
		assert.Equal(t, letters, m.Plain())
	})

	t.Run("InPlaceRetainsGivenKeys", func(t *testing.T) {
		m := newLetters(t)
		out, err := m.SliceInPlace("a", "b")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": "x", "b": "y"}, out.Plain())
		assert.Equal(t, map[string]any{"a": "x", "b": "y"}, m.Plain())
	})

	t.Run("IgnoresListArgument", func(t *testing.T) {
		m := newLetters(t)
		out, err := m.Slice([]any{"a", "b"}, "c")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"c": 10}, out.Plain())
		assert.Equal(t, letters, m.Plain())
	})

	t.Run("InPlaceIgnoresListArgument", func(t *testing.T) {
		m := newLetters(t)
		out, err := m.SliceInPlace([]Key{"a", "b"}, "c")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"c": 10}, out.Plain())
		assert.Equal(t, map[string]any{"c": 10}, m.Plain())
	})

	t.Run("SpreadKeys", func(t *testing.T) {
		keys := []any{"a", "b"}

		m := newLetters(t)
		out, err := m.Slice(keys...)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": "x", "b": "y"}, out.Plain())

		_, err = m.SliceInPlace(keys...)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": "x", "b": "y"}, m.Plain())
	})

	t.Run("EmptyReceiver", func(t *testing.T) {
		out, err := New().SliceInPlace("a", "b", "c")
		require.NoError(t, err)
		assert.Equal(t, 0, out.Len())
	})

	t.Run("KeepsVariant", func(t *testing.T) {
		out, err := newLetters(t).Slice("a")
		require.NoError(t, err)
		assert.Equal(t, ParamVariant, out.Variant())
	})

	t.Run("RejectsBadKey", func(t *testing.T) {
		_, err := newLetters(t).Slice("a", 1.5)
		assert.ErrorIs(t, err, ErrKeyNormalization)
	})
}

// TestExtract tests removal with a returned extract
func TestExtract(t *testing.T) {
	t.Run("RemovesGivenKeys", func(t *testing.T) {
		m := newLetters(t)
		out, err := m.Extract("a", "b")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": "x", "b": "y"}, out.Plain())
		assert.Equal(t, map[string]any{"c": 10}, m.Plain())
	})

	t.Run("LeavesEmptyWhenAllKeysGone", func(t *testing.T) {
		m := newLetters(t)
		out, err := m.Extract("a", "b", "c")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": "x", "b": "y", "c": 10}, out.Plain())
		assert.Equal(t, 0, m.Len())
	})

	t.Run("MissingKeysMapToNil", func(t *testing.T) {
		m := newLetters(t)
		out, err := m.Extract("bob", "c")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"bob": nil, "c": 10}, out.Plain())
		assert.Equal(t, map[string]any{"a": "x", "b": "y"}, m.Plain())

		m = MustFrom(map[string]any{"c": 10})
		out, err = m.Extract("missing", "c")
		require.NoError(t, err)
		assert.Equal(t, []Key{"missing", "c"}, out.Keys())
		assert.Equal(t, map[string]any{"missing": nil, "c": 10}, out.Plain())
		assert.Equal(t, 0, m.Len())
	})

	t.Run("RejectsBadKey", func(t *testing.T) {
		m := newLetters(t)
		_, err := m.Extract("a", []string{"b"})
		assert.ErrorIs(t, err, ErrKeyNormalization)
		assert.Equal(t, 3, m.Len())
	})
}

// TestKeyConversions tests the stringify and symbolize views
func TestKeyConversions(t *testing.T) {
	t.Run("StringifyTopLevelOnly", func(t *testing.T) {
		m := newSubject(t)
		stringified := m.StringifyKeys()

		assert.IsType(t, map[string]any{}, stringified)
		assert.ElementsMatch(t, []string{"nested_1", "leaf_at_top"}, keysOf(stringified))
		assert.Equal(t, "val1b", stringified["leaf_at_top"])

		nested, ok := stringified["nested_1"].(*Map)
		require.True(t, ok)
		assert.Same(t, mustGet(t, m, "nested_1"), nested)
		assert.Equal(t, []Key{"leaf_2", "nested_2"}, nested.Keys())
	})

	t.Run("SymbolizeReturnsCopy", func(t *testing.T) {
		m := MustFrom(testHash())
		out := m.SymbolizeKeys()
		assert.NotSame(t, m, out)
		assert.Equal(t, m.Plain(), out.Plain())
	})

	t.Run("SymbolizeInPlaceReturnsReceiver", func(t *testing.T) {
		m := MustFrom(testHash())
		assert.Same(t, m, m.SymbolizeKeysInPlace())
	})
}

// TestAssertValidKeys tests recognized-key assertions
func TestAssertValidKeys(t *testing.T) {
	newFailure := func() *Map {
		return MustFrom(map[string]any{"failure": "stuff", "funny": "business"})
	}

	t.Run("PassesWhenValid", func(t *testing.T) {
		m := newFailure()
		assert.NoError(t, m.AssertValidKeys([]Key{"failure", "funny"}))
		assert.NoError(t, m.AssertValidKeys("failure", "funny"))
		assert.NoError(t, m.AssertValidKeys([]any{"failure"}, Key("funny"), "extra"))
	})

	t.Run("FailsWhenInvalid", func(t *testing.T) {
		m := newFailure()
		v, err := m.Delete("failure")
		require.NoError(t, err)
		require.NoError(t, m.Set("failore", v))

		err = m.AssertValidKeys([]string{"failure", "funny"})
		assert.EqualError(t, err, "unknown key(s): failore")
		err = m.AssertValidKeys("failure", "funny")
		assert.EqualError(t, err, "unknown key(s): failore")

		var uerr *UnrecognizedKeyError
		require.ErrorAs(t, err, &uerr)
		assert.Equal(t, []Key{"failore"}, uerr.Keys)
		assert.ErrorIs(t, err, ErrUnrecognizedKey)
	})

	t.Run("NamesEveryUnknownKey", func(t *testing.T) {
		m := MustFrom(map[string]any{"ok": 1, "x": 2, "y": 3})
		assert.EqualError(t, m.AssertValidKeys("ok"), "unknown key(s): x, y")
	})

	t.Run("RejectsBadAllowedKey", func(t *testing.T) {
		assert.ErrorIs(t, newFailure().AssertValidKeys("failure", 7), ErrKeyNormalization)
	})
}

func keysOf(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
