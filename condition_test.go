package cankit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gettered has both an accessor and an exported field so the accessor
// precedence is observable.
type gettered struct {
	Published bool
}

func (g gettered) GetAttribute(key string) any {
	if key == "published" {
		return "from-getter"
	}
	return nil
}

// TestReadAttribute validates the attribute lookup order: accessor first,
// then map keys, then exported struct fields.
func TestReadAttribute(t *testing.T) {
	t.Run("accessor takes precedence", func(t *testing.T) {
		assert.Equal(t, "from-getter", ReadAttribute(gettered{Published: true}, "published"))
	})

	t.Run("map lookup", func(t *testing.T) {
		assert.Equal(t, 7, ReadAttribute(map[string]any{"count": 7}, "count"))
		assert.Equal(t, 7, ReadAttribute(Options{"count": 7}, "count"))
		assert.Nil(t, ReadAttribute(map[string]any{}, "count"))
	})

	t.Run("struct field by exact name", func(t *testing.T) {
		assert.Equal(t, true, ReadAttribute(Product{Published: true}, "Published"))
	})

	t.Run("struct field by exported name", func(t *testing.T) {
		assert.Equal(t, true, ReadAttribute(Product{Published: true}, "published"))
		assert.Equal(t, "u1", ReadAttribute(Product{OwnerID: "u1"}, "OwnerID"))
	})

	t.Run("pointer to struct", func(t *testing.T) {
		assert.Equal(t, true, ReadAttribute(&Product{Published: true}, "published"))
		var p *Product
		assert.Nil(t, ReadAttribute(p, "published"))
	})

	t.Run("missing attribute", func(t *testing.T) {
		assert.Nil(t, ReadAttribute(Product{}, "nope"))
		assert.Nil(t, ReadAttribute("not a struct", "nope"))
		assert.Nil(t, ReadAttribute(nil, "nope"))
	})
}

// TestAttributeConditionConjunction validates that a multi-key attribute map
// requires every key to match.
func TestAttributeConditionConjunction(t *testing.T) {
	ctx := context.Background()
	cond, err := normalizeCondition(Options{"published": true, "ownerID": "u1"})
	require.NoError(t, err)

	ok, err := cond(ctx, nil, &Product{Published: true, OwnerID: "u1"}, nil)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cond(ctx, nil, &Product{Published: true, OwnerID: "u2"}, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = cond(ctx, nil, &Product{Published: false, OwnerID: "u1"}, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestAttributeConditionEquivalence validates that an attribute map behaves
// exactly like the equivalent function condition over a range of targets.
func TestAttributeConditionEquivalence(t *testing.T) {
	ctx := context.Background()

	mapCond, err := normalizeCondition(Options{"published": true})
	require.NoError(t, err)

	funcCond, err := normalizeCondition(func(performer, target any) bool {
		return ReadAttribute(target, "published") == true
	})
	require.NoError(t, err)

	targets := []any{
		&Product{Published: true},
		&Product{Published: false},
		Product{Published: true},
		record{attrs: map[string]any{"published": true}},
		record{attrs: map[string]any{"published": false}},
		record{attrs: map[string]any{}},
		"not structured at all",
	}

	for _, target := range targets {
		fromMap, err := mapCond(ctx, nil, target, nil)
		require.NoError(t, err)
		fromFunc, err := funcCond(ctx, nil, target, nil)
		require.NoError(t, err)
		assert.Equal(t, fromFunc, fromMap, "target %#v", target)
	}
}

// TestAttributeConditionIgnoresPerformerAndOptions validates the desugared
// predicate only looks at the target.
func TestAttributeConditionIgnoresPerformerAndOptions(t *testing.T) {
	ctx := context.Background()
	cond, err := normalizeCondition(Options{"published": true})
	require.NoError(t, err)

	ok, err := cond(ctx, &User{ID: "whoever"}, &Product{Published: true}, Options{"published": false})
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestAttributeConditionSnapshot validates that mutating the declared map
// afterwards does not change the rule.
func TestAttributeConditionSnapshot(t *testing.T) {
	ctx := context.Background()
	attrs := Options{"published": true}
	cond, err := normalizeCondition(attrs)
	require.NoError(t, err)

	attrs["published"] = false

	ok, err := cond(ctx, nil, &Product{Published: true}, nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestNormalizeConditionShapes validates conversion of the convenience
// function shapes into the canonical one.
func TestNormalizeConditionShapes(t *testing.T) {
	ctx := context.Background()

	t.Run("nil stays nil", func(t *testing.T) {
		cond, err := normalizeCondition(nil)
		require.NoError(t, err)
		assert.Nil(t, cond)
	})

	t.Run("two-arg bool", func(t *testing.T) {
		cond, err := normalizeCondition(func(performer, target any) bool {
			return performer == target
		})
		require.NoError(t, err)
		ok, err := cond(ctx, "x", "x", nil)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("three-arg bool", func(t *testing.T) {
		cond, err := normalizeCondition(func(performer, target any, options Options) bool {
			return options["flag"] == true
		})
		require.NoError(t, err)
		ok, err := cond(ctx, nil, nil, Options{"flag": true})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("canonical shape passes through", func(t *testing.T) {
		cond, err := normalizeCondition(ConditionFunc(func(ctx context.Context, performer, target any, options Options) (bool, error) {
			return true, nil
		}))
		require.NoError(t, err)
		ok, err := cond(ctx, nil, nil, nil)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("untyped canonical signature", func(t *testing.T) {
		cond, err := normalizeCondition(func(ctx context.Context, performer, target any, options Options) (bool, error) {
			return false, nil
		})
		require.NoError(t, err)
		ok, err := cond(ctx, nil, nil, nil)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unsupported shape", func(t *testing.T) {
		_, err := normalizeCondition("published")
		require.Error(t, err)
		assert.True(t, IsInvalidCondition(err))
	})
}
