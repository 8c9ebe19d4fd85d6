package shape

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindName(t *testing.T) {
	n := 1
	var nilPtr *int

	tests := []struct {
		value any
		want  string
	}{
		{nil, "nil"},
		{nilPtr, "nil"},
		{1, NumberName},
		{&n, NumberName},
		{float32(1), NumberName},
		{"s", StringName},
		{true, BooleanName},
		{func() {}, CallableName},
		{make(chan struct{}), ChannelName},
		{[]int{}, TableName},
		{map[string]any{}, TableName},
		{struct{}{}, TableName},
		{complex(1, 1), "complex128"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, kindName(tt.value), "value %#v", tt.value)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "5", formatNumber(5))
	assert.Equal(t, "0.1", formatNumber(0.1))
	assert.Equal(t, "1e+21", formatNumber(1e21))
	assert.Equal(t, "-infinity", formatNumber(math.Inf(-1)))
	assert.Equal(t, "+infinity", formatNumber(math.Inf(1)))
}

func TestAggregateEntries(t *testing.T) {
	t.Run("SliceIndexOrder", func(t *testing.T) {
		agg, ok := asAggregate([]string{"a", "b"})
		require.True(t, ok)
		assert.Equal(t, []entry{{0, "a"}, {1, "b"}}, agg.entries())
	})

	t.Run("MapKeyOrder", func(t *testing.T) {
		agg, ok := asAggregate(map[any]any{"b": 1, 2: 2, true: 3, "a": 4, 1: 5, false: 6})
		require.True(t, ok)

		var keys []any
		for _, e := range agg.entries() {
			keys = append(keys, e.key)
		}
		assert.Equal(t, []any{1, 2, "a", "b", false, true}, keys)
	})

	t.Run("StructFieldOrder", func(t *testing.T) {
		type pair struct {
			B      int `json:"b"`
			A      int `json:"a"`
			hidden int
			Skip   int `json:"-"`
			Opt    int `json:",omitempty"`
		}
		agg, ok := asAggregate(pair{B: 1, A: 2, hidden: 3})
		require.True(t, ok)
		assert.Equal(t, []entry{{"b", 1}, {"a", 2}, {"Opt", 0}}, agg.entries())
	})
}

func TestAggregateLookup(t *testing.T) {
	type named string

	t.Run("StringKeyedMaps", func(t *testing.T) {
		agg, _ := asAggregate(map[named]int{"x": 1})
		v, ok := agg.lookup("x")
		assert.True(t, ok)
		assert.Equal(t, 1, v)

		agg, _ = asAggregate(map[any]any{"x": 2})
		v, ok = agg.lookup("x")
		assert.True(t, ok)
		assert.Equal(t, 2, v)
	})

	t.Run("OtherKeys", func(t *testing.T) {
		agg, _ := asAggregate(map[int]int{1: 1})
		_, ok := agg.lookup("1")
		assert.False(t, ok)

		agg, _ = asAggregate([]int{1})
		_, ok = agg.lookup("0")
		assert.False(t, ok)
	})

	t.Run("Structs", func(t *testing.T) {
		agg, _ := asAggregate(struct {
			Port int `json:"port"`
		}{8080})
		v, ok := agg.lookup("port")
		assert.True(t, ok)
		assert.Equal(t, 8080, v)

		_, ok = agg.lookup("Port")
		assert.False(t, ok)
	})
}

func TestLiteralEqual(t *testing.T) {
	assert.True(t, literalEqual(1, uint64(1)))
	assert.True(t, literalEqual(0.5, float32(0.5)))
	assert.False(t, literalEqual(1, "1"))
	assert.False(t, literalEqual("a", "b"))
	assert.True(t, literalEqual(nil, nil))
	assert.False(t, literalEqual(true, 1))
}
