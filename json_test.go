package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test JSON sources
func TestFromJSON(t *testing.T) {
	t.Run("DynamicValueModel", func(t *testing.T) {
		v, err := FromJSON([]byte(`{"name": "John", "age": 30, "tags": ["a", "b"], "admin": false, "boss": null}`))
		require.NoError(t, err)

		m, ok := v.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "John", m["name"])
		assert.Equal(t, float64(30), m["age"])
		assert.Equal(t, []any{"a", "b"}, m["tags"])
		assert.Equal(t, false, m["admin"])
		assert.Nil(t, m["boss"])
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		_, err := FromJSON([]byte(`{"name": `))
		assert.ErrorIs(t, err, ErrInvalidJSON)
	})
}

func TestValidateJSON(t *testing.T) {
	doc := []byte(`{
		"name": "web",
		"replicas": 3,
		"ports": [80, 443],
		"labels": {"tier": "frontend"}
	}`)

	t.Run("Conforming", func(t *testing.T) {
		err := ValidateJSON(Fields{
			"name":     String,
			"replicas": Integer,
			"ports":    must(List(Range(1, 65535))),
			"labels":   must(Table(Type(String), Type(String))),
		}, doc)
		assert.NoError(t, err)
	})

	t.Run("Violation", func(t *testing.T) {
		err := ValidateJSON(Fields{"ports": must(List(Range(1, 100)))}, doc)
		require.Error(t, err)
		assert.Equal(t, "in struct field ports:\nin table value:\nvalue in range [1, 100] expected, got 443", err.Error())
	})

	t.Run("JSONArraysAreSequences", func(t *testing.T) {
		v := must(Table(Count(2), Type(Number)))
		assert.NoError(t, ValidateJSON(v, []byte(`[1, 2]`)))
		assert.Equal(t, "too many elements", ValidateJSON(v, []byte(`[1, 2, 3]`)).Error())
	})

	t.Run("InvalidType", func(t *testing.T) {
		assert.ErrorIs(t, ValidateJSON([]int{}, doc), ErrNotAValidator)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		assert.ErrorIs(t, ValidateJSON(Any(), []byte(`nope`)), ErrInvalidJSON)
	})
}

func TestValidateJSONPath(t *testing.T) {
	doc := []byte(`{"spec": {"containers": [{"name": "app", "image": "nginx"}, {"name": "sidecar"}]}}`)

	t.Run("SelectsPart", func(t *testing.T) {
		err := ValidateJSONPath(must(List(Fields{"name": String})), doc, "spec.containers")
		assert.NoError(t, err)

		err = ValidateJSONPath(String, doc, "spec.containers.0.image")
		assert.NoError(t, err)
	})

	t.Run("MissingPathIsNil", func(t *testing.T) {
		assert.NoError(t, ValidateJSONPath(must(Optional(String)), doc, "spec.containers.1.image"))

		err := ValidateJSONPath(String, doc, "spec.containers.1.image")
		require.Error(t, err)
		assert.Equal(t, "string expected", err.Error())
	})

	t.Run("Source", func(t *testing.T) {
		src := JSONSource{Data: doc, Path: "spec.containers.#"}
		v, err := src.Value()
		require.NoError(t, err)
		assert.Equal(t, float64(2), v)

		assert.NoError(t, src.Validate(must(Inter(Integer, Range(1, 10)))))
	})
}
