package shape

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tlsConfig struct {
	Cert       string  `json:"cert" shape:"string"`
	MinVersion float64 `json:"min_version" shape:"union(1.2, 1.3)"`
}

type server struct {
	Host     string            `json:"host" shape:"string"`
	Port     int               `json:"port" shape:"range(1, 65535)"`
	Tags     map[string]string `json:"tags" shape:"optional(table(string, string))"`
	TLS      *tlsConfig        `json:"tls"`
	Internal string            `json:"internal" shape:"-"`
	Notes    []int             `json:"notes"`
}

type node struct {
	Name string `shape:"string"`
	Next *node
}

func TestFromTags(t *testing.T) {
	t.Run("Conforming", func(t *testing.T) {
		reg := newTestRegistry(t, RegistryOpts{})
		s := server{Host: "localhost", Port: 443, TLS: &tlsConfig{Cert: "c.pem", MinVersion: 1.3}}
		assert.NoError(t, reg.ValidateStruct(s))
		assert.NoError(t, reg.ValidateStruct(&s))
	})

	t.Run("FieldViolation", func(t *testing.T) {
		reg := newTestRegistry(t, RegistryOpts{})
		err := reg.ValidateStruct(server{Host: "localhost", Port: 70000})
		require.Error(t, err)
		assert.Equal(t, "in struct field port:\nvalue in range [1, 65535] expected, got 70000", err.Error())
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("NestedStruct", func(t *testing.T) {
		reg := newTestRegistry(t, RegistryOpts{})

		// Absent nested structs are accepted
		assert.NoError(t, reg.ValidateStruct(server{Host: "h", Port: 1}))

		err := reg.ValidateStruct(server{Host: "h", Port: 1, TLS: &tlsConfig{Cert: "c", MinVersion: 1.1}})
		require.Error(t, err)
		assert.Equal(t, "in struct field tls:\nin struct field min_version:\nnone of the types in the union fits", err.Error())
	})

	t.Run("SelfReferential", func(t *testing.T) {
		reg := newTestRegistry(t, RegistryOpts{})
		list := &node{Name: "a", Next: &node{Name: "b", Next: &node{Name: "c"}}}
		assert.NoError(t, reg.ValidateStruct(list))
	})

	t.Run("CachedPerType", func(t *testing.T) {
		reg := newTestRegistry(t, RegistryOpts{})
		_, err := reg.FromTags(reflect.TypeOf(server{}))
		require.NoError(t, err)
		_, err = reg.FromTags(reflect.TypeOf(&server{}))
		require.NoError(t, err)
		assert.Equal(t, 1, reg.tagged.Len())

		require.NoError(t, reg.RegisterValidator("even", even))
		assert.Equal(t, 0, reg.tagged.Len())
	})

	t.Run("CustomValidators", func(t *testing.T) {
		type batch struct {
			Size int `json:"size" shape:"even"`
		}
		reg := newTestRegistry(t, RegistryOpts{})

		_, err := reg.FromTags(reflect.TypeOf(batch{}))
		assert.ErrorIs(t, err, ErrUnboundName)

		require.NoError(t, reg.RegisterValidator("even", even))
		assert.NoError(t, reg.ValidateStruct(batch{Size: 4}))

		err = reg.ValidateStruct(batch{Size: 3})
		require.Error(t, err)
		assert.Equal(t, "in struct field size:\neven number expected", err.Error())
	})

	t.Run("BadTag", func(t *testing.T) {
		type broken struct {
			Field int `shape:"list("`
		}
		reg := newTestRegistry(t, RegistryOpts{})
		_, err := reg.FromTags(reflect.TypeOf(broken{}))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSyntax)
		assert.Contains(t, err.Error(), "broken.Field")
	})

	t.Run("NotAStruct", func(t *testing.T) {
		_, err := FromTags(reflect.TypeOf(1))
		assert.ErrorIs(t, err, ErrBadArguments)

		assert.ErrorIs(t, ValidateStruct(nil), ErrBadArguments)
	})
}
