package shape

import (
	"fmt"
	"reflect"
)

// FromTags builds a structural validator for a struct type from the
// validator expressions in its `shape` struct tags:
//
//	type Server struct {
//		Host string            `json:"host" shape:"string"`
//		Port int               `json:"port" shape:"range(1, 65535)"`
//		Tags map[string]string `json:"tags" shape:"optional(table(string, string))"`
//		TLS  *TLSConfig        `json:"tls"`
//	}
//
// Fields are keyed by their json name, like every struct viewed as an
// aggregate. Untagged fields holding structs (or pointers to structs) are
// validated against their own tags; other untagged fields and fields tagged
// shape:"-" are not inspected. Validators are cached per type until the
// next Register.
func (reg *Registry) FromTags(typ reflect.Type) (Validator, error) {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct type", ErrBadArguments, typ)
	}
	return reg.tagged.GetOrCreate(typ, func() (Validator, error) {
		return reg.buildFromTags(typ)
	})
}

func (reg *Registry) buildFromTags(typ reflect.Type) (Validator, error) {
	fields := make(Fields)
	for _, f := range structFields(typ) {
		tag, ok := f.field.Tag.Lookup(ShapeTagKey)
		if tag == "-" {
			continue
		}
		if !ok {
			if nested, ok := nestedStruct(f.field.Type); ok {
				fields[f.name] = reg.lazyFromTags(nested)
			}
			continue
		}

		v, err := reg.Compile(tag, nil)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", typ.Name(), f.field.Name, err)
		}
		fields[f.name] = v
	}
	return Struct(fields)
}

// lazyFromTags defers building the nested validator to validation time so
// self-referential types do not recurse while being built. Absent nested
// values are accepted.
func (reg *Registry) lazyFromTags(typ reflect.Type) Validator {
	return func(value any) error {
		if isAbsent(value) {
			return nil
		}
		v, err := reg.FromTags(typ)
		if err != nil {
			return err
		}
		return v(value)
	}
}

// nestedStruct reports whether t is a struct or pointer to struct.
func nestedStruct(t reflect.Type) (reflect.Type, bool) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t, t.Kind() == reflect.Struct
}

// ValidateStruct validates v, a struct or pointer to struct, against the
// validators in its `shape` tags.
func (reg *Registry) ValidateStruct(v any) error {
	if v == nil {
		return fmt.Errorf("%w: nil value", ErrBadArguments)
	}
	t, err := reg.FromTags(reflect.TypeOf(v))
	if err != nil {
		return err
	}
	return t(v)
}

// FromTags builds a validator from struct tags using the global Registry.
func FromTags(typ reflect.Type) (Validator, error) {
	return _gRegistry.FromTags(typ)
}

// ValidateStruct validates v against its struct tags using the global Registry.
func ValidateStruct(v any) error {
	return _gRegistry.ValidateStruct(v)
}
