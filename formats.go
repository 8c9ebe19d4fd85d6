package shape

import (
	"reflect"

	"github.com/google/uuid"
)

// UUID accepts strings holding a UUID in any form uuid.Parse understands,
// as well as uuid.UUID values themselves.
var UUID Validator = func(value any) error {
	if _, ok := value.(uuid.UUID); ok {
		return nil
	}
	if !isKind(value, reflect.String) {
		return failf(ErrKindMismatch, "%s expected", StringName)
	}
	rv, _ := indirect(value)
	if _, err := uuid.Parse(rv.String()); err != nil {
		return failf(ErrFormat, "%s expected", UUIDName)
	}
	return nil
}

// NonNilUUID is UUID that also rejects the all-zero UUID.
var NonNilUUID Validator = func(value any) error {
	if err := UUID(value); err != nil {
		return err
	}
	var id uuid.UUID
	if u, ok := value.(uuid.UUID); ok {
		id = u
	} else {
		rv, _ := indirect(value)
		id = uuid.MustParse(rv.String())
	}
	if id == uuid.Nil {
		return failf(ErrFormat, "non-nil %s expected", UUIDName)
	}
	return nil
}
