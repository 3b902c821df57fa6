package types

import "errors"

var (
	// ErrInvalidTypeParameter is returned when a parameterized primitive is
	// constructed with out-of-range parameters, or a container type with a
	// negative field id.
	ErrInvalidTypeParameter = errors.New("invalid type parameter")

	// ErrDuplicateFieldID is returned when two fields in the same struct, or
	// the key and value fields of one map, carry the same id.
	ErrDuplicateFieldID = errors.New("duplicate field id")

	// ErrDuplicateFieldName is returned when two fields in the same struct
	// carry the same name.
	ErrDuplicateFieldName = errors.New("duplicate field name")

	// ErrDeserialization is returned when a persisted type or schema
	// representation is malformed, truncated, or internally inconsistent.
	ErrDeserialization = errors.New("malformed type representation")
)
