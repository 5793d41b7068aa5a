package gamesave

import "errors"

// Sentinel errors for schema and codec problems.
var (
	// ErrDuplicateField is returned when two fields of a schema share a name.
	ErrDuplicateField = errors.New("duplicate field name")

	// ErrInvalidFieldName is returned when a field name cannot be used as a blob name.
	ErrInvalidFieldName = errors.New("invalid field name")

	// ErrUnsupportedType is returned when a field's declared type has no codec.
	ErrUnsupportedType = errors.New("unsupported field type")

	// ErrFieldPointer is returned when a field's Ptr does not match its declared type.
	ErrFieldPointer = errors.New("field pointer does not match declared type")

	// ErrBufferSize is returned when a buffer's length differs from the type's width.
	ErrBufferSize = errors.New("buffer size does not match field type")

	// ErrInvalidText is returned when a text buffer is not valid UTF-8.
	ErrInvalidText = errors.New("text buffer is not valid UTF-8")
)
