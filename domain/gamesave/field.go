// Package gamesave provides the game-save container core: schema field
// descriptors, the per-field binary codec, the container gateway and the
// translation of remote storage statuses into outcomes.
package gamesave

import "fmt"

// FieldType is the declared storage type of a persisted schema field.
type FieldType int

const (
	// TypeUnsupported marks a field whose Go type has no codec. Such fields are
	// skipped with a warning on save and never requested on load.
	TypeUnsupported FieldType = iota
	TypeInt16
	TypeInt32
	TypeInt64
	TypeUint16
	TypeUint32
	TypeUint64
	TypeFloat32
	TypeFloat64
	TypeBool
	TypeText
)

var fieldTypeNames = map[FieldType]string{
	TypeUnsupported: "unsupported",
	TypeInt16:       "int16",
	TypeInt32:       "int32",
	TypeInt64:       "int64",
	TypeUint16:      "uint16",
	TypeUint32:      "uint32",
	TypeUint64:      "uint64",
	TypeFloat32:     "float32",
	TypeFloat64:     "float64",
	TypeBool:        "bool",
	TypeText:        "text",
}

func (t FieldType) String() string {
	if name, ok := fieldTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("FieldType(%d)", int(t))
}

// Supported reports whether the codec can encode and decode values of t.
func (t FieldType) Supported() bool {
	_, ok := codecs[t]
	return ok
}

// Width returns the fixed buffer width in bytes for t, or 0 when the width
// depends on the value (text) or the type is unsupported.
func (t FieldType) Width() int {
	c, ok := codecs[t]
	if !ok {
		return 0
	}
	return c.width
}

// Field describes a single persisted field of a schema.
// Ptr must point at the schema's field and match Type: *int32 for TypeInt32,
// *string for TypeText and so on.
type Field struct {
	Name string
	Type FieldType
	Ptr  any
}
