package gamesave

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/go-monolith/mono/pkg/types"
)

// Blobs maps field names to encoded buffers.
type Blobs map[string][]byte

// Size returns the total number of payload bytes in b.
func (b Blobs) Size() int {
	total := 0
	for _, data := range b {
		total += len(data)
	}
	return total
}

type fieldCodec struct {
	width  int
	encode func(ptr any) ([]byte, error)
	decode func(buf []byte, ptr any) error
}

var le = binary.LittleEndian

var codecs = map[FieldType]fieldCodec{
	TypeInt16: fixed(2,
		func(b []byte, v int16) { le.PutUint16(b, uint16(v)) },
		func(b []byte) int16 { return int16(le.Uint16(b)) }),
	TypeInt32: fixed(4,
		func(b []byte, v int32) { le.PutUint32(b, uint32(v)) },
		func(b []byte) int32 { return int32(le.Uint32(b)) }),
	TypeInt64: fixed(8,
		func(b []byte, v int64) { le.PutUint64(b, uint64(v)) },
		func(b []byte) int64 { return int64(le.Uint64(b)) }),
	TypeUint16: fixed(2, le.PutUint16, le.Uint16),
	TypeUint32: fixed(4, le.PutUint32, le.Uint32),
	TypeUint64: fixed(8, le.PutUint64, le.Uint64),
	TypeFloat32: fixed(4,
		func(b []byte, v float32) { le.PutUint32(b, math.Float32bits(v)) },
		func(b []byte) float32 { return math.Float32frombits(le.Uint32(b)) }),
	TypeFloat64: fixed(8,
		func(b []byte, v float64) { le.PutUint64(b, math.Float64bits(v)) },
		func(b []byte) float64 { return math.Float64frombits(le.Uint64(b)) }),
	TypeBool: fixed(1,
		func(b []byte, v bool) {
			if v {
				b[0] = 1
			}
		},
		func(b []byte) bool { return b[0] != 0 }),
	TypeText: {
		encode: func(ptr any) ([]byte, error) {
			p, err := pointerTo[string](ptr)
			if err != nil {
				return nil, err
			}
			return []byte(*p), nil
		},
		decode: func(buf []byte, ptr any) error {
			p, err := pointerTo[string](ptr)
			if err != nil {
				return err
			}
			if !utf8.Valid(buf) {
				return ErrInvalidText
			}
			*p = string(buf)
			return nil
		},
	},
}

func fixed[T any](width int, put func([]byte, T), get func([]byte) T) fieldCodec {
	return fieldCodec{
		width: width,
		encode: func(ptr any) ([]byte, error) {
			p, err := pointerTo[T](ptr)
			if err != nil {
				return nil, err
			}
			buf := make([]byte, width)
			put(buf, *p)
			return buf, nil
		},
		decode: func(buf []byte, ptr any) error {
			p, err := pointerTo[T](ptr)
			if err != nil {
				return err
			}
			if len(buf) != width {
				return fmt.Errorf("%w: got %d bytes, want %d", ErrBufferSize, len(buf), width)
			}
			*p = get(buf)
			return nil
		},
	}
}

func pointerTo[T any](ptr any) (*T, error) {
	p, ok := ptr.(*T)
	if !ok || p == nil {
		var zero T
		return nil, fmt.Errorf("%w: want *%T, got %T", ErrFieldPointer, zero, ptr)
	}
	return p, nil
}

// EncodeField encodes a single field value.
func EncodeField(f Field) ([]byte, error) {
	c, ok := codecs[f.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, f.Type)
	}
	return c.encode(f.Ptr)
}

// DecodeField decodes buf into the value f points at. The value is left
// unchanged when an error is returned.
func DecodeField(f Field, buf []byte) error {
	c, ok := codecs[f.Type]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, f.Type)
	}
	return c.decode(buf, f.Ptr)
}

// Encode converts every supported persisted field of s into a buffer keyed by
// field name. Fields that cannot be encoded are logged and omitted.
func Encode(s Schema, logger types.Logger) Blobs {
	logger = orNop(logger)
	fields := s.Fields()
	blobs := make(Blobs, len(fields))
	for _, f := range fields {
		if !f.Type.Supported() {
			logger.Warn("Unsupported field type, skipping on save", "field", f.Name, "type", f.Type.String())
			continue
		}
		buf, err := EncodeField(f)
		if err != nil {
			logger.Error("Failed to encode field", "field", f.Name, "type", f.Type.String(), "error", err)
			continue
		}
		blobs[f.Name] = buf
	}
	return blobs
}

// Decode assigns buffers from blobs to the matching fields of s and returns the
// number of fields assigned. Keys without a matching field are ignored. A field
// whose buffer fails to decode is logged and left unchanged.
func Decode(s Schema, blobs Blobs, logger types.Logger) int {
	logger = orNop(logger)
	assigned := 0
	for _, f := range s.Fields() {
		buf, ok := blobs[f.Name]
		if !ok {
			continue
		}
		if !f.Type.Supported() {
			logger.Warn("Unsupported field type, skipping on load", "field", f.Name, "type", f.Type.String())
			continue
		}
		if err := DecodeField(f, buf); err != nil {
			logger.Error("Failed to decode field", "field", f.Name, "type", f.Type.String(), "error", err)
			continue
		}
		assigned++
	}
	return assigned
}
