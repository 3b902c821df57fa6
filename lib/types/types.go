package types

import (
	"fmt"
)

// Type is the closed union of logical types a table column can carry. It is
// implemented only inside this package; client code obtains instances through
// the package vars (Boolean, Int64, ...), DecimalOf/FixedOf, and the
// StructOf/ListOf/MapOf constructors.
type Type interface {
	isType()
	Kind() Kind
	// Equal reports structural equality: same variant and, recursively, same
	// parameters and field sequences.
	Equal(other Type) bool
	String() string
}

type Kind uint8

const (
	KindBoolean Kind = iota
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindDate
	KindTime
	KindTimestamp
	KindTimestampTZ
	KindString
	KindUUID
	KindBinary
	KindDecimal
	KindFixed
	KindStruct
	KindList
	KindMap
)

func (k Kind) String() string {
	if t, ok := primitives[k]; ok {
		return t.String()
	}
	switch k {
	case KindDecimal:
		return "decimal"
	case KindFixed:
		return "fixed"
	case KindStruct:
		return "struct"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// primitive is a stateless primitive type. Exactly one instance exists per
// kind for the life of the process; equality is pointer identity.
type primitive struct {
	kind Kind
	name string
}

// Canonical instances of the stateless primitives. Always use these (or the
// Primitive registry lookup) instead of holding copies: downstream code relies
// on two occurrences of the same stateless kind being the identical pointer.
var (
	Boolean     Type = &primitive{KindBoolean, "boolean"}
	Int32       Type = &primitive{KindInt32, "int32"}
	Int64       Type = &primitive{KindInt64, "int64"}
	Float32     Type = &primitive{KindFloat32, "float32"}
	Float64     Type = &primitive{KindFloat64, "float64"}
	Date        Type = &primitive{KindDate, "date"}
	Time        Type = &primitive{KindTime, "time"}
	Timestamp   Type = &primitive{KindTimestamp, "timestamp"}
	TimestampTZ Type = &primitive{KindTimestampTZ, "timestamptz"}
	String      Type = &primitive{KindString, "string"}
	UUID        Type = &primitive{KindUUID, "uuid"}
	Binary      Type = &primitive{KindBinary, "binary"}
)

var (
	primitives       map[Kind]Type
	primitivesByName map[string]Type
)

func init() {
	all := []Type{
		Boolean, Int32, Int64, Float32, Float64, Date, Time,
		Timestamp, TimestampTZ, String, UUID, Binary,
	}
	primitives = make(map[Kind]Type, len(all))
	primitivesByName = make(map[string]Type, len(all))
	for _, t := range all {
		p := t.(*primitive)
		primitives[p.kind] = t
		primitivesByName[p.name] = t
	}
}

// Primitive returns the canonical shared instance for a stateless primitive
// kind. The second return is false for parameterized or nested kinds.
func Primitive(kind Kind) (Type, bool) {
	t, ok := primitives[kind]
	return t, ok
}

func (p *primitive) isType()    {}
func (p *primitive) Kind() Kind { return p.kind }
func (p *primitive) Equal(other Type) bool {
	o, ok := other.(*primitive)
	return ok && o == p
}
func (p *primitive) String() string { return p.name }

// DecimalType is a fixed-precision decimal. Instances with equal precision
// and scale compare equal but are not shared.
type DecimalType struct {
	precision int
	scale     int
}

const maxDecimalPrecision = 38

// DecimalOf builds a decimal type with precision in [1, 38] and scale in
// [0, precision].
func DecimalOf(precision, scale int) (DecimalType, error) {
	if precision < 1 || precision > maxDecimalPrecision {
		return DecimalType{}, fmt.Errorf(
			"%w: decimal precision %d outside [1, %d]",
			ErrInvalidTypeParameter, precision, maxDecimalPrecision)
	}
	if scale < 0 || scale > precision {
		return DecimalType{}, fmt.Errorf(
			"%w: decimal scale %d outside [0, precision %d]",
			ErrInvalidTypeParameter, scale, precision)
	}
	return DecimalType{precision: precision, scale: scale}, nil
}

func (d DecimalType) isType()        {}
func (d DecimalType) Kind() Kind     { return KindDecimal }
func (d DecimalType) Precision() int { return d.precision }
func (d DecimalType) Scale() int     { return d.scale }
func (d DecimalType) Equal(other Type) bool {
	o, ok := other.(DecimalType)
	return ok && o == d
}
func (d DecimalType) String() string {
	return fmt.Sprintf("decimal(%d, %d)", d.precision, d.scale)
}

// FixedType is a fixed-length binary. Instances with equal length compare
// equal but are not shared.
type FixedType struct {
	length int
}

// FixedOf builds a fixed-length binary type; length must be >= 0.
func FixedOf(length int) (FixedType, error) {
	if length < 0 {
		return FixedType{}, fmt.Errorf(
			"%w: fixed length %d is negative", ErrInvalidTypeParameter, length)
	}
	return FixedType{length: length}, nil
}

func (f FixedType) isType()    {}
func (f FixedType) Kind() Kind { return KindFixed }
func (f FixedType) Length() int { return f.length }
func (f FixedType) Equal(other Type) bool {
	o, ok := other.(FixedType)
	return ok && o == f
}
func (f FixedType) String() string { return fmt.Sprintf("fixed[%d]", f.length) }
