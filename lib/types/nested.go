package types

import (
	"fmt"
	"strings"

	"github.com/samber/mo"
)

// NestedField binds a field id, name, optionality and optional doc string to
// a Type. Values are immutable; the id is the only identifier that survives
// schema evolution and renames.
type NestedField struct {
	id       int
	name     string
	typ      Type
	optional bool
	doc      mo.Option[string]
}

func Required(id int, name string, typ Type) NestedField {
	return NestedField{id: id, name: name, typ: typ}
}

func RequiredWithDoc(id int, name string, typ Type, doc string) NestedField {
	return NestedField{id: id, name: name, typ: typ, doc: mo.Some(doc)}
}

func Optional(id int, name string, typ Type) NestedField {
	return NestedField{id: id, name: name, typ: typ, optional: true}
}

func OptionalWithDoc(id int, name string, typ Type, doc string) NestedField {
	return NestedField{id: id, name: name, typ: typ, optional: true, doc: mo.Some(doc)}
}

func (f NestedField) ID() int          { return f.id }
func (f NestedField) Name() string     { return f.name }
func (f NestedField) Type() Type       { return f.typ }
func (f NestedField) IsOptional() bool { return f.optional }
func (f NestedField) IsRequired() bool { return !f.optional }

// Doc returns the field's doc string. Absence (mo.None) is meaningful and is
// preserved through serialization; it is never collapsed to "".
func (f NestedField) Doc() mo.Option[string] { return f.doc }

func (f NestedField) Equal(other NestedField) bool {
	return f.id == other.id &&
		f.name == other.name &&
		f.optional == other.optional &&
		f.doc == other.doc &&
		f.typ.Equal(other.typ)
}

func (f NestedField) String() string {
	req := "required"
	if f.optional {
		req = "optional"
	}
	return fmt.Sprintf("%d: %s: %s %s", f.id, f.name, req, f.typ)
}

// StructType is an ordered sequence of named fields with eager id and name
// indices. Use StructOf to construct one.
type StructType struct {
	fields []NestedField
	byName map[string]int
	byID   map[int]int
}

// StructOf builds a struct from the given fields, preserving order. It fails
// if two fields share an id or a name; nested trees are not inspected here
// (global id uniqueness is checked when the struct is embedded in a schema).
func StructOf(fields ...NestedField) (*StructType, error) {
	st := &StructType{
		fields: fields,
		byName: make(map[string]int, len(fields)),
		byID:   make(map[int]int, len(fields)),
	}
	for i, f := range fields {
		if j, ok := st.byID[f.ID()]; ok {
			return nil, fmt.Errorf("%w: %d used by both %q and %q",
				ErrDuplicateFieldID, f.ID(), fields[j].Name(), f.Name())
		}
		if _, ok := st.byName[f.Name()]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateFieldName, f.Name())
		}
		st.byID[f.ID()] = i
		st.byName[f.Name()] = i
	}
	return st, nil
}

func (s *StructType) isType()    {}
func (s *StructType) Kind() Kind { return KindStruct }

// Fields returns the struct's fields in declaration order. The returned slice
// must not be modified.
func (s *StructType) Fields() []NestedField { return s.fields }

func (s *StructType) FieldByName(name string) (NestedField, bool) {
	i, ok := s.byName[name]
	if !ok {
		return NestedField{}, false
	}
	return s.fields[i], true
}

func (s *StructType) FieldByID(id int) (NestedField, bool) {
	i, ok := s.byID[id]
	if !ok {
		return NestedField{}, false
	}
	return s.fields[i], true
}

// FieldTypeByName is a convenience for FieldByName(...).Type().
func (s *StructType) FieldTypeByName(name string) (Type, bool) {
	f, ok := s.FieldByName(name)
	if !ok {
		return nil, false
	}
	return f.Type(), true
}

func (s *StructType) Equal(other Type) bool {
	o, ok := other.(*StructType)
	if !ok || len(s.fields) != len(o.fields) {
		return false
	}
	for i := range s.fields {
		if !s.fields[i].Equal(o.fields[i]) {
			return false
		}
	}
	return true
}

func (s *StructType) String() string {
	var b strings.Builder
	b.WriteString("struct<")
	for i, f := range s.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.String())
	}
	b.WriteString(">")
	return b.String()
}

// ListType holds a single element field named "element" with its own id,
// optionality and doc.
type ListType struct {
	element NestedField
}

// ListOf builds a list whose elements have the given id and type. Pass
// mo.None[string]() for an undocumented element.
func ListOf(elementID int, element Type, optional bool, doc mo.Option[string]) (*ListType, error) {
	if elementID < 0 {
		return nil, fmt.Errorf("%w: list element id %d is negative",
			ErrInvalidTypeParameter, elementID)
	}
	f := NestedField{id: elementID, name: "element", typ: element, optional: optional, doc: doc}
	return &ListType{element: f}, nil
}

func (l *ListType) isType()    {}
func (l *ListType) Kind() Kind { return KindList }

func (l *ListType) Element() NestedField          { return l.element }
func (l *ListType) ElementID() int                { return l.element.id }
func (l *ListType) ElementType() Type             { return l.element.typ }
func (l *ListType) ElementDoc() mo.Option[string] { return l.element.doc }
func (l *ListType) IsElementOptional() bool       { return l.element.optional }

func (l *ListType) Equal(other Type) bool {
	o, ok := other.(*ListType)
	return ok && l.element.Equal(o.element)
}

func (l *ListType) String() string {
	return fmt.Sprintf("list<%s>", l.element.typ)
}

// MapType holds two synthetic fields, "key" and "value". The key field is
// always required; value optionality is configurable.
type MapType struct {
	key   NestedField
	value NestedField
}

// MapOf builds a map from key and value types. Key and value ids must be
// non-negative and distinct. Pass mo.None[string]() for undocumented keys or
// values.
func MapOf(keyID, valueID int, key, value Type, valueOptional bool, keyDoc, valueDoc mo.Option[string]) (*MapType, error) {
	if keyID < 0 || valueID < 0 {
		return nil, fmt.Errorf("%w: map key id %d and value id %d must be non-negative",
			ErrInvalidTypeParameter, keyID, valueID)
	}
	if keyID == valueID {
		return nil, fmt.Errorf("%w: map key and value share id %d",
			ErrDuplicateFieldID, keyID)
	}
	return &MapType{
		key:   NestedField{id: keyID, name: "key", typ: key, doc: keyDoc},
		value: NestedField{id: valueID, name: "value", typ: value, optional: valueOptional, doc: valueDoc},
	}, nil
}

func (m *MapType) isType()    {}
func (m *MapType) Kind() Kind { return KindMap }

func (m *MapType) Key() NestedField            { return m.key }
func (m *MapType) Value() NestedField          { return m.value }
func (m *MapType) KeyID() int                  { return m.key.id }
func (m *MapType) ValueID() int                { return m.value.id }
func (m *MapType) KeyType() Type               { return m.key.typ }
func (m *MapType) ValueType() Type             { return m.value.typ }
func (m *MapType) KeyDoc() mo.Option[string]   { return m.key.doc }
func (m *MapType) ValueDoc() mo.Option[string] { return m.value.doc }
func (m *MapType) IsValueOptional() bool       { return m.value.optional }

func (m *MapType) Equal(other Type) bool {
	o, ok := other.(*MapType)
	return ok && m.key.Equal(o.key) && m.value.Equal(o.value)
}

func (m *MapType) String() string {
	return fmt.Sprintf("map<%s, %s>", m.key.typ, m.value.typ)
}
