package types

import (
	"encoding/json"
	"fmt"

	"github.com/buger/jsonparser"
	"github.com/samber/mo"
)

// Persisted representation: primitives are their name strings ("int64",
// "decimal(9, 3)", "fixed[4]"), containers are objects tagged with
// "type": "struct" | "list" | "map". Field order, ids, optionality and docs
// round-trip exactly; an absent doc is omitted, never written as "".

type jsonField struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Required bool    `json:"required"`
	Type     any     `json:"type"`
	Doc      *string `json:"doc,omitempty"`
}

type jsonStruct struct {
	Type   string      `json:"type"`
	Fields []jsonField `json:"fields"`
}

type jsonList struct {
	Type            string  `json:"type"`
	ElementID       int     `json:"element-id"`
	Element         any     `json:"element"`
	ElementRequired bool    `json:"element-required"`
	ElementDoc      *string `json:"element-doc,omitempty"`
}

type jsonMap struct {
	Type          string  `json:"type"`
	KeyID         int     `json:"key-id"`
	Key           any     `json:"key"`
	KeyDoc        *string `json:"key-doc,omitempty"`
	ValueID       int     `json:"value-id"`
	Value         any     `json:"value"`
	ValueRequired bool    `json:"value-required"`
	ValueDoc      *string `json:"value-doc,omitempty"`
}

// ToJson serializes a type tree to its persisted JSON representation.
func ToJson(t Type) ([]byte, error) {
	repr, err := typeToJson(t)
	if err != nil {
		return nil, err
	}
	return json.Marshal(repr)
}

func typeToJson(t Type) (any, error) {
	switch v := t.(type) {
	case *primitive, DecimalType, FixedType:
		return t.String(), nil
	case *StructType:
		fields := make([]jsonField, 0, len(v.fields))
		for _, f := range v.fields {
			jf, err := fieldToJson(f)
			if err != nil {
				return nil, err
			}
			fields = append(fields, jf)
		}
		return jsonStruct{Type: "struct", Fields: fields}, nil
	case *ListType:
		elem, err := typeToJson(v.element.typ)
		if err != nil {
			return nil, err
		}
		return jsonList{
			Type:            "list",
			ElementID:       v.element.id,
			Element:         elem,
			ElementRequired: !v.element.optional,
			ElementDoc:      docPtr(v.element.doc),
		}, nil
	case *MapType:
		key, err := typeToJson(v.key.typ)
		if err != nil {
			return nil, err
		}
		value, err := typeToJson(v.value.typ)
		if err != nil {
			return nil, err
		}
		return jsonMap{
			Type:          "map",
			KeyID:         v.key.id,
			Key:           key,
			KeyDoc:        docPtr(v.key.doc),
			ValueID:       v.value.id,
			Value:         value,
			ValueRequired: !v.value.optional,
			ValueDoc:      docPtr(v.value.doc),
		}, nil
	default:
		return nil, fmt.Errorf("json serialization for %T not implemented", t)
	}
}

func fieldToJson(f NestedField) (jsonField, error) {
	typ, err := typeToJson(f.typ)
	if err != nil {
		return jsonField{}, err
	}
	return jsonField{
		ID:       f.id,
		Name:     f.name,
		Required: !f.optional,
		Type:     typ,
		Doc:      docPtr(f.doc),
	}, nil
}

func docPtr(doc mo.Option[string]) *string {
	if d, ok := doc.Get(); ok {
		return &d
	}
	return nil
}

// FromJson reconstructs a type tree from its persisted representation.
// Stateless primitives are resolved through the canonical registry, so the
// reconstructed occurrences are the identical shared instances. Malformed
// input fails with ErrDeserialization.
func FromJson(data []byte) (Type, error) {
	vdata, vtype, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDeserialization, err)
	}
	return parseType(vdata, vtype)
}

func parseType(vdata []byte, vtype jsonparser.ValueType) (Type, error) {
	switch vtype {
	case jsonparser.String:
		name, err := jsonparser.ParseString(vdata)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrDeserialization, err)
		}
		return primitiveFromName(name)
	case jsonparser.Object:
		tag, err := jsonparser.GetString(vdata, "type")
		if err != nil {
			return nil, fmt.Errorf("%w: container without a type tag: %s", ErrDeserialization, err)
		}
		switch tag {
		case "struct":
			return parseStruct(vdata)
		case "list":
			return parseList(vdata)
		case "map":
			return parseMap(vdata)
		default:
			return nil, fmt.Errorf("%w: unknown container type %q", ErrDeserialization, tag)
		}
	default:
		return nil, fmt.Errorf("%w: expected a type name or container object", ErrDeserialization)
	}
}

func primitiveFromName(name string) (Type, error) {
	if t, ok := primitivesByName[name]; ok {
		return t, nil
	}
	var p, s int
	if n, err := fmt.Sscanf(name, "decimal(%d, %d)", &p, &s); err == nil && n == 2 {
		t, err := DecimalOf(p, s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrDeserialization, err)
		}
		return t, nil
	}
	var l int
	if n, err := fmt.Sscanf(name, "fixed[%d]", &l); err == nil && n == 1 {
		t, err := FixedOf(l)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrDeserialization, err)
		}
		return t, nil
	}
	return nil, fmt.Errorf("%w: unknown type name %q", ErrDeserialization, name)
}

func parseStruct(vdata []byte) (Type, error) {
	var fields []NestedField
	var errs []error
	handler := func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
		if err != nil {
			errs = append(errs, err)
			return
		}
		if dataType != jsonparser.Object {
			errs = append(errs, fmt.Errorf("struct field is not an object"))
			return
		}
		f, err := parseField(value)
		if err != nil {
			errs = append(errs, err)
			return
		}
		fields = append(fields, f)
	}
	if _, err := jsonparser.ArrayEach(vdata, handler, "fields"); err != nil && err != jsonparser.KeyPathNotFoundError {
		return nil, fmt.Errorf("%w: %s", ErrDeserialization, err)
	}
	if len(errs) != 0 {
		return nil, fmt.Errorf("%w: %s", ErrDeserialization, errs[0])
	}
	st, err := StructOf(fields...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDeserialization, err)
	}
	return st, nil
}

func parseField(vdata []byte) (NestedField, error) {
	id, err := jsonparser.GetInt(vdata, "id")
	if err != nil {
		return NestedField{}, fmt.Errorf("field id: %s", err)
	}
	name, err := jsonparser.GetString(vdata, "name")
	if err != nil {
		return NestedField{}, fmt.Errorf("field name: %s", err)
	}
	required, err := jsonparser.GetBoolean(vdata, "required")
	if err != nil {
		return NestedField{}, fmt.Errorf("field required flag: %s", err)
	}
	tdata, ttype, _, err := jsonparser.Get(vdata, "type")
	if err != nil {
		return NestedField{}, fmt.Errorf("field type: %s", err)
	}
	typ, err := parseType(tdata, ttype)
	if err != nil {
		return NestedField{}, err
	}
	doc, err := parseDoc(vdata, "doc")
	if err != nil {
		return NestedField{}, err
	}
	return NestedField{
		id:       int(id),
		name:     name,
		typ:      typ,
		optional: !required,
		doc:      doc,
	}, nil
}

// parseDoc distinguishes an absent doc key from a present one; only a present
// key yields mo.Some.
func parseDoc(vdata []byte, key string) (mo.Option[string], error) {
	doc, err := jsonparser.GetString(vdata, key)
	switch err {
	case nil:
		return mo.Some(doc), nil
	case jsonparser.KeyPathNotFoundError:
		return mo.None[string](), nil
	default:
		return mo.None[string](), fmt.Errorf("field %s: %s", key, err)
	}
}

func parseList(vdata []byte) (Type, error) {
	elementID, err := jsonparser.GetInt(vdata, "element-id")
	if err != nil {
		return nil, fmt.Errorf("%w: list element-id: %s", ErrDeserialization, err)
	}
	edata, etype, _, err := jsonparser.Get(vdata, "element")
	if err != nil {
		return nil, fmt.Errorf("%w: list element: %s", ErrDeserialization, err)
	}
	elem, err := parseType(edata, etype)
	if err != nil {
		return nil, err
	}
	required, err := jsonparser.GetBoolean(vdata, "element-required")
	if err != nil {
		return nil, fmt.Errorf("%w: list element-required: %s", ErrDeserialization, err)
	}
	doc, err := parseDoc(vdata, "element-doc")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDeserialization, err)
	}
	lt, err := ListOf(int(elementID), elem, !required, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDeserialization, err)
	}
	return lt, nil
}

func parseMap(vdata []byte) (Type, error) {
	keyID, err := jsonparser.GetInt(vdata, "key-id")
	if err != nil {
		return nil, fmt.Errorf("%w: map key-id: %s", ErrDeserialization, err)
	}
	kdata, ktype, _, err := jsonparser.Get(vdata, "key")
	if err != nil {
		return nil, fmt.Errorf("%w: map key: %s", ErrDeserialization, err)
	}
	key, err := parseType(kdata, ktype)
	if err != nil {
		return nil, err
	}
	valueID, err := jsonparser.GetInt(vdata, "value-id")
	if err != nil {
		return nil, fmt.Errorf("%w: map value-id: %s", ErrDeserialization, err)
	}
	vvdata, vvtype, _, err := jsonparser.Get(vdata, "value")
	if err != nil {
		return nil, fmt.Errorf("%w: map value: %s", ErrDeserialization, err)
	}
	value, err := parseType(vvdata, vvtype)
	if err != nil {
		return nil, err
	}
	valueRequired, err := jsonparser.GetBoolean(vdata, "value-required")
	if err != nil {
		return nil, fmt.Errorf("%w: map value-required: %s", ErrDeserialization, err)
	}
	keyDoc, err := parseDoc(vdata, "key-doc")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDeserialization, err)
	}
	valueDoc, err := parseDoc(vdata, "value-doc")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDeserialization, err)
	}
	mt, err := MapOf(int(keyID), int(valueID), key, value, !valueRequired, keyDoc, valueDoc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDeserialization, err)
	}
	return mt, nil
}
