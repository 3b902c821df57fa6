package schema

import (
	"fmt"

	"floe/lib/types"

	"github.com/samber/lo"
)

// Schema is a table's column layout: a root struct plus eager lookup indices
// over the whole nested tree. Schemas are immutable; evolution produces a new
// Schema rather than mutating one in place.
type Schema struct {
	root      *types.StructType
	byID      map[int]types.NestedField
	idByName  map[string]int
	highestID int
}

// New builds a schema from top-level fields. It flattens the full tree and
// fails if any field id repeats at any depth.
func New(fields ...types.NestedField) (*Schema, error) {
	root, err := types.StructOf(fields...)
	if err != nil {
		return nil, err
	}
	return FromStruct(root)
}

// FromStruct builds a schema around an existing root struct.
func FromStruct(root *types.StructType) (*Schema, error) {
	s := &Schema{
		root:     root,
		byID:     make(map[int]types.NestedField),
		idByName: make(map[string]int),
	}
	for _, f := range root.Fields() {
		if err := s.index("", f); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// index registers a field under its dotted path and recurses into nested
// containers. List elements are addressed as "name.element", map entries as
// "name.key" and "name.value".
func (s *Schema) index(prefix string, f types.NestedField) error {
	if prev, ok := s.byID[f.ID()]; ok {
		return fmt.Errorf("%w: %d used by both %q and %q",
			types.ErrDuplicateFieldID, f.ID(), prev.Name(), f.Name())
	}
	s.byID[f.ID()] = f
	path := prefix + f.Name()
	s.idByName[path] = f.ID()
	if f.ID() > s.highestID {
		s.highestID = f.ID()
	}
	switch t := f.Type().(type) {
	case *types.StructType:
		for _, child := range t.Fields() {
			if err := s.index(path+".", child); err != nil {
				return err
			}
		}
	case *types.ListType:
		return s.index(path+".", t.Element())
	case *types.MapType:
		if err := s.index(path+".", t.Key()); err != nil {
			return err
		}
		return s.index(path+".", t.Value())
	}
	return nil
}

// AsStruct returns the schema's root struct.
func (s *Schema) AsStruct() *types.StructType { return s.root }

// Fields returns the top-level fields in declaration order.
func (s *Schema) Fields() []types.NestedField { return s.root.Fields() }

// Columns returns the top-level field names in declaration order.
func (s *Schema) Columns() []string {
	return lo.Map(s.root.Fields(), func(f types.NestedField, _ int) string {
		return f.Name()
	})
}

// FieldByID looks a field up anywhere in the tree by its id.
func (s *Schema) FieldByID(id int) (types.NestedField, bool) {
	f, ok := s.byID[id]
	return f, ok
}

// FieldByName looks a field up by its dotted path, e.g. "locations.value.lat".
func (s *Schema) FieldByName(path string) (types.NestedField, bool) {
	id, ok := s.idByName[path]
	if !ok {
		return types.NestedField{}, false
	}
	return s.byID[id], true
}

// HighestFieldID is the watermark evolution uses to allocate fresh ids.
func (s *Schema) HighestFieldID() int { return s.highestID }

// Equal reports whether two schemas have equal root structs, including all
// nested ids, names, docs and optionality.
func (s *Schema) Equal(other *Schema) bool {
	return s.root.Equal(other.root)
}

func (s *Schema) String() string { return s.root.String() }
