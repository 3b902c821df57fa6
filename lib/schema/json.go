package schema

import (
	"fmt"

	"floe/lib/types"
)

// ToJson serializes a schema as its root struct's representation.
func ToJson(s *Schema) ([]byte, error) {
	return types.ToJson(s.root)
}

// FromJson reconstructs a schema, rebuilding all lookup indices. The round
// trip preserves field ids, names, optionality and docs exactly, and
// stateless primitives resolve to their canonical shared instances.
func FromJson(data []byte) (*Schema, error) {
	t, err := types.FromJson(data)
	if err != nil {
		return nil, err
	}
	root, ok := t.(*types.StructType)
	if !ok {
		return nil, fmt.Errorf("%w: schema root is %s, not a struct",
			types.ErrDeserialization, t)
	}
	s, err := FromStruct(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrDeserialization, err)
	}
	return s, nil
}
