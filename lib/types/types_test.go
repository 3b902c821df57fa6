package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveRegistryIdentity(t *testing.T) {
	kinds := map[Kind]Type{
		KindBoolean:     Boolean,
		KindInt32:       Int32,
		KindInt64:       Int64,
		KindFloat32:     Float32,
		KindFloat64:     Float64,
		KindDate:        Date,
		KindTime:        Time,
		KindTimestamp:   Timestamp,
		KindTimestampTZ: TimestampTZ,
		KindString:      String,
		KindUUID:        UUID,
		KindBinary:      Binary,
	}
	for kind, want := range kinds {
		got, ok := Primitive(kind)
		require.True(t, ok)
		assert.Same(t, want, got)
		assert.Equal(t, kind, got.Kind())
		assert.True(t, got.Equal(want))
	}
}

func TestPrimitiveRegistryMissesParameterizedKinds(t *testing.T) {
	for _, kind := range []Kind{KindDecimal, KindFixed, KindStruct, KindList, KindMap} {
		_, ok := Primitive(kind)
		assert.False(t, ok)
	}
}

func TestPrimitiveEquality(t *testing.T) {
	assert.True(t, Int64.Equal(Int64))
	assert.False(t, Int64.Equal(Int32))
	assert.False(t, Boolean.Equal(String))
	assert.False(t, Timestamp.Equal(TimestampTZ))
}

func TestDecimalOf(t *testing.T) {
	d, err := DecimalOf(9, 3)
	require.NoError(t, err)
	assert.Equal(t, 9, d.Precision())
	assert.Equal(t, 3, d.Scale())
	assert.Equal(t, "decimal(9, 3)", d.String())

	same, err := DecimalOf(9, 3)
	require.NoError(t, err)
	assert.True(t, d.Equal(same))

	other, err := DecimalOf(9, 2)
	require.NoError(t, err)
	assert.False(t, d.Equal(other))
}

func TestDecimalOfValidation(t *testing.T) {
	cases := []struct{ precision, scale int }{
		{0, 0},
		{39, 0},
		{-1, 0},
		{9, -1},
		{9, 10}, // scale beyond precision
	}
	for _, c := range cases {
		_, err := DecimalOf(c.precision, c.scale)
		assert.ErrorIs(t, err, ErrInvalidTypeParameter)
	}
}

func TestFixedOf(t *testing.T) {
	f, err := FixedOf(16)
	require.NoError(t, err)
	assert.Equal(t, 16, f.Length())
	assert.Equal(t, "fixed[16]", f.String())

	zero, err := FixedOf(0)
	require.NoError(t, err)
	assert.False(t, f.Equal(zero))

	_, err = FixedOf(-1)
	assert.ErrorIs(t, err, ErrInvalidTypeParameter)
}

func TestDecimalNotEqualFixed(t *testing.T) {
	d, err := DecimalOf(4, 0)
	require.NoError(t, err)
	f, err := FixedOf(4)
	require.NoError(t, err)
	assert.False(t, d.Equal(f))
	assert.False(t, f.Equal(d))
}
