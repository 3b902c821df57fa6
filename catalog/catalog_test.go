package catalog

import (
	"path/filepath"
	"testing"

	"floe/lib/schema"
	"floe/lib/types"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	location, err := types.StructOf(
		types.Required(5, "lat", types.Float32),
		types.Required(6, "long", types.Float32),
	)
	require.NoError(t, err)
	locations, err := types.MapOf(3, 4, types.String, location, false,
		mo.None[string](), mo.Some("visited places"))
	require.NoError(t, err)

	s, err := schema.New(
		types.Required(1, "id", types.Int64),
		types.OptionalWithDoc(2, "data", types.String, "opaque payload"),
		types.Required(7, "locations", locations),
	)
	require.NoError(t, err)
	return s
}

func open(t *testing.T, path string) *Catalog {
	t.Helper()
	c, err := Open(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCatalogCreateLoad(t *testing.T) {
	c := open(t, filepath.Join(t.TempDir(), "catalog.db"))
	want := testSchema(t)

	require.NoError(t, c.CreateTable("events", want))
	got, err := c.LoadTable("events")
	require.NoError(t, err)

	assert.True(t, want.Equal(got))
	f, ok := got.FieldByName("data")
	require.True(t, ok)
	assert.Same(t, types.String, f.Type())
	assert.Equal(t, mo.Some("opaque payload"), f.Doc())
	f, ok = got.FieldByName("locations.value")
	require.True(t, ok)
	assert.Equal(t, mo.Some("visited places"), f.Doc())
}

func TestCatalogCreateDuplicate(t *testing.T) {
	c := open(t, filepath.Join(t.TempDir(), "catalog.db"))
	s := testSchema(t)

	require.NoError(t, c.CreateTable("events", s))
	assert.ErrorIs(t, c.CreateTable("events", s), ErrTableExists)
}

func TestCatalogLoadMissing(t *testing.T) {
	c := open(t, filepath.Join(t.TempDir(), "catalog.db"))
	_, err := c.LoadTable("nope")
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestCatalogListTables(t *testing.T) {
	c := open(t, filepath.Join(t.TempDir(), "catalog.db"))
	s := testSchema(t)

	names, err := c.ListTables()
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, c.CreateTable("events", s))
	require.NoError(t, c.CreateTable("actions", s))

	names, err = c.ListTables()
	require.NoError(t, err)
	assert.Equal(t, []string{"actions", "events"}, names)
}

func TestCatalogDropTable(t *testing.T) {
	c := open(t, filepath.Join(t.TempDir(), "catalog.db"))
	s := testSchema(t)

	require.NoError(t, c.CreateTable("events", s))
	require.NoError(t, c.DropTable("events"))
	_, err := c.LoadTable("events")
	assert.ErrorIs(t, err, ErrTableNotFound)
	assert.ErrorIs(t, c.DropTable("events"), ErrTableNotFound)
}

func TestCatalogReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	want := testSchema(t)

	c, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, c.CreateTable("events", want))
	require.NoError(t, c.Close())

	c = open(t, path)
	got, err := c.LoadTable("events")
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
}
