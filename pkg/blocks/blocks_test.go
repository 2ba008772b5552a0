package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifiers(t *testing.T) {
	assert.Equal(t, "voxcore:air", Air.Identifier())
	assert.Equal(t, "voxcore:stone", Stone.Identifier())
	assert.Equal(t, "voxcore:glass", Glass.Identifier())
}

func TestUnknownBlockTypeFallsBackOpaque(t *testing.T) {
	unknown := blockTypeCount + 1
	assert.True(t, unknown.IsOpaque(nil))
	assert.False(t, unknown.IsEmpty(nil))
	assert.Contains(t, unknown.Identifier(), "voxcore:unknown_")
}

func TestAirIsEmpty(t *testing.T) {
	assert.True(t, Air.IsEmpty(nil))
	assert.True(t, Air.IsTrueEmpty(nil))
	assert.False(t, Stone.IsEmpty(nil))
	assert.False(t, Stone.IsTrueEmpty(nil))
}

func TestOpaqueVsTransparent(t *testing.T) {
	assert.True(t, Stone.IsOpaque(nil))
	assert.True(t, Grass.IsOpaque(nil))
	assert.False(t, Glass.IsOpaque(nil))
	assert.False(t, Water.IsOpaque(nil))
}

func TestNewVoxRegistry(t *testing.T) {
	reg := NewVoxRegistry()
	assert.True(t, reg.IsEmpty(Air))
	assert.False(t, reg.IsEmpty(Stone))
}

func TestDefaultGeometryRegistryRegistersEveryNonAirBlock(t *testing.T) {
	reg := DefaultGeometryRegistry()

	_, ok := reg.Geometry(Air.Identifier())
	assert.False(t, ok, "air should not be registered as renderable geometry")

	stoneGeo, ok := reg.Geometry(Stone.Identifier())
	require.True(t, ok)
	assert.Nil(t, stoneGeo.BlocksSelf, "opaque blocks should not set BlocksSelf")

	glassGeo, ok := reg.Geometry(Glass.Identifier())
	require.True(t, ok)
	require.NotNil(t, glassGeo.BlocksSelf, "transparent blocks should set BlocksSelf")
	assert.Equal(t, [6]bool{}, *glassGeo.BlocksSelf)
}
