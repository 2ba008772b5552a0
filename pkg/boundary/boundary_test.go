package boundary

import (
	"testing"

	"github.com/riftworld/voxcore/pkg/geometry"
	"github.com/riftworld/voxcore/pkg/registry"
	"github.com/riftworld/voxcore/pkg/voxel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bvoxel uint32

const (
	bAir bvoxel = iota
	bStone
	bGlass
	bCross
)

func (v bvoxel) IsEmpty(reg voxel.VoxRegistry[bvoxel]) bool     { return v == bAir }
func (v bvoxel) IsTrueEmpty(reg voxel.VoxRegistry[bvoxel]) bool { return v.IsEmpty(reg) }
func (v bvoxel) IsOpaque(reg voxel.VoxRegistry[bvoxel]) bool    { return v == bStone }
func (v bvoxel) Identifier() string {
	switch v {
	case bStone:
		return "test:stone"
	case bGlass:
		return "test:glass"
	case bCross:
		return "test:cross"
	default:
		return "test:air"
	}
}

func newGeoReg() *registry.MapGeometryRegistry {
	r := registry.NewMapGeometryRegistry()
	r.Register("test:stone", geometry.DefaultBlock())
	r.Register("test:glass", geometry.DefaultBlock())
	return r
}

func allCenterChunk(fill func(p voxel.RelativeVoxelPos) bvoxel) *voxel.ChunkData[bvoxel] {
	c := voxel.NewChunkData[bvoxel](bAir)
	for x := 0; x < voxel.ChunkSize; x++ {
		for y := 0; y < voxel.ChunkSize; y++ {
			for z := 0; z < voxel.ChunkSize; z++ {
				p := voxel.RelativeVoxelPos{X: uint8(x), Y: uint8(y), Z: uint8(z)}
				c.Set(p, fill(p))
			}
		}
	}
	return c
}

func emptyNeighbors() [26]*voxel.ChunkData[bvoxel] {
	var ns [26]*voxel.ChunkData[bvoxel]
	for i := range ns {
		ns[i] = voxel.NewChunkData[bvoxel](bAir)
	}
	return ns
}

func TestBoundaryInteriorMatchesCenter(t *testing.T) {
	center := allCenterChunk(func(p voxel.RelativeVoxelPos) bvoxel {
		if p.X == 8 && p.Y == 8 && p.Z == 8 {
			return bStone
		}
		return bAir
	})
	neighbors := emptyNeighbors()
	geoReg := newGeoReg()

	b := New[bvoxel](center, neighbors, nil, geoReg, nil, nil, nil)

	for x := 0; x < voxel.ChunkSize; x++ {
		for y := 0; y < voxel.ChunkSize; y++ {
			for z := 0; z < voxel.ChunkSize; z++ {
				p := voxel.RelativeVoxelPos{X: uint8(x), Y: uint8(y), Z: uint8(z)}
				cell := b.Get(x+1, y+1, z+1)
				want := center.Get(p)
				if want == bAir {
					assert.Equal(t, voxel.VisibilityEmpty, cell.Visibility)
				} else {
					assert.Equal(t, voxel.VisibilityOpaque, cell.Visibility)
					require.NotNil(t, cell.GeoIndex)
				}
			}
		}
	}
}

func TestBoundaryCornerSamplesLowerNeighborLastRow(t *testing.T) {
	// (0,0,0) should read index (15,15,15) of neighbor (-1,-1,-1).
	center := voxel.NewChunkData[bvoxel](bAir)
	neighbors := emptyNeighbors()
	idx := neighborIndexOf[[3]int{-1, -1, -1}]
	neighbors[idx].Set(voxel.RelativeVoxelPos{X: 15, Y: 15, Z: 15}, bStone)

	geoReg := newGeoReg()
	b := New[bvoxel](center, neighbors, nil, geoReg, nil, nil, nil)

	cell := b.Get(0, 0, 0)
	assert.Equal(t, voxel.VisibilityOpaque, cell.Visibility)
}

func TestBoundaryUpperCornerSamplesUpperNeighborFirstRow(t *testing.T) {
	center := voxel.NewChunkData[bvoxel](bAir)
	neighbors := emptyNeighbors()
	idx := neighborIndexOf[[3]int{1, 1, 1}]
	neighbors[idx].Set(voxel.RelativeVoxelPos{X: 0, Y: 0, Z: 0}, bStone)

	geoReg := newGeoReg()
	b := New[bvoxel](center, neighbors, nil, geoReg, nil, nil, nil)

	cell := b.Get(17, 17, 17)
	assert.Equal(t, voxel.VisibilityOpaque, cell.Visibility)
}

func TestMissingGeometryBecomesDefault(t *testing.T) {
	center := voxel.NewChunkData[bvoxel](bAir)
	center.Set(voxel.RelativeVoxelPos{X: 0, Y: 0, Z: 0}, bStone)
	neighbors := emptyNeighbors()

	// No geometry registered at all.
	b := New[bvoxel](center, neighbors, nil, registry.NewMapGeometryRegistry(), nil, nil, nil)

	cell := b.Get(1, 1, 1)
	assert.Equal(t, RenderedBlockData{}, cell)
}

func TestGeoPaletteDedupesByEquality(t *testing.T) {
	center := allCenterChunk(func(p voxel.RelativeVoxelPos) bvoxel {
		return bStone
	})
	neighbors := emptyNeighbors()
	geoReg := newGeoReg()

	b := New[bvoxel](center, neighbors, nil, geoReg, nil, nil, nil)
	assert.Equal(t, 1, b.GeoPalette().Len())
}

// TestFoundGeometryWithAllFalseBlocksIsTrustedAsIs guards against
// reading a legitimately all-non-occluding geometry (a Flat/Cross
// shape) as "unset" and forcing it to all-true blocking. A found
// geometry's Blocks is used as-is even when it is the zero value; only
// a registry miss yields the zero cell (see
// TestMissingGeometryBecomesDefault).
func TestFoundGeometryWithAllFalseBlocksIsTrustedAsIs(t *testing.T) {
	center := voxel.NewChunkData[bvoxel](bAir)
	center.Set(voxel.RelativeVoxelPos{X: 0, Y: 0, Z: 0}, bCross)
	neighbors := emptyNeighbors()

	geoReg := newGeoReg()
	geoReg.Register("test:cross", geometry.Geometry{
		Namespace: "test:cross",
		Geo:       geometry.FullCube(),
		Blocks:    [6]bool{},
	})

	b := New[bvoxel](center, neighbors, nil, geoReg, nil, nil, nil)

	cell := b.Get(1, 1, 1)
	require.NotNil(t, cell.GeoIndex, "geometry was found and must not be treated as missing")
	assert.Equal(t, [6]bool{}, cell.Blocks, "a found all-false Blocks array must be trusted as-is, not forced to all-true")
}

func TestBlockMatchesTrimsAtDot(t *testing.T) {
	m := &BlockMatches{}
	i1 := m.Intern("test:stone.variant1")
	i2 := m.Intern("test:stone.variant2")
	assert.Equal(t, i1, i2)
	assert.Equal(t, "test:stone", m.Get(i1))
}
