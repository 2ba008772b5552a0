package mesher

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/riftworld/voxcore/pkg/boundary"
	"github.com/riftworld/voxcore/pkg/geometry"
	"github.com/riftworld/voxcore/pkg/registry"
	"github.com/riftworld/voxcore/pkg/voxel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mVoxel uint32

const (
	mAir mVoxel = iota
	mStone
	mSlab
)

func (v mVoxel) IsEmpty(reg voxel.VoxRegistry[mVoxel]) bool     { return v == mAir }
func (v mVoxel) IsTrueEmpty(reg voxel.VoxRegistry[mVoxel]) bool { return v.IsEmpty(reg) }
func (v mVoxel) IsOpaque(reg voxel.VoxRegistry[mVoxel]) bool    { return v == mStone || v == mSlab }
func (v mVoxel) Identifier() string {
	switch v {
	case mStone:
		return "test:stone"
	case mSlab:
		return "test:slab"
	default:
		return "test:air"
	}
}

// fullCullFaces returns a FaceDescript array identical to
// geometry.FullCube's, for building custom non-full-cube test
// geometries that still attempt to cull on every face.
func fullCullFaces() [6]geometry.FaceDescript {
	var faces [6]geometry.FaceDescript
	for i := range faces {
		faces[i] = geometry.FaceDescript{UVSize: geometry.UVSize{W: 16, H: 16}, Cull: true}
	}
	return faces
}

// findQuad returns the quad belonging to voxel cell `at`, or nil.
func findQuad(quads []Quad, at [3]int) *Quad {
	for i := range quads {
		if quads[i].Voxel == at {
			return &quads[i]
		}
	}
	return nil
}

func emptyMNeighbors() [26]*voxel.ChunkData[mVoxel] {
	var ns [26]*voxel.ChunkData[mVoxel]
	for i := range ns {
		ns[i] = voxel.NewChunkData[mVoxel](mAir)
	}
	return ns
}

func newMGeoReg() *registry.MapGeometryRegistry {
	r := registry.NewMapGeometryRegistry()
	r.Register("test:stone", geometry.DefaultBlock())
	return r
}

func countQuads(g QuadGroups) int {
	n := 0
	for _, f := range g.Faces {
		n += len(f)
	}
	return n
}

func TestBuildQuadGroupsEmptyChunkEmitsNothing(t *testing.T) {
	center := voxel.NewChunkData[mVoxel](mAir)
	b := boundary.New[mVoxel](center, emptyMNeighbors(), nil, newMGeoReg(), nil, nil, nil)

	assert.Equal(t, 0, countQuads(BuildQuadGroups(b, true)))
	assert.Equal(t, 0, countQuads(BuildQuadGroups(b, false)))
}

func TestBuildQuadGroupsSingleVoxelEmitsSixFaces(t *testing.T) {
	center := voxel.NewChunkData[mVoxel](mAir)
	center.Set(voxel.RelativeVoxelPos{X: 8, Y: 8, Z: 8}, mStone)
	b := boundary.New[mVoxel](center, emptyMNeighbors(), nil, newMGeoReg(), nil, nil, nil)

	solid := BuildQuadGroups(b, true)
	assert.Equal(t, 6, countQuads(solid))
	for face := 0; face < 6; face++ {
		assert.Len(t, solid.Faces[face], 1, "face %d", face)
	}
	assert.Equal(t, 0, countQuads(BuildQuadGroups(b, false)))
}

func TestBuildQuadGroupsAdjacentOpaquesCullSharedFace(t *testing.T) {
	center := voxel.NewChunkData[mVoxel](mAir)
	center.Set(voxel.RelativeVoxelPos{X: 7, Y: 8, Z: 8}, mStone)
	center.Set(voxel.RelativeVoxelPos{X: 8, Y: 8, Z: 8}, mStone)
	b := boundary.New[mVoxel](center, emptyMNeighbors(), nil, newMGeoReg(), nil, nil, nil)

	solid := BuildQuadGroups(b, true)
	// 12 naive faces minus the two mutually-facing, blocked faces.
	assert.Equal(t, 10, countQuads(solid))
	// Stencil coordinates are relative position + 1: the low voxel is at
	// (8,9,9), the high voxel at (9,9,9). Each keeps its outer X face.
	assert.Len(t, solid.Faces[geometry.FaceXPos], 1)
	assert.Len(t, solid.Faces[geometry.FaceXNeg], 1)
	assert.Nil(t, findQuad(solid.Faces[geometry.FaceXPos], [3]int{8, 9, 9}), "low voxel's +X face touching the high voxel must be culled")
	assert.Nil(t, findQuad(solid.Faces[geometry.FaceXNeg], [3]int{9, 9, 9}), "high voxel's -X face touching the low voxel must be culled")
}

func TestAOValueTruthTable(t *testing.T) {
	cases := []struct {
		side1, corner, side2 bool
		want                 int
	}{
		{true, true, true, 0},
		{true, false, true, 0},
		{true, true, false, 1},
		{false, true, true, 1},
		{false, false, false, 3},
		{true, false, false, 2},
		{false, false, true, 2},
		{false, true, false, 2},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, aoValue(c.side1, c.corner, c.side2))
	}
}

func TestLightToInternBuckets(t *testing.T) {
	assert.Equal(t, float32(0.25), lightToIntern(0))
	assert.Equal(t, float32(0.25), lightToIntern(2))
	assert.Equal(t, float32(0.4), lightToIntern(3))
	assert.Equal(t, float32(0.5), lightToIntern(9))
	assert.Equal(t, float32(0.6), lightToIntern(10))
	assert.Equal(t, float32(0.7), lightToIntern(11))
	assert.Equal(t, float32(0.75), lightToIntern(12))
	assert.Equal(t, float32(0.8), lightToIntern(13))
	assert.Equal(t, float32(0.9), lightToIntern(14))
	assert.Equal(t, float32(1.0), lightToIntern(15))
	assert.Equal(t, float32(1.0), lightToIntern(16))
}

func TestCornerAOFullySurroundedIsZero(t *testing.T) {
	center := voxel.NewChunkData[mVoxel](mStone)
	b := boundary.New[mVoxel](center, emptyMNeighborsFilled(), nil, newMGeoReg(), nil, nil, nil)

	q := Quad{Voxel: [3]int{8, 8, 8}, Face: geometry.FaceZPos, Element: geometry.FullCube().Elements[0]}
	ao, _ := cornerAOAndLight[mVoxel](b, q)
	for _, a := range ao {
		assert.Equal(t, 0, a)
	}
}

func emptyMNeighborsFilled() [26]*voxel.ChunkData[mVoxel] {
	var ns [26]*voxel.ChunkData[mVoxel]
	for i := range ns {
		ns[i] = voxel.NewChunkData[mVoxel](mStone)
	}
	return ns
}

func TestQuadIndicesFlipRule(t *testing.T) {
	assert.Equal(t, [6]uint32{0, 2, 1, 1, 2, 3}, quadIndices(0, [4]int{0, 3, 3, 0}))
	assert.Equal(t, [6]uint32{0, 3, 1, 0, 2, 3}, quadIndices(0, [4]int{3, 0, 0, 3}))
}

func TestAOConvert(t *testing.T) {
	assert.Equal(t, float32(0.1), aoConvert(0))
	assert.Equal(t, float32(0.25), aoConvert(1))
	assert.Equal(t, float32(0.5), aoConvert(2))
	assert.Equal(t, float32(1.0), aoConvert(3))
}

func TestVertexPositionNoRotation(t *testing.T) {
	full := geometry.FullCube().Elements[0]
	q := Quad{
		Voxel:   [3]int{1, 1, 1}, // chunk-local (0,0,0): stencil coord is local+1
		Face:    geometry.FaceZNeg,
		Element: full,
	}
	q.MinOne, q.MaxOne = full.Origin[0], full.End[0]
	q.MinTwo, q.MaxTwo = full.Origin[1], full.End[1]
	q.MinDepth, q.MaxDepth = full.Origin[2], full.End[2]

	corners := quadCorners(q)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, vertexPosition(q, corners[0], 1))
	assert.Equal(t, mgl32.Vec3{1, 1, 0}, vertexPosition(q, corners[2], 1))
}

type fakeAssetRegistry struct {
	rects map[string][6]registry.UVRect
	w, h  float32
}

func (f fakeAssetRegistry) Textures(id string) ([6]registry.UVRect, bool) {
	r, ok := f.rects[id]
	return r, ok
}
func (f fakeAssetRegistry) TextureSize() (float32, float32) { return f.w, f.h }

func TestQuadUVsNormalizesToAtlas(t *testing.T) {
	full := geometry.FullCube().Elements[0]
	q := Quad{Face: geometry.FaceZNeg, Element: full}
	q.Data.Textures = &[6]registry.UVRect{
		textureSlotForFace(geometry.FaceZNeg): {X: 0, Y: 0, W: 16, H: 16},
	}

	uvs, ok := quadUVs(q, 256, 256)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec2{0, 0}, uvs[0])
	assert.Equal(t, mgl32.Vec2{float32(16) / 256, float32(16) / 256}, uvs[2])
}

// TestBuildQuadGroupsHonorsNeighborOwnBlocksArray pins down scenario S4
// (a slab geometry whose Blocks array marks only its top face as
// occluding, sitting next to a default full cube). The cull decision
// for a given face only ever reads the *neighbor's* Blocks entry at
// the opposite index (never the cell's own), so the two interfaces
// this geometry pairing produces resolve independently:
//   - the full block's own -X face looks at the slab's Blocks[+X],
//     which is false, so that face is retained;
//   - the slab's own +X face looks at the full block's Blocks[-X],
//     which defaults to true, so that face stays culled.
//
// This is the same single physical interface described from each
// side: a face's own shape never influences its own occlusion, only
// its neighbor's.
func TestBuildQuadGroupsHonorsNeighborOwnBlocksArray(t *testing.T) {
	slabGeo := geometry.Geometry{
		Namespace: "test:slab",
		Geo: geometry.BlockGeo{
			Elements: []geometry.CubeElement{{
				Origin: [3]int8{0, 0, 0},
				End:    [3]int8{16, 8, 16},
				Faces:  fullCullFaces(),
			}},
		},
		Blocks: [6]bool{false, false, true, false, false, false},
	}

	geoReg := registry.NewMapGeometryRegistry()
	geoReg.Register("test:slab", slabGeo)
	geoReg.Register("test:stone", geometry.DefaultBlock())

	center := voxel.NewChunkData[mVoxel](mAir)
	center.Set(voxel.RelativeVoxelPos{X: 8, Y: 8, Z: 8}, mSlab)
	center.Set(voxel.RelativeVoxelPos{X: 9, Y: 8, Z: 8}, mStone)

	b := boundary.New[mVoxel](center, emptyMNeighbors(), nil, geoReg, nil, nil, nil)
	solid := BuildQuadGroups(b, true)

	// Stencil coordinates are relative position + 1.
	assert.Nil(t, findQuad(solid.Faces[geometry.FaceXPos], [3]int{9, 9, 9}),
		"slab's own +X face stays culled: its neighbor is a default full cube that blocks on every face")
	require.NotNil(t, findQuad(solid.Faces[geometry.FaceXNeg], [3]int{10, 9, 9}),
		"full block's own -X face is retained: the slab's Blocks[+X] is false and BlocksSelf is unset")
}

func TestFullMeshSingleVoxelProducesClosedCube(t *testing.T) {
	center := voxel.NewChunkData[mVoxel](mAir)
	center.Set(voxel.RelativeVoxelPos{X: 8, Y: 8, Z: 8}, mStone)
	b := boundary.New[mVoxel](center, emptyMNeighbors(), nil, newMGeoReg(), nil, nil, nil)

	meshed := FullMesh[mVoxel](nil, b, voxel.ChunkPos{}, 1)
	assert.Len(t, meshed.ChunkMesh.Vertices, 6*4)
	assert.Len(t, meshed.ChunkMesh.Indices, 6*6)
	assert.Len(t, meshed.ChunkMesh.Colors, 6*4)
	assert.Empty(t, meshed.TransparentMesh.Vertices)
}
