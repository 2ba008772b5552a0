// Package geometry holds the static shape data model a GeometryRegistry
// hands back for a voxel's identifier: the cube-element list (one or
// more axis-aligned sub-voxel boxes with per-face UV/cull/discard
// flags) that the mesher triangulates.
package geometry

// Kind enumerates the built-in block-shape families. Custom shapes
// (loaded from a data pack, say) use KindCustom with Name set.
type Kind uint8

const (
	KindBlock Kind = iota
	KindStairs
	KindSlab
	KindBorderedBlock
	KindFence
	KindFlat
	KindCross
	KindCustom
)

// BlockGeometry names a shape family and, for KindCustom, its
// namespace.
type BlockGeometry struct {
	Kind Kind
	Name string // only read when Kind == KindCustom
}

// Namespace returns the geometry's namespaced identifier, e.g.
// "vinox:block" or "vinox:stairs".
func (g BlockGeometry) Namespace() string {
	switch g.Kind {
	case KindBlock:
		return "vinox:block"
	case KindStairs:
		return "vinox:stairs"
	case KindSlab:
		return "vinox:slab"
	case KindBorderedBlock:
		return "vinox:bordered_block"
	case KindFence:
		return "vinox:fence"
	case KindFlat:
		return "vinox:flat"
	case KindCross:
		return "vinox:cross"
	case KindCustom:
		return g.Name
	default:
		return "vinox:block"
	}
}

// Face indices. These match the QuadGroups/mesher axis-direction
// indexing used throughout the mesh pipeline: 0=X-,1=X+,2=Y-,3=Y+,
// 4=Z-,5=Z+.
const (
	FaceXNeg = iota
	FaceXPos
	FaceYNeg
	FaceYPos
	FaceZNeg
	FaceZPos
	FaceCount = 6
)

// Opposite returns the face on the opposite side of the same axis.
func Opposite(face int) int { return face ^ 1 }

// UVOffset is a texel offset into a face's 16x16 texel space, i8
// units.
type UVOffset struct{ X, Y int8 }

// UVSize is a texel extent in the same space.
type UVSize struct{ W, H int8 }

// FaceDescript describes one face of a cube element.
type FaceDescript struct {
	UVOffset        UVOffset
	UVSize          UVSize
	Discard         bool
	TextureVariance bool
	Cull            bool
}

// Rotation is an XYZ Euler rotation in degrees.
type Rotation struct{ X, Y, Z float32 }

// IsZero reports whether the rotation is the identity rotation.
func (r Rotation) IsZero() bool { return r.X == 0 && r.Y == 0 && r.Z == 0 }

// Pivot is a rotation pivot in 1/16-voxel (i8) units.
type Pivot struct{ X, Y, Z int8 }

// CubeElement is one axis-aligned sub-voxel box within a block's
// geometry, in i8 units where 0..16 spans one voxel.
type CubeElement struct {
	Origin   [3]int8
	End      [3]int8
	Rotation Rotation
	Pivot    Pivot
	Faces    [6]FaceDescript
}

// Equal reports deep equality, used by ChunkBoundary's GeoPalette to
// intern cube-element lists by value.
func (e CubeElement) Equal(o CubeElement) bool {
	return e.Origin == o.Origin && e.End == o.End &&
		e.Rotation == o.Rotation && e.Pivot == o.Pivot &&
		e.Faces == o.Faces
}

// BlockGeo is a block's full shape: one or more cube elements plus a
// block-level pivot/rotation applied before each element's own.
type BlockGeo struct {
	Elements      []CubeElement
	BlockPivot    Pivot
	BlockRotation Rotation
}

// Equal reports deep equality of two BlockGeo values.
func (g BlockGeo) Equal(o BlockGeo) bool {
	if g.BlockPivot != o.BlockPivot || g.BlockRotation != o.BlockRotation {
		return false
	}
	if len(g.Elements) != len(o.Elements) {
		return false
	}
	for i := range g.Elements {
		if !g.Elements[i].Equal(o.Elements[i]) {
			return false
		}
	}
	return true
}

// FullCube returns the canonical single-element, full-extent,
// all-culling, all-blocking cube geometry used for ordinary solid
// blocks. It is also the comparison target ambient occlusion uses to
// decide whether a neighbor is a "full cube" for occlusion purposes
// (sub-voxel shapes must never occlude).
func FullCube() BlockGeo {
	faces := [6]FaceDescript{}
	for i := range faces {
		faces[i] = FaceDescript{UVSize: UVSize{W: 16, H: 16}, Cull: true}
	}
	return BlockGeo{
		Elements: []CubeElement{{
			Origin: [3]int8{0, 0, 0},
			End:    [3]int8{16, 16, 16},
			Faces:  faces,
		}},
	}
}

// Geometry is a namespaced shape plus per-face occlusion behavior:
// does this geometry's face occlude a same-axis neighbor face
// (Blocks), and optionally, does it occlude the matching face of an
// identical adjacent geometry (BlocksSelf)?
type Geometry struct {
	Namespace  string
	Geo        BlockGeo
	Blocks     [6]bool
	BlocksSelf *[6]bool
}

// DefaultBlock returns a full, fully-blocking cube Geometry, the shape
// registered for ordinary solid blocks. Registries do not substitute it
// for a missing entry: a lookup miss is reported as not found.
func DefaultBlock() Geometry {
	blocks := [6]bool{true, true, true, true, true, true}
	return Geometry{Namespace: "vinox:block", Geo: FullCube(), Blocks: blocks}
}
