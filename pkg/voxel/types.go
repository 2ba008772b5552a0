// Package voxel implements the chunk storage engine: a 16x16x16
// palette-compressed voxel volume, its position-space conversions, and
// the capability contracts a host's voxel/registry types must satisfy
// to be meshed.
package voxel

const (
	// ChunkSize is the edge length of a chunk in voxels.
	ChunkSize = 16
	// ChunkSizeArr is the highest valid local coordinate (ChunkSize-1).
	ChunkSizeArr = ChunkSize - 1
	// TotalChunkSize is the number of voxels in a chunk.
	TotalChunkSize = ChunkSize * ChunkSize * ChunkSize
)

// VoxelVisibility classifies how a voxel participates in face culling
// and mesh pass assignment. The zero value is Empty.
type VoxelVisibility uint8

const (
	VisibilityEmpty VoxelVisibility = iota
	VisibilityOpaque
	VisibilityTransparent
)

// Voxel is the capability set a host's value type must implement to
// be stored in a ChunkData and meshed. V must be comparable so palette
// interning can dedupe by equality, and the interface is
// self-referential (F-bounded) so a registry lookup can be typed in
// terms of the concrete voxel type rather than `any`.
type Voxel[V any] interface {
	comparable

	// IsEmpty reports whether this voxel occupies no space at all
	// (air-like). reg may be nil, in which case implementations fall
	// back to a registry-independent default.
	IsEmpty(reg VoxRegistry[V]) bool

	// IsTrueEmpty is stricter than IsEmpty: it additionally excludes
	// voxels that render nothing but still participate in gameplay
	// logic (e.g. trigger volumes). Most implementations delegate to
	// IsEmpty.
	IsTrueEmpty(reg VoxRegistry[V]) bool

	// IsOpaque reports whether this voxel fully occludes light passing
	// through it.
	IsOpaque(reg VoxRegistry[V]) bool

	// Identifier returns the voxel's namespaced identifier, e.g.
	// "vinox:stone". Used to intern BlockMatches entries and to decide
	// whether two Transparent voxels should still emit a shared face.
	Identifier() string
}

// VoxRegistry is the minimal contract the storage layer needs from a
// host's voxel registry: whether a given voxel counts as empty. The
// boundary/geometry/asset registries (section 3 of the spec) are
// defined in package registry, which does not import this one.
type VoxRegistry[V any] interface {
	IsEmpty(v V) bool
}
