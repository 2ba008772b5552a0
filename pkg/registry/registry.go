// Package registry defines the contracts a host supplies to the
// meshing pipeline — voxel emptiness, geometry lookup, and atlas
// texture lookup — plus small reference implementations good enough
// for tests and the demo binaries in cmd/.
package registry

import (
	"github.com/riftworld/voxcore/pkg/geometry"
)

// VoxRegistry declares the same method set as voxel.VoxRegistry (a
// separate interface, not an alias) so callers need only import
// package registry for the full set of host contracts.
type VoxRegistry[V any] interface {
	IsEmpty(v V) bool
}

// GeometryRegistry maps a geometry namespace (e.g. "vinox:block") to
// its shape data.
type GeometryRegistry interface {
	Geometry(namespace string) (geometry.Geometry, bool)
}

// UVRect is a rectangle in atlas-pixel coordinates.
type UVRect struct {
	X, Y, W, H float32
}

// AssetRegistry maps a voxel identifier to its six per-face atlas
// rects and the atlas's pixel dimensions. The rects are indexed by
// texture slot, not by the geometry face constants: 0=Y+, 1=Y-, 2=X-,
// 3=X+, 4=Z+, 5=Z- (see mesher's textureSlotForFace).
type AssetRegistry interface {
	Textures(identifier string) ([6]UVRect, bool)
	TextureSize() (w, h float32)
}
