package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/riftworld/voxcore/pkg/mesher"
)

// PackVertex packs one quad-corner vertex into a single uint32 for the
// persistent voxel vertex buffer. Bit layout (unchanged from the
// original engine):
//
//	x, y, z: local position, 5 bits each (0-31)
//	u, v:    texture-corner flags, 1 bit each
//	o:       face/orientation index, 3 bits (0-5)
//	t:       texture id, 8 bits (0-255)
//	ao:      ambient-occlusion/brightness bucket, 3 bits (0-7)
func PackVertex(x, y, z, u, v, o, t, ao int) uint32 {
	return uint32(
		((x & 31) << 0) |
			((y & 31) << 5) |
			((z & 31) << 10) |
			((u & 1) << 15) |
			((v & 1) << 16) |
			((o & 7) << 17) |
			((t & 255) << 20) |
			((ao & 7) << 28))
}

// faceFromNormal recovers the 0-5 axis-direction index a quad's shared
// normal corresponds to, matching geometry.FaceXNeg..FaceZPos.
func faceFromNormal(n mgl32.Vec3) int {
	switch {
	case n.X() < 0:
		return 0
	case n.X() > 0:
		return 1
	case n.Y() < 0:
		return 2
	case n.Y() > 0:
		return 3
	case n.Z() < 0:
		return 4
	default:
		return 5
	}
}

// clampCoord rounds a chunk-local (possibly sub-voxel) coordinate to
// the nearest integer and clamps it to the packed format's 5-bit
// range. Sub-voxel geometry is therefore quantized to whole voxels in
// this demo pipeline; the core mesher's own VoxMesh output carries the
// full-precision positions.
func clampCoord(v float32) int {
	c := int(v + 0.5)
	if c < 0 {
		return 0
	}
	if c > 31 {
		return 31
	}
	return c
}

// PackMesh converts a mesher.VoxMesh into the flat []uint32 buffer
// ChunkBufferManager.AddChunk expects. Vertices are consumed four at a
// time (one quad each, the order buildMesh emits them in). Texture id
// is always 0: the new asset pipeline addresses atlas rects directly
// (see registry.AssetRegistry) rather than through a discrete
// per-material id, so there is nothing meaningful to place in that
// field; it is kept only for wire-format compatibility with the
// original shader's attribute layout.
func PackMesh(mesh mesher.VoxMesh) []uint32 {
	out := make([]uint32, 0, len(mesh.Vertices))

	for i := 0; i < len(mesh.Vertices); i += 4 {
		face := faceFromNormal(mesh.Normals[i])
		for c := 0; c < 4 && i+c < len(mesh.Vertices); c++ {
			pos := mesh.Vertices[i+c]

			u, v := 0, 0
			if i+c < len(mesh.UVs) {
				if mesh.UVs[i+c].X() > 0.5 {
					u = 1
				}
				if mesh.UVs[i+c].Y() > 0.5 {
					v = 1
				}
			}

			ao := 7
			if i+c < len(mesh.Colors) {
				ao = int(mesh.Colors[i+c].X()*7 + 0.5)
			}

			out = append(out, PackVertex(
				clampCoord(pos.X()), clampCoord(pos.Y()), clampCoord(pos.Z()),
				u, v, face, 0, ao,
			))
		}
	}

	return out
}
