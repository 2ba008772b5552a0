package mesher

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/riftworld/voxcore/pkg/boundary"
	"github.com/riftworld/voxcore/pkg/registry"
	"github.com/riftworld/voxcore/pkg/voxel"
)

// VoxMesh is the final renderable output of one meshing pass: Y-up,
// world-local positions with axis-aligned unit normals, a flat
// triangle-list index buffer, and optional per-vertex colors/UVs.
type VoxMesh struct {
	Vertices []mgl32.Vec3
	Normals  []mgl32.Vec3
	Indices  []uint32
	Colors   []mgl32.Vec4 // nil when not computed for this pass
	UVs      []mgl32.Vec2 // nil when the quad had no registered textures
}

// MeshedChunk bundles a chunk's opaque and transparent meshes with its
// world position.
type MeshedChunk struct {
	ChunkMesh       VoxMesh
	TransparentMesh VoxMesh
	Pos             voxel.ChunkPos
}

// aoConvert maps an AO bucket (0..3) to a grayscale brightness.
func aoConvert(ao int) float32 {
	switch {
	case ao <= 0:
		return 0.1
	case ao == 1:
		return 0.25
	case ao == 2:
		return 0.5
	default:
		return 1.0
	}
}

// quadIndices returns the quad's two triangles, applying the
// AO-gradient flip rule from §4.6.
func quadIndices(base uint32, aos [4]int) [6]uint32 {
	if aos[1]+aos[2] > aos[0]+aos[3] {
		return [6]uint32{base + 0, base + 2, base + 1, base + 1, base + 2, base + 3}
	}
	return [6]uint32{base + 0, base + 3, base + 1, base + 0, base + 2, base + 3}
}

// buildMesh assembles one pass's VoxMesh from its quad groups.
func buildMesh[V voxel.Voxel[V]](b *boundary.ChunkBoundary[V], groups QuadGroups, assetReg registry.AssetRegistry, voxelSize float32, withColors bool) VoxMesh {
	var mesh VoxMesh
	var texW, texH float32
	haveAtlas := assetReg != nil
	if haveAtlas {
		texW, texH = assetReg.TextureSize()
	}

	for face := 0; face < 6; face++ {
		normal := faceNormal(face)

		for _, q := range groups.Faces[face] {
			corners := quadCorners(q)
			ao, light := cornerAOAndLight[V](b, q)

			var uvs [4]mgl32.Vec2
			uvOK := false
			if haveAtlas {
				uvs, uvOK = quadUVs(q, texW, texH)
			}

			base := uint32(len(mesh.Vertices))
			for i := 0; i < 4; i++ {
				mesh.Vertices = append(mesh.Vertices, vertexPosition(q, corners[i], voxelSize))
				mesh.Normals = append(mesh.Normals, normal)
				if withColors {
					brightness := aoConvert(ao[i]) * light[i]
					mesh.Colors = append(mesh.Colors, mgl32.Vec4{brightness, brightness, brightness, 1})
				}
				if uvOK {
					mesh.UVs = append(mesh.UVs, uvs[i])
				}
			}

			idx := quadIndices(base, ao)
			mesh.Indices = append(mesh.Indices, idx[:]...)
		}
	}

	return mesh
}

// FullMesh runs §4.5-4.8 twice (solid then transparent pass) over
// boundary and assembles the resulting MeshedChunk. voxelSize is the
// world-space size of one voxel in meters.
func FullMesh[V voxel.Voxel[V]](assetReg registry.AssetRegistry, b *boundary.ChunkBoundary[V], pos voxel.ChunkPos, voxelSize float32) MeshedChunk {
	solid := BuildQuadGroups(b, true)
	transparent := BuildQuadGroups(b, false)

	return MeshedChunk{
		ChunkMesh:       buildMesh[V](b, solid, assetReg, voxelSize, true),
		TransparentMesh: buildMesh[V](b, transparent, assetReg, voxelSize, false),
		Pos:             pos,
	}
}
