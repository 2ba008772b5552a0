// Package mesher turns a populated ChunkBoundary into renderable
// geometry: per-face quad emission with culling, ambient occlusion,
// light interpolation, rotation-aware vertex placement, UV mapping,
// and the two-pass (opaque/transparent) mesh assembly that produces
// the final VoxMesh output.
package mesher

import (
	"github.com/riftworld/voxcore/pkg/boundary"
	"github.com/riftworld/voxcore/pkg/geometry"
	"github.com/riftworld/voxcore/pkg/voxel"
)

// Quad is one emitted face, still in stencil/cube-element space —
// not yet triangulated into vertices.
type Quad struct {
	// Voxel is the stencil coordinate (1..16 per axis) of the cell
	// this quad belongs to.
	Voxel [3]int
	// Face is the axis-direction index: 0=X-,1=X+,2=Y-,3=Y+,4=Z-,5=Z+.
	Face int
	// MinOne/MaxOne and MinTwo/MaxTwo are the quad's in-plane extents,
	// MinDepth/MaxDepth its extent along the face's own axis, all in
	// 1/16-voxel units taken directly from the cube element.
	MinOne, MaxOne     int8
	MinTwo, MaxTwo     int8
	MinDepth, MaxDepth int8
	CubeIndex          int
	Element            geometry.CubeElement
	BlockPivot         geometry.Pivot
	BlockRotation      geometry.Rotation
	Data               boundary.RenderedBlockData
}

// QuadGroups holds every emitted quad, bucketed by face axis-direction.
type QuadGroups struct {
	Faces [6][]Quad
}

// axisForFace returns which world axis (0=X,1=Y,2=Z) a face's normal
// points along.
func axisForFace(face int) int {
	switch face {
	case geometry.FaceXNeg, geometry.FaceXPos:
		return 0
	case geometry.FaceYNeg, geometry.FaceYPos:
		return 1
	default:
		return 2
	}
}

// inPlaneAxes returns the two axes spanning a face's plane, in a
// fixed (one, two) order used consistently by quad extents, vertex
// winding, and UV corners.
func inPlaneAxes(face int) (one, two int) {
	switch axisForFace(face) {
	case 0:
		return 1, 2 // Y, Z
	case 1:
		return 0, 2 // X, Z
	default:
		return 0, 1 // X, Y
	}
}

// depthIsMax reports whether a face samples its cube element's max
// extent (the "+" faces) or min extent (the "-" faces) along its axis.
func depthIsMax(face int) bool {
	switch face {
	case geometry.FaceXPos, geometry.FaceYPos, geometry.FaceZPos:
		return true
	default:
		return false
	}
}

// neighborCoord steps one stencil cell along face's axis.
func neighborCoord(x, y, z, face int) (int, int, int) {
	switch face {
	case geometry.FaceXNeg:
		return x - 1, y, z
	case geometry.FaceXPos:
		return x + 1, y, z
	case geometry.FaceYNeg:
		return x, y - 1, z
	case geometry.FaceYPos:
		return x, y + 1, z
	case geometry.FaceZNeg:
		return x, y, z - 1
	default:
		return x, y, z + 1
	}
}

func sameGeoIndex(a, b *int) bool {
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// decideEmit implements the §4.5 emission table.
func decideEmit(culled, blocked, selfBlocked bool, self, other boundary.RenderedBlockData, solidPass bool) bool {
	if culled && (blocked || selfBlocked) {
		if solidPass {
			if self.Visibility == voxel.VisibilityOpaque &&
				(other.Visibility == voxel.VisibilityEmpty || other.Visibility == voxel.VisibilityTransparent) {
				return true
			}
			if self.Visibility == voxel.VisibilityTransparent &&
				other.Visibility == voxel.VisibilityTransparent &&
				self.MatchIndex != other.MatchIndex {
				return true
			}
			return false
		}

		if self.Visibility == voxel.VisibilityTransparent && other.Visibility == voxel.VisibilityEmpty {
			return true
		}
		if self.Visibility == voxel.VisibilityTransparent &&
			other.Visibility == voxel.VisibilityTransparent &&
			self.MatchIndex != other.MatchIndex {
			return true
		}
		return false
	}

	want := voxel.VisibilityOpaque
	if !solidPass {
		want = voxel.VisibilityTransparent
	}
	return self.Visibility == want && !blocked
}

// BuildQuadGroups walks every interior stencil cell of b and emits the
// quads belonging to solidPass (opaque pass when true, transparent
// pass when false).
func BuildQuadGroups[V voxel.Voxel[V]](b *boundary.ChunkBoundary[V], solidPass bool) QuadGroups {
	var groups QuadGroups
	geoPal := b.GeoPalette()

	for x := 1; x <= voxel.ChunkSize; x++ {
		for y := 1; y <= voxel.ChunkSize; y++ {
			for z := 1; z <= voxel.ChunkSize; z++ {
				cell := b.Get(x, y, z)
				if cell.Visibility == voxel.VisibilityEmpty || cell.GeoIndex == nil {
					continue
				}
				geo := geoPal.Get(*cell.GeoIndex)

				for cubeIdx, elem := range geo.Elements {
					for face := 0; face < geometry.FaceCount; face++ {
						fd := elem.Faces[face]
						if fd.Discard {
							continue
						}

						nx, ny, nz := neighborCoord(x, y, z, face)
						neighbor := b.Get(nx, ny, nz)
						opp := geometry.Opposite(face)

						blocked := neighbor.Blocks[opp]
						selfBlocked := sameGeoIndex(cell.GeoIndex, neighbor.GeoIndex) &&
							neighbor.BlocksSelf != nil && neighbor.BlocksSelf[opp]

						if !decideEmit(fd.Cull, blocked, selfBlocked, cell, neighbor, solidPass) {
							continue
						}

						one, two := inPlaneAxes(face)
						depthAxis := axisForFace(face)

						q := Quad{
							Voxel:         [3]int{x, y, z},
							Face:          face,
							CubeIndex:     cubeIdx,
							Element:       elem,
							BlockPivot:    geo.BlockPivot,
							BlockRotation: geo.BlockRotation,
							Data:          cell,
						}
						q.MinOne, q.MaxOne = elem.Origin[one], elem.End[one]
						q.MinTwo, q.MaxTwo = elem.Origin[two], elem.End[two]
						q.MinDepth, q.MaxDepth = elem.Origin[depthAxis], elem.End[depthAxis]

						groups.Faces[face] = append(groups.Faces[face], q)
					}
				}
			}
		}
	}

	return groups
}
