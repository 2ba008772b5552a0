package mesher

import (
	"github.com/riftworld/voxcore/pkg/boundary"
	"github.com/riftworld/voxcore/pkg/geometry"
	"github.com/riftworld/voxcore/pkg/voxel"
)

// occludes reports whether the stencil neighbor at the given offset
// from (x,y,z), one step outside the face plane, counts as an
// ambient-occlusion occluder: opaque and shaped exactly like the
// default full cube. Sub-voxel shapes (slabs, flats) never occlude.
func occludes[V voxel.Voxel[V]](b *boundary.ChunkBoundary[V], x, y, z int) bool {
	cell := b.Get(x, y, z)
	if cell.Visibility != voxel.VisibilityOpaque || cell.GeoIndex == nil {
		return false
	}
	return b.GeoPalette().Get(*cell.GeoIndex).Equal(geometry.FullCube())
}

// aoValue implements the §4.6 three-bit truth table.
func aoValue(side1, corner, side2 bool) int {
	if side1 && side2 {
		return 0
	}
	if (side1 && corner && !side2) || (!side1 && corner && side2) {
		return 1
	}
	if !side1 && !corner && !side2 {
		return 3
	}
	return 2
}

// lightToIntern buckets a 0..15(+) light level into a brightness
// fraction.
func lightToIntern(level uint8) float32 {
	switch {
	case level <= 2:
		return 0.25
	case level <= 4:
		return 0.4
	case level <= 9:
		return 0.5
	case level == 10:
		return 0.6
	case level == 11:
		return 0.7
	case level == 12:
		return 0.75
	case level == 13:
		return 0.8
	case level == 14:
		return 0.9
	default:
		return 1.0
	}
}

func lightLevel(cell boundary.RenderedBlockData) uint8 {
	if cell.Light != nil {
		return *cell.Light
	}
	return 16
}

// ringAxes returns the two in-plane axes used to sample a face's
// surrounding ring, and the single step along the face's own axis
// that moves one cell outside the plane.
func ringAxes(face int) (one, two, depthStep int) {
	one, two = inPlaneAxes(face)
	if depthIsMax(face) {
		return one, two, 1
	}
	return one, two, -1
}

func sample[V voxel.Voxel[V]](b *boundary.ChunkBoundary[V], p [3]int) (occ bool, lt float32) {
	return occludes[V](b, p[0], p[1], p[2]), lightToIntern(lightLevel(b.Get(p[0], p[1], p[2])))
}

// cornerAOAndLight computes the four corner ambient-occlusion values
// (0..3) and their interpolated light fractions for a quad's face, in
// the same corner order as cornerPattern/quadCorners. Each corner
// samples the ring of 8 stencil neighbors just outside the face
// plane: the two axis-aligned sides adjacent to the corner and the
// diagonal neighbor between them, per §4.6.
func cornerAOAndLight[V voxel.Voxel[V]](b *boundary.ChunkBoundary[V], q Quad) (ao [4]int, light [4]float32) {
	oneAxis, twoAxis, depthStep := ringAxes(q.Face)
	depthAxis := axisForFace(q.Face)
	pattern := cornerPattern(q.Face)

	base := q.Voxel
	base[depthAxis] += depthStep

	for k, c := range pattern {
		oneSign, twoSign := -1, -1
		if c[0] {
			oneSign = 1
		}
		if c[1] {
			twoSign = 1
		}

		side1 := base
		side1[oneAxis] += oneSign
		side2 := base
		side2[twoAxis] += twoSign
		diag := base
		diag[oneAxis] += oneSign
		diag[twoAxis] += twoSign

		s1occ, s1light := sample[V](b, side1)
		s2occ, s2light := sample[V](b, side2)
		cOcc, cLight := sample[V](b, diag)

		ao[k] = aoValue(s1occ, cOcc, s2occ)
		light[k] = (s1light + cLight + s2light) / 3
	}
	return ao, light
}
