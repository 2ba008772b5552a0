package mesher

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/riftworld/voxcore/pkg/geometry"
)

// cornerPattern returns, for each of a face's four corners in winding
// order, whether that corner sits at the max (true) or min (false) end
// of the face's two in-plane axes. This single table drives vertex
// positions, AO/light sampling, and UV corners so all three stay in
// the same order.
func cornerPattern(face int) [4][2]bool {
	switch face {
	case geometry.FaceXNeg:
		return [4][2]bool{{false, false}, {false, true}, {true, true}, {true, false}}
	case geometry.FaceXPos:
		return [4][2]bool{{false, true}, {false, false}, {true, false}, {true, true}}
	case geometry.FaceYNeg:
		return [4][2]bool{{false, false}, {true, false}, {true, true}, {false, true}}
	case geometry.FaceYPos:
		return [4][2]bool{{false, true}, {true, true}, {true, false}, {false, false}}
	case geometry.FaceZNeg:
		return [4][2]bool{{false, false}, {true, false}, {true, true}, {false, true}}
	default: // FaceZPos
		return [4][2]bool{{true, false}, {false, false}, {false, true}, {true, true}}
	}
}

// quadCorners returns a quad's four corner offsets within its voxel
// cell, in 1/16-voxel units converted to chunk-local fractions (0..1).
func quadCorners(q Quad) [4]mgl32.Vec3 {
	depthAxis := axisForFace(q.Face)
	oneAxis, twoAxis := inPlaneAxes(q.Face)
	pattern := cornerPattern(q.Face)

	depth := float32(q.MinDepth) / 16
	if depthIsMax(q.Face) {
		depth = float32(q.MaxDepth) / 16
	}

	var out [4]mgl32.Vec3
	for i, c := range pattern {
		one := float32(q.MinOne) / 16
		if c[0] {
			one = float32(q.MaxOne) / 16
		}
		two := float32(q.MinTwo) / 16
		if c[1] {
			two = float32(q.MaxTwo) / 16
		}

		var v mgl32.Vec3
		v[depthAxis] = depth
		v[oneAxis] = one
		v[twoAxis] = two
		out[i] = v
	}
	return out
}

// rotate applies an XYZ Euler rotation (degrees) to v around the
// origin, using the same Mat4 machinery the teacher already uses for
// camera and shader transforms.
func rotate(v mgl32.Vec3, rot geometry.Rotation) mgl32.Vec3 {
	m := mgl32.HomogRotate3DZ(mgl32.DegToRad(rot.Z)).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(rot.Y))).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(rot.X)))
	return m.Mul4x1(v.Vec4(1)).Vec3()
}

func pivotOf(p geometry.Pivot) mgl32.Vec3 {
	return mgl32.Vec3{float32(p.X) / 16, float32(p.Y) / 16, float32(p.Z) / 16}
}

// applyAround rotates pos by rot around pivot, a no-op when rot is the
// identity rotation.
func applyAround(pos, pivot mgl32.Vec3, rot geometry.Rotation) mgl32.Vec3 {
	if rot.IsZero() {
		return pos
	}
	return pivot.Add(rotate(pos.Sub(pivot), rot))
}

// vertexPosition computes a quad corner's final world-local position:
// base chunk-local placement, the block-then-cube rotation per §4.7,
// and the voxel_size scale.
func vertexPosition(q Quad, corner mgl32.Vec3, voxelSize float32) mgl32.Vec3 {
	base := mgl32.Vec3{
		float32(q.Voxel[0] - 1),
		float32(q.Voxel[1] - 1),
		float32(q.Voxel[2] - 1),
	}
	pos := base.Add(corner)

	pos = applyAround(pos, base.Add(pivotOf(q.BlockPivot)), q.BlockRotation)
	pos = applyAround(pos, base.Add(pivotOf(q.Element.Pivot)), q.Element.Rotation)

	return pos.Mul(voxelSize)
}

// faceNormal returns the outward unit normal for a face index.
func faceNormal(face int) mgl32.Vec3 {
	switch face {
	case geometry.FaceXNeg:
		return mgl32.Vec3{-1, 0, 0}
	case geometry.FaceXPos:
		return mgl32.Vec3{1, 0, 0}
	case geometry.FaceYNeg:
		return mgl32.Vec3{0, -1, 0}
	case geometry.FaceYPos:
		return mgl32.Vec3{0, 1, 0}
	case geometry.FaceZNeg:
		return mgl32.Vec3{0, 0, -1}
	default:
		return mgl32.Vec3{0, 0, 1}
	}
}
