package mesher

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/riftworld/voxcore/pkg/geometry"
	"github.com/riftworld/voxcore/pkg/registry"
)

// textureSlotForFace maps an axis-sign face index to the
// RenderedBlockData.Textures slot it reads from, per §4.8.
func textureSlotForFace(face int) int {
	switch face {
	case geometry.FaceXNeg:
		return 2
	case geometry.FaceXPos:
		return 3
	case geometry.FaceYNeg:
		return 1
	case geometry.FaceYPos:
		return 0
	case geometry.FaceZNeg:
		return 5
	default:
		return 4
	}
}

// quadUVs returns a quad's four corner UVs, normalized to [0,1] atlas
// coordinates, in the same order as quadCorners. Returns ok=false when
// the quad's voxel has no registered textures.
func quadUVs(q Quad, texW, texH float32) (uvs [4]mgl32.Vec2, ok bool) {
	if q.Data.Textures == nil {
		return uvs, false
	}
	base := q.Data.Textures[textureSlotForFace(q.Face)]
	fd := q.Element.Faces[q.Face]

	rect := registry.UVRect{
		X: base.X + float32(fd.UVOffset.X),
		Y: base.Y + float32(fd.UVOffset.Y),
		W: float32(fd.UVSize.W),
		H: float32(fd.UVSize.H),
	}

	pattern := cornerPattern(q.Face)
	for i, c := range pattern {
		u := rect.X
		if c[0] {
			u += rect.W
		}
		v := rect.Y
		if c[1] {
			v += rect.H
		}
		uvs[i] = mgl32.Vec2{u / texW, v / texH}
	}
	return uvs, true
}
