package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpposite(t *testing.T) {
	assert.Equal(t, FaceXPos, Opposite(FaceXNeg))
	assert.Equal(t, FaceXNeg, Opposite(FaceXPos))
	assert.Equal(t, FaceYPos, Opposite(FaceYNeg))
	assert.Equal(t, FaceZPos, Opposite(FaceZNeg))
}

func TestRotationIsZero(t *testing.T) {
	assert.True(t, Rotation{}.IsZero())
	assert.False(t, Rotation{X: 90}.IsZero())
}

func TestFullCube(t *testing.T) {
	cube := FullCube()
	a := assert.New(t)
	a.Len(cube.Elements, 1)

	elem := cube.Elements[0]
	a.Equal([3]int8{0, 0, 0}, elem.Origin)
	a.Equal([3]int8{16, 16, 16}, elem.End)

	for face := 0; face < FaceCount; face++ {
		fd := elem.Faces[face]
		a.True(fd.Cull, "face %d should cull", face)
		a.Equal(UVSize{W: 16, H: 16}, fd.UVSize)
	}
}

func TestDefaultBlock(t *testing.T) {
	geo := DefaultBlock()
	assert.Equal(t, "vinox:block", geo.Namespace)
	assert.Equal(t, [6]bool{true, true, true, true, true, true}, geo.Blocks)
	assert.Nil(t, geo.BlocksSelf)
	assert.True(t, geo.Geo.Equal(FullCube()))
}

func TestCubeElementEqual(t *testing.T) {
	a := FullCube().Elements[0]
	b := FullCube().Elements[0]
	assert.True(t, a.Equal(b))

	b.End[0] = 8
	assert.False(t, a.Equal(b))
}

func TestBlockGeoEqual(t *testing.T) {
	a := FullCube()
	b := FullCube()
	assert.True(t, a.Equal(b))

	b.Elements = append(b.Elements, CubeElement{})
	assert.False(t, a.Equal(b))
}
