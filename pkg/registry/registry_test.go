package registry

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/riftworld/voxcore/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type idVoxel string

func (v idVoxel) Identifier() string { return string(v) }

func TestMapVoxRegistry(t *testing.T) {
	r := NewMapVoxRegistry[idVoxel]("vinox:air")
	assert.True(t, r.IsEmpty(idVoxel("vinox:air")))
	assert.False(t, r.IsEmpty(idVoxel("vinox:stone")))
}

func TestMapGeometryRegistryStableIdentity(t *testing.T) {
	r := NewMapGeometryRegistry()
	geom := geometry.DefaultBlock()

	first := r.Register("vinox:block", geom)
	second := r.Register("vinox:block", geom)
	assert.Equal(t, first, second)

	got, ok := r.Geometry("vinox:block")
	require.True(t, ok)
	assert.Equal(t, "vinox:block", got.Namespace)

	_, ok = r.Geometry("vinox:missing")
	assert.False(t, ok)
}

func TestAtlasAssetRegistry(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 256, 128))
	for x := 0; x < 256; x++ {
		img.Set(x, 0, color.White)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	reg, err := NewAtlasAssetRegistry(&buf, "png")
	require.NoError(t, err)

	w, h := reg.TextureSize()
	assert.Equal(t, float32(256), w)
	assert.Equal(t, float32(128), h)

	rects := [6]UVRect{}
	for i := range rects {
		rects[i] = UVRect{X: float32(i * 16), Y: 0, W: 16, H: 16}
	}
	reg.Register("vinox:stone", rects)

	got, ok := reg.Textures("vinox:stone")
	require.True(t, ok)
	assert.Equal(t, rects, got)

	_, ok = reg.Textures("vinox:missing")
	assert.False(t, ok)
}
