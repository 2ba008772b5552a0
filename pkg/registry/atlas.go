package registry

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/image/bmp"
)

// AtlasAssetRegistry is a reference AssetRegistry backed by a single
// texture atlas image. It does not pack or repack the atlas (out of
// scope per the spec); it only reads the atlas's pixel dimensions,
// via whichever stdlib or golang.org/x/image decoder matches the
// source format, to compute TextureSize, and lets a host register
// each identifier's six per-face rects within that atlas.
type AtlasAssetRegistry struct {
	mu         sync.RWMutex
	width      float32
	height     float32
	identities map[string]uuid.UUID
	rects      map[string][6]UVRect
}

// NewAtlasAssetRegistry decodes the atlas image from r to determine
// its pixel dimensions. format selects the decoder: "png" and "jpeg"
// use the standard library; "bmp" uses golang.org/x/image/bmp (the
// stdlib has no BMP decoder).
func NewAtlasAssetRegistry(r io.Reader, format string) (*AtlasAssetRegistry, error) {
	var img image.Image
	var err error
	switch format {
	case "bmp":
		img, err = bmp.Decode(r)
	case "png", "jpeg", "":
		img, _, err = image.Decode(r)
	default:
		return nil, fmt.Errorf("registry: unsupported atlas format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("registry: decoding atlas: %w", err)
	}

	bounds := img.Bounds()
	return &AtlasAssetRegistry{
		width:      float32(bounds.Dx()),
		height:     float32(bounds.Dy()),
		identities: make(map[string]uuid.UUID),
		rects:      make(map[string][6]UVRect),
	}, nil
}

// Register associates identifier with its six per-face atlas-pixel
// rects, minting a UUID the first time identifier is seen.
func (a *AtlasAssetRegistry) Register(identifier string, rects [6]UVRect) uuid.UUID {
	a.mu.Lock()
	defer a.mu.Unlock()

	id, ok := a.identities[identifier]
	if !ok {
		id = uuid.New()
		a.identities[identifier] = id
	}
	a.rects[identifier] = rects
	return id
}

func (a *AtlasAssetRegistry) Textures(identifier string) ([6]UVRect, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	r, ok := a.rects[identifier]
	return r, ok
}

func (a *AtlasAssetRegistry) TextureSize() (w, h float32) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.width, a.height
}
