// Package boundary materializes a chunk's 18x18x18 padded voxel
// stencil — the center chunk plus its 26 neighbors — into a flat
// array of precomputed per-cell render data the mesher consumes
// without ever touching the source chunks again.
package boundary

import (
	"log"
	"strings"

	"github.com/riftworld/voxcore/pkg/geometry"
	"github.com/riftworld/voxcore/pkg/registry"
	"github.com/riftworld/voxcore/pkg/voxel"
)

const (
	// StencilSize is the edge length of the padded neighborhood.
	StencilSize = voxel.ChunkSize + 2
	// StencilVolume is the total number of stencil cells (18^3).
	StencilVolume = StencilSize * StencilSize * StencilSize
)

// RenderedBlockData is the precomputed stencil cell produced once per
// voxel during boundary construction. Its zero value is the "no
// geometry" default: Empty visibility, no geo/texture, and Blocks all
// false so an unresolvable neighbor never occludes a real face.
type RenderedBlockData struct {
	GeoIndex   *int // index into GeoPalette; nil when the voxel has no registered geometry
	MatchIndex int
	Visibility voxel.VoxelVisibility
	Textures   *[6]registry.UVRect
	Blocks     [6]bool
	BlocksSelf *[6]bool
	Light      *uint8
}

// GeoPalette interns cube-element lists (geometry.BlockGeo values) by
// equality, deduplicating repeated shapes across a stencil.
type GeoPalette struct {
	entries []geometry.BlockGeo
}

// Intern returns g's palette index, appending a new entry if an equal
// one isn't already present.
func (p *GeoPalette) Intern(g geometry.BlockGeo) int {
	for i, e := range p.entries {
		if e.Equal(g) {
			return i
		}
	}
	p.entries = append(p.entries, g)
	return len(p.entries) - 1
}

// Get returns the BlockGeo at idx.
func (p *GeoPalette) Get(idx int) geometry.BlockGeo { return p.entries[idx] }

// Len returns the number of interned entries.
func (p *GeoPalette) Len() int { return len(p.entries) }

// BlockMatches interns trimmed voxel identifiers (the portion before
// the first '.') so the mesher can compare "is this the same kind of
// block" cheaply by index rather than by string.
type BlockMatches struct {
	entries []string
}

// Intern returns id's trimmed-identifier palette index.
func (m *BlockMatches) Intern(id string) int {
	trimmed := trimIdentifier(id)
	for i, e := range m.entries {
		if e == trimmed {
			return i
		}
	}
	m.entries = append(m.entries, trimmed)
	return len(m.entries) - 1
}

// Get returns the trimmed identifier at idx.
func (m *BlockMatches) Get(idx int) string { return m.entries[idx] }

func trimIdentifier(id string) string {
	if i := strings.IndexByte(id, '.'); i >= 0 {
		return id[:i]
	}
	return id
}

// LightSource supplies per-voxel light levels. It is orthogonal to
// VoxRegistry/GeometryRegistry/AssetRegistry because lighting
// propagation is entirely a host concern (section 1 scopes it out);
// ChunkBoundary only needs a final 0..15 value per voxel, or no value
// at all, which light_to_intern treats as full bright.
type LightSource[V any] interface {
	Light(v V) (level uint8, ok bool)
}

// ChunkBoundary is the immutable, already-resolved 18^3 stencil built
// from a center chunk and its 26 neighbors.
type ChunkBoundary[V voxel.Voxel[V]] struct {
	cells   [StencilVolume]RenderedBlockData
	geoPal  *GeoPalette
	matches *BlockMatches
}

var neighborIndexOf = buildNeighborIndex()

func buildNeighborIndex() map[[3]int]int {
	m := make(map[[3]int]int, 26)
	i := 0
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				m[[3]int{dx, dy, dz}] = i
				i++
			}
		}
	}
	return m
}

// New builds a ChunkBoundary from center and its 26 neighbors (in the
// fixed order documented by voxel.ChunkPos.Neighbors). voxReg, geoReg
// and assetReg may be nil; light may be nil when the host tracks no
// lighting. logger, if non-nil, receives at most one warning per
// missing geometry/texture identifier.
func New[V voxel.Voxel[V]](
	center *voxel.ChunkData[V],
	neighbors [26]*voxel.ChunkData[V],
	voxReg voxel.VoxRegistry[V],
	geoReg registry.GeometryRegistry,
	assetReg registry.AssetRegistry,
	light LightSource[V],
	logger *log.Logger,
) *ChunkBoundary[V] {
	b := &ChunkBoundary[V]{geoPal: &GeoPalette{}, matches: &BlockMatches{}}
	warned := make(map[string]bool)

	for z := 0; z < StencilSize; z++ {
		for y := 0; y < StencilSize; y++ {
			for x := 0; x < StencilSize; x++ {
				v := selectVoxel(center, &neighbors, x, y, z)
				b.cells[Linearize(x, y, z)] = renderCell(v, voxReg, geoReg, assetReg, light, b.geoPal, b.matches, logger, warned)
			}
		}
	}
	return b
}

// Linearize computes a stencil cell's flat index from its [0,18)
// coordinates.
func Linearize(x, y, z int) int {
	return x + StencilSize*y + StencilSize*StencilSize*z
}

// Get returns the precomputed render data at stencil coordinate
// (x,y,z), each in [0, StencilSize).
func (b *ChunkBoundary[V]) Get(x, y, z int) RenderedBlockData {
	return b.cells[Linearize(x, y, z)]
}

// GeoPalette returns the stencil's interned geometry palette.
func (b *ChunkBoundary[V]) GeoPalette() *GeoPalette { return b.geoPal }

// BlockMatches returns the stencil's interned identifier palette.
func (b *ChunkBoundary[V]) BlockMatches() *BlockMatches { return b.matches }

// regionAndLocal maps one stencil axis coordinate in [0,17] to which
// chunk slab it falls in (-1 below, 0 in-slab, +1 above) and the local
// index within that chunk. Coordinate 0 reads the *last* row of the
// lower neighbor; coordinate 17 reads the *first* row of the upper
// neighbor — this is the overlapping-corner behavior the spec's open
// question calls out, preserved as written.
func regionAndLocal(c int) (region int, local int) {
	switch {
	case c == 0:
		return -1, voxel.ChunkSizeArr
	case c == StencilSize-1:
		return 1, 0
	default:
		return 0, c - 1
	}
}

func selectVoxel[V voxel.Voxel[V]](center *voxel.ChunkData[V], neighbors *[26]*voxel.ChunkData[V], x, y, z int) V {
	rx, lx := regionAndLocal(x)
	ry, ly := regionAndLocal(y)
	rz, lz := regionAndLocal(z)

	pos := voxel.RelativeVoxelPos{X: uint8(lx), Y: uint8(ly), Z: uint8(lz)}
	if rx == 0 && ry == 0 && rz == 0 {
		return center.Get(pos)
	}
	idx := neighborIndexOf[[3]int{rx, ry, rz}]
	return neighbors[idx].Get(pos)
}

func renderCell[V voxel.Voxel[V]](
	v V,
	voxReg voxel.VoxRegistry[V],
	geoReg registry.GeometryRegistry,
	assetReg registry.AssetRegistry,
	light LightSource[V],
	geoPal *GeoPalette,
	matches *BlockMatches,
	logger *log.Logger,
	warned map[string]bool,
) RenderedBlockData {
	if v.IsEmpty(voxReg) {
		return RenderedBlockData{}
	}

	id := v.Identifier()

	var geo geometry.Geometry
	var geoOk bool
	if geoReg != nil {
		geo, geoOk = geoReg.Geometry(id)
	}
	if !geoOk {
		warnOnce(logger, warned, "geo:"+id, "no geometry registered for %q, treating as empty", id)
		return RenderedBlockData{}
	}

	geoIdx := geoPal.Intern(geo.Geo)
	matchIdx := matches.Intern(id)

	// geo.Blocks is trusted as-is once geoOk is true, including the
	// legitimate all-false value a Flat/Cross geometry registers so it
	// never occludes neighbors. A voxel with no registered geometry never
	// reaches this point: the !geoOk branch above returns the zero
	// RenderedBlockData, whose Blocks are all false.
	blocks := geo.Blocks

	var textures *[6]registry.UVRect
	if assetReg != nil {
		if uv, ok := assetReg.Textures(id); ok {
			textures = &uv
		} else {
			warnOnce(logger, warned, "tex:"+id, "no textures registered for %q", id)
		}
	}

	var lv *uint8
	if light != nil {
		if level, ok := light.Light(v); ok {
			lv = &level
		}
	}

	return RenderedBlockData{
		GeoIndex:   &geoIdx,
		MatchIndex: matchIdx,
		Visibility: visibilityOf(v, voxReg),
		Textures:   textures,
		Blocks:     blocks,
		BlocksSelf: geo.BlocksSelf,
		Light:      lv,
	}
}

func visibilityOf[V voxel.Voxel[V]](v V, reg voxel.VoxRegistry[V]) voxel.VoxelVisibility {
	if v.IsEmpty(reg) {
		return voxel.VisibilityEmpty
	}
	if v.IsOpaque(reg) {
		return voxel.VisibilityOpaque
	}
	return voxel.VisibilityTransparent
}

func warnOnce(logger *log.Logger, warned map[string]bool, key, format string, args ...any) {
	if logger == nil || warned[key] {
		return
	}
	warned[key] = true
	logger.Printf("boundary: "+format, args...)
}
