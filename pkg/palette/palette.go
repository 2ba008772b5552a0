// Package palette implements PaletteStorage, an adaptive voxel
// container that holds a 16x16x16 chunk's worth of cells as either a
// single repeated value or a palette-indexed, bit-packed array.
package palette

import (
	"fmt"

	"github.com/riftworld/voxcore/pkg/bitbuffer"
)

// Entry is one slot of a Multi-mode palette: the voxel value it
// resolves to and how many cells currently point at it.
type Entry[V comparable] struct {
	Voxel    V
	RefCount int
}

type kind uint8

const (
	kindSingle kind = iota
	kindMulti
)

// initialIndicesLength is the starting bit width of a freshly promoted
// palette, per the storage growth invariant (doubles 2->4->8->16...).
const initialIndicesLength = 2

// Storage is the adaptive Single/Multi voxel container described in
// spec section 4.2. The zero value is not usable; construct with New.
type Storage[V comparable] struct {
	kind   kind
	size   int
	single V

	data            *bitbuffer.BitBuffer
	palette         []Entry[V]
	paletteCapacity int
	indicesLength   uint64
}

// New creates a Single-mode storage of `size` cells, all holding zero.
func New[V comparable](size int, zero V) *Storage[V] {
	return &Storage[V]{kind: kindSingle, size: size, single: zero}
}

// Size returns the cell count.
func (s *Storage[V]) Size() int { return s.size }

// IsUniform reports whether the storage is in Single mode.
func (s *Storage[V]) IsUniform() bool { return s.kind == kindSingle }

// SingleVoxel returns the uniform voxel value. Only meaningful when
// IsUniform is true.
func (s *Storage[V]) SingleVoxel() V { return s.single }

// IndicesLength returns the current per-cell index bit width (0 in
// Single mode).
func (s *Storage[V]) IndicesLength() uint64 { return s.indicesLength }

// PaletteCapacity returns 2^IndicesLength (0 in Single mode).
func (s *Storage[V]) PaletteCapacity() int { return s.paletteCapacity }

// PaletteLen returns the number of interned palette entries, including
// zero-ref-count slots awaiting recycling (0 in Single mode).
func (s *Storage[V]) PaletteLen() int { return len(s.palette) }

// PaletteEntry returns a copy of the palette slot at idx. Panics if
// called in Single mode or idx is out of range.
func (s *Storage[V]) PaletteEntry(idx int) Entry[V] {
	if s.kind != kindMulti {
		panic("palette: PaletteEntry called on Single storage")
	}
	return s.palette[idx]
}

// RefCountSum sums all palette ref counts; in Multi mode this must
// always equal Size().
func (s *Storage[V]) RefCountSum() int {
	sum := 0
	for _, e := range s.palette {
		sum += e.RefCount
	}
	return sum
}

// Get returns the voxel stored at cell i.
func (s *Storage[V]) Get(i int) V {
	s.checkBounds(i)
	if s.kind == kindSingle {
		return s.single
	}
	idx := s.data.Get(uint64(i)*s.indicesLength, s.indicesLength)
	return s.palette[idx].Voxel
}

// Set stores v at cell i, promoting Single to Multi or interning/
// recycling a palette slot as described in spec section 4.2.
func (s *Storage[V]) Set(i int, v V) {
	s.checkBounds(i)
	if s.kind == kindSingle {
		if v == s.single {
			return
		}
		s.promote()
	}
	s.setMulti(i, v)
}

func (s *Storage[V]) checkBounds(i int) {
	if i < 0 || i >= s.size {
		panic(fmt.Sprintf("palette: index %d out of range [0,%d)", i, s.size))
	}
}

// promote carries the uniform voxel into palette[0] with ref_count ==
// size, matching every cell's (still zero) bit-packed index.
func (s *Storage[V]) promote() {
	s.kind = kindMulti
	s.indicesLength = initialIndicesLength
	s.paletteCapacity = 1 << s.indicesLength
	s.data = bitbuffer.New(uint64(s.size) * s.indicesLength)
	s.palette = []Entry[V]{{Voxel: s.single, RefCount: s.size}}
}

func (s *Storage[V]) setMulti(i int, v V) {
	oldIdx := int(s.data.Get(uint64(i)*s.indicesLength, s.indicesLength))
	s.palette[oldIdx].RefCount--

	for idx := range s.palette {
		if s.palette[idx].Voxel == v {
			s.palette[idx].RefCount++
			s.writeIndex(i, idx)
			return
		}
	}

	if s.palette[oldIdx].RefCount == 0 {
		s.palette[oldIdx] = Entry[V]{Voxel: v, RefCount: 1}
		s.writeIndex(i, oldIdx)
		return
	}

	for idx := range s.palette {
		if s.palette[idx].RefCount == 0 {
			s.palette[idx] = Entry[V]{Voxel: v, RefCount: 1}
			s.writeIndex(i, idx)
			return
		}
	}

	if len(s.palette) == s.paletteCapacity {
		s.grow()
	}
	newIdx := len(s.palette)
	s.palette = append(s.palette, Entry[V]{Voxel: v, RefCount: 1})
	s.writeIndex(i, newIdx)
}

func (s *Storage[V]) writeIndex(cell, idx int) {
	s.data.Set(uint64(cell)*s.indicesLength, s.indicesLength, uint64(idx))
}

// grow doubles indices_length, rebuilding the bit buffer by rewriting
// every previously stored index at the new, wider width.
func (s *Storage[V]) grow() {
	newLength := s.indicesLength * 2
	newData := bitbuffer.New(uint64(s.size) * newLength)
	for cell := 0; cell < s.size; cell++ {
		idx := s.data.Get(uint64(cell)*s.indicesLength, s.indicesLength)
		newData.Set(uint64(cell)*newLength, newLength, idx)
	}
	s.data = newData
	s.indicesLength = newLength
	s.paletteCapacity = 1 << newLength
}

// Trim demotes Multi storage back to Single when the palette slice
// itself has exactly one entry. This checks len(palette), not the
// number of entries with a non-zero ref count: a recycled (ref_count
// == 0) slot still occupies a vector slot and is never compacted out,
// so once a second distinct voxel type has ever been introduced, the
// chunk cannot trim back to Single again even if every cell is later
// overwritten back to one value. This is a vector-length check, not
// the more lenient "only one entry is still live" reading. Calling
// Trim twice in a row is a no-op the second time.
func (s *Storage[V]) Trim() {
	if s.kind != kindMulti {
		return
	}
	if len(s.palette) != 1 {
		return
	}
	s.kind = kindSingle
	s.single = s.palette[0].Voxel
	s.data = nil
	s.palette = nil
	s.paletteCapacity = 0
	s.indicesLength = 0
}
