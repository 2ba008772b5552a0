package voxel

import (
	"encoding/binary"
	"fmt"

	"github.com/riftworld/voxcore/pkg/palette"
)

// trimInterval is how many edits accumulate before ChunkData
// opportunistically trims its palette back toward Single mode.
const trimInterval = 500

// ChunkData is a fixed 16x16x16 voxel volume with edit-count tracking
// and a dirty flag, backed by a palette.Storage.
type ChunkData[V Voxel[V]] struct {
	voxels      *palette.Storage[V]
	changeCount uint16
	dirty       bool
}

// NewChunkData creates a chunk uniformly filled with zero.
func NewChunkData[V Voxel[V]](zero V) *ChunkData[V] {
	return &ChunkData[V]{voxels: palette.New(TotalChunkSize, zero)}
}

func linearize(p RelativeVoxelPos) int {
	return int(p.X) + ChunkSize*int(p.Y) + ChunkSize*ChunkSize*int(p.Z)
}

// Get returns the voxel at the given local position.
func (c *ChunkData[V]) Get(p RelativeVoxelPos) V {
	return c.voxels.Get(linearize(p))
}

// GetIdentifier is a convenience wrapper around Get(p).Identifier().
func (c *ChunkData[V]) GetIdentifier(p RelativeVoxelPos) string {
	return c.Get(p).Identifier()
}

// Set stores v at the given local position, marks the chunk dirty,
// and trims the palette every trimInterval edits.
func (c *ChunkData[V]) Set(p RelativeVoxelPos, v V) {
	c.voxels.Set(linearize(p), v)
	c.changeCount++
	c.dirty = true
	if c.changeCount > trimInterval {
		c.voxels.Trim()
		c.changeCount = 0
	}
}

// IsUniform reports whether the chunk's storage is in Single mode.
func (c *ChunkData[V]) IsUniform() bool { return c.voxels.IsUniform() }

// IsEmpty reports whether the chunk is uniform and that single voxel
// is empty per reg (which may be nil).
func (c *ChunkData[V]) IsEmpty(reg VoxRegistry[V]) bool {
	return c.IsUniform() && c.voxels.SingleVoxel().IsEmpty(reg)
}

// Dirty reports whether the chunk has been edited since creation or
// the last ClearDirty call.
func (c *ChunkData[V]) Dirty() bool { return c.dirty }

// ClearDirty resets the dirty flag, e.g. after a remesh has consumed
// the current contents.
func (c *ChunkData[V]) ClearDirty() { c.dirty = false }

// ChangeCount returns the number of edits since the last trim.
func (c *ChunkData[V]) ChangeCount() uint16 { return c.changeCount }

// Trim forces an immediate palette trim attempt.
func (c *ChunkData[V]) Trim() { c.voxels.Trim() }

// VoxelCodec lets a host teach ChunkData how to serialize its concrete
// voxel type to and from a fixed-width byte representation, since the
// storage core has no knowledge of V's shape.
type VoxelCodec[V any] interface {
	// Size is the fixed encoded width in bytes of one voxel value.
	Size() int
	Encode(v V, dst []byte)
	Decode(src []byte) V
}

// RawChunk is the on-wire form of a ChunkData: the storage contents
// without the edit counters, which are host session state rather than
// persisted data.
type RawChunk struct {
	// Uniform is true when the chunk was Single-mode at save time.
	Uniform bool
	// SingleVoxel holds the encoded uniform voxel when Uniform is true.
	SingleVoxel []byte
	// IndicesLength is the palette index bit width (0 when Uniform).
	IndicesLength uint64
	// Palette holds each entry's encoded voxel and ref count, in
	// palette-index order (empty when Uniform).
	Palette []RawPaletteEntry
	// Indices is the packed per-cell palette index buffer (nil when
	// Uniform).
	Indices []byte
}

// RawPaletteEntry is one palette slot's wire form.
type RawPaletteEntry struct {
	Voxel    []byte
	RefCount int32
}

// ToRaw strips the edit counters and serializes the storage contents
// using codec to encode voxel values.
func (c *ChunkData[V]) ToRaw(codec VoxelCodec[V]) RawChunk {
	if c.voxels.IsUniform() {
		buf := make([]byte, codec.Size())
		codec.Encode(c.voxels.SingleVoxel(), buf)
		return RawChunk{Uniform: true, SingleVoxel: buf}
	}

	raw := RawChunk{
		IndicesLength: c.voxels.IndicesLength(),
		Palette:       make([]RawPaletteEntry, c.voxels.PaletteLen()),
	}
	for i := 0; i < c.voxels.PaletteLen(); i++ {
		entry := c.voxels.PaletteEntry(i)
		buf := make([]byte, codec.Size())
		codec.Encode(entry.Voxel, buf)
		raw.Palette[i] = RawPaletteEntry{Voxel: buf, RefCount: int32(entry.RefCount)}
	}

	bitLen := uint64(TotalChunkSize) * raw.IndicesLength
	raw.Indices = make([]byte, (bitLen+7)/8)
	for cell := 0; cell < TotalChunkSize; cell++ {
		idx := indexOf(c.voxels, cell)
		setPackedIndex(raw.Indices, raw.IndicesLength, cell, idx)
	}
	return raw
}

// indexOf recomputes the palette index stored at a cell by linear
// search; ChunkData only needs this for serialization, where it isn't
// hot, so it avoids exposing the raw bit buffer from package palette.
func indexOf[V comparable](s *palette.Storage[V], cell int) uint64 {
	target := s.Get(cell)
	for i := 0; i < s.PaletteLen(); i++ {
		if s.PaletteEntry(i).Voxel == target && s.PaletteEntry(i).RefCount > 0 {
			return uint64(i)
		}
	}
	// Cell resolves to a recycled/duplicate-valued slot; find any slot
	// with a matching voxel value regardless of ref count.
	for i := 0; i < s.PaletteLen(); i++ {
		if s.PaletteEntry(i).Voxel == target {
			return uint64(i)
		}
	}
	panic("voxel: serialization could not locate palette index for cell")
}

func setPackedIndex(buf []byte, width uint64, cell int, value uint64) {
	bitOffset := uint64(cell) * width
	remaining := width
	shift := uint64(0)
	for remaining > 0 {
		byteIdx := (bitOffset + shift) / 8
		bitShift := (bitOffset + shift) % 8
		n := 8 - bitShift
		if n > remaining {
			n = remaining
		}
		chunk := byte((value >> shift) & ((1 << n) - 1))
		buf[byteIdx] |= chunk << bitShift
		shift += n
		remaining -= n
	}
}

// FromRaw reconstitutes a ChunkData from its wire form. change_count
// is reset to 0 and dirty to false, per the serialization contract.
func FromRaw[V Voxel[V]](raw RawChunk, codec VoxelCodec[V]) (*ChunkData[V], error) {
	if raw.Uniform {
		if len(raw.SingleVoxel) != codec.Size() {
			return nil, fmt.Errorf("voxel: uniform payload is %d bytes, want %d", len(raw.SingleVoxel), codec.Size())
		}
		return &ChunkData[V]{voxels: palette.New(TotalChunkSize, codec.Decode(raw.SingleVoxel))}, nil
	}

	if len(raw.Palette) == 0 {
		return nil, fmt.Errorf("voxel: multi-mode raw chunk has an empty palette")
	}

	zero := codec.Decode(raw.Palette[0].Voxel)
	storage := palette.New(TotalChunkSize, zero)
	// Drive the storage machinery through its own public Set so the
	// reconstructed palette/bitbuffer state is provably consistent,
	// rather than poking package-private fields from outside.
	cells := make([][]byte, TotalChunkSize)
	for cell := 0; cell < TotalChunkSize; cell++ {
		idx := getPackedIndex(raw.Indices, raw.IndicesLength, cell)
		if int(idx) >= len(raw.Palette) {
			return nil, fmt.Errorf("voxel: cell %d references palette index %d beyond %d entries", cell, idx, len(raw.Palette))
		}
		cells[cell] = raw.Palette[idx].Voxel
	}
	for cell, enc := range cells {
		storage.Set(cell, codec.Decode(enc))
	}
	return &ChunkData[V]{voxels: storage}, nil
}

func getPackedIndex(buf []byte, width uint64, cell int) uint64 {
	bitOffset := uint64(cell) * width
	var result uint64
	var shift uint64
	remaining := width
	for remaining > 0 {
		byteIdx := (bitOffset + shift) / 8
		bitShift := (bitOffset + shift) % 8
		n := 8 - bitShift
		if n > remaining {
			n = remaining
		}
		chunk := uint64(buf[byteIdx]>>bitShift) & ((1 << n) - 1)
		result |= chunk << shift
		shift += n
		remaining -= n
	}
	return result
}

// Uint32Codec is a VoxelCodec for any voxel type that is itself a
// uint32-backed identifier (e.g. a dense block-type enum), encoded as
// 4 big-endian bytes.
type Uint32Codec[V ~uint32] struct{}

func (Uint32Codec[V]) Size() int { return 4 }
func (Uint32Codec[V]) Encode(v V, dst []byte) {
	binary.BigEndian.PutUint32(dst, uint32(v))
}
func (Uint32Codec[V]) Decode(src []byte) V {
	return V(binary.BigEndian.Uint32(src))
}
