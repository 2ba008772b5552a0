package bitbuffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetRoundTrip(t *testing.T) {
	b := New(16 * 4) // 16 cells, 4 bits each

	for i := uint64(0); i < 16; i++ {
		b.Set(i*4, 4, i%16)
	}
	for i := uint64(0); i < 16; i++ {
		assert.Equal(t, i%16, b.Get(i*4, 4), "cell %d", i)
	}
}

func TestSpansByteBoundary(t *testing.T) {
	// width=12 at bit offset 4 covers bits 4..15, spanning two bytes.
	b := New(64)
	b.Set(4, 12, 0xABC)
	assert.Equal(t, uint64(0xABC), b.Get(4, 12))
}

func TestWideWrites(t *testing.T) {
	b := New(128)
	b.Set(3, 33, 0x1_ABCD_EF01&((1<<33)-1))
	got := b.Get(3, 33)
	assert.Equal(t, uint64(0x1_ABCD_EF01)&((1<<33)-1), got)
}

func TestFullWordWidth(t *testing.T) {
	b := New(128)
	b.Set(0, 64, ^uint64(0))
	assert.Equal(t, ^uint64(0), b.Get(0, 64))
	assert.Equal(t, uint64(0), b.Get(64, 64))
}

func TestAdjacentCellsDoNotClobber(t *testing.T) {
	b := New(3 * 5)
	b.Set(0, 5, 31)
	b.Set(5, 5, 0)
	b.Set(10, 5, 17)
	assert.Equal(t, uint64(31), b.Get(0, 5))
	assert.Equal(t, uint64(0), b.Get(5, 5))
	assert.Equal(t, uint64(17), b.Get(10, 5))
}

func TestFromBytesCopiesStorage(t *testing.T) {
	src := []byte{0xFF, 0x00}
	b := FromBytes(16, src)
	src[0] = 0x00
	assert.Equal(t, uint64(0xFF), b.Get(0, 8))
}

func TestOutOfRangePanics(t *testing.T) {
	b := New(8)
	require.Panics(t, func() { b.Get(4, 8) })
	require.Panics(t, func() { b.Set(4, 8, 0) })
	require.Panics(t, func() { b.Get(0, 65) })
}
