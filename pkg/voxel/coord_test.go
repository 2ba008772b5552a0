package voxel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToChunkPosFloorsNegatives(t *testing.T) {
	assert.Equal(t, ChunkPos{-1, -1, -1}, VoxelPos{-1, -1, -1}.ToChunkPos())
	assert.Equal(t, ChunkPos{-1, 0, 0}, VoxelPos{-16, 0, 0}.ToChunkPos())
	assert.Equal(t, ChunkPos{0, 0, 0}, VoxelPos{0, 15, 0}.ToChunkPos())
	assert.Equal(t, ChunkPos{1, 0, 0}, VoxelPos{16, 0, 0}.ToChunkPos())
}

func TestToRelativeWrapsNegatives(t *testing.T) {
	rel := VoxelPos{-1, -1, -1}.ToRelative()
	assert.Equal(t, RelativeVoxelPos{15, 15, 15}, rel)

	rel = VoxelPos{-17, 0, 0}.ToRelative()
	assert.Equal(t, uint8(15), rel.X)
}

func TestRelativeRoundTrip(t *testing.T) {
	wp := VoxelPos{-33, 40, 7}
	cp := wp.ToChunkPos()
	rel := wp.ToRelative()
	assert.Equal(t, wp, rel.ToVoxelPos(cp))
}

func TestNeighborsOrderAndCount(t *testing.T) {
	neighbors := ChunkPos{0, 0, 0}.Neighbors()
	assert.Len(t, neighbors, 26)
	assert.Equal(t, ChunkPos{-1, -1, -1}, neighbors[0])
	assert.Equal(t, ChunkPos{-1, -1, 0}, neighbors[1])
	assert.Equal(t, ChunkPos{1, 1, 1}, neighbors[25])

	seen := map[ChunkPos]bool{}
	for _, n := range neighbors {
		assert.False(t, seen[n], "duplicate neighbor %v", n)
		seen[n] = true
		assert.False(t, n == ChunkPos{0, 0, 0})
	}
}
