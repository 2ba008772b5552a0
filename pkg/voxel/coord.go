package voxel

// ChunkPos is a signed chunk-grid coordinate.
type ChunkPos struct {
	X, Y, Z int32
}

// VoxelPos is a signed world-space voxel coordinate.
type VoxelPos struct {
	X, Y, Z int32
}

// RelativeVoxelPos is an unsigned coordinate local to a chunk, each
// axis in [0, ChunkSize).
type RelativeVoxelPos struct {
	X, Y, Z uint8
}

// ToChunkPos returns the chunk that contains this world voxel
// position, using floor division so negative coordinates map to the
// chunk below rather than truncating toward zero.
func (p VoxelPos) ToChunkPos() ChunkPos {
	return ChunkPos{
		X: floorDiv(p.X, ChunkSize),
		Y: floorDiv(p.Y, ChunkSize),
		Z: floorDiv(p.Z, ChunkSize),
	}
}

// ToRelative returns this world voxel position's coordinate local to
// its containing chunk, using Euclidean remainder so negative
// coordinates land in [0, ChunkSize).
func (p VoxelPos) ToRelative() RelativeVoxelPos {
	return RelativeVoxelPos{
		X: uint8(euclidMod(p.X, ChunkSize)),
		Y: uint8(euclidMod(p.Y, ChunkSize)),
		Z: uint8(euclidMod(p.Z, ChunkSize)),
	}
}

// ToVoxelPos reconstitutes the world position of a relative position
// within the given chunk.
func (p RelativeVoxelPos) ToVoxelPos(chunk ChunkPos) VoxelPos {
	return VoxelPos{
		X: chunk.X*ChunkSize + int32(p.X),
		Y: chunk.Y*ChunkSize + int32(p.Y),
		Z: chunk.Z*ChunkSize + int32(p.Z),
	}
}

// WorldOrigin returns the world-space voxel position of this chunk's
// minimum corner.
func (p ChunkPos) WorldOrigin() VoxelPos {
	return VoxelPos{X: p.X * ChunkSize, Y: p.Y * ChunkSize, Z: p.Z * ChunkSize}
}

// Neighbors returns the 26 chunk positions surrounding p, in
// lexicographic order on (dx,dy,dz) over {-1,0,1}^3 \ {(0,0,0)}. This
// fixed order is load-bearing: ChunkBoundary.New's neighbor array must
// be supplied in exactly this order.
func (p ChunkPos) Neighbors() [26]ChunkPos {
	var out [26]ChunkPos
	i := 0
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dz := int32(-1); dz <= 1; dz++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				out[i] = ChunkPos{p.X + dx, p.Y + dy, p.Z + dz}
				i++
			}
		}
	}
	return out
}

// floorDiv performs floor division, unlike Go's truncating integer
// division (-1/16 == 0 in Go; floorDiv(-1, 16) == -1).
func floorDiv(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// euclidMod performs Euclidean remainder: always in [0, b).
func euclidMod(a, b int32) int32 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
