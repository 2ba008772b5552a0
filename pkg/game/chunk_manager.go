// Package game owns the authoritative per-chunk voxel state received
// from the network and turns it into renderer-ready geometry on
// demand, bridging the core voxcore pipeline (voxel/boundary/mesher)
// to the demo OpenGL renderer.
package game

import (
	"log"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/riftworld/voxcore/pkg/blocks"
	"github.com/riftworld/voxcore/pkg/boundary"
	"github.com/riftworld/voxcore/pkg/mesher"
	"github.com/riftworld/voxcore/pkg/network"
	"github.com/riftworld/voxcore/pkg/registry"
	"github.com/riftworld/voxcore/pkg/render"
	"github.com/riftworld/voxcore/pkg/voxel"
)

// voxelSize is the world-space edge length of one voxel, in meters.
const voxelSize float32 = 1.0

// emptyNeighbor is the placeholder used for any of a chunk's 26
// neighbors that haven't been received yet. It is never mutated, so
// sharing one instance across every boundary build is safe.
var emptyNeighbor = voxel.NewChunkData[blocks.BlockType](blocks.Air)

// ChunkManager handles the management of chunks received from the
// network. It ensures thread-safe access and processing of chunks,
// and meshes them into render.RenderableChunk values using the
// boundary/mesher pipeline.
type ChunkManager struct {
	chunks         map[voxel.ChunkPos]*voxel.ChunkData[blocks.BlockType]
	chunksMutex    sync.RWMutex
	chunkQueue     chan chunkJob
	client         *network.Client
	stopWorker     chan struct{}
	workerStopped  chan struct{}
	renderDistance uint8

	voxReg   voxel.VoxRegistry[blocks.BlockType]
	geoReg   registry.GeometryRegistry
	assetReg registry.AssetRegistry

	// Flag to track when chunks have changed
	chunksChanged      bool
	chunksChangedMutex sync.RWMutex
}

// chunkJob represents a job to process a chunk
type chunkJob struct {
	pos       voxel.ChunkPos
	blockData []blocks.BlockType
	monoType  bool
	blockType blocks.BlockType
}

// NewChunkManager creates a new chunk manager
func NewChunkManager(client *network.Client, renderDistance uint8) *ChunkManager {
	cm := &ChunkManager{
		chunks:         make(map[voxel.ChunkPos]*voxel.ChunkData[blocks.BlockType]),
		chunkQueue:     make(chan chunkJob, 100), // Buffer for 100 chunk jobs
		client:         client,
		stopWorker:     make(chan struct{}),
		workerStopped:  make(chan struct{}),
		renderDistance: renderDistance,
		chunksChanged:  true, // Initial state is changed to build first draw commands
		voxReg:         blocks.NewVoxRegistry(),
		geoReg:         blocks.DefaultGeometryRegistry(),
	}

	// Set up network callbacks
	client.OnChunkReceive = cm.handleChunkReceive
	client.OnMonoChunk = cm.handleMonoChunk

	// Start the worker goroutine
	go cm.chunkWorker()

	return cm
}

// SetAssetRegistry installs the atlas used to texture meshed chunks.
// A nil registry (the default) produces untextured geometry.
func (cm *ChunkManager) SetAssetRegistry(reg registry.AssetRegistry) {
	cm.assetReg = reg
}

// handleChunkReceive is called when a full chunk is received from the network
func (cm *ChunkManager) handleChunkReceive(x, y, z int32, blockData []blocks.BlockType) {
	pos := voxel.VoxelPos{X: x, Y: y, Z: z}.ToChunkPos()
	cm.queueChunkJob(pos, blockData, false, blocks.Air)
}

// handleMonoChunk is called when a mono-type chunk is received from the network
func (cm *ChunkManager) handleMonoChunk(x, y, z int32, blockType blocks.BlockType) {
	pos := voxel.VoxelPos{X: x, Y: y, Z: z}.ToChunkPos()
	cm.queueChunkJob(pos, nil, true, blockType)
}

// queueChunkJob adds a chunk processing job to the queue
func (cm *ChunkManager) queueChunkJob(pos voxel.ChunkPos, blockData []blocks.BlockType, monoType bool, blockType blocks.BlockType) {
	cm.chunkQueue <- chunkJob{
		pos:       pos,
		blockData: blockData,
		monoType:  monoType,
		blockType: blockType,
	}
}

// markChunksChanged sets the flag indicating chunks have changed
func (cm *ChunkManager) markChunksChanged() {
	cm.chunksChangedMutex.Lock()
	cm.chunksChanged = true
	cm.chunksChangedMutex.Unlock()
}

// UpdatePlayerPosition sends player position updates to the server
func (cm *ChunkManager) UpdatePlayerPosition(x, y, z, yaw, pitch float32) error {
	if cm.client != nil {
		return cm.client.SendUpdateEntity(x, y, z, yaw, pitch)
	}
	log.Printf("ChunkManager: Client not initialized, cannot send position update")
	return nil
}

// resetChunksChanged resets the changed flag and returns previous state
func (cm *ChunkManager) resetChunksChanged() bool {
	cm.chunksChangedMutex.Lock()
	defer cm.chunksChangedMutex.Unlock()

	prevState := cm.chunksChanged
	cm.chunksChanged = false
	return prevState
}

// chunkWorker processes chunks in the background
func (cm *ChunkManager) chunkWorker() {
	defer close(cm.workerStopped)

	for {
		select {
		case <-cm.stopWorker:
			return
		case job := <-cm.chunkQueue:
			if job.monoType {
				cm.processMonoChunk(job.pos, job.blockType)
			} else {
				cm.processFullChunk(job.pos, job.blockData)
			}

			cm.markChunksChanged()
		}
	}
}

// processMonoChunk generates a chunk filled with a single block type
func (cm *ChunkManager) processMonoChunk(pos voxel.ChunkPos, blockType blocks.BlockType) {
	data := voxel.NewChunkData[blocks.BlockType](blockType)
	cm.storeChunk(pos, data)
}

// processFullChunk processes a full chunk with mixed block types. blockData
// is indexed x + ChunkSize*(y + ChunkSize*z), the order the network layer
// serializes a chunk's bytes in.
func (cm *ChunkManager) processFullChunk(pos voxel.ChunkPos, blockData []blocks.BlockType) {
	data := voxel.NewChunkData[blocks.BlockType](blocks.Air)

	for z := 0; z < voxel.ChunkSize; z++ {
		for y := 0; y < voxel.ChunkSize; y++ {
			for x := 0; x < voxel.ChunkSize; x++ {
				idx := x + voxel.ChunkSize*(y+voxel.ChunkSize*z)
				if idx >= len(blockData) {
					continue
				}
				if b := blockData[idx]; b != blocks.Air {
					data.Set(voxel.RelativeVoxelPos{X: uint8(x), Y: uint8(y), Z: uint8(z)}, b)
				}
			}
		}
	}

	cm.storeChunk(pos, data)
}

// storeChunk stores a chunk's voxel data with proper locking
func (cm *ChunkManager) storeChunk(pos voxel.ChunkPos, data *voxel.ChunkData[blocks.BlockType]) {
	cm.chunksMutex.Lock()
	cm.chunks[pos] = data
	cm.chunksMutex.Unlock()
}

// neighborsOf gathers pos's 26 neighboring chunks, substituting
// emptyNeighbor for any not yet received. Caller must hold chunksMutex
// for reading.
func (cm *ChunkManager) neighborsOf(pos voxel.ChunkPos) [26]*voxel.ChunkData[blocks.BlockType] {
	var out [26]*voxel.ChunkData[blocks.BlockType]
	for i, n := range pos.Neighbors() {
		if c, ok := cm.chunks[n]; ok {
			out[i] = c
		} else {
			out[i] = emptyNeighbor
		}
	}
	return out
}

// meshChunk builds a ChunkBoundary and runs the full mesher pipeline
// for one chunk, returning the packed, renderer-ready result.
func (cm *ChunkManager) meshChunk(pos voxel.ChunkPos, center *voxel.ChunkData[blocks.BlockType]) *render.RenderableChunk {
	neighbors := cm.neighborsOf(pos)
	b := boundary.New[blocks.BlockType](center, neighbors, cm.voxReg, cm.geoReg, cm.assetReg, nil, nil)
	meshed := mesher.FullMesh[blocks.BlockType](cm.assetReg, b, pos, voxelSize)

	if len(meshed.ChunkMesh.Vertices) == 0 {
		return nil
	}

	origin := pos.WorldOrigin()
	return &render.RenderableChunk{
		Pos:            mgl32.Vec3{float32(origin.X), float32(origin.Y), float32(origin.Z)},
		PackedVertices: render.PackMesh(meshed.ChunkMesh),
	}
}

// GetChunks returns every stored chunk meshed and packed for rendering.
func (cm *ChunkManager) GetChunks() []*render.RenderableChunk {
	cm.chunksMutex.RLock()
	defer cm.chunksMutex.RUnlock()

	out := make([]*render.RenderableChunk, 0, len(cm.chunks))
	for pos, data := range cm.chunks {
		if rc := cm.meshChunk(pos, data); rc != nil {
			out = append(out, rc)
		}
	}
	return out
}

// HaveChunksChanged returns true if chunks have been added or removed since
// the last time this method was called
func (cm *ChunkManager) HaveChunksChanged() bool {
	return cm.resetChunksChanged()
}

// Cleanup stops the worker goroutine
func (cm *ChunkManager) Cleanup() {
	close(cm.stopWorker)
	<-cm.workerStopped
}

// GetNewChunks returns all chunks, meshed and packed, if any have changed
// since the last call, or nil otherwise.
func (cm *ChunkManager) GetNewChunks() []*render.RenderableChunk {
	if !cm.resetChunksChanged() {
		return nil
	}
	return cm.GetChunks()
}

// RemoveDistantChunks removes chunks that are too far from the given position
func (cm *ChunkManager) RemoveDistantChunks(playerX, playerY, playerZ int32) {
	playerChunkPos := voxel.VoxelPos{X: playerX, Y: playerY, Z: playerZ}.ToChunkPos()
	maxDistSquared := int32(cm.renderDistance) * int32(cm.renderDistance)

	var toRemove []voxel.ChunkPos

	cm.chunksMutex.RLock()
	for pos := range cm.chunks {
		dx := pos.X - playerChunkPos.X
		dy := pos.Y - playerChunkPos.Y
		dz := pos.Z - playerChunkPos.Z
		distSquared := dx*dx + dy*dy + dz*dz

		if distSquared > maxDistSquared {
			toRemove = append(toRemove, pos)
		}
	}
	cm.chunksMutex.RUnlock()

	if len(toRemove) > 0 {
		cm.chunksMutex.Lock()
		for _, pos := range toRemove {
			delete(cm.chunks, pos)
		}
		cm.chunksMutex.Unlock()

		cm.markChunksChanged()
	}
}
