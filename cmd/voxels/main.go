package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/riftworld/voxcore/pkg/blocks"
	"github.com/riftworld/voxcore/pkg/boundary"
	"github.com/riftworld/voxcore/pkg/game"
	"github.com/riftworld/voxcore/pkg/mesher"
	"github.com/riftworld/voxcore/pkg/network"
	"github.com/riftworld/voxcore/pkg/render"
	"github.com/riftworld/voxcore/pkg/voxel"
)

func init() {
	// This is needed to ensure that OpenGL functions are called from the same thread
	runtime.LockOSThread()
}

func main() {
	fmt.Println("Starting voxcore demo...")

	// Parse command line flags
	serverAddr := flag.String("server", "", "Server address (empty for singleplayer)")
	playerName := flag.String("name", "Player", "Player name")
	renderDist := flag.Int("renderdist", 8, "Render distance (in chunks)")
	flag.Parse()

	// Initialize the renderer
	renderer, err := render.NewRenderer(800, 600, "voxcore")
	if err != nil {
		log.Fatalf("Failed to initialize renderer: %v", err)
	}

	// Position camera for a better view of the chunks
	renderer.SetCameraPosition(mgl32.Vec3{0, 25, 35})
	renderer.SetCameraLookAt(mgl32.Vec3{0, 0, 0})

	var chunkManager *game.ChunkManager

	if *serverAddr != "" {
		chunkManager = setupMultiplayerMode(*serverAddr, *playerName, uint8(*renderDist))
		runNetworkMode(renderer, chunkManager)
	} else {
		chunks := generateWorld()
		renderer.Run(chunks)
	}
}

// setupMultiplayerMode sets up the network client and chunk manager
func setupMultiplayerMode(serverAddr, playerName string, renderDist uint8) *game.ChunkManager {
	fmt.Println("Connecting to server:", serverAddr)

	client, err := network.NewClient(serverAddr)
	if err != nil {
		log.Fatalf("Failed to connect to server: %v", err)
	}
	fmt.Println("Connected to server")
	client.SetEntityName(playerName)
	client.SetRenderDistance(renderDist)

	if err := client.SendClientMetadata(); err != nil {
		log.Fatalf("Failed to send client metadata: %v", err)
	}

	chunkManager := game.NewChunkManager(client, renderDist)

	go func() {
		if err := client.ProcessPackets(); err != nil {
			log.Printf("Network error: %v", err)
		}
	}()

	return chunkManager
}

// runNetworkMode runs the game loop with network-received chunks
func runNetworkMode(renderer *render.Renderer, chunkManager *game.ChunkManager) {
	renderer.SetupOpenGL()

	var frameCount int
	lastStatsTime := time.Now()
	haveChunksChanged := true

	var chunks []*render.RenderableChunk

	for !renderer.ShouldClose() {
		if chunkManager.HaveChunksChanged() {
			chunks = chunkManager.GetChunks()
			haveChunksChanged = true
			fmt.Println("Chunks have changed, updating renderer...")
		}

		frameCount++
		if time.Since(lastStatsTime) >= time.Second {
			fmt.Printf("FPS: %d, Chunks: %d\n", frameCount, len(chunks))
			lastStatsTime = time.Now()
			frameCount = 0
		}

		if haveChunksChanged && len(chunks) > 0 {
			renderer.UpdateDrawCommands(chunks)
			haveChunksChanged = false
		}

		renderer.RenderFrame(chunks)
	}

	chunkManager.Cleanup()
	renderer.Cleanup()
}

// generateWorld builds a small local world (no network) and meshes it
// directly through the boundary/mesher pipeline, for the singleplayer
// demo path.
func generateWorld() []*render.RenderableChunk {
	positions := []voxel.ChunkPos{
		{X: -1, Y: 0, Z: -1}, {X: 0, Y: 0, Z: -1}, {X: 1, Y: 0, Z: -1},
		{X: -1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0},
		{X: -1, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1},
		{X: 0, Y: 1, Z: 0},
	}

	world := make(map[voxel.ChunkPos]*voxel.ChunkData[blocks.BlockType], len(positions))
	for _, pos := range positions {
		data := voxel.NewChunkData[blocks.BlockType](blocks.Air)
		fillChunk(data)
		world[pos] = data
	}

	voxReg := blocks.NewVoxRegistry()
	geoReg := blocks.DefaultGeometryRegistry()
	empty := voxel.NewChunkData[blocks.BlockType](blocks.Air)

	var out []*render.RenderableChunk
	for pos, center := range world {
		var neighbors [26]*voxel.ChunkData[blocks.BlockType]
		for i, n := range pos.Neighbors() {
			if c, ok := world[n]; ok {
				neighbors[i] = c
			} else {
				neighbors[i] = empty
			}
		}

		b := boundary.New[blocks.BlockType](center, neighbors, voxReg, geoReg, nil, nil, nil)
		meshed := mesher.FullMesh[blocks.BlockType](nil, b, pos, 1.0)
		if len(meshed.ChunkMesh.Vertices) == 0 {
			continue
		}

		origin := pos.WorldOrigin()
		out = append(out, &render.RenderableChunk{
			Pos:            mgl32.Vec3{float32(origin.X), float32(origin.Y), float32(origin.Z)},
			PackedVertices: render.PackMesh(meshed.ChunkMesh),
		})
	}
	return out
}

// fillChunk fills a chunk with blocks according to a heightmap
func fillChunk(data *voxel.ChunkData[blocks.BlockType]) {
	for x := 0; x < voxel.ChunkSize; x++ {
		for z := 0; z < voxel.ChunkSize; z++ {
			height := int(math.Sin(float64(x)/5.0)*3.0 + math.Cos(float64(z)/5.0)*3.0 + 8)
			if height < 0 {
				height = 0
			}
			if height >= voxel.ChunkSize {
				height = voxel.ChunkSize - 1
			}

			for y := 0; y < height; y++ {
				var b blocks.BlockType
				switch {
				case y == height-1:
					b = blocks.Grass
				case y > height-4:
					b = blocks.Dirt
				default:
					b = blocks.Stone
				}
				if y == height-1 && rand.Float64() < 0.05 {
					b = blocks.GoldBlock
				}
				data.Set(voxel.RelativeVoxelPos{X: uint8(x), Y: uint8(y), Z: uint8(z)}, b)
			}

			if height < 5 {
				for y := height; y < 5; y++ {
					data.Set(voxel.RelativeVoxelPos{X: uint8(x), Y: uint8(y), Z: uint8(z)}, blocks.Water)
				}
			}
		}
	}
}
