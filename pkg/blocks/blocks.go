// Package blocks is a concrete voxel.Voxel implementation: the block
// palette a demo world actually stores, in the style of the teacher's
// own block.go but reworked onto the registry-driven Voxel interface
// instead of a hardcoded property map.
package blocks

import (
	"fmt"

	"github.com/riftworld/voxcore/pkg/geometry"
	"github.com/riftworld/voxcore/pkg/registry"
	"github.com/riftworld/voxcore/pkg/voxel"
)

// BlockType is a single byte identifying one entry in the block
// palette below. It is the V type parameter every demo package
// (game, network, render, cmd/...) instantiates the generic core
// with.
type BlockType uint8

const (
	Air BlockType = iota
	Grass
	Dirt
	Stone
	OakLog
	OakLeaves
	Glass
	Water
	Sand
	Snow
	OakPlanks
	StoneBricks
	Netherrack
	GoldBlock
	PackedIce
	Lava
	Barrel
	Bookshelf

	blockTypeCount
)

// properties describes a block's participation in meshing and light
// propagation. Every entry in this table needs a matching identifier
// and geometry namespace below; blocks with no entry fall back to
// opaque solid (see propertiesOf).
type properties struct {
	identifier  string
	opaque      bool
	trueEmpty   bool // participates in no gameplay logic at all
	transparent bool
}

var table = map[BlockType]properties{
	Air:         {identifier: "voxcore:air", trueEmpty: true},
	Grass:       {identifier: "voxcore:grass", opaque: true},
	Dirt:        {identifier: "voxcore:dirt", opaque: true},
	Stone:       {identifier: "voxcore:stone", opaque: true},
	OakLog:      {identifier: "voxcore:oak_log", opaque: true},
	OakLeaves:   {identifier: "voxcore:oak_leaves", transparent: true},
	Glass:       {identifier: "voxcore:glass", transparent: true},
	Water:       {identifier: "voxcore:water", transparent: true},
	Sand:        {identifier: "voxcore:sand", opaque: true},
	Snow:        {identifier: "voxcore:snow", opaque: true},
	OakPlanks:   {identifier: "voxcore:oak_planks", opaque: true},
	StoneBricks: {identifier: "voxcore:stone_bricks", opaque: true},
	Netherrack:  {identifier: "voxcore:netherrack", opaque: true},
	GoldBlock:   {identifier: "voxcore:gold_block", opaque: true},
	PackedIce:   {identifier: "voxcore:packed_ice", transparent: true},
	Lava:        {identifier: "voxcore:lava", transparent: true},
	Barrel:      {identifier: "voxcore:barrel", opaque: true},
	Bookshelf:   {identifier: "voxcore:bookshelf", opaque: true},
}

func propertiesOf(b BlockType) properties {
	if p, ok := table[b]; ok {
		return p
	}
	return properties{identifier: fmt.Sprintf("voxcore:unknown_%d", b), opaque: true}
}

// IsEmpty reports whether b occupies no space. reg is accepted to
// satisfy voxel.Voxel but BlockType never needs a registry override:
// emptiness is a fixed property of the palette entry.
func (b BlockType) IsEmpty(reg voxel.VoxRegistry[BlockType]) bool {
	p := propertiesOf(b)
	return p.trueEmpty || (!p.opaque && !p.transparent && b == Air)
}

// IsTrueEmpty excludes blocks that render nothing but still matter to
// gameplay (none in this palette yet). It reports the trueEmpty
// property, which gives the same answer as IsEmpty for every block here.
func (b BlockType) IsTrueEmpty(reg voxel.VoxRegistry[BlockType]) bool {
	return propertiesOf(b).trueEmpty
}

// IsOpaque reports whether b fully occludes light.
func (b BlockType) IsOpaque(reg voxel.VoxRegistry[BlockType]) bool {
	return propertiesOf(b).opaque
}

// Identifier returns b's namespaced identifier, e.g. "voxcore:stone".
func (b BlockType) Identifier() string {
	return propertiesOf(b).identifier
}

// NewVoxRegistry builds the reference VoxRegistry for this palette:
// every trueEmpty identifier reports IsEmpty == true.
func NewVoxRegistry() *registry.MapVoxRegistry[BlockType] {
	var empty []string
	for _, p := range table {
		if p.trueEmpty {
			empty = append(empty, p.identifier)
		}
	}
	return registry.NewMapVoxRegistry[BlockType](empty...)
}

// DefaultGeometryRegistry builds a GeometryRegistry where every
// non-air block is a standard full, fully-blocking cube. Transparent
// blocks additionally carry an all-false BlocksSelf. Glass-against-glass
// still meshes no internal face: both cells block on every face and
// share a match index, so the mesher drops the face.
func DefaultGeometryRegistry() *registry.MapGeometryRegistry {
	r := registry.NewMapGeometryRegistry()
	selfBlocked := [6]bool{}
	for b, p := range table {
		if p.trueEmpty {
			continue
		}
		geo := geometry.DefaultBlock()
		if p.transparent {
			sb := selfBlocked
			geo.BlocksSelf = &sb
		}
		r.Register(p.identifier, geo)
	}
	return r
}
