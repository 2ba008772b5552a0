package registry

import (
	"sync"

	"github.com/google/uuid"
	"github.com/riftworld/voxcore/pkg/geometry"
)

// MapVoxRegistry is a reference VoxRegistry backed by a set of
// identifiers considered empty. Any voxel type whose Identifier()
// isn't in the set is treated as non-empty.
type MapVoxRegistry[V interface{ Identifier() string }] struct {
	empty map[string]struct{}
}

// NewMapVoxRegistry builds a registry where every identifier in
// emptyIdentifiers reports IsEmpty == true.
func NewMapVoxRegistry[V interface{ Identifier() string }](emptyIdentifiers ...string) *MapVoxRegistry[V] {
	m := make(map[string]struct{}, len(emptyIdentifiers))
	for _, id := range emptyIdentifiers {
		m[id] = struct{}{}
	}
	return &MapVoxRegistry[V]{empty: m}
}

func (r *MapVoxRegistry[V]) IsEmpty(v V) bool {
	_, ok := r.empty[v.Identifier()]
	return ok
}

// geometryEntry pairs a registered Geometry with a stable identity
// stamp, minted once at registration time, that a host can use as a
// cache-invalidation key independent of the namespace string.
type geometryEntry struct {
	geom geometry.Geometry
	id   uuid.UUID
}

// MapGeometryRegistry is a reference GeometryRegistry backed by a
// plain map, safe for concurrent reads (see section 5: registries are
// read concurrently by any number of meshing tasks and are never
// mutated by the core).
type MapGeometryRegistry struct {
	mu      sync.RWMutex
	entries map[string]geometryEntry
}

// NewMapGeometryRegistry creates an empty registry.
func NewMapGeometryRegistry() *MapGeometryRegistry {
	return &MapGeometryRegistry{entries: make(map[string]geometryEntry)}
}

// Register records geom under namespace, minting a fresh UUID the
// first time the namespace is seen and reusing it on re-registration
// (a namespace's identity key is stable across hot-reloads).
func (r *MapGeometryRegistry) Register(namespace string, geom geometry.Geometry) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[namespace]; ok {
		existing.geom = geom
		r.entries[namespace] = existing
		return existing.id
	}
	id := uuid.New()
	r.entries[namespace] = geometryEntry{geom: geom, id: id}
	return id
}

func (r *MapGeometryRegistry) Geometry(namespace string) (geometry.Geometry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[namespace]
	return e.geom, ok
}

// IdentityOf returns the stable UUID minted for namespace, if
// registered.
func (r *MapGeometryRegistry) IdentityOf(namespace string) (uuid.UUID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[namespace]
	return e.id, ok
}
