// Package stream keeps a window of generated, meshed terrain around a moving
// observer. Generation and meshing run on a pipeline.Pool; results come back
// through queues that the engine drains on its own goroutine.
package stream

import (
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"voxelterrain/internal/block"
	"voxelterrain/internal/config"
	"voxelterrain/internal/mesh"
	"voxelterrain/internal/pipeline"
	"voxelterrain/internal/world"
)

// Generator fills a chunk with terrain. It must be safe for concurrent use.
type Generator interface {
	GenerateChunk(c *world.Chunk)
}

// Renderer receives mesh lifecycle events. Upload replaces any earlier mesh
// for the same chunk.
type Renderer interface {
	Upload(key world.Key, m *mesh.Mesh)
	Release(key world.Key)
}

type nopRenderer struct{}

func (nopRenderer) Upload(world.Key, *mesh.Mesh) {}
func (nopRenderer) Release(world.Key)            {}

// MeshResult is a finished mesh build tagged with the chunk epoch it was
// built from.
type MeshResult struct {
	Key   world.Key
	Epoch uint64
	Mesh  mesh.Mesh
}

// Stats is a point-in-time view of engine bookkeeping.
type Stats struct {
	ResidentChunks   int
	GeneratingChunks int
	MeshedChunks     int
	MeshesInFlight   int
	GeneratedZones   int
	RetainedZones    int
	StaleDiscarded   uint64
	PoolPending      int
}

// TickReport summarises one call to Tick.
type TickReport struct {
	Inserted  int
	Meshed    int
	Stale     int
	Expansion *ExpansionReport
}

// Engine owns the world map, the zone bookkeeping, and the result queues.
// It is not safe for concurrent use: Tick, edits, and Draw must all be
// called from the same goroutine. Workers only ever touch chunks that are
// not yet in the world or immutable snapshots.
type Engine struct {
	cfg      config.StreamConfig
	gen      Generator
	pool     *pipeline.Pool
	logger   *slog.Logger
	renderer Renderer

	world      *world.World
	generated  map[world.Key]struct{}
	retained   map[world.Key]struct{}
	generating map[world.Key]*world.Chunk
	inFlight   map[world.Key]struct{}

	blockReady *pipeline.Queue[*world.Chunk]
	meshReady  *pipeline.Queue[MeshResult]

	expanded       bool
	lastExpansion  mgl32.Vec3
	sinceExpansion time.Duration
	stale          uint64
}

// NewEngine wires an engine to its generator and worker pool. The caller
// owns the pool and shuts it down after the engine is done.
func NewEngine(cfg config.StreamConfig, gen Generator, pool *pipeline.Pool, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ZoneRadius <= 0 {
		cfg.ZoneRadius = 2
	}
	if cfg.EditReach <= 0 {
		cfg.EditReach = 3
	}
	return &Engine{
		cfg:        cfg,
		gen:        gen,
		pool:       pool,
		logger:     logger,
		renderer:   nopRenderer{},
		world:      world.New(),
		generated:  make(map[world.Key]struct{}),
		retained:   make(map[world.Key]struct{}),
		generating: make(map[world.Key]*world.Chunk),
		inFlight:   make(map[world.Key]struct{}),
		blockReady: pipeline.NewQueue[*world.Chunk](),
		meshReady:  pipeline.NewQueue[MeshResult](),
	}
}

// SetRenderer installs the mesh consumer. nil restores the no-op renderer.
func (e *Engine) SetRenderer(r Renderer) {
	if r == nil {
		r = nopRenderer{}
	}
	e.renderer = r
}

// World exposes the chunk map for read-only use on the engine goroutine.
func (e *Engine) World() *world.World {
	return e.world
}

// Tick drains finished work and, once the expansion interval has elapsed,
// runs TryExpansion. The first tick always expands. After that the
// position of the last expansion is used as prev so zone crossings between
// expansions are never lost.
func (e *Engine) Tick(pos, prev mgl32.Vec3, dt time.Duration) TickReport {
	var report TickReport
	report.Inserted, report.Meshed, report.Stale = e.Drain()

	e.sinceExpansion += dt
	if e.expanded && e.sinceExpansion < e.cfg.ExpansionInterval.Duration() {
		return report
	}
	if e.expanded {
		prev = e.lastExpansion
	}
	expansion := e.TryExpansion(pos, prev)
	report.Expansion = &expansion
	return report
}

// Drain moves finished chunks into the world and stores finished meshes.
// It returns the number of chunks inserted, meshes accepted, and stale
// meshes discarded.
func (e *Engine) Drain() (inserted, meshed, stale int) {
	ready := e.blockReady.Drain(e.cfg.MaxDrainPerTick)
	if len(ready) > 0 {
		var toMesh []*world.Chunk
		queued := make(map[world.Key]struct{})
		enqueue := func(c *world.Chunk) {
			key := c.Key()
			if _, ok := queued[key]; ok || !e.isRetained(key) {
				return
			}
			queued[key] = struct{}{}
			toMesh = append(toMesh, c)
		}

		for _, c := range ready {
			delete(e.generating, c.Key())
			e.world.Insert(c)
			inserted++
		}
		for _, c := range ready {
			enqueue(c)
			for _, dir := range block.Directions {
				n := c.Neighbor(dir)
				if n == nil {
					continue
				}
				// Neighbors meshed before c existed drew no faces toward it.
				if _, busy := e.inFlight[n.Key()]; busy || n.HasMeshData() {
					enqueue(n)
				}
			}
		}
		for _, c := range toMesh {
			e.dispatchMesh(c)
		}
	}

	for _, r := range e.meshReady.Drain(e.cfg.MaxDrainPerTick) {
		c, ok := e.world.Chunk(r.Key)
		if !ok || r.Epoch != c.MeshEpoch() || !e.isRetained(r.Key) {
			stale++
			continue
		}
		delete(e.inFlight, r.Key)
		m := r.Mesh
		c.SetMesh(&m)
		e.renderer.Upload(r.Key, c.Mesh())
		meshed++
	}
	e.stale += uint64(stale)
	if inserted > 0 || meshed > 0 {
		e.logger.Debug("drained results", "chunks", inserted, "meshes", meshed, "stale", stale)
	}
	return inserted, meshed, stale
}

func (e *Engine) isRetained(chunk world.Key) bool {
	_, ok := e.retained[world.ZoneOf(chunk)]
	return ok
}

// dispatchMesh snapshots c on the engine goroutine and meshes the snapshot
// in the background. Any result from an earlier dispatch becomes stale.
func (e *Engine) dispatchMesh(c *world.Chunk) bool {
	c.NextEpoch()
	snap := c.Snapshot()
	err := e.pool.Submit(func() {
		e.meshReady.Push(MeshResult{Key: snap.Key(), Epoch: snap.Epoch(), Mesh: snap.BuildMesh()})
	})
	if err != nil {
		e.logger.Error("dispatch mesh", "chunk", c.Key().String(), "error", err)
		return false
	}
	e.inFlight[c.Key()] = struct{}{}
	return true
}

// dispatchGeneration generates chunks in the background and hands each one
// back through the block-ready queue.
func (e *Engine) dispatchGeneration(zone world.Key, chunks []*world.Chunk) bool {
	err := e.pool.Submit(func() {
		for _, c := range chunks {
			e.gen.GenerateChunk(c)
			e.blockReady.Push(c)
		}
	})
	if err != nil {
		e.logger.Error("dispatch generation", "zone", zone.String(), "error", err)
		for _, c := range chunks {
			delete(e.generating, c.Key())
		}
		return false
	}
	return true
}

// Stats reports current bookkeeping.
func (e *Engine) Stats() Stats {
	s := Stats{
		ResidentChunks:   e.world.Len(),
		GeneratingChunks: len(e.generating),
		MeshesInFlight:   len(e.inFlight),
		GeneratedZones:   len(e.generated),
		RetainedZones:    len(e.retained),
		StaleDiscarded:   e.stale,
		PoolPending:      e.pool.Pending(),
	}
	for _, c := range e.world.InArea(e.retainedArea()) {
		if c.HasMeshData() {
			s.MeshedChunks++
		}
	}
	return s
}

func (e *Engine) retainedArea() world.Area {
	if len(e.retained) == 0 {
		return world.Area{}
	}
	first := true
	var a world.Area
	for zone := range e.retained {
		x32, z32 := zone.Coords()
		x, z := int(x32), int(z32)
		if first {
			a = world.Area{MinX: x, MinZ: z, MaxX: x + world.ZoneSize, MaxZ: z + world.ZoneSize}
			first = false
			continue
		}
		a.MinX, a.MinZ = min(a.MinX, x), min(a.MinZ, z)
		a.MaxX, a.MaxZ = max(a.MaxX, x+world.ZoneSize), max(a.MaxZ, z+world.ZoneSize)
	}
	return a
}
