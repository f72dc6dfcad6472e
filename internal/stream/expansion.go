package stream

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"voxelterrain/internal/world"
)

// ExpansionReport describes what one expansion step did.
type ExpansionReport struct {
	Zone world.Key // zone containing the observer

	EvictedZones int
	FreedMeshes  int

	GenerationTasks int // one per newly generated zone
	GeneratedChunks int
	MeshTasks       int // one per chunk of a re-entered zone
}

// Dispatched is the number of worker tasks submitted.
func (r ExpansionReport) Dispatched() int {
	return r.GenerationTasks + r.MeshTasks
}

func column(pos mgl32.Vec3) (x, z int) {
	return int(math.Floor(float64(pos[0]))), int(math.Floor(float64(pos[2])))
}

func (e *Engine) zoneSet(pos mgl32.Vec3) ([]world.Key, map[world.Key]struct{}) {
	x, z := column(pos)
	keys := world.ZoneNeighborhood(x, z, e.cfg.ZoneRadius)
	set := make(map[world.Key]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return keys, set
}

// TryExpansion compares the zone neighborhoods around pos and prev.
// Zones that fell out of range lose their meshes. Zones in range that were
// never generated are marked and handed to one generation task each.
// Generated zones that just came back into range get one mesh task per
// resident chunk. Calling it again with the same position dispatches
// nothing.
func (e *Engine) TryExpansion(pos, prev mgl32.Vec3) ExpansionReport {
	currKeys, curr := e.zoneSet(pos)
	prevKeys, prevSet := e.zoneSet(prev)

	x, z := column(pos)
	report := ExpansionReport{Zone: world.ZoneKeyAt(x, z)}

	// Zones retained by an earlier expansion are evicted too, so a prev that
	// disagrees with the engine's own history cannot strand meshes.
	candidates := prevKeys
	for zone := range e.retained {
		if _, ok := prevSet[zone]; !ok {
			candidates = append(candidates, zone)
		}
	}
	for _, zone := range candidates {
		if _, ok := curr[zone]; ok {
			continue
		}
		report.EvictedZones++
		report.FreedMeshes += e.evictZone(zone)
	}

	e.retained = curr
	for _, zone := range currKeys {
		if _, ok := e.generated[zone]; !ok {
			e.generated[zone] = struct{}{}
			chunks := e.pendingChunks(zone)
			if len(chunks) == 0 {
				continue
			}
			if !e.dispatchGeneration(zone, chunks) {
				// Leave the zone unmarked so a later expansion retries it.
				delete(e.generated, zone)
				continue
			}
			report.GenerationTasks++
			report.GeneratedChunks += len(chunks)
			continue
		}
		if _, ok := prevSet[zone]; ok {
			continue
		}
		for _, key := range world.ZoneChunks(zone) {
			c, ok := e.world.Chunk(key)
			if !ok {
				continue
			}
			if e.dispatchMesh(c) {
				report.MeshTasks++
			}
		}
	}

	e.expanded = true
	e.lastExpansion = pos
	e.sinceExpansion = 0
	if report.Dispatched() > 0 || report.EvictedZones > 0 {
		e.logger.Info("zone expansion",
			"zone", report.Zone.String(),
			"generated", report.GenerationTasks,
			"remeshed", report.MeshTasks,
			"evicted", report.EvictedZones,
			"freed", report.FreedMeshes,
		)
	}
	return report
}

// pendingChunks creates the chunks of zone that neither exist nor are
// being generated. They stay out of the world until generation finishes.
func (e *Engine) pendingChunks(zone world.Key) []*world.Chunk {
	var chunks []*world.Chunk
	for _, key := range world.ZoneChunks(zone) {
		if _, ok := e.world.Chunk(key); ok {
			continue
		}
		if _, ok := e.generating[key]; ok {
			continue
		}
		x, z := key.Coords()
		c := world.NewChunk(int(x), int(z))
		e.generating[key] = c
		chunks = append(chunks, c)
	}
	return chunks
}

// evictZone frees the meshes of a zone's resident chunks and invalidates
// in-flight builds. Block data stays.
func (e *Engine) evictZone(zone world.Key) int {
	freed := 0
	for _, key := range world.ZoneChunks(zone) {
		c, ok := e.world.Chunk(key)
		if !ok {
			continue
		}
		c.NextEpoch()
		delete(e.inFlight, key)
		if c.HasMeshData() {
			c.FreeMesh()
			e.renderer.Release(key)
			freed++
		}
	}
	return freed
}
