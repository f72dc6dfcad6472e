package stream

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"voxelterrain/internal/block"
	"voxelterrain/internal/raycast"
	"voxelterrain/internal/world"
)

// Block returns the block at world (x, y, z). It fails with
// world.ErrMissingChunk when no resident chunk covers (x, z).
func (e *Engine) Block(x, y, z int) (block.Type, error) {
	return e.world.Block(x, y, z)
}

// HasChunk reports whether a resident chunk covers world column (x, z).
func (e *Engine) HasChunk(x, z int) bool {
	return e.world.HasChunk(x, z)
}

// SetBlock writes a block and rebuilds the affected meshes on the calling
// goroutine so the edit is visible on the next draw. Edits on a chunk edge
// also rebuild the neighbor sharing that edge.
func (e *Engine) SetBlock(x, y, z int, t block.Type) error {
	c, err := e.world.SetBlock(x, y, z, t)
	if err != nil {
		return err
	}
	e.remeshNow(c)

	ox, oz := c.Origin()
	lx, lz := x-ox, z-oz
	var edges []block.Direction
	if lx == 0 {
		edges = append(edges, block.XNeg)
	} else if lx == world.ChunkWidth-1 {
		edges = append(edges, block.XPos)
	}
	if lz == 0 {
		edges = append(edges, block.ZNeg)
	} else if lz == world.ChunkDepth-1 {
		edges = append(edges, block.ZPos)
	}
	for _, dir := range edges {
		if n := c.Neighbor(dir); n != nil {
			e.remeshNow(n)
		}
	}
	return nil
}

// remeshNow rebuilds c synchronously if its zone is retained. Outstanding
// background builds for c are invalidated either way.
func (e *Engine) remeshNow(c *world.Chunk) {
	c.NextEpoch()
	key := c.Key()
	delete(e.inFlight, key)
	if !e.isRetained(key) {
		return
	}
	m := c.BuildMesh()
	c.SetMesh(&m)
	e.renderer.Upload(key, c.Mesh())
}

// Target returns the first non-Empty cell within edit reach along dir.
func (e *Engine) Target(origin, dir mgl32.Vec3) (raycast.Hit, bool, error) {
	if dir.Len() == 0 {
		return raycast.Hit{}, false, nil
	}
	return raycast.March(origin, dir.Normalize().Mul(e.cfg.EditReach), e)
}

// BreakBlock empties the first cell hit within reach. It reports whether
// anything was hit.
func (e *Engine) BreakBlock(origin, dir mgl32.Vec3) (bool, error) {
	hit, ok, err := e.Target(origin, dir)
	if err != nil || !ok {
		return false, err
	}
	if err := e.SetBlock(hit.Cell[0], hit.Cell[1], hit.Cell[2], block.Empty); err != nil {
		return false, fmt.Errorf("break block: %w", err)
	}
	return true, nil
}

// PlaceBlock puts t in the empty cell in front of the first cell hit within
// reach. It reports whether a block was placed; a cell above or below the
// chunk column is never placed into.
func (e *Engine) PlaceBlock(origin, dir mgl32.Vec3, t block.Type) (bool, error) {
	if t == block.Empty || t == block.Undetermined {
		return false, fmt.Errorf("place block: cannot place %s", t)
	}
	hit, ok, err := e.Target(origin, dir)
	if err != nil || !ok {
		return false, err
	}
	p := hit.Previous
	if p[1] < 0 || p[1] >= world.ChunkHeight {
		return false, nil
	}
	if err := e.SetBlock(p[0], p[1], p[2], t); err != nil {
		return false, fmt.Errorf("place block: %w", err)
	}
	return true, nil
}
