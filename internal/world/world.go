// Package world holds the chunk grid: chunk storage, neighbor linkage, key
// packing, and world-space block access.
package world

import (
	"errors"
	"fmt"
	"sort"

	"voxelterrain/internal/block"
)

// ErrMissingChunk is returned when no loaded chunk covers a column.
var ErrMissingChunk = errors.New("no chunk covers position")

// ErrOutOfColumn is returned for writes above or below the chunk column.
var ErrOutOfColumn = errors.New("height outside chunk column")

var lateralSteps = [...]struct {
	dir    block.Direction
	dx, dz int
}{
	{block.XPos, ChunkWidth, 0},
	{block.XNeg, -ChunkWidth, 0},
	{block.ZPos, 0, ChunkDepth},
	{block.ZNeg, 0, -ChunkDepth},
}

// World maps chunk keys to fully populated chunks. It is not safe for
// concurrent use; the streaming engine owns it from a single goroutine.
type World struct {
	chunks map[Key]*Chunk
}

func New() *World {
	return &World{chunks: make(map[Key]*Chunk)}
}

// Insert adds c and links it with every resident lateral neighbor. An
// existing chunk at the same key is unlinked and replaced.
func (w *World) Insert(c *Chunk) {
	key := c.Key()
	if old, ok := w.chunks[key]; ok && old != c {
		old.Unlink()
	}
	w.chunks[key] = c
	for _, step := range lateralSteps {
		if n, ok := w.chunks[ToKey(int32(c.x+step.dx), int32(c.z+step.dz))]; ok {
			c.LinkNeighbor(n, step.dir)
		}
	}
}

// Remove deletes the chunk at key and unlinks it from its neighbors.
func (w *World) Remove(key Key) (*Chunk, bool) {
	c, ok := w.chunks[key]
	if !ok {
		return nil, false
	}
	c.Unlink()
	delete(w.chunks, key)
	return c, true
}

func (w *World) Chunk(key Key) (*Chunk, bool) {
	c, ok := w.chunks[key]
	return c, ok
}

// ChunkAt returns the chunk covering world column (x, z).
func (w *World) ChunkAt(x, z int) (*Chunk, bool) {
	return w.Chunk(ChunkKeyAt(x, z))
}

func (w *World) HasChunk(x, z int) bool {
	_, ok := w.ChunkAt(x, z)
	return ok
}

func (w *World) Len() int {
	return len(w.chunks)
}

// Block returns the block at world (x, y, z). Heights outside the chunk
// column read as Empty.
func (w *World) Block(x, y, z int) (block.Type, error) {
	c, ok := w.ChunkAt(x, z)
	if !ok {
		return block.Undetermined, fmt.Errorf("block (%d,%d,%d): %w", x, y, z, ErrMissingChunk)
	}
	if y < 0 || y >= ChunkHeight {
		return block.Empty, nil
	}
	return c.Block(x-c.x, y, z-c.z), nil
}

// SetBlock writes the block at world (x, y, z) and returns the owning chunk.
// Heights outside the chunk column are rejected with ErrOutOfColumn.
func (w *World) SetBlock(x, y, z int, t block.Type) (*Chunk, error) {
	c, ok := w.ChunkAt(x, z)
	if !ok {
		return nil, fmt.Errorf("set block (%d,%d,%d): %w", x, y, z, ErrMissingChunk)
	}
	if y < 0 || y >= ChunkHeight {
		return nil, fmt.Errorf("set block (%d,%d,%d): %w", x, y, z, ErrOutOfColumn)
	}
	c.SetBlock(x-c.x, y, z-c.z, t)
	return c, nil
}

// InArea returns the resident chunks overlapping the area, ordered by origin.
func (w *World) InArea(a Area) []*Chunk {
	var out []*Chunk
	for _, key := range a.ChunkKeys() {
		if c, ok := w.chunks[key]; ok {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].x == out[j].x {
			return out[i].z < out[j].z
		}
		return out[i].x < out[j].x
	})
	return out
}
