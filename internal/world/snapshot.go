package world

import (
	"voxelterrain/internal/block"
	"voxelterrain/internal/mesh"
)

// Snapshot is an immutable copy of a chunk and the boundary slabs of its
// lateral neighbors. It is safe to mesh on another goroutine while the
// source chunk keeps changing.
type Snapshot struct {
	key    Key
	epoch  uint64
	blocks [ChunkCells]block.Type
	// slabs hold the neighbor cells touching each lateral face, indexed by
	// the direction from the chunk. nil means no neighbor was linked.
	slabs [6][]block.Type
}

// Snapshot copies the chunk at its current mesh epoch.
func (c *Chunk) Snapshot() *Snapshot {
	s := &Snapshot{key: c.Key(), epoch: c.epoch, blocks: c.blocks}
	for _, dir := range block.Directions {
		n := c.neighbors[dir]
		if n == nil || !dir.Lateral() {
			continue
		}
		s.slabs[dir] = n.boundarySlab(dir.Opposite())
	}
	return s
}

// boundarySlab copies the ChunkHeight×side cells on the face of c pointing
// along dir.
func (c *Chunk) boundarySlab(dir block.Direction) []block.Type {
	slab := make([]block.Type, ChunkHeight*ChunkWidth)
	for y := 0; y < ChunkHeight; y++ {
		for i := 0; i < ChunkWidth; i++ {
			var x, z int
			switch dir {
			case block.XPos:
				x, z = ChunkWidth-1, i
			case block.XNeg:
				x, z = 0, i
			case block.ZPos:
				x, z = i, ChunkDepth-1
			case block.ZNeg:
				x, z = i, 0
			}
			slab[y*ChunkWidth+i] = c.blocks[cellIndex(x, y, z)]
		}
	}
	return slab
}

func (s *Snapshot) Key() Key {
	return s.key
}

func (s *Snapshot) Epoch() uint64 {
	return s.epoch
}

// BlockAt resolves cells inside the chunk and one step past each lateral
// face. Everything else is block.Undetermined.
func (s *Snapshot) BlockAt(x, y, z int) block.Type {
	if y < 0 || y >= ChunkHeight {
		return block.Undetermined
	}
	inX := x >= 0 && x < ChunkWidth
	inZ := z >= 0 && z < ChunkDepth
	switch {
	case inX && inZ:
		return s.blocks[cellIndex(x, y, z)]
	case inZ && x == -1:
		return s.slabAt(block.XNeg, y, z)
	case inZ && x == ChunkWidth:
		return s.slabAt(block.XPos, y, z)
	case inX && z == -1:
		return s.slabAt(block.ZNeg, y, x)
	case inX && z == ChunkDepth:
		return s.slabAt(block.ZPos, y, x)
	}
	return block.Undetermined
}

func (s *Snapshot) slabAt(dir block.Direction, y, i int) block.Type {
	slab := s.slabs[dir]
	if slab == nil {
		return block.Undetermined
	}
	return slab[y*ChunkWidth+i]
}

// BuildMesh implements mesh.Meshable.
func (s *Snapshot) BuildMesh() mesh.Mesh {
	return mesh.Build(s)
}
