package world

import (
	"voxelterrain/internal/block"
	"voxelterrain/internal/mesh"
)

// Chunk is a 16×256×16 column of blocks anchored at a chunk-aligned origin.
// Neighbor slots are non-owning; the World links and unlinks them.
type Chunk struct {
	x, z      int
	blocks    [ChunkCells]block.Type
	neighbors [6]*Chunk

	mesh  *mesh.Mesh
	epoch uint64
}

// NewChunk returns an all-Empty chunk whose origin is the chunk containing (x, z).
func NewChunk(x, z int) *Chunk {
	return &Chunk{x: ChunkOrigin(x), z: ChunkOrigin(z)}
}

func (c *Chunk) Origin() (x, z int) {
	return c.x, c.z
}

func (c *Chunk) Key() Key {
	return ToKey(int32(c.x), int32(c.z))
}

func cellIndex(x, y, z int) int {
	return x + ChunkWidth*y + ChunkWidth*ChunkHeight*z
}

// Block returns the block at chunk-local (x, y, z). Coordinates outside the
// chunk are resolved through the linked neighbor; when no neighbor is linked
// the result is block.Undetermined.
func (c *Chunk) Block(x, y, z int) block.Type {
	switch {
	case x < 0:
		return c.viaNeighbor(block.XNeg, x+ChunkWidth, y, z)
	case x >= ChunkWidth:
		return c.viaNeighbor(block.XPos, x-ChunkWidth, y, z)
	case y < 0:
		return c.viaNeighbor(block.YNeg, x, y+ChunkHeight, z)
	case y >= ChunkHeight:
		return c.viaNeighbor(block.YPos, x, y-ChunkHeight, z)
	case z < 0:
		return c.viaNeighbor(block.ZNeg, x, y, z+ChunkDepth)
	case z >= ChunkDepth:
		return c.viaNeighbor(block.ZPos, x, y, z-ChunkDepth)
	}
	return c.blocks[cellIndex(x, y, z)]
}

func (c *Chunk) viaNeighbor(dir block.Direction, x, y, z int) block.Type {
	n := c.neighbors[dir]
	if n == nil {
		return block.Undetermined
	}
	return n.Block(x, y, z)
}

// BlockAt implements mesh.Volume.
func (c *Chunk) BlockAt(x, y, z int) block.Type {
	return c.Block(x, y, z)
}

// SetBlock writes a block. Coordinates wrap into the chunk, negatives included.
func (c *Chunk) SetBlock(x, y, z int, t block.Type) {
	c.blocks[cellIndex(floorMod(x, ChunkWidth), floorMod(y, ChunkHeight), floorMod(z, ChunkDepth))] = t
}

// LinkNeighbor makes n the neighbor along dir and c the neighbor of n along
// the opposite direction. A nil n is ignored.
func (c *Chunk) LinkNeighbor(n *Chunk, dir block.Direction) {
	if n == nil {
		return
	}
	c.neighbors[dir] = n
	n.neighbors[dir.Opposite()] = c
}

// Neighbor returns the linked chunk along dir, or nil.
func (c *Chunk) Neighbor(dir block.Direction) *Chunk {
	return c.neighbors[dir]
}

// Unlink detaches c from every neighbor, clearing both sides.
func (c *Chunk) Unlink() {
	for _, dir := range block.Directions {
		n := c.neighbors[dir]
		if n == nil {
			continue
		}
		if n.neighbors[dir.Opposite()] == c {
			n.neighbors[dir.Opposite()] = nil
		}
		c.neighbors[dir] = nil
	}
}

// SurfaceHeight returns the highest non-Empty y of column (x, z), or -1.
func (c *Chunk) SurfaceHeight(x, z int) int {
	x, z = floorMod(x, ChunkWidth), floorMod(z, ChunkDepth)
	for y := ChunkHeight - 1; y >= 0; y-- {
		if c.blocks[cellIndex(x, y, z)] != block.Empty {
			return y
		}
	}
	return -1
}

// BuildMesh meshes the live chunk. Only the owning goroutine may call it.
func (c *Chunk) BuildMesh() mesh.Mesh {
	return mesh.Build(c)
}

// SetMesh stores a mesh built for this chunk.
func (c *Chunk) SetMesh(m *mesh.Mesh) {
	c.mesh = m
}

// Mesh returns the cached mesh, or nil.
func (c *Chunk) Mesh() *mesh.Mesh {
	return c.mesh
}

// FreeMesh drops the cached mesh. Block data is kept.
func (c *Chunk) FreeMesh() {
	c.mesh = nil
}

func (c *Chunk) HasMeshData() bool {
	return c.mesh != nil
}

// NextEpoch invalidates every outstanding mesh build and returns the new epoch.
func (c *Chunk) NextEpoch() uint64 {
	c.epoch++
	return c.epoch
}

// MeshEpoch is the epoch a mesh result must carry to be accepted.
func (c *Chunk) MeshEpoch() uint64 {
	return c.epoch
}
