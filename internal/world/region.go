package world

import (
	"fmt"

	"voxelterrain/internal/mesh"
)

// Chunk and zone geometry in blocks.
const (
	ChunkWidth  = mesh.Width
	ChunkHeight = mesh.Height
	ChunkDepth  = mesh.Depth
	ChunkCells  = ChunkWidth * ChunkHeight * ChunkDepth

	ZoneSize       = 64
	ChunksPerZone  = (ZoneSize / ChunkWidth) * (ZoneSize / ChunkDepth)
	zoneChunksSide = ZoneSize / ChunkWidth
)

// Key packs a 2D origin into 64 bits: x in the upper half, z in the lower.
// Chunk and zone origins share the encoding.
type Key int64

// ToKey packs (x, z). Negative values round-trip.
func ToKey(x, z int32) Key {
	return Key(int64(x)<<32 | int64(uint32(z)))
}

// Coords unpacks the key.
func (k Key) Coords() (x, z int32) {
	return int32(k >> 32), int32(uint32(k))
}

func (k Key) String() string {
	x, z := k.Coords()
	return fmt.Sprintf("(%d,%d)", x, z)
}

func floorDiv(value, size int) int {
	if size <= 0 {
		return 0
	}
	if value >= 0 {
		return value / size
	}
	return -((-value - 1) / size) - 1
}

func floorMod(value, size int) int {
	return value - floorDiv(value, size)*size
}

// ChunkOrigin aligns a world coordinate to the chunk grid.
func ChunkOrigin(v int) int {
	return floorDiv(v, ChunkWidth) * ChunkWidth
}

// ZoneOrigin aligns a world coordinate to the zone grid.
func ZoneOrigin(v int) int {
	return floorDiv(v, ZoneSize) * ZoneSize
}

// ChunkKeyAt returns the key of the chunk covering world column (x, z).
func ChunkKeyAt(x, z int) Key {
	return ToKey(int32(ChunkOrigin(x)), int32(ChunkOrigin(z)))
}

// ZoneKeyAt returns the key of the zone covering world column (x, z).
func ZoneKeyAt(x, z int) Key {
	return ToKey(int32(ZoneOrigin(x)), int32(ZoneOrigin(z)))
}

// ZoneOf returns the zone containing the chunk with the given key.
func ZoneOf(chunk Key) Key {
	x, z := chunk.Coords()
	return ZoneKeyAt(int(x), int(z))
}

// ZoneChunks lists the chunk keys of a zone in x-major order.
func ZoneChunks(zone Key) []Key {
	zx, zz := zone.Coords()
	keys := make([]Key, 0, ChunksPerZone)
	for i := 0; i < zoneChunksSide; i++ {
		for j := 0; j < zoneChunksSide; j++ {
			keys = append(keys, ToKey(zx+int32(i*ChunkWidth), zz+int32(j*ChunkDepth)))
		}
	}
	return keys
}

// ZoneNeighborhood returns the (2r+1)² zone keys centred on the zone that
// contains world column (x, z).
func ZoneNeighborhood(x, z, radius int) []Key {
	cx, cz := ZoneOrigin(x), ZoneOrigin(z)
	keys := make([]Key, 0, (2*radius+1)*(2*radius+1))
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			keys = append(keys, ToKey(int32(cx+dx*ZoneSize), int32(cz+dz*ZoneSize)))
		}
	}
	return keys
}

// Area is a half-open world-space rectangle [MinX,MaxX)×[MinZ,MaxZ).
type Area struct {
	MinX, MinZ int
	MaxX, MaxZ int
}

// AreaAround returns the square of the given half extent centred on (x, z).
func AreaAround(x, z, halfExtent int) Area {
	return Area{MinX: x - halfExtent, MinZ: z - halfExtent, MaxX: x + halfExtent, MaxZ: z + halfExtent}
}

// ChunkKeys lists the keys of every chunk slot overlapping the area.
func (a Area) ChunkKeys() []Key {
	if a.MaxX <= a.MinX || a.MaxZ <= a.MinZ {
		return nil
	}
	var keys []Key
	for x := ChunkOrigin(a.MinX); x < a.MaxX; x += ChunkWidth {
		for z := ChunkOrigin(a.MinZ); z < a.MaxZ; z += ChunkDepth {
			keys = append(keys, ToKey(int32(x), int32(z)))
		}
	}
	return keys
}

func (a Area) Width() int { return a.MaxX - a.MinX }
func (a Area) Depth() int { return a.MaxZ - a.MinZ }
