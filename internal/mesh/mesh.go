// Package mesh turns block volumes into draw-ready vertex and index buffers.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxelterrain/internal/block"
)

// Volume dimensions meshed by Build.
const (
	Width  = 16
	Height = 256
	Depth  = 16
)

// VertexStride is the number of Vec4 entries per vertex: position, normal, uv.
const VertexStride = 3

// Pass selects one of the two draw buckets.
type Pass int

const (
	Opaque Pass = iota
	Transparent
)

func (p Pass) String() string {
	if p == Transparent {
		return "transparent"
	}
	return "opaque"
}

// Buffer is an interleaved vertex stream and its index list.
type Buffer struct {
	Vertices []mgl32.Vec4
	Indices  []uint32
}

// Faces reports how many quads the buffer holds.
func (b Buffer) Faces() int {
	return len(b.Indices) / len(quadIndices)
}

// Empty reports whether the buffer has nothing to draw.
func (b Buffer) Empty() bool {
	return len(b.Indices) == 0
}

// Vertex returns the position, normal, and uv of vertex i.
func (b Buffer) Vertex(i int) (pos, normal, uv mgl32.Vec4) {
	base := i * VertexStride
	return b.Vertices[base], b.Vertices[base+1], b.Vertices[base+2]
}

func (b *Buffer) appendFace(f face, x, y, z int, offset block.AtlasCell) {
	start := uint32(len(b.Vertices) / VertexStride)
	origin := mgl32.Vec4{float32(x), float32(y), float32(z), 0}
	atlas := mgl32.Vec2{offset.Col * uvCell, offset.Row * uvCell}
	for _, v := range f.vertices {
		uv := v.uv.Add(atlas)
		b.Vertices = append(b.Vertices,
			origin.Add(v.pos),
			f.normal,
			mgl32.Vec4{uv[0], uv[1], 0, 0},
		)
	}
	for _, idx := range quadIndices {
		b.Indices = append(b.Indices, start+idx)
	}
}

// Mesh holds the opaque and transparent buckets of one chunk.
type Mesh struct {
	Opaque      Buffer
	Transparent Buffer
}

// Bucket returns the buffer for a pass.
func (m *Mesh) Bucket(p Pass) *Buffer {
	if p == Transparent {
		return &m.Transparent
	}
	return &m.Opaque
}

// Volume is a readable block grid. Coordinates one step outside
// [0,Width)×[0,Height)×[0,Depth) must resolve to the neighbouring cell or
// to block.Undetermined when nothing is loaded there.
type Volume interface {
	BlockAt(x, y, z int) block.Type
}

// Meshable produces mesh buffers on demand.
type Meshable interface {
	BuildMesh() Mesh
}

// Visible reports whether the face of cur facing neighbor is drawn.
func Visible(cur, neighbor block.Type) bool {
	if cur == block.Empty || cur == block.Undetermined {
		return false
	}
	switch {
	case neighbor == block.Empty:
		return true
	case neighbor.IsLiquid():
		return !cur.IsLiquid()
	default:
		return false
	}
}

// Build emits every visible face of v. Liquids go to the transparent
// bucket, everything else to the opaque one.
func Build(v Volume) Mesh {
	var m Mesh
	for z := 0; z < Depth; z++ {
		for y := 0; y < Height; y++ {
			for x := 0; x < Width; x++ {
				cur := v.BlockAt(x, y, z)
				if cur == block.Empty {
					continue
				}
				bucket := &m.Opaque
				if cur.IsLiquid() {
					bucket = &m.Transparent
				}
				for _, f := range faces {
					dx, dy, dz := f.dir.Offset()
					if !Visible(cur, v.BlockAt(x+dx, y+dy, z+dz)) {
						continue
					}
					bucket.appendFace(f, x, y, z, block.AtlasOffset(cur, f.dir))
				}
			}
		}
	}
	return m
}
