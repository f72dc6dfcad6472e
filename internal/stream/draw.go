package stream

import (
	"voxelterrain/internal/mesh"
	"voxelterrain/internal/world"
)

// Drawer issues one draw call per chunk and pass.
type Drawer interface {
	DrawChunk(key world.Key, pass mesh.Pass, buf *mesh.Buffer)
}

// Draw walks resident, meshed chunks in area, first every opaque bucket
// and then every transparent one. It returns the number of draw calls.
func (e *Engine) Draw(area world.Area, d Drawer) int {
	var ready []*world.Chunk
	for _, c := range e.world.InArea(area) {
		if c.HasMeshData() {
			ready = append(ready, c)
		}
	}
	calls := 0
	for _, pass := range []mesh.Pass{mesh.Opaque, mesh.Transparent} {
		for _, c := range ready {
			buf := c.Mesh().Bucket(pass)
			if buf.Empty() {
				continue
			}
			d.DrawChunk(c.Key(), pass, buf)
			calls++
		}
	}
	return calls
}
