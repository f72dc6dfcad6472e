package stream

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"voxelterrain/internal/world"
)

// Telemetry is the chunk and zone under a world position.
type Telemetry struct {
	ChunkX, ChunkZ int
	ZoneX, ZoneZ   int
}

// Locate derives telemetry for pos.
func Locate(pos mgl32.Vec3) Telemetry {
	x, z := column(pos)
	return Telemetry{
		ChunkX: world.ChunkOrigin(x),
		ChunkZ: world.ChunkOrigin(z),
		ZoneX:  world.ZoneOrigin(x),
		ZoneZ:  world.ZoneOrigin(z),
	}
}

func (t Telemetry) String() string {
	return fmt.Sprintf("chunk (%d,%d) zone (%d,%d)", t.ChunkX, t.ChunkZ, t.ZoneX, t.ZoneZ)
}
