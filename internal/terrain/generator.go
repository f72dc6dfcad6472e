// Package terrain populates chunks with procedurally generated blocks.
// Generation is a pure function of world coordinates, so chunks can be
// generated in any order and on any goroutine.
package terrain

import (
	"github.com/go-gl/mathgl/mgl64"

	"voxelterrain/internal/block"
	"voxelterrain/internal/config"
	"voxelterrain/internal/noise"
	"voxelterrain/internal/world"
)

const (
	baseHeight  = 128 // top of the shared stone layer
	desertFloor = 140
	canyonCut   = 180
	canyonCap   = 210
)

// Column is the sampled terrain of one world column.
type Column struct {
	Height int
	Biome  Biome

	HumidityWeight    float64
	TemperatureWeight float64

	Mountain, Grassland, Desert, Canyon float64
}

// Generator evaluates the height fields and paints chunks. It holds no
// mutable state and is safe for concurrent use.
type Generator struct {
	cfg config.TerrainConfig
}

func NewGenerator(cfg config.TerrainConfig) *Generator {
	return &Generator{cfg: cfg}
}

func (g *Generator) mountainHeight(p mgl64.Vec2) float64 {
	r := noise.FBM(noise.Perlin2D(p)+0.5, g.cfg.MountainFBM)
	return clamp(-508*r+203.2, 0, 127) + baseHeight
}

func (g *Generator) grasslandHeight(p mgl64.Vec2) float64 {
	w := noise.WorleyDistance(p, g.cfg.GrasslandWorleyScale)
	return clamp(40-50*w, 0, 40) + baseHeight
}

func (g *Generator) desertHeight(p mgl64.Vec2) float64 {
	w := noise.WorleyDistance(p, g.cfg.DesertWorleyScale)
	return clamp(10-15*w, 0, 10) + desertFloor
}

func (g *Generator) canyonHeight(p mgl64.Vec2) float64 {
	r := noise.FBM(noise.Perlin2D(p)+0.5, g.cfg.CanyonFBM)
	return shapeCanyon(clamp(-508*r+203.2, 0, 127)+baseHeight, float64(g.cfg.SeaLevel))
}

// shapeCanyon drops everything under the rim into the valley, deepens what
// still sits below sea level into a basin, and flattens the plateaus.
func shapeCanyon(h, seaLevel float64) float64 {
	if h < canyonCut {
		h -= 100
		if h < seaLevel {
			h -= 10
		}
	}
	if h > canyonCap {
		h = canyonCap
	}
	return clamp(h, 1, 255)
}

// Sample evaluates the column at world (x, z).
func (g *Generator) Sample(x, z int) Column {
	fx, fz := float64(x), float64(z)
	feature := mgl64.Vec2{fx / g.cfg.FeatureScale, fz / g.cfg.FeatureScale}
	biome := mgl64.Vec2{fx / g.cfg.BiomeScale, fz / g.cfg.BiomeScale}

	humidity := -noise.Perlin2D(biome) + 0.5
	temperature := noise.Perlin2DAlt(biome) + 0.5

	col := Column{
		HumidityWeight:    noise.Smoothstep(0.4, 0.6, humidity),
		TemperatureWeight: noise.Smoothstep(0.4, 0.6, temperature),
		Mountain:          g.mountainHeight(feature),
		Grassland:         g.grasslandHeight(feature),
		Desert:            g.desertHeight(feature),
		Canyon:            g.canyonHeight(feature),
	}
	col.Height = int(Blend(col.Mountain, col.Grassland, col.Desert, col.Canyon, col.HumidityWeight, col.TemperatureWeight))
	col.Biome = Classify(col.HumidityWeight, col.TemperatureWeight)
	return col
}

// PaintColumn writes the biome layers and water of col into chunk-local
// column (lx, lz).
func (g *Generator) PaintColumn(c *world.Chunk, lx, lz int, col Column) {
	h := col.Height
	c.SetBlock(lx, 0, lz, block.Bedrock)
	for y := 1; y <= h && y <= baseHeight; y++ {
		c.SetBlock(lx, y, lz, block.Stone)
	}

	body, top := g.layers(col)
	for y := baseHeight + 1; y <= h; y++ {
		if y == h {
			c.SetBlock(lx, y, lz, top)
		} else {
			c.SetBlock(lx, y, lz, body)
		}
	}

	flooded := false
	for y := h + 1; y < g.cfg.SeaLevel; y++ {
		c.SetBlock(lx, y, lz, block.Water)
		flooded = true
	}
	if flooded && h > 0 {
		c.SetBlock(lx, h, lz, block.Dirt)
	}
}

// layers returns the body and surface block above the stone layer.
func (g *Generator) layers(col Column) (body, top block.Type) {
	switch col.Biome {
	case Grassland:
		return block.Dirt, block.Grass
	case Desert:
		return block.Sand, block.Sand
	case Canyon:
		return block.MossStone, block.Stone
	default:
		if col.Height >= g.cfg.SnowLine {
			return block.Stone, block.Snow
		}
		return block.Stone, block.Stone
	}
}

// CarveCaves overwrites the cave band of chunk-local column (lx, lz), which
// sits at world (x, z), with a bedrock floor and 3D-noise caverns.
func (g *Generator) CarveCaves(c *world.Chunk, lx, lz, x, z int) {
	caves := g.cfg.Caves
	if !caves.Enabled {
		return
	}
	c.SetBlock(lx, caves.Floor, lz, block.Bedrock)
	for y := caves.Floor + 1; y <= caves.Top; y++ {
		p := mgl64.Vec3{float64(x) / caves.Scale, float64(y) / caves.Scale, float64(z) / caves.Scale}
		switch {
		case noise.Perlin3D(p) >= 0:
			c.SetBlock(lx, y, lz, block.Stone)
		case y < caves.LavaLevel:
			c.SetBlock(lx, y, lz, block.Lava)
		default:
			c.SetBlock(lx, y, lz, block.Empty)
		}
	}
}

// GenerateChunk fills every column of c.
func (g *Generator) GenerateChunk(c *world.Chunk) {
	ox, oz := c.Origin()
	for lx := 0; lx < world.ChunkWidth; lx++ {
		for lz := 0; lz < world.ChunkDepth; lz++ {
			x, z := ox+lx, oz+lz
			g.PaintColumn(c, lx, lz, g.Sample(x, z))
			g.CarveCaves(c, lx, lz, x, z)
		}
	}
}
