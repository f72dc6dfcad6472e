package terrain

import (
	"math"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"voxelterrain/internal/block"
	"voxelterrain/internal/config"
	"voxelterrain/internal/noise"
	"voxelterrain/internal/world"
)

func newTestGenerator(caves bool) *Generator {
	cfg := config.Default().Terrain
	cfg.Caves.Enabled = caves
	return NewGenerator(cfg)
}

func TestClassifyQuadrants(t *testing.T) {
	tests := []struct {
		wh, wt float64
		want   Biome
	}{
		{0, 0, Mountain},
		{1, 0, Grassland},
		{0, 1, Desert},
		{1, 1, Canyon},
		{0.49, 0.49, Mountain},
		{0.5, 0.49, Grassland},
		{0.49, 0.5, Desert},
		{0.5, 0.5, Canyon},
	}
	for _, tt := range tests {
		if got := Classify(tt.wh, tt.wt); got != tt.want {
			t.Fatalf("Classify(%v, %v) = %s, want %s", tt.wh, tt.wt, got, tt.want)
		}
	}
}

func TestBlendSelectsAndClamps(t *testing.T) {
	if got := Blend(150, 160, 145, 60, 0, 0); got != 150 {
		t.Fatalf("zero weights should pick mountain, got %f", got)
	}
	if got := Blend(150, 160, 145, 60, 1, 0); got != 160 {
		t.Fatalf("full humidity should pick grassland, got %f", got)
	}
	if got := Blend(150, 160, 145, 60, 0, 1); got != 145 {
		t.Fatalf("full temperature should pick desert, got %f", got)
	}
	if got := Blend(150, 160, 145, 60, 1, 1); got != 60 {
		t.Fatalf("both weights should pick canyon, got %f", got)
	}
	if got := Blend(400, 400, 400, 400, 0.3, 0.7); got != 254 {
		t.Fatalf("expected upper clamp, got %f", got)
	}
	if got := Blend(-5, -5, -5, -5, 0.3, 0.7); got != 1 {
		t.Fatalf("expected lower clamp, got %f", got)
	}
}

func TestShapeCanyon(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{200, 200},
		{180, 180},
		{179, 69},
		{128, 18},
		{240, 210},
	}
	for _, tt := range tests {
		if got := shapeCanyon(tt.in, 138); got != tt.want {
			t.Fatalf("shapeCanyon(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func topBlock(c *world.Chunk, lx, lz int) (int, block.Type) {
	y := c.SurfaceHeight(lx, lz)
	return y, c.Block(lx, y, lz)
}

func TestPaintColumnByBiome(t *testing.T) {
	gen := newTestGenerator(false)
	tests := []struct {
		name      string
		col       Column
		wantTop   block.Type
		wantBody  block.Type
		wantWater bool
	}{
		{"snowy mountain", Column{Height: 210, Biome: Mountain}, block.Snow, block.Stone, false},
		{"snow line", Column{Height: 200, Biome: Mountain}, block.Snow, block.Stone, false},
		{"bare mountain", Column{Height: 199, Biome: Mountain}, block.Stone, block.Stone, false},
		{"grassland", Column{Height: 150, Biome: Grassland}, block.Grass, block.Dirt, false},
		{"desert", Column{Height: 145, Biome: Desert}, block.Sand, block.Sand, false},
		{"canyon plateau", Column{Height: 200, Biome: Canyon}, block.Stone, block.MossStone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := world.NewChunk(0, 0)
			gen.PaintColumn(c, 3, 4, tt.col)

			y, top := topBlock(c, 3, 4)
			if y != tt.col.Height || top != tt.wantTop {
				t.Fatalf("surface = %s at %d, want %s at %d", top, y, tt.wantTop, tt.col.Height)
			}
			if got := c.Block(3, tt.col.Height-1, 4); got != tt.wantBody {
				t.Fatalf("body = %s, want %s", got, tt.wantBody)
			}
			if got := c.Block(3, 0, 4); got != block.Bedrock {
				t.Fatalf("floor = %s, want bedrock", got)
			}
			if got := c.Block(3, 100, 4); got != block.Stone {
				t.Fatalf("underground = %s, want stone", got)
			}
		})
	}
}

func TestPaintColumnFloodsBelowSeaLevel(t *testing.T) {
	gen := newTestGenerator(false)
	c := world.NewChunk(0, 0)
	gen.PaintColumn(c, 0, 0, Column{Height: 60, Biome: Canyon})

	if got := c.Block(0, 60, 0); got != block.Dirt {
		t.Fatalf("flooded surface = %s, want dirt", got)
	}
	for y := 61; y < 138; y++ {
		if got := c.Block(0, y, 0); got != block.Water {
			t.Fatalf("y=%d = %s, want water", y, got)
		}
	}
	if got := c.Block(0, 138, 0); got != block.Empty {
		t.Fatalf("sea level cell = %s, want empty", got)
	}
}

func TestPaintColumnAtSeaLevelStaysDry(t *testing.T) {
	gen := newTestGenerator(false)
	c := world.NewChunk(0, 0)
	gen.PaintColumn(c, 0, 0, Column{Height: 137, Biome: Grassland})

	if got := c.Block(0, 137, 0); got != block.Grass {
		t.Fatalf("surface = %s, want grass", got)
	}
	if got := c.Block(0, 138, 0); got != block.Empty {
		t.Fatalf("expected no water above, got %s", got)
	}
}

func TestCarveCavesOverwritesBand(t *testing.T) {
	gen := newTestGenerator(true)
	caves := config.Default().Terrain.Caves
	c := world.NewChunk(0, 0)
	gen.PaintColumn(c, 5, 5, Column{Height: 200, Biome: Mountain})
	gen.CarveCaves(c, 5, 5, 21, -11)

	if got := c.Block(5, caves.Floor, 5); got != block.Bedrock {
		t.Fatalf("cave floor = %s, want bedrock", got)
	}
	for y := caves.Floor + 1; y <= caves.Top; y++ {
		n := noise.Perlin3D(mgl64.Vec3{21 / caves.Scale, float64(y) / caves.Scale, -11 / caves.Scale})
		want := block.Empty
		switch {
		case n >= 0:
			want = block.Stone
		case y < caves.LavaLevel:
			want = block.Lava
		}
		if got := c.Block(5, y, 5); got != want {
			t.Fatalf("y=%d = %s, want %s (noise %f)", y, got, want, n)
		}
	}
	if got := c.Block(5, caves.Top+1, 5); got != block.Stone {
		t.Fatalf("cell above band = %s, want untouched stone", got)
	}
}

func TestSampleOriginColumn(t *testing.T) {
	gen := newTestGenerator(false)
	col := gen.Sample(0, 0)
	if col != gen.Sample(0, 0) {
		t.Fatalf("sampling is not deterministic")
	}
	if col.Height < 1 || col.Height > 254 {
		t.Fatalf("height %d out of range", col.Height)
	}
	if col.Biome != Classify(col.HumidityWeight, col.TemperatureWeight) {
		t.Fatalf("biome %s disagrees with weights %f/%f", col.Biome, col.HumidityWeight, col.TemperatureWeight)
	}

	c := world.NewChunk(0, 0)
	gen.GenerateChunk(c)

	seaTop := gen.cfg.SeaLevel - 1
	var want block.Type
	switch {
	case col.Height < seaTop:
		if y, top := topBlock(c, 0, 0); y != seaTop || top != block.Water {
			t.Fatalf("flooded column surface = %s at %d, want water at %d", top, y, seaTop)
		}
		want = block.Dirt
	case col.Height <= baseHeight:
		want = block.Stone
	default:
		_, want = gen.layers(col)
	}
	if got := c.Block(0, col.Height, 0); got != want {
		t.Fatalf("surface block at %d = %s, want %s for %s", col.Height, got, want, col.Biome)
	}
}

func TestSampleHeightsStayInRange(t *testing.T) {
	gen := newTestGenerator(false)
	for x := -2000; x <= 2000; x += 97 {
		for z := -2000; z <= 2000; z += 89 {
			col := gen.Sample(x, z)
			if col.Height < 1 || col.Height > 254 {
				t.Fatalf("Sample(%d,%d) height %d", x, z, col.Height)
			}
			if col.Mountain < 128 || col.Mountain > 255 {
				t.Fatalf("mountain field %f out of range", col.Mountain)
			}
			if col.Grassland < 128 || col.Grassland > 168 {
				t.Fatalf("grassland field %f out of range", col.Grassland)
			}
			if col.Desert < 140 || col.Desert > 150 {
				t.Fatalf("desert field %f out of range", col.Desert)
			}
			if col.Canyon < 1 || col.Canyon > 210 || math.IsNaN(col.Canyon) {
				t.Fatalf("canyon field %f out of range", col.Canyon)
			}
		}
	}
}

func TestGenerationIsOrderIndependent(t *testing.T) {
	gen := newTestGenerator(true)
	origins := [][2]int{{0, 0}, {16, 0}, {-16, 32}, {320, -480}}

	sequential := make([]*world.Chunk, len(origins))
	for i, o := range origins {
		sequential[i] = world.NewChunk(o[0], o[1])
		gen.GenerateChunk(sequential[i])
	}

	concurrent := make([]*world.Chunk, len(origins))
	var wg sync.WaitGroup
	for i := len(origins) - 1; i >= 0; i-- {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := world.NewChunk(origins[i][0], origins[i][1])
			gen.GenerateChunk(c)
			concurrent[i] = c
		}(i)
	}
	wg.Wait()

	for i := range origins {
		for x := 0; x < world.ChunkWidth; x++ {
			for y := 0; y < world.ChunkHeight; y++ {
				for z := 0; z < world.ChunkDepth; z++ {
					if a, b := sequential[i].Block(x, y, z), concurrent[i].Block(x, y, z); a != b {
						t.Fatalf("chunk %v cell (%d,%d,%d): %s vs %s", origins[i], x, y, z, a, b)
					}
				}
			}
		}
		a, b := sequential[i].BuildMesh(), concurrent[i].BuildMesh()
		if len(a.Opaque.Vertices) != len(b.Opaque.Vertices) || len(a.Transparent.Indices) != len(b.Transparent.Indices) {
			t.Fatalf("chunk %v meshes differ", origins[i])
		}
	}
}

func TestBiomeString(t *testing.T) {
	if Canyon.String() != "canyon" || Biome(9).String() != "unknown" {
		t.Fatalf("unexpected biome names")
	}
}
