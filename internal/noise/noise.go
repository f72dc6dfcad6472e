// Package noise holds the deterministic scalar noise functions used by
// terrain generation. Every function is pure and safe for concurrent use.
package noise

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const hashScale = 43758.5453

var (
	hash2A = [2]mgl64.Vec2{{127.1, 311.7}, {269.5, 183.3}}
	hash2B = [2]mgl64.Vec2{{12.9898, 78.233}, {39.3468, 11.1351}}
	hash3  = [3]mgl64.Vec3{{127.1, 311.7, 74.7}, {269.5, 183.3, 246.1}, {113.5, 271.9, 124.6}}
)

func fract(v float64) float64 {
	return v - math.Floor(v)
}

// Hash2 maps a 2D point to a pseudo-random vector in the unit square.
func Hash2(p mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{
		fract(math.Sin(p.Dot(hash2A[0])) * hashScale),
		fract(math.Sin(p.Dot(hash2A[1])) * hashScale),
	}
}

// Hash2Alt is a second 2D family, uncorrelated with Hash2.
func Hash2Alt(p mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{
		fract(math.Sin(p.Dot(hash2B[0])) * hashScale),
		fract(math.Sin(p.Dot(hash2B[1])) * hashScale),
	}
}

// Hash3 maps a 3D point to a pseudo-random vector in the unit cube.
func Hash3(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		fract(math.Sin(p.Dot(hash3[0])) * hashScale),
		fract(math.Sin(p.Dot(hash3[1])) * hashScale),
		fract(math.Sin(p.Dot(hash3[2])) * hashScale),
	}
}

// falloff is the quintic 1 - 6d^5 + 15d^4 - 10d^3.
func falloff(d float64) float64 {
	d = math.Abs(d)
	d3 := d * d * d
	return 1 - 6*d3*d*d + 15*d3*d - 10*d3
}

// Surflet2D is the contribution of one lattice corner to 2D Perlin noise.
func Surflet2D(p, corner mgl64.Vec2, hash func(mgl64.Vec2) mgl64.Vec2) float64 {
	tx := falloff(p[0] - corner[0])
	ty := falloff(p[1] - corner[1])
	h := hash(corner)
	gradient := mgl64.Vec2{2*h[0] - 1, 2*h[1] - 1}
	return p.Sub(corner).Dot(gradient) * tx * ty
}

// Surflet3D is the contribution of one lattice corner to 3D Perlin noise.
func Surflet3D(p, corner mgl64.Vec3) float64 {
	tx := falloff(p[0] - corner[0])
	ty := falloff(p[1] - corner[1])
	tz := falloff(p[2] - corner[2])
	h := Hash3(corner)
	gradient := mgl64.Vec3{2*h[0] - 1, 2*h[1] - 1, 2*h[2] - 1}
	return p.Sub(corner).Dot(gradient) * tx * ty * tz
}

func perlin2D(p mgl64.Vec2, hash func(mgl64.Vec2) mgl64.Vec2) float64 {
	base := mgl64.Vec2{math.Floor(p[0]), math.Floor(p[1])}
	sum := 0.0
	for dx := 0.0; dx <= 1; dx++ {
		for dy := 0.0; dy <= 1; dy++ {
			sum += Surflet2D(p, base.Add(mgl64.Vec2{dx, dy}), hash)
		}
	}
	return sum
}

// Perlin2D samples gradient noise built from Hash2.
func Perlin2D(p mgl64.Vec2) float64 {
	return perlin2D(p, Hash2)
}

// Perlin2DAlt samples gradient noise built from Hash2Alt.
func Perlin2DAlt(p mgl64.Vec2) float64 {
	return perlin2D(p, Hash2Alt)
}

// Perlin3D samples 3D gradient noise over the eight surrounding corners.
func Perlin3D(p mgl64.Vec3) float64 {
	base := mgl64.Vec3{math.Floor(p[0]), math.Floor(p[1]), math.Floor(p[2])}
	sum := 0.0
	for dx := 0.0; dx <= 1; dx++ {
		for dy := 0.0; dy <= 1; dy++ {
			for dz := 0.0; dz <= 1; dz++ {
				sum += Surflet3D(p, base.Add(mgl64.Vec3{dx, dy, dz}))
			}
		}
	}
	return sum
}

// ValueNoise1D returns a pseudo-random value in [0,1) for an integer lattice point.
func ValueNoise1D(x int) float64 {
	return fract(math.Sin(float64(x)*127.1) * hashScale)
}

// InterpValueNoise1D linearly interpolates value noise between the
// surrounding integer samples.
func InterpValueNoise1D(x float64) float64 {
	ix := math.Floor(x)
	t := x - ix
	v1 := ValueNoise1D(int(ix))
	v2 := ValueNoise1D(int(ix) + 1)
	return v1 + t*(v2-v1)
}

// FBMParams tunes fractal Brownian motion.
type FBMParams struct {
	Persistence float64 `json:"persistence" yaml:"persistence"`
	Octaves     int     `json:"octaves" yaml:"octaves"`
	Frequency   float64 `json:"frequency" yaml:"frequency"`
	Amplitude   float64 `json:"amplitude" yaml:"amplitude"`
}

// DefaultFBM is the stock tuning.
var DefaultFBM = FBMParams{Persistence: 0.5, Octaves: 5, Frequency: 2.0, Amplitude: 0.5}

// FBM sums octaves of interpolated value noise, doubling the frequency and
// scaling the amplitude by the persistence each octave.
func FBM(x float64, params FBMParams) float64 {
	total := 0.0
	freq := params.Frequency
	amp := params.Amplitude
	for i := 0; i < params.Octaves; i++ {
		total += InterpValueNoise1D(x*freq) * amp
		freq *= 2
		amp *= params.Persistence
	}
	return total
}

// WorleyDistance scales p by cellScale and returns the distance to the
// nearest jittered feature point among the 3×3 surrounding cells.
func WorleyDistance(p mgl64.Vec2, cellScale float64) float64 {
	p = p.Mul(cellScale)
	cell := mgl64.Vec2{math.Floor(p[0]), math.Floor(p[1])}
	local := p.Sub(cell)

	minDist := math.MaxFloat64
	for y := -1.0; y <= 1; y++ {
		for x := -1.0; x <= 1; x++ {
			neighbor := mgl64.Vec2{x, y}
			point := Hash2(cell.Add(neighbor))
			dist := neighbor.Add(point).Sub(local).Len()
			if dist < minDist {
				minDist = dist
			}
		}
	}
	return minDist
}

// Smoothstep is the cubic Hermite step between edge0 and edge1.
func Smoothstep(edge0, edge1, x float64) float64 {
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

// Mix linearly interpolates from a to b.
func Mix(a, b, t float64) float64 {
	return a + t*(b-a)
}
