package terrain

import "voxelterrain/internal/noise"

// Biome is one of the four terrain archetypes picked by the blend weights.
type Biome int

const (
	Mountain Biome = iota
	Grassland
	Desert
	Canyon
)

func (b Biome) String() string {
	switch b {
	case Mountain:
		return "mountain"
	case Grassland:
		return "grassland"
	case Desert:
		return "desert"
	case Canyon:
		return "canyon"
	default:
		return "unknown"
	}
}

// Classify maps humidity and temperature weights to a biome. A weight of
// 0.5 or more counts as high.
func Classify(humidityWeight, temperatureWeight float64) Biome {
	wet := humidityWeight >= 0.5
	hot := temperatureWeight >= 0.5
	switch {
	case wet && hot:
		return Canyon
	case hot:
		return Desert
	case wet:
		return Grassland
	default:
		return Mountain
	}
}

// Blend mixes the four height fields: mountain toward grassland and desert
// toward canyon by humidity, then the two results by temperature. Every
// stage is clamped to [1,254].
func Blend(mountain, grassland, desert, canyon, humidityWeight, temperatureWeight float64) float64 {
	cool := clamp(noise.Mix(mountain, grassland, humidityWeight), 1, 254)
	warm := clamp(noise.Mix(desert, canyon, humidityWeight), 1, 254)
	return clamp(noise.Mix(cool, warm, temperatureWeight), 1, 254)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
