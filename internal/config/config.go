package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"voxelterrain/internal/noise"
)

// Duration is a JSON- and YAML-friendly wrapper around time.Duration that
// accepts human readable strings such as "150ms" in configuration files while
// still allowing numeric representations when necessary.
type Duration time.Duration

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// MarshalJSON encodes the duration using the canonical string representation.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON decodes a duration from either a string (e.g. "250ms") or a
// numeric value representing nanoseconds. Empty strings and null values decode
// to zero.
func (d *Duration) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("duration: empty value")
	}
	if string(b) == "null" {
		*d = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("duration: decode string: %w", err)
		}
		return d.parse(s)
	}
	var n int64
	if err := json.Unmarshal(b, &n); err == nil {
		*d = Duration(time.Duration(n))
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*d = Duration(time.Duration(f))
		return nil
	}
	return fmt.Errorf("duration: invalid value %s", string(b))
}

// MarshalYAML encodes the duration as its canonical string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML accepts the same forms as UnmarshalJSON.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("duration: expected scalar, line %d", value.Line)
	}
	switch value.ShortTag() {
	case "!!int":
		var n int64
		if err := value.Decode(&n); err != nil {
			return fmt.Errorf("duration: decode integer: %w", err)
		}
		*d = Duration(time.Duration(n))
		return nil
	case "!!null":
		*d = 0
		return nil
	}
	return d.parse(value.Value)
}

func (d *Duration) parse(s string) error {
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration: parse %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config captures the tunable parameters of the terrain streaming engine.
type Config struct {
	Terrain  TerrainConfig  `json:"terrain" yaml:"terrain"`
	Stream   StreamConfig   `json:"stream" yaml:"stream"`
	Log      LogConfig      `json:"log" yaml:"log"`
	Preview  PreviewConfig  `json:"preview" yaml:"preview"`
	Observer ObserverConfig `json:"observer" yaml:"observer"`
}

// TerrainConfig tunes the height fields, biome blend, and cave band.
type TerrainConfig struct {
	FeatureScale         float64         `json:"featureScale" yaml:"featureScale"` // world units per noise unit for height fields
	BiomeScale           float64         `json:"biomeScale" yaml:"biomeScale"`     // world units per noise unit for humidity/temperature
	MountainFBM          noise.FBMParams `json:"mountainFbm" yaml:"mountainFbm"`
	CanyonFBM            noise.FBMParams `json:"canyonFbm" yaml:"canyonFbm"`
	GrasslandWorleyScale float64         `json:"grasslandWorleyScale" yaml:"grasslandWorleyScale"`
	DesertWorleyScale    float64         `json:"desertWorleyScale" yaml:"desertWorleyScale"`
	SeaLevel             int             `json:"seaLevel" yaml:"seaLevel"`
	SnowLine             int             `json:"snowLine" yaml:"snowLine"`
	Caves                CaveConfig      `json:"caves" yaml:"caves"`
}

// CaveConfig describes the carved band between Floor and Top.
type CaveConfig struct {
	Enabled   bool    `json:"enabled" yaml:"enabled"`
	Floor     int     `json:"floor" yaml:"floor"` // bedrock layer
	Top       int     `json:"top" yaml:"top"`
	LavaLevel int     `json:"lavaLevel" yaml:"lavaLevel"` // open cells below this fill with lava
	Scale     float64 `json:"scale" yaml:"scale"`
}

type StreamConfig struct {
	Workers           int      `json:"workers" yaml:"workers"` // 0 uses GOMAXPROCS
	ZoneRadius        int      `json:"zoneRadius" yaml:"zoneRadius"`
	ExpansionInterval Duration `json:"expansionInterval" yaml:"expansionInterval"` // e.g. "5s"
	TickRate          Duration `json:"tickRate" yaml:"tickRate"`                   // e.g. "16ms"
	MaxDrainPerTick   int      `json:"maxDrainPerTick" yaml:"maxDrainPerTick"`     // 0 drains everything
	EditReach         float32  `json:"editReach" yaml:"editReach"`
	DrawRadius        int      `json:"drawRadius" yaml:"drawRadius"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // text or json
}

type PreviewConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	OutputDir  string `json:"outputDir" yaml:"outputDir"`
	HalfExtent int    `json:"halfExtent" yaml:"halfExtent"`
}

// ObserverConfig drives the scripted observer of the headless binary.
type ObserverConfig struct {
	Start    mgl32.Vec3 `json:"start" yaml:"start"`
	Velocity mgl32.Vec3 `json:"velocity" yaml:"velocity"` // blocks per second
	Duration Duration   `json:"duration" yaml:"duration"` // zero runs until interrupted
}

// Load reads configuration from a YAML (.yaml, .yml) or JSON file. An empty
// path returns defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			FeatureScale:         64,
			BiomeScale:           300,
			MountainFBM:          noise.FBMParams{Persistence: 0.5, Octaves: 8, Frequency: 2.0, Amplitude: 0.5},
			CanyonFBM:            noise.FBMParams{Persistence: 0.3, Octaves: 10, Frequency: 4.0, Amplitude: 0.5},
			GrasslandWorleyScale: 0.3,
			DesertWorleyScale:    0.35,
			SeaLevel:             138,
			SnowLine:             200,
			Caves: CaveConfig{
				Enabled:   true,
				Floor:     107,
				Top:       128,
				LavaLevel: 113,
				Scale:     10,
			},
		},
		Stream: StreamConfig{
			Workers:           0,
			ZoneRadius:        2,
			ExpansionInterval: Duration(5 * time.Second),
			TickRate:          Duration(16 * time.Millisecond),
			MaxDrainPerTick:   0,
			EditReach:         3,
			DrawRadius:        160,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Preview: PreviewConfig{
			Enabled:    false,
			OutputDir:  "previews",
			HalfExtent: 160,
		},
		Observer: ObserverConfig{
			Start:    mgl32.Vec3{32, 200, 32},
			Velocity: mgl32.Vec3{8, 0, 0},
		},
	}
}

func (c *Config) Validate() error {
	t := c.Terrain
	if t.FeatureScale <= 0 || t.BiomeScale <= 0 {
		return errors.New("terrain feature and biome scales must be positive")
	}
	if t.MountainFBM.Octaves <= 0 {
		return errors.New("terrain.mountainFbm.octaves must be positive")
	}
	if t.CanyonFBM.Octaves <= 0 {
		return errors.New("terrain.canyonFbm.octaves must be positive")
	}
	if t.GrasslandWorleyScale <= 0 || t.DesertWorleyScale <= 0 {
		return errors.New("terrain worley scales must be positive")
	}
	if t.SeaLevel < 1 || t.SeaLevel > 255 {
		return errors.New("terrain.seaLevel must be within [1,255]")
	}
	if t.Caves.Enabled {
		if t.Caves.Floor < 0 || t.Caves.Top > 255 || t.Caves.Floor >= t.Caves.Top {
			return errors.New("terrain.caves.floor must be below terrain.caves.top within [0,255]")
		}
		if t.Caves.Scale <= 0 {
			return errors.New("terrain.caves.scale must be positive")
		}
	}
	if c.Stream.Workers < 0 {
		return errors.New("stream.workers cannot be negative")
	}
	if c.Stream.ZoneRadius <= 0 {
		return errors.New("stream.zoneRadius must be positive")
	}
	if c.Stream.ExpansionInterval < 0 {
		return errors.New("stream.expansionInterval cannot be negative")
	}
	if c.Stream.TickRate <= 0 {
		return errors.New("stream.tickRate must be positive")
	}
	if c.Stream.MaxDrainPerTick < 0 {
		return errors.New("stream.maxDrainPerTick cannot be negative")
	}
	if c.Stream.EditReach <= 0 {
		return errors.New("stream.editReach must be positive")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q must be one of debug, info, warn, error", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q must be text or json", c.Log.Format)
	}
	if c.Preview.Enabled {
		if c.Preview.OutputDir == "" {
			return errors.New("preview.outputDir must be set when preview is enabled")
		}
		if c.Preview.HalfExtent <= 0 {
			return errors.New("preview.halfExtent must be positive")
		}
	}
	if c.Observer.Duration < 0 {
		return errors.New("observer.duration cannot be negative")
	}
	return nil
}
