package block

// Type enumerates the fixed block palette. It fits in one byte.
type Type uint8

const (
	Empty Type = iota
	Grass
	Dirt
	Stone
	Water
	Snow
	Lava
	Bedrock
	Sand
	MossStone
	// Undetermined is returned for cells that no loaded chunk covers. It is
	// distinct from Empty, which means loaded and vacant.
	Undetermined
)

var typeNames = [...]string{
	Empty:        "empty",
	Grass:        "grass",
	Dirt:         "dirt",
	Stone:        "stone",
	Water:        "water",
	Snow:         "snow",
	Lava:         "lava",
	Bedrock:      "bedrock",
	Sand:         "sand",
	MossStone:    "moss_stone",
	Undetermined: "undetermined",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// IsLiquid reports whether the block is drawn in the transparent pass.
func (t Type) IsLiquid() bool {
	return t == Water || t == Lava
}
