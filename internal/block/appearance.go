package block

// AtlasCell addresses one 16×16 tile of the texture atlas by column and row.
type AtlasCell struct {
	Col, Row float32
}

// Appearance captures how a block type is textured and previewed.
type Appearance struct {
	Side   AtlasCell
	Top    AtlasCell
	Bottom AtlasCell
	// Color is used for flat previews, as #rrggbb.
	Color string
}

var debugCell = AtlasCell{Col: 10, Row: 3}

func uniform(cell AtlasCell, color string) Appearance {
	return Appearance{Side: cell, Top: cell, Bottom: cell, Color: color}
}

// Appearances holds the built-in look of every block type. Types without an
// entry fall back to the debug tile.
var Appearances = map[Type]Appearance{
	Grass: {
		Side:   AtlasCell{Col: 3, Row: 15},
		Top:    AtlasCell{Col: 8, Row: 13},
		Bottom: AtlasCell{Col: 2, Row: 15},
		Color:  "#5d9b3d",
	},
	Dirt:      uniform(AtlasCell{Col: 2, Row: 15}, "#8b5a2b"),
	Stone:     uniform(AtlasCell{Col: 1, Row: 15}, "#7f7f7f"),
	Water:     uniform(AtlasCell{Col: 13, Row: 3}, "#2f5fd0"),
	Snow:      uniform(AtlasCell{Col: 2, Row: 11}, "#f0f4f8"),
	Lava:      uniform(AtlasCell{Col: 13, Row: 1}, "#e0571b"),
	Bedrock:   uniform(AtlasCell{Col: 1, Row: 14}, "#2b2b2b"),
	Sand:      uniform(AtlasCell{Col: 2, Row: 14}, "#dbcf8e"),
	MossStone: uniform(AtlasCell{Col: 4, Row: 13}, "#5f7a5a"),
}

// AtlasOffset returns the atlas tile used for the face of t pointing along d.
func AtlasOffset(t Type, d Direction) AtlasCell {
	a, ok := Appearances[t]
	if !ok {
		return debugCell
	}
	switch d {
	case YPos:
		return a.Top
	case YNeg:
		return a.Bottom
	default:
		return a.Side
	}
}
