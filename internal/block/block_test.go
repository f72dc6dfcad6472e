package block

import "testing"

func TestLiquidClassification(t *testing.T) {
	tests := []struct {
		typ    Type
		liquid bool
	}{
		{Empty, false},
		{Undetermined, false},
		{Water, true},
		{Lava, true},
		{Stone, false},
		{Grass, false},
		{MossStone, false},
	}
	for _, tt := range tests {
		if got := tt.typ.IsLiquid(); got != tt.liquid {
			t.Fatalf("%s IsLiquid = %v, want %v", tt.typ, got, tt.liquid)
		}
	}
}

func TestTypeString(t *testing.T) {
	if got := MossStone.String(); got != "moss_stone" {
		t.Fatalf("MossStone.String() = %q", got)
	}
	if got := Type(200).String(); got != "unknown" {
		t.Fatalf("out-of-range type = %q", got)
	}
}

func TestDirectionOpposite(t *testing.T) {
	for _, d := range Directions {
		o := d.Opposite()
		if o.Opposite() != d {
			t.Fatalf("opposite of opposite of %s = %s", d, o.Opposite())
		}
		dx, dy, dz := d.Offset()
		ox, oy, oz := o.Offset()
		if dx+ox != 0 || dy+oy != 0 || dz+oz != 0 {
			t.Fatalf("%s and %s offsets do not cancel", d, o)
		}
	}
}

func TestAtlasOffsetGrassFaces(t *testing.T) {
	if got := AtlasOffset(Grass, YPos); got != (AtlasCell{Col: 8, Row: 13}) {
		t.Fatalf("grass top = %+v", got)
	}
	if got := AtlasOffset(Grass, YNeg); got != AtlasOffset(Dirt, XPos) {
		t.Fatalf("grass bottom should match dirt, got %+v", got)
	}
	if got := AtlasOffset(Undetermined, XPos); got != debugCell {
		t.Fatalf("undetermined should use debug tile, got %+v", got)
	}
}
