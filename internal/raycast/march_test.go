package raycast

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"voxelterrain/internal/block"
)

type funcQuerier func(x, y, z int) (block.Type, error)

func (f funcQuerier) Block(x, y, z int) (block.Type, error) {
	return f(x, y, z)
}

func floorAt(level int) funcQuerier {
	return func(x, y, z int) (block.Type, error) {
		if y <= level {
			return block.Stone, nil
		}
		return block.Empty, nil
	}
}

func TestMarchHitsFloorBelow(t *testing.T) {
	hit, ok, err := March(mgl32.Vec3{0.5, 10.5, 0.5}, mgl32.Vec3{0, -3, 0}, floorAt(8))
	if err != nil {
		t.Fatalf("march: %v", err)
	}
	if !ok {
		t.Fatalf("expected a hit")
	}
	if hit.Cell != [3]int{0, 8, 0} || hit.Previous != [3]int{0, 9, 0} {
		t.Fatalf("unexpected hit %+v", hit)
	}
	if hit.Block != block.Stone {
		t.Fatalf("expected stone, got %s", hit.Block)
	}
	if math.Abs(float64(hit.Distance-1.5)) > 1e-5 {
		t.Fatalf("distance = %f, want 1.5", hit.Distance)
	}
}

func TestMarchMissesBeyondReach(t *testing.T) {
	_, ok, err := March(mgl32.Vec3{0.5, 10.5, 0.5}, mgl32.Vec3{0, -3, 0}, floorAt(4))
	if err != nil {
		t.Fatalf("march: %v", err)
	}
	if ok {
		t.Fatalf("expected no hit within reach")
	}
}

func TestMarchNegativeCoordinates(t *testing.T) {
	wall := funcQuerier(func(x, y, z int) (block.Type, error) {
		if x <= -2 {
			return block.Water, nil
		}
		return block.Empty, nil
	})
	hit, ok, err := March(mgl32.Vec3{-0.5, 5.5, -0.5}, mgl32.Vec3{-3, 0, 0}, wall)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if hit.Cell != [3]int{-2, 5, -1} || hit.Previous != [3]int{-1, 5, -1} {
		t.Fatalf("unexpected hit %+v", hit)
	}
}

func TestMarchDiagonalVisitsAdjacentCells(t *testing.T) {
	var visited [][3]int
	q := funcQuerier(func(x, y, z int) (block.Type, error) {
		visited = append(visited, [3]int{x, y, z})
		return block.Empty, nil
	})
	_, ok, err := March(mgl32.Vec3{0.2, 0.5, 0.7}, mgl32.Vec3{2, 0, 2}, q)
	if err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}
	prev := [3]int{0, 0, 0}
	for _, c := range visited {
		steps := 0
		for i := 0; i < 3; i++ {
			d := c[i] - prev[i]
			if d < -1 || d > 1 {
				t.Fatalf("jumped from %v to %v", prev, c)
			}
			if d != 0 {
				steps++
			}
		}
		if steps != 1 {
			t.Fatalf("expected one axis per step, %v -> %v", prev, c)
		}
		prev = c
	}
}

func TestMarchZeroDirection(t *testing.T) {
	_, ok, err := March(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{}, floorAt(100))
	if ok || err != nil {
		t.Fatalf("zero-length ray should miss quietly, got ok=%v err=%v", ok, err)
	}
}

func TestMarchDegenerateDirection(t *testing.T) {
	inf := float32(math.Inf(1))
	_, _, err := March(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{inf, 0, 0}, floorAt(-1))
	if !errors.Is(err, ErrDegenerateRayMarch) {
		t.Fatalf("expected ErrDegenerateRayMarch, got %v", err)
	}
}

func TestMarchPropagatesLookupErrors(t *testing.T) {
	missing := errors.New("missing chunk")
	q := funcQuerier(func(x, y, z int) (block.Type, error) {
		return block.Undetermined, missing
	})
	if _, _, err := March(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, q); !errors.Is(err, missing) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}

func TestMarchFromFaceLookingBack(t *testing.T) {
	var visited [][3]int
	q := funcQuerier(func(x, y, z int) (block.Type, error) {
		visited = append(visited, [3]int{x, y, z})
		return block.Empty, nil
	})
	if _, _, err := March(mgl32.Vec3{0.5, 4, 0.5}, mgl32.Vec3{0, -2, 0}, q); err != nil {
		t.Fatalf("march: %v", err)
	}
	if len(visited) < 2 || visited[0] != [3]int{0, 2, 0} || visited[1] != [3]int{0, 1, 0} {
		t.Fatalf("expected march to start below the face, visited %v", visited)
	}
}

func TestMarchStopsAtReach(t *testing.T) {
	tests := []struct {
		name   string
		eyeY   float32
		wantOK bool
	}{
		{"face just beyond reach", 134.2, false},
		{"face just within reach", 133.9, true},
		{"face exactly at reach", 134, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok, err := March(mgl32.Vec3{8.5, tt.eyeY, 8.5}, mgl32.Vec3{0, -3, 0}, floorAt(130))
			if err != nil {
				t.Fatalf("march: %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("hit = %v (%+v), want %v", ok, hit, tt.wantOK)
			}
			if !ok {
				return
			}
			if hit.Cell != [3]int{8, 130, 8} {
				t.Fatalf("unexpected cell %v", hit.Cell)
			}
			if want := tt.eyeY - 131; math.Abs(float64(hit.Distance-want)) > 1e-4 {
				t.Fatalf("distance = %f, want %f", hit.Distance, want)
			}
		})
	}
}
