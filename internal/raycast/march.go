// Package raycast walks rays through the block grid for edit targeting.
package raycast

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"voxelterrain/internal/block"
)

// ErrDegenerateRayMarch means no axis produced a finite step. A finite,
// non-zero direction never triggers it.
var ErrDegenerateRayMarch = errors.New("raycast: no axis produced a step")

// Querier resolves world blocks.
type Querier interface {
	Block(x, y, z int) (block.Type, error)
}

// Hit is the first non-Empty cell along a ray.
type Hit struct {
	Cell     [3]int
	Previous [3]int // last Empty cell before Cell
	Block    block.Type
	Distance float32
}

func floorCell(p mgl32.Vec3) [3]int {
	return [3]int{
		int(math.Floor(float64(p[0]))),
		int(math.Floor(float64(p[1]))),
		int(math.Floor(float64(p[2]))),
	}
}

// March steps cell by cell from origin along dir for at most len(dir)
// units and reports the first cell that is not Empty. The origin cell
// itself is never reported. Lookup errors end the march and are returned.
func March(origin, dir mgl32.Vec3, q Querier) (Hit, bool, error) {
	maxLen := dir.Len()
	if maxLen == 0 {
		return Hit{}, false, nil
	}
	dir = dir.Normalize()

	pos := origin
	cell := floorCell(origin)
	for i := 0; i < 3; i++ {
		// A ray starting on a face and heading back across it starts in
		// the cell behind that face.
		if dir[i] < 0 && float32(cell[i]) == pos[i] {
			cell[i]--
		}
	}
	var t float32
	for t < maxLen {
		minT := float32(math.MaxFloat32)
		axis := -1
		var target float32
		for i := 0; i < 3; i++ {
			if dir[i] == 0 {
				continue
			}
			var offset float32
			if dir[i] > 0 {
				offset = 1
			}
			intercept := float32(cell[i]) + offset
			if axisT := (intercept - pos[i]) / dir[i]; axisT < minT {
				minT = axisT
				axis = i
				target = intercept
			}
		}
		if axis == -1 {
			return Hit{}, false, fmt.Errorf("march from %v along %v: %w", origin, dir, ErrDegenerateRayMarch)
		}
		// The next boundary lies past the end of the ray.
		if minT > maxLen-t {
			break
		}

		t += minT
		pos = pos.Add(dir.Mul(minT))
		pos[axis] = target
		prev := cell
		cell = floorCell(pos)
		if dir[axis] < 0 {
			cell[axis]--
		}

		b, err := q.Block(cell[0], cell[1], cell[2])
		if err != nil {
			return Hit{}, false, err
		}
		if b != block.Empty {
			return Hit{Cell: cell, Previous: prev, Block: b, Distance: t}, true, nil
		}
	}
	return Hit{}, false, nil
}
