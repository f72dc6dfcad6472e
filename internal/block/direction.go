package block

// Direction names the six axis-aligned faces of a cell.
type Direction uint8

const (
	XPos Direction = iota
	XNeg
	YPos
	YNeg
	ZPos
	ZNeg
)

// Directions lists every face direction in table order.
var Directions = [6]Direction{XPos, XNeg, YPos, YNeg, ZPos, ZNeg}

var directionOffsets = [6][3]int{
	XPos: {1, 0, 0},
	XNeg: {-1, 0, 0},
	YPos: {0, 1, 0},
	YNeg: {0, -1, 0},
	ZPos: {0, 0, 1},
	ZNeg: {0, 0, -1},
}

// Opposite returns the direction facing back.
func (d Direction) Opposite() Direction {
	return d ^ 1
}

// Offset returns the unit step along d.
func (d Direction) Offset() (dx, dy, dz int) {
	o := directionOffsets[d]
	return o[0], o[1], o[2]
}

// Lateral reports whether d lies in the XZ plane.
func (d Direction) Lateral() bool {
	return d != YPos && d != YNeg
}

func (d Direction) String() string {
	switch d {
	case XPos:
		return "+x"
	case XNeg:
		return "-x"
	case YPos:
		return "+y"
	case YNeg:
		return "-y"
	case ZPos:
		return "+z"
	case ZNeg:
		return "-z"
	}
	return "?"
}
