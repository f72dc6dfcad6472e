package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxelterrain/internal/block"
)

// uvCell is the width of one atlas cell in texture space.
const uvCell = 1.0 / 16.0

type faceVertex struct {
	pos mgl32.Vec4
	uv  mgl32.Vec2
}

type face struct {
	dir      block.Direction
	normal   mgl32.Vec4
	vertices [4]faceVertex
}

// faces is indexed by block.Direction. Corners are unit-cube local and
// wound counter-clockwise when viewed from outside.
var faces = [6]face{
	block.XPos: {block.XPos, mgl32.Vec4{1, 0, 0, 0}, [4]faceVertex{
		{mgl32.Vec4{1, 0, 1, 1}, mgl32.Vec2{0, 0}},
		{mgl32.Vec4{1, 0, 0, 1}, mgl32.Vec2{uvCell, 0}},
		{mgl32.Vec4{1, 1, 0, 1}, mgl32.Vec2{uvCell, uvCell}},
		{mgl32.Vec4{1, 1, 1, 1}, mgl32.Vec2{0, uvCell}},
	}},
	block.XNeg: {block.XNeg, mgl32.Vec4{-1, 0, 0, 0}, [4]faceVertex{
		{mgl32.Vec4{0, 0, 0, 1}, mgl32.Vec2{0, 0}},
		{mgl32.Vec4{0, 0, 1, 1}, mgl32.Vec2{uvCell, 0}},
		{mgl32.Vec4{0, 1, 1, 1}, mgl32.Vec2{uvCell, uvCell}},
		{mgl32.Vec4{0, 1, 0, 1}, mgl32.Vec2{0, uvCell}},
	}},
	block.YPos: {block.YPos, mgl32.Vec4{0, 1, 0, 0}, [4]faceVertex{
		{mgl32.Vec4{0, 1, 1, 1}, mgl32.Vec2{0, 0}},
		{mgl32.Vec4{1, 1, 1, 1}, mgl32.Vec2{uvCell, 0}},
		{mgl32.Vec4{1, 1, 0, 1}, mgl32.Vec2{uvCell, uvCell}},
		{mgl32.Vec4{0, 1, 0, 1}, mgl32.Vec2{0, uvCell}},
	}},
	block.YNeg: {block.YNeg, mgl32.Vec4{0, -1, 0, 0}, [4]faceVertex{
		{mgl32.Vec4{0, 0, 0, 1}, mgl32.Vec2{0, 0}},
		{mgl32.Vec4{1, 0, 0, 1}, mgl32.Vec2{uvCell, 0}},
		{mgl32.Vec4{1, 0, 1, 1}, mgl32.Vec2{uvCell, uvCell}},
		{mgl32.Vec4{0, 0, 1, 1}, mgl32.Vec2{0, uvCell}},
	}},
	block.ZPos: {block.ZPos, mgl32.Vec4{0, 0, 1, 0}, [4]faceVertex{
		{mgl32.Vec4{0, 0, 1, 1}, mgl32.Vec2{0, 0}},
		{mgl32.Vec4{1, 0, 1, 1}, mgl32.Vec2{uvCell, 0}},
		{mgl32.Vec4{1, 1, 1, 1}, mgl32.Vec2{uvCell, uvCell}},
		{mgl32.Vec4{0, 1, 1, 1}, mgl32.Vec2{0, uvCell}},
	}},
	block.ZNeg: {block.ZNeg, mgl32.Vec4{0, 0, -1, 0}, [4]faceVertex{
		{mgl32.Vec4{1, 0, 0, 1}, mgl32.Vec2{0, 0}},
		{mgl32.Vec4{0, 0, 0, 1}, mgl32.Vec2{uvCell, 0}},
		{mgl32.Vec4{0, 1, 0, 1}, mgl32.Vec2{uvCell, uvCell}},
		{mgl32.Vec4{1, 1, 0, 1}, mgl32.Vec2{0, uvCell}},
	}},
}

// quadIndices is the two-triangle winding shared by every face.
var quadIndices = [6]uint32{0, 1, 2, 0, 2, 3}
