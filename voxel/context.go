package voxel

import (
	"github.com/df-mc/dragonfly/server/world"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// faceNormals holds the six canonical axis-aligned unit normals, indexed by
// the face they belong to. Statically initialized so deriving a normal never
// allocates.
var faceNormals = [6]mgl32.Vec3{
	cube.FaceDown:  {0, -1, 0},
	cube.FaceUp:    {0, 1, 0},
	cube.FaceNorth: {0, 0, -1},
	cube.FaceSouth: {0, 0, 1},
	cube.FaceWest:  {-1, 0, 0},
	cube.FaceEast:  {1, 0, 0},
}

// stepFaces maps an axis and step sign to the face of the entered cell that
// the ray crossed. Indexed [axis][(sign+1)/2]: stepping +x enters a cell
// through its west face, stepping -y through its top face, and so on.
var stepFaces = [3][2]cube.Face{
	{cube.FaceEast, cube.FaceWest},
	{cube.FaceUp, cube.FaceDown},
	{cube.FaceSouth, cube.FaceNorth},
}

// Context is the per-step view handed to a Visitor. It is owned by the
// traversal loop and overwritten on every step: callers that need any of its
// values past the current invocation must copy them out (NewHit does this).
type Context struct {
	pos   cube.Pos
	block world.Block

	entry    cube.Face
	hasEntry bool
	param    float32

	origin, dir mgl32.Vec3
}

// Pos returns the coordinate of the cell currently being visited.
func (ctx *Context) Pos() cube.Pos {
	return ctx.pos
}

// Block returns the block occupying the visited cell, exactly as the grid
// source reported it. It may be nil or air; interpreting occupancy is the
// visitor's responsibility.
func (ctx *Context) Block() world.Block {
	return ctx.block
}

// EntryParameter returns the distance along the ray at which the visited cell
// was entered. It is non-decreasing over the visited sequence and 0 for the
// ray's starting cell.
func (ctx *Context) EntryParameter() float32 {
	return ctx.param
}

// Face returns the face of the visited cell through which the ray entered it.
// The second return value is false for the ray's starting cell, which has no
// entry face.
func (ctx *Context) Face() (cube.Face, bool) {
	return ctx.entry, ctx.hasEntry
}

// Position returns the exact world-space point at which the ray entered the
// visited cell. It lies on the crossed cell face, not on the grid.
func (ctx *Context) Position() mgl32.Vec3 {
	return ctx.origin.Add(ctx.dir.Mul(ctx.param))
}

// Normal returns the unit normal of the crossed cell face. Because the
// stepping loop advances exactly one axis per iteration the crossed face is
// always unambiguous, so this needs no position-based heuristic. The starting
// cell has no entry face and yields the up normal.
func (ctx *Context) Normal() mgl32.Vec3 {
	if !ctx.hasEntry {
		return faceNormals[cube.FaceUp]
	}
	return faceNormals[ctx.entry]
}
