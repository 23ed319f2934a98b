package voxel

import (
	"github.com/chewxy/math32"
	df_cube "github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// degenerateThreshold is the length below which a ray or segment is treated
// as a trivial no-op instead of being traversed.
const degenerateThreshold = 0.001

// GridSource is the read-only block lookup a traversal walks over. It is
// called once per visited cell and must tolerate repeated identical queries.
// A nil or air result is a valid answer meaning "empty space".
type GridSource interface {
	Block(pos df_cube.Pos) world.Block
}

// Visitor is invoked once per visited cell with the traversal context for
// that cell. Returning false stops the traversal immediately; returning true
// continues it. The context is reused between steps and must not be retained.
type Visitor func(ctx *Context) bool

// TraverseSegment walks every grid cell the straight segment between from and
// to passes through, in order, invoking v for each. If skipFirst is true the
// segment's own starting cell is not reported. It returns true if the visitor
// stopped the traversal early, and false otherwise.
//
// Segments shorter than 0.001 are degenerate: the visitor is never invoked
// and the call returns false.
func TraverseSegment(from, to mgl32.Vec3, src GridSource, v Visitor, skipFirst bool) bool {
	delta := to.Sub(from)
	dist := delta.Len()
	if dist < degenerateThreshold {
		return false
	}
	return traverse(from, delta.Mul(1/dist), cube.PosFromVec3(to), src, v, skipFirst)
}

// TraverseRay walks every grid cell the ray from origin along dir passes
// through up to maxDist, in order, invoking v for each. The direction is
// renormalized if its magnitude deviates from 1 by more than 1%. If skipFirst
// is true the ray's own starting cell is not reported. It returns true if the
// visitor stopped the traversal early, and false otherwise.
//
// Directions with magnitude below 0.001 are degenerate: the visitor is never
// invoked and the call returns false.
func TraverseRay(origin, dir mgl32.Vec3, maxDist float32, src GridSource, v Visitor, skipFirst bool) bool {
	length := dir.Len()
	if length < degenerateThreshold {
		return false
	}
	if math32.Abs(length-1) > 0.01 {
		dir = dir.Mul(1 / length)
	}
	end := origin.Add(dir.Mul(maxDist))
	return traverse(origin, dir, cube.PosFromVec3(end), src, v, skipFirst)
}

// traverse is the shared stepping loop. dir must be unit-length and endCell
// the cell containing the ray's endpoint. Advancing exactly one axis per
// iteration is what guarantees consecutive visited cells always share a face.
func traverse(origin, dir mgl32.Vec3, endCell cube.Pos, src GridSource, v Visitor, skipFirst bool) bool {
	current := cube.PosFromVec3(origin)

	step := [3]int{signOf(dir.X()), signOf(dir.Y()), signOf(dir.Z())}
	tMax := [3]float32{
		distanceToBoundary(origin.X(), dir.X()),
		distanceToBoundary(origin.Y(), dir.Y()),
		distanceToBoundary(origin.Z(), dir.Z()),
	}
	var tDelta [3]float32
	for axis := range 3 {
		if step[axis] == 0 {
			tDelta[axis] = math32.Inf(1)
		} else {
			tDelta[axis] = float32(step[axis]) / dir[axis]
		}
	}

	// Hard termination bound: the loop below advances one cell per
	// iteration, so a well-formed traversal can never take more than the
	// Manhattan distance between the start and end cell, plus slack for
	// boundary rounding.
	maxVisits := manhattan(current, endCell) + 2

	ctx := Context{origin: origin, dir: dir}
	for range maxVisits {
		if !skipFirst {
			ctx.pos = current
			ctx.block = src.Block(df_cube.Pos(current))
			if !v(&ctx) {
				return true
			}
		}
		skipFirst = false

		if current == endCell {
			return false
		}

		// Advance along the axis with the nearest boundary crossing.
		// On exact ties x is stepped before y and z, and y before z.
		var axis int
		if tMax[0] <= tMax[1] && tMax[0] <= tMax[2] {
			axis = 0
		} else if tMax[1] <= tMax[2] {
			axis = 1
		} else {
			axis = 2
		}

		current[axis] += step[axis]
		ctx.param = tMax[axis]
		ctx.entry = stepFaces[axis][(step[axis]+1)/2]
		ctx.hasEntry = true
		tMax[axis] += tDelta[axis]
	}
	return false
}

// distanceToBoundary returns the ray parameter at which a ray starting at
// coordinate s with direction component ds first crosses a cell boundary on
// that axis, or +Inf if it never does.
func distanceToBoundary(s, ds float32) float32 {
	if ds == 0 {
		return math32.Inf(1)
	}

	if ds < 0 {
		s = -s
		ds = -ds

		if math32.Floor(s) == s {
			return 0
		}
	}

	return (1 - (s - math32.Floor(s))) / ds
}

func signOf(v float32) int {
	if v < 0 {
		return -1
	} else if v > 0 {
		return 1
	}
	return 0
}

func manhattan(a, b cube.Pos) int {
	return absInt(b[0]-a[0]) + absInt(b[1]-a[1]) + absInt(b[2]-a[2])
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
