package voxel

import (
	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// Hit describes the first cell along a ray whose block matched a search
// predicate. Unlike the traversal context it is immutable and safe to retain
// indefinitely.
type Hit struct {
	// Block is the matched block as the grid source reported it.
	Block world.Block
	// Distance is the ray parameter at which the matched cell was entered.
	Distance float32
	// Position is the exact world-space entry point on the crossed face.
	Position mgl32.Vec3
	// Normal is the canonical unit normal of the crossed face.
	Normal mgl32.Vec3
	// Cell is the coordinate of the matched cell.
	Cell cube.Pos
}

// FindFirstBlock casts a ray from origin along dir up to maxDist and returns
// the first cell, in ray order, whose block satisfies match. The ray's own
// starting cell is never reported. Nil and air blocks never match, regardless
// of the predicate. If exclude is non-nil, the cell it points at is skipped
// regardless of the predicate; bounce rays use this to avoid immediately
// re-hitting the surface they reflected off.
//
// The second return value reports whether anything matched within range.
func FindFirstBlock(origin, dir mgl32.Vec3, maxDist float32, src GridSource, match func(world.Block) bool, exclude *cube.Pos) (Hit, bool) {
	var hit Hit
	found := TraverseRay(origin, dir, maxDist, src, func(ctx *Context) bool {
		if Empty(ctx.Block()) {
			return true
		}
		if exclude != nil && ctx.Pos() == *exclude {
			return true
		}
		if !match(ctx.Block()) {
			return true
		}
		hit = Hit{
			Block:    ctx.Block(),
			Distance: ctx.EntryParameter(),
			Position: ctx.Position(),
			Normal:   ctx.Normal(),
			Cell:     ctx.Pos(),
		}
		return false
	}, true)
	return hit, found
}

// HasClearPath reports whether the straight segment between from and to is
// free of any cell whose block satisfies blocking. Nil and air blocks never
// block. The segment's own starting cell is not considered.
func HasClearPath(from, to mgl32.Vec3, src GridSource, blocking func(world.Block) bool) bool {
	blocked := TraverseSegment(from, to, src, func(ctx *Context) bool {
		if Empty(ctx.Block()) {
			return true
		}
		return !blocking(ctx.Block())
	}, true)
	return !blocked
}

// Empty reports whether a grid source result represents empty space: either
// no block at all or air.
func Empty(b world.Block) bool {
	if b == nil {
		return true
	}
	_, air := b.(block.Air)
	return air
}
