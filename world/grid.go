package world

import (
	"log/slog"

	"github.com/df-mc/dragonfly/server/block"
	df_cube "github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/echoray-dev/echoray/voxel"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/sasha-s/go-deadlock"
)

// Grid is a sparse voxel grid holding the blocks of one acoustic scene. Cells
// that were never set, and cells outside the vertical range, read as air. It
// satisfies voxel.GridSource and is safe for concurrent reads, which is all
// the traversal engine requires of it.
type Grid struct {
	blocks map[df_cube.Pos]world.Block
	rng    cube.Range

	logger *slog.Logger

	deadlock.RWMutex
}

// NewGrid returns an empty grid spanning the overworld vertical range.
func NewGrid(logger *slog.Logger) *Grid {
	return &Grid{
		blocks: make(map[df_cube.Pos]world.Block),
		rng:    cube.Range(world.Overworld.Range()),
		logger: logger,
	}
}

// Block returns the block at the position passed. Unset and out-of-range
// positions return air.
func (g *Grid) Block(pos df_cube.Pos) world.Block {
	if cube.Pos(pos).OutOfBounds(g.rng) {
		return block.Air{}
	}

	g.RLock()
	b, ok := g.blocks[pos]
	g.RUnlock()
	if !ok {
		return block.Air{}
	}
	return b
}

// SetBlock sets the block at the position passed. Setting air or nil clears
// the cell, keeping the grid sparse.
func (g *Grid) SetBlock(pos df_cube.Pos, b world.Block) {
	if cube.Pos(pos).OutOfBounds(g.rng) {
		return
	}

	g.Lock()
	if voxel.Empty(b) {
		delete(g.blocks, pos)
	} else {
		g.blocks[pos] = b
	}
	g.Unlock()
}

// Fill sets every cell of the axis-aligned box spanned by min and max
// (inclusive) to the block passed.
func (g *Grid) Fill(min, max df_cube.Pos, b world.Block) {
	for y := min.Y(); y <= max.Y(); y++ {
		for x := min.X(); x <= max.X(); x++ {
			for z := min.Z(); z <= max.Z(); z++ {
				g.SetBlock(df_cube.Pos{x, y, z}, b)
			}
		}
	}
	if g.logger != nil {
		g.logger.Debug("filled region", "min", min, "max", max, "cells", g.Len())
	}
}

// Len returns the number of non-air cells in the grid.
func (g *Grid) Len() int {
	g.RLock()
	defer g.RUnlock()
	return len(g.blocks)
}
