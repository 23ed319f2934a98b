package world

import (
	"encoding/binary"
	"sort"

	df_cube "github.com/df-mc/dragonfly/server/block/cube"
	"github.com/zeebo/xxh3"
)

// Fingerprint returns a hash of the grid's contents. Two grids holding the
// same blocks at the same positions produce the same fingerprint, so callers
// can use it to invalidate anything they derived from a previous state of the
// scene.
func (g *Grid) Fingerprint() uint64 {
	g.RLock()
	cells := make([]df_cube.Pos, 0, len(g.blocks))
	for pos := range g.blocks {
		cells = append(cells, pos)
	}
	sort.Slice(cells, func(i, j int) bool {
		a, b := cells[i], cells[j]
		if a.X() != b.X() {
			return a.X() < b.X()
		}
		if a.Y() != b.Y() {
			return a.Y() < b.Y()
		}
		return a.Z() < b.Z()
	})

	h := xxh3.New()
	var buf [24]byte
	for _, pos := range cells {
		binary.LittleEndian.PutUint64(buf[0:], uint64(int64(pos.X())))
		binary.LittleEndian.PutUint64(buf[8:], uint64(int64(pos.Y())))
		binary.LittleEndian.PutUint64(buf[16:], uint64(int64(pos.Z())))
		_, _ = h.Write(buf[:])

		name, _ := g.blocks[pos].EncodeBlock()
		_, _ = h.WriteString(name)
	}
	g.RUnlock()

	return h.Sum64()
}
