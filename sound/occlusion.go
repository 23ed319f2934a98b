package sound

import (
	"time"

	"github.com/df-mc/dragonfly/server/world"
	"github.com/echoray-dev/echoray/voxel"
	"github.com/getsentry/sentry-go"
	"github.com/go-gl/mathgl/mgl32"
)

// Solid reports whether a block obstructs sound. It is the blocking predicate
// handed to the traversal engine by every tracer in this package.
func Solid(b world.Block) bool {
	return !voxel.Empty(b)
}

// Occlusion returns the fraction of sound energy, in [0,1], absorbed by the
// blocks between the listener and the source. 0 means an unobstructed path,
// 1 means the source is fully muffled. Traversal stops as soon as full
// occlusion is reached.
//
// A panicking grid source or material table degrades to 0 (unoccluded) after
// being reported, so a bad collaborator can never take playback down with it.
func Occlusion(listener, source mgl32.Vec3, src voxel.GridSource, m *Materials) (occ float64) {
	defer func() {
		if err := recover(); err != nil {
			hub := sentry.CurrentHub().Clone()
			hub.Recover(err)
			hub.Flush(time.Second * 5)
			occ = 0
		}
	}()

	total := 0.0
	voxel.TraverseSegment(listener, source, src, func(ctx *voxel.Context) bool {
		total += m.Coefficient(ctx.Block())
		return total < 1
	}, true)

	if total > 1 {
		total = 1
	}
	return total
}

// LineOfSight reports whether the segment between the two points passed is
// free of solid blocks.
func LineOfSight(a, b mgl32.Vec3, src voxel.GridSource) bool {
	return voxel.HasClearPath(a, b, src, Solid)
}
