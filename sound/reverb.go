package sound

import (
	"sync"
	"time"

	"github.com/echoray-dev/echoray/eerror"
	"github.com/echoray-dev/echoray/vmath"
	"github.com/echoray-dev/echoray/voxel"
	"github.com/echoray-dev/echoray/world"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/getsentry/sentry-go"
	"github.com/go-gl/mathgl/mgl32"
)

// goldenAngle spaces successive ray yaws so that no two rays of a sweep share
// a vertical plane.
const goldenAngle = 137.50776

// ReverbConfig tunes a ReverbTracer.
type ReverbConfig struct {
	// Rays is the number of rays cast from the source.
	Rays int
	// Bounces is the number of surfaces each ray may reflect off before it
	// is abandoned.
	Bounces int
	// MaxDistance is how far a ray segment may travel before it is
	// considered to have escaped the scene.
	MaxDistance float32
}

func (c ReverbConfig) validate() error {
	if c.Rays <= 0 {
		return eerror.New("reverb: ray count must be positive, got %d", c.Rays)
	}
	if c.Bounces <= 0 {
		return eerror.New("reverb: bounce count must be positive, got %d", c.Bounces)
	}
	if c.MaxDistance <= 0 {
		return eerror.New("reverb: max distance must be positive, got %v", c.MaxDistance)
	}
	return nil
}

// ReverbStats summarises the bounce tracing of one source position in one
// scene.
type ReverbStats struct {
	// Rays is the number of rays cast.
	Rays int
	// Surfaces is the total number of surface reflections across all rays.
	Surfaces int
	// Escaped is the number of ray segments that left the scene without
	// hitting a surface.
	Escaped int
	// MeanFreePath is the average distance to the first surface, over rays
	// that hit one.
	MeanFreePath float32
	// Energy is the average fraction of energy remaining per ray after all
	// reflections.
	Energy float64
}

type cacheKey struct {
	scene  uint64
	source [3]float32
}

// ReverbTracer casts bounce rays from a sound source to estimate the
// reverberant response of a scene. Results are cached per scene fingerprint
// and source position, so repeated queries in an unchanged scene are free.
type ReverbTracer struct {
	cfg       ReverbConfig
	materials *Materials

	mu    sync.Mutex
	cache map[cacheKey]ReverbStats
}

// NewReverbTracer returns a tracer using the config and material table
// passed. It returns an error if the config is invalid.
func NewReverbTracer(cfg ReverbConfig, m *Materials) (*ReverbTracer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if m == nil {
		m = DefaultMaterials()
	}
	return &ReverbTracer{
		cfg:       cfg,
		materials: m,
		cache:     make(map[cacheKey]ReverbStats),
	}, nil
}

// Trace estimates the reverb stats for a source inside the grid passed,
// reusing a cached result when the scene has not changed since the last query
// for the same source.
func (t *ReverbTracer) Trace(source mgl32.Vec3, g *world.Grid) ReverbStats {
	key := cacheKey{scene: g.Fingerprint(), source: source}

	t.mu.Lock()
	if stats, ok := t.cache[key]; ok {
		t.mu.Unlock()
		return stats
	}
	t.mu.Unlock()

	stats := t.TraceScene(source, g)

	t.mu.Lock()
	t.cache[key] = stats
	t.mu.Unlock()
	return stats
}

// TraceScene runs the bounce tracing against an arbitrary grid source,
// bypassing the cache. A panicking grid source degrades to neutral stats
// after being reported.
func (t *ReverbTracer) TraceScene(source mgl32.Vec3, src voxel.GridSource) (stats ReverbStats) {
	defer func() {
		if err := recover(); err != nil {
			hub := sentry.CurrentHub().Clone()
			hub.Recover(err)
			hub.Flush(time.Second * 5)
			stats = ReverbStats{Rays: t.cfg.Rays}
		}
	}()

	stats.Rays = t.cfg.Rays

	var freePath float32
	hitRays := 0
	for i := 0; i < t.cfg.Rays; i++ {
		yaw := float32(i) * goldenAngle
		pitch := -90 + 180*(float32(i)+0.5)/float32(t.cfg.Rays)

		origin := source
		dir := vmath.DirectionVector(yaw, pitch)
		energy := 1.0

		var exclude *cube.Pos
		for bounce := 0; bounce < t.cfg.Bounces; bounce++ {
			hit, ok := voxel.FindFirstBlock(origin, dir, t.cfg.MaxDistance, src, Solid, exclude)
			if !ok {
				stats.Escaped++
				break
			}
			if bounce == 0 {
				freePath += hit.Distance
				hitRays++
			}

			stats.Surfaces++
			energy *= 1 - t.materials.Coefficient(hit.Block)

			origin = hit.Position
			dir = vmath.Reflect(dir, hit.Normal)
			cell := hit.Cell
			exclude = &cell
		}

		stats.Energy += energy
	}

	if hitRays > 0 {
		stats.MeanFreePath = freePath / float32(hitRays)
	}
	if stats.Rays > 0 {
		stats.Energy /= float64(stats.Rays)
	}
	return stats
}
