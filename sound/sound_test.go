package sound

import (
	"testing"

	"github.com/df-mc/dragonfly/server/block"
	df_cube "github.com/df-mc/dragonfly/server/block/cube"
	dfworld "github.com/df-mc/dragonfly/server/world"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/echoray-dev/echoray/world"
)

type panicGrid struct{}

func (panicGrid) Block(df_cube.Pos) dfworld.Block {
	panic("grid source failure")
}

// closedRoom returns a hollow stone box spanning (0,0,0)..(9,9,9) with
// one-cell-thick walls.
func closedRoom() *world.Grid {
	g := world.NewGrid(nil)
	g.Fill(df_cube.Pos{0, 0, 0}, df_cube.Pos{9, 9, 9}, block.Stone{})
	g.Fill(df_cube.Pos{1, 1, 1}, df_cube.Pos{8, 8, 8}, block.Air{})
	return g
}

func TestOcclusionEmptyPath(t *testing.T) {
	g := world.NewGrid(nil)
	if occ := Occlusion(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{9.5, 0.5, 0.5}, g, DefaultMaterials()); occ != 0 {
		t.Fatalf("occlusion through empty space was %v, want 0", occ)
	}
}

func TestOcclusionMonotonic(t *testing.T) {
	listener, source := mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{9.5, 0.5, 0.5}
	m := DefaultMaterials()

	g := world.NewGrid(nil)
	g.SetBlock(df_cube.Pos{4, 0, 0}, block.Glass{})
	one := Occlusion(listener, source, g, m)
	if one <= 0 {
		t.Fatalf("a glass cell on the segment produced no occlusion")
	}

	g.SetBlock(df_cube.Pos{6, 0, 0}, block.Stone{})
	two := Occlusion(listener, source, g, m)
	if two <= one {
		t.Fatalf("adding a solid cell lowered occlusion from %v to %v", one, two)
	}
}

func TestOcclusionClamped(t *testing.T) {
	g := world.NewGrid(nil)
	g.Fill(df_cube.Pos{2, 0, 0}, df_cube.Pos{7, 0, 0}, wool())

	occ := Occlusion(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{9.5, 0.5, 0.5}, g, DefaultMaterials())
	if occ != 1 {
		t.Fatalf("occlusion through six wool cells was %v, want 1", occ)
	}
}

func TestOcclusionDegradesOnPanic(t *testing.T) {
	occ := Occlusion(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{9.5, 0.5, 0.5}, panicGrid{}, DefaultMaterials())
	if occ != 0 {
		t.Fatalf("a panicking grid source produced occlusion %v, want the neutral 0", occ)
	}
}

func TestLineOfSight(t *testing.T) {
	g := world.NewGrid(nil)
	a, b := mgl32.Vec3{1.5, 1.5, 1.5}, mgl32.Vec3{8.5, 1.5, 1.5}

	if !LineOfSight(a, b, g) {
		t.Fatalf("empty scene reported no line of sight")
	}
	g.SetBlock(df_cube.Pos{5, 1, 1}, block.Stone{})
	if LineOfSight(a, b, g) {
		t.Fatalf("a wall cell did not break line of sight")
	}
}

func TestReverbConfigValidation(t *testing.T) {
	for _, cfg := range []ReverbConfig{
		{Rays: 0, Bounces: 2, MaxDistance: 10},
		{Rays: 8, Bounces: 0, MaxDistance: 10},
		{Rays: 8, Bounces: 2, MaxDistance: 0},
	} {
		if _, err := NewReverbTracer(cfg, nil); err == nil {
			t.Fatalf("config %+v was accepted", cfg)
		}
	}
	if _, err := NewReverbTracer(ReverbConfig{Rays: 8, Bounces: 2, MaxDistance: 10}, nil); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestReverbClosedRoom(t *testing.T) {
	tracer, err := NewReverbTracer(ReverbConfig{Rays: 32, Bounces: 3, MaxDistance: 64}, DefaultMaterials())
	if err != nil {
		t.Fatalf("tracer: %v", err)
	}

	stats := tracer.Trace(mgl32.Vec3{4.5, 4.5, 4.5}, closedRoom())
	if stats.Escaped != 0 {
		t.Fatalf("%d segments escaped a closed room", stats.Escaped)
	}
	if stats.Surfaces != stats.Rays*3 {
		t.Fatalf("counted %d reflections, want %d", stats.Surfaces, stats.Rays*3)
	}
	if stats.MeanFreePath <= 0 || stats.MeanFreePath > 16 {
		t.Fatalf("mean free path %v is outside the room", stats.MeanFreePath)
	}
	if stats.Energy <= 0 || stats.Energy >= 1 {
		t.Fatalf("residual energy was %v, want something absorbed but not everything", stats.Energy)
	}
}

func TestReverbOpenSpace(t *testing.T) {
	tracer, err := NewReverbTracer(ReverbConfig{Rays: 16, Bounces: 2, MaxDistance: 32}, DefaultMaterials())
	if err != nil {
		t.Fatalf("tracer: %v", err)
	}

	stats := tracer.TraceScene(mgl32.Vec3{0.5, 0.5, 0.5}, world.NewGrid(nil))
	if stats.Surfaces != 0 {
		t.Fatalf("counted %d reflections in empty space", stats.Surfaces)
	}
	if stats.Escaped != stats.Rays {
		t.Fatalf("%d of %d rays escaped empty space, want all", stats.Escaped, stats.Rays)
	}
	if stats.Energy != 1 {
		t.Fatalf("residual energy was %v in empty space, want 1", stats.Energy)
	}
}

func TestReverbCached(t *testing.T) {
	tracer, err := NewReverbTracer(ReverbConfig{Rays: 8, Bounces: 2, MaxDistance: 64}, DefaultMaterials())
	if err != nil {
		t.Fatalf("tracer: %v", err)
	}

	g := closedRoom()
	source := mgl32.Vec3{4.5, 4.5, 4.5}
	first := tracer.Trace(source, g)
	second := tracer.Trace(source, g)
	if first != second {
		t.Fatalf("repeated query of an unchanged scene returned different stats")
	}
}

func TestReverbDegradesOnPanic(t *testing.T) {
	tracer, err := NewReverbTracer(ReverbConfig{Rays: 4, Bounces: 2, MaxDistance: 8}, DefaultMaterials())
	if err != nil {
		t.Fatalf("tracer: %v", err)
	}

	stats := tracer.TraceScene(mgl32.Vec3{0.5, 0.5, 0.5}, panicGrid{})
	if stats != (ReverbStats{Rays: 4}) {
		t.Fatalf("a panicking grid source produced stats %+v, want neutral", stats)
	}
}

func TestMaterialsCoefficient(t *testing.T) {
	m := DefaultMaterials()

	if c := m.Coefficient(block.Air{}); c != 0 {
		t.Fatalf("air absorbed %v, want 0", c)
	}
	if c := m.Coefficient(nil); c != 0 {
		t.Fatalf("a nil block absorbed %v, want 0", c)
	}
	if c := m.Coefficient(block.Stone{}); c != 0.15 {
		t.Fatalf("stone absorbed %v, want 0.15", c)
	}
	// Unknown solid blocks fall back to the generic coefficient.
	if c := m.Coefficient(block.Dirt{}); c != defaultAbsorption {
		t.Fatalf("dirt absorbed %v, want the default %v", c, defaultAbsorption)
	}
}

func TestMaterialsDeterministicOrder(t *testing.T) {
	a, b := DefaultMaterials(), DefaultMaterials()
	an, bn := a.Names(), b.Names()
	if len(an) == 0 || len(an) != len(bn) {
		t.Fatalf("material tables differ in size: %d vs %d", len(an), len(bn))
	}
	for i := range an {
		if an[i] != bn[i] {
			t.Fatalf("material order differs at %d: %q vs %q", i, an[i], bn[i])
		}
	}
}

func wool() dfworld.Block {
	return block.Wool{}
}
