package main

import (
	"log/slog"
	"os"

	"github.com/df-mc/dragonfly/server/block"
	df_cube "github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"github.com/echoray-dev/echoray/sound"
	"github.com/echoray-dev/echoray/world"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// The following program builds a small stone room, places a listener and a
// sound source on opposite sides of a wall, and logs the occlusion,
// line-of-sight and reverb estimates for the pair.
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if os.Getenv("PPROF_ENABLED") != "" {
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
	}

	grid := buildRoom(slog.Default())
	logger.Infof("built room scene with %d cells (fingerprint %x)", grid.Len(), grid.Fingerprint())

	listener := mgl32.Vec3{2.5, 2.5, 8.5}
	source := mgl32.Vec3{17.5, 2.5, 8.5}

	materials := sound.DefaultMaterials()
	logger.Infof("line of sight: %v", sound.LineOfSight(listener, source, grid))
	logger.Infof("occlusion: %.2f", sound.Occlusion(listener, source, grid, materials))

	tracer, err := sound.NewReverbTracer(sound.ReverbConfig{
		Rays:        64,
		Bounces:     4,
		MaxDistance: 64,
	}, materials)
	if err != nil {
		logger.Fatalf("reverb tracer: %v", err)
	}

	stats := tracer.Trace(source, grid)
	logger.Infof("reverb: %d/%d segments escaped, mean free path %.2f, residual energy %.2f",
		stats.Escaped, stats.Rays, stats.MeanFreePath, stats.Energy)
}

// buildRoom returns a 20x6x18 stone room with a dividing wall between the
// listener and source positions, a glass pane in that wall, and a wool
// dampening panel on one side.
func buildRoom(logger *slog.Logger) *world.Grid {
	g := world.NewGrid(logger)

	// Shell.
	g.Fill(df_cube.Pos{0, 0, 0}, df_cube.Pos{19, 0, 17}, block.Stone{})
	g.Fill(df_cube.Pos{0, 5, 0}, df_cube.Pos{19, 5, 17}, block.Stone{})
	g.Fill(df_cube.Pos{0, 1, 0}, df_cube.Pos{0, 4, 17}, block.Stone{})
	g.Fill(df_cube.Pos{19, 1, 0}, df_cube.Pos{19, 4, 17}, block.Stone{})
	g.Fill(df_cube.Pos{1, 1, 0}, df_cube.Pos{18, 4, 0}, block.Stone{})
	g.Fill(df_cube.Pos{1, 1, 17}, df_cube.Pos{18, 4, 17}, block.Stone{})

	// Dividing wall with a glass pane at head height.
	g.Fill(df_cube.Pos{10, 1, 1}, df_cube.Pos{10, 4, 16}, block.Stone{})
	g.SetBlock(df_cube.Pos{10, 2, 8}, block.Glass{})

	// Dampening panel along the source-side wall.
	g.Fill(df_cube.Pos{18, 1, 1}, df_cube.Pos{18, 3, 16}, block.Wool{})

	return g
}
