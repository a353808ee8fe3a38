package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/annel0/isotiles/internal/agent"
	"github.com/annel0/isotiles/internal/config"
	"github.com/annel0/isotiles/internal/eventbus"
	"github.com/annel0/isotiles/internal/iso"
	"github.com/annel0/isotiles/internal/logging"
	"github.com/annel0/isotiles/internal/metrics"
	"github.com/annel0/isotiles/internal/observability"
	"github.com/annel0/isotiles/internal/render"
	"github.com/annel0/isotiles/internal/scene"
	"github.com/annel0/isotiles/internal/view"
	"github.com/annel0/isotiles/internal/world"
)

// FromConfig собирает мир по конфигурации: сетка, сцена, камера, проектор и агент.
// bus и fm могут быть nil.
func FromConfig(cfg *config.Config, atlas render.Atlas, bus eventbus.EventBus, fm *metrics.FrameMetrics) (*Session, error) {
	grid, err := world.NewGrid(cfg.World.Width, cfg.World.Height, cfg.World.Levels)
	if err != nil {
		return nil, fmt.Errorf("create world: %w", err)
	}

	seed := cfg.Scene.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	_, span := observability.StartSpan(context.Background(), "scene.build",
		attribute.String("scene", cfg.Scene.Name), attribute.Int64("seed", seed))
	start := time.Now()
	res, err := scene.Build(cfg.Scene.Name, grid, rng, scene.Options{
		Trees:        cfg.Scene.Trees,
		BurningTrees: cfg.Scene.BurningTrees,
		Seed:         seed,
	})
	span.End()
	if err != nil {
		return nil, fmt.Errorf("build scene %q: %w", cfg.Scene.Name, err)
	}
	logging.Info("initWorld: сцена %q за %v (seed=%d)", cfg.Scene.Name, time.Since(start), seed)

	var w *agent.Wanderer
	if res.HasAgent {
		// агент уже стоит на сетке, сцена возвращает только позицию
		w = &agent.Wanderer{Pos: res.Agent, ID: scene.InvaderID}
	}

	proj := iso.FromSprite(cfg.Screen.Width, cfg.Tiles.TotalWidth, cfg.Tiles.TotalHeight, cfg.Tiles.VisibleHeight, cfg.Tiles.Scale)

	return New(Deps{
		Grid:     grid,
		Camera:   view.NewCamera(grid.Width(), grid.Height(), cfg.View.Width, cfg.View.Height),
		Renderer: render.NewRenderer(proj, atlas),
		Agent:    w,
		Rng:      rng,
		MaxFPS:   cfg.Loop.GetMaxFPS(),
		Options: Options{
			Noise:      cfg.Loop.Noise,
			Verbose:    cfg.Loop.Verbose,
			VerboseFPS: cfg.Loop.VerboseFPS,
		},
		Bus:     bus,
		Metrics: fm,
		Process: metrics.NewProcessStats(),
	})
}
