package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/annel0/isotiles/internal/config"
	"github.com/annel0/isotiles/internal/ebitenview"
	"github.com/annel0/isotiles/internal/eventbus"
	"github.com/annel0/isotiles/internal/game"
	"github.com/annel0/isotiles/internal/input"
	"github.com/annel0/isotiles/internal/logging"
	"github.com/annel0/isotiles/internal/metrics"
	"github.com/annel0/isotiles/internal/observability"
	"github.com/annel0/isotiles/internal/render"
	"github.com/annel0/isotiles/internal/scene"
)

const versionTag = "2018-11-19_12h45"

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config (default: $ISOTILES_CONFIG or built-in defaults)")
		headless   = flag.Bool("headless", false, "Run without a window, rendering into a recorder")
		frames     = flag.Int("frames", 0, "Stop after N frames in headless mode (0 = until interrupted)")
		sceneName  = flag.String("scene", "", "Scene to build: "+strings.Join(scene.SceneNames(), ", "))
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	if *sceneName != "" {
		cfg.Scene.Name = *sceneName
	}

	if err := logging.InitDefaultLogger("isotiles", cfg.Logging.LoggerConfig()); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	printBanner(cfg)

	// === ТРАССИРОВКА, ШИНА СОБЫТИЙ И МЕТРИКИ ===
	shutdownTracing, err := observability.InitTelemetry(context.Background(), cfg.Tracing.TelemetryConfig())
	if err != nil {
		logging.Warn("Трассировка отключена: %v", err)
	} else {
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				logging.Warn("Ошибка остановки трассировки: %v", err)
			}
		}()
	}

	bus := eventbus.NewSyncBus()
	defer func() {
		st := bus.Metrics()
		logging.Debug("Шина событий: опубликовано=%d, доставлено=%d", st.Published, st.Consumed)
	}()

	fm := metrics.NewFrameMetrics()
	if addr := cfg.Metrics.GetMetricsAddr(); addr != "" {
		srv := fm.StartHTTP(addr)
		defer srv.Close()
	}

	// === МИР ===
	var atlas render.Atlas
	if *headless {
		atlas = render.NameAtlas{
			Terrains: scene.Names(scene.Terrains),
			Objects:  scene.Names(scene.Objects),
			Agents:   scene.Names(scene.Agents),
		}
	} else {
		a, err := ebitenview.LoadAtlas(cfg.Assets.Dir, cfg.Tiles.TotalWidth, cfg.Tiles.TotalHeight, cfg.Tiles.Scale)
		if err != nil {
			logging.Error("❌ Ошибка загрузки спрайтов: %v", err)
			log.Fatalf("❌ Ошибка загрузки спрайтов: %v", err)
		}
		atlas = a
	}

	session, err := game.FromConfig(cfg, atlas, bus, fm)
	if err != nil {
		logging.Error("❌ Ошибка создания мира: %v", err)
		log.Fatalf("❌ Ошибка создания мира: %v", err)
	}
	defer session.Close()

	if _, err := eventbus.StartLoggingListener(bus, session.Verbose); err != nil {
		logging.Warn("Не удалось подписать логгер событий: %v", err)
	}

	if *headless {
		runHeadless(session, *frames)
		return
	}

	if err := ebitenview.Run(session, cfg.Screen.Width, cfg.Screen.Height, "World of Isotiles"); err != nil {
		logging.Error("❌ Цикл отрисовки остановлен: %v", err)
	}
}

func runHeadless(session *game.Session, frames int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info("🎮 Безоконный режим: кадров=%d, fps=%d", frames, session.MaxFPS())
	rec := &render.Recorder{}
	err := session.RunHeadless(ctx, rec, frames)
	switch {
	case errors.Is(err, context.Canceled):
		logging.Info("📡 Получен сигнал, завершение работы...")
	case err != nil:
		logging.Error("❌ Ошибка цикла кадров: %v", err)
	}
}

func printBanner(cfg *config.Config) {
	logging.Info("=-= =-= =-= =-= =-= =-= =-= =-= =-= =-= =-= =-= =-=")
	logging.Info("=-=  World of Isotiles                          =-=")
	logging.Info("=-= =-= =-= =-= =-= =-= =-= =-= =-= =-= =-= =-= =-=")
	logging.Info(">> v.%s", versionTag)
	logging.Info("Screen resolution : (%d, %d)", cfg.Screen.Width, cfg.Screen.Height)
	logging.Info("World surface     : (%d, %d)", cfg.World.Width, cfg.World.Height)
	logging.Info("View surface      : (%d, %d)", cfg.View.Width, cfg.View.Height)
	logging.Info("Scene             : %s", cfg.Scene.Name)
	logging.Info("Verbose all       : %v", cfg.Loop.Verbose)
	logging.Info("Verbose fps       : %v", cfg.Loop.VerboseFPS)
	logging.Info("Maximum fps       : %d", cfg.Loop.GetMaxFPS())
	for _, line := range strings.Split(strings.TrimRight(input.Help(), "\n"), "\n") {
		logging.Info("%s", line)
	}
}
