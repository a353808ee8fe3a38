package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/annel0/isotiles/internal/agent"
	"github.com/annel0/isotiles/internal/eventbus"
	"github.com/annel0/isotiles/internal/logging"
	"github.com/annel0/isotiles/internal/metrics"
	"github.com/annel0/isotiles/internal/observability"
	"github.com/annel0/isotiles/internal/render"
	"github.com/annel0/isotiles/internal/view"
	"github.com/annel0/isotiles/internal/world"
)

const (
	source = "game"

	// fpsReportEvery - период отчёта [fps] в кадрах
	fpsReportEvery = 100
)

// Options - переключаемые флаги сессии
type Options struct {
	Noise      bool
	Verbose    bool
	VerboseFPS bool
}

// ViewState - полезная нагрузка события view.changed
type ViewState struct {
	OffsetX, OffsetY int
	Width, Height    int
}

// String форматирует состояние вида для лога
func (v ViewState) String() string {
	return fmt.Sprintf("view at (%d,%d) size %dx%d", v.OffsetX, v.OffsetY, v.Width, v.Height)
}

// OptionChange - полезная нагрузка события option.toggled
type OptionChange struct {
	Name  string
	Value bool
}

// String форматирует переключение для лога
func (o OptionChange) String() string { return fmt.Sprintf("%s is %v", o.Name, o.Value) }

// Deps - всё, из чего собирается сессия
type Deps struct {
	Grid     *world.Grid
	Camera   *view.Camera
	Renderer *render.Renderer
	Agent    *agent.Wanderer // nil - сцена без агента
	Rng      *rand.Rand
	MaxFPS   int
	Options  Options
	Bus      eventbus.EventBus     // может быть nil
	Metrics  *metrics.FrameMetrics // может быть nil
	Process  *metrics.ProcessStats // может быть nil
}

// Session - состояние демо: мир, камера, агент и счётчик кадров.
// Не потокобезопасна: все вызовы идут из одного цикла кадров.
type Session struct {
	grid     *world.Grid
	camera   *view.Camera
	renderer *render.Renderer
	agent    *agent.Wanderer
	rng      *rand.Rand
	bus      eventbus.EventBus
	metrics  *metrics.FrameMetrics
	process  *metrics.ProcessStats
	log      *logging.Logger

	opts   Options
	maxFPS int
	frame  int
	quit   bool

	started    time.Time
	stampTime  time.Time
	stampFrame int
	now        func() time.Time
}

// New создаёт сессию из готовых компонентов
func New(d Deps) (*Session, error) {
	if d.Grid == nil || d.Camera == nil || d.Renderer == nil || d.Rng == nil {
		return nil, fmt.Errorf("game: grid, camera, renderer and rng are required")
	}
	if d.MaxFPS <= 0 {
		return nil, fmt.Errorf("game: max fps must be positive, got %d", d.MaxFPS)
	}

	s := &Session{
		grid:     d.Grid,
		camera:   d.Camera,
		renderer: d.Renderer,
		agent:    d.Agent,
		rng:      d.Rng,
		bus:      d.Bus,
		metrics:  d.Metrics,
		process:  d.Process,
		log:      logging.Component(source),
		opts:     d.Options,
		maxFPS:   d.MaxFPS,
		now:      time.Now,
	}
	s.started = s.now()
	s.stampTime = s.started
	return s, nil
}

// Grid возвращает сетку мира
func (s *Session) Grid() *world.Grid { return s.grid }

// Camera возвращает камеру вида
func (s *Session) Camera() *view.Camera { return s.camera }

// Agent возвращает агента или nil, если сцена без агента
func (s *Session) Agent() *agent.Wanderer { return s.agent }

// Options возвращает текущие флаги
func (s *Session) Options() Options { return s.opts }

// FrameNumber возвращает число отрисованных кадров
func (s *Session) FrameNumber() int { return s.frame }

// MaxFPS возвращает целевую частоту кадров
func (s *Session) MaxFPS() int { return s.maxFPS }

// QuitRequested сообщает, запрошен ли выход
func (s *Session) QuitRequested() bool { return s.quit }

// Verbose сообщает, включён ли подробный вывод событий
func (s *Session) Verbose() bool { return s.opts.Verbose }

// Frame рисует кадр и продвигает мир на один шаг.
// Агент делает попытку шага раз в maxFPS/10 кадров (см. agentTurn).
func (s *Session) Frame(ctx context.Context, surface render.Surface) error {
	if s.frame != 0 && s.frame%fpsReportEvery == 0 && s.opts.VerboseFPS {
		s.reportFPS()
	}

	ctx, span := observability.StartSpan(ctx, "game.frame", attribute.Int("frame", s.frame))
	defer span.End()

	start := s.now()
	stats, err := s.renderer.DrawFrame(surface, render.Frame{
		Grid:   s.grid,
		Camera: s.camera,
		Number: s.frame,
		Noise:  s.opts.Noise,
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("frame %d: %w", s.frame, err)
	}
	span.SetAttributes(attribute.Int("cells", stats.Cells), attribute.Int("draws", stats.Draws))

	if s.agent != nil && s.agentTurn(s.frame) {
		if err := s.stepAgent(ctx); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("frame %d: %w", s.frame, err)
		}
	}

	if s.metrics != nil {
		s.metrics.ObserveFrame(s.now().Sub(start), stats.Draws)
	}
	s.frame++
	return nil
}

// agentTurn сообщает, ходит ли агент на кадре frame: frame кратен maxFPS/10.
// Сравнение в целых числах, поэтому дробный период (maxFPS=25 даёт 2.5) тоже точен.
func (s *Session) agentTurn(frame int) bool {
	return frame*10%s.maxFPS == 0
}

func (s *Session) stepAgent(ctx context.Context) error {
	mv, err := s.agent.Step(s.grid, s.rng)
	if err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.ObserveMove(mv.Moved)
	}
	evType := eventbus.AgentMoved
	if !mv.Moved {
		evType = eventbus.AgentBlocked
	}
	s.publish(ctx, evType, mv)
	return nil
}

func (s *Session) publish(ctx context.Context, evType string, payload any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, eventbus.NewEnvelope(source, evType, s.frame, payload)); err != nil {
		s.log.Warn("publish %s: %v", evType, err)
		return
	}
	if s.metrics != nil {
		s.metrics.ObserveEvent()
	}
}

// FPS возвращает среднюю частоту кадров с момента запуска
func (s *Session) FPS() float64 {
	elapsed := s.now().Sub(s.started).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(s.frame) / elapsed
}

func (s *Session) reportFPS() {
	now := s.now()
	elapsed := now.Sub(s.stampTime).Seconds()
	var fps float64
	if elapsed > 0 {
		fps = float64(s.frame-s.stampFrame) / elapsed
	}
	s.stampTime = now
	s.stampFrame = s.frame

	if s.metrics != nil {
		s.metrics.SetFPS(fps)
	}
	if s.process != nil {
		s.log.Info("[fps] %.2f %s", fps, s.process.Summary())
		return
	}
	s.log.Info("[fps] %.2f", fps)
}

// Pan сдвигает камеру
func (s *Session) Pan(dx, dy int) {
	s.camera.Pan(dx, dy)
	s.publish(context.Background(), eventbus.ViewChanged, s.viewState())
}

// ShrinkView уменьшает окно обзора на клетку
func (s *Session) ShrinkView() bool {
	changed := s.camera.Shrink()
	s.publish(context.Background(), eventbus.ViewChanged, s.viewState())
	return changed
}

// GrowView увеличивает окно обзора на клетку
func (s *Session) GrowView() bool {
	changed := s.camera.Grow()
	s.publish(context.Background(), eventbus.ViewChanged, s.viewState())
	return changed
}

// ToggleNoise переключает шум высоты
func (s *Session) ToggleNoise() bool {
	s.opts.Noise = !s.opts.Noise
	return s.toggled("noise", s.opts.Noise)
}

// ToggleVerbose переключает подробный вывод событий
func (s *Session) ToggleVerbose() bool {
	s.opts.Verbose = !s.opts.Verbose
	return s.toggled("verbose", s.opts.Verbose)
}

// ToggleFPS переключает отчёт [fps]
func (s *Session) ToggleFPS() bool {
	s.opts.VerboseFPS = !s.opts.VerboseFPS
	return s.toggled("verbose FPS", s.opts.VerboseFPS)
}

func (s *Session) toggled(name string, v bool) bool {
	s.log.Info("%s is %v", name, v)
	s.publish(context.Background(), eventbus.OptionToggled, OptionChange{Name: name, Value: v})
	return v
}

// RequestQuit помечает сессию на завершение
func (s *Session) RequestQuit() { s.quit = true }

func (s *Session) viewState() ViewState {
	return ViewState{
		OffsetX: s.camera.OffsetX,
		OffsetY: s.camera.OffsetY,
		Width:   s.camera.Width,
		Height:  s.camera.Height,
	}
}

// Close пишет итоговую частоту кадров
func (s *Session) Close() {
	s.log.Info("[Quit] (%.2f frames per second)", s.FPS())
}
