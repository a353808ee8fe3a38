package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/annel0/isotiles/internal/agent"
	"github.com/annel0/isotiles/internal/config"
	"github.com/annel0/isotiles/internal/eventbus"
	"github.com/annel0/isotiles/internal/input"
	"github.com/annel0/isotiles/internal/iso"
	"github.com/annel0/isotiles/internal/logging"
	"github.com/annel0/isotiles/internal/metrics"
	"github.com/annel0/isotiles/internal/render"
	"github.com/annel0/isotiles/internal/scene"
	"github.com/annel0/isotiles/internal/vec"
	"github.com/annel0/isotiles/internal/view"
	"github.com/annel0/isotiles/internal/world"
)

func testAtlas() render.NameAtlas {
	return render.NameAtlas{
		Terrains: scene.Names(scene.Terrains),
		Objects:  scene.Names(scene.Objects),
		Agents:   scene.Names(scene.Agents),
	}
}

type fixture struct {
	session *Session
	bus     eventbus.EventBus
	metrics *metrics.FrameMetrics
	events  []*eventbus.Envelope
}

// newFixture создаёт открытый мир w x h с агентом в центре
func newFixture(t *testing.T, w, h, maxFPS int) *fixture {
	t.Helper()
	g, err := world.NewGrid(w, h, 2)
	require.NoError(t, err)

	wanderer, err := agent.Place(g, vec.Vec2{X: w / 2, Y: h / 2}, scene.InvaderID)
	require.NoError(t, err)

	f := &fixture{bus: eventbus.NewSyncBus(), metrics: metrics.NewFrameMetrics()}
	_, err = f.bus.Subscribe(context.Background(), eventbus.Filter{}, func(_ context.Context, ev *eventbus.Envelope) {
		f.events = append(f.events, ev)
	})
	require.NoError(t, err)

	proj := iso.NewProjector(iso.Params{TileWidth: 28, VisibleHeight: 16, TotalHeight: 32, XOffset: 686, YOffset: 96})
	f.session, err = New(Deps{
		Grid:     g,
		Camera:   view.NewCamera(w, h, w, h),
		Renderer: render.NewRenderer(proj, testAtlas()),
		Agent:    wanderer,
		Rng:      rand.New(rand.NewSource(1)),
		MaxFPS:   maxFPS,
		Bus:      f.bus,
		Metrics:  f.metrics,
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) eventsOf(types ...string) []*eventbus.Envelope {
	var out []*eventbus.Envelope
	for _, ev := range f.events {
		for _, tp := range types {
			if ev.EventType == tp {
				out = append(out, ev)
			}
		}
	}
	return out
}

func countAgents(t *testing.T, g *world.Grid) int {
	t.Helper()
	n := 0
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			id, err := g.AgentAt(x, y)
			require.NoError(t, err)
			if id != world.NoAgent {
				n++
			}
		}
	}
	return n
}

func counterValue(t *testing.T, fm *metrics.FrameMetrics, name string) float64 {
	t.Helper()
	families, err := fm.Registry.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		var sum float64
		for _, m := range mf.GetMetric() {
			sum += m.GetCounter().GetValue()
		}
		return sum
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestNewValidatesDeps(t *testing.T) {
	_, err := New(Deps{})
	assert.Error(t, err)

	f := newFixture(t, 4, 4, 30)
	_, err = New(Deps{
		Grid:     f.session.grid,
		Camera:   f.session.camera,
		Renderer: f.session.renderer,
		Rng:      f.session.rng,
		MaxFPS:   0,
	})
	assert.Error(t, err)
}

func TestFrameMovesAgentEveryTenthOfMaxFPS(t *testing.T) {
	f := newFixture(t, 6, 6, 30) // шаг раз в 3 кадра
	rec := &render.Recorder{}

	for i := 0; i < 7; i++ {
		require.NoError(t, f.session.Frame(context.Background(), rec))
	}

	assert.Equal(t, 7, f.session.FrameNumber())
	assert.Equal(t, 7, rec.Clears)

	moves := f.eventsOf(eventbus.AgentMoved, eventbus.AgentBlocked)
	require.Len(t, moves, 3)
	assert.Equal(t, []int{0, 3, 6}, []int{moves[0].Frame, moves[1].Frame, moves[2].Frame})

	// мир открыт: все шаги успешны, агент на сетке ровно один
	assert.Len(t, f.eventsOf(eventbus.AgentMoved), 3)
	assert.Equal(t, 1, countAgents(t, f.session.Grid()))
	id, err := f.session.Grid().AgentAt(f.session.Agent().Pos.X, f.session.Agent().Pos.Y)
	require.NoError(t, err)
	assert.Equal(t, scene.InvaderID, id)

	assert.Equal(t, 7.0, counterValue(t, f.metrics, "isotiles_frames_total"))
	assert.Equal(t, 3.0, counterValue(t, f.metrics, "isotiles_agent_moves_total"))
}

func TestAgentCadenceFollowsTenthOfMaxFPS(t *testing.T) {
	tests := []struct {
		maxFPS int
		want   []int // кадры с попыткой шага среди 0..10
	}{
		{30, []int{0, 3, 6, 9}},
		{25, []int{0, 5, 10}},
		{15, []int{0, 3, 6, 9}},
		{5, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("fps%d", tt.maxFPS), func(t *testing.T) {
			f := newFixture(t, 6, 6, tt.maxFPS)
			rec := &render.Recorder{}
			for i := 0; i <= 10; i++ {
				require.NoError(t, f.session.Frame(context.Background(), rec))
			}

			var frames []int
			for _, ev := range f.eventsOf(eventbus.AgentMoved, eventbus.AgentBlocked) {
				frames = append(frames, ev.Frame)
			}
			assert.Equal(t, tt.want, frames)
		})
	}
}

func TestFrameLowFPSMovesEveryFrame(t *testing.T) {
	f := newFixture(t, 5, 5, 5)
	rec := &render.Recorder{}
	for i := 0; i < 4; i++ {
		require.NoError(t, f.session.Frame(context.Background(), rec))
	}
	assert.Len(t, f.eventsOf(eventbus.AgentMoved, eventbus.AgentBlocked), 4)
}

func TestFrameBlockedAgentStays(t *testing.T) {
	f := newFixture(t, 3, 3, 10)
	g := f.session.Grid()
	// агент в (1,1), все четыре соседа заняты деревьями
	for _, p := range []vec.Vec2{{X: 0, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 2}} {
		require.NoError(t, g.SetObject(p.X, p.Y, scene.TreeID))
	}

	rec := &render.Recorder{}
	for i := 0; i < 5; i++ {
		require.NoError(t, f.session.Frame(context.Background(), rec))
	}

	assert.Equal(t, vec.Vec2{X: 1, Y: 1}, f.session.Agent().Pos)
	assert.Len(t, f.eventsOf(eventbus.AgentBlocked), 5)
	assert.Empty(t, f.eventsOf(eventbus.AgentMoved))
}

func TestFrameMissingSprite(t *testing.T) {
	f := newFixture(t, 2, 2, 30)
	require.NoError(t, f.session.Grid().SetObject(0, 0, 42))

	err := f.session.Frame(context.Background(), &render.Recorder{})
	assert.True(t, errors.Is(err, render.ErrMissingSprite))
	assert.Equal(t, 0, f.session.FrameNumber())
}

func TestInputCommandsDriveSession(t *testing.T) {
	f := newFixture(t, 4, 4, 30)
	s := f.session

	input.Apply(input.PanLeft, s)
	assert.Equal(t, 3, s.Camera().OffsetX)

	input.Apply(input.PanUp, s)
	assert.Equal(t, 3, s.Camera().OffsetY)

	assert.False(t, input.Apply(input.GrowView, s))
	assert.True(t, input.Apply(input.ShrinkView, s))
	assert.Equal(t, 3, s.Camera().Width)

	views := f.eventsOf(eventbus.ViewChanged)
	require.Len(t, views, 4)
	assert.Equal(t, ViewState{OffsetX: 3, OffsetY: 3, Width: 3, Height: 3}, views[3].Payload)

	input.Apply(input.ToggleNoise, s)
	input.Apply(input.ToggleVerbose, s)
	assert.True(t, s.Options().Noise)
	assert.True(t, s.Verbose())
	toggles := f.eventsOf(eventbus.OptionToggled)
	require.Len(t, toggles, 2)
	assert.Equal(t, OptionChange{Name: "noise", Value: true}, toggles[0].Payload)

	input.Apply(input.Quit, s)
	assert.True(t, s.QuitRequested())
}

func TestRunHeadlessFrameLimit(t *testing.T) {
	f := newFixture(t, 4, 4, 1000)
	rec := &render.Recorder{}

	require.NoError(t, f.session.RunHeadless(context.Background(), rec, 5))
	assert.Equal(t, 5, f.session.FrameNumber())
	assert.Equal(t, 5, rec.Clears)
}

func TestRunHeadlessStopsOnCancel(t *testing.T) {
	f := newFixture(t, 4, 4, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.session.RunHeadless(ctx, &render.Recorder{}, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, f.session.FrameNumber())
}

func TestRunHeadlessStopsOnQuit(t *testing.T) {
	f := newFixture(t, 4, 4, 30)
	f.session.RequestQuit()

	require.NoError(t, f.session.RunHeadless(context.Background(), &render.Recorder{}, 0))
	assert.Equal(t, 0, f.session.FrameNumber())
}

func TestFPSReportEveryHundredFrames(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logging.SetDefault("test", zap.New(core))
	defer logging.SetDefault("default", zap.NewNop())

	f := newFixture(t, 2, 2, 1000)
	f.session.opts.VerboseFPS = true
	clock := time.Unix(0, 0)
	f.session.now = func() time.Time {
		clock = clock.Add(5 * time.Millisecond)
		return clock
	}
	f.session.started = clock
	f.session.stampTime = clock

	rec := &render.Recorder{}
	for i := 0; i < 201; i++ {
		require.NoError(t, f.session.Frame(context.Background(), rec))
	}

	var reports []string
	for _, e := range logs.All() {
		if strings.HasPrefix(e.Message, "[fps]") {
			reports = append(reports, e.Message)
			assert.Equal(t, "game", e.LoggerName)
		}
	}
	assert.Len(t, reports, 2)
	assert.Greater(t, f.session.FPS(), 0.0)
}

func TestFromConfigBuildsScenes(t *testing.T) {
	for _, name := range []string{"isotiles", "perlin"} {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Scene.Name = name
			cfg.Scene.Seed = 7

			s, err := FromConfig(cfg, testAtlas(), nil, nil)
			require.NoError(t, err)
			require.NotNil(t, s.Agent())
			assert.Equal(t, 1, countAgents(t, s.Grid()))
			assert.True(t, s.agentTurn(3))
			assert.False(t, s.agentTurn(2))

			require.NoError(t, s.Frame(context.Background(), &render.Recorder{}))
		})
	}
}

func TestFromConfigUnknownScene(t *testing.T) {
	cfg := config.Default()
	cfg.Scene.Name = "atlantis"

	_, err := FromConfig(cfg, testAtlas(), nil, nil)
	assert.ErrorIs(t, err, scene.ErrUnknownScene)
}

func TestFrameAndSceneSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))
	defer otel.SetTracerProvider(prev)

	cfg := config.Default()
	cfg.Scene.Seed = 3
	s, err := FromConfig(cfg, testAtlas(), nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Frame(context.Background(), &render.Recorder{}))

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "scene.build", spans[0].Name())
	assert.Equal(t, "game.frame", spans[1].Name())
	assert.Contains(t, spans[1].Attributes(), attribute.Int("frame", 0))
}
