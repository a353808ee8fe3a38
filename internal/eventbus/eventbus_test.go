package eventbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/annel0/isotiles/internal/logging"
)

func TestSyncBusDeliversInline(t *testing.T) {
	bus := NewSyncBus()
	ctx := context.Background()

	var got []string
	_, err := bus.Subscribe(ctx, Filter{Types: []string{AgentMoved}}, func(_ context.Context, ev *Envelope) {
		got = append(got, ev.EventType)
	})
	require.NoError(t, err)

	require.NoError(t, bus.Publish(ctx, NewEnvelope("agent", AgentMoved, 1, nil)))
	require.NoError(t, bus.Publish(ctx, NewEnvelope("view", ViewChanged, 1, nil)))

	// Доставка синхронная: результат виден сразу после Publish
	assert.Equal(t, []string{AgentMoved}, got)
	assert.Equal(t, Stats{Published: 2, Consumed: 1}, bus.Metrics())
}

func TestSyncBusOrderAndUnsubscribe(t *testing.T) {
	bus := NewSyncBus()
	ctx := context.Background()

	var order []int
	s1, _ := bus.Subscribe(ctx, Filter{}, func(context.Context, *Envelope) { order = append(order, 1) })
	_, _ = bus.Subscribe(ctx, Filter{Sources: []string{"input"}}, func(context.Context, *Envelope) { order = append(order, 2) })

	require.NoError(t, bus.Publish(ctx, NewEnvelope("input", OptionToggled, 0, "noise")))
	s1.Unsubscribe()
	require.NoError(t, bus.Publish(ctx, NewEnvelope("input", OptionToggled, 0, "noise")))

	assert.Equal(t, []int{1, 2, 2}, order)
}

func TestPublishCancelledContext(t *testing.T) {
	bus := NewSyncBus()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, bus.Publish(ctx, NewEnvelope("x", AgentMoved, 0, nil)), context.Canceled)
}

func TestEnvelopeHasUUID(t *testing.T) {
	a := NewEnvelope("agent", AgentMoved, 3, nil)
	b := NewEnvelope("agent", AgentMoved, 3, nil)
	assert.Len(t, a.ID, 36)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 3, a.Frame)
}

func TestLoggingListenerVerbose(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logging.SetDefault("test", zap.New(core))
	defer logging.SetDefault("default", zap.NewNop())

	verbose := false
	bus := NewSyncBus()
	_, err := StartLoggingListener(bus, func() bool { return verbose })
	require.NoError(t, err)
	logs.TakeAll()

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, NewEnvelope("view", ViewChanged, 5, "(1,2)")))
	verbose = true
	require.NoError(t, bus.Publish(ctx, NewEnvelope("view", ViewChanged, 6, "(1,3)")))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, "[6] view.changed src=view (1,3)", entries[1].Message)
}
