package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameMetrics(t *testing.T) {
	m := NewFrameMetrics()

	m.ObserveFrame(10*time.Millisecond, 120)
	m.ObserveFrame(12*time.Millisecond, 118)
	m.ObserveMove(true)
	m.ObserveMove(false)
	m.ObserveMove(false)
	m.ObserveEvent()
	m.SetFPS(29.5)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.frames))
	assert.Equal(t, 118.0, testutil.ToFloat64(m.drawCalls))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.agentMoves.WithLabelValues(MoveOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.agentMoves.WithLabelValues(MoveBlocked)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.events))
	assert.Equal(t, 29.5, testutil.ToFloat64(m.fps))
}

func TestFrameMetricsHandler(t *testing.T) {
	m := NewFrameMetrics()
	m.ObserveFrame(time.Millisecond, 3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "isotiles_frames_total 1"), body)
	assert.Contains(t, body, "isotiles_frame_duration_seconds_bucket")
}

func TestIndependentRegistries(t *testing.T) {
	// Две сессии в одном процессе не конфликтуют при регистрации
	assert.NotPanics(t, func() {
		NewFrameMetrics()
		NewFrameMetrics()
	})
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "5с", formatUptime(5*time.Second))
	assert.Equal(t, "2м 3с", formatUptime(2*time.Minute+3*time.Second))
	assert.Equal(t, "1ч 0м 1с", formatUptime(time.Hour+time.Second))
}

func TestProcessStatsSummary(t *testing.T) {
	ps := NewProcessStats()
	assert.Contains(t, ps.Summary(), "uptime=")
	assert.Greater(t, ps.GetMemoryUsage(), 0.0)
}
