package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/annel0/isotiles/internal/logging"
)

// Исходы попытки шага агента
const (
	MoveOK      = "moved"
	MoveBlocked = "blocked"
)

// FrameMetrics инкапсулирует Prometheus-метрики цикла кадров.
// Метрики регистрируются в собственном реестре, чтобы тесты и несколько сессий не конфликтовали.
type FrameMetrics struct {
	Registry *prometheus.Registry

	frames        prometheus.Counter
	frameDuration prometheus.Histogram
	drawCalls     prometheus.Gauge
	fps           prometheus.Gauge
	agentMoves    *prometheus.CounterVec
	events        prometheus.Counter
}

// NewFrameMetrics создаёт и регистрирует метрики
func NewFrameMetrics() *FrameMetrics {
	m := &FrameMetrics{
		Registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "isotiles",
			Name:      "frames_total",
			Help:      "Общее число отрисованных кадров.",
		}),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "isotiles",
			Name:      "frame_duration_seconds",
			Help:      "Время подготовки кадра без ожидания ограничителя FPS.",
			Buckets:   []float64{.001, .0025, .005, .01, .02, .033, .05, .1, .25},
		}),
		drawCalls: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "isotiles",
			Name:      "draw_calls",
			Help:      "Число блитов в последнем кадре.",
		}),
		fps: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "isotiles",
			Name:      "fps",
			Help:      "Кадров в секунду за последний интервал отчёта.",
		}),
		agentMoves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "isotiles",
			Name:      "agent_moves_total",
			Help:      "Попытки шага агента по исходу.",
		}, []string{"result"}),
		events: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "isotiles",
			Name:      "events_published_total",
			Help:      "События, опубликованные в шину.",
		}),
	}

	m.Registry.MustRegister(m.frames, m.frameDuration, m.drawCalls, m.fps, m.agentMoves, m.events)
	return m
}

// ObserveFrame учитывает отрисованный кадр
func (m *FrameMetrics) ObserveFrame(d time.Duration, draws int) {
	m.frames.Inc()
	m.frameDuration.Observe(d.Seconds())
	m.drawCalls.Set(float64(draws))
}

// ObserveMove учитывает попытку шага агента
func (m *FrameMetrics) ObserveMove(moved bool) {
	if moved {
		m.agentMoves.WithLabelValues(MoveOK).Inc()
		return
	}
	m.agentMoves.WithLabelValues(MoveBlocked).Inc()
}

// ObserveEvent учитывает опубликованное событие
func (m *FrameMetrics) ObserveEvent() { m.events.Inc() }

// SetFPS обновляет измеренную частоту кадров
func (m *FrameMetrics) SetFPS(fps float64) { m.fps.Set(fps) }

// Handler возвращает HTTP-обработчик /metrics для реестра
func (m *FrameMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// StartHTTP запускает HTTP-эндпоинт Prometheus на указанном адресе (например, ":2112").
// Метод неблокирующий: сервер стартует в отдельной горутине и возвращается для остановки.
func (m *FrameMetrics) StartHTTP(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
	return srv
}
