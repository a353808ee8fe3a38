package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/annel0/isotiles/internal/logging"
	"github.com/annel0/isotiles/internal/observability"
)

// Config корневая структура конфигурации приложения.
type Config struct {
	Screen  ScreenConfig  `yaml:"screen"`
	World   WorldConfig   `yaml:"world"`
	View    ViewConfig    `yaml:"view"`
	Tiles   TilesConfig   `yaml:"tiles"`
	Loop    LoopConfig    `yaml:"loop"`
	Scene   SceneConfig   `yaml:"scene"`
	Assets  AssetsConfig  `yaml:"assets"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// WorldConfig задаёт размер мира в клетках и число уровней объектов
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Levels int `yaml:"levels"`
}

// ViewConfig задаёт число отображаемых клеток
type ViewConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TilesConfig описывает размер спрайтов на диске и масштаб отображения
type TilesConfig struct {
	TotalWidth    int     `yaml:"total_width"`
	TotalHeight   int     `yaml:"total_height"`
	VisibleHeight int     `yaml:"visible_height"`
	Scale         float64 `yaml:"scale"`
}

type LoopConfig struct {
	MaxFPS     int  `yaml:"max_fps"`
	Verbose    bool `yaml:"verbose"`
	VerboseFPS bool `yaml:"verbose_fps"`
	Noise      bool `yaml:"noise"`
}

type SceneConfig struct {
	Name         string `yaml:"name"` // isotiles, classic, perlin
	Seed         int64  `yaml:"seed"` // 0 = от времени запуска
	Trees        int    `yaml:"trees"`
	BurningTrees int    `yaml:"burning_trees"`
}

type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" или "console"
}

type MetricsConfig struct {
	Addr string `yaml:"addr"` // пусто = HTTP эндпоинт не поднимается
}

type TracingConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"` // OTLP HTTP host:port
}

// TelemetryConfig преобразует секцию tracing в параметры пакета observability
func (t TracingConfig) TelemetryConfig() observability.Config {
	return observability.Config{Enabled: t.Enabled, Endpoint: t.Endpoint, ServiceName: "isotiles"}
}

// LoggerConfig преобразует секцию logging в параметры пакета logging
func (l LoggingConfig) LoggerConfig() logging.Config {
	return logging.Config{Level: l.Level, Format: l.Format}
}

// GetMaxFPS возвращает частоту кадров с приоритетом: config -> env -> default
func (l *LoopConfig) GetMaxFPS() int {
	return getIntWithEnvFallback(l.MaxFPS, "ISOTILES_MAX_FPS", 30)
}

// GetMetricsAddr возвращает адрес /metrics с приоритетом: config -> env
func (m *MetricsConfig) GetMetricsAddr() string {
	if m.Addr != "" {
		return m.Addr
	}
	return os.Getenv("ISOTILES_METRICS_ADDR")
}

func getIntWithEnvFallback(configValue int, envVar string, defaultValue int) int {
	if configValue > 0 {
		return configValue
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		if v, err := strconv.Atoi(envVal); err == nil && v > 0 {
			return v
		}
	}
	return defaultValue
}

// Default возвращает конфигурацию демо по умолчанию
func Default() *Config {
	return &Config{
		Screen: ScreenConfig{Width: 1400, Height: 900},
		World:  WorldConfig{Width: 64, Height: 64, Levels: 8},
		View:   ViewConfig{Width: 48, Height: 48},
		Tiles: TilesConfig{
			TotalWidth:    111,
			TotalHeight:   128,
			VisibleHeight: 64,
			Scale:         0.25,
		},
		Loop: LoopConfig{
			MaxFPS:     30,
			Verbose:    false,
			VerboseFPS: true,
			Noise:      false,
		},
		Scene: SceneConfig{
			Name:         "isotiles",
			Trees:        50,
			BurningTrees: 15,
		},
		Assets:  AssetsConfig{Dir: "assets"},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать из ENV ISOTILES_CONFIG, иначе возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("ISOTILES_CONFIG")
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ErrInvalidConfig возвращается Validate для некорректных значений
var ErrInvalidConfig = errors.New("invalid config")

// Validate проверяет размеры и масштабы
func (c *Config) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("%w: screen %dx%d", ErrInvalidConfig, c.Screen.Width, c.Screen.Height)
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("%w: world %dx%d", ErrInvalidConfig, c.World.Width, c.World.Height)
	case c.World.Levels <= 0:
		return fmt.Errorf("%w: world levels %d", ErrInvalidConfig, c.World.Levels)
	case c.View.Width <= 0 || c.View.Height <= 0:
		return fmt.Errorf("%w: view %dx%d", ErrInvalidConfig, c.View.Width, c.View.Height)
	case c.Tiles.TotalWidth <= 0 || c.Tiles.TotalHeight <= 0 || c.Tiles.VisibleHeight <= 0:
		return fmt.Errorf("%w: tile size", ErrInvalidConfig)
	case c.Tiles.Scale <= 0:
		return fmt.Errorf("%w: tile scale %v", ErrInvalidConfig, c.Tiles.Scale)
	case c.Scene.Trees < 0 || c.Scene.BurningTrees < 0:
		return fmt.Errorf("%w: negative tree count", ErrInvalidConfig)
	}
	return nil
}
