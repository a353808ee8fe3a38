package logging

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config описывает параметры логирования из конфигурации приложения
type Config struct {
	Level  string // debug, info, warn, error
	Format string // "json" или "console"
}

// Logger представляет компонентный логгер поверх zap
type Logger struct {
	component string
	sugar     *zap.SugaredLogger
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = &Logger{component: "default", sugar: zap.NewNop().Sugar()}
	defaultBase   = zap.NewNop()
)

// NewLogger создаёт zap-логгер по конфигурации
func NewLogger(cfg Config) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

// InitDefaultLogger инициализирует глобальный логгер для компонента
func InitDefaultLogger(component string, cfg Config) error {
	base, err := NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("ошибка инициализации логгера: %w", err)
	}
	SetDefault(component, base)
	return nil
}

// SetDefault подменяет глобальный логгер (используется и в тестах)
func SetDefault(component string, base *zap.Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultBase = base
	defaultLogger = &Logger{
		component: component,
		sugar:     base.Named(component).Sugar(),
	}
}

// CloseDefaultLogger сбрасывает буферы глобального логгера
func CloseDefaultLogger() {
	defaultMu.RLock()
	base := defaultBase
	defaultMu.RUnlock()

	_ = base.Sync()
}

// Default возвращает текущий глобальный логгер
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// Component возвращает дочерний логгер с именем компонента
func Component(name string) *Logger {
	defaultMu.RLock()
	base := defaultBase
	defaultMu.RUnlock()

	return &Logger{component: name, sugar: base.Named(name).Sugar()}
}

// Name возвращает имя компонента логгера
func (l *Logger) Name() string { return l.component }

// Debug логирует сообщение уровня DEBUG
func (l *Logger) Debug(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }

// Info логирует сообщение уровня INFO
func (l *Logger) Info(format string, args ...interface{}) { l.sugar.Infof(format, args...) }

// Warn логирует сообщение уровня WARN
func (l *Logger) Warn(format string, args ...interface{}) { l.sugar.Warnf(format, args...) }

// Error логирует сообщение уровня ERROR
func (l *Logger) Error(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }

// With возвращает логгер с дополнительными структурированными полями
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{component: l.component, sugar: l.sugar.With(keysAndValues...)}
}

// Debug логирует в глобальный логгер
func Debug(format string, args ...interface{}) { Default().Debug(format, args...) }

// Info логирует в глобальный логгер
func Info(format string, args ...interface{}) { Default().Info(format, args...) }

// Warn логирует в глобальный логгер
func Warn(format string, args ...interface{}) { Default().Warn(format, args...) }

// Error логирует в глобальный логгер
func Error(format string, args ...interface{}) { Default().Error(format, args...) }
