package logger

import (
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// PerformanceConfig tunes level gating and rate limiting of the context logger
type PerformanceConfig struct {
	MinLogLevel     zapcore.Level
	MaxLogPerSecond int
	EnableRateLimit bool
}

func ProductionConfig() PerformanceConfig {
	return PerformanceConfig{
		MinLogLevel:     zapcore.InfoLevel,
		MaxLogPerSecond: 2000,
		EnableRateLimit: true,
	}
}

func DevelopmentConfig() PerformanceConfig {
	return PerformanceConfig{
		MinLogLevel:     zapcore.DebugLevel,
		MaxLogPerSecond: 10000,
		EnableRateLimit: false,
	}
}

// OptimizedLogger checks level and rate before any field is built
type OptimizedLogger struct {
	config      PerformanceConfig
	logger      *zap.Logger
	rateLimiter *RateLimiter
}

// RateLimiter caps the number of log lines per second
type RateLimiter struct {
	maxLogs   int
	current   int
	lastReset time.Time
	mu        sync.Mutex
}

func NewRateLimiter(maxLogs int) *RateLimiter {
	return &RateLimiter{
		maxLogs:   maxLogs,
		lastReset: time.Now(),
	}
}

func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastReset) >= time.Second {
		rl.current = 0
		rl.lastReset = now
	}

	if rl.current >= rl.maxLogs {
		return false
	}

	rl.current++
	return true
}

// NewOptimizedLoggerFrom wraps an existing zap logger
func NewOptimizedLoggerFrom(zapLogger *zap.Logger, config PerformanceConfig) *OptimizedLogger {
	return &OptimizedLogger{
		config:      config,
		logger:      zapLogger,
		rateLimiter: NewRateLimiter(config.MaxLogPerSecond),
	}
}

// NewOptimizedLogger builds a stdout JSON logger
func NewOptimizedLogger(config PerformanceConfig) (*OptimizedLogger, error) {
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(config.MinLogLevel)
	zapConfig.OutputPaths = []string{"stdout"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	zapConfig.EncoderConfig.TimeKey = "timestamp"
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	zapConfig.DisableStacktrace = true

	zapLogger, err := zapConfig.Build(zap.WithCaller(false))
	if err != nil {
		return nil, err
	}

	return NewOptimizedLoggerFrom(zapLogger, config), nil
}

// ShouldLog reports whether a line at level passes level and rate gates
func (ol *OptimizedLogger) ShouldLog(level zapcore.Level) bool {
	if level < ol.config.MinLogLevel {
		return false
	}

	if ol.config.EnableRateLimit && !ol.rateLimiter.Allow() {
		return false
	}

	return true
}

var (
	optimizedLogger *OptimizedLogger
	optimizedMu     sync.RWMutex
)

// SetOptimizedLogger replaces the global context logger
func SetOptimizedLogger(ol *OptimizedLogger) {
	optimizedMu.Lock()
	defer optimizedMu.Unlock()
	optimizedLogger = ol
}

// GetOptimizedLogger returns the global context logger, creating a stdout one on first use
func GetOptimizedLogger() *OptimizedLogger {
	optimizedMu.RLock()
	ol := optimizedLogger
	optimizedMu.RUnlock()
	if ol != nil {
		return ol
	}

	optimizedMu.Lock()
	defer optimizedMu.Unlock()
	if optimizedLogger == nil {
		config := DevelopmentConfig()
		if os.Getenv("APP_ENV") == "production" {
			config = ProductionConfig()
		}
		created, err := NewOptimizedLogger(config)
		if err != nil {
			created = NewOptimizedLoggerFrom(zap.NewNop(), config)
		}
		optimizedLogger = created
	}
	return optimizedLogger
}
