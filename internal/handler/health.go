package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/constants"
	ctxutil "github.com/deelaka-ransilu/bridal-shop-backend/pkg/context"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDisabled  = "disabled"
	statusDegraded  = "degraded"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type BreakerReporter interface {
	BreakerStats() map[string]interface{}
}

// HealthDeps lists what the detailed check probes. Nil optional
// dependencies are reported as disabled.
type HealthDeps struct {
	DB      *gorm.DB
	Redis   Pinger
	Storage Pinger
	Google  BreakerReporter
}

type HealthHandler struct {
	deps HealthDeps
}

type HealthCheckResponse struct {
	Status    string                 `json:"status"`
	Version   string                 `json:"version"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]HealthCheck `json:"checks"`
}

type HealthCheck struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func NewHealthHandler(deps HealthDeps) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// BasicHealth is the load balancer probe
func (h *HealthHandler) BasicHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    statusHealthy,
		"version":   constants.AppVersion,
		"timestamp": time.Now(),
	})
}

// HealthCheck probes the database, Redis and object storage. Only the
// database decides the overall status; the rest degrade it.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "HealthCheck")
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	response := HealthCheckResponse{
		Status:    statusHealthy,
		Version:   constants.AppVersion,
		Timestamp: time.Now(),
		Checks:    make(map[string]HealthCheck),
	}

	db := h.checkDatabase(ctx)
	response.Checks["database"] = db
	if db.Status != statusHealthy {
		response.Status = statusUnhealthy
	}

	for name, pinger := range map[string]Pinger{"redis": h.deps.Redis, "storage": h.deps.Storage} {
		check := checkPinger(ctx, name, pinger)
		response.Checks[name] = check
		if check.Status == statusUnhealthy && response.Status == statusHealthy {
			response.Status = statusDegraded
		}
	}

	if h.deps.Google != nil {
		response.Checks["google"] = HealthCheck{
			Status:  statusHealthy,
			Details: h.deps.Google.BreakerStats(),
		}
	}

	statusCode := http.StatusOK
	if response.Status == statusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	logger.DebugWithContext(ctx, "Health check performed").
		String("overall_status", response.Status).
		Int("status_code", statusCode).
		Log()

	c.JSON(statusCode, response)
}

func (h *HealthHandler) checkDatabase(ctx context.Context) HealthCheck {
	if h.deps.DB == nil {
		return HealthCheck{Status: statusUnhealthy, Message: "Database connection not initialized"}
	}

	sqlDB, err := h.deps.DB.DB()
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to get DB instance for health check").Err(err).Log()
		return HealthCheck{Status: statusUnhealthy, Message: "Failed to get database instance"}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		logger.ErrorWithContext(ctx, "Database ping failed").Err(err).Log()
		return HealthCheck{Status: statusUnhealthy, Message: "Database ping failed: " + err.Error()}
	}

	stats := sqlDB.Stats()
	return HealthCheck{
		Status:  statusHealthy,
		Message: fmt.Sprintf("open: %d, idle: %d, in use: %d", stats.OpenConnections, stats.Idle, stats.InUse),
	}
}

func checkPinger(ctx context.Context, name string, p Pinger) HealthCheck {
	if p == nil {
		return HealthCheck{Status: statusDisabled}
	}
	if err := p.Ping(ctx); err != nil {
		logger.WarnWithContext(ctx, "Dependency ping failed").
			String("dependency", name).
			Err(err).
			Log()
		return HealthCheck{Status: statusUnhealthy, Message: err.Error()}
	}
	return HealthCheck{Status: statusHealthy}
}
