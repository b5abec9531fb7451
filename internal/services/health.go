package services

import (
	"context"
	"fmt"
	"time"

	"github.com/localnerve/starwars-api/internal/config"
	"github.com/localnerve/starwars-api/internal/database"
	"github.com/localnerve/starwars-api/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// Healthy reports whether every check passed
func (r HealthCheckResult) Healthy() bool {
	return r.Status == "healthy"
}

// HealthCheck performs a comprehensive health check of the service
func HealthCheck(ctx context.Context, cfg *config.Config, db *gorm.DB, log *logrus.Logger) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	fail := func(state, key string, err error, format string) {
		result.Status = "unhealthy"
		result.Database = state
		result.Details[key] = err.Error()
		result.ErrorMessage = fmt.Sprintf(format, err)
		log.WithError(err).Warn("Health check failed - " + key)
	}

	target, err := database.ParseURL(cfg.DatabaseURL)
	if err != nil {
		fail("misconfigured", "database_url_error", err, "Database URL invalid: %v")
		return result
	}
	result.Details["database_type"] = target.Driver
	result.Details["database_name"] = target.Name

	// Network databases get a TCP probe first so an unreachable host is reported as such
	if target.Host != "" {
		if err := utils.PingService(target.Host, 1500*time.Millisecond); err != nil {
			fail("unreachable", "database_host_error", err, "Database host unreachable: %v")
			return result
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := database.Ping(pingCtx, db); err != nil {
		fail("unreachable", "database_ping_error", err, "Database ping failed: %v")
		return result
	}

	result.Database = "ok"
	log.Debug("Health check passed - all systems operational")
	return result
}
