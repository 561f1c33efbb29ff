package utils

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	healthStatusOK       = "ok"
	healthStatusDegraded = "degraded"

	healthProbeTimeout = 2 * time.Second
)

type ComponentHealth struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type HealthStatus struct {
	Status     string            `json:"status"`
	CheckedAt  time.Time         `json:"checked_at"`
	Components []ComponentHealth `json:"components"`
}

func (s HealthStatus) Healthy() bool {
	return s.Status == healthStatusOK
}

// HealthChecker probes the stores the API cannot serve without.
type HealthChecker struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    healthStatusOK,
		CheckedAt: time.Now().UTC(),
	}

	if h.DB != nil {
		status.add(h.probePostgres(ctx))
	}
	if h.Redis != nil {
		status.add(h.probeRedis(ctx))
	}
	return status
}

func (s *HealthStatus) add(c ComponentHealth) {
	if c.Error != "" {
		s.Status = healthStatusDegraded
	}
	s.Components = append(s.Components, c)
}

func (h *HealthChecker) probePostgres(ctx context.Context) ComponentHealth {
	c := ComponentHealth{Name: "postgres", Status: "up"}

	ctx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		c.Status = "down"
		c.Error = err.Error()
	}
	return c
}

func (h *HealthChecker) probeRedis(ctx context.Context) ComponentHealth {
	c := ComponentHealth{Name: "redis", Status: "up"}

	ctx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	if err := h.Redis.Ping(ctx).Err(); err != nil {
		c.Status = "down"
		c.Error = err.Error()
	}
	return c
}
