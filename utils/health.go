package utils

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// HealthCheck checks one backing service.
type HealthCheck func(ctx context.Context) error

// HealthStatus represents current status of backing services.
type HealthStatus struct {
	Status    string          `json:"status"`
	Checks    map[string]bool `json:"checks,omitempty"`
	CheckedAt *time.Time      `json:"checkedAt,omitempty"`
}

// HealthMonitor runs health checks periodically and keeps the latest snapshot.
type HealthMonitor struct {
	services map[string]HealthCheck
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger

	mu      sync.RWMutex
	current HealthStatus
}

func NewHealthMonitor(services map[string]HealthCheck, interval time.Duration, logger *zap.Logger) *HealthMonitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthMonitor{
		services: services,
		interval: interval,
		timeout:  5 * time.Second,
		logger:   logger,
		current:  HealthStatus{Status: "ok"},
	}
}

// Status returns latest stored health snapshot.
func (m *HealthMonitor) Status() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// CheckNow runs every check once and stores the result.
func (m *HealthMonitor) CheckNow(ctx context.Context) HealthStatus {
	checks := make(map[string]bool, len(m.services))
	status := "ok"
	for name, check := range m.services {
		pctx, cancel := context.WithTimeout(ctx, m.timeout)
		err := check(pctx)
		cancel()
		checks[name] = err == nil
		if err != nil {
			status = "degraded"
			m.logger.Warn("Health check failed", zap.String("service", name), zap.Error(err))
		}
	}
	now := time.Now().UTC()
	snapshot := HealthStatus{Status: status, Checks: checks, CheckedAt: &now}

	m.mu.Lock()
	m.current = snapshot
	m.mu.Unlock()
	return snapshot
}

// Start checks immediately and then every interval until ctx is cancelled.
func (m *HealthMonitor) Start(ctx context.Context) {
	go func() {
		m.CheckNow(ctx)
		if m.interval <= 0 {
			return
		}
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.CheckNow(ctx)
			}
		}
	}()
}
