package utils

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Redis     bool      `json:"redis"`
	Remote    bool      `json:"remote"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Pinger reports whether a dependency is reachable.
type Pinger func(ctx context.Context) error

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// CheckHealth pings every dependency once and stores the snapshot. A nil
// pinger counts as healthy.
func CheckHealth(ctx context.Context, redisPing, remotePing Pinger) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	status := HealthStatus{
		Redis:     redisPing == nil || redisPing(ctx) == nil,
		Remote:    remotePing == nil || remotePing(ctx) == nil,
		CheckedAt: time.Now(),
	}

	mu.Lock()
	currentHealth = status
	mu.Unlock()
	return status
}

// StartHealthMonitor runs CheckHealth on the cron spec (e.g. "@every 30s").
// The caller stops the returned scheduler on shutdown.
func StartHealthMonitor(spec string, redisPing, remotePing Pinger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		status := CheckHealth(context.Background(), redisPing, remotePing)
		if !status.Redis || !status.Remote {
			GetLogger().Warn("Health check failed",
				zap.Bool("redis", status.Redis),
				zap.Bool("remote", status.Remote))
		}
	})
	if err != nil {
		return nil, err
	}
	CheckHealth(context.Background(), redisPing, remotePing)
	c.Start()
	return c, nil
}
