// Package jobs runs background housekeeping.
package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// EntitlementSweeper is the operation the sweeper runs on each tick.
type EntitlementSweeper interface {
	SweepExpiredEntitlements(ctx context.Context) (int64, error)
}

// Manager periodically purges expired entitlements.
type Manager struct {
	sweeper  EntitlementSweeper
	interval time.Duration

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
	mu      sync.RWMutex
}

// NewManager creates a job manager that sweeps every interval.
func NewManager(sweeper EntitlementSweeper, interval time.Duration) *Manager {
	return &Manager{sweeper: sweeper, interval: interval}
}

// Start begins background processing. It is a no-op when already running.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		slog.Warn("job manager is already running")
		return
	}

	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.running = true
	slog.Info("starting job manager", "sweep_interval", m.interval.String())

	m.wg.Add(1)
	go m.runPeriodicSweep(m.ctx)
}

// Stop cancels the running jobs and waits for them to finish.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	m.cancel()
	m.running = false
	m.wg.Wait()
	slog.Info("job manager stopped")
}

// IsRunning reports whether the manager is running.
func (m *Manager) IsRunning() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.running
}

func (m *Manager) runPeriodicSweep(ctx context.Context) {
	defer m.wg.Done()

	m.sweep(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.sweep(ctx)
		}
	}
}

func (m *Manager) sweep(ctx context.Context) {
	n, err := m.sweeper.SweepExpiredEntitlements(ctx)
	if err != nil {
		if ctx.Err() == nil {
			slog.Error("entitlement sweep failed", "error", err)
		}
		return
	}
	if n > 0 {
		slog.Info("expired entitlements removed", "count", n)
	}
}
