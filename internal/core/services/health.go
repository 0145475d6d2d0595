package services

import (
	"context"
	"sync"
	"time"

	"github.com/polaris-labs/polaris-cli/internal/core/domain"
	"github.com/polaris-labs/polaris-cli/internal/core/ports/driven"
	"github.com/polaris-labs/polaris-cli/internal/core/ports/driving"
	"github.com/polaris-labs/polaris-cli/internal/logger"
)

// Ensure HealthAggregator implements the interface.
var _ driving.HealthService = (*HealthAggregator)(nil)

// HealthAggregator combines the backend's per-subsystem probes into one
// readiness signal. Lifecycle: unknown -> checking -> ready | degraded.
//
// Every completed poll overwrites the whole reading; probes are never
// merged with a previous poll, so no stale flag can linger. Concurrent
// polls are tolerated: the last one to complete wins.
type HealthAggregator struct {
	mu      sync.RWMutex
	gateway driven.Gateway

	state     domain.HealthState
	probes    domain.SubsystemHealth
	checkedAt time.Time
}

// NewHealthAggregator creates a health aggregator in the unknown state.
func NewHealthAggregator(gateway driven.Gateway) *HealthAggregator {
	return &HealthAggregator{
		gateway: gateway,
		state:   domain.HealthUnknown,
	}
}

// Poll fetches all probes and overwrites the aggregator state wholesale.
func (h *HealthAggregator) Poll(ctx context.Context) (domain.HealthSnapshot, error) {
	if h.gateway == nil {
		return h.Snapshot(), domain.ErrGatewayUnavailable
	}

	h.mu.Lock()
	h.state = domain.HealthChecking
	h.mu.Unlock()

	probes, err := h.gateway.RAGHealth(ctx)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.checkedAt = time.Now()
	if err != nil {
		// A failed poll is a full reading of its own: every probe false.
		h.probes = domain.SubsystemHealth{}
		h.state = domain.HealthDegraded
		logger.Warn("health: poll failed: %v", err)
		return h.snapshotLocked(), err
	}

	h.probes = probes
	if probes.OverallReady() {
		h.state = domain.HealthReady
	} else {
		h.state = domain.HealthDegraded
	}
	logger.Debug("health: poll complete, ready=%t", probes.OverallReady())
	return h.snapshotLocked(), nil
}

// Snapshot returns the last completed reading as a value copy.
func (h *HealthAggregator) Snapshot() domain.HealthSnapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snapshotLocked()
}

// snapshotLocked builds a snapshot (caller must hold at least a read lock).
func (h *HealthAggregator) snapshotLocked() domain.HealthSnapshot {
	return domain.HealthSnapshot{
		State:     h.state,
		Probes:    h.probes,
		CheckedAt: h.checkedAt,
	}
}
