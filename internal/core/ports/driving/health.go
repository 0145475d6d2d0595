package driving

import (
	"context"

	"github.com/polaris-labs/polaris-cli/internal/core/domain"
)

// HealthService aggregates per-subsystem backend probes into one readiness
// signal, on a lifecycle independent of user action.
type HealthService interface {
	// Poll fetches all probes and overwrites the aggregator state
	// wholesale. Idempotent and safe to invoke concurrently with another
	// in-flight poll; the last completed poll wins.
	Poll(ctx context.Context) (domain.HealthSnapshot, error)

	// Snapshot returns the last completed reading as a value copy, safe to
	// hold for the duration of a chat turn.
	Snapshot() domain.HealthSnapshot
}
