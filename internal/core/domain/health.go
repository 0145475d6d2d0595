package domain

import "time"

// HealthState is the aggregator's lifecycle state.
type HealthState string

const (
	// HealthUnknown is the initial state before any poll completes.
	HealthUnknown HealthState = "unknown"

	// HealthChecking means a poll is in flight.
	HealthChecking HealthState = "checking"

	// HealthReady means every probe reported true on the last poll.
	HealthReady HealthState = "ready"

	// HealthDegraded means at least one probe reported false.
	HealthDegraded HealthState = "degraded"
)

// SubsystemHealth holds the boolean readiness probes for each backend
// subsystem. A poll always overwrites the whole struct; probes are never
// merged field-by-field with a previous reading.
type SubsystemHealth struct {
	// ChatInference is the inference service probe.
	ChatInference bool

	// KeyConfigured reports whether backend credentials are configured.
	KeyConfigured bool

	// EmbeddingService is the embedding/vectorization service probe.
	EmbeddingService bool

	// SearchIndex is the search index probe.
	SearchIndex bool
}

// OverallReady is true only if every individual probe is true.
func (h SubsystemHealth) OverallReady() bool {
	return h.ChatInference && h.KeyConfigured && h.EmbeddingService && h.SearchIndex
}

// HealthSnapshot is an immutable reading of the aggregator, safe to hold
// across a chat turn. Value semantics: a health change mid-turn never
// retroactively changes which endpoint a pending turn uses.
type HealthSnapshot struct {
	// State is the aggregator state at snapshot time.
	State HealthState

	// Probes is the last completed per-subsystem reading.
	Probes SubsystemHealth

	// CheckedAt is when the last poll completed. Zero if none has.
	CheckedAt time.Time
}

// Ready is true when the last completed poll saw every probe healthy.
func (s HealthSnapshot) Ready() bool {
	return s.State == HealthReady
}
