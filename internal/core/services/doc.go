// Package services implements the client-side orchestration engine: the
// chat orchestrator, document pipeline, search controller, health
// aggregator and client roster.
//
// Each controller owns exactly one piece of state (transcript, document
// list, result set, health reading, roster) behind a narrow mutation API.
// Accessors return value copies, never live references, so cross-controller
// reads are snapshots taken at dispatch time. All network traffic flows
// through the driven.Gateway port; failures arrive pre-classified and are
// converted into terminal state rather than propagated as exceptions.
package services
