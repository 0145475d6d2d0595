// Package domain defines the core business entities for the POLARIS client.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Message: One entry in the conversation transcript
//   - UploadedDocument: A server-side document reflected on the client
//   - SearchResult: A single semantic search hit
//   - SubsystemHealth: Per-probe backend readiness
//   - Client: A wealth-planning client record
//   - IndexStats: Search index and database statistics
//
// All list state derived from these types is a cache of server truth: the
// client reflects what the backend reports and never invents or reorders it.
package domain
