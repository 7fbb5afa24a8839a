// Package store provides SQLite-backed storage for multitrack playback sessions.
//
// The store is an append-only log with:
//   - Sessions: one row per run of a timeline (UUIDv7 id, aggregate stats)
//   - Rounds: one row per completed round, content-addressed by digest
//   - Pulls: one row per track pulled within a round
//
// # Ordering
//
// All ordering uses the round seq, never timestamps. Every query includes
// an explicit ORDER BY so reads are identical across runs.
//
// # Idempotency
//
// Rounds are keyed by (session_id, seq); writing the same round twice is a
// no-op and reports inserted=false.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
