// Package history persists finished load batches to MySQL.
//
// The Store implements batch.Recorder: every completed batch is written in
// one transaction as a load_batches row plus one load_batch_resources row
// per resource, failures included.
//
// The feature is optional; without a database connection it stays disabled
// and the loader runs without persistence.
//
// # HTTP Endpoints
//
//   - GET /history : Most recent batches (?limit=N, default 50).
//   - GET /history/:id : One batch with its per-resource outcomes.
package history
