// Package batch exposes loader runs over HTTP.
//
// A client submits a list of named, URL-addressed resources; the service
// builds a fresh loader, enqueues everything, and starts a pass in parallel
// or serial mode. Runs are identified by a UUID and queried for live
// progress, state, and per-resource results.
//
// # HTTP Endpoints
//
//   - POST /batches : Submit a batch and start loading. Returns 202 with the
//     initial status.
//   - GET /batches : List all known runs, most recent first.
//   - GET /batches/:id : Status of one run, including results once complete.
//
// Finished runs are handed to the optional Recorder (the history feature)
// for persistence.
package batch
