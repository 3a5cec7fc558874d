// Package storage provides the object storage client used for
// storage-backed resources.
//
// It wraps the Minio SDK behind a small Client interface covering the
// read-side operations the loader needs (bucket check, stat, download), so
// fetchers and tests can depend on the interface rather than the SDK client.
//
// # Configuration
//
// The package supports Minio and any S3-compatible endpoint via Config:
// endpoint, credentials, bucket, region, SSL, and a connection timeout.
//
// # Mocks
//
// A testify-based mock of Client lives under storage/mocks for use in
// fetcher and feature tests.
package storage
