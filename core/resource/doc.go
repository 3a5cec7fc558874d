// Package resource defines the loadable unit handled by the loader.
//
// A Resource couples identity (name), address (URL) and construction options
// with a load lifecycle: Load fetches the bytes through a Fetcher, emitting
// progress reports while data arrives and a complete notification at the end.
// Failures never propagate as panics or returned errors from Load; they are
// recorded on the resource's Err field and observable through the complete
// event.
//
// # Fetchers
//
// Two fetchers are provided:
//
//   - HTTPFetcher: plain HTTP GET with streamed progress (LoadTypeXHR).
//   - StorageFetcher: object storage download via the storage client
//     (LoadTypeStorage), using the resource URL as object key.
//
// Custom fetchers only need to implement the Fetcher interface.
package resource
