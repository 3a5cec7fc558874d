package resource

// LoadType selects the mechanism used to fetch a resource's bytes.
type LoadType int

const (
	// LoadTypeXHR fetches over HTTP. This is the default.
	LoadTypeXHR LoadType = iota + 1
	// LoadTypeStorage fetches from the configured object storage bucket.
	LoadTypeStorage
)

// XhrResponseType hints how the fetched response body should be treated.
// The loader passes it through untouched; it is carried for consumers
// that post-process resources in middleware.
type XhrResponseType string

const (
	XhrTypeDefault XhrResponseType = "text"
	XhrTypeText    XhrResponseType = "text"
	XhrTypeJSON    XhrResponseType = "json"
	XhrTypeBuffer  XhrResponseType = "arraybuffer"
	XhrTypeBlob    XhrResponseType = "blob"
	XhrTypeDocument XhrResponseType = "document"
)

// ReadyState mirrors the coarse lifecycle of a request.
type ReadyState int

const (
	ReadyStateUnsent ReadyState = iota
	ReadyStateOpened
	ReadyStateHeadersReceived
	ReadyStateLoading
	ReadyStateDone
)

// Options are per-resource construction parameters. They are opaque to the
// loader itself and only interpreted by the selected fetcher.
type Options struct {
	// CrossOrigin requests the resource across origins.
	CrossOrigin bool
	// LoadType selects the fetch mechanism. Zero value means LoadTypeXHR.
	LoadType LoadType
	// XhrType hints the expected response type.
	XhrType XhrResponseType
}
