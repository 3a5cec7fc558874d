package resource

import (
	"context"
	"sync"

	"asset-loader/core/events"
)

// Progress is a per-resource progress report. Total is -1 when the size of
// the resource is not known up front.
type Progress struct {
	Loaded int64
	Total  int64
}

// Fetcher retrieves the raw bytes of a resource. Implementations call report
// as data arrives; report may be nil.
type Fetcher interface {
	Fetch(ctx context.Context, r *Resource, report func(Progress)) ([]byte, error)
}

// Resource is a single loadable unit: a name, a resolved URL, and the
// lifecycle around fetching its bytes. A Resource is loaded at most once;
// after completion Data holds the fetched bytes and Err records the failure,
// if any.
type Resource struct {
	// Name is the unique key of the resource within a batch.
	Name string
	// URL is the fully resolved address.
	URL string
	// Options are the construction parameters the resource was enqueued with.
	Options Options
	// Data holds the fetched bytes after successful completion.
	Data []byte
	// Err is set after completion when the fetch failed. It is never set
	// while the resource is still loading.
	Err error

	fetcher Fetcher

	mu       sync.Mutex
	loading  bool
	complete bool

	progressSig *events.Signal[Progress]
	completeSig *events.Signal[*Resource]
}

// New creates a resource ready to be loaded with the given fetcher.
func New(name, url string, opts Options, fetcher Fetcher) *Resource {
	return &Resource{
		Name:        name,
		URL:         url,
		Options:     opts,
		fetcher:     fetcher,
		progressSig: events.NewSignal[Progress](),
		completeSig: events.NewSignal[*Resource](),
	}
}

// OnProgress registers an observer for fetch progress reports.
func (r *Resource) OnProgress(fn func(Progress)) (off func()) {
	return r.progressSig.Subscribe(fn)
}

// OnComplete registers an observer invoked once the resource has finished
// loading, successfully or not.
func (r *Resource) OnComplete(fn func(*Resource)) (off func()) {
	return r.completeSig.Subscribe(fn)
}

// OnceComplete registers an observer for the next completion announcement
// only. It is dropped after firing.
func (r *Resource) OnceComplete(fn func(*Resource)) (off func()) {
	return r.completeSig.Once(fn)
}

// Load fetches the resource's bytes. It blocks until the fetch finishes,
// emits progress along the way and complete at the end. A resource fetches
// at most once: loading a completed resource does not refetch, it only
// re-announces completion to current observers. Loading while a fetch is in
// flight is a no-op.
func (r *Resource) Load(ctx context.Context) {
	r.mu.Lock()
	if r.loading {
		r.mu.Unlock()
		return
	}
	if r.complete {
		r.mu.Unlock()
		r.completeSig.Emit(r)
		return
	}
	r.loading = true
	r.mu.Unlock()

	data, err := r.fetcher.Fetch(ctx, r, r.progressSig.Emit)

	r.mu.Lock()
	r.Data = data
	r.Err = err
	r.loading = false
	r.complete = true
	r.mu.Unlock()

	r.completeSig.Emit(r)
}

// IsLoading reports whether a fetch is currently in flight.
func (r *Resource) IsLoading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// IsComplete reports whether the resource has finished loading.
func (r *Resource) IsComplete() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.complete
}
