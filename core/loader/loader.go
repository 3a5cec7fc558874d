package loader

import (
	"context"
	"fmt"
	"sync"

	"asset-loader/core/events"
	"asset-loader/core/resource"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Re-exported resource constants so loader consumers do not need to import
// the resource package for the common construction options.
const (
	LoadTypeXHR     = resource.LoadTypeXHR
	LoadTypeStorage = resource.LoadTypeStorage

	XhrTypeDefault = resource.XhrTypeDefault
	XhrTypeText    = resource.XhrTypeText
	XhrTypeJSON    = resource.XhrTypeJSON
	XhrTypeBuffer  = resource.XhrTypeBuffer
)

// ErrorEvent is the payload of the loader's error event.
type ErrorEvent struct {
	Err      error
	Resource *resource.Resource
}

// Config holds the construction parameters of a Loader.
type Config struct {
	// BaseURL is prepended to every enqueued url.
	BaseURL string
	// Concurrency caps how many resources load at once in parallel mode.
	// 0 means unlimited.
	Concurrency int64
	// Fetchers maps load types to fetchers. LoadTypeXHR falls back to a
	// default HTTP fetcher when absent.
	Fetchers map[resource.LoadType]resource.Fetcher
}

// Loader drives a queue of resources through a load pass: before-middleware,
// fetch, event emission, after-middleware, and aggregate completion. Passes
// run either in parallel or strictly serially in queue order.
//
// All state is guarded by a single mutex; events are emitted outside of it.
type Loader struct {
	baseURL  string
	log      *zap.Logger
	fetchers map[resource.LoadType]resource.Fetcher
	sem      *semaphore.Weighted

	mu        sync.Mutex
	queue     []*resource.Resource
	processed []*resource.Resource
	progress  float64
	chunk     float64
	loading   bool
	active    int
	done      chan struct{}
	passCtx   context.Context
	before    []Middleware
	after     []Middleware

	startSig    *events.Signal[struct{}]
	progressSig *events.Signal[*resource.Resource]
	loadSig     *events.Signal[*resource.Resource]
	errorSig    *events.Signal[ErrorEvent]
	completeSig *events.Signal[map[string]*resource.Resource]
}

// New creates an idle loader. A nil logger disables logging.
func New(cfg Config, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}

	fetchers := make(map[resource.LoadType]resource.Fetcher, len(cfg.Fetchers)+1)
	for lt, f := range cfg.Fetchers {
		fetchers[lt] = f
	}
	if _, ok := fetchers[resource.LoadTypeXHR]; !ok {
		fetchers[resource.LoadTypeXHR] = resource.NewHTTPFetcher(nil)
	}

	var sem *semaphore.Weighted
	if cfg.Concurrency > 0 {
		sem = semaphore.NewWeighted(cfg.Concurrency)
	}

	return &Loader{
		baseURL:     cfg.BaseURL,
		log:         log,
		fetchers:    fetchers,
		sem:         sem,
		startSig:    events.NewSignal[struct{}](),
		progressSig: events.NewSignal[*resource.Resource](),
		loadSig:     events.NewSignal[*resource.Resource](),
		errorSig:    events.NewSignal[ErrorEvent](),
		completeSig: events.NewSignal[map[string]*resource.Resource](),
	}
}

// OnStart registers an observer for the start of a load pass.
func (l *Loader) OnStart(fn func()) (off func()) {
	return l.startSig.Subscribe(func(struct{}) { fn() })
}

// OnProgress registers an observer invoked on every progress update, both
// per-resource streaming updates and completion increments.
func (l *Loader) OnProgress(fn func(*resource.Resource)) (off func()) {
	return l.progressSig.Subscribe(fn)
}

// OnLoad registers an observer invoked for every successfully loaded resource.
func (l *Loader) OnLoad(fn func(*resource.Resource)) (off func()) {
	return l.loadSig.Subscribe(fn)
}

// OnError registers an observer invoked for every failed resource. A failed
// resource never also triggers OnLoad.
func (l *Loader) OnError(fn func(error, *resource.Resource)) (off func()) {
	return l.errorSig.Subscribe(func(ev ErrorEvent) { fn(ev.Err, ev.Resource) })
}

// OnComplete registers an observer invoked once per load pass with the
// mapping from resource name to resource, failures included.
func (l *Loader) OnComplete(fn func(map[string]*resource.Resource)) (off func()) {
	return l.completeSig.Subscribe(fn)
}

// Add enqueues a resource. The address is baseURL + url. When a load pass is
// active the resource is dispatched immediately: it does not change the
// already computed progress chunk, but the pass's completion waits for it and
// the completion map includes it. Returns the loader for chaining.
func (l *Loader) Add(name, url string, opts resource.Options) *Loader {
	res := resource.New(name, l.baseURL+url, opts, l.fetcherFor(opts.LoadType))

	l.mu.Lock()
	if l.loading {
		l.active++
		ctx := l.passCtx
		l.mu.Unlock()

		l.log.Debug("dispatching late resource", zap.String("name", name))
		go l.process(ctx, res, l.finishUnit)
		return l
	}
	l.queue = append(l.queue, res)
	l.mu.Unlock()
	return l
}

// Before appends fn to the chain run on each resource before its load.
// Registration order is execution order; there is no removal.
func (l *Loader) Before(fn Middleware) *Loader {
	l.mu.Lock()
	l.before = append(l.before, fn)
	l.mu.Unlock()
	return l
}

// After appends fn to the chain run on each resource after its load.
func (l *Loader) After(fn Middleware) *Loader {
	l.mu.Lock()
	l.after = append(l.after, fn)
	l.mu.Unlock()
	return l
}

// Reset clears the queue and progress so the loader can run a fresh pass.
// A reset during an active pass is ignored.
func (l *Loader) Reset() {
	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		l.log.Warn("reset ignored: load pass in progress")
		return
	}
	l.queue = nil
	l.processed = nil
	l.progress = 0
	l.chunk = 0
	l.mu.Unlock()
}

// Load starts a load pass over the queued resources and returns immediately;
// completion is observed through OnComplete, the optional onComplete
// callback, or Wait. With parallel true all resources load concurrently
// (bounded by the configured concurrency cap); otherwise they are processed
// strictly one at a time in queue order, each resource's after-middleware
// finishing before the next resource begins.
//
// An empty queue completes immediately with progress 100 and an empty map.
// Calling Load while a pass is active is ignored.
func (l *Loader) Load(ctx context.Context, parallel bool, onComplete func(map[string]*resource.Resource)) *Loader {
	if onComplete != nil {
		l.completeSig.Once(onComplete)
	}

	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		l.log.Warn("load ignored: pass already in progress")
		return l
	}

	batch := make([]*resource.Resource, len(l.queue))
	copy(batch, l.queue)

	l.loading = true
	l.passCtx = ctx
	l.processed = nil
	l.progress = 0
	l.chunk = 0
	if len(batch) > 0 {
		l.chunk = 100 / float64(len(batch))
	}
	l.active = 1 // the dispatcher itself counts as a unit
	l.done = make(chan struct{})
	l.mu.Unlock()

	l.log.Info("starting load pass",
		zap.Int("resources", len(batch)),
		zap.Bool("parallel", parallel),
	)
	l.startSig.Emit(struct{}{})

	if parallel {
		for _, res := range batch {
			l.mu.Lock()
			l.active++
			l.mu.Unlock()

			go func(res *resource.Resource) {
				if l.sem != nil && l.sem.Acquire(ctx, 1) == nil {
					defer l.sem.Release(1)
				}
				l.process(ctx, res, l.finishUnit)
			}(res)
		}
		l.finishUnit()
		return l
	}

	go func() {
		for _, res := range batch {
			step := make(chan struct{})
			l.process(ctx, res, func() { close(step) })
			<-step
		}
		l.finishUnit()
	}()
	return l
}

// Wait blocks until the most recently started load pass completes. It
// returns immediately when no pass has ever been started.
func (l *Loader) Wait(ctx context.Context) error {
	l.mu.Lock()
	done := l.done
	l.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Progress returns the aggregate progress of the current or last pass,
// in [0, 100].
func (l *Loader) Progress() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.progress
}

// IsLoading reports whether a load pass is active.
func (l *Loader) IsLoading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// QueueLen returns the number of queued resources.
func (l *Loader) QueueLen() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// process runs the full per-resource procedure: before-middleware, fetch
// with progress pass-through, completion accounting and events, then
// after-middleware, then next.
func (l *Loader) process(ctx context.Context, res *resource.Resource, next func()) {
	runMiddleware(l, res, l.beforeChain(), func(res *resource.Resource) {
		offProgress := res.OnProgress(func(resource.Progress) { l.progressSig.Emit(res) })
		res.OnceComplete(func(res *resource.Resource) {
			offProgress()
			l.onResourceComplete(res, next)
		})
		res.Load(ctx)
	})
}

func (l *Loader) onResourceComplete(res *resource.Resource, next func()) {
	l.mu.Lock()
	l.progress += l.chunk
	if l.progress > 100 {
		l.progress = 100
	}
	l.processed = append(l.processed, res)
	l.mu.Unlock()

	l.progressSig.Emit(res)
	if res.Err != nil {
		l.log.Warn("resource failed",
			zap.String("name", res.Name),
			zap.String("url", res.URL),
			zap.Error(res.Err),
		)
		l.errorSig.Emit(ErrorEvent{Err: res.Err, Resource: res})
	} else {
		l.log.Debug("resource loaded",
			zap.String("name", res.Name),
			zap.Int("bytes", len(res.Data)),
		)
		l.loadSig.Emit(res)
	}

	runMiddleware(l, res, l.afterChain(), func(*resource.Resource) { next() })
}

// finishUnit retires one unit of the active pass (the dispatcher or a
// single resource). The last unit finalizes the pass and emits complete.
func (l *Loader) finishUnit() {
	l.mu.Lock()
	l.active--
	if l.active > 0 {
		l.mu.Unlock()
		return
	}

	results := make(map[string]*resource.Resource, len(l.processed))
	for _, res := range l.processed {
		results[res.Name] = res
	}
	l.progress = 100
	l.loading = false
	done := l.done
	l.mu.Unlock()

	l.log.Info("load pass complete", zap.Int("resources", len(results)))
	l.completeSig.Emit(results)
	close(done)
}

func (l *Loader) beforeChain() []Middleware {
	l.mu.Lock()
	defer l.mu.Unlock()
	fns := make([]Middleware, len(l.before))
	copy(fns, l.before)
	return fns
}

func (l *Loader) afterChain() []Middleware {
	l.mu.Lock()
	defer l.mu.Unlock()
	fns := make([]Middleware, len(l.after))
	copy(fns, l.after)
	return fns
}

func (l *Loader) fetcherFor(lt resource.LoadType) resource.Fetcher {
	if lt == 0 {
		lt = resource.LoadTypeXHR
	}
	if f, ok := l.fetchers[lt]; ok {
		return f
	}
	return unavailableFetcher{lt: lt}
}

// unavailableFetcher stands in for a load type with no configured fetcher,
// so the failure surfaces through the normal error event at load time.
type unavailableFetcher struct {
	lt resource.LoadType
}

func (f unavailableFetcher) Fetch(context.Context, *resource.Resource, func(resource.Progress)) ([]byte, error) {
	return nil, fmt.Errorf("no fetcher configured for load type %d", f.lt)
}
