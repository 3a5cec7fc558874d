// Package loader provides the queued resource loading system.
//
// A Loader accepts named, URL-addressed resources, loads them in parallel or
// strictly serially, and reports aggregate progress and completion to
// registered observers.
//
// # Lifecycle
//
// Callers enqueue resources with Add, then start a pass with Load. The
// loader computes each resource's progress share once at pass start, emits
// start, and runs every resource through the same procedure:
//
//	before-middleware -> fetch -> progress + (load | error) events -> after-middleware
//
// When every resource has finished, success or failure alike, the loader
// emits complete with the name-to-resource mapping. A resource failure never
// aborts the pass.
//
// # Observers
//
// Events are exposed as explicit registrations (OnStart, OnProgress, OnLoad,
// OnError, OnComplete), each returning an unsubscribe function. Multiple
// observers fan out in registration order.
//
// # Middleware
//
// Before and After register per-resource hooks. Each hook receives the
// loader, the resource, and an advance function it must call exactly once;
// pipelines therefore compose asynchronous work without blocking the loader.
//
// # Usage
//
//	l := loader.New(loader.Config{BaseURL: "https://cdn.example.com"}, logg)
//	l.Add("logo", "/img/logo.png", resource.Options{}).
//	    Add("config", "/app.json", resource.Options{XhrType: resource.XhrTypeJSON})
//	l.Load(ctx, true, func(res map[string]*resource.Resource) {
//	    logg.Info("done", zap.Int("count", len(res)))
//	})
//	_ = l.Wait(ctx)
package loader
