package loader

import "asset-loader/core/resource"

// Middleware is a side-effecting hook invoked once per resource, either
// before or after its load. The loader is passed explicitly rather than
// captured as a receiver so middleware can read loader state without hidden
// coupling. A middleware must call next exactly once to advance the
// pipeline; next may be called from another goroutine. Calling next twice,
// or never, is the middleware author's bug and is not guarded against.
type Middleware func(l *Loader, res *resource.Resource, next func())

// runMiddleware executes fns strictly in registration order and invokes
// onDone after the last one has advanced. An empty list completes
// immediately.
func runMiddleware(l *Loader, res *resource.Resource, fns []Middleware, onDone func(*resource.Resource)) {
	var step func(i int)
	step = func(i int) {
		if i >= len(fns) {
			onDone(res)
			return
		}
		fns[i](l, res, func() { step(i + 1) })
	}
	step(0)
}
