package router

import (
	"context"
	"net/http"
	"strings"
)

// Handler is a unit of request-processing logic. It receives the request
// context (carrying cancellation from the hosting environment), the
// request itself, and the router's shared state, and produces either a
// response or an error.
//
// Captured path parameters are read from the request via Vars or VarGet.
type Handler[State any] func(ctx context.Context, req *http.Request, state State) (*Response, error)

// route binds one HTTP method, one compiled Pattern, and one Handler.
// Routes are created at registration time and immutable thereafter.
type route[State any] struct {
	method  string
	pattern *Pattern
	handler Handler[State]
}

// Router matches incoming requests against an ordered list of routes and
// dispatches to the first route whose method and pattern both match,
// passing a shared application state to the invoked handler.
//
// The route list is append-only: registration must complete before the
// router starts serving. Once serving, Run is read-only over the route
// list and safe to call concurrently; concurrent registration during
// serving is not supported.
type Router[State any] struct {
	state  State
	routes []route[State]
}

// NewWithState creates a Router with a shared State. The same state value
// is passed to every request handler; the router never copies, resets,
// or mutates it. Instantiate State as a pointer type when handlers must
// observe a single instance, and give the pointed-to value its own
// internal synchronization if handlers mutate it.
func NewWithState[State any](state State) *Router[State] {
	return &Router[State]{state: state}
}

// Handle appends a route for the given HTTP method and pattern to the
// end of the route list and returns the router for chaining.
//
// No validation is performed against already-registered routes: a
// duplicate or shadowed pattern registers fine and is simply never
// reached, since dispatch is strictly first-match-wins in registration
// order. Keeping registration unconditional is deliberate; route-table
// validation is left to the caller.
//
// Handle panics if pattern or handler is nil. Both are programmer
// errors in a static route table, the same class of mistake MustPath
// panics on.
func (r *Router[State]) Handle(method string, pattern *Pattern, handler Handler[State]) *Router[State] {
	if pattern == nil {
		panic("router: nil pattern")
	}
	if handler == nil {
		panic("router: nil handler")
	}
	r.routes = append(r.routes, route[State]{
		method:  strings.ToUpper(method),
		pattern: pattern,
		handler: handler,
	})
	return r
}

// Head registers a handler for HEAD requests matching the pattern.
func (r *Router[State]) Head(pattern *Pattern, handler Handler[State]) *Router[State] {
	return r.Handle(http.MethodHead, pattern, handler)
}

// Get registers a handler for GET requests matching the pattern.
func (r *Router[State]) Get(pattern *Pattern, handler Handler[State]) *Router[State] {
	return r.Handle(http.MethodGet, pattern, handler)
}

// Post registers a handler for POST requests matching the pattern.
func (r *Router[State]) Post(pattern *Pattern, handler Handler[State]) *Router[State] {
	return r.Handle(http.MethodPost, pattern, handler)
}

// Put registers a handler for PUT requests matching the pattern.
func (r *Router[State]) Put(pattern *Pattern, handler Handler[State]) *Router[State] {
	return r.Handle(http.MethodPut, pattern, handler)
}

// Patch registers a handler for PATCH requests matching the pattern.
func (r *Router[State]) Patch(pattern *Pattern, handler Handler[State]) *Router[State] {
	return r.Handle(http.MethodPatch, pattern, handler)
}

// Delete registers a handler for DELETE requests matching the pattern.
func (r *Router[State]) Delete(pattern *Pattern, handler Handler[State]) *Router[State] {
	return r.Handle(http.MethodDelete, pattern, handler)
}

// Options registers a handler for OPTIONS requests matching the pattern.
func (r *Router[State]) Options(pattern *Pattern, handler Handler[State]) *Router[State] {
	return r.Handle(http.MethodOptions, pattern, handler)
}

// Connect registers a handler for CONNECT requests matching the pattern.
func (r *Router[State]) Connect(pattern *Pattern, handler Handler[State]) *Router[State] {
	return r.Handle(http.MethodConnect, pattern, handler)
}

// Trace registers a handler for TRACE requests matching the pattern.
func (r *Router[State]) Trace(pattern *Pattern, handler Handler[State]) *Router[State] {
	return r.Handle(http.MethodTrace, pattern, handler)
}

// Run dispatches a single request: it scans the route list in
// registration order, skips routes whose method differs from the
// request's (the cheap check always runs before pattern evaluation),
// and invokes the handler of the first route whose pattern matches the
// request path. The handler's result is returned verbatim; no fallback
// to later routes and no error recovery is attempted.
//
// When no route matches, Run returns a synthesized 404 response with
// the body "page not found". That is a defined outcome, not an error.
//
// A request without a parsed URL fails with ErrNoURL before any
// matching runs; such a failure propagates to the caller rather than
// being folded into the 404 outcome.
func (r *Router[State]) Run(ctx context.Context, req *http.Request) (*Response, error) {
	if req == nil || req.URL == nil {
		return nil, ErrNoURL
	}

	for i := range r.routes {
		rt := &r.routes[i]
		if rt.method != req.Method {
			continue
		}

		vars, ok := rt.pattern.matchVars(req.URL.Path)
		if !ok {
			continue
		}

		return rt.handler(ctx, withRoute(req, rt.pattern.template, vars), r.state)
	}

	return Error("page not found", http.StatusNotFound), nil
}

// RouteInfo describes a registered route for introspection, for example
// documentation generation.
type RouteInfo struct {
	// Method is the HTTP method the route was registered under.
	Method string

	// Template is the path template of the route's pattern.
	Template string

	// Params are the named parameters of the route's pattern.
	Params []Param
}

// Routes returns a snapshot of the registered routes in registration
// (that is, match-priority) order.
func (r *Router[State]) Routes() []RouteInfo {
	out := make([]RouteInfo, 0, len(r.routes))
	for i := range r.routes {
		rt := &r.routes[i]
		out = append(out, RouteInfo{
			Method:   rt.method,
			Template: rt.pattern.template,
			Params:   rt.pattern.Params(),
		})
	}
	return out
}
