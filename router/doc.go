// Package router implements a minimal HTTP request router: routes are
// registered per HTTP method with compiled path patterns and dispatched
// first-match-wins in registration order, with every invoked handler
// receiving a shared application state value.
//
// # Router
//
// A router is built once, before serving, via a chained registration
// surface, and then dispatches many requests:
//
//	type ServerState struct {
//		Greeting string
//	}
//
//	func getHello(_ context.Context, _ *http.Request, state *ServerState) (*router.Response, error) {
//		return router.OK(state.Greeting), nil
//	}
//
//	r := router.NewWithState(&ServerState{Greeting: "hello"}).
//		Get(router.MustPath("/hello"), getHello).
//		Get(router.MustPath("/users/:id"), getUser)
//
//	resp, err := r.Run(req.Context(), req)
//
// Dispatch scans the route list strictly in registration order. A
// route's method is compared before its pattern is evaluated; the first
// route where both match wins, and later routes are never consulted.
// Registering two routes with the same method and pattern is allowed:
// only the first is ever reachable. When nothing matches, Run returns a
// 404 response with the body "page not found".
//
// # Path Patterns
//
// Patterns are compiled ahead of time with Path or MustPath. Literal
// segments match verbatim; a ":name" segment matches exactly one
// non-empty path segment and binds its value:
//
//	router.MustPath("/hello")
//	router.MustPath("/users/:id")
//	router.MustPath("/files/*rest")
//
// A parameter may carry a constraint, either a named macro or a raw
// regular expression:
//
//	router.MustPath("/users/:id(int)")
//	router.MustPath("/posts/:slug(slug)")
//	router.MustPath("/builds/:sha([0-9a-f]{7,40})")
//
// Available macros:
//
//	uuid     - RFC 4122 UUID (e.g. 550e8400-e29b-41d4-a716-446655440000)
//	int      - unsigned integer (e.g. 42)
//	float    - decimal number (e.g. 3.14, 42, .5)
//	slug     - URL-safe slug (e.g. my-post-title)
//	alpha    - alphabetic characters (e.g. hello)
//	alphanum - alphanumeric characters (e.g. abc123)
//	date     - ISO 8601 date (e.g. 2024-01-15)
//	hex      - hexadecimal string (e.g. deadBEEF)
//
// A name that is not a known macro is treated as a raw regular
// expression. Malformed templates fail at compile time, never at
// request time.
//
// Captured values are read inside handlers via request introspection:
//
//	func getUser(_ context.Context, req *http.Request, state *ServerState) (*router.Response, error) {
//		id, _ := router.VarGet(req, "id")
//		...
//	}
//
// # Shared State
//
// The state value given to NewWithState is handed, unchanged, to every
// handler invocation for the lifetime of the router. The router never
// copies or mutates it. Use a pointer type so all concurrent handlers
// observe the same instance, and guard mutable fields with the state's
// own synchronization:
//
//	type ServerState struct {
//		mu     sync.Mutex
//		visits int
//	}
//
// # Concurrency
//
// Registration is not synchronized against dispatch: finish building the
// route table before serving traffic. Once built, Run is safe to call
// concurrently from any number of goroutines, and patterns are safe to
// evaluate concurrently.
//
// # Errors
//
// Pattern compilation errors surface synchronously from Path. A request
// without a parsed URL fails Run with ErrNoURL. A handler's error is
// returned verbatim as Run's error: the router does not retry, fall back
// to later routes, log, or translate failures into 404 responses.
package router
