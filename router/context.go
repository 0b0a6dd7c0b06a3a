package router

import (
	"context"
	"net/http"
)

// routeContextKey is an unexported type for the single context key.
type routeContextKey struct{}

// ctxKey is the single context key used to store the matched route data.
var ctxKey = routeContextKey{}

// routeData holds the matched route template and captured parameters.
type routeData struct {
	template string
	vars     map[string]string
}

// Vars returns the path parameters captured for the current request, if
// any. It only returns values inside the handler of the matched route,
// because dispatch stores them in the request context.
func Vars(r *http.Request) map[string]string {
	if rd, ok := r.Context().Value(ctxKey).(*routeData); ok {
		return rd.vars
	}
	return nil
}

// VarGet returns the value of a single captured parameter by name, and a
// boolean indicating whether the parameter exists.
func VarGet(r *http.Request, name string) (string, bool) {
	if rd, ok := r.Context().Value(ctxKey).(*routeData); ok && rd.vars != nil {
		val, exists := rd.vars[name]
		return val, exists
	}
	return "", false
}

// MatchedTemplate returns the path template of the route that matched the
// current request, and whether a match was recorded at all. Parameters
// injected with SetVars alone do not count as a match: every template
// accepted by Path is non-empty, so an empty template means dispatch
// never ran.
func MatchedTemplate(r *http.Request) (string, bool) {
	if rd, ok := r.Context().Value(ctxKey).(*routeData); ok && rd.template != "" {
		return rd.template, true
	}
	return "", false
}

// SetVars sets the captured parameters for the given request, returning
// the modified request. This is intended for testing handlers in
// isolation, without running them through a Router.
func SetVars(r *http.Request, vars map[string]string) *http.Request {
	template := ""
	if rd, ok := r.Context().Value(ctxKey).(*routeData); ok {
		template = rd.template
	}
	return withRoute(r, template, vars)
}

// withRoute stores the matched template and vars in the request context
// with a single WithContext call.
func withRoute(r *http.Request, template string, vars map[string]string) *http.Request {
	rd := &routeData{template: template, vars: vars}
	return r.WithContext(context.WithValue(r.Context(), ctxKey, rd))
}
