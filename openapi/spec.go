package openapi

import (
	"net/http"
	"sort"
	"strings"

	"github.com/xtuc/worker-router/router"
)

// macroTypeMap maps pattern constraint macros to OpenAPI type and format.
var macroTypeMap = map[string][2]string{
	"uuid":     {"string", "uuid"},
	"int":      {"integer", ""},
	"float":    {"number", ""},
	"slug":     {"string", ""},
	"alpha":    {"string", ""},
	"alphanum": {"string", ""},
	"date":     {"string", "date"},
	"hex":      {"string", ""},
}

// Spec collects OpenAPI metadata for routes and builds a complete
// Document from a router's registered routes.
type Spec struct {
	info    Info
	servers []Server
	ops     map[string]Operation // keyed by METHOD + " " + template
}

// NewSpec creates a new spec builder with the given API info.
func NewSpec(info Info) *Spec {
	return &Spec{
		info: info,
		ops:  make(map[string]Operation),
	}
}

// AddServer adds a server to the spec.
func (s *Spec) AddServer(server Server) *Spec {
	s.servers = append(s.servers, server)
	return s
}

// Describe attaches operation metadata to the route registered with the
// given method and path template (the template exactly as passed to
// router.Path). Path parameters derived from the template are merged in
// during Build; anything set here wins over the derived defaults.
func (s *Spec) Describe(method, template string, op Operation) *Spec {
	s.ops[opKey(method, template)] = op
	return s
}

// Build produces an OpenAPI Document for the given routes, typically the
// result of Router.Routes. Route templates are rendered in OpenAPI form
// ("/users/:id" becomes "/users/{id}") and constraint macros map to
// schema types and formats.
func (s *Spec) Build(routes []router.RouteInfo) *Document {
	doc := &Document{
		OpenAPI: "3.1.0",
		Info:    s.info,
		Servers: s.servers,
		Paths:   make(map[string]*PathItem, len(routes)),
	}

	for _, rt := range routes {
		path := templateToPath(rt.Template)

		item := doc.Paths[path]
		if item == nil {
			item = &PathItem{}
			doc.Paths[path] = item
		}

		op := s.ops[opKey(rt.Method, rt.Template)]
		fillOperation(&op, rt)

		setOperation(item, rt.Method, &op)
	}

	return doc
}

// opKey builds the annotation map key for a method and template.
func opKey(method, template string) string {
	return strings.ToUpper(method) + " " + template
}

// fillOperation completes an operation with defaults derived from the
// route: an operation id, path parameters, and a minimal response map.
func fillOperation(op *Operation, rt router.RouteInfo) {
	if op.OperationID == "" {
		op.OperationID = operationID(rt.Method, rt.Template)
	}

	declared := make(map[string]bool, len(op.Parameters))
	for _, p := range op.Parameters {
		if p.In == "path" {
			declared[p.Name] = true
		}
	}

	for _, param := range rt.Params {
		if declared[param.Name] {
			continue
		}
		op.Parameters = append(op.Parameters, &Parameter{
			Name:     param.Name,
			In:       "path",
			Required: true,
			Schema:   macroSchema(param.Macro),
		})
	}

	if len(op.Responses) == 0 {
		op.Responses = map[string]*Response{
			"200": {Description: http.StatusText(http.StatusOK)},
		}
	}
}

// macroSchema returns the schema for a path parameter constrained by the
// given macro. Unconstrained parameters are plain strings.
func macroSchema(macro string) *Schema {
	if tf, ok := macroTypeMap[macro]; ok {
		return &Schema{Type: tf[0], Format: tf[1]}
	}
	return &Schema{Type: "string"}
}

// templateToPath renders a route template in OpenAPI path form:
// ":name" and ":name(constraint)" segments become "{name}", and a named
// trailing wildcard "*name" becomes "{name}" as well.
func templateToPath(template string) string {
	segments := strings.Split(template, "/")
	for i, seg := range segments {
		switch {
		case strings.HasPrefix(seg, ":"):
			name := seg[1:]
			if idx := strings.IndexByte(name, '('); idx >= 0 {
				name = name[:idx]
			}
			segments[i] = "{" + name + "}"
		case strings.HasPrefix(seg, "*") && len(seg) > 1:
			segments[i] = "{" + seg[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

// operationID derives a default operation id from the method and
// template, e.g. GET /users/:id -> "get_users_id".
func operationID(method, template string) string {
	parts := []string{strings.ToLower(method)}
	for _, seg := range strings.Split(template, "/") {
		seg = strings.TrimLeft(seg, ":*")
		if idx := strings.IndexByte(seg, '('); idx >= 0 {
			seg = seg[:idx]
		}
		if seg == "" {
			continue
		}
		parts = append(parts, strings.ToLower(seg))
	}
	return strings.Join(parts, "_")
}

// setOperation stores the operation in the path item slot matching the
// HTTP method. Unknown methods (CONNECT has no OpenAPI slot) are
// dropped.
func setOperation(item *PathItem, method string, op *Operation) {
	switch method {
	case http.MethodGet:
		item.Get = op
	case http.MethodPut:
		item.Put = op
	case http.MethodPost:
		item.Post = op
	case http.MethodDelete:
		item.Delete = op
	case http.MethodOptions:
		item.Options = op
	case http.MethodHead:
		item.Head = op
	case http.MethodPatch:
		item.Patch = op
	case http.MethodTrace:
		item.Trace = op
	}
}

// SortedPaths returns the document's paths in lexical order. Map
// iteration order is random; deterministic order helps diffing and
// tests.
func (d *Document) SortedPaths() []string {
	paths := make([]string, 0, len(d.Paths))
	for p := range d.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
