// Package openapi generates OpenAPI v3.1 documents from a router's
// registered routes and serves them over the router itself.
//
// A Spec holds the API metadata and optional per-route annotations;
// Build turns the router's route table into a Document. Route templates
// render in OpenAPI path form ("/users/:id(uuid)" becomes
// "/users/{id}") and constraint macros become parameter schemas
// (int -> integer, uuid -> string with format uuid, and so on).
//
//	spec := openapi.NewSpec(openapi.Info{Title: "Notes API", Version: "1.0.0"})
//
//	spec.Describe(http.MethodGet, "/notes/:id(uuid)", openapi.Operation{
//		Summary: "Fetch a single note",
//		Tags:    []string{"notes"},
//	})
//
//	openapi.Handle(r, spec, "/docs", openapi.HandleConfig{})
//
// Handle registers two GET routes serving the document:
//
//	/docs/schema.json - OpenAPI document as JSON
//	/docs/schema.yaml - OpenAPI document as YAML
//
// The document is built once, lazily, from the routes registered at the
// time of the first request.
package openapi
