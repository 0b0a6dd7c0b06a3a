package openapi

import (
	"context"
	"encoding/json"
	"net/http"
	"path"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/xtuc/worker-router/router"
)

// HandleConfig configures the endpoints registered by Handle.
type HandleConfig struct {
	// JSONFilename is the path for the JSON document endpoint
	// (default: "schema.json"). Set to "-" to disable.
	// Relative names are joined with the base path; absolute paths
	// (starting with "/") are used as-is.
	JSONFilename string

	// YAMLFilename is the path for the YAML document endpoint
	// (default: "schema.yaml"). Set to "-" to disable.
	YAMLFilename string
}

// jsonFilename returns the configured JSON filename with its default.
func (cfg HandleConfig) jsonFilename() string {
	if cfg.JSONFilename == "" {
		return "schema.json"
	}
	return cfg.JSONFilename
}

// yamlFilename returns the configured YAML filename with its default.
func (cfg HandleConfig) yamlFilename() string {
	if cfg.YAMLFilename == "" {
		return "schema.yaml"
	}
	return cfg.YAMLFilename
}

// resolvePath joins a filename with the base path unless it is already
// absolute.
func resolvePath(basePath, name string) string {
	if path.IsAbs(name) {
		return name
	}
	return path.Join("/", basePath, name)
}

// Handle registers GET routes on the router serving the spec's document
// as JSON and YAML under basePath. The document is built lazily on the
// first request, so routes registered after Handle (but before serving)
// are still included. It returns the router for chaining.
func Handle[State any](r *router.Router[State], spec *Spec, basePath string, cfg HandleConfig) *router.Router[State] {
	var (
		once     sync.Once
		jsonBody []byte
		yamlBody []byte
		buildErr error
	)

	build := func() {
		doc := spec.Build(r.Routes())
		if jsonBody, buildErr = json.MarshalIndent(doc, "", "  "); buildErr != nil {
			return
		}
		yamlBody, buildErr = yaml.Marshal(doc)
	}

	document := func(contentType string, body *[]byte) router.Handler[State] {
		return func(_ context.Context, _ *http.Request, _ State) (*router.Response, error) {
			once.Do(build)
			if buildErr != nil {
				return nil, buildErr
			}
			return &router.Response{
				StatusCode: http.StatusOK,
				Header:     http.Header{"Content-Type": []string{contentType}},
				Body:       *body,
			}, nil
		}
	}

	if name := cfg.jsonFilename(); name != "-" {
		r.Get(router.MustPath(resolvePath(basePath, name)), document("application/json", &jsonBody))
	}
	if name := cfg.yamlFilename(); name != "-" {
		r.Get(router.MustPath(resolvePath(basePath, name)), document("application/yaml", &yamlBody))
	}

	return r
}
