// Package serve bridges a router.Router to the net/http hosting
// environment: an http.Handler adapter that runs dispatch and writes the
// produced response, and a server constructor with sane timeouts and
// optional cleartext HTTP/2.
package serve

import (
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/xtuc/worker-router/router"
)

// ErrorHandler is called when dispatch fails: a handler returned an
// error, or the request never reached matching (for example
// router.ErrNoURL). It is responsible for writing a response.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Option configures the Handler adapter.
type Option func(*options)

type options struct {
	onError ErrorHandler
}

// WithErrorHandler overrides how dispatch errors are written. The
// default writes a plain 500 without exposing the error to the client.
func WithErrorHandler(h ErrorHandler) Option {
	return func(o *options) {
		o.onError = h
	}
}

// defaultErrorHandler writes a generic 500. The error text stays on the
// server side.
func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, _ error) {
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Handler adapts a Router to http.Handler. Each incoming request is
// dispatched through Run with the request's context; the resulting
// response is written out, and dispatch errors go to the error handler.
func Handler[State any](r *router.Router[State], opts ...Option) http.Handler {
	o := options{onError: defaultErrorHandler}
	for _, opt := range opts {
		opt(&o)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		resp, err := r.Run(req.Context(), req)
		if err != nil {
			o.onError(w, req, err)
			return
		}

		// A write failure means the client is gone; there is nothing
		// left to write an error to.
		_ = resp.WriteTo(w)
	})
}

// Config configures the server built by NewServer and ListenAndServe.
// Zero values select the defaults noted on each field.
type Config struct {
	// ReadHeaderTimeout bounds reading request headers
	// (default: 10s).
	ReadHeaderTimeout time.Duration

	// ReadTimeout bounds reading the entire request, body included
	// (default: 30s).
	ReadTimeout time.Duration

	// WriteTimeout bounds writing the response (default: 30s).
	WriteTimeout time.Duration

	// IdleTimeout bounds how long a keep-alive connection may stay
	// idle (default: 120s).
	IdleTimeout time.Duration

	// EnableH2C serves cleartext HTTP/2 alongside HTTP/1.1 by
	// wrapping the handler with an h2c upgrader.
	EnableH2C bool
}

// NewServer builds an *http.Server for the given address and handler,
// applying Config defaults and, when enabled, the h2c wrapper.
func NewServer(addr string, h http.Handler, cfg Config) *http.Server {
	if cfg.ReadHeaderTimeout == 0 {
		cfg.ReadHeaderTimeout = 10 * time.Second
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 120 * time.Second
	}

	if cfg.EnableH2C {
		h = h2c.NewHandler(h, &http2.Server{})
	}

	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// ListenAndServe serves h on addr with the given Config. It blocks until
// the server stops and returns its error.
func ListenAndServe(addr string, h http.Handler, cfg Config) error {
	return NewServer(addr, h, cfg).ListenAndServe()
}
