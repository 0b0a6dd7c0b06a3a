package router

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"net/http"
)

// Response is the value produced by a Handler: a status code, headers,
// and a body. The router itself only ever synthesizes one Response, the
// 404 returned when no route matches; everything else comes from
// handlers.
type Response struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Header holds the response headers. May be nil when no headers
	// beyond those implied by the body are needed.
	Header http.Header

	// Body is the raw response body.
	Body []byte
}

// OK returns a 200 response with a plain-text body.
func OK(body string) *Response {
	return &Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"text/plain; charset=utf-8"}},
		Body:       []byte(body),
	}
}

// Error returns a response carrying a plain-text error message and the
// given status code.
func Error(message string, code int) *Response {
	return &Response{
		StatusCode: code,
		Header:     http.Header{"Content-Type": []string{"text/plain; charset=utf-8"}},
		Body:       []byte(message),
	}
}

// NoContent returns an empty 204 response.
func NoContent() *Response {
	return &Response{StatusCode: http.StatusNoContent}
}

// JSON encodes v as JSON and returns a response with the given status
// code and a Content-Type of "application/json". Encoding failures are
// returned as errors, to be propagated like any other handler failure.
func JSON(code int, v any) (*Response, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: code,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       buf.Bytes(),
	}, nil
}

// XML encodes v as XML and returns a response with the given status code
// and a Content-Type of "application/xml". Encoding failures are
// returned as errors.
func XML(code int, v any) (*Response, error) {
	var buf bytes.Buffer
	if err := xml.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: code,
		Header:     http.Header{"Content-Type": []string{"application/xml"}},
		Body:       buf.Bytes(),
	}, nil
}

// WithHeader sets a header on the response and returns it for chaining.
func (r *Response) WithHeader(key, value string) *Response {
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	r.Header.Set(key, value)
	return r
}

// WriteTo writes the response to an http.ResponseWriter: headers first,
// then the status code, then the body. A zero StatusCode writes 200.
func (r *Response) WriteTo(w http.ResponseWriter) error {
	for key, values := range r.Header {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}

	code := r.StatusCode
	if code == 0 {
		code = http.StatusOK
	}
	w.WriteHeader(code)

	if len(r.Body) == 0 {
		return nil
	}

	_, err := w.Write(r.Body)
	return err
}
