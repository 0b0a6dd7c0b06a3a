package router

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// decodeOne runs decode for a single value and verifies the body holds
// nothing after it. format names the encoding in the error.
func decodeOne(decode func(any) error, v any, format string) error {
	if err := decode(v); err != nil {
		return fmt.Errorf("router: decoding %s body: %w", format, err)
	}
	if err := decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("router: trailing data after %s body", format)
	}
	return nil
}

// BindJSON decodes the request body as a single JSON value into v.
// Unknown fields are rejected unless allowUnknownFields is passed as
// true, and anything left in the body after the value is an error.
func BindJSON(r *http.Request, v any, allowUnknownFields ...bool) error {
	dec := json.NewDecoder(r.Body)
	if len(allowUnknownFields) == 0 || !allowUnknownFields[0] {
		dec.DisallowUnknownFields()
	}
	return decodeOne(dec.Decode, v, "JSON")
}

// BindXML decodes the request body as a single XML element into v.
// Anything left in the body after the element is an error.
func BindXML(r *http.Request, v any) error {
	return decodeOne(xml.NewDecoder(r.Body).Decode, v, "XML")
}
