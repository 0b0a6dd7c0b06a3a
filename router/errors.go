package router

import "errors"

// ErrNoURL is returned by Run when the request carries no parsed URL.
// This is a collaborator-level failure of the hosting environment, not a
// routing outcome, so it propagates as an error instead of producing a
// 404 response. Requests delivered by net/http always have a parsed URL;
// only hand-built requests can trigger this.
var ErrNoURL = errors.New("router: request has no parsed URL")
