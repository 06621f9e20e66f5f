// Package efa is a client for Mentz EFA journey planner backends, as
// deployed for the Südtirolmobil network. It turns the backend's
// inconsistently-shaped JSON answers into a small set of stable, typed
// results (stop candidates, departure boards, trip plans), while pacing
// outbound requests, bounding concurrency, caching recent responses, and
// mapping failures into a closed error taxonomy.
//
// Failures surface as one of three error types, matched with errors.As:
// *TransportError (network trouble or HTTP 5xx), *BackendRejectedError
// (HTTP 4xx) and *BackendSignaledError (a 2xx answer whose system messages
// report a failure). A response with zero results and no error-category
// message is a legitimate empty result, not an error.
package efa
