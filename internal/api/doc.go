// Package api is the HTTP client for the brew log service.
//
// Every request carries a bearer token when one is stored, an
// X-Request-ID, and JSON accept headers. GET requests for coffees and brew
// logs are served through a fetchcache.Cache with per-resource TTLs, and
// mutations invalidate the affected entries.
//
// A 401 response to a request that carried a token is reported to the
// configured UnauthorizedHandler, which is expected to end the session.
// Requests sent without a token (such as login) never trigger it.
//
// Non-2xx responses are returned as *StatusError.
package api
