// Package fetchcache caches GET responses for a short time and collapses
// concurrent requests for the same URL into a single network call.
//
// # Keys and Expiry
//
// Entries are keyed by "GET " + url and hold the raw response body of the
// last successful call. Expiry is checked on read; nothing is evicted in
// the background. A refresh overwrites the entry.
//
// # Sharing
//
// At most one fetch per key is in flight. Callers that arrive while a fetch
// is running wait for it, including callers that asked to bypass the cache.
// The shared fetch runs on a context detached from any single caller, so
// cancelling one caller never aborts the call for the others. A cancelled
// caller gets an error matching ErrCanceled.
//
// # Failures
//
// A failed fetch is reported to every waiting caller and is not cached.
// The next call for the key starts a fresh fetch.
package fetchcache
