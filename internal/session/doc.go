// Package session owns the login state of brewlog.
//
// A Manager loads the stored token, validates it against the service and
// moves from bootstrapping to either authenticated or anonymous. It also
// ends sessions: ForceLogout clears the stored token, the cached user and
// the response cache, then sends the user back to login.
//
// # Logout Guard
//
// Concurrent requests can all fail with 401 when a token expires. The
// guard turns any number of forced logouts into one: the first call acts,
// later calls are no-ops until a login or a successful bootstrap resets
// it. Only an expiry logout tells the user their session expired; a manual
// logout does not.
//
// # Token Storage
//
// The token lives under the key "authToken". Older installations stored it
// under "token"; Bootstrap moves such a token to the new key.
package session
