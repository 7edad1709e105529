// Package doctor diagnoses a brewlog installation.
//
// The doctor package detects and optionally repairs issues including:
//
//   - Config issues: a config file that does not parse or fails validation.
//
//   - Storage issues: a local storage file that cannot be read.
//
//   - Session issues: a token left under the legacy key, and a stored
//     token that is malformed or past its expiry.
//
//   - Service issues: the backend health endpoint is unreachable.
//
// # Usage
//
//	report, err := doctor.Run(ctx, env, os.Stdout, false) // check only
//	report, err := doctor.Run(ctx, env, os.Stdout, true)  // check and fix
//
// Each [Issue] includes a description and, when it can be repaired
// automatically, a [FixAction].
package doctor
