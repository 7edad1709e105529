// Package flows provides command-specific wizard implementations.
//
// Each flow is a complete interactive wizard for a specific brewlog
// command, built from the framework and steps packages.
//
// Available flows:
//   - [BrewInteractive]: brew log form used by "brew add -i" and
//     "guide brew"
package flows
