// Package prompt provides simple interactive prompts.
//
// This package contains standalone interactive prompts for common
// user input scenarios. Multi-step forms such as "brew add -i" use
// the wizard package instead.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation prompt
//   - [TextInput]: Single-line text input with optional validation and
//     password masking
//   - [Select]: Single selection from a filterable list
//
// All prompts render to stderr.
package prompt
