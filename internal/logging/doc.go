// Package logger provides leveled logging for enveil CLI commands.
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details
//
// Without flags, only critical warnings and errors are shown.
//
// Commands create a logger in their PersistentPreRun and pass it to
// internal functions.
package logger
