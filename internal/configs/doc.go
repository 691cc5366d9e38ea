// Package configs manages enveil's user configuration.
//
// The user config lives at <config-dir>/enveil/config.toml and holds
// default key locations and edit-session preferences. A missing config
// file yields built-in defaults; command-line flags override both.
package configs
