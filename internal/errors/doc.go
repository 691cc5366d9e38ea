// Package errors defines sentinel errors shared across enveil components.
//
// Errors are grouped by concern (key material, cryptography, documents,
// edit sessions). Internal packages wrap these sentinels with %w so the
// command layer can classify failures with errors.Is without string
// matching.
package errors
