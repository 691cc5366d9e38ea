// Package ui provides semantic text formatting for enveil CLI output.
//
// Formatters carry both a color and a plain-text fallback so output stays
// readable when color is disabled via NO_COLOR or a non-terminal stdout.
package ui
