// Package utils provides terminal and formatting helpers shared by enveil
// commands.
package utils
