// Package transcode walks a document and rewrites encryption markers in
// place: encrypted markers into decrypted pending-edit markers, or the
// reverse. Each direction runs two passes, block shape before string shape,
// and every non-marker byte passes through unchanged. Transforms are
// computed entirely in memory so a failing marker never yields partial
// output.
package transcode
