// Package audit appends operation records to a JSONL log under the user
// state directory. Logging is best-effort: failures never surface to the
// operation being recorded. Entries record what happened to which document,
// never key material or payload text.
package audit
