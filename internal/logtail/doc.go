// Package logtail reads the tail of trapmeta's rotating log file.
//
// Read keeps a ring buffer of the last N lines so large files are scanned
// once with bounded memory. Format turns the JSON records written by the
// logging package into a compact one-line form for the `trapmeta logs`
// command.
package logtail
