// Package logtail reads the tail of gtimer's log file for the in-app log
// pane.
//
// Read keeps a ring of the last maxLines lines, so memory stays bounded no
// matter how large the file grows. Parse splits a line written by the
// standard logger into its timestamp, component prefix ("engine",
// "dispatch", "notify") and level, where the level comes from a "warn: " or
// "error: " marker after the component.
package logtail
