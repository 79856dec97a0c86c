// Package activity keeps the persistent countdown display outside the TUI.
//
// FileService implements effects.ActivityService by writing a small YAML
// record (id, remaining seconds, end instant) to a status file. Create
// assigns a fresh id, Update rewrites the record in place and End removes
// the file. Writes go through a temporary file and a rename, so a reader
// never sees a partial record.
//
// The Format helpers render the record the way the compact displays expect;
// "gtimer status" uses them to print one line for tmux or a shell prompt.
package activity
