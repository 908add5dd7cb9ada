// Package mode implements the editor's modal state machine.
//
// Exactly one mode is active at a time: normal (initial), insert, or
// command. Transitions are the only way editing permissions change.
// Normal mode interprets keys as commands, insert mode as text, and
// command mode captures a side-channel input buffer opened by one of
// the ':', '/' or '?' prefixes.
package mode
