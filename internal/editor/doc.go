// Package editor is the modal command interpreter: the finite-state
// machine that maps keystrokes and colon commands onto the engine's
// line model, surface mutator, search engine, wrapping serializer and
// suggestion reviewer.
//
// The interpreter owns per-session state only: the pending two-key
// prefix with its expiry, the optional selection, the yank register
// binding, and the in-flight transform target. Long-running work (AI
// transforms, persistence) is fired through hooks and re-enters later
// as independent events; handlers validate state is still applicable
// before mutating.
package editor
