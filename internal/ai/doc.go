// Package ai defines the text-transform collaborator boundary: the
// transform kinds the editor can request, the provider interface, and
// the credit meter that gates requests.
//
// The engine treats a transform as an opaque function from text to
// text. Providers translate the request into a model call and normalize
// the response; a model reporting nothing to improve is surfaced as
// ErrNoChange so the caller never opens a pointless review session.
package ai
