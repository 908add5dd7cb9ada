// Package surface owns the mutable document content and exposes the
// atomic operations everything above the engine uses to change it.
//
// Every mutation canonicalizes the affected fragments, recomputes the
// line model, and repositions the cursor per the operation's documented
// rule. An operation whose preconditions fail returns an error and has
// no observable effect. Two invariants hold at all times: the document
// has at least one line, and every fragment is balanced markup.
package surface
