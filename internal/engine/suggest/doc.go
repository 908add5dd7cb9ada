// Package suggest reconciles an AI-proposed rewrite against the current
// document content.
//
// A proposal opens a review session: the old and new text are diffed at
// word granularity, adjacent spans of the same kind are coalesced into
// chunks, and each added or removed chunk can be accepted or rejected on
// its own. Nothing touches the document until the session resolves:
// AcceptAll materializes the merged content (a rejected removal keeps
// the original words, a rejected addition drops the proposed ones),
// RejectAll restores the original text, and Close abandons the session.
//
// Exactly one session may be active. A proposal arriving during a review
// is refused with ErrReviewActive, never queued or merged.
package suggest
