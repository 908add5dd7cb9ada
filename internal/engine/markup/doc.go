// Package markup models the inline formatting carried by document content.
//
// A fragment is a string mixing plain text with a small set of inline tags
// (<b>, <i>, <u>, <s>, <mark>). The package parses fragments into style
// runs, renders runs back to a canonical form, and projects fragments to
// plain text. Canonical rendering is a fixed point: Render(Parse(Render(x)))
// equals Render(x), which the line-wrapping serializer relies on for
// idempotence.
//
// Parsing is tolerant. A tag that is not recognized, or a close tag with no
// matching open, is kept as literal text. Rendering always emits balanced
// tags, so any fragment produced by this package is well-formed.
package markup
