// Package wrap reflows markup-bearing content into fixed-width lines.
//
// The serializer walks the content's grapheme clusters, accumulating a
// line until the width limit would be exceeded, then breaks at the last
// whitespace inside the trailing lookback window, or hard-breaks at the
// limit when the window holds no whitespace. Explicit newlines in the
// source always break regardless of width. Formatting spans crossing an
// induced break are closed at the break and reopened on the next line,
// so every emitted fragment is balanced on its own.
//
// Wrapping is idempotent: every emitted line fits the width, and joining
// emitted lines with newlines and re-wrapping at the same width
// reproduces the same boundaries.
package wrap
