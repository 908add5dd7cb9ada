// Package line derives a line-addressed coordinate system from document
// content.
//
// The model is recomputed from the ordered markup fragments after every
// mutation and is the sole authority for translating between the three
// equivalent cursor representations: (line, column), global offset into
// the flattened plain-text projection, and a segment anchor into the
// underlying markup. Each line contributes its plain-text rune length
// plus one implicit separator to the offset space; the final offset
// (equal to the total length) addresses end-of-document with no trailing
// separator.
//
// A document always has at least one line. Compute enforces this by
// substituting a single empty line for empty input.
package line
