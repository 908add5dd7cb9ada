// Package search finds pattern occurrences in the flattened plain-text
// projection and maps them back to flattened offsets. Matching is
// case-sensitive and literal; the find/replace colon command layers its
// own flag handling on top.
package search

import "errors"

// Errors reported by search operations. All are transient: the cursor is
// never moved when one is returned.
var (
	ErrNoMatch       = errors.New("pattern not found")
	ErrEmptyPattern  = errors.New("empty search pattern")
	ErrEmptyDocument = errors.New("document is empty")
)

// Direction selects which way a search scans from the cursor.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Engine performs searches over a flattened projection and remembers the
// last pattern for repeat commands.
type Engine struct {
	lastPattern string
	lastDir     Direction
}

// New creates a search engine with no remembered pattern.
func New() *Engine {
	return &Engine{}
}

// LastPattern returns the most recent pattern, or "".
func (e *Engine) LastPattern() string {
	return e.lastPattern
}

// Search finds the next occurrence of pattern from the cursor offset in
// the given direction, wrapping around the document boundary. The
// returned offset is the match start in flattened rune offsets.
func (e *Engine) Search(text, pattern string, cursor int, dir Direction) (int, error) {
	if pattern == "" {
		return 0, ErrEmptyPattern
	}
	if text == "" {
		return 0, ErrEmptyDocument
	}

	e.lastPattern = pattern
	e.lastDir = dir

	matches := matchOffsets(text, pattern)
	if len(matches) == 0 {
		return 0, ErrNoMatch
	}

	if dir == Forward {
		for _, m := range matches {
			if m > cursor {
				return m, nil
			}
		}
		return matches[0], nil // wrap to first match
	}

	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i] < cursor {
			return matches[i], nil
		}
	}
	return matches[len(matches)-1], nil // wrap to last match
}

// Next repeats the last search in its original direction.
func (e *Engine) Next(text string, cursor int) (int, error) {
	return e.Search(text, e.lastPattern, cursor, e.lastDir)
}

// Prev repeats the last search in the opposite direction.
func (e *Engine) Prev(text string, cursor int) (int, error) {
	dir := Forward
	if e.lastDir == Forward {
		dir = Backward
	}
	off, err := e.Search(text, e.lastPattern, cursor, dir)
	// Prev does not flip the remembered direction.
	e.lastDir = flip(dir)
	return off, err
}

func flip(d Direction) Direction {
	if d == Forward {
		return Backward
	}
	return Forward
}

// matchOffsets returns the rune offsets of every occurrence of pattern
// in text, in ascending order. Overlapping matches advance one rune at a
// time.
func matchOffsets(text, pattern string) []int {
	tr := []rune(text)
	pr := []rune(pattern)
	if len(pr) == 0 || len(pr) > len(tr) {
		return nil
	}

	var out []int
	for i := 0; i+len(pr) <= len(tr); i++ {
		if equalRunes(tr[i:i+len(pr)], pr) {
			out = append(out, i)
		}
	}
	return out
}

func equalRunes(a, b []rune) bool {
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
