package editor

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/dshills/quill/internal/engine/line"
	"github.com/dshills/quill/internal/engine/search"
)

// foldCaser implements Unicode case folding for the i flag.
var foldCaser = cases.Fold()

// substSpan is one replacement staged in flattened rune offsets.
type substSpan struct {
	start int
	end   int
	repl  string
}

// runSubstitution executes ":s/pat/rep/flags" over the current line, or
// ":%s/..." over the whole document. Matching is literal unless the r
// flag asks for a regular expression; the i flag folds case; the g flag
// replaces every occurrence on a line instead of the first. It returns
// the number of replacements made.
func (e *Editor) runSubstitution(buffer string) (int, error) {
	wholeDoc := strings.HasPrefix(buffer, "%")
	body := strings.TrimPrefix(strings.TrimPrefix(buffer, "%"), "s")
	if !strings.HasPrefix(body, "/") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCommand, buffer)
	}

	pattern, repl, flags, err := splitSubst(body[1:])
	if err != nil {
		return 0, err
	}
	if pattern == "" {
		return 0, search.ErrEmptyPattern
	}
	global := strings.ContainsRune(flags, 'g')
	fold := strings.ContainsRune(flags, 'i')
	useRegexp := strings.ContainsRune(flags, 'r')

	var re *regexp.Regexp
	if useRegexp {
		expr := pattern
		if fold {
			expr = "(?i)" + expr
		}
		re, err = regexp.Compile(expr)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
		}
	}

	first, last := 0, e.surf.Model().LineCount()-1
	if !wholeDoc {
		first = e.surf.Cursor().Pos.Line
		last = first
	}

	var spans []substSpan
	for i := first; i <= last; i++ {
		plain := e.surf.Model().PlainLine(i)
		base := e.surf.Model().PositionToOffset(line.Position{Line: i})

		var found []substSpan
		if useRegexp {
			found = regexpMatches(re, plain, repl)
		} else {
			found = literalMatches(plain, pattern, repl, fold)
		}
		if len(found) == 0 {
			continue
		}
		if !global {
			found = found[:1]
		}
		for _, m := range found {
			m.start += base
			m.end += base
			spans = append(spans, m)
		}
	}

	if len(spans) == 0 {
		return 0, search.ErrNoMatch
	}

	// Applying back to front keeps earlier offsets stable.
	sort.Slice(spans, func(a, b int) bool { return spans[a].start > spans[b].start })
	for _, m := range spans {
		if err := e.surf.DeleteRange(m.start, m.end); err != nil {
			return 0, err
		}
		if m.repl != "" {
			if err := e.surf.InsertText(m.start, m.repl); err != nil {
				return 0, err
			}
		}
	}

	e.surf.SetCursorOffset(spans[len(spans)-1].start)
	e.desiredCol = e.surf.Cursor().Pos.Col
	return len(spans), nil
}

// splitSubst splits "pat/rep/flags" on unescaped slashes. The flags
// field is optional.
func splitSubst(s string) (pattern, repl, flags string, err error) {
	fields := make([]string, 0, 3)
	var b strings.Builder
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			if r != '/' {
				b.WriteRune('\\')
			}
			b.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '/':
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	if escaped {
		b.WriteRune('\\')
	}
	fields = append(fields, b.String())

	if len(fields) < 2 || len(fields) > 3 {
		return "", "", "", fmt.Errorf("%w: malformed substitution", ErrInvalidCommand)
	}
	pattern, repl = fields[0], fields[1]
	if len(fields) == 3 {
		flags = fields[2]
	}
	return pattern, repl, flags, nil
}

// literalMatches finds non-overlapping literal occurrences of pattern
// in plain, optionally case-folded, as rune-offset spans.
func literalMatches(plain, pattern, repl string, fold bool) []substSpan {
	runes := []rune(plain)
	pat := []rune(pattern)
	if len(pat) == 0 || len(pat) > len(runes) {
		return nil
	}

	folded := pattern
	if fold {
		folded = foldCaser.String(pattern)
	}

	var out []substSpan
	for i := 0; i+len(pat) <= len(runes); {
		window := string(runes[i : i+len(pat)])
		match := window == pattern
		if !match && fold {
			match = foldCaser.String(window) == folded
		}
		if match {
			out = append(out, substSpan{start: i, end: i + len(pat), repl: repl})
			i += len(pat)
			continue
		}
		i++
	}
	return out
}

// regexpMatches finds non-overlapping regexp matches in plain, expanding
// capture-group references in the replacement, as rune-offset spans.
func regexpMatches(re *regexp.Regexp, plain, repl string) []substSpan {
	idxs := re.FindAllStringSubmatchIndex(plain, -1)
	out := make([]substSpan, 0, len(idxs))
	for _, m := range idxs {
		if m[0] == m[1] {
			// Empty matches would loop on insertion.
			continue
		}
		expanded := string(re.ExpandString(nil, repl, plain, m))
		out = append(out, substSpan{
			start: utf8.RuneCountInString(plain[:m[0]]),
			end:   utf8.RuneCountInString(plain[:m[1]]),
			repl:  expanded,
		})
	}
	return out
}
