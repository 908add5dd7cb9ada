package suggest

import (
	"errors"
	"strings"
	"unicode"

	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

// Errors returned by the reconciliation engine.
var (
	ErrReviewActive = errors.New("a review session is already active")
	ErrNoReview     = errors.New("no active review session")
	ErrIncomplete   = errors.New("suggestion has no proposed content")
	ErrChunkKind    = errors.New("common chunks are not actionable")
	ErrChunkRange   = errors.New("chunk index out of range")
)

// Session is one review of a proposed rewrite.
type Session struct {
	oldText string
	newText string
	chunks  []*Chunk
}

// OldText returns the content under review.
func (s *Session) OldText() string { return s.oldText }

// NewText returns the proposed replacement.
func (s *Session) NewText() string { return s.newText }

// Chunks returns the ordered diff chunks.
func (s *Session) Chunks() []*Chunk { return s.chunks }

// Accept marks the chunk at index accepted.
func (s *Session) Accept(index int) error {
	return s.resolve(index, Accepted)
}

// Reject marks the chunk at index rejected.
func (s *Session) Reject(index int) error {
	return s.resolve(index, Rejected)
}

func (s *Session) resolve(index int, state State) error {
	if index < 0 || index >= len(s.chunks) {
		return ErrChunkRange
	}
	if s.chunks[index].Kind == Common {
		return ErrChunkKind
	}
	s.chunks[index].state = state
	return nil
}

// Merged builds the final content: common chunks, added chunks not
// rejected, and removed chunks whose removal was rejected (keeping the
// original words).
func (s *Session) Merged() string {
	var b strings.Builder
	for _, c := range s.chunks {
		switch c.Kind {
		case Common:
			b.WriteString(c.Text)
		case Added:
			if c.state != Rejected {
				b.WriteString(c.Text)
			}
		case Removed:
			if c.state == Rejected {
				b.WriteString(c.Text)
			}
		}
	}
	return b.String()
}

// Reviewer owns the single active review session.
type Reviewer struct {
	active *Session
}

// NewReviewer creates a reviewer with no active session.
func NewReviewer() *Reviewer {
	return &Reviewer{}
}

// Active returns the current session, or nil.
func (r *Reviewer) Active() *Session {
	return r.active
}

// Propose opens a review session for a rewrite. A proposal with no new
// content is refused before diffing; a proposal during an active review
// is refused without touching the running session.
func (r *Reviewer) Propose(oldText, newText string) (*Session, error) {
	if r.active != nil {
		return nil, ErrReviewActive
	}
	if newText == "" {
		return nil, ErrIncomplete
	}

	r.active = &Session{
		oldText: oldText,
		newText: newText,
		chunks:  diffChunks(oldText, newText),
	}
	return r.active, nil
}

// AcceptAll materializes the merged content and ends the session.
func (r *Reviewer) AcceptAll() (string, error) {
	if r.active == nil {
		return "", ErrNoReview
	}
	merged := r.active.Merged()
	r.active = nil
	return merged, nil
}

// RejectAll discards the proposal outright and ends the session,
// returning the original content verbatim.
func (r *Reviewer) RejectAll() (string, error) {
	if r.active == nil {
		return "", ErrNoReview
	}
	old := r.active.oldText
	r.active = nil
	return old, nil
}

// Close ends the session without committing anything.
func (r *Reviewer) Close() {
	r.active = nil
}

// diffChunks computes the word-level diff and coalesces adjacent spans
// of the same kind.
func diffChunks(oldText, newText string) []*Chunk {
	d := dmp.New()

	oldEnc, newEnc, table := wordsToRunes(oldText, newText)
	diffs := d.DiffMain(oldEnc, newEnc, false)

	var chunks []*Chunk
	for _, df := range diffs {
		text := runesToWords(df.Text, table)
		if text == "" {
			continue
		}
		kind := Common
		switch df.Type {
		case dmp.DiffInsert:
			kind = Added
		case dmp.DiffDelete:
			kind = Removed
		}
		if n := len(chunks); n > 0 && chunks[n-1].Kind == kind {
			chunks[n-1].Text += text
			continue
		}
		chunks = append(chunks, &Chunk{Text: text, Kind: kind})
	}
	return chunks
}

// wordsToRunes encodes both texts as strings of one rune per word token,
// the same trick diffmatchpatch uses for line mode. A token is a run of
// non-space runes plus any trailing whitespace, so tokens partition the
// text exactly.
func wordsToRunes(text1, text2 string) (string, string, []string) {
	table := make([]string, 0, 64)
	index := make(map[string]rune, 64)

	encode := func(s string) string {
		var b strings.Builder
		for _, tok := range tokenize(s) {
			r, ok := index[tok]
			if !ok {
				table = append(table, tok)
				r = safeRune(len(table) - 1)
				index[tok] = r
			}
			b.WriteRune(r)
		}
		return b.String()
	}

	return encode(text1), encode(text2), table
}

// runesToWords decodes an encoded diff span back to text.
func runesToWords(enc string, table []string) string {
	var b strings.Builder
	for _, r := range enc {
		b.WriteString(table[runeIndex(r)])
	}
	return b.String()
}

// tokenize splits text into word tokens, each carrying its trailing
// whitespace. Concatenating the tokens reproduces the input exactly.
func tokenize(s string) []string {
	var tokens []string
	runes := []rune(s)
	for i := 0; i < len(runes); {
		start := i
		for i < len(runes) && !unicode.IsSpace(runes[i]) {
			i++
		}
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			i++
		}
		tokens = append(tokens, string(runes[start:i]))
	}
	return tokens
}

// Rune encoding skips the surrogate range.
const surrogateStart, surrogateEnd = 0xD800, 0xE000

func safeRune(i int) rune {
	r := rune(i + 1)
	if r >= surrogateStart {
		r += surrogateEnd - surrogateStart
	}
	return r
}

func runeIndex(r rune) int {
	if r >= surrogateEnd {
		r -= surrogateEnd - surrogateStart
	}
	return int(r - 1)
}
