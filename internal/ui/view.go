// Package ui renders the editing session onto a tcell screen: the
// document area, the review panel, a status line and a message line.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/quill/internal/editor"
	"github.com/dshills/quill/internal/engine/line"
	"github.com/dshills/quill/internal/engine/markup"
	"github.com/dshills/quill/internal/engine/suggest"
	"github.com/dshills/quill/internal/input/mode"
)

// View holds the render state that survives between frames.
type View struct {
	top int

	// Message is the transient status-line message.
	Message string

	// ReviewIndex is the chunk the review panel has focused.
	ReviewIndex int

	// Credits is the remaining AI balance shown in the status line.
	Credits int
}

// NewView creates a view scrolled to the top.
func NewView() *View {
	return &View{Credits: -1}
}

// Draw renders one frame.
func (v *View) Draw(s tcell.Screen, ed *editor.Editor) {
	s.Clear()
	width, height := s.Size()
	if width == 0 || height < 3 {
		s.Show()
		return
	}
	docHeight := height - 2

	v.scrollTo(ed.Surface().Cursor().Pos.Line, docHeight)
	v.drawDocument(s, ed, width, docHeight)
	if sess := ed.Review(); sess != nil {
		v.drawReview(s, sess, width, docHeight)
	}
	v.drawStatus(s, ed, width, height-2)
	v.drawMessageLine(s, ed, width, height-1)

	switch {
	case ed.Mode() == mode.Command:
		// The message line placed the cursor in the input buffer.
	case ed.Review() != nil:
		s.HideCursor()
	default:
		pos := ed.Surface().Cursor().Pos
		s.ShowCursor(pos.Col, pos.Line-v.top)
	}
	s.Show()
}

// scrollTo keeps the cursor line inside the document area.
func (v *View) scrollTo(line, docHeight int) {
	if line < v.top {
		v.top = line
	}
	if line >= v.top+docHeight {
		v.top = line - docHeight + 1
	}
}

func (v *View) drawDocument(s tcell.Screen, ed *editor.Editor, width, docHeight int) {
	model := ed.Surface().Model()
	hlStart, hlEnd, hlOK := ed.Surface().Highlight()
	for row := 0; row < docHeight; row++ {
		idx := v.top + row
		if idx >= model.LineCount() {
			break
		}
		ln, ok := model.Line(idx)
		if !ok {
			break
		}
		segs := markup.Parse(ln.Markup)
		if hlOK {
			// Resolve the highlight overlay for this line's slice of
			// the flattened range.
			base := model.PositionToOffset(line.Position{Line: idx})
			from := max(hlStart-base, 0)
			to := min(hlEnd-base, model.LineLen(idx))
			if from < to {
				segs = markup.ApplyStyle(segs, from, to, markup.StyleMark)
			}
		}
		col := 0
		for _, seg := range segs {
			st := cellStyle(seg.Style)
			for _, r := range seg.Text {
				if col >= width {
					break
				}
				s.SetContent(col, row, r, nil, st)
				col++
			}
		}
	}
}

// drawReview paints the suggestion panel over the lower half of the
// document area.
func (v *View) drawReview(s tcell.Screen, sess *suggest.Session, width, docHeight int) {
	top := docHeight / 2
	base := tcell.StyleDefault.Reverse(true)
	fill(s, 0, top, width, base)
	puts(s, 1, top, "REVIEW  a:accept r:reject A:accept all R:reject all tab:next", base)

	row := top + 1
	for i, c := range sess.Chunks() {
		if row >= docHeight {
			break
		}
		st := tcell.StyleDefault
		label := " "
		switch c.Kind {
		case suggest.Added:
			st = st.Foreground(tcell.ColorGreen)
			label = "+"
		case suggest.Removed:
			st = st.Foreground(tcell.ColorRed)
			label = "-"
		}
		if c.Kind != suggest.Common {
			label += " [" + c.State().String() + "]"
		}
		if i == v.ReviewIndex {
			st = st.Bold(true)
			label = ">" + label
		} else {
			label = " " + label
		}
		fill(s, 0, row, width, tcell.StyleDefault)
		puts(s, 0, row, fmt.Sprintf("%s %q", label, c.Text), st)
		row++
	}
}

func (v *View) drawStatus(s tcell.Screen, ed *editor.Editor, width, row int) {
	pos := ed.Surface().Cursor().Pos
	status := fmt.Sprintf(" %s | %d:%d | %d words",
		ed.ModeDisplay(), pos.Line+1, pos.Col+1, ed.WordCount())
	if v.Credits >= 0 {
		status += fmt.Sprintf(" | credits %d", v.Credits)
	}
	st := tcell.StyleDefault.Reverse(true)
	fill(s, 0, row, width, st)
	puts(s, 0, row, status, st)
}

func (v *View) drawMessageLine(s tcell.Screen, ed *editor.Editor, width, row int) {
	fill(s, 0, row, width, tcell.StyleDefault)
	if prefix, buffer, active := ed.CommandBuffer(); active {
		puts(s, 0, row, string(prefix)+buffer, tcell.StyleDefault)
		s.ShowCursor(len([]rune(buffer))+1, row)
		return
	}
	puts(s, 0, row, v.Message, tcell.StyleDefault)
}

// cellStyle maps markup style bits onto terminal attributes.
func cellStyle(st markup.Style) tcell.Style {
	out := tcell.StyleDefault
	if st.Has(markup.StyleBold) {
		out = out.Bold(true)
	}
	if st.Has(markup.StyleItalic) {
		out = out.Italic(true)
	}
	if st.Has(markup.StyleUnderline) {
		out = out.Underline(true)
	}
	if st.Has(markup.StyleStrike) {
		out = out.StrikeThrough(true)
	}
	if st.Has(markup.StyleMark) {
		out = out.Reverse(true)
	}
	return out
}

func puts(s tcell.Screen, x, y int, text string, st tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, st)
		x++
	}
}

func fill(s tcell.Screen, x, y, width int, st tcell.Style) {
	for ; x < width; x++ {
		s.SetContent(x, y, ' ', nil, st)
	}
}
