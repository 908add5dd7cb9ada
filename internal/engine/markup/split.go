package markup

// SplitAt divides style runs at a plain-text rune column. The column is
// clamped into [0, total length]. Both halves are normalized.
func SplitAt(segs []Segment, col int) (left, right []Segment) {
	if col < 0 {
		col = 0
	}
	for i, seg := range segs {
		runes := []rune(seg.Text)
		if col > len(runes) {
			col -= len(runes)
			continue
		}
		left = append(left, segs[:i]...)
		if col > 0 {
			left = append(left, Segment{Text: string(runes[:col]), Style: seg.Style})
		}
		if col < len(runes) {
			right = append(right, Segment{Text: string(runes[col:]), Style: seg.Style})
		}
		right = append(right, segs[i+1:]...)
		return normalizeCopy(left), normalizeCopy(right)
	}
	return normalizeCopy(segs), nil
}

// InsertAt splices plain text into style runs at a rune column. The new
// text inherits the style in effect immediately before the insertion
// point, so typing continues the surrounding formatting.
func InsertAt(segs []Segment, col int, text string) []Segment {
	if text == "" {
		return segs
	}
	left, right := SplitAt(segs, col)

	var style Style
	if n := len(left); n > 0 {
		style = left[n-1].Style
	} else if len(right) > 0 {
		style = right[0].Style
	}

	out := make([]Segment, 0, len(left)+len(right)+1)
	out = append(out, left...)
	out = append(out, Segment{Text: text, Style: style})
	out = append(out, right...)
	return normalize(out)
}

// ApplyStyle sets the given style bits on every run overlapping the rune
// range [from, to) and returns the result.
func ApplyStyle(segs []Segment, from, to int, style Style) []Segment {
	if from >= to {
		return segs
	}
	left, rest := SplitAt(segs, from)
	mid, right := SplitAt(rest, to-from)
	for i := range mid {
		mid[i].Style |= style
	}

	out := make([]Segment, 0, len(left)+len(mid)+len(right))
	out = append(out, left...)
	out = append(out, mid...)
	out = append(out, right...)
	return normalize(out)
}

// normalizeCopy normalizes into a fresh slice so SplitAt halves never
// alias the input's backing array.
func normalizeCopy(segs []Segment) []Segment {
	out := make([]Segment, 0, len(segs))
	for _, seg := range segs {
		if seg.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Style == seg.Style {
			out[n-1].Text += seg.Text
			continue
		}
		out = append(out, seg)
	}
	return out
}
