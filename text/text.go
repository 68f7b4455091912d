// Package text implements the shaper/wrapper of spec §4.6: breaking a
// string into lines that fit a given width, at word boundaries, and
// computing per-line alignment offsets (left/center/right/justify).
package text

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/wudi/docrender/fonts"
	"github.com/wudi/docrender/style"
)

// Token is one whitespace-delimited word and its measured advance.
type Token struct {
	Text  string
	Width float64
}

// Line is one wrapped, positioned line of text.
type Line struct {
	Tokens   []Token
	GapWidth float64 // width of a single inter-token space at this line's style
	Advance  float64 // natural (unjustified) total advance of tokens+gaps
	X        float64 // left offset after alignment
	Justify  bool     // whether slack was distributed across gaps
}

// Wrap breaks text into lines that fit within width, under ts and m. Explicit
// newlines force paragraph breaks; a single token exceeding width is placed
// alone on its line and allowed to overflow (spec §4.6 — no hyphenation).
func Wrap(rawText string, ts style.TextStyle, m *fonts.Metrics, width float64) []Line {
	normalized := norm.NFC.String(rawText)
	paragraphs := strings.Split(normalized, "\n")

	var lines []Line
	for pIdx, para := range paragraphs {
		paraLines := wrapParagraph(para, ts, m, width)
		for lIdx := range paraLines {
			isLastOfParagraph := lIdx == len(paraLines)-1
			exclude := isLastOfParagraph && (len(paraLines) > 1 || pIdx < len(paragraphs)-1)
			paraLines[lIdx].Justify = ts.Align == style.AlignJustify && !exclude
			paraLines[lIdx].X = alignOffset(ts.Align, paraLines[lIdx], width)
		}
		lines = append(lines, paraLines...)
	}
	return lines
}

func wrapParagraph(para string, ts style.TextStyle, m *fonts.Metrics, width float64) []Line {
	spaceWidth := m.Advance(' ', ts.FontSize, ts.Weight, ts.Style)
	fields := strings.Fields(para)
	if len(fields) == 0 {
		return []Line{{GapWidth: spaceWidth}}
	}

	var lines []Line
	var cur []Token
	var curAdvance float64

	flush := func() {
		lines = append(lines, Line{Tokens: cur, GapWidth: spaceWidth, Advance: curAdvance})
		cur = nil
		curAdvance = 0
	}

	for _, word := range fields {
		w := m.StringAdvance(word, ts.FontSize, ts.Weight, ts.Style)
		tok := Token{Text: word, Width: w}
		if len(cur) == 0 {
			cur = append(cur, tok)
			curAdvance = w
			continue
		}
		withToken := curAdvance + spaceWidth + w
		if withToken <= width+0.5 {
			cur = append(cur, tok)
			curAdvance = withToken
			continue
		}
		flush()
		cur = append(cur, tok)
		curAdvance = w
	}
	flush()
	return lines
}

func alignOffset(align style.TextAlign, l Line, width float64) float64 {
	if l.Justify {
		return 0
	}
	switch align {
	case style.AlignCenter:
		return (width - l.Advance) / 2
	case style.AlignRight:
		return width - l.Advance
	default:
		return 0
	}
}

// Slack returns the extra width (width - natural advance) to distribute
// across inter-token gaps when l.Justify is set.
func Slack(l Line, width float64) float64 {
	if !l.Justify || len(l.Tokens) < 2 {
		return 0
	}
	return width - l.Advance
}

// GapAdvance returns the width of the gap following token i (0-indexed,
// not counting the final token) once justification slack is applied.
func GapAdvance(l Line, width float64, i int) float64 {
	gaps := len(l.Tokens) - 1
	if gaps <= 0 {
		return 0
	}
	if !l.Justify {
		return l.GapWidth
	}
	return l.GapWidth + Slack(l, width)/float64(gaps)
}

// Height is the total block height of lineCount lines under ts.
func Height(lineCount int, ts style.TextStyle) float64 {
	return float64(lineCount) * ts.FontSize * ts.LineHeight
}

// LongestWordWidth returns the width of the widest unbreakable token — the
// text box's intrinsic-min width (spec §4.4).
func LongestWordWidth(rawText string, ts style.TextStyle, m *fonts.Metrics) float64 {
	rawText = norm.NFC.String(rawText)
	var maxW float64
	for _, para := range strings.Split(rawText, "\n") {
		for _, word := range strings.Fields(para) {
			if w := m.StringAdvance(word, ts.FontSize, ts.Weight, ts.Style); w > maxW {
				maxW = w
			}
		}
	}
	return maxW
}

// UnwrappedWidth returns the width of the longest line if laid out without
// forced wrapping — the text box's intrinsic-pref width (spec §4.4).
func UnwrappedWidth(rawText string, ts style.TextStyle, m *fonts.Metrics) float64 {
	rawText = norm.NFC.String(rawText)
	spaceWidth := m.Advance(' ', ts.FontSize, ts.Weight, ts.Style)
	var maxW float64
	for _, para := range strings.Split(rawText, "\n") {
		fields := strings.Fields(para)
		var total float64
		for i, word := range fields {
			if i > 0 {
				total += spaceWidth
			}
			total += m.StringAdvance(word, ts.FontSize, ts.Weight, ts.Style)
		}
		if total > maxW {
			maxW = total
		}
	}
	return maxW
}
