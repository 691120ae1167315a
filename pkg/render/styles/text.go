// Package styles holds text measurement and escaping helpers shared by the
// SVG and HTML sinks.
package styles

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"
)

const (
	fontHeightRatio = 0.6
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 7.0
	fontSizeMax     = 14.0
	lineHeight      = 1.15

	// LabelInset is the gap between a tile's top-left corner and its label.
	LabelInset = 3.0
)

// FontSize picks a label size for a w x h tile holding the longest word of text.
func FontSize(w, h float64, text string) float64 {
	return fontSizeFor(w, h, longestWord(text))
}

func fontSizeFor(availWidth, availHeight float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := availHeight * fontHeightRatio
	byWidth := (availWidth * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

func longestWord(s string) int {
	n := 0
	for _, w := range strings.Fields(s) {
		n = max(n, len([]rune(w)))
	}
	return n
}

// LineHeight returns the baseline distance for a font size.
func LineHeight(size float64) float64 { return size * lineHeight }

// WrapLabel breaks text into lines that fit a w x h tile at the given font
// size. Words are kept whole where possible; the last line that fits is
// truncated with "..". It returns nil when not even one line fits.
func WrapLabel(text string, w, h, size float64) []string {
	maxChars := int((w - 2*LabelInset) / (size * fontCharWidth))
	maxLines := int((h - LabelInset) / LineHeight(size))
	if maxChars < 1 || maxLines < 1 {
		return nil
	}

	var lines []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			lines = append(lines, string(cur))
			cur = cur[:0]
		}
	}
	for _, word := range strings.Fields(text) {
		r := []rune(word)
		for len(r) > maxChars {
			flush()
			lines = append(lines, string(r[:maxChars]))
			r = r[maxChars:]
		}
		switch {
		case len(cur) == 0:
			cur = append(cur, r...)
		case len(cur)+1+len(r) <= maxChars:
			cur = append(append(cur, ' '), r...)
		default:
			flush()
			cur = append(cur, r...)
		}
	}
	flush()

	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] = TruncateLabel(lines[maxLines-1]+"..", maxChars)
	}
	return lines
}

// TruncateLabel shortens label to at most maxChars runes, marking the cut
// with "..". Labels that already fit are returned unchanged.
func TruncateLabel(label string, maxChars int) string {
	r := []rune(label)
	if len(r) <= maxChars {
		return label
	}
	if maxChars < 3 {
		return string(r[:max(0, maxChars)])
	}
	return string(r[:maxChars-2]) + ".."
}

// EscapeXML escapes s for use in XML text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// FormatValue renders a sales figure the way the dataset writes it.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
