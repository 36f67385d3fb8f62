package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ESC/POS command bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character size
const (
	FontNormal = 0x00
	FontDouble = 0x11 // Double width + double height
)

// Document builds an ESC/POS byte stream for a thermal receipt printer.
type Document struct {
	buf   bytes.Buffer
	width int // characters per line: 32 for 58mm paper, 48 for 80mm
}

// NewDocument creates a document for the given characters-per-line width.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{width: charWidth}
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// Width returns the characters-per-line of the document.
func (d *Document) Width() int {
	return d.width
}

// Align sets text alignment: AlignLeft, AlignCenter, AlignRight.
func (d *Document) Align(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// Bold enables or disables emphasized text.
func (d *Document) Bold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// Size sets the character size (FontNormal or FontDouble).
func (d *Document) Size(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Line writes s followed by a line feed. Text longer than the paper is
// wrapped on spaces.
func (d *Document) Line(s string) *Document {
	for _, l := range wrap(s, d.width) {
		d.buf.WriteString(l)
		d.buf.WriteByte(LF)
	}
	return d
}

// Linef writes a formatted line.
func (d *Document) Linef(format string, args ...any) *Document {
	return d.Line(fmt.Sprintf(format, args...))
}

// Rule prints a full-width line of char.
func (d *Document) Rule(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// Pair prints left flush left and right flush right on one line. When both do
// not fit, left is wrapped and right is placed on the last line.
func (d *Document) Pair(left, right string) *Document {
	lines := wrap(left, d.width)
	last := lines[len(lines)-1]
	for _, l := range lines[:len(lines)-1] {
		d.buf.WriteString(l)
		d.buf.WriteByte(LF)
	}
	gap := d.width - runeLen(last) - runeLen(right)
	if gap < 1 {
		d.buf.WriteString(last)
		d.buf.WriteByte(LF)
		last = ""
		gap = d.width - runeLen(right)
		if gap < 0 {
			gap = 0
		}
	}
	d.buf.WriteString(last)
	d.buf.WriteString(strings.Repeat(" ", gap))
	d.buf.WriteString(right)
	d.buf.WriteByte(LF)
	return d
}

// Feed sends n line feeds.
func (d *Document) Feed(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// Cut sends the partial paper cut command.
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// wrap splits s on spaces into lines of at most width characters. Words
// longer than a line are cut on character boundaries.
func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	cur := ""
	for _, w := range words {
		for runeLen(w) > width {
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			r := []rune(w)
			lines = append(lines, string(r[:width]))
			w = string(r[width:])
		}
		switch {
		case cur == "":
			cur = w
		case runeLen(cur)+1+runeLen(w) <= width:
			cur += " " + w
		default:
			lines = append(lines, cur)
			cur = w
		}
	}
	if cur != "" || len(lines) == 0 {
		lines = append(lines, cur)
	}
	return lines
}
