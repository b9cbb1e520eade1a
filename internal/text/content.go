package text

import (
	"unicode/utf8"

	"github.com/woxQAQ/lsp-bridge/pkg/protocol"
)

// Content is a line/column addressable piece of text. Columns are UTF-16 code
// units. Unlike an editor buffer it never clamps: any position outside the text
// is reported as a *PositionError.
type Content struct {
	text       string
	lineStarts []int
}

// NewContent indexes s.
func NewContent(s string) *Content {
	c := &Content{}
	c.reset(s)
	return c
}

func (c *Content) reset(s string) {
	c.text = s
	c.lineStarts = c.lineStarts[:0]
	c.lineStarts = append(c.lineStarts, 0)
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			c.lineStarts = append(c.lineStarts, i+1)
		}
	}
}

func (c *Content) String() string {
	return c.text
}

// LineCount returns the number of lines. An empty text has one empty line.
func (c *Content) LineCount() int {
	return len(c.lineStarts)
}

// lineBounds returns the byte offsets of line, excluding its "\n" or "\r\n"
// terminator.
func (c *Content) lineBounds(line int) (int, int, error) {
	if line < 0 || line >= len(c.lineStarts) {
		return 0, 0, &PositionError{Line: line, Reason: "line out of range"}
	}
	start := c.lineStarts[line]
	end := len(c.text)
	if line+1 < len(c.lineStarts) {
		end = c.lineStarts[line+1] - 1
		if end > start && c.text[end-1] == '\r' {
			end--
		}
	}
	return start, end, nil
}

// LineString returns the text of line without its line terminator.
func (c *Content) LineString(line int) (string, error) {
	start, end, err := c.lineBounds(line)
	if err != nil {
		return "", err
	}
	return c.text[start:end], nil
}

// Offset converts pos to a byte offset into the text.
func (c *Content) Offset(pos protocol.Position) (int, error) {
	start, end, err := c.lineBounds(pos.Line)
	if err != nil {
		return 0, err
	}
	if pos.Column < 0 {
		return 0, &PositionError{Line: pos.Line, Column: pos.Column, Reason: "negative column"}
	}
	units := 0
	off := start
	for off < end && units < pos.Column {
		r, size := utf8.DecodeRuneInString(c.text[off:end])
		need := 1
		if r > 0xFFFF {
			need = 2
		}
		if units+need > pos.Column {
			return 0, &PositionError{Line: pos.Line, Column: pos.Column, Reason: "column splits a surrogate pair"}
		}
		units += need
		off += size
	}
	if units < pos.Column {
		return 0, &PositionError{Line: pos.Line, Column: pos.Column, Reason: "column past end of line"}
	}
	return off, nil
}

func (c *Content) span(r protocol.Range) (int, int, error) {
	if !r.IsValid() {
		return 0, 0, &RangeError{Range: r}
	}
	start, err := c.Offset(r.Start)
	if err != nil {
		return 0, 0, err
	}
	end, err := c.Offset(r.End)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// SubContent returns the text covered by r.
func (c *Content) SubContent(r protocol.Range) (string, error) {
	start, end, err := c.span(r)
	if err != nil {
		return "", err
	}
	return c.text[start:end], nil
}

// Insert inserts s at (line, column).
func (c *Content) Insert(line, column int, s string) error {
	off, err := c.Offset(protocol.Position{Line: line, Column: column})
	if err != nil {
		return err
	}
	c.reset(c.text[:off] + s + c.text[off:])
	return nil
}

// Replace replaces the text covered by r with s.
func (c *Content) Replace(r protocol.Range, s string) error {
	start, end, err := c.span(r)
	if err != nil {
		return err
	}
	c.reset(c.text[:start] + s + c.text[end:])
	return nil
}
