// Package cursor provides the scanner-facing view of an input buffer. It
// mirrors the essential incremental-lexer API: lookahead, advance with
// optional skip, and an explicit token-end mark that may trail far behind
// the read position.
package cursor

// Cursor is a forward-only reader over a byte buffer. The token span is
// [Start, End) where End is set by MarkEnd; reading past the mark is legal
// and is how bounded lookahead works.
type Cursor struct {
	src []byte

	start int
	pos   int
	end   int
}

// New returns a cursor at the beginning of src.
func New(src []byte) *Cursor { return NewAt(src, 0) }

// NewAt returns a cursor positioned at pos, the entry point for re-scanning
// after an incremental edit. pos is clamped to [0, len(src)].
func NewAt(src []byte, pos int) *Cursor {
	if pos < 0 {
		pos = 0
	}
	if pos > len(src) {
		pos = len(src)
	}
	return &Cursor{src: src, start: pos, pos: pos, end: pos}
}

// EOF reports whether the read position is past the last byte.
func (c *Cursor) EOF() bool { return c.pos >= len(c.src) }

// Lookahead returns the byte at the read position, or 0 at EOF.
func (c *Cursor) Lookahead() byte {
	if c.pos >= len(c.src) {
		return 0
	}
	return c.src[c.pos]
}

// Peek returns the byte n positions ahead of the read position, or 0 when
// that falls outside the buffer. Peek(0) is Lookahead.
func (c *Cursor) Peek(n int) byte {
	i := c.pos + n
	if n < 0 || i >= len(c.src) {
		return 0
	}
	return c.src[i]
}

// Advance consumes one byte. When skip is true the consumed byte is
// excluded from the token span: the span start and the end mark move up to
// the new read position. Advancing at EOF does nothing.
func (c *Cursor) Advance(skip bool) {
	if c.pos < len(c.src) {
		c.pos++
	}
	if skip {
		c.start = c.pos
		c.end = c.pos
	}
}

// MarkEnd records the current read position as the token end. Subsequent
// reads do not extend the token unless MarkEnd is called again.
func (c *Cursor) MarkEnd() { c.end = c.pos }

// Pos returns the read position.
func (c *Cursor) Pos() int { return c.pos }

// Start returns the token start position.
func (c *Cursor) Start() int { return c.start }

// End returns the marked token end position.
func (c *Cursor) End() int { return c.end }

// Span returns the token span [start, end).
func (c *Cursor) Span() (start, end int) { return c.start, c.end }

// Text returns the bytes of the current token span. The slice aliases the
// underlying buffer.
func (c *Cursor) Text() []byte { return c.src[c.start:c.end] }
