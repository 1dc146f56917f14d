package scanner

import "github.com/rpmspec-tools/speclex/cursor"

// identBufCap bounds the stored copy of a scanned identifier. Every
// keyword is far shorter than this, so truncation can only affect names
// that could never match a table entry anyway.
const identBufCap = 64

// identBuf collects an identifier while scanning. The stored copy is
// capped at identBufCap bytes, but n counts every appended byte, so the
// true consumed length is always known and the input cursor stays
// correctly positioned no matter how long the identifier is. Comparisons
// check the true length first: an overlong identifier never equals a
// keyword, it is just not stored in full.
type identBuf struct {
	buf [identBufCap]byte
	n   int
}

func (b *identBuf) append(c byte) {
	if b.n < len(b.buf) {
		b.buf[b.n] = c
	}
	b.n++
}

// len returns the true number of bytes consumed, which may exceed the
// stored capacity.
func (b *identBuf) len() int { return b.n }

func (b *identBuf) empty() bool { return b.n == 0 }

// truncated reports whether bytes() holds only a prefix of the identifier.
func (b *identBuf) truncated() bool { return b.n > len(b.buf) }

// bytes returns the stored copy, at most identBufCap bytes.
func (b *identBuf) bytes() []byte {
	if b.truncated() {
		return b.buf[:]
	}
	return b.buf[:b.n]
}

// is compares against a literal by true length and bytes.
func (b *identBuf) is(lit string) bool {
	return b.n == len(lit) && string(b.bytes()) == lit
}

// readIdentifier consumes identifier characters from the cursor into b.
// The cursor always advances past the whole identifier, even when b stops
// storing bytes.
func readIdentifier(cur *cursor.Cursor, b *identBuf) {
	for isIdentifierChar(cur.Lookahead()) {
		b.append(cur.Lookahead())
		cur.Advance(false)
	}
}
