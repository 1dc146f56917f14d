package scanner

import (
	"github.com/rpmspec-tools/speclex/cursor"
	"github.com/rpmspec-tools/speclex/token"
)

// A recognizer tries to match one token family at the cursor position. It
// only runs when one of its kinds is requested and must emit only kinds
// present in the valid set.
type recognizer func(*Scanner, *cursor.Cursor, token.ValidSet) (token.Token, bool)

// defaultRecognizers is the dispatch order. Percent directives outrank the
// generic macro forms so a conditional keyword is never half-eaten as a
// simple macro, and the balanced-content scanners come last because they
// are maximally greedy and would swallow tokens error recovery needs to
// see.
var defaultRecognizers = []recognizer{
	scanNewline,
	scanDirective,
	scanMacro,
	scanExpandContent,
	scanShellContent,
}

// Scan attempts to recognize one token at the cursor position, accepting
// only kinds in valid. It returns the matched token, or false when nothing
// matches; "no token" is the only failure signal.
//
// Each recognizer runs on a probe copy of the cursor, so a failed attempt
// cannot disturb the next one. On success the cursor is advanced at least
// past the token end; on failure it is untouched.
func (s *Scanner) Scan(cur *cursor.Cursor, valid token.ValidSet) (token.Token, bool) {
	if valid.Empty() {
		return token.Token{}, false
	}

	for _, recognize := range s.recognizers {
		probe := *cur
		tok, ok := recognize(s, &probe, valid)
		if !ok {
			continue
		}
		if !valid.Has(tok.Kind) {
			// a recognizer must not emit unrequested kinds
			continue
		}
		*cur = probe
		return tok, true
	}

	return token.Token{}, false
}

// scanNewline emits an explicit line terminator when one is requested.
// Blanks before the terminator are skipped so a driver that stops its raw
// text at the last word still finds its line ending; a bare \r is not a
// line ending.
func scanNewline(s *Scanner, cur *cursor.Cursor, valid token.ValidSet) (token.Token, bool) {
	if !valid.Has(token.Newline) {
		return token.Token{}, false
	}

	if !valid.ContainsAny(token.ContentKinds) {
		for isHorizontalSpace(cur.Lookahead()) {
			cur.Advance(true)
		}
	}

	switch cur.Lookahead() {
	case '\n':
		cur.Advance(false)
	case '\r':
		if cur.Peek(1) != '\n' {
			return token.Token{}, false
		}
		cur.Advance(false)
		cur.Advance(false)
	default:
		return token.Token{}, false
	}

	cur.MarkEnd()
	return emit(token.Newline, cur), true
}
