package scanner

import (
	"github.com/rpmspec-tools/speclex/cursor"
	"github.com/rpmspec-tools/speclex/token"
)

// scanMacro classifies what follows an already-consumed percent. The
// caller's grammar matched the `%` itself; this recognizer inspects the
// byte after it:
//
//	%	escaped percent
//	!name	negated macro (but !? belongs to the conditional form)
//	*, **, #	special variables
//	digits	positional argument, special variable
//	name	simple macro, unless the name is reserved
//
// Whitespace is never skipped here: a space after the percent means there
// is no macro.
func scanMacro(s *Scanner, cur *cursor.Cursor, valid token.ValidSet) (token.Token, bool) {
	if !valid.ContainsAny(token.MacroKinds) {
		return token.Token{}, false
	}

	cur.MarkEnd()

	switch c := cur.Lookahead(); {
	case c == '%':
		if !valid.Has(token.EscapedPercent) {
			return token.Token{}, false
		}
		cur.Advance(false)
		cur.MarkEnd()
		return emit(token.EscapedPercent, cur), true

	case c == '!':
		if !valid.Has(token.NegatedMacro) {
			return token.Token{}, false
		}
		cur.Advance(false)
		// !? is the conditional form, handled by the grammar
		if cur.Lookahead() == '?' {
			return token.Token{}, false
		}
		if !isIdentifierStart(cur.Lookahead()) {
			return token.Token{}, false
		}
		for isIdentifierChar(cur.Lookahead()) {
			cur.Advance(false)
		}
		cur.MarkEnd()
		return emit(token.NegatedMacro, cur), true

	case c == '*':
		if !valid.Has(token.SpecialMacro) {
			return token.Token{}, false
		}
		cur.Advance(false)
		if cur.Lookahead() == '*' {
			cur.Advance(false)
		}
		cur.MarkEnd()
		return emit(token.SpecialMacro, cur), true

	case c == '#':
		if !valid.Has(token.SpecialMacro) {
			return token.Token{}, false
		}
		cur.Advance(false)
		cur.MarkEnd()
		return emit(token.SpecialMacro, cur), true

	case isDigit(c):
		if !valid.Has(token.SpecialMacro) {
			return token.Token{}, false
		}
		for isDigit(cur.Lookahead()) {
			cur.Advance(false)
		}
		cur.MarkEnd()
		return emit(token.SpecialMacro, cur), true

	case isIdentifierStart(c):
		if !valid.Has(token.SimpleMacro) {
			return token.Token{}, false
		}

		var id identBuf
		readIdentifier(cur, &id)

		// reserved names and the legacy patchN form have dedicated
		// grammar rules
		if isKeyword(&id) || isPatchLegacy(&id) {
			return token.Token{}, false
		}

		if isNil(&id) {
			if !valid.Has(token.SpecialMacro) {
				return token.Token{}, false
			}
			cur.MarkEnd()
			return emit(token.SpecialMacro, cur), true
		}

		cur.MarkEnd()
		return emit(token.SimpleMacro, cur), true

	default:
		return token.Token{}, false
	}
}

// emit builds a token of kind k from the cursor's current span.
func emit(k token.Kind, cur *cursor.Cursor) token.Token {
	start, end := cur.Span()
	return token.Token{Kind: k, Start: start, End: end}
}
