package scanner

import (
	"github.com/rpmspec-tools/speclex/cursor"
	"github.com/rpmspec-tools/speclex/token"
)

// scanDirective recognizes `%` followed by an identifier and routes it:
// conditional keywords go through the context classifier, section keywords
// become word-bounded section names, and anything else may be a parametric
// macro when the context allows rest-of-line arguments. Every emitted
// token spans %identifier; the condition text or arguments after it belong
// to the caller.
func scanDirective(s *Scanner, cur *cursor.Cursor, valid token.ValidSet) (token.Token, bool) {
	if !valid.ContainsAny(token.DirectiveKinds) {
		return token.Token{}, false
	}

	// directives may sit after insignificant whitespace, except while a
	// balanced-content scan is pending: then whitespace is content and
	// must be left alone
	if !valid.ContainsAny(token.ContentKinds) {
		skipWhitespace(cur, valid.Has(token.Newline))
	}

	if cur.Lookahead() != '%' {
		return token.Token{}, false
	}
	cur.MarkEnd()
	cur.Advance(false)

	if !isIdentifierStart(cur.Lookahead()) {
		return token.Token{}, false
	}

	var id identBuf
	readIdentifier(cur, &id)
	cur.MarkEnd()

	if kinds, ok := lookupConditional(&id); ok {
		if k, ok := resolveConditional(s, cur, kinds, valid); ok {
			return emit(k, cur), true
		}
		return token.Token{}, false
	}

	// section names end at a word boundary: %conf inside %configure is
	// not the conf section
	if valid.Has(token.SectionName) && isSectionKeyword(&id) && !isIdentifierChar(cur.Lookahead()) {
		return emit(token.SectionName, cur), true
	}

	if valid.Has(token.ParametricMacro) && restOfLinePermitted(valid) &&
		isParametricName(&id) && isHorizontalSpace(cur.Lookahead()) {
		return emit(token.ParametricMacro, cur), true
	}

	return token.Token{}, false
}

func lookupConditional(id *identBuf) (conditionalKinds, bool) {
	if id.truncated() {
		return conditionalKinds{}, false
	}
	kinds, ok := conditionalTable[string(id.bytes())]
	return kinds, ok
}

// isParametricName reports whether the identifier can name a user-defined
// parametric macro. Reserved names, section keywords, files directives,
// the legacy patchN form and nil all have other meanings.
func isParametricName(id *identBuf) bool {
	return !isKeyword(id) && !isPatchLegacy(id) && !isNil(id)
}

// restOfLinePermitted reports whether the current context allows a macro
// to claim rest-of-line arguments. Inside scriptlet and files contexts a
// macro expands inline and the rest of the line is literal content, so the
// parametric reading is wrong there; the requested conditional kinds tell
// us which context the caller is in.
func restOfLinePermitted(valid token.ValidSet) bool {
	return !valid.ContainsAny(token.ScriptletConditionals | token.FilesConditionals)
}

func isHorizontalSpace(c byte) bool { return c == ' ' || c == '\t' }

// skipWhitespace advances past insignificant whitespace without including
// it in the token. When the caller asked for an explicit newline token,
// line terminators are significant and only horizontal whitespace is
// skipped.
func skipWhitespace(cur *cursor.Cursor, keepNewlines bool) {
	for {
		switch cur.Lookahead() {
		case ' ', '\t':
			cur.Advance(true)
		case '\n', '\r', '\v', '\f':
			if keepNewlines {
				return
			}
			cur.Advance(true)
		default:
			return
		}
	}
}
