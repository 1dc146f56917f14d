package scanner

import (
	"github.com/rpmspec-tools/speclex/cursor"
	"github.com/rpmspec-tools/speclex/token"
)

// The balanced-content scanners gather the raw text arguments of
// %{expand:...} and %(...). Both track delimiter depth so nested pairs
// stay inside the content, stop before the outer closer at depth 0 without
// consuming it, and stop before any % that starts a genuine nested macro
// so the caller can parse that macro structurally. Unterminated content
// runs to end of input; whatever was gathered is the token.

// scanExpandContent recognizes brace-balanced raw content.
func scanExpandContent(s *Scanner, cur *cursor.Cursor, valid token.ValidSet) (token.Token, bool) {
	if !valid.Has(token.ExpandContent) {
		return token.Token{}, false
	}
	if !scanBraceContent(cur) {
		return token.Token{}, false
	}
	return emit(token.ExpandContent, cur), true
}

// scanShellContent recognizes paren-balanced raw content.
func scanShellContent(s *Scanner, cur *cursor.Cursor, valid token.ValidSet) (token.Token, bool) {
	if !valid.Has(token.ShellContent) {
		return token.Token{}, false
	}
	if !scanParenContent(cur) {
		return token.Token{}, false
	}
	return emit(token.ShellContent, cur), true
}

// scanBraceContent consumes expand-style content. The sequences %%, %#,
// %* and %<digits> stay literal content: they are re-evaluated after the
// enclosing expansion completes. Any other macro-start sequence ends the
// content just before its %.
func scanBraceContent(cur *cursor.Cursor) bool {
	depth := 0
	hasContent := false

	for !cur.EOF() {
		switch cur.Lookahead() {
		case '%':
			// remember the stop point in case a real macro follows
			cur.MarkEnd()
			cur.Advance(false)
			if cur.EOF() {
				// trailing % is content
				cur.MarkEnd()
				return true
			}

			switch c := cur.Lookahead(); {
			case c == '%' || c == '#' || c == '*':
				cur.Advance(false)
				cur.MarkEnd()
				hasContent = true
			case isDigit(c):
				for isDigit(cur.Lookahead()) {
					cur.Advance(false)
				}
				cur.MarkEnd()
				hasContent = true
			case isExpandMacroStart(c):
				// token ends at the mark set before %
				return hasContent
			default:
				// lone % is content; the follower is handled
				// by the outer loop
				cur.MarkEnd()
				hasContent = true
			}

		case '{':
			depth++
			cur.Advance(false)
			cur.MarkEnd()
			hasContent = true

		case '}':
			if depth == 0 {
				// the closer belongs to the enclosing macro
				return hasContent
			}
			depth--
			cur.Advance(false)
			cur.MarkEnd()
			hasContent = true

		default:
			cur.Advance(false)
			cur.MarkEnd()
			hasContent = true
		}
	}

	return hasContent
}

// scanParenContent consumes shell-style content. A % only ends the
// content when the next byte could begin a macro; otherwise it is ordinary
// shell text, which keeps idioms like ${var%.*} intact.
func scanParenContent(cur *cursor.Cursor) bool {
	depth := 0
	hasContent := false

	for !cur.EOF() {
		switch cur.Lookahead() {
		case '%':
			if isShellMacroStart(cur.Peek(1)) {
				cur.MarkEnd()
				return hasContent
			}
			cur.Advance(false)
			hasContent = true

		case '(':
			depth++
			cur.Advance(false)
			hasContent = true

		case ')':
			if depth == 0 {
				cur.MarkEnd()
				return hasContent
			}
			depth--
			cur.Advance(false)
			hasContent = true

		default:
			cur.Advance(false)
			hasContent = true
		}
	}

	cur.MarkEnd()
	return hasContent
}

// isExpandMacroStart reports whether c after a % begins a nested macro
// inside expand content. Digits are excluded here: %<digits> was already
// consumed as a literal positional reference.
func isExpandMacroStart(c byte) bool {
	switch c {
	case '{', '(', '[', '!', '?':
		return true
	}
	return isIdentifierStart(c)
}

// isShellMacroStart reports whether c after a % begins a macro inside
// shell content.
func isShellMacroStart(c byte) bool {
	switch c {
	case '{', '(', '[', '!', '?', '*', '#':
		return true
	}
	return isIdentifierStart(c) || isDigit(c)
}
