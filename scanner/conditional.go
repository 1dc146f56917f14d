package scanner

import (
	"github.com/rpmspec-tools/speclex/cursor"
	"github.com/rpmspec-tools/speclex/token"
)

// maxLookaheadLines bounds the forward scan for section keywords. Very
// large conditional blocks are rare; an unterminated one must not make the
// classifier walk the whole file.
const maxLookaheadLines = 2000

// conditionalKinds maps one if-like keyword to its context-specific token
// kinds.
type conditionalKinds struct {
	top        token.Kind
	scriptlet  token.Kind
	files      token.Kind
	subsection token.Kind
}

// set returns the four kinds as a ValidSet.
func (k conditionalKinds) set() token.ValidSet {
	return token.Of(k.top, k.scriptlet, k.files, k.subsection)
}

var conditionalTable = map[string]conditionalKinds{
	"if":      {token.TopLevelIf, token.ScriptletIf, token.FilesIf, token.SubsectionIf},
	"ifarch":  {token.TopLevelIfArch, token.ScriptletIfArch, token.FilesIfArch, token.SubsectionIfArch},
	"ifnarch": {token.TopLevelIfNarch, token.ScriptletIfNarch, token.FilesIfNarch, token.SubsectionIfNarch},
	"ifos":    {token.TopLevelIfOs, token.ScriptletIfOs, token.FilesIfOs, token.SubsectionIfOs},
	"ifnos":   {token.TopLevelIfNos, token.ScriptletIfNos, token.FilesIfNos, token.SubsectionIfNos},
}

// lookaheadFindsSection scans forward from just after a conditional
// keyword and reports whether the block's body introduces a new section.
//
// Only identifiers directly after a line-leading % are inspected. Nested
// if-like keywords raise the nesting depth, the matching %endif at depth 0
// ends the block with no section found, and a section keyword at any depth
// reports a section immediately. The scan gives up after
// maxLookaheadLines lines or at end of input, conservatively reporting no
// section, so it terminates on unbalanced input.
//
// The cursor is left wherever the scan stopped; the caller has already
// marked the token end, so the read-ahead does not extend the token.
func lookaheadFindsSection(cur *cursor.Cursor) bool {
	nesting := 1
	lines := 0
	atLineStart := true

	for !cur.EOF() && lines < maxLookaheadLines {
		c := cur.Lookahead()

		if c == '\r' || c == '\n' {
			cur.Advance(false)
			if c == '\r' && cur.Lookahead() == '\n' {
				cur.Advance(false)
			}
			atLineStart = true
			lines++
			continue
		}

		if c == ' ' || c == '\t' {
			// indentation keeps the line-start property
			cur.Advance(false)
			continue
		}

		if c == '%' && atLineStart {
			cur.Advance(false)

			var id identBuf
			readIdentifier(cur, &id)

			if !id.empty() {
				switch {
				case id.is("endif"):
					nesting--
					if nesting == 0 {
						return false
					}
				case id.is("if"), id.is("ifarch"), id.is("ifnarch"),
					id.is("ifos"), id.is("ifnos"):
					nesting++
				case isSectionKeyword(&id):
					return true
				}
			}
			atLineStart = false
			continue
		}

		atLineStart = false
		cur.Advance(false)
	}

	return false
}

// resolveConditional picks the context-specific kind for a recognized
// conditional keyword, given which of its four kinds the caller accepts.
//
// Resolution order:
//
//  1. The files kind always wins. Files blocks can nest all the other
//     content, so no lookahead is needed.
//  2. A single requested context is used directly and the classification
//     cache is invalidated: the parser has committed to a structural
//     region, so any cached result describes a block already behind us.
//  3. Top-level requested together with scriptlet or subsection means the
//     body decides: a section keyword inside the block makes it top-level,
//     anything else yields the other requested kind. The classification is
//     cached for retries at the same position.
//  4. Scriptlet and subsection together (without top-level) cannot be told
//     apart by lookahead; the scriptlet reading wins.
func resolveConditional(s *Scanner, cur *cursor.Cursor, kinds conditionalKinds, valid token.ValidSet) (token.Kind, bool) {
	topValid := valid.Has(kinds.top)
	scriptletValid := valid.Has(kinds.scriptlet)
	subValid := valid.Has(kinds.subsection)

	if valid.Has(kinds.files) {
		return kinds.files, true
	}

	switch {
	case topValid && !scriptletValid && !subValid:
		s.invalidateLookahead()
		return kinds.top, true
	case scriptletValid && !topValid && !subValid:
		s.invalidateLookahead()
		return kinds.scriptlet, true
	case subValid && !topValid && !scriptletValid:
		s.invalidateLookahead()
		return kinds.subsection, true
	}

	if topValid {
		if s.cachedLookahead(cur) {
			return kinds.top, true
		}
		if scriptletValid {
			return kinds.scriptlet, true
		}
		return kinds.subsection, true
	}

	if scriptletValid {
		return kinds.scriptlet, true
	}

	return 0, false
}
