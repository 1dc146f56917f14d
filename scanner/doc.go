// Package scanner implements the context-aware tokenizer for RPM spec files.
//
// The lexical grammar of spec files is context-sensitive: the same keyword
// text yields different token identities depending on what structurally
// follows it, and several constructs require balanced-delimiter scanning
// that a declarative grammar cannot express. This package supplies the
// hand-rolled half: given an input cursor and the set of token kinds the
// caller currently accepts, it decides whether a token exists at that
// position, which kind it is, and how many bytes it covers.
//
// Key components:
//
// Scanner: the per-session state. The only thing that survives across calls
// is a single-slot cache of the last conditional-body classification; it is
// serialized and restored around incremental edits.
//
// Recognizers: independent token-family recognizers (newline, percent
// directive, simple macro, balanced content) tried in a fixed priority
// order. Each recognizer only runs when one of its kinds is requested, and
// a probe cursor keeps a failed attempt from disturbing the next one.
//
// Conditional classifier: resolves the structural ambiguity of an if-like
// keyword by bounded forward lookahead. A conditional whose body introduces
// a new section (for example a %files inside %if) opens a top-level block;
// one whose body is plain script lines stays inside the enclosing
// scriptlet. The lookahead is capped at maxLookaheadLines so malformed
// input cannot make it scan forever.
//
// Keyword tables: immutable sets distinguishing reserved macro names,
// section-introducing keywords, and files-list directives. Identifiers are
// collected through a fixed-capacity scratch buffer that keeps the true
// consumed length even when the stored copy truncates, so the cursor never
// loses position on absurdly long names.
//
// Usage:
//
//	s := scanner.New()
//	cur := cursor.New(src)
//	tok, ok := s.Scan(cur, token.Of(token.SimpleMacro, token.SpecialMacro))
//	if ok {
//	    // src[tok.Start:tok.End] is the recognized token
//	}
//
// The scanner never returns errors: "no token" is the single failure
// signal, and the caller falls back to its other grammar paths.
package scanner
