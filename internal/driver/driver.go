// Package driver walks a spec file and feeds the scanner the valid sets
// each grammar context would request, collecting the resulting lexemes.
//
// The driver is deliberately not a parser. It keeps just enough line and
// section structure to choose the right valid set at each percent sign:
// everything between the spans the scanner claims is gathered as raw
// text. Its output is the flat lexeme stream the CLI surfaces print and
// the tests assert against.
package driver

import (
	"bytes"

	"github.com/rpmspec-tools/speclex/cursor"
	"github.com/rpmspec-tools/speclex/scanner"
	"github.com/rpmspec-tools/speclex/token"
)

// Lexeme is one classified span of the input. Kind is meaningful only
// when Raw is false; raw lexemes are text the driver gathered itself.
type Lexeme struct {
	Kind  token.Kind
	Raw   bool
	Start int
	End   int
	Line  int
}

// Name returns the lexeme's display name.
func (l Lexeme) Name() string {
	if l.Raw {
		return "text"
	}
	return l.Kind.String()
}

// context identifies which structural region of a spec file the driver is
// in. The region decides which conditional kinds a percent sign may
// resolve to.
type context int

const (
	ctxTopLevel context = iota
	ctxScriptlet
	ctxFiles
	ctxSubsection
)

// directiveSet returns the kinds the context requests for a percent sign
// at the start of a line. Parametric macros claim the rest of the line,
// which only the top-level context permits.
func directiveSet(ctx context) token.ValidSet {
	switch ctx {
	case ctxScriptlet:
		return token.TopLevelConditionals | token.ScriptletConditionals |
			token.Of(token.SectionName)
	case ctxFiles:
		return token.TopLevelConditionals | token.FilesConditionals |
			token.Of(token.SectionName)
	case ctxSubsection:
		return token.TopLevelConditionals | token.SubsectionConditionals |
			token.Of(token.SectionName)
	default:
		return token.TopLevelConditionals |
			token.Of(token.SectionName, token.ParametricMacro)
	}
}

// sectionContext maps a section name to the context of its body.
func sectionContext(name string) context {
	switch name {
	case "files":
		return ctxFiles
	case "package", "description":
		return ctxSubsection
	default:
		// build sections, scriptlets, triggers and the changelog all
		// hold command-like lines
		return ctxScriptlet
	}
}

// flowKeywords are matched by the driver itself. They are grammar
// keywords with a fixed spelling, not scanner tokens.
var flowKeywords = map[string]bool{
	"endif":    true,
	"else":     true,
	"elif":     true,
	"elifarch": true,
	"elifos":   true,
}

var expandOpen = []byte("%{expand:")

// Driver tokenizes one input buffer with one scanner instance.
type Driver struct {
	src []byte
	sc  *scanner.Scanner

	ctx         context
	pos         int
	line        int
	atLineStart bool

	rawStart int
	rawLine  int
	out      []Lexeme
}

// New returns a driver over src, starting in the top-level context.
func New(src []byte) *Driver {
	return &Driver{
		src:         src,
		sc:          scanner.New(),
		ctx:         ctxTopLevel,
		line:        1,
		atLineStart: true,
		rawStart:    -1,
	}
}

// Tokenize runs a fresh driver over src and returns its lexemes.
func Tokenize(src []byte) []Lexeme {
	return New(src).Run()
}

// State returns the scanner's serialized state, as it stands now.
func (d *Driver) State() []byte {
	return d.sc.Serialize()
}

// Run consumes the whole input and returns the lexeme stream.
func (d *Driver) Run() []Lexeme {
	for d.pos < len(d.src) {
		c := d.src[d.pos]

		if c == '\n' || c == '\r' {
			if d.scanNewline() {
				continue
			}
			// a bare carriage return is just a byte
			d.rawByte()
			d.atLineStart = false
			continue
		}

		if c == '%' {
			if d.scanPercent() {
				continue
			}
			d.rawByte()
			d.atLineStart = false
			continue
		}

		if !(c == ' ' || c == '\t') {
			d.atLineStart = false
		}
		d.rawByte()
	}

	d.flushRaw()
	return d.out
}

// scanNewline emits a newline lexeme, reporting false on a bare carriage
// return the scanner refuses.
func (d *Driver) scanNewline() bool {
	cur := cursor.NewAt(d.src, d.pos)
	tok, ok := d.sc.Scan(cur, token.Of(token.Newline))
	if !ok {
		return false
	}
	d.flushRaw()
	d.emit(tok)
	d.pos = tok.End
	d.line++
	d.atLineStart = true
	return true
}

// scanPercent handles one percent sign. Line-leading percents may open
// directives; any percent may open balanced content or a macro. A percent
// the scanner wants no part of stays raw text.
func (d *Driver) scanPercent() bool {
	if d.atLineStart {
		if d.matchFlowKeyword() {
			return true
		}
		cur := cursor.NewAt(d.src, d.pos)
		if tok, ok := d.sc.Scan(cur, directiveSet(d.ctx)); ok {
			d.flushRaw()
			d.emit(tok)
			d.pos = tok.End
			d.atLineStart = false
			if tok.Kind == token.SectionName {
				// skip the % when mapping the section word
				d.ctx = sectionContext(string(d.src[tok.Start+1 : tok.End]))
			}
			return true
		}
	}

	if bytes.HasPrefix(d.src[d.pos:], expandOpen) {
		d.rawSpan(d.pos, d.pos+len(expandOpen))
		d.scanContent(token.ExpandContent)
		return true
	}
	if bytes.HasPrefix(d.src[d.pos:], []byte("%(")) {
		d.rawSpan(d.pos, d.pos+2)
		d.scanContent(token.ShellContent)
		return true
	}

	// the grammar consumes the % itself before asking for a macro
	cur := cursor.NewAt(d.src, d.pos+1)
	tok, ok := d.sc.Scan(cur, token.MacroKinds)
	if !ok {
		return false
	}
	d.flushRaw()
	// fold the % into the macro lexeme
	tok.Start = d.pos
	d.emit(tok)
	d.pos = tok.End
	d.atLineStart = false
	return true
}

// matchFlowKeyword consumes %endif, %else and the %elif forms as raw
// lexemes.
func (d *Driver) matchFlowKeyword() bool {
	end := d.pos + 1
	for end < len(d.src) && isWordByte(d.src[end]) {
		end++
	}
	if !flowKeywords[string(d.src[d.pos+1:end])] {
		return false
	}
	d.rawSpan(d.pos, end)
	d.atLineStart = false
	return true
}

// scanContent runs one balanced-content scan after an opening delimiter.
// Empty content is fine; the closing delimiter stays with the raw text.
func (d *Driver) scanContent(kind token.Kind) {
	cur := cursor.NewAt(d.src, d.pos)
	tok, ok := d.sc.Scan(cur, token.Of(kind))
	if !ok {
		return
	}
	d.flushRaw()
	d.emit(tok)
	d.pos = tok.End
}

func (d *Driver) emit(tok token.Token) {
	d.out = append(d.out, Lexeme{
		Kind:  tok.Kind,
		Start: tok.Start,
		End:   tok.End,
		Line:  d.line,
	})
}

// rawByte adds the current byte to the open raw run.
func (d *Driver) rawByte() {
	if d.rawStart < 0 {
		d.rawStart = d.pos
		d.rawLine = d.line
	}
	d.pos++
}

// rawSpan flushes any open run and emits [start, end) as one raw lexeme.
func (d *Driver) rawSpan(start, end int) {
	d.flushRaw()
	d.out = append(d.out, Lexeme{Raw: true, Start: start, End: end, Line: d.line})
	d.pos = end
}

func (d *Driver) flushRaw() {
	if d.rawStart < 0 {
		return
	}
	d.out = append(d.out, Lexeme{Raw: true, Start: d.rawStart, End: d.pos, Line: d.rawLine})
	d.rawStart = -1
}

func isWordByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') || c == '_'
}
