// Package token defines the token kinds produced by the rpmspec scanner,
// the byte-span Token type, and the ValidSet bitmask used by callers to
// declare which kinds are acceptable at the current position.
package token

import "strings"

// Kind identifies a lexical token of the rpmspec language.
//
// The constants are ordered by expected frequency of appearance. Consumers
// that recover from invalid input by probing kinds in declaration order get
// better recovery behavior this way; the scanner itself does not depend on
// the ordering.
type Kind int

const (
	// SimpleMacro is a plain macro reference name (the `name` in `%name`
	// or `%{name}`). The leading percent is consumed by the caller.
	SimpleMacro Kind = iota

	// NegatedMacro is a macro name preceded by `!` inside braces, as in
	// `%{!name}`. The `!?` form is handled by the caller's grammar instead.
	NegatedMacro

	// SpecialMacro covers the argument-access and special names: `%*`,
	// `%**`, `%#`, positional digits such as `%1`, and `%nil`.
	SpecialMacro

	// EscapedPercent is the second percent of `%%`.
	EscapedPercent

	// Newline is an explicit line terminator (`\n` or `\r\n`), emitted
	// only when the caller asks for one.
	Newline

	// SectionName is a section keyword directly after `%`, such as
	// `%prep` or `%files`, ending at a word boundary.
	SectionName

	// ParametricMacro is a user macro invocation with same-line
	// arguments, such as `%myinit -n name`. The token covers `%myinit`.
	ParametricMacro

	// Conditional kinds. The keyword text is identical across contexts;
	// the kind records which structural context the conditional opens in.
	TopLevelIf
	ScriptletIf
	TopLevelIfArch
	ScriptletIfArch
	TopLevelIfNarch
	ScriptletIfNarch
	TopLevelIfOs
	ScriptletIfOs
	TopLevelIfNos
	ScriptletIfNos
	FilesIf
	FilesIfArch
	FilesIfNarch
	FilesIfOs
	FilesIfNos
	SubsectionIf
	SubsectionIfArch
	SubsectionIfNarch
	SubsectionIfOs
	SubsectionIfNos

	// ExpandContent is raw balanced-brace text, the literal body in
	// constructs like `%{expand:...}`.
	ExpandContent

	// ShellContent is raw balanced-paren text, the shell body in `%(...)`.
	ShellContent

	// KindCount closes the enum. It is not a valid token kind.
	KindCount
)

var kindNames = [KindCount]string{
	SimpleMacro:       "simple-macro",
	NegatedMacro:      "negated-macro",
	SpecialMacro:      "special-macro",
	EscapedPercent:    "escaped-percent",
	Newline:           "newline",
	SectionName:       "section-name",
	ParametricMacro:   "parametric-macro",
	TopLevelIf:        "top-level-if",
	ScriptletIf:       "scriptlet-if",
	TopLevelIfArch:    "top-level-ifarch",
	ScriptletIfArch:   "scriptlet-ifarch",
	TopLevelIfNarch:   "top-level-ifnarch",
	ScriptletIfNarch:  "scriptlet-ifnarch",
	TopLevelIfOs:      "top-level-ifos",
	ScriptletIfOs:     "scriptlet-ifos",
	TopLevelIfNos:     "top-level-ifnos",
	ScriptletIfNos:    "scriptlet-ifnos",
	FilesIf:           "files-if",
	FilesIfArch:       "files-ifarch",
	FilesIfNarch:      "files-ifnarch",
	FilesIfOs:         "files-ifos",
	FilesIfNos:        "files-ifnos",
	SubsectionIf:      "subsection-if",
	SubsectionIfArch:  "subsection-ifarch",
	SubsectionIfNarch: "subsection-ifnarch",
	SubsectionIfOs:    "subsection-ifos",
	SubsectionIfNos:   "subsection-ifnos",
	ExpandContent:     "expand-content",
	ShellContent:      "shell-content",
}

func (k Kind) String() string {
	if k < 0 || k >= KindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Token is a recognized token: its kind and the half-open byte span
// [Start, End) it covers in the input.
type Token struct {
	Kind  Kind
	Start int
	End   int
}

// Len returns the number of bytes the token covers.
func (t Token) Len() int { return t.End - t.Start }

// ValidSet is the set of token kinds the caller will accept from a single
// scan call. The scanner never emits a kind absent from the set.
type ValidSet uint32

// Of builds a set from the given kinds.
func Of(kinds ...Kind) ValidSet {
	var s ValidSet
	for _, k := range kinds {
		s = s.Add(k)
	}
	return s
}

// FromBools builds a set from a kind-indexed boolean array, the form used
// by parser runtimes that hand the scanner one flag per symbol. Entries
// past KindCount are ignored.
func FromBools(valid []bool) ValidSet {
	var s ValidSet
	for k := Kind(0); k < KindCount && int(k) < len(valid); k++ {
		if valid[k] {
			s = s.Add(k)
		}
	}
	return s
}

func (s ValidSet) Add(k Kind) ValidSet {
	if k < 0 || k >= KindCount {
		return s
	}
	return s | 1<<uint(k)
}

func (s ValidSet) Has(k Kind) bool {
	if k < 0 || k >= KindCount {
		return false
	}
	return s&(1<<uint(k)) != 0
}

// ContainsAny reports whether the two sets intersect.
func (s ValidSet) ContainsAny(other ValidSet) bool { return s&other != 0 }

// Union returns the combined set.
func (s ValidSet) Union(other ValidSet) ValidSet { return s | other }

func (s ValidSet) Empty() bool { return s == 0 }

// Kinds lists the members in declaration order.
func (s ValidSet) Kinds() []Kind {
	var kinds []Kind
	for k := Kind(0); k < KindCount; k++ {
		if s.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func (s ValidSet) String() string {
	kinds := s.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return "{" + strings.Join(names, " ") + "}"
}

// Kind groups used by the scanner's dispatch and by drivers composing
// per-context valid sets.
var (
	// MacroKinds are the kinds the simple-macro recognizer can emit.
	MacroKinds = Of(SimpleMacro, NegatedMacro, SpecialMacro, EscapedPercent)

	// ContentKinds are the balanced-delimiter raw content kinds.
	ContentKinds = Of(ExpandContent, ShellContent)

	// TopLevelConditionals, ScriptletConditionals, FilesConditionals and
	// SubsectionConditionals group the conditional kinds by context.
	TopLevelConditionals   = Of(TopLevelIf, TopLevelIfArch, TopLevelIfNarch, TopLevelIfOs, TopLevelIfNos)
	ScriptletConditionals  = Of(ScriptletIf, ScriptletIfArch, ScriptletIfNarch, ScriptletIfOs, ScriptletIfNos)
	FilesConditionals      = Of(FilesIf, FilesIfArch, FilesIfNarch, FilesIfOs, FilesIfNos)
	SubsectionConditionals = Of(SubsectionIf, SubsectionIfArch, SubsectionIfNarch, SubsectionIfOs, SubsectionIfNos)

	// ConditionalKinds is the union of all conditional contexts.
	ConditionalKinds = TopLevelConditionals | ScriptletConditionals | FilesConditionals | SubsectionConditionals

	// DirectiveKinds are the kinds the percent-directive recognizer can
	// emit: conditionals, section names and parametric macros.
	DirectiveKinds = ConditionalKinds | Of(SectionName, ParametricMacro)
)
