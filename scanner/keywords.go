package scanner

import "sort"

// Keyword tables. All three are built once at package init and never
// mutated; lookups key a map with string(bytes), which Go evaluates
// without allocating.
//
// The longest entry is "transfiletriggerpostun" (22 bytes), well under the
// identifier scratch-buffer capacity, so a truncated identifier can never
// alias a keyword.

// reservedKeywords are names with special meaning in spec files that must
// not be matched as simple or parametric macros: conditional keywords,
// macro definitions, grammar-handled specials, and the rpm builtins.
var reservedKeywords = newKeywordSet(
	// conditionals
	"if", "elif", "else", "endif",
	"ifarch", "ifnarch", "elifarch",
	"ifos", "ifnos", "elifos",
	// definitions
	"define", "global", "undefine",
	// handled by dedicated grammar rules
	"setup", "patch",
	// builtin string macros
	"echo", "error", "expand", "getenv", "getncpus", "len", "lower",
	"macrobody", "quote", "reverse", "shescape", "shrink", "upper",
	"verbose", "warn",
	// builtin path macros
	"basename", "dirname", "exists", "load", "suffix", "uncompress",
	// builtin url macros
	"url2path", "u2p",
	// builtin multi-arg macros
	"gsub", "sub", "rep",
	// builtin standalone macros
	"dnl", "dump", "rpmversion", "trace",
	// other builtins
	"expr", "lua",
)

// sectionKeywords introduce new document structure. A conditional whose
// body contains one of these at a line start is a top-level conditional.
var sectionKeywords = newKeywordSet(
	// main sections
	"prep", "build", "install", "check", "clean",
	"files", "changelog", "description", "package",
	// runtime scriptlets
	"pre", "post", "preun", "postun",
	"pretrans", "posttrans", "preuntrans", "postuntrans",
	// triggers
	"triggerin", "triggerun", "triggerpostun", "triggerprein",
	// file triggers
	"filetriggerin", "filetriggerun", "filetriggerpostun",
	"transfiletriggerin", "transfiletriggerun", "transfiletriggerpostun",
)

// filesKeywords are directives valid only inside %files lists.
var filesKeywords = newKeywordSet(
	"defattr", "attr", "config", "doc", "docdir", "dir",
	"license", "verify", "ghost", "exclude",
)

type keywordSet map[string]struct{}

func newKeywordSet(words ...string) keywordSet {
	set := make(keywordSet, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func (set keywordSet) sorted() []string {
	words := make([]string, 0, len(set))
	for w := range set {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

var keywordTables = map[string]keywordSet{
	"reserved": reservedKeywords,
	"section":  sectionKeywords,
	"files":    filesKeywords,
}

// TableNames lists the keyword table names in display order.
func TableNames() []string { return []string{"reserved", "section", "files"} }

// Keywords returns the named keyword table, sorted. The names are
// "reserved", "section" and "files".
func Keywords(table string) ([]string, bool) {
	set, ok := keywordTables[table]
	if !ok {
		return nil, false
	}
	return set.sorted(), true
}

// KeywordClass returns the tables that contain name, in display order.
func KeywordClass(name string) []string {
	var tables []string
	for _, table := range TableNames() {
		if _, ok := keywordTables[table][name]; ok {
			tables = append(tables, table)
		}
	}
	return tables
}

func (set keywordSet) has(id *identBuf) bool {
	if id.truncated() {
		return false
	}
	_, ok := set[string(id.bytes())]
	return ok
}

// isKeyword reports whether the identifier is reserved in any table. Such
// names never tokenize as simple or parametric macros.
func isKeyword(id *identBuf) bool {
	return reservedKeywords.has(id) || filesKeywords.has(id) || sectionKeywords.has(id)
}

func isSectionKeyword(id *identBuf) bool { return sectionKeywords.has(id) }

// isPatchLegacy matches the legacy patch form: literal "patch" followed by
// one or more digits and nothing else. The grammar has a dedicated rule
// for these.
func isPatchLegacy(id *identBuf) bool {
	if id.truncated() || id.len() < len("patch")+1 {
		return false
	}
	b := id.bytes()
	if string(b[:5]) != "patch" {
		return false
	}
	for _, c := range b[5:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// isNil matches the special "nil" macro, which expands to nothing and is
// classified as a special variable rather than a simple macro.
func isNil(id *identBuf) bool { return id.is("nil") }

func isIdentifierStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentifierChar(c byte) bool {
	return isIdentifierStart(c) || isDigit(c)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
