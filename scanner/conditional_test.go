package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpmspec-tools/speclex/token"
)

func TestScanConditionalResolution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		valid    token.ValidSet
		wantOK   bool
		wantKind token.Kind
	}{
		{
			name:     "body without section reads as scriptlet",
			src:      "%if %{with foo}\nmake\n%endif\n",
			valid:    token.Of(token.TopLevelIf, token.ScriptletIf),
			wantOK:   true,
			wantKind: token.ScriptletIf,
		},
		{
			name:     "body with section reads as top level",
			src:      "%if 0%{?fedora}\n%check\nmake test\n%endif\n",
			valid:    token.Of(token.TopLevelIf, token.ScriptletIf),
			wantOK:   true,
			wantKind: token.TopLevelIf,
		},
		{
			name:     "body without section reads as subsection",
			src:      "%if %{with foo}\nRequires: bar\n%endif\n",
			valid:    token.Of(token.TopLevelIf, token.SubsectionIf),
			wantOK:   true,
			wantKind: token.SubsectionIf,
		},
		{
			name:     "files context wins without lookahead",
			src:      "%if %{with foo}\n/usr/bin/foo\n%endif\n",
			valid:    token.Of(token.TopLevelIf, token.ScriptletIf, token.FilesIf),
			wantOK:   true,
			wantKind: token.FilesIf,
		},
		{
			name:     "single context is used directly",
			src:      "%if %{with foo}\nanything\n%endif\n",
			valid:    token.Of(token.ScriptletIf),
			wantOK:   true,
			wantKind: token.ScriptletIf,
		},
		{
			name:     "scriptlet beats subsection when both fit",
			src:      "%if %{with foo}\nanything\n%endif\n",
			valid:    token.Of(token.ScriptletIf, token.SubsectionIf),
			wantOK:   true,
			wantKind: token.ScriptletIf,
		},
		{
			name:     "all three ambiguous contexts prefer scriptlet",
			src:      "%if %{with foo}\nmake\n%endif\n",
			valid:    token.Of(token.TopLevelIf, token.ScriptletIf, token.SubsectionIf),
			wantOK:   true,
			wantKind: token.ScriptletIf,
		},
		{
			name:   "no matching context declines",
			src:    "%if %{with foo}\nmake\n%endif\n",
			valid:  token.Of(token.SectionName),
			wantOK: false,
		},
		{
			name:   "wrong keyword kinds decline",
			src:    "%ifarch x86_64\nmake\n%endif\n",
			valid:  token.Of(token.TopLevelIf, token.ScriptletIf),
			wantOK: false,
		},
		{
			name:     "nested block resolves by its own endif",
			src:      "%if a\n%if b\nmake\n%endif\n%endif\n%build\n",
			valid:    token.Of(token.TopLevelIf, token.ScriptletIf),
			wantOK:   true,
			wantKind: token.ScriptletIf,
		},
		{
			name:     "section after endif does not count",
			src:      "%if a\nmake\n%endif\n%files\n",
			valid:    token.Of(token.TopLevelIf, token.ScriptletIf),
			wantOK:   true,
			wantKind: token.ScriptletIf,
		},
		{
			name:     "section inside nested block counts",
			src:      "%if a\n%if b\n%build\n%endif\n%endif\n",
			valid:    token.Of(token.TopLevelIf, token.ScriptletIf),
			wantOK:   true,
			wantKind: token.TopLevelIf,
		},
		{
			name:     "indented section keyword counts",
			src:      "%if a\n  %install\n%endif\n",
			valid:    token.Of(token.TopLevelIf, token.ScriptletIf),
			wantOK:   true,
			wantKind: token.TopLevelIf,
		},
		{
			name:     "mid-line percent is not inspected",
			src:      "%if a\necho %build\n%endif\n",
			valid:    token.Of(token.TopLevelIf, token.ScriptletIf),
			wantOK:   true,
			wantKind: token.ScriptletIf,
		},
		{
			name:     "unterminated block reads as scriptlet",
			src:      "%if a\nmake\n",
			valid:    token.Of(token.TopLevelIf, token.ScriptletIf),
			wantOK:   true,
			wantKind: token.ScriptletIf,
		},
		{
			name:     "crlf line endings",
			src:      "%if a\r\nmake\r\n%post\r\n%endif\r\n",
			valid:    token.Of(token.TopLevelIf, token.ScriptletIf),
			wantOK:   true,
			wantKind: token.TopLevelIf,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := New()
			tok, ok := scanAt(t, s, tt.src, 0, tt.valid)
			if !tt.wantOK {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, tok.Kind)
			assert.Equal(t, 0, tok.Start)
		})
	}
}

func TestScanConditionalKeywordMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		keyword  string
		valid    token.ValidSet
		wantKind token.Kind
	}{
		{keyword: "if", valid: token.Of(token.FilesIf), wantKind: token.FilesIf},
		{keyword: "ifarch", valid: token.Of(token.TopLevelIfArch), wantKind: token.TopLevelIfArch},
		{keyword: "ifarch", valid: token.Of(token.FilesIfArch), wantKind: token.FilesIfArch},
		{keyword: "ifnarch", valid: token.Of(token.ScriptletIfNarch), wantKind: token.ScriptletIfNarch},
		{keyword: "ifos", valid: token.Of(token.SubsectionIfOs), wantKind: token.SubsectionIfOs},
		{keyword: "ifnos", valid: token.Of(token.TopLevelIfNos), wantKind: token.TopLevelIfNos},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.keyword+" "+tt.wantKind.String(), func(t *testing.T) {
			t.Parallel()

			src := "%" + tt.keyword + " cond\nbody\n%endif\n"
			s := New()
			tok, ok := scanAt(t, s, src, 0, tt.valid)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, tok.Kind)
			assert.Equal(t, "%"+tt.keyword, tokenText(src, tok))
		})
	}
}

func TestScanConditionalTokenSpansKeywordOnly(t *testing.T) {
	t.Parallel()

	// classification reads far into the body; the token must still end
	// right after the keyword
	src := "  %if %{with tests}\n%check\nmake test\n%endif\n"
	s := New()
	tok, ok := scanAt(t, s, src, 0, token.Of(token.TopLevelIf, token.ScriptletIf))
	require.True(t, ok)
	assert.Equal(t, token.TopLevelIf, tok.Kind)
	assert.Equal(t, "%if", tokenText(src, tok))
	assert.Equal(t, 2, tok.Start)
	assert.Equal(t, 5, tok.End)
}

func TestScanConditionalLookaheadIsBounded(t *testing.T) {
	t.Parallel()

	valid := token.Of(token.TopLevelIf, token.ScriptletIf)

	// a section within the window is seen
	near := "%if a\n" + strings.Repeat("line\n", 10) + "%check\n%endif\n"
	s := New()
	tok, ok := scanAt(t, s, near, 0, valid)
	require.True(t, ok)
	assert.Equal(t, token.TopLevelIf, tok.Kind)

	// past the line cap the scan gives up and reports no section
	far := "%if a\n" + strings.Repeat("line\n", maxLookaheadLines+100) + "%check\n%endif\n"
	s = New()
	tok, ok = scanAt(t, s, far, 0, valid)
	require.True(t, ok)
	assert.Equal(t, token.ScriptletIf, tok.Kind)
}

func TestLookaheadCacheTransitions(t *testing.T) {
	t.Parallel()

	ambiguous := token.Of(token.TopLevelIf, token.ScriptletIf)

	s := New()
	assert.False(t, s.cacheValid)

	// an ambiguous resolution populates the cache
	src := "%if a\nmake\n%endif\n"
	_, ok := scanAt(t, s, src, 0, ambiguous)
	require.True(t, ok)
	assert.True(t, s.cacheValid)
	assert.False(t, s.cacheHasSection)

	// a retry at the same position reuses it
	tok, ok := scanAt(t, s, src, 0, ambiguous)
	require.True(t, ok)
	assert.Equal(t, token.ScriptletIf, tok.Kind)
	assert.True(t, s.cacheValid)

	// committing to a single context drops the stale entry
	tok, ok = scanAt(t, s, src, 0, token.Of(token.TopLevelIf))
	require.True(t, ok)
	assert.Equal(t, token.TopLevelIf, tok.Kind)
	assert.False(t, s.cacheValid)

	// the next ambiguous block is classified afresh
	withSection := "%if b\n%build\nmake\n%endif\n"
	tok, ok = scanAt(t, s, withSection, 0, ambiguous)
	require.True(t, ok)
	assert.Equal(t, token.TopLevelIf, tok.Kind)
	assert.True(t, s.cacheValid)
	assert.True(t, s.cacheHasSection)

	s.Reset()
	assert.False(t, s.cacheValid)
	assert.False(t, s.cacheHasSection)
}

func TestLookaheadCacheUntouchedByUnambiguousPaths(t *testing.T) {
	t.Parallel()

	// neither the files shortcut nor the scriptlet-over-subsection
	// tie-break walks the body, so neither may populate the cache
	src := "%if a\nmake\n%endif\n"

	s := New()
	tok, ok := scanAt(t, s, src, 0, token.Of(token.FilesIf, token.TopLevelIf, token.ScriptletIf))
	require.True(t, ok)
	assert.Equal(t, token.FilesIf, tok.Kind)
	assert.False(t, s.cacheValid)

	s = New()
	tok, ok = scanAt(t, s, src, 0, token.Of(token.ScriptletIf, token.SubsectionIf))
	require.True(t, ok)
	assert.Equal(t, token.ScriptletIf, tok.Kind)
	assert.False(t, s.cacheValid)
}
