package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpmspec-tools/speclex/token"
)

func TestScanSectionName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		valid    token.ValidSet
		wantOK   bool
		wantText string
	}{
		{
			name:     "section at line end",
			src:      "%prep\n",
			valid:    token.Of(token.SectionName),
			wantOK:   true,
			wantText: "%prep",
		},
		{
			name:     "section with arguments",
			src:      "%files -f manifest.txt\n",
			valid:    token.Of(token.SectionName),
			wantOK:   true,
			wantText: "%files",
		},
		{
			name:     "section beats parametric",
			src:      "%package -n subpkg\n",
			valid:    token.Of(token.SectionName, token.ParametricMacro),
			wantOK:   true,
			wantText: "%package",
		},
		{
			name:   "longer identifier is not a section",
			src:    "%buildx\n",
			valid:  token.Of(token.SectionName),
			wantOK: false,
		},
		{
			name:   "section name with digit suffix is not a section",
			src:    "%build2\n",
			valid:  token.Of(token.SectionName),
			wantOK: false,
		},
		{
			name:   "reserved keyword is not a section",
			src:    "%setup -q\n",
			valid:  token.Of(token.SectionName),
			wantOK: false,
		},
		{
			name:   "not requested",
			src:    "%prep\n",
			valid:  token.Of(token.ParametricMacro),
			wantOK: false,
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
			assert.Equal(t, token.SectionName, tok.Kind)
			assert.Equal(t, tt.wantText, tokenText(tt.src, tok))
		})
	}
}

func TestScanParametricMacro(t *testing.T) {
	t.Parallel()

	topLevel := token.Of(token.ParametricMacro, token.SectionName, token.TopLevelIf)

	tests := []struct {
		name     string
		src      string
		valid    token.ValidSet
		wantOK   bool
		wantText string
	}{
		{
			name:     "user macro with arguments",
			src:      "%myinit -n pkg\n",
			valid:    topLevel,
			wantOK:   true,
			wantText: "%myinit",
		},
		{
			name:     "tab separated arguments",
			src:      "%my_init2\targ\n",
			valid:    topLevel,
			wantOK:   true,
			wantText: "%my_init2",
		},
		{
			name:   "no arguments means no parametric reading",
			src:    "%myinit\n",
			valid:  topLevel,
			wantOK: false,
		},
		{
			name:   "denied inside scriptlet context",
			src:    "%myinit -n pkg\n",
			valid:  token.Of(token.ParametricMacro, token.ScriptletIf),
			wantOK: false,
		},
		{
			name:   "denied inside files context",
			src:    "%myinit -n pkg\n",
			valid:  token.Of(token.ParametricMacro, token.FilesIf),
			wantOK: false,
		},
		{
			name:   "reserved name declined",
			src:    "%setup -q\n",
			valid:  topLevel,
			wantOK: false,
		},
		{
			name:   "numbered patch declined",
			src:    "%patch1 -p1\n",
			valid:  topLevel,
			wantOK: false,
		},
		{
			name:   "files directive declined",
			src:    "%attr (755,-,-)\n",
			valid:  token.Of(token.ParametricMacro),
			wantOK: false,
		},
		{
			name:   "nil declined",
			src:    "%nil \n",
			valid:  token.Of(token.ParametricMacro),
			wantOK: false,
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
			assert.Equal(t, token.ParametricMacro, tok.Kind)
			assert.Equal(t, tt.wantText, tokenText(tt.src, tok))
		})
	}
}

func TestScanDirectiveSkipsLeadingWhitespace(t *testing.T) {
	t.Parallel()

	// without a requested newline, line terminators are insignificant too
	src := "  \n\t%prep\n"
	s := New()
	tok, ok := scanAt(t, s, src, 0, token.Of(token.SectionName))
	require.True(t, ok)
	assert.Equal(t, token.SectionName, tok.Kind)
	assert.Equal(t, "%prep", tokenText(src, tok))
	assert.Equal(t, 4, tok.Start)
}

func TestScanDirectiveKeepsRequestedNewline(t *testing.T) {
	t.Parallel()

	// a requested newline token must win over whitespace skipping; the
	// directive is found on the following scan
	src := "  \n\t%prep\n"
	valid := token.Of(token.SectionName, token.Newline)

	s := New()
	tok, ok := scanAt(t, s, src, 0, valid)
	require.True(t, ok)
	assert.Equal(t, token.Newline, tok.Kind)
	assert.Equal(t, 2, tok.Start)
	assert.Equal(t, 3, tok.End)

	tok, ok = scanAt(t, s, src, tok.End, valid)
	require.True(t, ok)
	assert.Equal(t, token.SectionName, tok.Kind)
	assert.Equal(t, "%prep", tokenText(src, tok))
}

func TestScanDirectiveLeavesContentWhitespace(t *testing.T) {
	t.Parallel()

	// while balanced content is pending, leading whitespace belongs to
	// the content and must not be skipped away
	src := "  %build}"
	s := New()
	tok, ok := scanAt(t, s, src, 0, token.Of(token.SectionName, token.ExpandContent))
	require.True(t, ok)
	assert.Equal(t, token.ExpandContent, tok.Kind)
	assert.Equal(t, "  ", tokenText(src, tok))
}

func TestScanDirectiveLeavesFlowKeywordsToGrammar(t *testing.T) {
	t.Parallel()

	// %else, %elif and %endif have fixed spellings the grammar matches
	// itself; the scanner must not claim them as anything
	valid := token.Of(token.SectionName, token.ParametricMacro, token.TopLevelIf)

	for _, kw := range []string{"else", "elif", "endif", "elifarch", "elifos"} {
		src := "%" + kw + " rest\n"
		s := New()
		_, ok := scanAt(t, s, src, 0, valid)
		assert.False(t, ok, "%%%s must not tokenize", kw)
	}
}
