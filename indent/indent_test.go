package indent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vippsas/codefmt/lex"
	"github.com/vippsas/codefmt/options"
	"github.com/vippsas/codefmt/state"
	"github.com/vippsas/codefmt/token"
)

func apply(src string) string {
	return applyOpts(src, options.Default())
}

func applyOpts(src string, opts options.Options) string {
	f := state.New(lex.Tokenize(src), opts)
	Apply(f)
	return token.Untokenize(f.Tokens())
}

func TestIndentsNestedBraceBody(t *testing.T) {
	src := "func foo() {\nx\n}\n"
	assert.Equal(t, "func foo() {\n    x\n}\n", apply(src))
}

func TestIndentsTwoLevelsOfNesting(t *testing.T) {
	src := "if a {\nif b {\nx\n}\n}\n"
	assert.Equal(t, "if a {\n    if b {\n        x\n    }\n}\n", apply(src))
}

func TestCaseBodyIndentedOneLevelWhenCaseEndsItsLine(t *testing.T) {
	src := "switch x {\ncase 1:\nbreak\ndefault:\nbreak\n}\n"
	want := "switch x {\ncase 1:\n    break\ndefault:\n    break\n}\n"
	assert.Equal(t, want, apply(src))
}

func TestCaseBodyAlignedPastCaseWhenCodeFollowsOnSameLine(t *testing.T) {
	src := "switch x {\ncase 1: foo()\nbar()\n}\n"
	want := "switch x {\ncase 1: foo()\n     bar()\n}\n"
	assert.Equal(t, want, apply(src))
}

func TestBlankLineInsideScopeTruncatedByDefault(t *testing.T) {
	src := "{\nx\n\ny\n}\n"
	assert.Equal(t, "{\n    x\n\n    y\n}\n", apply(src))
}

func TestBlankLineInsideScopeIndentedWhenTruncateOff(t *testing.T) {
	opts := options.Default()
	opts.TruncateBlankLines = false
	src := "{\nx\n\ny\n}\n"
	assert.Equal(t, "{\n    x\n    \n    y\n}\n", applyOpts(src, opts))
}

func TestCommentLineIndentedByDefault(t *testing.T) {
	src := "{\n// hi\nx\n}\n"
	assert.Equal(t, "{\n    // hi\n    x\n}\n", apply(src))
}

func TestCommentLineLeftAloneWhenIndentCommentsOff(t *testing.T) {
	opts := options.Default()
	opts.IndentComments = false
	src := "{\n// hi\nx\n}\n"
	assert.Equal(t, "{\n// hi\n    x\n}\n", applyOpts(src, opts))
}

// A `//` comment opens a scope in the token stream but the lexer never
// emits a matching closer for it -- it closes on the following linebreak
// instead. Regression test for that scope leaking into, and corrupting the
// indent of, whatever follows it.
func TestLineCommentScopeDoesNotLeakIntoFollowingCode(t *testing.T) {
	src := "if a {\n// note\nif b {\nx\n}\n}\n"
	want := "if a {\n    // note\n    if b {\n        x\n    }\n}\n"
	assert.Equal(t, want, apply(src))
}

func TestParenArgsAlignToColumnAfterOpener(t *testing.T) {
	src := "call(a,\nb)\n"
	assert.Equal(t, "call(a,\n     b)\n", apply(src))
}

// A dot-chain continuation after a closing paren gets one extra indent
// level beyond the enclosing scope, dropped again once the chain ends.
func TestDotChainContinuationGetsWrapIndent(t *testing.T) {
	src := "func f() {\nfoo()\n.bar()\n}\n"
	want := "func f() {\n    foo()\n        .bar()\n}\n"
	assert.Equal(t, want, apply(src))
}
