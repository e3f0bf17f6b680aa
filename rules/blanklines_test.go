package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vippsas/codefmt/options"
)

func TestTrailingWhitespaceRemovedBeforeLinebreak(t *testing.T) {
	assert.Equal(t, "x\ny\n", run("x   \ny\n", TrailingWhitespace))
}

func TestTrailingWhitespaceRemovedAtEOF(t *testing.T) {
	assert.Equal(t, "x", run("x   ", TrailingWhitespace))
}

func TestConsecutiveBlankLinesCollapsedToOne(t *testing.T) {
	assert.Equal(t, "x\n\ny\n", run("x\n\n\n\ny\n", ConsecutiveBlankLines))
}

func TestConsecutiveBlankLinesCollapsedAtEndOfFile(t *testing.T) {
	assert.Equal(t, "x\n", run("x\n\n\n", ConsecutiveBlankLines))
}

func TestConsecutiveBlankLinesEOFCollapseSkippedInFragment(t *testing.T) {
	opts := options.Default()
	opts.Fragment = true
	src := "x\n\n"
	assert.Equal(t, src, runOpts(src, opts, ConsecutiveBlankLines))
}

func TestBlankLinesAtEndOfScopeCollapsesSingleBlank(t *testing.T) {
	src := "{\n    x\n\n}"
	assert.Equal(t, "{\n    x\n}", run(src, BlankLinesAtEndOfScope))
}

func TestBlankLinesAtEndOfScopeCollapsesMultipleBlanks(t *testing.T) {
	src := "{\n    x\n\n\n}"
	assert.Equal(t, "{\n    x\n}", run(src, BlankLinesAtEndOfScope))
}

func TestBlankLinesAtEndOfScopeLeavesSingleLinebreakAlone(t *testing.T) {
	src := "{\n    x\n}"
	assert.Equal(t, src, run(src, BlankLinesAtEndOfScope))
}

func TestBlankLinesAtEndOfScopeNoOpWhenOptionOff(t *testing.T) {
	opts := options.Default()
	opts.RemoveBlankLines = false
	src := "{\n    x\n\n}"
	assert.Equal(t, src, runOpts(src, opts, BlankLinesAtEndOfScope))
}

func TestBlankLinesBetweenScopesInsertedAfterClassBody(t *testing.T) {
	src := "class A {}\nfunc b() {}\n"
	assert.Equal(t, "class A {}\n\nfunc b() {}\n", run(src, BlankLinesBetweenScopes))
}

func TestBlankLinesBetweenScopesLeftAloneWhenAlreadyBlank(t *testing.T) {
	src := "class A {}\n\nfunc b() {}\n"
	assert.Equal(t, src, run(src, BlankLinesBetweenScopes))
}

func TestBlankLinesBetweenScopesSkippedBeforeClosingScope(t *testing.T) {
	src := "struct Outer {\n    struct A {}\n}\n"
	assert.Equal(t, src, run(src, BlankLinesBetweenScopes))
}

func TestBlankLinesBetweenScopesNoOpWhenOptionOff(t *testing.T) {
	opts := options.Default()
	opts.InsertBlankLines = false
	src := "class A {}\nfunc b() {}\n"
	assert.Equal(t, src, runOpts(src, opts, BlankLinesBetweenScopes))
}

func TestLinebreakAtEndOfFileAppendsWhenMissing(t *testing.T) {
	assert.Equal(t, "x\n", run("x", LinebreakAtEndOfFile))
}

func TestLinebreakAtEndOfFileLeftAloneWhenPresent(t *testing.T) {
	src := "x\n"
	assert.Equal(t, src, run(src, LinebreakAtEndOfFile))
}

func TestLinebreakAtEndOfFileNoOpForFragment(t *testing.T) {
	opts := options.Default()
	opts.Fragment = true
	src := "x"
	assert.Equal(t, src, runOpts(src, opts, LinebreakAtEndOfFile))
}
