package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vippsas/codefmt/lex"
	"github.com/vippsas/codefmt/options"
	"github.com/vippsas/codefmt/state"
	"github.com/vippsas/codefmt/token"
)

func runOpts(src string, opts options.Options, rule Rule) string {
	f := state.New(lex.Tokenize(src), opts)
	rule(f)
	return token.Untokenize(f.Tokens())
}

func TestBracesCollapsesToKRStyle(t *testing.T) {
	src := "if x\n{\n    y\n}\n"
	assert.Equal(t, "if x {\n    y\n}\n", run(src, Braces))
}

func TestBracesPushesToAllmanStyle(t *testing.T) {
	opts := options.Default()
	opts.AllmanBraces = true
	src := "if x {\n    y\n}\n"
	assert.Equal(t, "if x\n{\n    y\n}\n", runOpts(src, opts, Braces))
}

func TestBracesLeavesSingleLineAlone(t *testing.T) {
	src := "if x { y }\n"
	assert.Equal(t, src, run(src, Braces))
}

func TestElseOnSameLineCollapsesInKRStyle(t *testing.T) {
	src := "if x {\n    y\n}\nelse {\n    z\n}\n"
	assert.Equal(t, "if x {\n    y\n} else {\n    z\n}\n", run(src, ElseOnSameLine))
}

func TestElseOnSameLineLeavesGuardAlone(t *testing.T) {
	src := "guard x else {\n    y\n}\nz\n"
	assert.Equal(t, src, run(src, ElseOnSameLine))
}

// A guard's own `else { ... }` body closer must never be collapsed into a
// following else/catch, even when one happens to follow it textually --
// unlike an if-body closer, it isn't the start of a chain.
func TestElseOnSameLineLeavesGuardCloserAloneEvenBeforeElse(t *testing.T) {
	src := "guard x else {\n    y\n}\nelse {\n    z\n}\n"
	assert.Equal(t, src, run(src, ElseOnSameLine))
}
