package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vippsas/codefmt/lex"
	"github.com/vippsas/codefmt/options"
	"github.com/vippsas/codefmt/state"
	"github.com/vippsas/codefmt/token"
)

func run(src string, rule Rule) string {
	f := state.New(lex.Tokenize(src), options.Default())
	rule(f)
	return token.Untokenize(f.Tokens())
}

func TestSpaceAroundParensKeyword(t *testing.T) {
	assert.Equal(t, "if (x) {}", run("if(x) {}", SpaceAroundParens))
}

func TestSpaceAroundParensNoSpaceBeforeCall(t *testing.T) {
	assert.Equal(t, "f(x)", run("f (x)", SpaceAroundParens))
}

func TestSpaceAroundParensInitSubscript(t *testing.T) {
	assert.Equal(t, "init(x)", run("init (x)", SpaceAroundParens))
	assert.Equal(t, "subscript(x)", run("subscript (x)", SpaceAroundParens))
}

func TestSpaceInsideParensStripsSpace(t *testing.T) {
	assert.Equal(t, "f(x)", run("f( x )", SpaceInsideParens))
}

func TestSpaceInsideParensPreservesLinebreak(t *testing.T) {
	assert.Equal(t, "f(\n    x\n)", run("f(\n    x\n)", SpaceInsideParens))
}

func TestSpaceAroundBracketsBeforeKeyword(t *testing.T) {
	assert.Equal(t, "return [1, 2]", run("return[1, 2]", SpaceAroundBrackets))
}

func TestSpaceAroundBracketsNoSpaceAfterIdentifier(t *testing.T) {
	assert.Equal(t, "a[0]", run("a [0]", SpaceAroundBrackets))
}

func TestSpaceAroundBracesDefault(t *testing.T) {
	assert.Equal(t, "if x {}", run("if x{}", SpaceAroundBraces))
}

func TestSpaceAroundBracesAfterOpener(t *testing.T) {
	assert.Equal(t, "[{}]", run("[ {} ]", func(f *state.Formatter) {
		SpaceInsideBrackets(f)
		SpaceAroundBraces(f)
	}))
}

func TestSpaceInsideBracesInsertsSingleSpace(t *testing.T) {
	assert.Equal(t, "{ x }", run("{x}", SpaceInsideBraces))
}

func TestSpaceInsideBracesEmptyUntouched(t *testing.T) {
	assert.Equal(t, "{}", run("{}", SpaceInsideBraces))
}

func TestSpaceInsideBracesOwnLineUntouched(t *testing.T) {
	src := "{\n    x\n}"
	assert.Equal(t, src, run(src, SpaceInsideBraces))
}
