package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpaceAroundGenericOperator(t *testing.T) {
	assert.Equal(t, "a + b", run("a+b", SpaceAroundOperators))
	assert.Equal(t, "a == b", run("a==b", SpaceAroundOperators))
}

func TestSpaceAroundOperatorPostfixOptionalUntouched(t *testing.T) {
	assert.Equal(t, "a?.b", run("a?.b", SpaceAroundOperators))
	assert.Equal(t, "a!.b", run("a!.b", SpaceAroundOperators))
}

func TestSpaceAroundColonNoSpaceBefore(t *testing.T) {
	assert.Equal(t, "x: Int", run("x : Int", SpaceAroundOperators))
}

func TestSpaceAroundColonNamedArgument(t *testing.T) {
	assert.Equal(t, "f(x:y:)", run("f(x:y:)", SpaceAroundOperators))
}

func TestSpaceAroundCommaSemicolon(t *testing.T) {
	assert.Equal(t, "a, b", run("a ,b", SpaceAroundOperators))
}

func TestSpaceAroundDotNoSpace(t *testing.T) {
	assert.Equal(t, "a.b.c", run("a . b . c", SpaceAroundOperators))
}

func TestSpaceAroundArrow(t *testing.T) {
	assert.Equal(t, "() -> Int", run("()->Int", SpaceAroundOperators))
}

func TestTernaryColonGetsSpaceBeforeWhenClosingTernary(t *testing.T) {
	assert.Equal(t, "a ? b : c", run("a ? b :c", SpaceAroundOperators))
}
