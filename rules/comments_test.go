package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vippsas/codefmt/state"
)

func chain(rs ...Rule) Rule {
	return func(f *state.Formatter) {
		for _, r := range rs {
			r(f)
		}
	}
}

func TestSpaceInsideCommentsTrims(t *testing.T) {
	assert.Equal(t, "/* hi */", run("/*hi*/", SpaceInsideComments))
	assert.Equal(t, "/* hi */", run("/*   hi   */", SpaceInsideComments))
}

func TestSpaceInsideCommentsEmptyBody(t *testing.T) {
	assert.Equal(t, "/**/", run("/*   */", SpaceInsideComments))
}

func TestSpaceAroundCommentsInsertsBeforeOpener(t *testing.T) {
	assert.Equal(t, "x // trailing", run("x// trailing", SpaceAroundComments))
}

func TestSpaceAroundCommentsAfterBlockCloser(t *testing.T) {
	assert.Equal(t, "/* a */ b", run("/* a */b", SpaceAroundComments))
}

func TestTodosNormalizesTag(t *testing.T) {
	assert.Equal(t, "// TODO: fix this", run("// TODO:fix this", Todos))
	assert.Equal(t, "// FIXME: later", run("// FIXME   later", Todos))
}

func TestTodosLeavesIdentifierLikeAlone(t *testing.T) {
	assert.Equal(t, "// TODOItem is a thing", run("// TODOItem is a thing", Todos))
}

func TestConsecutiveSpacesCollapsed(t *testing.T) {
	assert.Equal(t, "a b", run("a    b", ConsecutiveSpaces))
}

func TestConsecutiveSpacesPreservedInsideComment(t *testing.T) {
	src := "//   a    b"
	assert.Equal(t, src, run(src, ConsecutiveSpaces))
}
