package rules

import (
	"github.com/vippsas/codefmt/indent"
	"github.com/vippsas/codefmt/state"
)

// Named is a registered pipeline stage: a name consumers can select by,
// plus the Rule it runs.
type Named struct {
	Name string
	Rule Rule
}

// Pipeline is the fixed, ordered rule list from spec.md §4.1. Selecting a
// subset (e.g. just "indent") never requires any other rule to have run
// first — every rule only assumes the invariants of the lexer's output (no
// adjacent whitespace tokens, no whitespace token spanning a linebreak).
// The formatter-state edit primitives do not enforce these; rules that
// insert whitespace check the neighbouring token themselves (insertSpace).
var Pipeline = []Named{
	{"linebreaks", Linebreaks},
	{"semicolons", Semicolons},
	{"specifiers", Specifiers},
	{"redundantParens", RedundantParens},
	{"void", Void},
	{"braces", Braces},
	{"ranges", Ranges},
	{"trailingCommas", TrailingCommas},
	{"elseOnSameLine", ElseOnSameLine},
	{"spaceAroundParens", SpaceAroundParens},
	{"spaceInsideParens", SpaceInsideParens},
	{"spaceAroundBrackets", SpaceAroundBrackets},
	{"spaceInsideBrackets", SpaceInsideBrackets},
	{"spaceAroundBraces", SpaceAroundBraces},
	{"spaceInsideBraces", SpaceInsideBraces},
	{"spaceAroundGenerics", SpaceAroundGenerics},
	{"spaceInsideGenerics", SpaceInsideGenerics},
	{"spaceAroundOperators", SpaceAroundOperators},
	{"spaceAroundComments", SpaceAroundComments},
	{"spaceInsideComments", SpaceInsideComments},
	{"consecutiveSpaces", ConsecutiveSpaces},
	{"todos", Todos},
	{"indent", indent.Apply},
	{"blankLinesAtEndOfScope", BlankLinesAtEndOfScope},
	{"blankLinesBetweenScopes", BlankLinesBetweenScopes},
	{"consecutiveBlankLines", ConsecutiveBlankLines},
	{"trailingWhitespace", TrailingWhitespace},
	{"linebreakAtEndOfFile", LinebreakAtEndOfFile},
	{"stripHeader", StripHeader},
}

// Names returns the fixed pipeline order.
func Names() []string {
	names := make([]string, len(Pipeline))
	for i, n := range Pipeline {
		names[i] = n.Name
	}
	return names
}

// Run applies every rule in Pipeline, in order, exactly once.
func Run(f *state.Formatter) {
	for _, n := range Pipeline {
		n.Rule(f)
	}
}

// RunSelected applies only the named rules, in their fixed pipeline
// order (duplicates and unknown names are ignored).
func RunSelected(f *state.Formatter, names []string) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	for _, n := range Pipeline {
		if want[n.Name] {
			n.Rule(f)
		}
	}
}
