package rules

import (
	"github.com/vippsas/codefmt/state"
	"github.com/vippsas/codefmt/token"
)

func isLvalue(t token.Token) bool {
	return t.IsIdentifierOrKeyword() || t.Kind == token.Number ||
		closesScope(t) || isSymbol(t, "?", "!")
}

func isRvalue(t token.Token) bool {
	return t.IsIdentifierOrKeyword() || t.Kind == token.Number || opensScope(t)
}

// isPostfixOptionalRun reports whether payload is a run composed entirely
// of `?`/`!`, which attaches to its left operand without a space.
func isPostfixOptionalRun(payload string) bool {
	if payload == "" {
		return false
	}
	for _, r := range payload {
		if r != '?' && r != '!' {
			return false
		}
	}
	return true
}

// ternaryScope tracks an open ternary `?` (one with whitespace on both
// sides) as a private scope local to SpaceAroundOperators, whose matching
// close is the next `:`. Kept local per spec.md's design note: avoids a
// second full-file pass just to track ternary nesting.
type ternaryScope struct {
	depth int
}

// SpaceAroundOperators implements the spaceAroundOperators rule.
func SpaceAroundOperators(f *state.Formatter) {
	ternary := &ternaryScope{}

	f.ForEachToken(func(t token.Token) bool { return t.Kind == token.Symbol }, func(i int, t token.Token) {
		switch t.Payload {
		case "...", "..<":
			return // handled by the ranges rule
		case ":":
			spaceAroundColon(f, i, ternary)
		case ",", ";":
			spaceAroundCommaSemicolon(f, i)
		case "?":
			spaceAfterQuestionOrBang(f, i)
			if isWhitespaceAdjacent(f, i) {
				ternary.depth++
			}
		case "!":
			spaceAfterQuestionOrBang(f, i)
		case ".":
			spaceAroundDot(f, i)
		case "->":
			insertSpace(f, i+1)
			insertSpace(f, i)
		default:
			spaceAroundGenericOperator(f, i, t)
		}
	})
}

func isWhitespaceAdjacent(f *state.Formatter, i int) bool {
	before, ok := f.TokenAt(i - 1)
	beforeOK := ok && before.IsWhitespaceOrLinebreak()
	after, ok := f.TokenAt(i + 1)
	afterOK := ok && after.IsWhitespaceOrLinebreak()
	return beforeOK && afterOK
}

// spaceAroundColon: always one space after unless followed by
// whitespace/linebreak/close-scope or it is a named-argument selector
// (ident:ident:); no space before unless it closes a ternary scope; if
// preceded by whitespace not at line start, drop that whitespace.
func spaceAroundColon(f *state.Formatter, i int, ternary *ternaryScope) {
	closesTernary := false
	if ternary.depth > 0 {
		ternary.depth--
		closesTernary = true
	}

	if wt, ok := f.TokenAt(i - 1); ok && wt.IsWhitespace() {
		lineStart := f.StartOfLine(i)
		if i-1 != lineStart && !closesTernary {
			f.RemoveAt(i - 1)
			i--
		}
	}
	if closesTernary {
		if t, ok := f.TokenAt(i - 1); !ok || !t.IsWhitespaceOrLinebreak() {
			insertSpace(f, i)
			i++
		}
	}

	next := i + 1
	nt, ok := f.TokenAt(next)
	if !ok || nt.IsWhitespaceOrLinebreak() || closesScope(nt) {
		return
	}
	if isNamedArgumentSelector(f, i) {
		return
	}
	insertSpace(f, next)
}

func isNamedArgumentSelector(f *state.Formatter, colonIdx int) bool {
	prev, ok := f.TokenAt(colonIdx - 1)
	if !ok || !prev.IsIdentifierOrKeyword() {
		return false
	}
	next, ok := f.TokenAt(colonIdx + 1)
	if !ok || !next.IsIdentifierOrKeyword() {
		return false
	}
	after := f.IndexOfNextNonWhitespaceOrLinebreak(colonIdx + 1)
	at, ok := f.TokenAt(after)
	return ok && isSymbol(at, ":")
}

// spaceAroundCommaSemicolon: same as colon but never preceded by space
// mid-line, always followed by one space unless at end of line.
func spaceAroundCommaSemicolon(f *state.Formatter, i int) {
	if wt, ok := f.TokenAt(i - 1); ok && wt.IsWhitespace() {
		lineStart := f.StartOfLine(i)
		if i-1 != lineStart {
			f.RemoveAt(i - 1)
			i--
		}
	}
	next := i + 1
	nt, ok := f.TokenAt(next)
	if !ok || nt.IsWhitespaceOrLinebreak() {
		return
	}
	insertSpace(f, next)
}

// spaceAfterQuestionOrBang: `?`/`!` are left as-is; a space is added after
// only if preceded by `as` or `try`.
func spaceAfterQuestionOrBang(f *state.Formatter, i int) {
	prev := f.IndexOfPreviousNonWhitespaceOrCommentOrLinebreak(i)
	pt, ok := f.TokenAt(prev)
	if ok && isKeyword(pt, "as", "try") {
		insertSpace(f, i+1)
	}
}

// spaceAroundDot: never preceded or followed by stray whitespace, unless
// the previous token is an operator symbol that is not a pure ?/!
// sequence, in which case a space is inserted before the `.`.
func spaceAroundDot(f *state.Formatter, i int) {
	if wt, ok := f.TokenAt(i - 1); ok && wt.IsWhitespace() {
		prev, ok := f.TokenAt(i - 2)
		if ok && prev.Kind == token.Symbol && !isPostfixOptionalRun(prev.Payload) {
			// keep exactly one space
		} else {
			f.RemoveAt(i - 1)
			i--
		}
	} else {
		prev, ok := f.TokenAt(i - 1)
		if ok && prev.Kind == token.Symbol && !isPostfixOptionalRun(prev.Payload) {
			insertSpace(f, i)
			i++
		}
	}
	if wt, ok := f.TokenAt(i + 1); ok && wt.IsWhitespace() {
		if next, ok := f.TokenAt(i + 2); !ok || !next.IsLinebreak() {
			f.RemoveAt(i + 1)
		}
	}
}

// spaceAroundGenericOperator: any other symbol gets a space on each side
// when it sits between an lvalue and an rvalue.
func spaceAroundGenericOperator(f *state.Formatter, i int, t token.Token) {
	if isPostfixOptionalRun(t.Payload) {
		return
	}
	prev := f.IndexOfPreviousNonWhitespaceOrCommentOrLinebreak(i)
	next := f.IndexOfNextNonWhitespaceOrCommentOrLinebreak(i)
	pt, pok := f.TokenAt(prev)
	nt, nok := f.TokenAt(next)
	if !pok || !nok {
		return
	}
	if isLvalue(pt) && isRvalue(nt) {
		insertSpace(f, i+1)
		insertSpace(f, i)
	}
}
