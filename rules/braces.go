package rules

import (
	"github.com/vippsas/codefmt/state"
	"github.com/vippsas/codefmt/token"
)

// Braces implements the braces rule: for every multi-line `{` block, pull
// the brace onto the line of the preceding token in K&R mode, or push it
// onto its own line in Allman mode, preserving any leading comments.
func Braces(f *state.Formatter) {
	f.ForEachToken(func(t token.Token) bool { return isOpener(t, token.BraceOpen) }, func(i int, _ token.Token) {
		if !braceSpansMultipleLines(f, i) {
			return
		}
		if f.Options.AllmanBraces {
			makeAllman(f, i)
		} else {
			makeKR(f, i)
		}
	})
}

func braceSpansMultipleLines(f *state.Formatter, openIdx int) bool {
	close := matchingBraceClose(f, openIdx)
	if close < 0 {
		return false
	}
	for j := openIdx; j < close; j++ {
		if t, _ := f.TokenAt(j); t.IsLinebreak() {
			return true
		}
	}
	return false
}

func matchingBraceClose(f *state.Formatter, openIdx int) int {
	depth := 0
	for j := openIdx + 1; j < f.Len(); j++ {
		t, _ := f.TokenAt(j)
		switch {
		case isOpener(t, token.BraceOpen):
			depth++
		case isCloser(t, token.BraceClose):
			if depth == 0 {
				return j
			}
			depth--
		}
	}
	return -1
}

// makeKR pulls a `{` that currently sits on its own line onto the line of
// the preceding significant token, collapsing the whitespace/linebreak run
// before the brace to one space. If a comment precedes the brace (for
// example a `//` comment ending the previous line), the brace is left
// where it is.
func makeKR(f *state.Formatter, openIdx int) {
	prev := f.IndexOfPreviousNonWhitespaceOrLinebreak(openIdx)
	if prev < 0 || prev == openIdx-1 {
		return
	}
	if pt, _ := f.TokenAt(prev); pt.IsComment() || isOpener(pt, token.LineComment) {
		return
	}
	// only collapse if everything between prev and the brace is pure
	// whitespace/linebreak (no comment to preserve in between).
	for j := prev + 1; j < openIdx; j++ {
		if t, _ := f.TokenAt(j); t.IsComment() {
			return
		}
	}
	f.ReplaceRange(prev+1, openIdx, []token.Token{space()})
}

// makeAllman pushes a `{` currently on the same line as other tokens onto
// the next line, at the current line's indent.
func makeAllman(f *state.Formatter, openIdx int) {
	prev := f.IndexOfPreviousNonWhitespaceOrLinebreak(openIdx)
	if prev < 0 {
		return
	}
	for j := prev + 1; j < openIdx; j++ {
		if t, _ := f.TokenAt(j); t.IsLinebreak() {
			return // already on its own line
		}
	}
	indent := currentIndent(f, openIdx)
	repl := []token.Token{newline(f)}
	if indent != "" {
		repl = append(repl, token.New(token.Whitespace, indent))
	}
	f.ReplaceRange(prev+1, openIdx, repl)
}

// ElseOnSameLine implements the elseOnSameLine rule: when the `}` closing
// an if/do body stands on its own line, the tokens between it and a
// following else/catch (or the while closing a repeat) collapse to a
// single space in K&R mode, or a linebreak plus matching indent in Allman
// mode. The `else` of a `guard` is never touched (it precedes the guard
// body's `}`, not follows it).
func ElseOnSameLine(f *state.Formatter) {
	f.ForEachToken(func(t token.Token) bool { return isCloser(t, token.BraceClose) }, func(i int, _ token.Token) {
		if !danglesOnOwnLine(f, i) {
			return
		}
		if isGuardBodyClose(f, i) {
			return
		}
		next := f.IndexOfNextNonWhitespaceOrCommentOrLinebreak(i)
		nt, ok := f.TokenAt(next)
		if !ok {
			return
		}
		if !(isKeyword(nt, "else", "catch") || isRepeatWhile(f, i, next)) {
			return
		}
		collapseBetween(f, i, next)
	})
}

func danglesOnOwnLine(f *state.Formatter, closeIdx int) bool {
	return onItsOwnLine(f, closeIdx)
}

// isGuardBodyClose reports whether closeIdx closes a guard statement's
// `else { ... }` body. A guard's `else` sits directly before the `{` with
// no `}` of its own before it (unlike an if/else chain, where `else`
// always follows the if body's closing brace), so that distinguishes the
// two without needing to walk all the way back to the `guard` keyword
// past an arbitrarily complex condition.
func isGuardBodyClose(f *state.Formatter, closeIdx int) bool {
	open, ok := f.ScopeAt(closeIdx)
	if !ok {
		return false
	}
	prev := f.IndexOfPreviousNonWhitespaceOrCommentOrLinebreak(open)
	pt, ok := f.TokenAt(prev)
	if !ok || !isKeyword(pt, "else") {
		return false
	}
	beforeElse := f.IndexOfPreviousNonWhitespaceOrCommentOrLinebreak(prev)
	bt, ok := f.TokenAt(beforeElse)
	return !ok || !closesScope(bt)
}

func isRepeatWhile(f *state.Formatter, closeIdx, whileIdx int) bool {
	nt, ok := f.TokenAt(whileIdx)
	if !ok || !isKeyword(nt, "while") {
		return false
	}
	open, ok := f.ScopeAt(closeIdx)
	if !ok {
		return false
	}
	prev := f.IndexOfPreviousNonWhitespaceOrCommentOrLinebreak(open)
	pt, ok := f.TokenAt(prev)
	return ok && isKeyword(pt, "repeat")
}

func collapseBetween(f *state.Formatter, closeIdx, nextIdx int) {
	if f.Options.AllmanBraces {
		indent := currentIndent(f, closeIdx)
		repl := []token.Token{newline(f)}
		if indent != "" {
			repl = append(repl, token.New(token.Whitespace, indent))
		}
		f.ReplaceRange(closeIdx+1, nextIdx, repl)
	} else {
		f.ReplaceRange(closeIdx+1, nextIdx, []token.Token{space()})
	}
}
