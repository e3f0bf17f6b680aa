package rules

import (
	"github.com/vippsas/codefmt/state"
	"github.com/vippsas/codefmt/token"
)

// TrailingWhitespace removes any whitespace token immediately preceding a
// linebreak, and trailing whitespace at the very end of the file.
func TrailingWhitespace(f *state.Formatter) {
	f.ForEachToken(func(t token.Token) bool { return t.IsWhitespace() }, func(i int, _ token.Token) {
		next, ok := f.TokenAt(i + 1)
		if !ok {
			f.RemoveAt(i)
			return
		}
		if next.IsLinebreak() {
			f.RemoveAt(i)
		}
	})
}

// ConsecutiveBlankLines collapses >= 2 consecutive linebreaks into at most
// 2 (one blank line between code); at end of file, when not a fragment,
// collapses to a single trailing linebreak.
func ConsecutiveBlankLines(f *state.Formatter) {
	f.ForEachToken(func(t token.Token) bool { return t.IsLinebreak() }, func(i int, _ token.Token) {
		run := 1
		for {
			n, ok := f.TokenAt(i + run)
			if !ok || !n.IsLinebreak() {
				break
			}
			run++
		}
		if run <= 2 {
			return
		}
		f.RemoveRange(i+2, i+run)
	})

	if f.Options.Fragment {
		return
	}
	last := f.Len() - 1
	for last >= 0 {
		t, _ := f.TokenAt(last)
		if t.IsError() {
			last--
			continue
		}
		break
	}
	run := 0
	for j := last; j >= 0; j-- {
		t, _ := f.TokenAt(j)
		if t.IsLinebreak() {
			run++
		} else {
			break
		}
	}
	if run > 1 {
		f.RemoveRange(last-run+2, last+1)
	}
}

// BlankLinesAtEndOfScope removes blank line(s) immediately before a
// closing `}`, `)`, `]`, `>` that stands on its own line, preserving
// exactly one linebreak, when the option is set.
func BlankLinesAtEndOfScope(f *state.Formatter) {
	if !f.Options.RemoveBlankLines {
		return
	}
	f.ForEachToken(closesScope, func(i int, _ token.Token) {
		if !onItsOwnLine(f, i) {
			return
		}
		start := f.StartOfLine(i)
		j := start - 1
		blankRunStart := start
		for j >= 1 {
			t, _ := f.TokenAt(j)
			if !t.IsLinebreak() {
				break
			}
			prevLineStart := -1
			for k := j - 1; k >= 0; k-- {
				if lt, _ := f.TokenAt(k); lt.IsLinebreak() {
					prevLineStart = k + 1
					break
				}
			}
			if prevLineStart < 0 {
				prevLineStart = 0
			}
			allBlank := true
			for k := prevLineStart; k < j; k++ {
				if kt, _ := f.TokenAt(k); !kt.IsWhitespace() {
					allBlank = false
					break
				}
			}
			if !allBlank {
				break
			}
			blankRunStart = prevLineStart
			j = prevLineStart - 1
		}
		if blankRunStart < start {
			f.RemoveRange(blankRunStart, start)
		}
	})
}

// BlankLinesBetweenScopes ensures a blank line follows the closing `}` of
// a spaceable scope (class/struct/extension/enum) when followed by
// another top-level construct, unless the following token is a closer,
// `.`, `,`, `:`, `else`, `catch`, or the `while` continuing a repeat scope
// (same as else/catch: do not insert).
func BlankLinesBetweenScopes(f *state.Formatter) {
	if !f.Options.InsertBlankLines {
		return
	}
	f.ForEachToken(func(t token.Token) bool { return isCloser(t, token.BraceClose) }, func(i int, _ token.Token) {
		open, ok := f.ScopeAt(i)
		if !ok {
			return
		}
		if !introducesSpaceableScope(f, open) {
			return
		}
		next := f.IndexOfNextNonWhitespaceOrCommentOrLinebreak(i)
		nt, ok := f.TokenAt(next)
		if !ok {
			return
		}
		if closesScope(nt) || isSymbol(nt, ".", ",", ":") || isKeyword(nt, "else", "catch") {
			return
		}
		if isRepeatWhile(f, i, next) {
			return
		}
		linebreaks := 0
		for j := i + 1; j < next; j++ {
			if t, _ := f.TokenAt(j); t.IsLinebreak() {
				linebreaks++
			}
		}
		if linebreaks >= 2 {
			return
		}
		lastBreak := f.IndexOfNext(i, func(t token.Token) bool { return t.IsLinebreak() })
		if lastBreak < 0 || lastBreak >= next {
			return
		}
		f.InsertAt(lastBreak+1, newline(f))
	})
}

// introducesSpaceableScope reports whether open's `{` is the body of a
// class/struct/extension/enum declaration. The keyword itself typically
// sits several tokens back from the brace (past the type name and any
// generic parameter list or inheritance clause), so this scans backward
// over the declaration's header line rather than checking only the
// immediately preceding token; it stops at the first linebreak or scope
// boundary, so it never reaches into a previous statement.
func introducesSpaceableScope(f *state.Formatter, open int) bool {
	for j := open - 1; j >= 0; j-- {
		t, _ := f.TokenAt(j)
		if t.IsLinebreak() || opensScope(t) || closesScope(t) {
			return false
		}
		if t.Kind == token.Keyword && spaceableScopeKeywords[t.Payload] {
			return true
		}
	}
	return false
}

// LinebreakAtEndOfFile appends one linebreak token when the last
// non-whitespace/non-error token is not already a linebreak, unless the
// input is a fragment.
func LinebreakAtEndOfFile(f *state.Formatter) {
	if f.Options.Fragment {
		return
	}
	i := f.Len() - 1
	for i >= 0 {
		t, _ := f.TokenAt(i)
		if t.IsWhitespace() || t.IsError() {
			i--
			continue
		}
		break
	}
	if i < 0 {
		return
	}
	if t, _ := f.TokenAt(i); t.IsLinebreak() {
		return
	}
	f.InsertAt(i+1, newline(f))
}
