package rules

import (
	"github.com/vippsas/codefmt/state"
	"github.com/vippsas/codefmt/token"
)

// noSpaceBeforeParenKeywords take no space before a following `(`.
var noSpaceBeforeParenKeywords = map[string]bool{
	"private": true, "fileprivate": true, "internal": true,
	"init": true, "subscript": true,
}

// autoclosureAttributes additionally take a space before `(` unless
// immediately followed by an `escaping` argument.
var autoclosureAttributes = map[string]bool{
	"@escaping": true, "@noescape": true, "@autoclosure": true,
}

// insertSpace inserts a single whitespace token at i, unless a whitespace
// or linebreak token already sits there.
func insertSpace(f *state.Formatter, i int) {
	if t, ok := f.TokenAt(i); ok && t.IsWhitespaceOrLinebreak() {
		return
	}
	f.InsertAt(i, space())
}

// removeSpaceAt removes the whitespace token at i, if any, unless the
// other side is a linebreak.
func removeSpaceAt(f *state.Formatter, i int) {
	if t, ok := f.TokenAt(i); ok && t.IsWhitespace() {
		if prev, ok := f.TokenAt(i - 1); ok && prev.IsLinebreak() {
			return
		}
		f.RemoveAt(i)
	}
}

// isCaptureListClose detects a `]` that closes a closure capture list: it
// is preceded by `{` and the next significant token is `in`.
func isCaptureListClose(f *state.Formatter, closeIdx int) bool {
	open, ok := f.ScopeAt(closeIdx)
	if !ok {
		return false
	}
	if t, _ := f.TokenAt(open); !isOpener(t, token.BracketOpen) {
		return false
	}
	prevBrace := f.IndexOfPreviousNonWhitespaceOrCommentOrLinebreak(open)
	if prevBrace < 0 {
		return false
	}
	if t, _ := f.TokenAt(prevBrace); !isOpener(t, token.BraceOpen) {
		return false
	}
	next := f.IndexOfNextNonWhitespaceOrCommentOrLinebreak(closeIdx)
	t, ok := f.TokenAt(next)
	return ok && isKeyword(t, "in")
}

// isAttributeCallClose detects a `)` closing an attribute-argument list:
// the matching `(` immediately follows an `@`-prefixed keyword/identifier.
func isAttributeCallClose(f *state.Formatter, closeIdx int) bool {
	open, ok := f.ScopeAt(closeIdx)
	if !ok {
		return false
	}
	if t, _ := f.TokenAt(open); !isOpener(t, token.ParenOpen) {
		return false
	}
	prev := f.IndexOfPreviousNonWhitespaceOrCommentOrLinebreak(open)
	t, ok := f.TokenAt(prev)
	if !ok {
		return false
	}
	return len(t.Payload) > 0 && t.Payload[0] == '@'
}

// SpaceAroundParens implements the spaceAroundParens rule: space before a
// `(` depending on the preceding token, space after a `)` depending on the
// following token.
func SpaceAroundParens(f *state.Formatter) {
	f.ForEachToken(func(t token.Token) bool { return isOpener(t, token.ParenOpen) }, func(i int, _ token.Token) {
		prev := f.IndexOfPreviousNonWhitespaceOrCommentOrLinebreak(i)
		pt, ok := f.TokenAt(prev)
		if !ok {
			return
		}
		wsIdx := i - 1
		hasSpace := false
		if wt, ok := f.TokenAt(wsIdx); ok && wt.IsWhitespace() {
			hasSpace = true
		}

		want := spaceBeforeParen(f, i, pt)
		if want && !hasSpace {
			insertSpace(f, i)
		} else if !want && hasSpace {
			removeSpaceAt(f, wsIdx)
		}
	})

	f.ForEachToken(func(t token.Token) bool { return isCloser(t, token.ParenClose) }, func(i int, _ token.Token) {
		next := i + 1
		nt, ok := f.TokenAt(next)
		if !ok {
			return
		}
		if nt.IsWhitespaceOrLinebreak() || nt.IsComment() {
			return
		}
		if nt.IsIdentifierOrKeyword() || isOpener(nt, token.BraceOpen) {
			insertSpace(f, next)
		}
	})
}

func spaceBeforeParen(f *state.Formatter, parenIdx int, prev token.Token) bool {
	switch {
	case prev.Kind == token.Keyword:
		if noSpaceBeforeParenKeywords[prev.Payload] {
			return false
		}
		return true
	case len(prev.Payload) > 0 && (prev.Payload[0] == '@' || prev.Payload[0] == '#'):
		if autoclosureAttributes[prev.Payload] {
			next := f.IndexOfNextNonWhitespaceOrCommentOrLinebreak(parenIdx)
			if nt, ok := f.TokenAt(next); ok && isKeyword(nt, "escaping") {
				return false
			}
			return true
		}
		return false
	case isCloser(prev, token.BracketClose):
		prevIdx := f.IndexOfPreviousNonWhitespaceOrCommentOrLinebreak(parenIdx)
		return isCaptureListClose(f, prevIdx)
	case isCloser(prev, token.ParenClose):
		prevIdx := f.IndexOfPreviousNonWhitespaceOrCommentOrLinebreak(parenIdx)
		return isAttributeCallClose(f, prevIdx)
	default:
		return false
	}
}

// symmetricSpaceInsideScope removes whitespace immediately inside opener
// openPayload/closer closePayload unless the other side is a linebreak;
// used for (), [] and <>.
func symmetricSpaceInsideScope(f *state.Formatter, openPayload string) {
	f.ForEachToken(func(t token.Token) bool { return isOpener(t, openPayload) }, func(i int, _ token.Token) {
		if t, ok := f.TokenAt(i + 1); ok && t.IsWhitespace() {
			if next, ok := f.TokenAt(i + 2); !ok || !next.IsLinebreak() {
				f.RemoveAt(i + 1)
			}
		}
	})
	f.ForEachToken(closesScope, func(i int, t token.Token) {
		if !isCloser(t, closeFor(openPayload)) {
			return
		}
		if wt, ok := f.TokenAt(i - 1); ok && wt.IsWhitespace() {
			if prev, ok := f.TokenAt(i - 2); !ok || !prev.IsLinebreak() {
				f.RemoveAt(i - 1)
			}
		}
	})
}

func closeFor(open string) string {
	switch open {
	case token.ParenOpen:
		return token.ParenClose
	case token.BracketOpen:
		return token.BracketClose
	case token.AngleOpen:
		return token.AngleClose
	}
	return ""
}

// SpaceInsideParens implements spaceInsideParens.
func SpaceInsideParens(f *state.Formatter) { symmetricSpaceInsideScope(f, token.ParenOpen) }

// SpaceInsideGenerics implements spaceInsideGenerics.
func SpaceInsideGenerics(f *state.Formatter) { symmetricSpaceInsideScope(f, token.AngleOpen) }

// SpaceAroundBrackets implements spaceAroundBrackets: space before `[` iff
// the previous significant token is a keyword; space after `]` before an
// identifier/keyword/`{`, none before `[`.
func SpaceAroundBrackets(f *state.Formatter) {
	f.ForEachToken(func(t token.Token) bool { return isOpener(t, token.BracketOpen) }, func(i int, _ token.Token) {
		prev := f.IndexOfPreviousNonWhitespaceOrCommentOrLinebreak(i)
		pt, ok := f.TokenAt(prev)
		hasSpace := false
		if wt, ok := f.TokenAt(i - 1); ok && wt.IsWhitespace() {
			hasSpace = true
		}
		want := ok && pt.Kind == token.Keyword
		if want && !hasSpace {
			insertSpace(f, i)
		} else if !want && hasSpace {
			removeSpaceAt(f, i-1)
		}
	})

	f.ForEachToken(func(t token.Token) bool { return isCloser(t, token.BracketClose) }, func(i int, _ token.Token) {
		next := i + 1
		nt, ok := f.TokenAt(next)
		if !ok || nt.IsWhitespaceOrLinebreak() || nt.IsComment() {
			return
		}
		if isOpener(nt, token.BracketOpen) {
			return
		}
		if nt.IsIdentifierOrKeyword() || isOpener(nt, token.BraceOpen) {
			insertSpace(f, next)
		}
	})
}

// SpaceInsideBrackets implements spaceInsideBrackets.
func SpaceInsideBrackets(f *state.Formatter) { symmetricSpaceInsideScope(f, token.BracketOpen) }

// SpaceAroundGenerics implements spaceAroundGenerics: symmetrical to
// brackets/parens but generics have no "before" rule of their own in the
// spec beyond the inside-scope trimming; left as a no-op placeholder for
// the inside rule to do the work, matching spec.md (only spaceInsideParens
// / Brackets / Generics are specified as a shared pattern; spaceAround
// for generics is governed by the operator/identifier adjacency already
// handled by spaceAroundOperators).
func SpaceAroundGenerics(f *state.Formatter) {}

// SpaceAroundBraces implements spaceAroundBraces: space before `{` unless
// preceded by a linebreak or another opener (except the string opener);
// space after `}` before an identifier or keyword.
func SpaceAroundBraces(f *state.Formatter) {
	f.ForEachToken(func(t token.Token) bool { return isOpener(t, token.BraceOpen) }, func(i int, _ token.Token) {
		if i == 0 {
			return
		}
		hasSpace := false
		if wt, ok := f.TokenAt(i - 1); ok && wt.IsWhitespace() {
			hasSpace = true
		}
		prevIdx := i - 1
		if hasSpace {
			prevIdx = i - 2
		}
		pt, ok := f.TokenAt(prevIdx)
		if !ok {
			return
		}
		if pt.IsLinebreak() {
			return
		}
		want := true
		if pt.Kind == token.StartOfScope && pt.Payload != token.StringQuote {
			want = false
		}
		if want && !hasSpace {
			insertSpace(f, i)
		} else if !want && hasSpace {
			removeSpaceAt(f, i-1)
		}
	})

	f.ForEachToken(func(t token.Token) bool { return isCloser(t, token.BraceClose) }, func(i int, _ token.Token) {
		next := i + 1
		nt, ok := f.TokenAt(next)
		if !ok || nt.IsWhitespaceOrLinebreak() || nt.IsComment() {
			return
		}
		if nt.IsIdentifierOrKeyword() {
			insertSpace(f, next)
		}
	})
}

// SpaceInsideBraces implements spaceInsideBraces: exactly one space after
// `{` and before `}`, unless the brace is on its own line or the braces
// are empty.
func SpaceInsideBraces(f *state.Formatter) {
	f.ForEachToken(func(t token.Token) bool { return isOpener(t, token.BraceOpen) }, func(i int, _ token.Token) {
		next, ok := f.TokenAt(i + 1)
		if !ok {
			return
		}
		if isCloser(next, token.BraceClose) {
			return
		}
		if next.IsLinebreak() {
			return
		}
		if !next.IsWhitespace() {
			insertSpace(f, i+1)
		}
	})
	f.ForEachToken(func(t token.Token) bool { return isCloser(t, token.BraceClose) }, func(i int, _ token.Token) {
		if i == 0 {
			return
		}
		prev, ok := f.TokenAt(i - 1)
		if !ok {
			return
		}
		if isOpener(prev, token.BraceOpen) {
			return
		}
		if prev.IsLinebreak() {
			return
		}
		if !prev.IsWhitespace() {
			insertSpace(f, i)
		}
	})
}
