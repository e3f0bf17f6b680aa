package rules

import (
	"sort"

	"github.com/vippsas/codefmt/state"
	"github.com/vippsas/codefmt/token"
)

// Linebreaks rewrites every linebreak token's payload to the configured
// canonical sequence.
func Linebreaks(f *state.Formatter) {
	canonical := string(f.Options.Linebreak)
	f.ForEachToken(func(t token.Token) bool { return t.IsLinebreak() }, func(i int, t token.Token) {
		if t.Payload != canonical {
			f.ReplaceAt(i, token.New(token.Linebreak, canonical))
		}
	})
}

// Semicolons removes a `;` at start/end of file, end of scope, or end of
// line; otherwise, when inline semicolons are disallowed, replaces it with
// a linebreak reproducing the current line's indent. A `;` following
// `return`, or living inside a `(` scope (for-loop legacy), is never
// removed.
func Semicolons(f *state.Formatter) {
	f.ForEachToken(func(t token.Token) bool { return isSymbol(t, ";") }, func(i int, _ token.Token) {
		if scope, ok := f.ScopeAt(i); ok {
			st, _ := f.TokenAt(scope)
			if isOpener(st, token.ParenOpen) {
				return
			}
		}
		prev := f.IndexOfPreviousNonWhitespaceOrCommentOrLinebreak(i)
		pt, hasPrev := f.TokenAt(prev)
		if hasPrev && isKeyword(pt, "return") {
			return
		}

		next := f.IndexOfNextNonWhitespace(i)
		nt, hasNext := f.TokenAt(next)
		atEndOfLine := !hasNext || nt.IsLinebreak()
		atStartOfFile := !hasPrev
		atEndOfScope := (hasPrev && closesScope(pt)) || (hasNext && closesScope(nt))

		if atStartOfFile || !hasNext || atEndOfLine || atEndOfScope {
			removeSemicolonAndAdjacentSpace(f, i)
			return
		}

		if !f.Options.AllowInlineSemicolons {
			indent := currentIndent(f, i)
			repl := []token.Token{newline(f)}
			if indent != "" {
				repl = append(repl, token.New(token.Whitespace, indent))
			}
			lo, hi := i, i+1
			if wt, ok := f.TokenAt(i + 1); ok && wt.IsWhitespace() {
				hi++
			}
			f.ReplaceRange(lo, hi, repl)
		}
	})
}

func removeSemicolonAndAdjacentSpace(f *state.Formatter, i int) {
	hi := i + 1
	if wt, ok := f.TokenAt(hi); ok && wt.IsWhitespace() {
		hi++
	}
	lo := i
	if wt, ok := f.TokenAt(i - 1); ok && wt.IsWhitespace() {
		lo--
	}
	f.RemoveRange(lo, hi)
}

// Specifiers walks backward from each declaration-introducing keyword,
// collects the run of consecutive specifier tokens from the fixed allowed
// set, and reorders them to the canonical order.
func Specifiers(f *state.Formatter) {
	f.ForEachToken(func(t token.Token) bool {
		return t.Kind == token.Keyword && declarationIntroducers[t.Payload]
	}, func(i int, _ token.Token) {
		end := i
		start := i
		for {
			prev := f.IndexOfPreviousNonWhitespaceOrCommentOrLinebreak(start)
			pt, ok := f.TokenAt(prev)
			if !ok || !specifierSet[pt.Payload] {
				break
			}
			start = prev
		}
		if start == end {
			return
		}
		specs := make([]string, 0, end-start)
		for j := start; j < end; j++ {
			t, ok := f.TokenAt(j)
			if ok && t.Kind == token.Keyword {
				specs = append(specs, t.Payload)
			}
		}
		sort.SliceStable(specs, func(a, b int) bool {
			return specifierRank(specs[a]) < specifierRank(specs[b])
		})
		repl := make([]token.Token, 0, len(specs)*2)
		for idx, s := range specs {
			if idx > 0 {
				repl = append(repl, space())
			}
			repl = append(repl, token.New(token.Keyword, s))
		}
		repl = append(repl, space())
		f.ReplaceRange(start, end, repl)
	})
}

func specifierRank(s string) int {
	for i, c := range specifierOrder {
		if c == s {
			return i
		}
	}
	return len(specifierOrder)
}

// RedundantParens strips the `(` `)` around the condition of if/while/
// switch when the closing `)` is directly followed by `{`. For switch, if
// a `,` appears inside (potential tuple), the parens are left alone.
func RedundantParens(f *state.Formatter) {
	f.ForEachToken(func(t token.Token) bool {
		return isKeyword(t, "if", "while", "switch")
	}, func(i int, kw token.Token) {
		open := f.IndexOfNextNonWhitespaceOrComment(i)
		ot, ok := f.TokenAt(open)
		if !ok || !isOpener(ot, token.ParenOpen) {
			return
		}
		close := matchingParenClose(f, open)
		if close < 0 {
			return
		}
		afterClose := f.IndexOfNextNonWhitespaceOrComment(close)
		at, ok := f.TokenAt(afterClose)
		if !ok || !isOpener(at, token.BraceOpen) {
			return
		}
		if kw.Payload == "switch" && containsTopLevelComma(f, open, close) {
			return
		}
		f.RemoveAt(close)
		f.RemoveAt(open)
	})
}

func matchingParenClose(f *state.Formatter, openIdx int) int {
	depth := 0
	for j := openIdx + 1; j < f.Len(); j++ {
		t, _ := f.TokenAt(j)
		switch {
		case isOpener(t, token.ParenOpen):
			depth++
		case isCloser(t, token.ParenClose):
			if depth == 0 {
				return j
			}
			depth--
		}
	}
	return -1
}

func containsTopLevelComma(f *state.Formatter, open, close int) bool {
	depth := 0
	for j := open + 1; j < close; j++ {
		t, _ := f.TokenAt(j)
		switch {
		case opensScope(t):
			depth++
		case closesScope(t):
			depth--
		case isSymbol(t, ",") && depth == 0:
			return true
		}
	}
	return false
}

// Void normalizes the empty tuple in a function type's return position:
// when UseVoid is on, `()` right after `->` becomes `Void`; when off, the
// reverse. A `Void` reached via `.` (an enum case or similar) or that
// follows `typealias` is left alone. Independently of UseVoid, a
// single-parameter `(Void)` list immediately before `->`, `throws`, or
// `rethrows` is always collapsed to `()` -- that spelling of "no
// parameters" is never preferred either way.
func Void(f *state.Formatter) {
	f.ForEachToken(func(t token.Token) bool { return isSymbol(t, "->") }, func(i int, _ token.Token) {
		next := f.IndexOfNextNonWhitespaceOrComment(i)
		if f.Options.UseVoid {
			replaceEmptyParensWithVoid(f, next)
		} else {
			replaceVoidWithEmptyParens(f, next)
		}
	})
	f.ForEachToken(func(t token.Token) bool { return isOpener(t, token.ParenOpen) }, func(i int, _ token.Token) {
		collapseVoidParameterList(f, i)
	})
}

// collapseVoidParameterList replaces the `(Void)` parameter list opening
// at openIdx with `()`, when the parens contain exactly the identifier
// `Void` and are followed (modulo whitespace/comments) by `->`, `throws`,
// or `rethrows`.
func collapseVoidParameterList(f *state.Formatter, openIdx int) {
	voidIdx := f.IndexOfNextNonWhitespaceOrComment(openIdx)
	vt, ok := f.TokenAt(voidIdx)
	if !ok || vt.Kind != token.Identifier || vt.Payload != "Void" {
		return
	}
	closeIdx := f.IndexOfNextNonWhitespaceOrComment(voidIdx)
	ct, ok := f.TokenAt(closeIdx)
	if !ok || !isCloser(ct, token.ParenClose) {
		return
	}
	after := f.IndexOfNextNonWhitespaceOrComment(closeIdx)
	at, ok := f.TokenAt(after)
	if !ok || !(isSymbol(at, "->") || isKeyword(at, "throws", "rethrows")) {
		return
	}
	f.ReplaceRange(openIdx, closeIdx+1, []token.Token{
		token.New(token.StartOfScope, token.ParenOpen),
		token.New(token.EndOfScope, token.ParenClose),
	})
}

func replaceEmptyParensWithVoid(f *state.Formatter, openIdx int) {
	ot, ok := f.TokenAt(openIdx)
	if !ok || !isOpener(ot, token.ParenOpen) {
		return
	}
	close := f.IndexOfNextNonWhitespaceOrComment(openIdx)
	ct, ok := f.TokenAt(close)
	if !ok || !isCloser(ct, token.ParenClose) {
		return
	}
	f.ReplaceRange(openIdx, close+1, []token.Token{token.New(token.Identifier, "Void")})
}

func replaceVoidWithEmptyParens(f *state.Formatter, idx int) {
	t, ok := f.TokenAt(idx)
	if !ok || t.Kind != token.Identifier || t.Payload != "Void" {
		return
	}
	prev := f.IndexOfPreviousNonWhitespaceOrCommentOrLinebreak(idx)
	if pt, ok := f.TokenAt(prev); ok && (isSymbol(pt, ".") || isKeyword(pt, "typealias")) {
		return
	}
	f.ReplaceAt(idx, token.New(token.StartOfScope, token.ParenOpen))
	f.InsertAt(idx+1, token.New(token.EndOfScope, token.ParenClose))
}

// Ranges spaces (or strips space around) `...`/`..<` per
// SpaceAroundRangeOperators, except immediately before `)`/`,` (argument
// default forms).
func Ranges(f *state.Formatter) {
	f.ForEachToken(func(t token.Token) bool { return isSymbol(t, "...", "..<") }, func(i int, _ token.Token) {
		if wt, ok := f.TokenAt(i - 1); ok && wt.IsWhitespace() {
			f.RemoveAt(i - 1)
			i--
		}
		if !f.Options.SpaceAroundRangeOperators {
			removeAdjacentSpace(f, i+1)
			return
		}
		next := i + 1
		nt, ok := f.TokenAt(next)
		if ok && (isCloser(nt, token.ParenClose) || isSymbol(nt, ",")) {
			return
		}
		insertSpace(f, i+1)
		insertSpace(f, i)
	})
}

func removeAdjacentSpace(f *state.Formatter, i int) {
	if t, ok := f.TokenAt(i); ok && t.IsWhitespace() {
		f.RemoveAt(i)
	}
}

// TrailingCommas inserts or strips the trailing comma of a multi-line `[…]`
// literal, per the option.
func TrailingCommas(f *state.Formatter) {
	f.ForEachToken(func(t token.Token) bool { return isCloser(t, token.BracketClose) }, func(i int, _ token.Token) {
		open, ok := f.ScopeAt(i)
		if !ok {
			return
		}
		if !multilineLiteral(f, open, i) {
			return
		}
		prev := f.IndexOfPreviousNonWhitespaceOrCommentOrLinebreak(i)
		pt, ok := f.TokenAt(prev)
		if !ok {
			return
		}
		if f.Options.TrailingCommas {
			if isSymbol(pt, ",") || isSymbol(pt, ":") || isOpener(pt, token.BracketOpen) {
				return
			}
			f.InsertAt(prev+1, token.New(token.Symbol, ","))
		} else {
			if isSymbol(pt, ",") {
				f.RemoveAt(prev)
			}
		}
	})
}

func multilineLiteral(f *state.Formatter, open, close int) bool {
	prevLineTok := f.IndexOfPreviousNonWhitespaceOrCommentOrLinebreak(close)
	for j := prevLineTok + 1; j < close; j++ {
		t, _ := f.TokenAt(j)
		if t.IsLinebreak() {
			return true
		}
	}
	return false
}

// StripHeader removes a leading block of `//` comments followed
// optionally by a single blank line, when enabled and not a fragment.
// `/*`-style headers are left alone.
func StripHeader(f *state.Formatter) {
	if f.Options.Fragment || !f.Options.StripHeader {
		return
	}
	i := 0
	sawComment := false
	for i < f.Len() {
		t, _ := f.TokenAt(i)
		switch {
		case isOpener(t, token.LineComment):
			// A `//` comment has no closer token (scanLineComment never
			// emits one, see indent.popLineComment) -- it ends at the next
			// Linebreak instead, so walk line-by-line rather than scope-by-
			// scope to find the header's end.
			sawComment = true
			end := f.IndexOfNext(i, func(t token.Token) bool { return t.IsLinebreak() })
			if end < 0 {
				i = f.Len()
			} else {
				i = end + 1
			}
		default:
			goto done
		}
	}
done:
	if !sawComment {
		return
	}
	end := i
	blankLinebreaks := 0
	for end < f.Len() {
		t, _ := f.TokenAt(end)
		if t.IsLinebreak() {
			blankLinebreaks++
			end++
			continue
		}
		break
	}
	if blankLinebreaks > 1 {
		end = i + 1
	}
	f.RemoveRange(0, end)
}
