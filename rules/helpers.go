// Package rules implements the ~27 formatting rules and the fixed
// pipeline that applies them, each a pure transformation over a
// state.Formatter's token buffer.
package rules

import (
	"github.com/vippsas/codefmt/options"
	"github.com/vippsas/codefmt/state"
	"github.com/vippsas/codefmt/token"
)

// Rule is one pipeline stage: a pure transformation of the token buffer.
// Rules communicate with each other only through the buffer; none may
// capture shared mutable state beyond it and the Formatter's Options.
type Rule func(f *state.Formatter)

func isKeyword(t token.Token, words ...string) bool {
	if t.Kind != token.Keyword {
		return false
	}
	for _, w := range words {
		if t.Payload == w {
			return true
		}
	}
	return false
}

func isSymbol(t token.Token, syms ...string) bool {
	if t.Kind != token.Symbol {
		return false
	}
	for _, s := range syms {
		if t.Payload == s {
			return true
		}
	}
	return false
}

func isOpener(t token.Token, payload string) bool {
	return t.Kind == token.StartOfScope && t.Payload == payload
}

func isCloser(t token.Token, payload string) bool {
	return t.Kind == token.EndOfScope && t.Payload == payload
}

// specifierOrder is the canonical declaration-specifier ordering used by
// the specifiers rule, earliest first.
var specifierOrder = []string{
	"private(set)", "fileprivate(set)", "internal(set)", "public(set)",
	"private", "fileprivate", "internal", "public", "open",
	"final", "dynamic",
	"optional", "required",
	"convenience",
	"override",
	"lazy",
	"weak", "unowned",
	"static", "class",
	"mutating", "nonmutating",
	"prefix", "postfix",
}

var specifierSet = func() map[string]bool {
	m := make(map[string]bool, len(specifierOrder))
	for _, s := range specifierOrder {
		m[s] = true
	}
	return m
}()

// declarationIntroducers are the keywords the specifiers rule walks
// backward from when looking for a run of specifiers to reorder.
var declarationIntroducers = map[string]bool{
	"let": true, "func": true, "var": true, "class": true,
	"extension": true, "init": true, "enum": true, "struct": true,
	"typealias": true, "subscript": true, "associatedtype": true,
	"protocol": true,
}

// spaceableScopeKeywords introduce a "spaceable" brace body: class,
// struct, extension, enum. func and var bodies are not spaceable.
var spaceableScopeKeywords = map[string]bool{
	"class": true, "struct": true, "extension": true, "enum": true,
}

func opensScope(t token.Token) bool { return t.Kind == token.StartOfScope }
func closesScope(t token.Token) bool {
	return t.Kind == token.EndOfScope && !t.IsScopePseudoCase()
}

// onItsOwnLine reports whether the token at i is the first non-whitespace
// token on its line and the only non-whitespace/comment token before the
// next linebreak (used by blankLinesAtEndOfScope/elseOnSameLine to
// detect a closer "standing on its own line").
func onItsOwnLine(f *state.Formatter, i int) bool {
	start := f.StartOfLine(i)
	for j := start; j < i; j++ {
		t, _ := f.TokenAt(j)
		if !t.IsWhitespace() {
			return false
		}
	}
	for j := i + 1; j < f.Len(); j++ {
		t, _ := f.TokenAt(j)
		if t.IsLinebreak() {
			break
		}
		if !(t.IsWhitespaceOrComment() || isOpener(t, token.LineComment) || isOpener(t, token.CommentOpen) || isCloser(t, token.CommentClose)) {
			return false
		}
	}
	return true
}

func currentIndent(f *state.Formatter, i int) string {
	start := f.StartOfLine(i)
	t, ok := f.TokenAt(start)
	if ok && t.IsWhitespace() {
		return t.Payload
	}
	return ""
}

func newline(f *state.Formatter) token.Token {
	return token.New(token.Linebreak, string(f.Options.Linebreak))
}

func space() token.Token {
	return token.New(token.Whitespace, " ")
}
