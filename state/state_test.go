package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vippsas/codefmt/options"
	"github.com/vippsas/codefmt/token"
)

func toks(ts ...token.Token) []token.Token { return ts }

func ws() token.Token { return token.New(token.Whitespace, " ") }
func nl() token.Token { return token.New(token.Linebreak, "\n") }
func id(s string) token.Token { return token.New(token.Identifier, s) }

func TestIndexOfNextPrevious(t *testing.T) {
	f := New(toks(
		id("a"), ws(), id("b"), ws(), id("c"),
	), options.Default())

	assert.Equal(t, 2, f.IndexOfNextNonWhitespace(0))
	assert.Equal(t, 4, f.IndexOfNextNonWhitespace(2))
	assert.Equal(t, -1, f.IndexOfNextNonWhitespace(4))

	assert.Equal(t, 2, f.IndexOfPreviousNonWhitespace(4))
	assert.Equal(t, 0, f.IndexOfPreviousNonWhitespace(2))
	assert.Equal(t, -1, f.IndexOfPreviousNonWhitespace(0))
}

func TestScopeAtNested(t *testing.T) {
	// { a ( b ) c }
	f := New(toks(
		token.New(token.StartOfScope, token.BraceOpen),
		ws(), id("a"), ws(),
		token.New(token.StartOfScope, token.ParenOpen),
		ws(), id("b"), ws(),
		token.New(token.EndOfScope, token.ParenClose),
		ws(), id("c"), ws(),
		token.New(token.EndOfScope, token.BraceClose),
	), options.Default())

	scope, ok := f.ScopeAt(6) // "b"
	require.True(t, ok)
	assert.Equal(t, 4, scope) // the "("

	scope, ok = f.ScopeAt(10) // "c", back outside the parens
	require.True(t, ok)
	assert.Equal(t, 0, scope) // the "{"
}

func TestScopeAtCasePseudoScope(t *testing.T) {
	// switch { case 1 : stmt case 2 : stmt2 }
	f := New(toks(
		token.New(token.Keyword, "switch"), ws(),
		token.New(token.StartOfScope, token.BraceOpen), nl(),
		token.New(token.EndOfScope, token.Case), ws(), token.New(token.Number, "1"), token.New(token.Symbol, ":"), nl(),
		id("stmt"), nl(),
		token.New(token.EndOfScope, token.Case), ws(), token.New(token.Number, "2"), token.New(token.Symbol, ":"), nl(),
		id("stmt2"), nl(),
		token.New(token.EndOfScope, token.BraceClose),
	), options.Default())

	scope, ok := f.ScopeAt(9) // "stmt", inside the first case body
	require.True(t, ok)
	assert.Equal(t, 4, scope) // the first "case"

	scope, ok = f.ScopeAt(16) // "stmt2", inside the second case body
	require.True(t, ok)
	assert.Equal(t, 11, scope) // the second "case"
}

func TestInsertRemoveReplace(t *testing.T) {
	f := New(toks(id("a"), ws(), id("b")), options.Default())

	f.InsertAt(1, token.New(token.Symbol, ","))
	assert.Equal(t, []token.Token{id("a"), token.New(token.Symbol, ","), ws(), id("b")}, f.Tokens())

	removed := f.RemoveAt(1)
	assert.Equal(t, token.New(token.Symbol, ","), removed)
	assert.Equal(t, []token.Token{id("a"), ws(), id("b")}, f.Tokens())

	old := f.ReplaceAt(2, id("c"))
	assert.Equal(t, id("b"), old)
	assert.Equal(t, "c", f.Tokens()[2].Payload)
}

func TestRemoveReplaceRange(t *testing.T) {
	f := New(toks(id("a"), ws(), id("b"), ws(), id("c")), options.Default())

	removed := f.RemoveRange(1, 4)
	assert.Equal(t, []token.Token{ws(), id("b"), ws()}, removed)
	assert.Equal(t, []token.Token{id("a"), id("c")}, f.Tokens())

	f.ReplaceRange(1, 2, []token.Token{ws(), id("x"), ws()})
	assert.Equal(t, []token.Token{id("a"), ws(), id("x"), ws()}, f.Tokens())
}

func TestForEachTokenSeesOwnInsertsOnceNotTwice(t *testing.T) {
	f := New(toks(id("a"), id("b"), id("c")), options.Default())

	var seen []string
	f.ForEachToken(func(t token.Token) bool { return t.Kind == token.Identifier }, func(i int, t token.Token) {
		seen = append(seen, t.Payload)
		if t.Payload == "a" {
			f.InsertAt(i+1, ws())
		}
	})
	assert.Equal(t, []string{"a", "b", "c"}, seen)
}

func TestStartOfLine(t *testing.T) {
	f := New(toks(id("a"), nl(), ws(), id("b")), options.Default())
	assert.Equal(t, 0, f.StartOfLine(0))
	assert.Equal(t, 2, f.StartOfLine(3))
}

func TestIndentTokenForLineAt(t *testing.T) {
	f := New(toks(id("a"), nl(), ws(), id("b"), nl(), id("c")), options.Default())

	idx, ok := f.IndentTokenForLineAt(3)
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = f.IndentTokenForLineAt(5)
	assert.False(t, ok)
}
