package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vippsas/codefmt/token"
)

func payloads(toks []token.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Payload
	}
	return out
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	srcs := []string{
		"",
		"func f() {}\n",
		"let x = 1 + 2 // comment\n",
		"/* block\ncomment */let y: Int<T> = []\n",
		"let s = \"hello, \\\"world\\\"\"\n",
		"switch x {\ncase 1:\n    break\ndefault:\n    break\n}\n",
	}
	for _, src := range srcs {
		require.Equal(t, src, token.Untokenize(Tokenize(src)), "round trip for %q", src)
	}
}

func TestKeywordsVsIdentifiers(t *testing.T) {
	toks := Tokenize("let x = func")
	assert.Equal(t, []string{"let", " ", "x", " ", "=", " ", "func"}, payloads(toks))
	assert.Equal(t, token.Keyword, toks[0].Kind)
	assert.Equal(t, token.Identifier, toks[2].Kind)
	assert.Equal(t, token.Keyword, toks[6].Kind)
}

func TestCaseDefaultAreEndOfScope(t *testing.T) {
	toks := Tokenize("case 1:")
	assert.Equal(t, token.EndOfScope, toks[0].Kind)
	assert.Equal(t, token.Case, toks[0].Payload)

	toks = Tokenize("default:")
	assert.Equal(t, token.EndOfScope, toks[0].Kind)
	assert.Equal(t, token.Default, toks[0].Payload)
}

func TestNumbers(t *testing.T) {
	toks := Tokenize("1_000 3.14 0xFF 1e-10")
	assert.Equal(t, token.Number, toks[0].Kind)
	assert.Equal(t, "1_000", toks[0].Payload)
	assert.Equal(t, "3.14", toks[2].Payload)
	assert.Equal(t, "0xFF", toks[4].Payload)
	assert.Equal(t, "1e-10", toks[6].Payload)
}

func TestStringLiteralIsAtomic(t *testing.T) {
	toks := Tokenize(`"a \"b\" c"`)
	require.Len(t, toks, 1)
	assert.Equal(t, token.Symbol, toks[0].Kind)
	assert.Equal(t, `"a \"b\" c"`, toks[0].Payload)
}

func TestLineComment(t *testing.T) {
	toks := Tokenize("// hi\n")
	assert.Equal(t, []token.Kind{token.StartOfScope, token.CommentBody, token.Linebreak}, kinds(toks))
	assert.Equal(t, "//", toks[0].Payload)
	assert.Equal(t, " hi", toks[1].Payload)
}

func TestBlockComment(t *testing.T) {
	toks := Tokenize("/* hi */")
	assert.Equal(t, []token.Kind{token.StartOfScope, token.CommentBody, token.EndOfScope}, kinds(toks))
	assert.Equal(t, "*/", toks[2].Payload)
}

func TestScopeDelimiters(t *testing.T) {
	toks := Tokenize("()[]{}")
	assert.Equal(t, []string{"(", ")", "[", "]", "{", "}"}, payloads(toks))
	assert.Equal(t, []token.Kind{
		token.StartOfScope, token.EndOfScope,
		token.StartOfScope, token.EndOfScope,
		token.StartOfScope, token.EndOfScope,
	}, kinds(toks))
}

func TestMultiCharOperators(t *testing.T) {
	toks := Tokenize("a...b ..< c->d ?? e")
	payloadSet := payloads(toks)
	assert.Contains(t, payloadSet, "...")
	assert.Contains(t, payloadSet, "..<")
	assert.Contains(t, payloadSet, "->")
	assert.Contains(t, payloadSet, "??")
}

func TestGenericAngleBrackets(t *testing.T) {
	toks := Tokenize("Array<Int>")
	assert.Equal(t, []token.Kind{
		token.Identifier, token.StartOfScope, token.Identifier, token.EndOfScope,
	}, kinds(toks))
	assert.Equal(t, []string{"Array", "<", "Int", ">"}, payloads(toks))
}

func TestLessThanComparisonNotGeneric(t *testing.T) {
	toks := Tokenize("a < b")
	var found token.Token
	for _, tt := range toks {
		if tt.Payload == "<" {
			found = tt
		}
	}
	assert.Equal(t, token.Symbol, found.Kind)
}

func TestAttribute(t *testing.T) {
	toks := Tokenize("@escaping")
	assert.Equal(t, token.Keyword, toks[0].Kind)
	assert.Equal(t, "@escaping", toks[0].Payload)
}

func TestCRLFLinebreak(t *testing.T) {
	toks := Tokenize("let x = 1\r\nlet y = 2\r\n")
	require.Equal(t, "let x = 1\r\nlet y = 2\r\n", token.Untokenize(toks))
	var sawCRLF bool
	for _, t2 := range toks {
		if t2.IsLinebreak() {
			assert.Equal(t, "\r\n", t2.Payload)
			sawCRLF = true
		}
	}
	assert.True(t, sawCRLF)
}
