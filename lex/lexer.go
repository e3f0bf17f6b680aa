// Package lex is the external collaborator spec.md places out of scope
// for the formatter core: it turns source text into the token sequence
// package state operates on. It is deliberately minimal — it recognizes
// every token kind token.Kind names and every scope pair except `"` (a
// string literal is one atomic Symbol token, see scanStringLiteral), but resolves no
// names, builds no tree (the core's Non-goals apply here too), and its
// only hard contract is the round trip in spec.md §8 invariant 3.
//
// Grounded on sqlparser.Scanner's cursor-over-a-string dispatch: an
// index into the input and a switch on the first rune of each token,
// generalized from a single-token-at-a-time Scanner into a function that
// drains the whole input into a []token.Token slice, since the formatter
// state owns the buffer up front rather than pulling tokens lazily.
package lex

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/smasher164/xid"

	"github.com/vippsas/codefmt/token"
)

// keywords is the set of reserved words the lexer classifies as
// token.Keyword rather than token.Identifier. It intentionally includes
// every keyword the rule set inspects by name (declaration introducers,
// specifiers, control-flow keywords) so the formatter never needs to
// re-derive "is this word a keyword" from spelling.
var keywords = map[string]bool{
	"let": true, "var": true, "func": true, "class": true, "struct": true,
	"enum": true, "protocol": true, "extension": true, "init": true,
	"subscript": true, "typealias": true, "associatedtype": true,
	"if": true, "else": true, "switch": true, "case": true, "default": true,
	"guard": true, "for": true, "while": true, "repeat": true, "do": true,
	"catch": true, "return": true, "throw": true, "throws": true,
	"rethrows": true, "try": true, "as": true, "is": true, "in": true,
	"where": true, "import": true, "inout": true, "mutating": true,
	"nonmutating": true, "static": true, "final": true, "dynamic": true,
	"override": true, "convenience": true, "required": true,
	"optional": true, "lazy": true, "weak": true, "unowned": true,
	"private": true, "fileprivate": true, "internal": true,
	"public": true, "open": true, "prefix": true, "postfix": true,
	"infix": true, "operator": true, "true": true, "false": true,
	"nil": true, "self": true, "Self": true, "escaping": true,
}

type lexer struct {
	src string
	pos int
	out []token.Token
}

// Tokenize scans src into a flat token sequence. Untokenize(Tokenize(s))
// reproduces s byte-for-byte (spec.md §8 invariant 3): every rune of the
// input is accounted for by exactly one token's payload.
func Tokenize(src string) []token.Token {
	l := &lexer{src: src}
	for l.pos < len(l.src) {
		l.next()
	}
	return l.out
}

func (l *lexer) emit(kind token.Kind, payload string) {
	l.out = append(l.out, token.New(kind, payload))
}

func (l *lexer) rest() string { return l.src[l.pos:] }

func (l *lexer) next() {
	r, w := utf8.DecodeRuneInString(l.rest())
	switch {
	case r == utf8.RuneError && w == 0:
		return
	case r == utf8.RuneError && w <= 1:
		l.emit(token.Error, l.rest())
		l.pos = len(l.src)
	case r == '\n' || r == '\r':
		l.scanLinebreak()
	case unicode.IsSpace(r):
		l.scanWhitespace()
	case r == '(':
		l.emitOne(token.StartOfScope, token.ParenOpen, w)
	case r == ')':
		l.emitOne(token.EndOfScope, token.ParenClose, w)
	case r == '[':
		l.emitOne(token.StartOfScope, token.BracketOpen, w)
	case r == ']':
		l.emitOne(token.EndOfScope, token.BracketClose, w)
	case r == '{':
		l.emitOne(token.StartOfScope, token.BraceOpen, w)
	case r == '}':
		l.emitOne(token.EndOfScope, token.BraceClose, w)
	case r == '"':
		l.scanStringLiteral()
	case r >= '0' && r <= '9':
		l.scanNumber()
	case r == '/' && strings.HasPrefix(l.rest(), "//"):
		l.scanLineComment()
	case r == '/' && strings.HasPrefix(l.rest(), "/*"):
		l.scanBlockComment()
	case r == '@' || r == '#':
		l.scanAttributeOrIdentifier(r)
	case xid.Start(r) || r == '_':
		l.scanIdentifier()
	case r == '<' || r == '>':
		l.scanAngle(r, w)
	default:
		l.scanOperator()
	}
}

func (l *lexer) emitOne(kind token.Kind, payload string, w int) {
	l.emit(kind, payload)
	l.pos += w
}

func (l *lexer) scanLinebreak() {
	if strings.HasPrefix(l.rest(), "\r\n") {
		l.emit(token.Linebreak, "\r\n")
		l.pos += 2
		return
	}
	r, w := utf8.DecodeRuneInString(l.rest())
	_ = r
	l.emit(token.Linebreak, l.rest()[:w])
	l.pos += w
}

func (l *lexer) scanWhitespace() {
	start := l.pos
	for l.pos < len(l.src) {
		r, w := utf8.DecodeRuneInString(l.rest())
		if r == '\n' || r == '\r' || !unicode.IsSpace(r) {
			break
		}
		l.pos += w
	}
	l.emit(token.Whitespace, l.src[start:l.pos])
}

func (l *lexer) scanNumber() {
	start := l.pos
	for l.pos < len(l.src) {
		r, w := utf8.DecodeRuneInString(l.rest())
		if (r >= '0' && r <= '9') || r == '.' || r == '_' ||
			r == 'e' || r == 'E' || r == 'x' || r == 'X' ||
			(r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F') ||
			((r == '+' || r == '-') && l.pos > start && (l.src[l.pos-1] == 'e' || l.src[l.pos-1] == 'E')) {
			l.pos += w
			continue
		}
		break
	}
	l.emit(token.Number, l.src[start:l.pos])
}

func (l *lexer) scanIdentifier() {
	start := l.pos
	r, w := utf8.DecodeRuneInString(l.rest())
	_ = r
	l.pos += w
	for l.pos < len(l.src) {
		r, w := utf8.DecodeRuneInString(l.rest())
		if !(xid.Continue(r) || r == '$') {
			break
		}
		l.pos += w
	}
	text := l.src[start:l.pos]
	switch {
	case text == token.Case || text == token.Default:
		// case/default double as the pseudo-scope marker state.ScopeAt
		// and the indenter match on: closer of the previous case body
		// and opener of the next one, so they are EndOfScope tokens
		// rather than plain keywords.
		l.emit(token.EndOfScope, text)
	case keywords[text]:
		l.emit(token.Keyword, text)
	default:
		l.emit(token.Identifier, text)
	}
}

// scanAttributeOrIdentifier handles `@foo`/`#foo` attribute-like tokens,
// emitted as Keyword tokens so spacing rules can match on the leading
// sigil the same way they match any other keyword payload.
func (l *lexer) scanAttributeOrIdentifier(sigil rune) {
	start := l.pos
	_, w := utf8.DecodeRuneInString(l.rest())
	l.pos += w
	for l.pos < len(l.src) {
		r, w := utf8.DecodeRuneInString(l.rest())
		if !(xid.Continue(r)) {
			break
		}
		l.pos += w
	}
	text := l.src[start:l.pos]
	if text == string(sigil) {
		l.emit(token.Symbol, text)
		return
	}
	l.emit(token.Keyword, text)
}

// scanStringLiteral treats the whole quoted literal, delimiters included,
// as one atomic Symbol token: rules never split a token's payload, so an
// atomic string token trivially satisfies "never modify tokens inside a
// ... string body" without the core needing a dedicated string-body kind.
func (l *lexer) scanStringLiteral() {
	start := l.pos
	l.pos++ // opening quote
	for l.pos < len(l.src) {
		r, w := utf8.DecodeRuneInString(l.rest())
		if r == '\\' {
			l.pos += w
			_, w2 := utf8.DecodeRuneInString(l.rest())
			l.pos += w2
			continue
		}
		if r == '"' {
			l.pos += w
			l.emit(token.Symbol, l.src[start:l.pos])
			return
		}
		if r == '\n' {
			break
		}
		l.pos += w
	}
	l.emit(token.Error, l.src[start:l.pos])
}

func (l *lexer) scanLineComment() {
	l.emit(token.StartOfScope, token.LineComment)
	l.pos += 2
	start := l.pos
	for l.pos < len(l.src) {
		r, _ := utf8.DecodeRuneInString(l.rest())
		if r == '\n' || r == '\r' {
			break
		}
		_, w := utf8.DecodeRuneInString(l.rest())
		l.pos += w
	}
	if l.pos > start {
		l.emit(token.CommentBody, l.src[start:l.pos])
	}
}

func (l *lexer) scanBlockComment() {
	if !strings.Contains(l.rest()[2:], "*/") {
		// Unterminated: the rest of the input becomes one Error token.
		l.emit(token.Error, l.rest())
		l.pos = len(l.src)
		return
	}
	l.emit(token.StartOfScope, token.CommentOpen)
	l.pos += 2
	start := l.pos
	for l.pos < len(l.src) {
		if strings.HasPrefix(l.rest(), "*/") {
			break
		}
		_, w := utf8.DecodeRuneInString(l.rest())
		l.pos += w
	}
	if l.pos > start {
		l.emit(token.CommentBody, l.src[start:l.pos])
	}
	l.emit(token.EndOfScope, token.CommentClose)
	l.pos += 2
}

// scanAngle disambiguates `<`/`>` as generic scope delimiters vs
// comparison operators. A real implementation needs lookahead over
// balanced identifiers/commas; this minimal lexer uses the common
// heuristic of treating `<`/`>` adjacent to an identifier with no
// surrounding whitespace as a generic delimiter, and otherwise as a
// comparison operator, matching how mssql.Scanner's NextToken layers
// disambiguation on top of the raw per-rune dispatch rather than folding
// it into nextToken itself.
func (l *lexer) scanAngle(r rune, w int) {
	if l.pos+w < len(l.src) && l.src[l.pos+w] == '=' {
		l.scanOperator() // "<=" / ">="
		return
	}
	if r == '<' {
		prevIsIdentifierChar := l.pos > 0 && isIdentifierByte(l.src[l.pos-1])
		if prevIsIdentifierChar {
			l.emitOne(token.StartOfScope, token.AngleOpen, w)
			return
		}
	} else {
		prevIsIdentifierOrCloser := l.pos > 0 && (isIdentifierByte(l.src[l.pos-1]) || l.src[l.pos-1] == ')' || l.src[l.pos-1] == ']' || l.src[l.pos-1] == '>')
		if prevIsIdentifierOrCloser {
			l.emitOne(token.EndOfScope, token.AngleClose, w)
			return
		}
	}
	l.scanOperator()
}

func isIdentifierByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

var multiCharOperators = []string{
	"...", "..<", "->", "??", "==", "!=", "<=", ">=", "&&", "||",
}

func (l *lexer) scanOperator() {
	for _, op := range multiCharOperators {
		if strings.HasPrefix(l.rest(), op) {
			l.emit(token.Symbol, op)
			l.pos += len(op)
			return
		}
	}
	r, w := utf8.DecodeRuneInString(l.rest())
	l.emit(token.Symbol, string(r))
	l.pos += w
}
