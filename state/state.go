// Package state implements the mutable token buffer every rule operates
// on: an ordered token sequence plus an immutable options.Options, with
// the positional queries and local edits the rule set needs.
package state

import (
	"github.com/vippsas/codefmt/options"
	"github.com/vippsas/codefmt/token"
)

// Formatter owns one token sequence exclusively. It is single-threaded:
// no operation here suspends, blocks, or touches shared state beyond its
// own buffer and the immutable Options it was built with.
type Formatter struct {
	tokens  []token.Token
	Options options.Options
}

// New builds a Formatter over tokens, which it takes ownership of.
func New(tokens []token.Token, opts options.Options) *Formatter {
	return &Formatter{tokens: tokens, Options: opts}
}

// Tokens returns the whole sequence. Callers must not mutate the returned
// slice directly; use the Formatter's edit methods instead.
func (f *Formatter) Tokens() []token.Token { return f.tokens }

// Len returns the current token count.
func (f *Formatter) Len() int { return len(f.tokens) }

// TokenAt returns the token at i and whether i is in range.
func (f *Formatter) TokenAt(i int) (token.Token, bool) {
	if i < 0 || i >= len(f.tokens) {
		return token.Token{}, false
	}
	return f.tokens[i], true
}

// Match is a token predicate used by the directional search and iteration
// helpers.
type Match func(token.Token) bool

// IndexOfNext scans forward from (but not including) from for the first
// token matching, or -1 if none is found.
func (f *Formatter) IndexOfNext(from int, matching Match) int {
	for i := from + 1; i < len(f.tokens); i++ {
		if matching(f.tokens[i]) {
			return i
		}
	}
	return -1
}

// IndexOfPrevious scans backward from (but not including) from for the
// first token matching, or -1 if none is found.
func (f *Formatter) IndexOfPrevious(from int, matching Match) int {
	for i := from - 1; i >= 0; i-- {
		if matching(f.tokens[i]) {
			return i
		}
	}
	return -1
}

func notWhitespace(t token.Token) bool                  { return !t.IsWhitespace() }
func notWhitespaceOrLinebreak(t token.Token) bool        { return !t.IsWhitespaceOrLinebreak() }
func notWhitespaceOrComment(t token.Token) bool          { return !t.IsWhitespaceOrComment() }
func notWhitespaceOrCommentOrLinebreak(t token.Token) bool { return !t.IsWhitespaceOrCommentOrLinebreak() }

// IndexOfNextNonWhitespace finds the next token that is not whitespace.
func (f *Formatter) IndexOfNextNonWhitespace(from int) int {
	return f.IndexOfNext(from, notWhitespace)
}

// IndexOfNextNonWhitespaceOrLinebreak finds the next token that is
// neither whitespace nor a linebreak.
func (f *Formatter) IndexOfNextNonWhitespaceOrLinebreak(from int) int {
	return f.IndexOfNext(from, notWhitespaceOrLinebreak)
}

// IndexOfNextNonWhitespaceOrComment finds the next token that is neither
// whitespace nor a comment.
func (f *Formatter) IndexOfNextNonWhitespaceOrComment(from int) int {
	return f.IndexOfNext(from, notWhitespaceOrComment)
}

// IndexOfNextNonWhitespaceOrCommentOrLinebreak finds the next token that
// is none of whitespace, comment, or linebreak.
func (f *Formatter) IndexOfNextNonWhitespaceOrCommentOrLinebreak(from int) int {
	return f.IndexOfNext(from, notWhitespaceOrCommentOrLinebreak)
}

// IndexOfPreviousNonWhitespace finds the previous token that is not
// whitespace.
func (f *Formatter) IndexOfPreviousNonWhitespace(from int) int {
	return f.IndexOfPrevious(from, notWhitespace)
}

// IndexOfPreviousNonWhitespaceOrLinebreak finds the previous token that is
// neither whitespace nor a linebreak.
func (f *Formatter) IndexOfPreviousNonWhitespaceOrLinebreak(from int) int {
	return f.IndexOfPrevious(from, notWhitespaceOrLinebreak)
}

// IndexOfPreviousNonWhitespaceOrComment finds the previous token that is
// neither whitespace nor a comment.
func (f *Formatter) IndexOfPreviousNonWhitespaceOrComment(from int) int {
	return f.IndexOfPrevious(from, notWhitespaceOrComment)
}

// IndexOfPreviousNonWhitespaceOrCommentOrLinebreak finds the previous
// token that is none of whitespace, comment, or linebreak.
func (f *Formatter) IndexOfPreviousNonWhitespaceOrCommentOrLinebreak(from int) int {
	return f.IndexOfPrevious(from, notWhitespaceOrCommentOrLinebreak)
}

// ScopeAt returns the index of the innermost opener token enclosing i, by
// walking backward with a balanced-scope counter: every end-of-scope token
// other than a case/default marker increments the counter, every
// start-of-scope token either decrements it (if the counter is above zero,
// meaning it closes a scope opened further back) or, at zero, is the
// answer. A case/default pseudo-scope marker found at zero depth is the
// answer too, since it behaves as the opener of the case body region that
// follows it; found at a depth above zero it is skipped.
func (f *Formatter) ScopeAt(i int) (int, bool) {
	depth := 0
	for j := i - 1; j >= 0; j-- {
		t := f.tokens[j]
		switch {
		case t.IsScopePseudoCase():
			if depth == 0 {
				return j, true
			}
		case t.IsEndOfScope():
			depth++
		case t.IsStartOfScope():
			if depth == 0 {
				return j, true
			}
			depth--
		}
	}
	return -1, false
}

// InsertAt inserts tok so that it becomes the token at index i, shifting
// everything at or after i one slot later.
func (f *Formatter) InsertAt(i int, tok token.Token) {
	f.tokens = append(f.tokens, token.Token{})
	copy(f.tokens[i+1:], f.tokens[i:])
	f.tokens[i] = tok
}

// RemoveAt removes and returns the token at i.
func (f *Formatter) RemoveAt(i int) token.Token {
	removed := f.tokens[i]
	f.tokens = append(f.tokens[:i], f.tokens[i+1:]...)
	return removed
}

// ReplaceAt replaces the token at i with tok and returns the token it
// replaced.
func (f *Formatter) ReplaceAt(i int, tok token.Token) token.Token {
	old := f.tokens[i]
	f.tokens[i] = tok
	return old
}

// RemoveRange removes tokens in [lo, hi) and returns the removed slice.
func (f *Formatter) RemoveRange(lo, hi int) []token.Token {
	removed := append([]token.Token(nil), f.tokens[lo:hi]...)
	f.tokens = append(f.tokens[:lo], f.tokens[hi:]...)
	return removed
}

// ReplaceRange replaces tokens in [lo, hi) with toks.
func (f *Formatter) ReplaceRange(lo, hi int, toks []token.Token) {
	tail := append([]token.Token(nil), f.tokens[hi:]...)
	f.tokens = append(f.tokens[:lo], toks...)
	f.tokens = append(f.tokens, tail...)
}

// RemoveLast removes and returns the final token in the buffer.
func (f *Formatter) RemoveLast() token.Token {
	return f.RemoveAt(len(f.tokens) - 1)
}

// ForEachToken invokes body(i, tok) for every token matching predicate, in
// order. body may mutate the buffer (insert, remove, replace); after each
// call the iterator re-reads the current length and resumes at
// min(i+1, length), without adjusting for the edit. A token inserted after
// i is therefore reached later in the same sweep (and passed to body if it
// matches); an insert at or before i moves the current token to i+1, where
// it is visited again; a removal at or before i skips the token that moves
// down into index i.
func (f *Formatter) ForEachToken(matching Match, body func(i int, tok token.Token)) {
	i := 0
	for i < len(f.tokens) {
		t := f.tokens[i]
		if matching(t) {
			body(i, t)
		}
		next := i + 1
		if next > len(f.tokens) {
			next = len(f.tokens)
		}
		i = next
	}
}

// StartOfLine returns the index of the first token on the line containing
// at: the index right after the nearest preceding Linebreak, or 0 if at
// is on the first line.
func (f *Formatter) StartOfLine(at int) int {
	for i := at - 1; i >= 0; i-- {
		if f.tokens[i].IsLinebreak() {
			return i + 1
		}
	}
	return 0
}

// IndentTokenForLineAt returns the whitespace token that begins the line
// containing i, if the line begins with one.
func (f *Formatter) IndentTokenForLineAt(i int) (int, bool) {
	start := f.StartOfLine(i)
	if start >= len(f.tokens) {
		return -1, false
	}
	if f.tokens[start].IsWhitespace() {
		return start, true
	}
	return -1, false
}
