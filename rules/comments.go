package rules

import (
	"strings"

	"github.com/vippsas/codefmt/state"
	"github.com/vippsas/codefmt/token"
)

// SpaceAroundComments inserts a space before a `//` or `/*` opener and
// after a `*/` closer when one is missing and the neighbor isn't a
// linebreak, mirroring spaceAroundBraces for comment scopes.
func SpaceAroundComments(f *state.Formatter) {
	f.ForEachToken(func(t token.Token) bool {
		return isOpener(t, token.LineComment) || isOpener(t, token.CommentOpen)
	}, func(i int, _ token.Token) {
		if i == 0 {
			return
		}
		prev, ok := f.TokenAt(i - 1)
		if !ok || prev.IsWhitespaceOrLinebreak() {
			return
		}
		insertSpace(f, i)
	})

	f.ForEachToken(func(t token.Token) bool { return isCloser(t, token.CommentClose) }, func(i int, _ token.Token) {
		next := i + 1
		nt, ok := f.TokenAt(next)
		if !ok || nt.IsWhitespaceOrLinebreak() {
			return
		}
		insertSpace(f, next)
	})
}

// SpaceInsideComments trims the comment body so there is exactly one space
// after the opener and before the closer (for `/* */`). A `//` comment body
// (which runs to end of line) gets exactly one leading space and loses its
// trailing spaces/tabs. A body of only spaces/tabs becomes empty.
func SpaceInsideComments(f *state.Formatter) {
	f.ForEachToken(func(t token.Token) bool { return t.Kind == token.CommentBody }, func(i int, t token.Token) {
		body := t.Payload
		trimmed := strings.TrimLeft(body, " \t")
		trimmed = strings.TrimRight(trimmed, " \t")
		if trimmed == "" {
			f.ReplaceAt(i, token.New(token.CommentBody, ""))
			return
		}

		blockComment := false
		if scope, ok := f.ScopeAt(i); ok {
			st, _ := f.TokenAt(scope)
			blockComment = isOpener(st, token.CommentOpen)
		}
		if blockComment {
			f.ReplaceAt(i, token.New(token.CommentBody, " "+trimmed+" "))
		} else {
			f.ReplaceAt(i, token.New(token.CommentBody, " "+trimmed))
		}
	})
}

// Todos normalizes a TODO/MARK/FIXME comment body so the tag is followed
// by exactly ": ". If no whitespace or `:` follows the tag, the body is
// left unchanged (it may be an identifier, e.g. `TODOItem`).
func Todos(f *state.Formatter) {
	f.ForEachToken(func(t token.Token) bool { return t.Kind == token.CommentBody }, func(i int, t token.Token) {
		f.ReplaceAt(i, token.New(token.CommentBody, normalizeTodoBody(t.Payload)))
	})
}

var todoTags = []string{"TODO", "MARK", "FIXME"}

func normalizeTodoBody(body string) string {
	leading := 0
	for leading < len(body) && (body[leading] == ' ' || body[leading] == '\t') {
		leading++
	}
	rest := body[leading:]
	for _, tag := range todoTags {
		if !strings.HasPrefix(rest, tag) {
			continue
		}
		after := rest[len(tag):]
		if after == "" {
			return body
		}
		switch {
		case after[0] == ':':
			tail := strings.TrimLeft(after[1:], " \t")
			return body[:leading] + tag + ": " + tail
		case after[0] == ' ' || after[0] == '\t':
			tail := strings.TrimLeft(after, " \t")
			if strings.HasPrefix(tail, ":") {
				tail = strings.TrimLeft(tail[1:], " \t")
			}
			return body[:leading] + tag + ": " + tail
		default:
			return body
		}
	}
	return body
}

// ConsecutiveSpaces replaces any whitespace token of width >= 2 with a
// single space, except inside a `/*` or `//` comment scope.
func ConsecutiveSpaces(f *state.Formatter) {
	f.ForEachToken(func(t token.Token) bool { return t.IsWhitespace() }, func(i int, t token.Token) {
		if len(t.Payload) < 2 {
			return
		}
		if scope, ok := f.ScopeAt(i); ok {
			st, _ := f.TokenAt(scope)
			if isOpener(st, token.CommentOpen) || isOpener(st, token.LineComment) {
				return
			}
		}
		f.ReplaceAt(i, space())
	})
}
