// Package indent implements the indenter: the largest single formatting
// rule, a left-to-right scope/indent/linewrap state machine. It is kept
// in its own package (rather than folded into package rules) because its
// five parallel stacks are a self-contained state machine with its own
// vocabulary, mirroring how the teacher keeps the T-SQL/PostgreSQL
// dialect scanners each in their own package beside the common one.
package indent

import (
	"github.com/vippsas/codefmt/state"
	"github.com/vippsas/codefmt/token"
)

// machine holds the five parallel stacks from spec.md §4.4, keyed by
// scope depth, plus the running counters the transitions consult.
type machine struct {
	f *state.Formatter

	scopeIndexStack       []int    // token index of each active opener
	indentStack           []string // indent string in force at each depth
	indentCounts          []int    // indent delta count at each depth
	linewrapStack         []bool   // whether this depth currently carries a continuation indent
	scopeStartLineIndexes []int    // line number each scope opened on

	lineIndex                       int
	lastNonWhitespaceOrLinebreakIndex int
	lastNonWhitespaceIndex           int
}

// Apply runs the indenter over f's buffer, then removes every zero-width
// whitespace token left behind by insert/replace operations.
func Apply(f *state.Formatter) {
	m := &machine{f: f, lastNonWhitespaceOrLinebreakIndex: -1, lastNonWhitespaceIndex: -1}
	m.run()
	m.dropZeroWidthWhitespace()
}

func (m *machine) depth() int { return len(m.scopeIndexStack) }

func (m *machine) top() (indentStr string, ok bool) {
	if m.depth() == 0 {
		return "", false
	}
	return m.indentStack[m.depth()-1], true
}

func (m *machine) run() {
	i := 0
	for i < m.f.Len() {
		t, _ := m.f.TokenAt(i)
		switch {
		case t.IsStartOfScope():
			m.onOpener(i, t)
			i++
		case t.IsEndOfScope():
			i = m.onCloser(i, t)
		case t.IsLinebreak():
			i = m.onLinebreak(i)
		case t.IsError():
			m.onError(i, t)
			i++
		default:
			i++
		}
		if nt, ok := m.f.TokenAt(i - 1); ok && !nt.IsWhitespace() {
			m.lastNonWhitespaceIndex = i - 1
			if !nt.IsLinebreak() {
				m.lastNonWhitespaceOrLinebreakIndex = i - 1
			}
		}
	}
}

// onOpener pushes a new stack frame for the opener at i.
func (m *machine) onOpener(i int, t token.Token) {
	count := 1
	if m.depth() > 0 && m.scopeStartLineIndexes[m.depth()-1] == m.lineIndex {
		count = m.indentCounts[m.depth()-1] + 1
	}

	if t.Payload == token.BraceOpen && !isClosureBrace(m.f, i) && m.depth() > 0 && m.linewrapStack[m.depth()-1] {
		// The brace terminates a multi-line expression continuation:
		// pop any active linewrap at the current depth before deriving
		// this frame's indent from it.
		m.linewrapStack[m.depth()-1] = false
		m.indentStack[m.depth()-1] = trimOneIndent(m.indentStack[m.depth()-1], m.f.Options.Indent)
	}
	parentIndent, _ := m.top()

	indentStr := m.deriveOpenerIndent(i, t, parentIndent)

	m.scopeIndexStack = append(m.scopeIndexStack, i)
	m.indentStack = append(m.indentStack, indentStr)
	m.indentCounts = append(m.indentCounts, count)
	m.linewrapStack = append(m.linewrapStack, false)
	m.scopeStartLineIndexes = append(m.scopeStartLineIndexes, m.lineIndex)
}

func (m *machine) deriveOpenerIndent(i int, t token.Token, parentIndent string) string {
	switch t.Payload {
	case token.CommentOpen:
		return parentIndent + " "
	case token.ParenOpen, token.BracketOpen:
		if col, ok := alignmentIndent(m.f, i); ok {
			return col
		}
		return parentIndent + m.f.Options.Indent
	default:
		return parentIndent + m.f.Options.Indent
	}
}

// alignmentIndent computes the exact column-width indent aligning with
// the token right after an opener, when more tokens follow the opener on
// its own line (spec.md §4.4 "the exact column-width indent aligning with
// the token after the opener").
func alignmentIndent(f *state.Formatter, openIdx int) (string, bool) {
	next := openIdx + 1
	nt, ok := f.TokenAt(next)
	if !ok || nt.IsLinebreak() {
		return "", false
	}
	lineStart := f.StartOfLine(openIdx)
	width := 0
	for j := lineStart; j <= openIdx; j++ {
		t, _ := f.TokenAt(j)
		width += len([]rune(t.Payload))
	}
	out := make([]rune, width)
	for k := range out {
		out[k] = ' '
	}
	return string(out), true
}

// onCloser pops the stack frame matching the top opener and fixes up the
// closer's own line indentation, returning the index to resume scanning
// from.
func (m *machine) onCloser(i int, t token.Token) int {
	if m.depth() == 0 {
		return i + 1
	}

	outerIndent := ""
	if m.depth() > 1 {
		outerIndent = m.indentStack[m.depth()-2]
	}
	poppedCount := m.indentCounts[m.depth()-1]

	m.scopeIndexStack = m.scopeIndexStack[:m.depth()-1]
	m.indentStack = m.indentStack[:len(m.indentStack)-1]
	m.indentCounts = m.indentCounts[:len(m.indentCounts)-1]
	m.linewrapStack = m.linewrapStack[:len(m.linewrapStack)-1]
	m.scopeStartLineIndexes = m.scopeStartLineIndexes[:len(m.scopeStartLineIndexes)-1]

	if onOwnLine(m.f, i) {
		lineStart := m.f.StartOfLine(i)
		if wt, ok := m.f.TokenAt(lineStart); ok && wt.IsWhitespace() {
			m.f.ReplaceAt(lineStart, token.New(token.Whitespace, outerIndent))
		} else if outerIndent != "" {
			m.f.InsertAt(lineStart, token.New(token.Whitespace, outerIndent))
			i++
		}
	}
	if poppedCount > 1 && m.depth() > 0 {
		m.indentCounts[m.depth()-1] = max(m.indentCounts[m.depth()-1]-1, 1)
	}

	if t.IsScopePseudoCase() {
		m.pushCaseScope(i)
	}

	return i + 1
}

// popLineComment pops the synthetic scope opened for a `//` line comment.
// Unlike every other opener, a line comment has no matching closer token
// in the stream -- scanLineComment never emits one -- so onLinebreak pops
// it directly at the linebreak ending the comment's line, the only place
// that boundary is visible.
func (m *machine) popLineComment() {
	poppedCount := m.indentCounts[m.depth()-1]

	m.scopeIndexStack = m.scopeIndexStack[:m.depth()-1]
	m.indentStack = m.indentStack[:len(m.indentStack)-1]
	m.indentCounts = m.indentCounts[:len(m.indentCounts)-1]
	m.linewrapStack = m.linewrapStack[:len(m.linewrapStack)-1]
	m.scopeStartLineIndexes = m.scopeStartLineIndexes[:len(m.scopeStartLineIndexes)-1]

	if poppedCount > 1 && m.depth() > 0 {
		m.indentCounts[m.depth()-1] = max(m.indentCounts[m.depth()-1]-1, 1)
	}
}

// pushCaseScope pushes a synthetic scope for a case/default pseudo-scope:
// indent is parent + one indent level when the case ends its line, or
// parent + 5 spaces (aligning past "case ") when code follows on the same
// line.
func (m *machine) pushCaseScope(i int) {
	parentIndent, _ := m.top()
	next := caseBodyStart(m.f, i)
	nt, ok := m.f.TokenAt(next)
	var indentStr string
	if !ok || nt.IsLinebreak() {
		indentStr = parentIndent + m.f.Options.Indent
	} else {
		indentStr = parentIndent + "     "
	}
	m.scopeIndexStack = append(m.scopeIndexStack, i)
	m.indentStack = append(m.indentStack, indentStr)
	m.indentCounts = append(m.indentCounts, 1)
	m.linewrapStack = append(m.linewrapStack, false)
	m.scopeStartLineIndexes = append(m.scopeStartLineIndexes, m.lineIndex)
}

// caseBodyStart returns the index right after the `:` that terminates the
// case/default pattern starting at i (the case/default token itself), so
// pushCaseScope can tell whether body code follows on the same line. It
// skips over nested scopes -- a parenthesized binding or bracketed tuple
// pattern -- so a `:` inside e.g. `case .foo(let x):` isn't mistaken for
// the terminator, and stops at the first unmatched linebreak.
func caseBodyStart(f *state.Formatter, i int) int {
	depth := 0
	for j := i + 1; j < f.Len(); j++ {
		t, _ := f.TokenAt(j)
		switch {
		case t.IsLinebreak():
			return j
		case t.IsStartOfScope():
			depth++
		case t.IsEndOfScope() && !t.IsScopePseudoCase():
			depth--
		case depth == 0 && t.Kind == token.Symbol && t.Payload == ":":
			return j + 1
		}
	}
	return f.Len()
}

func onOwnLine(f *state.Formatter, i int) bool {
	start := f.StartOfLine(i)
	for j := start; j < i; j++ {
		t, _ := f.TokenAt(j)
		if !t.IsWhitespace() {
			return false
		}
	}
	return true
}

// onLinebreak computes whether the new line is a continuation, adjusts
// the linewrap stack, and rewrites the leading whitespace of the new
// line to the active indent. Returns the index to resume scanning from.
func (m *machine) onLinebreak(i int) int {
	m.lineIndex++

	if m.depth() > 0 {
		if ot, ok := m.f.TokenAt(m.scopeIndexStack[m.depth()-1]); ok && ot.Payload == token.LineComment {
			m.popLineComment()
		}
	}

	wrapped := m.isLinewrapped(i)
	if m.depth() > 0 {
		atTop := m.depth() - 1
		if wrapped && !m.linewrapStack[atTop] {
			if !m.suppressWrapIndent(i) {
				indentStr, _ := m.top()
				m.linewrapStack[atTop] = true
				m.indentStack[atTop] = indentStr + m.f.Options.Indent
			}
		} else if !wrapped && m.linewrapStack[atTop] {
			m.linewrapStack[atTop] = false
			m.indentStack[atTop] = trimOneIndent(m.indentStack[atTop], m.f.Options.Indent)
		}
	}

	active, _ := m.top()
	next := i + 1
	nt, ok := m.f.TokenAt(next)
	if !ok {
		return i + 1
	}

	if sig := m.f.IndexOfNextNonWhitespace(i); sig >= 0 {
		if st, ok := m.f.TokenAt(sig); ok && (st.Payload == "#else" || st.Payload == "#elseif") {
			if m.depth() > 1 {
				active = m.indentStack[m.depth()-2]
			} else {
				active = ""
			}
		}
	}

	switch {
	case nt.IsLinebreak():
		if m.f.Options.TruncateBlankLines {
			return m.setLineIndent(i, next, "")
		}
		return m.setLineIndent(i, next, active)
	case isOpenerPayload(nt, token.LineComment, token.CommentOpen):
		if !m.f.Options.IndentComments {
			return i + 1
		}
		return m.setLineIndent(i, next, active)
	default:
		return m.setLineIndent(i, next, active)
	}
}

// setLineIndent inserts or replaces the whitespace token beginning the
// line after linebreak index i with indentStr, returning the index to
// resume scanning from.
func (m *machine) setLineIndent(i, next int, indentStr string) int {
	nt, _ := m.f.TokenAt(next)
	if nt.IsWhitespace() {
		m.f.ReplaceAt(next, token.New(token.Whitespace, indentStr))
		return next + 1
	}
	if indentStr == "" {
		return i + 1
	}
	m.f.InsertAt(next, token.New(token.Whitespace, indentStr))
	return next + 1
}

func trimOneIndent(s, unit string) string {
	if len(unit) > 0 && len(s) >= len(unit) && s[len(s)-len(unit):] == unit {
		return s[:len(s)-len(unit)]
	}
	return s
}

// suppressWrapIndent implements the exception: do not add the wrap indent
// if the next line begins with `.` and the previous line ended with a
// dangling closer.
func (m *machine) suppressWrapIndent(lbIdx int) bool {
	next := m.f.IndexOfNextNonWhitespace(lbIdx)
	nt, ok := m.f.TokenAt(next)
	if !ok || !isSymbolDot(nt) {
		return false
	}
	prev := m.f.IndexOfPreviousNonWhitespaceOrCommentOrLinebreak(lbIdx)
	pt, ok := m.f.TokenAt(prev)
	return ok && closesAnyScope(pt) && onOwnLine(m.f, prev)
}

func isSymbolDot(t token.Token) bool { return t.Kind == token.Symbol && t.Payload == "." }
func closesAnyScope(t token.Token) bool {
	return t.Kind == token.EndOfScope && !t.IsScopePseudoCase()
}

// onError implements the over-terminated error handling: a lone closing
// error token at fragment level adopts the preceding line-start
// whitespace as the fragment's base indent.
func (m *machine) onError(i int, t token.Token) {
	if !m.f.Options.Fragment {
		return
	}
	switch t.Payload {
	case token.BraceClose, token.BracketClose, token.ParenClose, token.AngleClose:
	default:
		return
	}
	prev := i - 1
	pt, ok := m.f.TokenAt(prev)
	if ok && pt.IsWhitespace() && onOwnLine(m.f, prev) {
		if m.depth() > 0 {
			m.indentStack[m.depth()-1] = pt.Payload
		}
	}
}

// isLinewrapped decides whether the line break at i does not start a new
// statement: the previous significant token does not end a statement AND
// the next significant token does not start one.
func (m *machine) isLinewrapped(i int) bool {
	prev := m.f.IndexOfPreviousNonWhitespaceOrCommentOrLinebreak(i)
	next := m.f.IndexOfNextNonWhitespaceOrCommentOrLinebreak(i)
	pt, pok := m.f.TokenAt(prev)
	nt, nok := m.f.TokenAt(next)
	if !pok || !nok {
		return false
	}
	return !endsStatement(m.f, prev, pt) && !startsStatement(m.f, next, nt)
}

var nonTerminatingKeywords = map[string]bool{
	"let": true, "func": true, "var": true, "if": true, "as": true,
	"import": true, "try": true, "guard": true, "case": true, "for": true,
	"init": true, "switch": true, "throw": true, "where": true,
	"subscript": true, "is": true, "while": true, "associatedtype": true,
	"inout": true,
}

func endsStatement(f *state.Formatter, idx int, t token.Token) bool {
	if t.Kind == token.Keyword {
		if t.Payload == "return" {
			next := f.IndexOfNextNonWhitespaceOrCommentOrLinebreak(idx)
			nt, ok := f.TokenAt(next)
			return ok && (nt.Kind == token.Keyword || nt.IsScopePseudoCase())
		}
		if nonTerminatingKeywords[t.Payload] {
			return false
		}
	}
	if t.Kind == token.Symbol {
		switch t.Payload {
		case ".", ":":
			return false
		case ",":
			if scope, ok := f.ScopeAt(idx); ok {
				st, _ := f.TokenAt(scope)
				switch {
				case isOpenerPayload(st, token.AngleOpen, token.BracketOpen, token.ParenOpen):
					return false
				case st.IsScopePseudoCase():
					return false
				}
			}
			return true
		default:
			if isInfixOperatorSymbol(t) {
				return false
			}
		}
	}
	if closesAnyScope(t) {
		next := f.IndexOfNextNonWhitespaceOrCommentOrLinebreak(idx)
		if nt, ok := f.TokenAt(next); ok && isSymbolDot(nt) {
			return false
		}
	}
	return true
}

func startsStatement(f *state.Formatter, idx int, t token.Token) bool {
	if t.Kind == token.Keyword && isOneOf(t.Payload, "as", "is", "where", "rethrows", "throws") {
		return false
	}
	if t.Kind == token.Symbol {
		switch t.Payload {
		case ".":
			scope, ok := f.ScopeAt(idx)
			if !ok {
				return false
			}
			st, _ := f.TokenAt(scope)
			if !isOpenerPayload(st, token.AngleOpen, token.ParenOpen, token.BracketOpen) && !st.IsScopePseudoCase() {
				return false
			}
			prev := f.IndexOfPreviousNonWhitespaceOrCommentOrLinebreak(idx)
			pt, ok := f.TokenAt(prev)
			if !ok {
				return false
			}
			return prev == scope || isSymbolPayload(pt, ",") || isSymbolPayload(pt, ":")
		case ",", ":":
			return false
		default:
			if isInfixOperatorSymbol(t) {
				return false
			}
		}
	}
	return true
}

func isOpenerPayload(t token.Token, payloads ...string) bool {
	if t.Kind != token.StartOfScope {
		return false
	}
	for _, p := range payloads {
		if t.Payload == p {
			return true
		}
	}
	return false
}

func isSymbolPayload(t token.Token, payload string) bool {
	return t.Kind == token.Symbol && t.Payload == payload
}

func isOneOf(s string, opts ...string) bool {
	for _, o := range opts {
		if s == o {
			return true
		}
	}
	return false
}

// isInfixOperatorSymbol reports whether t is an operator symbol that acts
// as an infix continuation marker rather than punctuation: anything that
// isn't one of the punctuation symbols handled explicitly elsewhere, and
// isn't a pure postfix ?/! run.
func isInfixOperatorSymbol(t token.Token) bool {
	if t.Kind != token.Symbol {
		return false
	}
	switch t.Payload {
	case ".", ":", ",", ";", "?", "!":
		return false
	}
	for _, r := range t.Payload {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return false
		}
	}
	return t.Payload != ""
}

// isClosureBrace decides whether the `{` at i opens a closure (true) or a
// declaration/control-flow body (false: class/struct/func/if/for/... ).
// The introducing keyword is almost never the token immediately before the
// brace -- a condition, parameter list, type name, or generic clause sits
// between them (`if b {`, `func foo() {`, `class Foo<T: Comparable> {`) --
// so this walks backward across the header, skipping whole matched
// scopes (parameter lists, generic clauses, subscripts) at depth 0, and
// stops at the first unmatched scope boundary or linebreak.
func isClosureBrace(f *state.Formatter, i int) bool {
	prev := f.IndexOfPreviousNonWhitespaceOrCommentOrLinebreak(i)
	if prev < 0 {
		return true
	}
	t, _ := f.TokenAt(prev)
	if t.Kind == token.EndOfScope && t.Payload == token.BraceClose {
		return true
	}
	depth := 0
	for j := prev; j >= 0; j-- {
		jt, _ := f.TokenAt(j)
		switch {
		case jt.IsLinebreak():
			return true
		case jt.IsEndOfScope():
			depth++
		case jt.IsStartOfScope():
			if depth == 0 {
				return true
			}
			depth--
		case jt.Kind == token.Keyword && depth == 0 && declarationKeywordSet[jt.Payload]:
			return false
		}
	}
	return true
}

var declarationKeywordSet = map[string]bool{
	"class": true, "struct": true, "enum": true, "protocol": true,
	"extension": true, "let": true, "var": true, "func": true, "init": true,
	"subscript": true, "if": true, "switch": true, "guard": true,
	"else": true, "for": true, "while": true, "repeat": true, "do": true,
	"catch": true,
}

// dropZeroWidthWhitespace removes every Whitespace("") token the indenter
// left behind when truncating blank lines.
func (m *machine) dropZeroWidthWhitespace() {
	out := m.f.Tokens()[:0:0]
	for i := 0; i < m.f.Len(); i++ {
		t, _ := m.f.TokenAt(i)
		if t.IsWhitespace() && t.Payload == "" {
			continue
		}
		out = append(out, t)
	}
	rebuild(m.f, out)
}

func rebuild(f *state.Formatter, toks []token.Token) {
	for f.Len() > 0 {
		f.RemoveLast()
	}
	for _, t := range toks {
		f.InsertAt(f.Len(), t)
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
