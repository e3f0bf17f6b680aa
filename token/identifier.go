package token

import (
	"unicode/utf8"

	"github.com/smasher164/xid"
)

// ValidIdentifierPayload reports whether s is a syntactically plausible
// identifier payload: non-empty, starting with an XID_Start rune (or one
// of the sigils the lexer allows to begin an identifier-shaped token: `_`,
// `@`, `#`), continuing with XID_Continue runes plus `$`/`@`/`#`.
//
// This is a defensive sanity check, not a grammar: it exists so property
// tests can assert a rule moved tokens around without corrupting an
// identifier's payload, the same role xid plays in scanIdentifier on the
// teacher's scanner.
func ValidIdentifierPayload(s string) bool {
	if s == "" {
		return false
	}
	r, w := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && w <= 1 {
		return false
	}
	if !(xid.Start(r) || r == '_' || r == '@' || r == '#') {
		return false
	}
	for _, r := range s[w:] {
		if !(xid.Continue(r) || r == '$' || r == '@' || r == '#') {
			return false
		}
	}
	return true
}
