// Package fmttest holds test helpers that run the full pipeline and check
// its idempotence and the lexer round trip, grounded on the teacher's
// sqltest helpers (a package dedicated to fixtures and assertions kept
// apart from any one package's _test.go files).
package fmttest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vippsas/codefmt/lex"
	"github.com/vippsas/codefmt/options"
	"github.com/vippsas/codefmt/rules"
	"github.com/vippsas/codefmt/state"
	"github.com/vippsas/codefmt/token"
)

// Format lexes src, runs the full rule pipeline once with opts, and
// returns the resulting text.
func Format(src string, opts options.Options) string {
	f := state.New(lex.Tokenize(src), opts)
	rules.Run(f)
	return token.Untokenize(f.Tokens())
}

// RequireIdempotent asserts that formatting out a second time reproduces
// out exactly, the fixed point spec.md §8 invariant 2 requires of the
// pipeline as a whole.
func RequireIdempotent(t *testing.T, opts options.Options, out string) {
	t.Helper()
	twice := Format(out, opts)
	require.Equal(t, out, twice, "formatting is not idempotent")
}

// RequireRoundTrip asserts that untokenizing src's raw token stream,
// with no rules applied, reproduces src byte-for-byte (spec.md §8
// invariant 3).
func RequireRoundTrip(t *testing.T, src string) {
	t.Helper()
	require.Equal(t, src, token.Untokenize(lex.Tokenize(src)))
}
