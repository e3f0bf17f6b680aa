// Package options defines the immutable configuration record every rule
// in package rules consumes. Options are loaded from YAML by package
// config; the core here only defines the record and its defaults.
package options

// LineEnding is the canonical line-break sequence a rule must rewrite
// every Linebreak token's payload to.
type LineEnding string

const (
	LF   LineEnding = "\n"
	CRLF LineEnding = "\r\n"
	CR   LineEnding = "\r"
)

// Options is the single enumerated configuration record consumed by the
// rule pipeline. Unknown fields in a serialized form are an error at
// config-load time (package config), not here: the core only ever sees a
// fully validated record.
type Options struct {
	// Indent is the string used per indent level: spaces or a tab.
	Indent string `yaml:"indent"`

	// Linebreak is the canonical line-break string every Linebreak token
	// is rewritten to.
	Linebreak LineEnding `yaml:"linebreak"`

	// SpaceAroundRangeOperators adds/removes spaces around `...`/`..<`.
	SpaceAroundRangeOperators bool `yaml:"space_around_range_operators"`

	// UseVoid prefers `Void` over `()` in return positions.
	UseVoid bool `yaml:"use_void"`

	// TrailingCommas enforces or strips a trailing comma in multi-line
	// array literals.
	TrailingCommas bool `yaml:"trailing_commas"`

	// IndentComments controls whether comment bodies participate in
	// indent normalization.
	IndentComments bool `yaml:"indent_comments"`

	// TruncateBlankLines gives blank lines empty indent instead of full
	// indent.
	TruncateBlankLines bool `yaml:"truncate_blank_lines"`

	// AllmanBraces puts the open brace on the next line instead of the
	// same line.
	AllmanBraces bool `yaml:"allman_braces"`

	// RemoveBlankLines drops blank lines at the end of a scope.
	RemoveBlankLines bool `yaml:"remove_blank_lines"`

	// InsertBlankLines inserts a blank line between type-body scopes.
	InsertBlankLines bool `yaml:"insert_blank_lines"`

	// AllowInlineSemicolons keeps `;` separating statements on one line.
	AllowInlineSemicolons bool `yaml:"allow_inline_semicolons"`

	// StripHeader removes a leading `//` header block.
	StripHeader bool `yaml:"strip_header"`

	// Fragment marks the input as a code fragment rather than a complete
	// file; whole-file rules (final newline, header strip, trailing-blank
	// collapse) are suppressed.
	Fragment bool `yaml:"fragment"`
}

// Default returns the style used when no config file is present: four
// spaces, LF line endings, K&R braces, everything else in its
// least-surprising state.
func Default() Options {
	return Options{
		Indent:                    "    ",
		Linebreak:                 LF,
		SpaceAroundRangeOperators: false,
		UseVoid:                   true,
		TrailingCommas:            true,
		IndentComments:            true,
		TruncateBlankLines:        true,
		AllmanBraces:              false,
		RemoveBlankLines:          true,
		InsertBlankLines:          true,
		AllowInlineSemicolons:     false,
		StripHeader:               false,
		Fragment:                  false,
	}
}
