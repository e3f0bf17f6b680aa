package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidIdentifierPayload(t *testing.T) {
	valid := []string{"x", "_x", "camelCase", "X9", "x$0", "self", "héllo"}
	for _, s := range valid {
		assert.True(t, ValidIdentifierPayload(s), "expected %q to be valid", s)
	}

	invalid := []string{"", "9x", " x", "x y", "-x"}
	for _, s := range invalid {
		assert.False(t, ValidIdentifierPayload(s), "expected %q to be invalid", s)
	}
}
