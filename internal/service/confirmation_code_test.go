package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfirmationCodeShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 10000; i++ {
		code, err := NewConfirmationCode()
		assert.NoError(t, err)
		assert.Len(t, code, 8)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, r), "unexpected symbol %q in %s", r, code)
		}
		seen[code] = true
	}
	// 10k draws from a 32^8 space should never collide.
	assert.Len(t, seen, 10000)
}

func TestCodeAlphabetOmitsAmbiguousSymbols(t *testing.T) {
	assert.Len(t, codeAlphabet, 32)
	for _, r := range "01OI" {
		assert.NotContains(t, codeAlphabet, string(r))
	}
}
