package service

import (
	"crypto/rand"
	"fmt"
)

// codeAlphabet excludes the visually ambiguous 0/O/1/I. 32 symbols, so each
// character maps cleanly onto 5 random bits.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 8

// NewConfirmationCode generates the guest-facing 8-character booking code.
// Codes are compared case-insensitively on lookup.
func NewConfirmationCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error generating confirmation code: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
