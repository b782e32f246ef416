// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCreatorMismatch = errors.New("creator fingerprint does not match public key")
	ErrMissingKey      = errors.New("creator public key is required")
)

// GenerateElectionCode creates a short random code identifying an election
func GenerateElectionCode() (string, error) {
	b := make([]byte, 8)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate election code: %w", err)
	}
	return base62Encode(b), nil
}

// Fingerprint returns the hex SHA-256 of a creator's public key.
// Surrounding whitespace is ignored so armored keys read from files match.
func Fingerprint(pubKey string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(pubKey)))
	return hex.EncodeToString(sum[:])
}

// VerifyCreator checks that fingerprint was derived from pubKey
func VerifyCreator(fingerprint, pubKey string) error {
	if strings.TrimSpace(pubKey) == "" {
		return ErrMissingKey
	}
	expected := Fingerprint(pubKey)
	if !hmac.Equal([]byte(strings.ToLower(fingerprint)), []byte(expected)) {
		return ErrCreatorMismatch
	}
	return nil
}

// HashVoterID creates a one-way hash of a voter identity.
// The registry only ever stores these hashes.
func HashVoterID(voterID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(voterID))
	sum := h.Sum(nil)
	// 16 bytes is plenty for membership tests
	return hex.EncodeToString(sum[:16])
}

// base62Encode converts bytes to base62 (0-9, a-z, A-Z)
// This creates URL-friendly codes without special characters
func base62Encode(data []byte) string {
	const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// Convert bytes to a big integer
	var num uint64
	for i := 0; i < len(data) && i < 8; i++ {
		num = num<<8 | uint64(data[i])
	}

	if num == 0 {
		return "0"
	}

	result := make([]byte, 0, 11) // max length for uint64
	for num > 0 {
		result = append(result, base62Chars[num%62])
		num /= 62
	}

	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return string(result)
}
