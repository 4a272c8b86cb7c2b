package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// backupCodeBytes is the entropy behind each backup code. Four bytes
// hex-encode to exactly eight characters, which is what users are asked
// to type when their authenticator is unavailable.
const backupCodeBytes = 4

// GenerateBackupCode creates a single-use recovery code: 8 uppercase hex
// characters from 4 bytes of randomness.
func GenerateBackupCode() (string, error) {
	buf := make([]byte, backupCodeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate backup code: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}

// FingerprintToken returns a deterministic SHA-256 fingerprint of a token.
// This is used to store hashed tokens in databases, allowing lookup without
// storing the original token value.
//
// The fingerprint is returned as a base64url-encoded string (43 chars).
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
