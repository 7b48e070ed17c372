package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns the content identifier a document is cached under:
// the hex-encoded SHA-256 of its bytes.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
