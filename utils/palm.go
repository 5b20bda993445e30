package utils

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// NewPalmSample stands in for the scanner output: an opaque random token.
func NewPalmSample() string {
	return "palm_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// PalmDigest is the template stored for a sample. Identification compares
// digests for equality only.
func PalmDigest(sample string) string {
	sum := blake2b.Sum256([]byte(strings.TrimSpace(sample)))
	return hex.EncodeToString(sum[:])
}
