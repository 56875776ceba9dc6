package toon

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// ============================================================
// Canonical Hashing
// ============================================================

// Domain-separation key for document hashes. Hashes from this package
// never collide with keyed BLAKE3 output from other systems.
var documentHashKey = [32]byte{
	't', 'o', 'o', 'n', '.', 'd', 'o', 'c',
	'u', 'm', 'e', 'n', 't', '.', 'h', 'a',
	's', 'h', '.', 'v', '1', 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
}

// CanonicalHash returns a stable 64-hex-character digest of a value.
// The digest is the keyed BLAKE3 hash of the default-option encoding,
// so two values hash equal exactly when they are Equal.
func CanonicalHash(v *Value) (string, error) {
	text, err := Encode(v)
	if err != nil {
		return "", err
	}
	h, err := blake3.NewKeyed(documentHashKey[:])
	if err != nil {
		return "", err
	}
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Fingerprint returns a short human-readable form of the canonical
// hash, suitable for log lines and cache keys.
func Fingerprint(v *Value) (string, error) {
	sum, err := CanonicalHash(v)
	if err != nil {
		return "", err
	}
	return "toon-" + sum[:12], nil
}
