package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest is a SHA-256 of the encoded profile.
type Digest [32]byte

func digestOf(parts ...[]byte) Digest {
	h := sha256.New()
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// IsZero reports whether the digest was never set.
func (d Digest) IsZero() bool {
	var z Digest
	return d == z
}
