package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	mrand "math/rand"
)

// GenerateRandomSeed returns 256 bits from the system CSPRNG, base64-encoded.
// The string is stored verbatim so a third party can re-derive the stream.
func GenerateRandomSeed() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(b), nil
}

// NewSeededRand derives a deterministic PRNG stream from an opaque seed
// string. The same seed always yields the same stream.
func NewSeededRand(seed string) *mrand.Rand {
	hashed := sha256.Sum256([]byte(seed))
	return mrand.New(mrand.NewSource(int64(binary.BigEndian.Uint64(hashed[:8]))))
}
