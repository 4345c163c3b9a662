package normalize

import (
	"encoding/hex"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/blake2b"
)

// Masker rewrites a secret string value on encode.
type Masker interface {
	// Mask applies masking to the value.
	Mask(value string) string
}

// MaskerFunc adapts a function to Masker.
type MaskerFunc func(value string) string

// Mask calls f.
func (f MaskerFunc) Mask(value string) string {
	return f(value)
}

// fixedMasker replaces every value with the same string.
type fixedMasker struct {
	mask string
}

// FixedMasker returns a masker that replaces the whole value with mask.
func FixedMasker(mask string) Masker {
	return &fixedMasker{mask: mask}
}

func (m *fixedMasker) Mask(string) string {
	return m.mask
}

// tokenMasker keeps the tail of a token: eyJhbGciOiJIUzI1 -> ************UzI1
type tokenMasker struct {
	keep int
}

// TokenMasker returns a masker for bearer and identity tokens. It keeps the
// last keep characters so tokens can be told apart in logs. Values no longer
// than 2*keep are masked entirely.
func TokenMasker(keep int) Masker {
	if keep < 0 {
		keep = 0
	}
	return &tokenMasker{keep: keep}
}

func (m *tokenMasker) Mask(value string) string {
	if len(value) <= 2*m.keep {
		return strings.Repeat("*", len(value))
	}
	return strings.Repeat("*", len(value)-m.keep) + value[len(value)-m.keep:]
}

// emailMasker masks email format: alice@example.com -> a***@example.com
type emailMasker struct{}

// EmailMasker returns a masker for email addresses.
// Preserves first character of local part and full domain.
func EmailMasker() Masker {
	return &emailMasker{}
}

func (m *emailMasker) Mask(value string) string {
	atIdx := strings.LastIndex(value, "@")
	if atIdx < 1 {
		// No @ or @ at start, mask everything
		return strings.Repeat("*", len(value))
	}

	local := value[:atIdx]
	domain := value[atIdx:]
	return string(local[0]) + "***" + domain
}

// hashMasker replaces a value with a short keyed digest: hunter2 -> blake2b:<16 hex digits>
type hashMasker struct {
	key []byte
}

// hashDigestLen is the number of digest bytes kept in the masked value.
const hashDigestLen = 8

// HashMasker returns a masker that replaces each value with a truncated
// keyed BLAKE2b digest. Equal secrets mask to equal strings, so encoded
// documents can still be compared without exposing the values. The key may
// be empty and must not exceed 64 bytes.
func HashMasker(key []byte) (Masker, error) {
	if len(key) > blake2b.Size {
		return nil, errors.Newf("hash masker key is %d bytes, at most %d allowed", len(key), blake2b.Size)
	}
	return &hashMasker{key: append([]byte(nil), key...)}, nil
}

func (m *hashMasker) Mask(value string) string {
	h, err := blake2b.New256(m.key)
	if err != nil {
		// key length is checked in HashMasker
		return strings.Repeat("*", len(value))
	}
	h.Write([]byte(value))
	return "blake2b:" + hex.EncodeToString(h.Sum(nil)[:hashDigestLen])
}
