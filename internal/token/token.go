// Package token maps internal per-user sequential job ids to opaque
// alphanumeric tokens and back, without a lookup table. The mapping is keyed
// by the user name, so the same id yields different tokens for different
// users and tokens cannot be enumerated across users. This is an obfuscation
// layer, not an authentication boundary.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base32"
	"encoding/binary"
	"errors"
	"strings"
)

// ErrInvalidToken is returned when a token is malformed or does not decode
// under the given user's key.
var ErrInvalidToken = errors.New("invalid token")

// rawLen is the decoded token length: 8 masked id bytes + 4 tag bytes.
const rawLen = 12

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Encode obfuscates a non-negative job id under the user's key.
func Encode(user string, id int64) string {
	key := userKey(user)
	mask := binary.BigEndian.Uint64(key[:8])

	var raw [rawLen]byte
	binary.BigEndian.PutUint64(raw[:8], uint64(id)^mask)
	copy(raw[8:], tag(key, raw[:8]))

	return strings.ToLower(encoding.EncodeToString(raw[:]))
}

// Decode recovers the job id from a token produced by Encode for the same
// user. Foreign, tampered, or otherwise malformed tokens return
// ErrInvalidToken.
func Decode(user, tok string) (int64, error) {
	raw, err := encoding.DecodeString(strings.ToUpper(tok))
	if err != nil || len(raw) != rawLen {
		return 0, ErrInvalidToken
	}

	key := userKey(user)
	if !hmac.Equal(raw[8:], tag(key, raw[:8])) {
		return 0, ErrInvalidToken
	}

	mask := binary.BigEndian.Uint64(key[:8])
	id := int64(binary.BigEndian.Uint64(raw[:8]) ^ mask)
	if id < 0 {
		return 0, ErrInvalidToken
	}

	return id, nil
}

func userKey(user string) [32]byte {
	return sha256.Sum256([]byte("jobapi-token:" + user))
}

// tag computes a short integrity check over the masked id so that tokens
// minted for one user are rejected when decoded under another.
func tag(key [32]byte, masked []byte) []byte {
	h := sha256.New()
	h.Write(key[16:])
	h.Write(masked)
	return h.Sum(nil)[:4]
}
