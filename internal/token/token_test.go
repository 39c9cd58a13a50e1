package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	users := []string{"alice", "bob", "svc-account", ""}
	ids := []int64{0, 1, 42, 1000000, 1<<62 - 1}

	for _, user := range users {
		for _, id := range ids {
			tok := Encode(user, id)

			got, err := Decode(user, tok)
			require.NoError(t, err, "user=%q id=%d token=%q", user, id, tok)
			assert.Equal(t, id, got)
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	assert.Equal(t, Encode("alice", 7), Encode("alice", 7))
}

func TestEncodeAlphanumeric(t *testing.T) {
	tok := Encode("alice", 123)
	for _, r := range tok {
		ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		assert.True(t, ok, "unexpected character %q in token %q", r, tok)
	}
}

func TestCrossUserTokens(t *testing.T) {
	for _, id := range []int64{0, 1, 1000000} {
		tokAlice := Encode("alice", id)
		tokBob := Encode("bob", id)
		assert.NotEqual(t, tokAlice, tokBob, "id=%d", id)

		// A token minted for one user must never silently decode to the
		// same id under another user's key.
		got, err := Decode("bob", tokAlice)
		if err == nil {
			assert.NotEqual(t, id, got, "id=%d leaked across users", id)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		tok  string
	}{
		{"empty", ""},
		{"not base32", "!!!not-a-token!!!"},
		{"too short", "abc"},
		{"wrong length", strings.Repeat("a", 40)},
		{"tampered", tamper(Encode("alice", 99))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode("alice", tt.tok)
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

// tamper flips one character of a valid token.
func tamper(tok string) string {
	b := []byte(tok)
	if b[0] == 'a' {
		b[0] = 'b'
	} else {
		b[0] = 'a'
	}
	return string(b)
}
