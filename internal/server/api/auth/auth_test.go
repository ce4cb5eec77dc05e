package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/keyswap/internal/server/api/auth"
)

func TestGenerateKey(t *testing.T) {
	key, err := auth.GenerateKey()
	assert.NoError(t, err)
	assert.Len(t, key, auth.KeyLength)
	assert.Regexp(t, "^[2-9A-HJ-NP-Za-km-z]{16}$", key)

	other, err := auth.GenerateKey()
	assert.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestDeriveKey(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     []byte
		wantErr  error
	}{
		{
			name:     "plain password",
			password: "password123",
			want:     []byte{0x93, 0xd1, 0xe2, 0x11, 0x8f, 0x64, 0x68, 0xb8, 0x5a, 0xd1, 0x62, 0x0b, 0x37, 0xa3, 0xdf, 0xdd, 0xe6, 0x13, 0x35, 0x72, 0xad, 0x31, 0xee, 0x2b, 0x31, 0xe7, 0x66, 0x41, 0xfa, 0x34, 0x55, 0x87},
		},
		{
			name:     "single char",
			password: "1",
			want:     []byte{0x7f, 0x56, 0xcd, 0x58, 0xfa, 0x6f, 0x5e, 0xd7, 0x1a, 0x59, 0x3d, 0x49, 0x40, 0xf0, 0x09, 0xcc, 0xe7, 0x8a, 0xff, 0xe4, 0x52, 0x1e, 0x38, 0xdf, 0x9b, 0xb8, 0x2a, 0xfa, 0xef, 0xd5, 0xcf, 0x98},
		},
		{
			name:     "mixed scripts",
			password: "layout-swap ß ю ש!",
			want:     []byte{0xe2, 0xb4, 0x02, 0x67, 0x6a, 0x2c, 0x57, 0xbc, 0x88, 0x72, 0x31, 0xa7, 0xdf, 0xdb, 0xc5, 0x1c, 0x93, 0xed, 0x70, 0xb5, 0x46, 0xfb, 0x2e, 0xaa, 0xc3, 0x90, 0x7d, 0x7e, 0x29, 0x6f, 0x8c, 0x00},
		},
		{
			name:     "surrounding whitespace is trimmed",
			password: "  password123\n",
			want:     []byte{0x93, 0xd1, 0xe2, 0x11, 0x8f, 0x64, 0x68, 0xb8, 0x5a, 0xd1, 0x62, 0x0b, 0x37, 0xa3, 0xdf, 0xdd, 0xe6, 0x13, 0x35, 0x72, 0xad, 0x31, 0xee, 0x2b, 0x31, 0xe7, 0x66, 0x41, 0xfa, 0x34, 0x55, 0x87},
		},
		{
			name:    "empty password",
			wantErr: auth.ErrEmptyPassword,
		},
		{
			name:     "whitespace only",
			password: " \t ",
			wantErr:  auth.ErrEmptyPassword,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := auth.DeriveKey(tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveKeyNormalizesPassword(t *testing.T) {
	composed, err := auth.DeriveKey("ключ\u0439")
	require.NoError(t, err)
	decomposed, err := auth.DeriveKey("ключ\u0438\u0306")
	require.NoError(t, err)
	assert.Equal(t, composed, decomposed)
}

func TestGenerateKeyAvoidsLookAlikes(t *testing.T) {
	for range 50 {
		key, err := auth.GenerateKey()
		require.NoError(t, err)
		assert.NotContains(t, key, "0")
		assert.NotContains(t, key, "O")
		assert.NotContains(t, key, "1")
		assert.NotContains(t, key, "I")
		assert.NotContains(t, key, "l")
	}
}

func TestDeriveSessionKey(t *testing.T) {
	key := make([]byte, 32)
	serverNonce := make([]byte, 32)
	clientNonce := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
		serverNonce[i] = byte(i + 10)
		clientNonce[i] = byte(i + 20)
	}

	first := auth.DeriveSessionKey(key, serverNonce, clientNonce)
	assert.Len(t, first, 32)
	assert.Equal(t, first, auth.DeriveSessionKey(key, serverNonce, clientNonce))

	clientNonce[0] = 99
	assert.NotEqual(t, first, auth.DeriveSessionKey(key, serverNonce, clientNonce))

	// nonces are not interchangeable
	assert.NotEqual(t, auth.DeriveSessionKey(key, serverNonce, clientNonce), auth.DeriveSessionKey(key, clientNonce, serverNonce))
	before := auth.DeriveSessionKey(key, serverNonce, clientNonce)
	key[0] = 0xff
	assert.NotEqual(t, before, auth.DeriveSessionKey(key, serverNonce, clientNonce))
}
