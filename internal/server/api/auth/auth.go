package auth

import (
	"crypto/hmac"
	"crypto/pbkdf2"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	KeyLength        = 16
	PBKDF2Iterations = 100000
	PBKDF2Salt       = "KEYSWAP-Key-v1"
	sessionLabel     = "KEYSWAP-Session-v1"
)

// keyAlphabet leaves out look-alikes (0 O 1 I l).
const keyAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var ErrEmptyPassword = errors.New("password cannot be empty")

// GenerateKey returns a random KeyLength password drawn uniformly from keyAlphabet.
func GenerateKey() (string, error) {
	limit := 256 - 256%len(keyAlphabet)
	out := make([]byte, 0, KeyLength)
	buf := make([]byte, KeyLength)
	for len(out) < KeyLength {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= limit || len(out) == KeyLength {
				continue
			}
			out = append(out, keyAlphabet[int(b)%len(keyAlphabet)])
		}
	}
	return string(out), nil
}

// DeriveKey stretches a password into a 32 byte key. The password is trimmed
// and NFC normalized first, so "й" typed as one or two code points derives
// the same key.
func DeriveKey(password string) ([]byte, error) {
	password = norm.NFC.String(strings.TrimSpace(password))
	if password == "" {
		return nil, ErrEmptyPassword
	}
	return pbkdf2.Key(sha256.New, password, []byte(PBKDF2Salt), PBKDF2Iterations, 32)
}

// DeriveSessionKey binds the long-term key to both handshake nonces.
func DeriveSessionKey(key, serverNonce, clientNonce []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(sessionLabel))
	mac.Write(serverNonce)
	mac.Write(clientNonce)
	return mac.Sum(nil)
}
