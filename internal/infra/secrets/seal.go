package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Sealed value format: $sealed$v1$<cipher>$<salt>$<ciphertext>
// with salt and ciphertext base64-encoded (raw, no padding).
const sealedPrefix = "$sealed$v1$"

// Argon2id parameters. Changing these breaks Open on existing sealed
// values, so they are part of the v1 format.
const (
	argonTime    = 2
	argonMemory  = 16 * 1024
	argonThreads = 2
	keyLen       = 32
	saltLen      = 16
)

var (
	// ErrNotSealed is returned by Open for values without the sealed prefix.
	ErrNotSealed = errors.New("secrets: value is not sealed")

	// ErrWrongPassphrase is returned when decryption fails, which for an
	// AEAD means a wrong passphrase or a tampered value.
	ErrWrongPassphrase = errors.New("secrets: wrong passphrase or corrupted value")
)

var b64 = base64.RawStdEncoding

// Seal encrypts plaintext with a key derived from passphrase and returns
// a self-describing sealed string.
func Seal(plaintext, passphrase []byte) (string, error) {
	if len(passphrase) == 0 {
		return "", errors.New("secrets: empty passphrase")
	}

	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := deriveKey(passphrase, salt)
	c, err := NewCipher(key)
	if err != nil {
		return "", err
	}

	// The cipher name is authenticated so the envelope cannot be
	// re-pointed at a different algorithm.
	blob, err := c.Encrypt(plaintext, []byte(c.Type()))
	if err != nil {
		return "", fmt.Errorf("seal: %w", err)
	}

	return sealedPrefix + string(c.Type()) + "$" + b64.EncodeToString(salt) + "$" + b64.EncodeToString(blob), nil
}

// Open decrypts a sealed string produced by Seal.
func Open(sealed string, passphrase []byte) ([]byte, error) {
	if !IsSealed(sealed) {
		return nil, ErrNotSealed
	}

	parts := strings.Split(strings.TrimPrefix(sealed, sealedPrefix), "$")
	if len(parts) != 3 {
		return nil, errors.New("secrets: malformed sealed value")
	}

	cipherType := CipherType(parts[0])
	salt, err := b64.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("secrets: malformed salt: %w", err)
	}
	blob, err := b64.DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("secrets: malformed ciphertext: %w", err)
	}

	key := deriveKey(passphrase, salt)
	c, err := NewCipherWithType(key, cipherType)
	if err != nil {
		return nil, err
	}

	plaintext, err := c.Decrypt(blob, []byte(cipherType))
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return plaintext, nil
}

// IsSealed reports whether a string carries the sealed value prefix.
func IsSealed(s string) bool {
	return strings.HasPrefix(s, sealedPrefix)
}

func deriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, argonTime, argonMemory, argonThreads, keyLen)
}
