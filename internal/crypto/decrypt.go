package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

// ErrDecryptFailed is returned when a blob cannot be opened. A wrong
// password and a corrupt blob are indistinguishable on purpose: the GCM
// tag check fails the same way for both, and callers must not be given a
// password oracle.
var ErrDecryptFailed = errors.New("decryption failed")

// Decrypt opens a blob produced by Encrypt and returns the plaintext.
// password must be []byte for security (caller should zero it after use)
func Decrypt(blob string, password []byte) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, ErrDecryptFailed
	}

	var box secretBox
	if err := json.Unmarshal(raw, &box); err != nil {
		return nil, ErrDecryptFailed
	}

	// Decode salt, nonce and ciphertext
	salt, err := base64.StdEncoding.DecodeString(box.Salt)
	if err != nil {
		return nil, ErrDecryptFailed
	}

	nonce, err := base64.StdEncoding.DecodeString(box.Nonce)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	if len(nonce) != nonceLen {
		return nil, ErrDecryptFailed
	}

	ciphertext, err := base64.StdEncoding.DecodeString(box.CipherText)
	if err != nil {
		return nil, ErrDecryptFailed
	}

	// Derive key from password
	key, err := scrypt.Key(password, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	// Create AES cipher
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	// Create GCM
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	// Decrypt - authentication failure means wrong password or tampering
	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}

	return plaintext, nil
}
